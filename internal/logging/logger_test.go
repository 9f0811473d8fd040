package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warn"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.TraceLevel, GetLevel("trace"))
	assert.Equal(t, logrus.InfoLevel, GetLevel(""))
	assert.Equal(t, logrus.InfoLevel, GetLevel("bogus"))
}

func TestSetupWritesToFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)
	defer logrus.SetLevel(logrus.InfoLevel)
	defer logrus.SetFormatter(&logrus.TextFormatter{})

	base := filepath.Join(t.TempDir(), "heatmaps")
	closer := Setup(LoggerSetupParams{
		LogFileName:   base,
		LogLevel:      "debug",
		LogFormatJSON: true,
	})

	logrus.WithField("year", 2024).Debug("toggle year")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(base + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"toggle year"`)
	assert.Contains(t, string(data), `"year":2024`)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSetupStdout(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	closer := Setup(LoggerSetupParams{LogLevel: "info"})
	assert.NoError(t, closer.Close())
	assert.Equal(t, os.Stdout, logrus.StandardLogger().Out)
}
