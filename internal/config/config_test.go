package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Source.TimeoutSeconds != 30 {
		t.Errorf("Source.TimeoutSeconds = %d, want 30", cfg.Source.TimeoutSeconds)
	}
	if cfg.Display.VisibleYears != VisibleYearsAll {
		t.Errorf("Display.VisibleYears = %q, want %q", cfg.Display.VisibleYears, VisibleYearsAll)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Keep != 10 {
		t.Errorf("Cache = %+v, want enabled keeping 10", cfg.Cache)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}

	// Source should be empty by default
	if cfg.Source.URL != "" {
		t.Errorf("Source.URL should be empty, got %q", cfg.Source.URL)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", cfg.Timeout())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errContains string
	}{
		{
			name:   "valid url",
			config: Config{Source: SourceConfig{URL: "https://example.com/data.json"}},
		},
		{
			name:   "valid file",
			config: Config{Source: SourceConfig{File: "data.json"}},
		},
		{
			name:        "no source",
			config:      Config{},
			expectError: true,
			errContains: "source.url",
		},
		{
			name:        "placeholder url",
			config:      Config{Source: SourceConfig{URL: placeholderURL}},
			expectError: true,
			errContains: "source.url",
		},
		{
			name:        "not http",
			config:      Config{Source: SourceConfig{URL: "ftp://example.com/data.json"}},
			expectError: true,
			errContains: "http(s)",
		},
		{
			name:        "negative timeout",
			config:      Config{Source: SourceConfig{File: "data.json", TimeoutSeconds: -1}},
			expectError: true,
			errContains: "timeout_seconds",
		},
		{
			name: "bad visible years",
			config: Config{
				Source:  SourceConfig{File: "data.json"},
				Display: DisplayConfig{VisibleYears: "newest"},
			},
			expectError: true,
			errContains: "visible_years",
		},
		{
			name: "trim visible years",
			config: Config{
				Source:  SourceConfig{File: "data.json"},
				Display: DisplayConfig{VisibleYears: VisibleYearsTrimEmpty},
			},
		},
		{
			name: "bad accent",
			config: Config{
				Source:  SourceConfig{File: "data.json"},
				Display: DisplayConfig{Accents: map[string]string{"Run": "blue"}},
			},
			expectError: true,
			errContains: "accents[Run]",
		},
		{
			name: "bad log level",
			config: Config{
				Source: SourceConfig{File: "data.json"},
				Log:    LogConfig{Level: "loud"},
			},
			expectError: true,
			errContains: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := Load(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("Load() error = %v, want ErrNoConfig", err)
	}

	if err := CreateExample(); err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("example config should not validate until the url is set")
	}

	cfg.Source.URL = "https://example.com/data.json"
	cfg.Log.Level = ""
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// CreateExample must not overwrite
	if err := CreateExample(); err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}

	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source.URL != "https://example.com/data.json" {
		t.Errorf("Source.URL = %q", cfg.Source.URL)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want default", cfg.Log.Level)
	}
	if cfg.Display.Accents["Run"] != "#01cdfe" {
		t.Errorf("Accents = %v", cfg.Display.Accents)
	}

	info, err := os.Stat(filepath.Join(home, ".heatmaps", "config.json"))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".heatmaps")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil || errors.Is(err, ErrNoConfig) {
		t.Errorf("Load() error = %v, want a parse error", err)
	}
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ResolvePath("heatmaps.log")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".heatmaps", "heatmaps.log"); got != want {
		t.Errorf("ResolvePath() = %q, want %q", got, want)
	}
	if got, _ := ResolvePath("/var/log/x.log"); got != "/var/log/x.log" {
		t.Errorf("absolute path changed: %q", got)
	}
	if got, _ := ResolvePath(""); got != "" {
		t.Errorf("empty path changed: %q", got)
	}
}
