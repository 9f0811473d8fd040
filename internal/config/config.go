package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"strava-heatmaps/internal/palette"
)

// Config represents the application configuration
type Config struct {
	Source  SourceConfig  `json:"source"`
	Display DisplayConfig `json:"display"`
	Cache   CacheConfig   `json:"cache"`
	Log     LogConfig     `json:"log"`
}

// SourceConfig says where the dashboard payload comes from
type SourceConfig struct {
	URL            string `json:"url"`
	File           string `json:"file,omitempty"`
	Token          string `json:"token,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	// VisibleYears is "all" or "trim-leading-empty"
	VisibleYears string `json:"visible_years"`

	// Accents override the payload's per-type accent colors
	Accents map[string]string `json:"accents,omitempty"`
}

// CacheConfig controls the local snapshot cache
type CacheConfig struct {
	Enabled bool   `json:"enabled"`
	Keep    int    `json:"keep"`
	Path    string `json:"path,omitempty"`
}

// LogConfig controls logging. Logs go to File because stdout belongs to
// the terminal UI.
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
	JSON  bool   `json:"json"`
}

// Visible year policies
const (
	VisibleYearsAll       = "all"
	VisibleYearsTrimEmpty = "trim-leading-empty"
)

const placeholderURL = "https://YOUR_HOST/data.json"

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			TimeoutSeconds: 30,
		},
		Display: DisplayConfig{
			VisibleYears: VisibleYearsAll,
		},
		Cache: CacheConfig{
			Enabled: true,
			Keep:    10,
		},
		Log: LogConfig{
			Level: "info",
			File:  "heatmaps.log",
		},
	}
}

// Load reads the configuration from ~/.heatmaps/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Source.TimeoutSeconds == 0 {
		cfg.Source.TimeoutSeconds = defaults.Source.TimeoutSeconds
	}
	if cfg.Display.VisibleYears == "" {
		cfg.Display.VisibleYears = defaults.Display.VisibleYears
	}
	if cfg.Cache.Keep == 0 {
		cfg.Cache.Keep = defaults.Cache.Keep
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.heatmaps/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Source.URL = placeholderURL
	example.Display.Accents = map[string]string{"Run": "#01cdfe"}

	return Save(&example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if c.Source.File == "" {
		if c.Source.URL == "" || c.Source.URL == placeholderURL {
			return errors.New("source.url or source.file is required - point it at the generated data.json")
		}
		u, err := url.Parse(c.Source.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("source.url must be an http(s) URL, got %q", c.Source.URL)
		}
	}
	if c.Source.TimeoutSeconds < 0 {
		return fmt.Errorf("source.timeout_seconds must not be negative, got %d", c.Source.TimeoutSeconds)
	}

	// Validate display settings
	if v := c.Display.VisibleYears; v != "" && v != VisibleYearsAll && v != VisibleYearsTrimEmpty {
		return fmt.Errorf("display.visible_years must be %q or %q, got %q", VisibleYearsAll, VisibleYearsTrimEmpty, v)
	}
	for t, accent := range c.Display.Accents {
		if _, ok := palette.HexToRGB(accent); !ok {
			return fmt.Errorf("display.accents[%s] must be a hex color, got %q", t, accent)
		}
	}

	if c.Cache.Keep < 0 {
		return fmt.Errorf("cache.keep must not be negative, got %d", c.Cache.Keep)
	}
	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}

	return nil
}

// Timeout is the payload fetch timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".heatmaps"), nil
}

// ResolvePath places relative paths inside the config directory
func ResolvePath(p string) (string, error) {
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, p), nil
}
