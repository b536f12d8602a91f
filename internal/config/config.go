// Package config provides configuration types, defaults, and persistence
// for attendify.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/attendify/attendify/internal/log"
)

// APIConfig holds backend connection options.
type APIConfig struct {
	// BaseURL is the root of the Attendify REST API, including the /api
	// prefix, e.g. "http://localhost:8080/api".
	BaseURL string `mapstructure:"base_url"`

	// TimeoutSeconds bounds each backend request.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// SuggestConfig holds autocomplete tuning options.
type SuggestConfig struct {
	// DebounceMs is the pause after the last keystroke before a lookup fires.
	DebounceMs int `mapstructure:"debounce_ms"`

	// CacheTTLSeconds is how long a lookup result is reused for the same
	// query. Zero disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
}

// ThemeConfig holds color customization options (hex colors).
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"`
	Subtle    string `mapstructure:"subtle"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

// Config holds all configuration options for attendify.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Suggest SuggestConfig `mapstructure:"suggest"`
	UI      UIConfig      `mapstructure:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8080/api",
			TimeoutSeconds: 10,
		},
		Suggest: SuggestConfig{
			DebounceMs:      300,
			CacheTTLSeconds: 60,
		},
		UI: UIConfig{
			ShowStatusBar: true,
		},
		Theme: ThemeConfig{
			Highlight: "#874BFD",
			Subtle:    "#6C6C6C",
			Error:     "#FF5F87",
			Success:   "#59F8B5",
		},
	}
}

// APITimeout returns the per-request timeout as a duration.
func (c Config) APITimeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// SuggestDebounce returns the autocomplete debounce window.
func (c Config) SuggestDebounce() time.Duration {
	if c.Suggest.DebounceMs <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(c.Suggest.DebounceMs) * time.Millisecond
}

// SuggestCacheTTL returns the autocomplete cache TTL.
func (c Config) SuggestCacheTTL() time.Duration {
	return time.Duration(c.Suggest.CacheTTLSeconds) * time.Second
}

// Validate checks the configuration for values that would break startup.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must be http or https, got %q", u.Scheme)
	}
	return nil
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	d := Defaults()
	return fmt.Sprintf(`# attendify configuration
#
# Lookup order:
#   1. .attendify/config.yaml (current directory)
#   2. ~/.config/attendify/config.yaml

api:
  # Root of the Attendify REST API, including the /api prefix.
  base_url: %s
  # Per-request timeout in seconds.
  timeout_seconds: %d

suggest:
  # Pause after the last keystroke before an autocomplete lookup fires.
  debounce_ms: %d
  # How long a lookup result is reused for the same query. 0 disables.
  cache_ttl_seconds: %d

ui:
  show_status_bar: %t

# theme:
#   highlight: "%s"
#   subtle: "%s"
#   error: "%s"
#   success: "%s"
`,
		d.API.BaseURL, d.API.TimeoutSeconds,
		d.Suggest.DebounceMs, d.Suggest.CacheTTLSeconds,
		d.UI.ShowStatusBar,
		d.Theme.Highlight, d.Theme.Subtle, d.Theme.Error, d.Theme.Success)
}

// WriteDefaultConfig writes the default config template to configPath,
// creating parent directories as needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
