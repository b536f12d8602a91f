package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/attendify/attendify/internal/config"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	cfg = config.Config{}
	t.Cleanup(viper.Reset)
}

func TestInitConfig_DefaultsAndFirstRunFile(t *testing.T) {
	resetConfig(t)
	t.Chdir(t.TempDir())

	initConfig()

	defaults := config.Defaults()
	require.Equal(t, defaults.API.BaseURL, cfg.API.BaseURL)
	require.Equal(t, defaults.Suggest.DebounceMs, cfg.Suggest.DebounceMs)
	require.Equal(t, defaults.UI.ShowStatusBar, cfg.UI.ShowStatusBar)

	_, err := os.Stat(".attendify/config.yaml")
	require.NoError(t, err, "first run writes the default config")
}

func TestInitConfig_ExplicitConfigFile(t *testing.T) {
	resetConfig(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://example.test/api
  timeout_seconds: 3
suggest:
  debounce_ms: 150
`), 0o600))
	cfgFile = path

	initConfig()

	require.Equal(t, "https://example.test/api", cfg.API.BaseURL)
	require.Equal(t, 3, cfg.API.TimeoutSeconds)
	require.Equal(t, 150, cfg.Suggest.DebounceMs)
	require.Equal(t, config.Defaults().Suggest.CacheTTLSeconds, cfg.Suggest.CacheTTLSeconds,
		"unset keys keep their defaults")
}

func TestInitConfig_LocalDirectoryConfigWins(t *testing.T) {
	resetConfig(t)
	t.Chdir(t.TempDir())

	require.NoError(t, os.MkdirAll(".attendify", 0o750))
	require.NoError(t, os.WriteFile(".attendify/config.yaml", []byte(`
api:
  base_url: http://localhost:9999/api
`), 0o600))

	initConfig()

	require.Equal(t, "http://localhost:9999/api", cfg.API.BaseURL)
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3 (commit: abc, built: today)")
	require.Equal(t, "1.2.3 (commit: abc, built: today)", rootCmd.Version)
}

func TestRootCommandMetadata(t *testing.T) {
	require.Equal(t, "attendify", rootCmd.Use)
	require.NotNil(t, rootCmd.Flags().Lookup("api-url"))
	require.NotNil(t, rootCmd.Flags().Lookup("trace"))
	require.NotNil(t, rootCmd.Flags().Lookup("debug"))
}
