// Package cmd implements the attendify command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/attendify/attendify/internal/api"
	"github.com/attendify/attendify/internal/app"
	"github.com/attendify/attendify/internal/cachemanager"
	"github.com/attendify/attendify/internal/config"
	"github.com/attendify/attendify/internal/domain"
	"github.com/attendify/attendify/internal/log"
	"github.com/attendify/attendify/internal/mode"
	"github.com/attendify/attendify/internal/tracing"
	"github.com/attendify/attendify/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "attendify",
	Short:   "A terminal ui for event registration",
	Long:    `A terminal user interface for the Attendify event registration backend: browse events, register individual or company participants, and manage attendee lists.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/attendify/config.yaml)")
	rootCmd.Flags().String("api-url", "",
		"backend base URL, including the /api prefix")
	rootCmd.Flags().Bool("debug", false,
		"write a debug log to attendify-debug.log")
	rootCmd.Flags().Bool("trace", false,
		"export OpenTelemetry spans for backend requests")
	rootCmd.Flags().String("trace-file", "",
		"span output file (default: stdout when --trace is set)")

	_ = viper.BindPFlag("api.base_url", rootCmd.Flags().Lookup("api-url"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("api.base_url", defaults.API.BaseURL)
	viper.SetDefault("api.timeout_seconds", defaults.API.TimeoutSeconds)
	viper.SetDefault("suggest.debounce_ms", defaults.Suggest.DebounceMs)
	viper.SetDefault("suggest.cache_ttl_seconds", defaults.Suggest.CacheTTLSeconds)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.error", defaults.Theme.Error)
	viper.SetDefault("theme.success", defaults.Theme.Success)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .attendify/config.yaml (current directory)
		// 2. ~/.config/attendify/config.yaml (user config)
		if _, err := os.Stat(".attendify/config.yaml"); err == nil {
			viper.SetConfigFile(".attendify/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "attendify"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .attendify/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".attendify/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if debug || os.Getenv("ATTENDIFY_DEBUG") != "" {
		cleanup, err := log.InitWithTeaLog("attendify-debug.log", "attendify")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
	}

	if err := styles.ApplyTheme(styles.Theme{
		Highlight: cfg.Theme.Highlight,
		Subtle:    cfg.Theme.Subtle,
		Error:     cfg.Theme.Error,
		Success:   cfg.Theme.Success,
	}); err != nil {
		return err
	}

	traceEnabled, _ := cmd.Flags().GetBool("trace")
	traceFile, _ := cmd.Flags().GetString("trace-file")
	provider, err := tracing.NewProvider(tracing.Config{Enabled: traceEnabled, FilePath: traceFile})
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	client := api.New(cfg.API.BaseURL, cfg.APITimeout())
	services := mode.Services{
		Config:       &cfg,
		Participants: client,
		Events:       client,
		SuggestCache: cachemanager.NewInMemoryCacheManager[string, []domain.Participant](
			"suggest", cfg.SuggestCacheTTL(), cachemanager.DefaultCleanupInterval),
	}

	p := tea.NewProgram(
		app.New(services),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
