package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/kamusis/pandora-cli/internal/config"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	flagDebug    bool
	flagLogLevel string
	flagNoColor  bool
)

// logger is shared by every command and handed to the library packages.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "pandora"})

// appConfig is loaded once per invocation before any command runs.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:           "pandora",
	Short:         "Pandora CLI: browse and search the community component marketplace",
	SilenceUsage:  true, // don't print usage on operational errors
	SilenceErrors: true, // fang prints the error
	Long: `Pandora reads the community index of the pandora marketplace, merges every
team manifest into one catalog and lets you list, search and read agents,
skills, commands, hooks, MCP servers and workflows from the terminal.`,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

// setup loads the configuration and applies the log level and color profile.
func setup(cmd *cobra.Command, _ []string) error {
	// Respect NO_COLOR (https://no-color.org/)
	if flagNoColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load()
	switch {
	case err != nil && cmd == configInitCmd:
		// init is how a broken file gets replaced.
		logger.Warn("ignoring unreadable config", "err", err)
		cfg = config.DefaultConfig()
	case err != nil:
		return fmt.Errorf("cannot load config: %w\nFix the file or run 'pandora config init --force'.", err)
	}
	appConfig = cfg

	level := cfg.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagDebug {
		level = "debug"
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	logger.SetReportTimestamp(lvl == log.DebugLevel)
	return nil
}

func versionString() string {
	if version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, emptyAsNA(commit), emptyAsNA(buildDate))
}

// Execute is called by main.go. fang styles help and error output.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
