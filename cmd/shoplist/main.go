// Shoplist is a terminal client for the shopping list service.
//
// It shows every shopping list in an interactive table where item amounts
// can be edited, items added or removed, and lists purchased from a provider
// through a short wizard. Scripting commands cover the same operations
// without the TUI.
//
// Usage:
//
//	shoplist [command] [flags]
//
// Running without arguments launches the interactive UI. When stdout is not
// a terminal the lists are printed instead.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/shoplist/internal/config"
	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/ui"
	"github.com/muurk/shoplist/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath    string
	apiURL        string
	logLevel      string
	logFile       string
	analyticsMode string
	timeout       time.Duration
	noDiscovery   bool
	forceDiscover bool
)

// cfg is the effective configuration, loaded before any command runs
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "shoplist",
	Short: "Shopping list manager",
	Long: `A terminal client for the shopping list service.

View your shopping lists, edit item amounts, add or remove items and
purchase a list from a provider.

If no command is specified, the interactive UI launches automatically.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.IsTerminal() {
			return runLists(cmd, args)
		}
		return runTUI(cmd, args)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default: user config dir)")
	flags.StringVar(&apiURL, "api-url", "", "Service base URL, e.g. http://localhost:8080")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "Write logs to this file")
	flags.StringVar(&analyticsMode, "analytics", "", "Analytics mode (off, log, websocket)")
	flags.DurationVar(&timeout, "timeout", 0, "HTTP request timeout")
	flags.BoolVar(&noDiscovery, "no-discovery", false, "Never look for the service over mDNS")
	flags.BoolVar(&forceDiscover, "discover", false, "Find the service over mDNS even when a base URL is configured")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file, layers flags over it and starts logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	loaded.Apply(config.Overrides{
		BaseURL:       apiURL,
		AnalyticsMode: analyticsMode,
		LogLevel:      logLevel,
		LogFile:       logFile,
		Timeout:       timeout,
		NoDiscovery:   noDiscovery,
	})
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	return logging.Initialize(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shoplist %s (commit: %s)\n", version.Version, version.Commit)
	},
}
