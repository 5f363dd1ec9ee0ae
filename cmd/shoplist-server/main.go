// Shoplist-server is a reference implementation of the shopping list service.
//
// It serves the lists, providers, update, purchase and create endpoints from
// an in-memory store seeded with sample data, accepts analytics events over
// a WebSocket at /events, and advertises itself over mDNS so clients can find
// it without a URL.
//
// Usage:
//
//	shoplist-server serve [flags]
//
// See 'shoplist-server serve --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/shoplist/internal/config"
	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/server"
	"github.com/muurk/shoplist/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shoplist-server",
	Short: "Shopping list API server",
	Long: `A standalone HTTP server for the shopping list API.

Data lives in memory and is reset to the sample lists on every start.

Note: For the interactive client, use the separate 'shoplist' utility.`,
	Version: version.Version,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	configPath   string
	host         string
	port         int
	noAdvertise  bool
	instanceName string
	eventLogSize int
	logLevel     string
	logFile      string
	logJSON      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the shopping list API server.

Settings come from the server section of the config file; flags override
them. The server advertises itself over mDNS unless --no-advertise is given.`,
	Example: `  # Start on the default port 8080
  shoplist-server serve

  # Custom port with debug logging
  shoplist-server serve --port 9090 --log-level debug

  # Loopback only, no mDNS
  shoplist-server serve --host 127.0.0.1 --no-advertise

  # JSON logs to a file
  shoplist-server serve --log-file server.log --log-json`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "Config file (default: user config dir)")
	serveCmd.Flags().StringVar(&host, "host", "", "Listen address (empty = all interfaces)")
	serveCmd.Flags().IntVar(&port, "port", 0, "Server port (default from config, 8080)")
	serveCmd.Flags().BoolVar(&noAdvertise, "no-advertise", false, "Do not advertise over mDNS")
	serveCmd.Flags().StringVar(&instanceName, "instance", "", "mDNS instance name (default \"shoplist on <hostname>\")")
	serveCmd.Flags().IntVar(&eventLogSize, "event-log-size", 0, "Analytics events kept in memory (0 = default)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	serveCmd.Flags().BoolVar(&logJSON, "log-json", false, "Use the JSON log encoder")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logging.Initialize(logging.Options{Level: logLevel, File: logFile, JSON: logJSON}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	sc := cfg.Server
	if cmd.Flags().Changed("host") {
		sc.Host = host
	}
	if port != 0 {
		sc.Port = port
	}
	if noAdvertise {
		sc.Advertise = false
	}
	if instanceName != "" {
		sc.Instance = instanceName
	}
	if sc.Port <= 0 || sc.Port > 65535 {
		return fmt.Errorf("invalid port: %d", sc.Port)
	}

	srv := server.New(&server.Config{
		Host:         sc.Host,
		Port:         sc.Port,
		Advertise:    sc.Advertise,
		InstanceName: sc.Instance,
		EventLogSize: eventLogSize,
	}, server.NewSeededStore())

	return srv.Start()
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shoplist-server %s (commit: %s)\n", version.Version, version.Commit)
	},
}
