package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/muurk/shoplist/internal/analytics"
	"github.com/muurk/shoplist/internal/api"
	"github.com/muurk/shoplist/internal/config"
	"github.com/muurk/shoplist/internal/discovery"
	"github.com/muurk/shoplist/internal/editor"
	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/purchase"
	"github.com/muurk/shoplist/internal/shopping"
	"github.com/muurk/shoplist/internal/tui"
	"github.com/muurk/shoplist/internal/ui"
)

// Command flags
var (
	outputFormat string
	scanTimeout  int
	forceInit    bool
	startOnLists bool
)

func init() {
	rootCmd.Flags().BoolVar(&startOnLists, "table", false, "Open the list table directly instead of the dashboard")

	rootCmd.AddCommand(listsCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(setAmountCmd)
	rootCmd.AddCommand(purchaseCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
}

// runTUI launches the interactive UI against the resolved service.
func runTUI(cmd *cobra.Command, args []string) error {
	// The alt screen owns the terminal; only log when a file was asked for.
	if cfg.Log.File == "" {
		logging.SetLogger(zap.NewNop())
	}
	defer logging.Sync()

	baseURL, err := resolveBaseURL(cmd.Context())
	if err != nil {
		return err
	}

	tracker, closer := newTracker(baseURL)
	defer closer.Close()

	screen := tui.ScreenDashboard
	if startOnLists {
		screen = tui.ScreenLists
	}

	model := tui.NewAppModel(newClient(baseURL), tracker, baseURL, screen)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// listsCmd prints every shopping list
var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Show all shopping lists",
	Long: `Fetch and display every shopping list with its items and last purchase.

Item indexes printed by the detailed format are the ones set-amount expects.`,
	Example: `  # Detailed output
  shoplist lists

  # One line per list
  shoplist lists --format compact

  # JSON output for scripting
  shoplist lists --format json`,
	Args: cobra.NoArgs,
	RunE: runLists,
}

func init() {
	listsCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json)")
}

func runLists(cmd *cobra.Command, args []string) error {
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), requestBudget())
	defer cancel()

	baseURL, err := resolveBaseURL(ctx)
	if err != nil {
		return err
	}

	snap, err := newClient(baseURL).Snapshot(ctx)
	if err != nil {
		fmt.Println(ui.RenderFailure("Failed to load shopping lists", err, connectionTips(baseURL)))
		return fmt.Errorf("failed to load lists: %w", err)
	}
	providers := shopping.IndexProviders(snap.Providers)

	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(snap.Lists, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case "compact":
		fmt.Print(providers.FormatCompact(snap.Lists))
	case "detailed", "":
		for i, l := range snap.Lists {
			if i > 0 {
				fmt.Println()
			}
			fmt.Print(providers.FormatDetailed(l))
		}
	default:
		return fmt.Errorf("invalid format: %s (must be detailed, compact, or json)", outputFormat)
	}
	return nil
}

// providersCmd prints the purchase providers
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show purchase providers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logging.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), requestBudget())
		defer cancel()

		baseURL, err := resolveBaseURL(ctx)
		if err != nil {
			return err
		}
		providers, err := newClient(baseURL).Providers(ctx)
		if err != nil {
			fmt.Println(ui.RenderFailure("Failed to load providers", err, connectionTips(baseURL)))
			return fmt.Errorf("failed to load providers: %w", err)
		}
		for _, p := range providers {
			fmt.Println(shopping.FormatProvider(p))
		}
		return nil
	},
}

// setAmountCmd changes one item amount and saves the list
var setAmountCmd = &cobra.Command{
	Use:   "set-amount <list> <item-index> <amount>",
	Short: "Set the amount of one item",
	Long: `Set the amount of one item in a shopping list and save it.

The list may be given by id or name. The item index is the number shown by
'shoplist lists'. The amount must be a whole number.`,
	Example: `  # Four apples on the Weekdays list
  shoplist set-amount Weekdays 0 4

  # By list id
  shoplist set-amount 2 1 12`,
	Args: cobra.ExactArgs(3),
	RunE: runSetAmount,
}

func runSetAmount(cmd *cobra.Command, args []string) error {
	defer logging.Sync()

	row, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid item index: %s", args[1])
	}
	if _, err := shopping.ParseAmountStrict(args[2]); err != nil {
		return fmt.Errorf("value %s is not a number", args[2])
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), requestBudget())
	defer cancel()

	baseURL, err := resolveBaseURL(ctx)
	if err != nil {
		return err
	}
	tracker, closer := newTracker(baseURL)
	defer closer.Close()

	client := newClient(baseURL)
	lists, err := client.Lists(ctx)
	if err != nil {
		fmt.Println(ui.RenderFailure("Failed to load shopping lists", err, connectionTips(baseURL)))
		return fmt.Errorf("failed to load lists: %w", err)
	}
	list, err := findList(lists, args[0])
	if err != nil {
		return err
	}

	fmt.Println(ui.NewHeader("Set Amount", "shoplist set-amount", []ui.Detail{
		{Key: "List", Value: list.Name},
		{Key: "Item", Value: args[1]},
		{Key: "Amount", Value: args[2]},
	}).Render())

	ed := editor.New(list, tracker)
	if err := ed.SetAmountText(row, args[2]); err != nil {
		return err
	}
	update, err := ed.PrepareSave()
	if err != nil {
		return err
	}

	result := client.UpdateList(ctx, update)
	if !result.OK() {
		fmt.Println(ui.RenderFailure("Save failed", result.Err, connectionTips(baseURL)))
		return fmt.Errorf("%s failed: %w", result.Operation, result.Err)
	}
	if err := ed.Commit(update); err != nil {
		return err
	}

	item, _ := ed.Item(row)
	fmt.Println(ui.RenderSuccess("Saved "+list.Name, []ui.Detail{
		{Key: "Item", Value: item.Name},
		{Key: "Amount", Value: strconv.Itoa(item.Amount)},
		{Key: "Took", Value: result.Duration.Round(time.Millisecond).String()},
	}))
	return nil
}

// purchaseCmd buys a list from a provider
var purchaseCmd = &cobra.Command{
	Use:   "purchase <list> <provider-id>",
	Short: "Purchase a shopping list from a provider",
	Long: `Review and submit a purchase of a shopping list.

The review shows the total number of items, the estimated price for the
chosen provider and when delivery can be expected.`,
	Example: `  # Buy the Weekdays list from Amazon
  shoplist purchase Weekdays amazon`,
	Args: cobra.ExactArgs(2),
	RunE: runPurchase,
}

func runPurchase(cmd *cobra.Command, args []string) error {
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), requestBudget())
	defer cancel()

	baseURL, err := resolveBaseURL(ctx)
	if err != nil {
		return err
	}
	tracker, closer := newTracker(baseURL)
	defer closer.Close()

	client := newClient(baseURL)
	snap, err := client.Snapshot(ctx)
	if err != nil {
		fmt.Println(ui.RenderFailure("Failed to load shopping lists", err, connectionTips(baseURL)))
		return fmt.Errorf("failed to load lists: %w", err)
	}
	list, err := findList(snap.Lists, args[0])
	if err != nil {
		return err
	}

	w := purchase.New(list, snap.Providers)
	if err := w.SelectByID(args[1]); err != nil {
		return err
	}
	req, err := w.Confirm()
	if err != nil {
		return err
	}

	summary := w.Review()
	fmt.Println(ui.NewHeader("Purchase "+list.Name, "shoplist purchase", []ui.Detail{
		{Key: "Total items", Value: strconv.Itoa(summary.TotalItems)},
		{Key: "Provider", Value: summary.ProviderName},
		{Key: "Estimated price", Value: summary.PriceLabel()},
		{Key: "Delivery", Value: summary.Delivery},
	}).Render())

	tracker.Track(analytics.EventMakePurchase, analytics.Payload{
		"listId":     req.ListID,
		"providerId": req.ProviderID,
	})

	result := client.Purchase(ctx, req)
	if !result.OK() {
		fmt.Println(ui.RenderFailure("Purchase of "+list.Name+" failed", result.Err, connectionTips(baseURL)))
		return fmt.Errorf("%s failed: %w", result.Operation, result.Err)
	}

	fmt.Println(ui.RenderSuccess(tui.MsgPurchaseProcessing, []ui.Detail{
		{Key: "List", Value: list.Name},
		{Key: "Provider", Value: summary.ProviderName},
	}))
	return nil
}

// createCmd adds an empty shopping list
var createCmd = &cobra.Command{
	Use:     "create <name>",
	Short:   "Create a new, empty shopping list",
	Example: `  shoplist create "Weekend BBQ"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logging.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), requestBudget())
		defer cancel()

		baseURL, err := resolveBaseURL(ctx)
		if err != nil {
			return err
		}
		list, result := newClient(baseURL).CreateList(ctx, args[0])
		if !result.OK() {
			fmt.Println(ui.RenderFailure("Create failed", result.Err, connectionTips(baseURL)))
			return fmt.Errorf("%s failed: %w", result.Operation, result.Err)
		}
		fmt.Println(ui.RenderSuccess("Created "+list.Name, []ui.Detail{
			{Key: "ID", Value: strconv.Itoa(list.ID)},
		}))
		return nil
	},
}

// scanCmd looks for services on the local network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for shopping list services on the network",
	Long: `Scan for shopping list services advertised over mDNS/DNS-SD.

Each service is listed with the URL to pass to --api-url.`,
	Example: `  # Scan for 5 seconds (default)
  shoplist scan

  # Longer scan for slow networks
  shoplist scan --timeout 15`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for shoplist services (timeout: %ds)...\n\n", scanTimeout)

	scanner := &discovery.Scanner{Timeout: time.Duration(scanTimeout) * time.Second}
	services, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	fmt.Print(formatScan(services, scanTimeout))
	return nil
}

// formatScan renders scan results, or a warning with tips when nothing answered.
func formatScan(services []*discovery.Service, timeoutSeconds int) string {
	var b strings.Builder

	if len(services) == 0 {
		b.WriteString(ui.RenderWarning("No services found", []ui.Detail{
			{Key: "Service type", Value: discovery.ServiceType},
			{Key: "Timeout", Value: fmt.Sprintf("%ds", timeoutSeconds)},
		}))
		b.WriteString("\n\nTroubleshooting:\n")
		b.WriteString("  - Ensure shoplist-server is running with advertising enabled\n")
		b.WriteString("  - Check that multicast traffic is allowed on your network\n")
		b.WriteString("  - Try increasing --timeout for slower networks\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Found %d service(s):\n\n", len(services))
	for i, svc := range services {
		fmt.Fprintf(&b, "%d. %s\n", i+1, svc.Instance)
		fmt.Fprintf(&b, "   Host:    %s\n", svc.Hostname)
		fmt.Fprintf(&b, "   URL:     %s\n", svc.BaseURL())
		if v := svc.GetMetadata("version"); v != "" {
			fmt.Fprintf(&b, "   Version: %s\n", v)
		}
		b.WriteString("\n")
	}
	b.WriteString("Use 'shoplist --api-url <url>' to connect to a service\n")
	return b.String()
}

// configCmd manages the config file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}
		if config.Exists(path) && !forceInit {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd, configPathCmd, configShowCmd)
}

func configFilePath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

// requestBudget bounds a whole one-shot command: discovery plus retried
// requests.
func requestBudget() time.Duration {
	timeout := cfg.API.Timeout
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}
	return cfg.Discovery.Timeout + time.Duration(cfg.API.ReadRetries+2)*timeout
}
