package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iishyfishyy/netask/internal/agent"
	"github.com/iishyfishyy/netask/internal/config"
	"github.com/iishyfishyy/netask/internal/executor"
	"github.com/iishyfishyy/netask/internal/history"
	"github.com/iishyfishyy/netask/internal/inventory"
	"github.com/iishyfishyy/netask/internal/logger"
	"github.com/iishyfishyy/netask/internal/repl"
	"github.com/iishyfishyy/netask/internal/ui"
)

var (
	// version is set by goreleaser at build time
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// CLI flags
	debug         bool
	inventoryPath string
	copyResult    bool
	historyLimit  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "netask",
		Short:        "Run network device commands from plain-language requests",
		Long:         "netask asks an LLM which commands a request needs and on which device, then runs them over SSH",
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&inventoryPath, "inventory", "i", "", "Path to the device inventory file")

	askCmd := &cobra.Command{
		Use:   "ask <request...>",
		Short: "Handle a single request and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}
	askCmd.Flags().BoolVarP(&copyResult, "copy", "c", false, "Copy the result to the clipboard")

	devicesCmd := &cobra.Command{
		Use:   "devices",
		Short: "List the devices in the inventory",
		Args:  cobra.NoArgs,
		RunE:  runDevices,
	}

	configureCmd := &cobra.Command{
		Use:   "configure",
		Short: "Choose the LLM provider, inventory and history settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigure,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently handled requests",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings reads the config file and applies command line overrides
func loadSettings() (config.Settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Settings{}, err
	}

	settings, err := config.Resolve(cfg, config.Overrides{Inventory: inventoryPath, Debug: debug})
	if err != nil {
		return config.Settings{}, err
	}

	if err := logger.Init(logger.Config{
		Level:  settings.LogLevel,
		Debug:  settings.Debug,
		Output: settings.LogOutput,
	}); err != nil {
		return config.Settings{}, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.WithComponent("main")
	log.Debug().
		Str("agent", string(settings.Agent)).
		Str("model", settings.Model).
		Str("base_url", settings.BaseURL).
		Str("inventory", settings.Inventory).
		Bool("history", settings.History).
		Msg("settings resolved")

	return settings, nil
}

// session is everything a request needs, built once before the first request
type session struct {
	settings config.Settings
	shell    *repl.Shell
	store    *history.Store
}

func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
}

// startSession performs every fatal startup check before any request is read
func startSession(opts ...repl.Option) (*session, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	inv, err := inventory.Load(settings.Inventory)
	if err != nil {
		return nil, err
	}

	apiKey, err := config.APIKey(settings)
	if err != nil {
		return nil, err
	}

	model, err := agent.FromConfig(settings, apiKey)
	if err != nil {
		return nil, err
	}

	log := logger.WithComponent("main")
	log.Debug().Str("model", model.Name()).Int("devices", inv.Len()).Msg("startup complete")

	extractor := agent.NewExtractor(model, logger.WithComponent("agent"))
	runner := executor.NewRunner(
		executor.NewSSHDialer(logger.WithComponent("ssh")),
		logger.WithComponent("executor"),
	)

	s := &session{settings: settings}

	if settings.History {
		s.store, err = openHistory(log)
		if err == nil {
			log.Debug().Str("path", s.store.Path()).Msg("history enabled")
			opts = append(opts, repl.WithRecorder(s.store))
		}
	}

	s.shell = repl.New(extractor, inv, runner, logger.WithComponent("repl"), opts...)
	return s, nil
}

// openHistory opens the request log; a failure only disables history
func openHistory(log zerolog.Logger) (*history.Store, error) {
	path, err := config.GetHistoryPath()
	if err != nil {
		log.Warn().Err(err).Msg("history disabled")
		return nil, err
	}

	store, err := history.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("history disabled")
		return nil, err
	}
	return store, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	showPrompt := term.IsTerminal(int(os.Stdin.Fd()))

	s, err := startSession(repl.WithPrompt(showPrompt))
	if err != nil {
		return err
	}
	defer s.Close()

	return s.shell.Run(context.Background(), os.Stdin)
}

func runAsk(cmd *cobra.Command, args []string) error {
	request := strings.Join(args, " ")

	s, err := startSession()
	if err != nil {
		return err
	}
	defer s.Close()

	reply := s.shell.Respond(context.Background(), request)

	if copyResult {
		if err := clipboard.WriteAll(reply.Text()); err != nil {
			ui.ShowError(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		} else {
			ui.ShowSuccess("Result copied to clipboard!")
		}
	}

	return nil
}

func runDevices(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	inv, err := inventory.Load(settings.Inventory)
	if err != nil {
		return err
	}

	if inv.Len() == 0 {
		ui.ShowInfo(fmt.Sprintf("No devices in %s", settings.Inventory))
		return nil
	}

	fmt.Printf("%-24s %-18s %-20s %-16s %s\n", "NAME", "IP", "DEVICE TYPE", "PLATFORM", "USERNAME")
	for _, d := range inv.Devices() {
		platform := "unsupported"
		if p, err := executor.LookupPlatform(d.DeviceType); err == nil {
			platform = p.Name
		}
		fmt.Printf("%-24s %-18s %-20s %-16s %s\n", d.Name(), d.IP, d.DeviceType, platform, d.Username)
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	if _, err := loadSettings(); err != nil {
		return err
	}

	path, err := config.GetHistoryPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		ui.ShowInfo("No history yet. Enable it with 'netask configure'.")
		return nil
	}

	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), historyLimit)
	if err != nil {
		return err
	}

	for _, e := range entries {
		target := e.Identifier
		if e.DeviceIP != "" && e.DeviceIP != e.Identifier {
			target = fmt.Sprintf("%s (%s)", e.Identifier, e.DeviceIP)
		}
		fmt.Printf("%s  %-16s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Outcome, e.Request)
		if len(e.Commands) > 0 {
			fmt.Printf("    %s -> %s\n", strings.Join(e.Commands, ", "), target)
		}
		if e.Detail != "" {
			fmt.Printf("    %s\n", e.Detail)
		}
	}
	return nil
}
