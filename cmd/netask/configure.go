package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iishyfishyy/netask/internal/agent"
	"github.com/iishyfishyy/netask/internal/config"
	"github.com/iishyfishyy/netask/internal/inventory"
	"github.com/iishyfishyy/netask/internal/ui"
)

func runConfigure(cmd *cobra.Command, args []string) error {
	exists, err := config.Exists()
	if err != nil {
		return fmt.Errorf("failed to check configuration: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !exists || cfg == nil {
		ui.ShowInfo("No configuration found. Let's set up netask.")
		cfg = &config.Config{Agent: config.AgentDeepSeek}
	}

	ui.ShowSection("Provider")

	options := make([]string, 0, len(config.Agents()))
	for _, a := range config.Agents() {
		options = append(options, string(a))
	}
	selected, err := ui.ConfigureAgent(options, string(cfg.Agent))
	if err != nil {
		return err
	}
	if config.AgentType(selected) != cfg.Agent {
		// Model and endpoint presets belong to the previous provider
		cfg.Model = ""
		cfg.BaseURL = ""
	}
	cfg.Agent = config.AgentType(selected)

	provider, _ := config.LookupProvider(cfg.Agent)
	if cfg.Agent == config.AgentClaude {
		if !agent.IsClaudeCLIInstalled() {
			ui.ShowWarning("Claude CLI not found in PATH. Install and authenticate it before running netask.")
		}
	} else {
		model := cfg.Model
		if model == "" {
			model = provider.Model
		}
		if model, err = ui.PromptInput("Model:", model); err != nil {
			return err
		}
		if model == provider.Model {
			model = ""
		}
		cfg.Model = model

		if os.Getenv(provider.APIKeyEnv) == "" {
			ui.ShowWarning(fmt.Sprintf("Set %s in your environment before running netask.", provider.APIKeyEnv))
		}
	}

	ui.ShowSection("Inventory")

	path := cfg.Inventory
	if path == "" {
		path = config.DefaultInventoryPath
	}
	if path, err = ui.PromptInput("Inventory file:", path); err != nil {
		return err
	}
	if inv, err := inventory.Load(path); err != nil {
		ui.ShowWarning(fmt.Sprintf("Inventory not usable yet: %v", err))
	} else {
		ui.ShowSuccess(fmt.Sprintf("Inventory has %d devices", inv.Len()))
	}
	if path == config.DefaultInventoryPath {
		path = ""
	}
	cfg.Inventory = path

	ui.ShowSection("History")

	if cfg.History, err = ui.PromptYesNo("Keep a local history of handled requests?", cfg.History); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	configPath, _ := config.GetConfigPath()
	ui.ShowSuccess(fmt.Sprintf("Configuration saved to %s", configPath))
	ui.ShowInfo("\nYou're all set! Run: netask")

	return nil
}
