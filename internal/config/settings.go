package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Provider holds the defaults for one model backend
type Provider struct {
	BaseURL   string
	Model     string
	APIKeyEnv string // empty when the backend needs no credential
}

var providers = map[AgentType]Provider{
	AgentDeepSeek: {
		BaseURL:   "https://api.deepseek.com",
		Model:     "deepseek-chat",
		APIKeyEnv: "DEEPSEEK_API_KEY",
	},
	AgentOpenAI: {
		BaseURL:   "https://api.openai.com/v1",
		Model:     "gpt-4o-mini",
		APIKeyEnv: "OPENAI_API_KEY",
	},
	AgentClaude: {},
}

// Agents lists the supported backends in display order
func Agents() []AgentType {
	return []AgentType{AgentDeepSeek, AgentOpenAI, AgentClaude}
}

// LookupProvider returns the defaults for an agent type
func LookupProvider(agent AgentType) (Provider, bool) {
	p, ok := providers[agent]
	return p, ok
}

// Settings is the resolved, read-only configuration handed to the rest of the program
type Settings struct {
	Agent     AgentType
	Model     string
	BaseURL   string
	APIKeyEnv string
	Inventory string
	History   bool
	Debug     bool
	LogLevel  string
	LogOutput string
}

// Overrides carries values given on the command line; empty fields are ignored
type Overrides struct {
	Inventory string
	Debug     bool
}

// Resolve merges the config file (may be nil), command line overrides and provider defaults
func Resolve(cfg *Config, over Overrides) (Settings, error) {
	s := Settings{
		Agent:     AgentDeepSeek,
		Inventory: DefaultInventoryPath,
		Debug:     over.Debug,
	}

	if cfg != nil {
		if cfg.Agent != "" {
			s.Agent = cfg.Agent
		}
		s.Model = cfg.Model
		s.BaseURL = cfg.BaseURL
		s.History = cfg.History
		s.LogLevel = cfg.LogLevel
		s.LogOutput = cfg.LogOutput
		if cfg.Inventory != "" {
			s.Inventory = cfg.Inventory
		}
	}

	if over.Inventory != "" {
		s.Inventory = over.Inventory
	}

	p, ok := LookupProvider(s.Agent)
	if !ok {
		return Settings{}, &Error{Op: "resolve agent", Err: fmt.Errorf("unknown agent type: %s", s.Agent)}
	}
	if s.Model == "" {
		s.Model = p.Model
	}
	if s.BaseURL == "" {
		s.BaseURL = p.BaseURL
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	s.APIKeyEnv = p.APIKeyEnv

	return s, nil
}

// APIKey reads the backend credential from the environment.
// Backends without a credential return an empty key and no error.
func APIKey(s Settings) (string, error) {
	if s.APIKeyEnv == "" {
		return "", nil
	}
	key := strings.TrimSpace(os.Getenv(s.APIKeyEnv))
	if key == "" {
		return "", &Error{
			Op:  "read credential",
			Err: errors.New("environment variable " + s.APIKeyEnv + " not set"),
		}
	}
	return key, nil
}
