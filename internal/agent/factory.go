package agent

import (
	"fmt"

	"github.com/iishyfishyy/netask/internal/config"
)

// FromConfig builds the Model selected by the resolved settings
func FromConfig(s config.Settings, apiKey string) (Model, error) {
	switch s.Agent {
	case config.AgentDeepSeek, config.AgentOpenAI:
		return NewChatModel(ChatConfig{
			Provider: string(s.Agent),
			BaseURL:  s.BaseURL,
			Model:    s.Model,
			APIKey:   apiKey,
		})
	case config.AgentClaude:
		if !IsClaudeCLIInstalled() {
			return nil, &config.Error{Op: "start agent", Err: fmt.Errorf("claude CLI not found in PATH")}
		}
		return NewClaudeCLI(), nil
	default:
		return nil, fmt.Errorf("unknown agent type: %s", s.Agent)
	}
}
