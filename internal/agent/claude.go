package agent

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const claudeBinary = "claude"

// ClaudeCLI implements Model using the Claude CLI in print mode
type ClaudeCLI struct {
	binary string
}

// NewClaudeCLI creates a Claude CLI model
func NewClaudeCLI() *ClaudeCLI {
	return &ClaudeCLI{binary: claudeBinary}
}

// IsClaudeCLIInstalled checks if the claude CLI is available
func IsClaudeCLIInstalled() bool {
	_, err := exec.LookPath(claudeBinary)
	return err == nil
}

// Name returns the backend name
func (c *ClaudeCLI) Name() string {
	return "claude-code"
}

// Complete calls the Claude CLI with the given prompt
func (c *ClaudeCLI) Complete(ctx context.Context, prompt string) (string, error) {
	cmd := exec.CommandContext(ctx, c.binary, "-p", prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to call claude CLI: %w\nStderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}
