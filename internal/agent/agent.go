package agent

import "context"

// Model is a hosted or local language model that completes a single prompt
type Model interface {
	// Complete sends one prompt and returns the reply text
	Complete(ctx context.Context, prompt string) (string, error)

	// Name identifies the backend and model, e.g. "deepseek/deepseek-chat"
	Name() string
}

// Agent turns an operator sentence into commands and a target device
type Agent interface {
	// ExtractIntent asks the model to read the request and parses its reply
	ExtractIntent(ctx context.Context, request string) (Intent, error)
}
