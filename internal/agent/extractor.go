package agent

import (
	"context"

	"github.com/rs/zerolog"
)

// Extractor implements Agent on top of any Model
type Extractor struct {
	model  Model
	logger zerolog.Logger
}

// NewExtractor creates an extractor that sends every request to model
func NewExtractor(model Model, logger zerolog.Logger) *Extractor {
	return &Extractor{model: model, logger: logger}
}

// ExtractIntent sends one prompt to the model and parses the reply.
// Model failures come back as *ModelError; an unusable reply is not an error
// and yields an Intent without commands.
func (e *Extractor) ExtractIntent(ctx context.Context, request string) (Intent, error) {
	e.logger.Debug().Str("model", e.model.Name()).Str("request", request).Msg("extracting intent")

	reply, err := e.model.Complete(ctx, BuildPrompt(request))
	if err != nil {
		return Intent{}, &ModelError{Model: e.model.Name(), Err: err}
	}

	e.logger.Debug().Str("reply", reply).Msg("model replied")

	intent := ParseReply(reply)

	e.logger.Debug().
		Strs("commands", intent.Commands).
		Str("identifier", intent.Identifier).
		Msg("parsed intent")

	return intent, nil
}
