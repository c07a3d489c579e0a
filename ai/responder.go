package ai

import "context"

// Responder produces an assistant reply for a user's chat message.
// PredictionContext, when non-empty, names the diagnosis classification the
// conversation was started from.
type Responder interface {
	Respond(ctx context.Context, content string, predictionContext string) (string, error)
}
