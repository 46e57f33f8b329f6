package llm

import (
	"context"
)

// Client is the narrow surface the summarizer depends on. Implementations
// use deterministic sampling (low temperature) and a bounded output-token
// budget; tests inject stubs returning fixed replies.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
