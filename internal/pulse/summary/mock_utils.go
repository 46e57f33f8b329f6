package summary

import (
	"context"
)

// MockLLMClient returns a canned reply and counts calls.
type MockLLMClient struct {
	Response string
	Err      error
	Calls    int
	// LastPrompt records the prompt of the most recent call.
	LastPrompt string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
