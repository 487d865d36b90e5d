package services

import (
	"context"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// StubModel is a scripted Model. It streams Chunks through the caller's
// streaming func, optionally failing after FailAfter chunks (0 = never).
// It also serves as the keyless local fallback provider.
type StubModel struct {
	Chunks    []string
	Err       error
	FailAfter int

	mu    sync.Mutex
	calls [][]llms.MessageContent
}

// LocalModel returns a stub that echoes a canned reply, used when no provider
// API key is configured.
func LocalModel() *StubModel {
	return &StubModel{Chunks: []string{
		"Ruby AI is running without an upstream provider. ",
		"Set GROQ_API_KEY / OPENROUTER_API_KEY to get real answers.",
	}}
}

func (m *StubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, messages)
	m.mu.Unlock()

	opts := llms.CallOptions{}
	for _, o := range options {
		o(&opts)
	}

	var full strings.Builder
	for i, chunk := range m.Chunks {
		if m.Err != nil && m.FailAfter > 0 && i >= m.FailAfter {
			return nil, m.Err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		full.WriteString(chunk)
		if opts.StreamingFunc != nil {
			if err := opts.StreamingFunc(ctx, []byte(chunk)); err != nil {
				return nil, err
			}
		}
	}
	if m.Err != nil && m.FailAfter == 0 {
		return nil, m.Err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: full.String()}},
	}, nil
}

// Calls returns the transcripts this model has been asked to complete.
func (m *StubModel) Calls() [][]llms.MessageContent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]llms.MessageContent, len(m.calls))
	copy(out, m.calls)
	return out
}
