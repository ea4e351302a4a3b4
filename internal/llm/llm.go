package llm

import (
	"context"
	"errors"
)

// Completer abstracts the external text-completion capability the assisted
// scan mode depends on. Given a prompt it returns free-text lines; parsing
// those lines is the caller's concern.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrQuotaExceeded signals the upstream provider refused the call for quota
// or billing reasons. The scan orchestrator treats it as fatal to the whole
// assisted scan and falls back to static rules.
var ErrQuotaExceeded = errors.New("llm quota exceeded")

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
