package providers

import (
	"context"
	"errors"
)

// Message is one turn of a chat exchange with a text-generation provider.
type Message struct {
	Role    string
	Content string
}

// Provider abstracts the upstream text-generation service.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Name() string
}

// ErrUnavailable reports that no upstream provider is configured. Handlers
// treat it like any other upstream failure and serve deterministic fallback
// content.
var ErrUnavailable = errors.New("text generation provider unavailable")

// LocalProvider is the stand-in selected when no API key is configured. It
// has no generation capability; every call reports upstream unavailability.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	return "", ErrUnavailable
}

func (l *LocalProvider) Name() string {
	return "local"
}
