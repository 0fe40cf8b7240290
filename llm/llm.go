// Package llm abstracts the text-generation providers behind a single
// completion interface. Gemini and OpenAI backends are supported; the
// provider is selected at startup via configuration.
package llm

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmptyResponse = errors.New("llm returned an empty response")
	ErrNoAPIKey      = errors.New("llm api key not configured")
)

const (
	maxRetries     = 3
	initialBackoff = time.Second
)

// Client generates a completion for a prompt. Implementations are safe
// for concurrent use.
type Client interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Func adapts a function to the Client interface. Used by tests and
// for fallback stubs.
type Func func(ctx context.Context, prompt string, temperature float32) (string, error)

func (f Func) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	return f(ctx, prompt, temperature)
}

// completeWithRetry runs the call up to maxRetries times with doubling
// backoff. Context cancellation aborts between attempts.
func completeWithRetry(ctx context.Context, call func() (string, error)) (string, error) {
	var content string
	var err error

	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			backoff *= 2
		}

		content, err = call()
		if err != nil {
			continue
		}
		if content == "" {
			err = ErrEmptyResponse
			continue
		}
		return content, nil
	}
	return "", err
}
