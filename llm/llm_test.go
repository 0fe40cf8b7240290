package llm

import (
	"context"
	"errors"
	"testing"
)

func TestNew_UnsupportedProvider(t *testing.T) {
	_, err := New(context.Background(), Options{Provider: "anthropic", APIKey: "k"})
	if err == nil {
		t.Fatal("expected an error for unsupported provider")
	}
}

func TestNew_MissingAPIKey(t *testing.T) {
	for _, provider := range []string{"gemini", "openai"} {
		_, err := New(context.Background(), Options{Provider: provider})
		if !errors.Is(err, ErrNoAPIKey) {
			t.Errorf("provider %s: expected ErrNoAPIKey, got %v", provider, err)
		}
	}
}

func TestNew_OpenAI(t *testing.T) {
	client, err := New(context.Background(), Options{Provider: "openai", APIKey: "test-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected a client")
	}
}

func TestCompleteWithRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := completeWithRetry(context.Background(), func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("expected ok, got %q %v", got, err)
	}
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}

func TestCompleteWithRetry_RetriesTransientFailure(t *testing.T) {
	calls := 0
	got, err := completeWithRetry(context.Background(), func() (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("transient")
		}
		return "recovered", nil
	})
	if err != nil || got != "recovered" {
		t.Fatalf("expected recovery, got %q %v", got, err)
	}
	if calls != 2 {
		t.Fatalf("expected two calls, got %d", calls)
	}
}

func TestCompleteWithRetry_EmptyResponseIsAFailure(t *testing.T) {
	_, err := completeWithRetry(context.Background(), func() (string, error) {
		return "", nil
	})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestCompleteWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	_, err := completeWithRetry(context.Background(), func() (string, error) {
		calls++
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the last error, got %v", err)
	}
	if calls != maxRetries {
		t.Fatalf("expected %d calls, got %d", maxRetries, calls)
	}
}

func TestCompleteWithRetry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := completeWithRetry(ctx, func() (string, error) {
		return "", errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFunc_Adapts(t *testing.T) {
	var c Client = Func(func(ctx context.Context, prompt string, temperature float32) (string, error) {
		return "echo: " + prompt, nil
	})
	got, err := c.Complete(context.Background(), "hello", 0.2)
	if err != nil || got != "echo: hello" {
		t.Fatalf("unexpected result %q %v", got, err)
	}
}
