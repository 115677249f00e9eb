package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leofalp/hitsfinder/providers/ai"
)

// slowSend blocks for delay or until the context is done.
func slowSend(delay time.Duration) func(context.Context, ai.GenerateRequest) (*ai.GenerateResponse, error) {
	return func(ctx context.Context, _ ai.GenerateRequest) (*ai.GenerateResponse, error) {
		select {
		case <-time.After(delay):
			return &ai.GenerateResponse{Text: "done"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func TestTimeoutMiddleware_SendCompletesBeforeTimeout(t *testing.T) {
	chain := NewTimeoutMiddleware(time.Second).Send(slowSend(time.Millisecond))

	resp, err := chain(context.Background(), ai.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "done" {
		t.Errorf("expected 'done', got %q", resp.Text)
	}
}

func TestTimeoutMiddleware_SendExceedsTimeout(t *testing.T) {
	chain := NewTimeoutMiddleware(10 * time.Millisecond).Send(slowSend(time.Second))

	_, err := chain(context.Background(), ai.GenerateRequest{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

// TestTimeoutMiddleware_ExistingShorterDeadline verifies that a shorter caller
// deadline wins over the middleware timeout.
func TestTimeoutMiddleware_ExistingShorterDeadline(t *testing.T) {
	var deadline time.Time
	next := func(ctx context.Context, _ ai.GenerateRequest) (*ai.GenerateResponse, error) {
		deadline, _ = ctx.Deadline()
		return &ai.GenerateResponse{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	callerDeadline, _ := ctx.Deadline()

	chain := NewTimeoutMiddleware(time.Hour).Send(next)
	if _, err := chain(ctx, ai.GenerateRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !deadline.Equal(callerDeadline) {
		t.Errorf("expected caller deadline %v, got %v", callerDeadline, deadline)
	}
}

func TestTimeoutMiddleware_DisabledWhenNotPositive(t *testing.T) {
	var hasDeadline bool
	next := func(ctx context.Context, _ ai.GenerateRequest) (*ai.GenerateResponse, error) {
		_, hasDeadline = ctx.Deadline()
		return &ai.GenerateResponse{}, nil
	}

	chain := NewTimeoutMiddleware(0).Send(next)
	if _, err := chain(context.Background(), ai.GenerateRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hasDeadline {
		t.Error("expected no deadline for a zero timeout")
	}
}

// TestTimeoutMiddleware_DeadlineIsTransient verifies that a per-attempt
// timeout is retried by the default classifier.
func TestTimeoutMiddleware_DeadlineIsTransient(t *testing.T) {
	chain := NewTimeoutMiddleware(5 * time.Millisecond).Send(slowSend(time.Second))

	_, err := chain(context.Background(), ai.GenerateRequest{})
	if !ai.IsTransient(err) {
		t.Errorf("expected %v to be transient", err)
	}
}
