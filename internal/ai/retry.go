package ai

import (
	"context"
	"time"
)

// RetryingClient wraps a CompletionClient with bounded exponential-backoff
// retry. The retry predicate is deliberately broad — the upstream service
// exposes no stable taxonomy of transient vs. permanent failures — except
// that a canceled or expired context aborts immediately. After the attempts
// are exhausted the last error is returned; the calling stage decides how to
// surface it.
type RetryingClient struct {
	inner     CompletionClient
	attempts  int
	baseDelay time.Duration
	maxDelay  time.Duration
	sleep     func(time.Duration)
}

func NewRetryingClient(inner CompletionClient) *RetryingClient {
	return &RetryingClient{
		inner:     inner,
		attempts:  3,
		baseDelay: time.Second,
		maxDelay:  10 * time.Second,
		sleep:     time.Sleep,
	}
}

func (r *RetryingClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	var out string
	err := r.do(ctx, func() error {
		var callErr error
		out, callErr = r.inner.Complete(ctx, req)
		return callErr
	})
	return out, err
}

func (r *RetryingClient) Transcribe(ctx context.Context, req TranscriptionRequest) (string, error) {
	var out string
	err := r.do(ctx, func() error {
		var callErr error
		out, callErr = r.inner.Transcribe(ctx, req)
		return callErr
	})
	return out, err
}

func (r *RetryingClient) do(ctx context.Context, call func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		lastErr = call()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || attempt == r.attempts {
			break
		}
		r.sleep(r.backoff(attempt))
	}
	return lastErr
}

// backoff doubles per attempt: 1s, 2s, 4s, ... capped at maxDelay.
func (r *RetryingClient) backoff(attempt int) time.Duration {
	delay := r.baseDelay << uint(attempt-1)
	if delay > r.maxDelay {
		delay = r.maxDelay
	}
	return delay
}
