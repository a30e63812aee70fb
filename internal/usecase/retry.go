package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"uniai/internal/domain"
	"uniai/internal/infra/metrics"
)

const (
	defaultMaxAttempts  = 3
	defaultRetryBackoff = 1 * time.Second
)

// RetryPolicy reruns a provider round trip a fixed number of times with a
// constant pause between attempts. Attempts are independent: no jitter, no
// exponential growth, no state carried over.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

func NewRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: defaultMaxAttempts,
		Backoff:     defaultRetryBackoff,
	}
}

// retryCompletion runs fn until it succeeds or the attempt budget is
// exhausted, then wraps the last failure into a terminal provider error
// carrying the attempt count. Context cancellation aborts the backoff wait.
func retryCompletion[T any](ctx context.Context, policy RetryPolicy, provider string, logger *slog.Logger, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			metrics.CompletionAttempts.WithLabelValues("success").Inc()
			return result, nil
		}
		lastErr = err
		metrics.CompletionAttempts.WithLabelValues("failure").Inc()
		logger.Warn("completion attempt failed",
			"attempt", attempt,
			"max_attempts", policy.MaxAttempts,
			"error", err,
		)

		if attempt == policy.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return zero, domain.NewProviderError(provider, ctx.Err())
		case <-time.After(policy.Backoff):
		}
	}

	return zero, domain.NewProviderError(provider, fmt.Errorf("all %d attempts failed: %w", policy.MaxAttempts, lastErr))
}
