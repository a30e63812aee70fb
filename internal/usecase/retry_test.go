package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"uniai/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}
}

func TestRetryCompletion_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := retryCompletion(context.Background(), testPolicy(), "deepseek", slog.Default(), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestRetryCompletion_RecoversAfterFailure(t *testing.T) {
	calls := 0
	result, err := retryCompletion(context.Background(), testPolicy(), "deepseek", slog.Default(), func(ctx context.Context) (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("transient failure")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, calls)
}

func TestRetryCompletion_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := retryCompletion(context.Background(), testPolicy(), "deepseek", slog.Default(), func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("always failing")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "all 3 attempts failed")
	assert.Contains(t, err.Error(), "always failing")

	var domErr *domain.Error
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, domain.KindProvider, domErr.Kind)
	assert.Equal(t, 500, domErr.Status)
}

func TestRetryCompletion_ContextCancelDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxAttempts: 3, Backoff: time.Minute}

	calls := 0
	_, err := retryCompletion(ctx, policy, "deepseek", slog.Default(), func(ctx context.Context) (string, error) {
		calls++
		cancel()
		return "", errors.New("failure")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}
