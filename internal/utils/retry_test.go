package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestGRPCErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{
			name: "direct status error",
			err:  status.Error(codes.NotFound, "missing"),
			want: codes.NotFound,
		},
		{
			name: "wrapped status error",
			err:  fmt.Errorf("call failed: %w", status.Error(codes.Unavailable, "down")),
			want: codes.Unavailable,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: codes.Unknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GRPCErrorCode(tt.err))
		})
	}
}

func TestIsRetriableError(t *testing.T) {
	assert.False(t, IsRetriableError(nil))
	assert.False(t, IsRetriableError(context.Canceled))
	assert.False(t, IsRetriableError(context.DeadlineExceeded))
	assert.False(t, IsRetriableError(status.Error(codes.NotFound, "missing")))
	assert.False(t, IsRetriableError(status.Error(codes.InvalidArgument, "bad")))

	assert.True(t, IsRetriableError(status.Error(codes.Unavailable, "down")))
	assert.True(t, IsRetriableError(status.Error(codes.ResourceExhausted, "busy")))
	assert.True(t, IsRetriableError(status.Error(codes.Aborted, "conflict")))
	assert.True(t, IsRetriableError(fmt.Errorf("wrapped: %w", status.Error(codes.DeadlineExceeded, "slow"))))
}

func TestIsCircuitBreakerFailure(t *testing.T) {
	assert.False(t, IsCircuitBreakerFailure(nil))
	assert.False(t, IsCircuitBreakerFailure(context.Canceled))
	assert.False(t, IsCircuitBreakerFailure(status.Error(codes.NotFound, "missing")))
	assert.False(t, IsCircuitBreakerFailure(status.Error(codes.InvalidArgument, "bad")))

	assert.True(t, IsCircuitBreakerFailure(status.Error(codes.Unavailable, "down")))
	assert.True(t, IsCircuitBreakerFailure(errors.New("boom")))
}

func TestRetryPolicyRetriesTransientThenSucceeds(t *testing.T) {
	config := RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
	}
	retries := 0
	policy := NewRetryPolicy(config, nil, func() { retries++ })

	attempts := 0
	result, err := failsafe.With[any](policy).Get(func() (any, error) {
		attempts++
		if attempts < 3 {
			return nil, status.Error(codes.Unavailable, "down")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 2, retries)
}

func TestRetryPolicyDoesNotRetryPermanentErrors(t *testing.T) {
	config := DefaultRetryConfig()
	policy := NewRetryPolicy(config, nil, nil)

	attempts := 0
	_, err := failsafe.With[any](policy).Get(func() (any, error) {
		attempts++
		return nil, status.Error(codes.NotFound, "missing")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}
