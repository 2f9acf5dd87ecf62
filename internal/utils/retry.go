package utils

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Default retry configuration values.
const (
	defaultMaxAttempts  = 3
	defaultInitialDelay = 500 * time.Millisecond
	defaultMaxDelay     = 5 * time.Second
)

// Default circuit breaker configuration values.
const (
	defaultCBMaxFailures  = 5
	defaultCBResetTimeout = 30 * time.Second
)

// RetryConfig configures retry behavior with exponential backoff.
type RetryConfig struct {
	MaxAttempts      int           // Maximum number of attempts (including first try)
	InitialDelay     time.Duration // Initial delay between retries
	MaxDelay         time.Duration // Maximum delay between retries
	RetriableChecker func(error) bool
}

// DefaultRetryConfig returns sensible defaults for retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:      defaultMaxAttempts,
		InitialDelay:     defaultInitialDelay,
		MaxDelay:         defaultMaxDelay,
		RetriableChecker: IsRetriableError,
	}
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	MaxFailures  int           // Failures before opening circuit
	ResetTimeout time.Duration // Time before probing again after opening
}

// DefaultCircuitBreakerConfig returns sensible defaults.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures:  defaultCBMaxFailures,
		ResetTimeout: defaultCBResetTimeout,
	}
}

// grpcStatusProvider is implemented by errors that wrap a gRPC status
// (e.g., fmt.Errorf("...: %w", statusErr)). status.FromError only checks
// the outermost error, so we fall back to errors.As for wrapped errors.
type grpcStatusProvider interface {
	GRPCStatus() *status.Status
}

// GRPCErrorCode extracts the gRPC status code from an error, if present.
// Returns codes.Unknown if the error is not a gRPC status error.
func GRPCErrorCode(err error) codes.Code {
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}
	// Fall back to unwrapping wrapped gRPC errors
	var provider grpcStatusProvider
	if errors.As(err, &provider) {
		return provider.GRPCStatus().Code()
	}
	return codes.Unknown
}

// IsRetriableError determines if an error is transient and worth retrying.
// This is the default checker - callers can provide custom checkers.
// Every remote surface here is gRPC, so the decision is code-based.
func IsRetriableError(err error) bool {
	if err == nil {
		return false
	}

	// Context errors are NOT retriable (caller cancelled)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	//nolint:exhaustive // Only specific transient codes are relevant
	switch GRPCErrorCode(err) {
	case codes.Unavailable, codes.ResourceExhausted, codes.Aborted, codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

// NewRetryPolicy builds a failsafe retry policy from config. onRetry, when
// non-nil, fires once per retry attempt (metrics hook).
func NewRetryPolicy(config RetryConfig, logger *slog.Logger, onRetry func()) retrypolicy.RetryPolicy[any] {
	checker := config.RetriableChecker
	if checker == nil {
		checker = IsRetriableError
	}

	return retrypolicy.NewBuilder[any]().
		HandleIf(func(_ any, err error) bool {
			return checker(err)
		}).
		WithMaxAttempts(config.MaxAttempts).
		WithBackoff(config.InitialDelay, config.MaxDelay).
		OnRetry(func(e failsafe.ExecutionEvent[any]) {
			if logger != nil {
				logger.Warn("operation failed, retrying",
					"attempt", e.Attempts(),
					"error", e.LastError(),
				)
			}
			if onRetry != nil {
				onRetry()
			}
		}).
		Build()
}

// IsCircuitBreakerFailure reports whether an error should count against the
// circuit breaker. Caller cancellation and not-found responses are the
// caller's problem, not the remote's.
func IsCircuitBreakerFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	//nolint:exhaustive // Only caller-side codes are exempt
	switch GRPCErrorCode(err) {
	case codes.NotFound, codes.InvalidArgument, codes.Canceled:
		return false
	default:
		return true
	}
}
