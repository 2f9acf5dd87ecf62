// Package scheduler talks to the scheduler service that tracks tasks across
// the peer fleet. All calls go through a retry + circuit breaker executor so
// a flapping scheduler does not take the agent down with it.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding/gzip"
	"google.golang.org/grpc/keepalive"

	"github.com/arsac/peerd/internal/metrics"
	"github.com/arsac/peerd/internal/utils"
	pb "github.com/arsac/peerd/proto"
)

const (
	// gRPC keepalive parameters.
	keepaliveTime    = 30 * time.Second // Send pings every 30 seconds if no activity
	keepaliveTimeout = 10 * time.Second // Wait 10 seconds for ping ack

	requestTimeout = 30 * time.Second
)

// Client defines the scheduler operations the agent depends on.
// This interface allows for mocking in tests.
type Client interface {
	StatTask(ctx context.Context, taskID string) (*pb.Task, error)
	Close() error
}

// Ensure ResilientClient implements Client interface.
var _ Client = (*ResilientClient)(nil)

// Config configures the resilient scheduler client.
type Config struct {
	Retry          utils.RetryConfig
	CircuitBreaker *utils.CircuitBreakerConfig // nil to disable circuit breaker
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Retry:          utils.DefaultRetryConfig(),
		CircuitBreaker: defaultCBConfig(),
	}
}

func defaultCBConfig() *utils.CircuitBreakerConfig {
	cfg := utils.DefaultCircuitBreakerConfig()
	return &cfg
}

// ResilientClient wraps the scheduler gRPC client with retry and circuit
// breaker logic.
type ResilientClient struct {
	conn     *grpc.ClientConn
	client   pb.SchedulerClient
	logger   *slog.Logger
	executor failsafe.Executor[any]
	cb       circuitbreaker.CircuitBreaker[any] // nil if CB disabled; for state inspection
}

// New dials the scheduler and builds a resilient client around the
// connection.
func New(addr string, config Config, logger *slog.Logger) (*ResilientClient, error) {
	kaParams := keepalive.ClientParameters{
		Time:                keepaliveTime,
		Timeout:             keepaliveTimeout,
		PermitWithoutStream: true, // Send pings even without active streams
	}

	conn, err := grpc.NewClient(
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(kaParams),
		grpc.WithDefaultCallOptions(grpc.UseCompressor(gzip.Name)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to scheduler: %w", err)
	}

	return NewWithClient(conn, pb.NewSchedulerClient(conn), config, logger), nil
}

// NewWithClient builds a resilient client around an existing connection and
// stub. conn may be nil when the caller owns the connection lifecycle.
func NewWithClient(
	conn *grpc.ClientConn,
	client pb.SchedulerClient,
	config Config,
	logger *slog.Logger,
) *ResilientClient {
	// Wrap the retriable checker to explicitly reject circuitbreaker.ErrOpen,
	// so retry aborts immediately when the circuit breaker is open.
	retryConfig := config.Retry
	originalChecker := retryConfig.RetriableChecker
	if originalChecker == nil {
		originalChecker = utils.IsRetriableError
	}
	retryConfig.RetriableChecker = func(err error) bool {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			return false
		}
		return originalChecker(err)
	}

	retryPolicy := utils.NewRetryPolicy(retryConfig, logger, func() {
		metrics.SchedulerRetriesTotal.Inc()
	})

	var cb circuitbreaker.CircuitBreaker[any]
	var policies []failsafe.Policy[any]

	if config.CircuitBreaker != nil {
		cb = circuitbreaker.NewBuilder[any]().
			WithFailureThreshold(uint(config.CircuitBreaker.MaxFailures)).
			WithSuccessThreshold(1).
			WithDelay(config.CircuitBreaker.ResetTimeout).
			HandleIf(func(_ any, err error) bool {
				return utils.IsCircuitBreakerFailure(err)
			}).
			OnOpen(func(e circuitbreaker.StateChangedEvent) {
				logger.Warn("scheduler circuit breaker opened")
				metrics.CircuitBreakerTripsTotal.WithLabelValues("scheduler").Inc()
				metrics.CircuitBreakerState.WithLabelValues("scheduler").Set(metrics.CircuitStateOpen)
			}).
			OnHalfOpen(func(e circuitbreaker.StateChangedEvent) {
				logger.Info("scheduler circuit breaker half-open, probing")
				metrics.CircuitBreakerState.WithLabelValues("scheduler").Set(metrics.CircuitStateHalfOpen)
			}).
			OnClose(func(e circuitbreaker.StateChangedEvent) {
				logger.Info("scheduler circuit breaker closed")
				metrics.CircuitBreakerState.WithLabelValues("scheduler").Set(metrics.CircuitStateClosed)
			}).
			Build()
		// Retry wraps CircuitBreaker: each retry attempt checks CB first.
		// If CB is open, circuitbreaker.ErrOpen is returned, and the
		// retry HandleIf rejects it immediately (no pointless retries).
		policies = []failsafe.Policy[any]{retryPolicy, cb}
	} else {
		policies = []failsafe.Policy[any]{retryPolicy}
	}

	return &ResilientClient{
		conn:     conn,
		client:   client,
		logger:   logger,
		executor: failsafe.With(policies...),
		cb:       cb,
	}
}

// StatTask looks a task up on the scheduler with retry.
func (r *ResilientClient) StatTask(ctx context.Context, taskID string) (*pb.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	start := time.Now()
	result, err := r.executor.WithContext(ctx).Get(func() (any, error) {
		return r.client.StatTask(ctx, &pb.SchedulerStatRequest{Id: taskID})
	})
	metrics.SchedulerRequestDuration.WithLabelValues("StatTask").Observe(time.Since(start).Seconds())
	metrics.SchedulerRequestsTotal.WithLabelValues("StatTask").Inc()
	if err != nil {
		return nil, fmt.Errorf("stat task RPC failed: %w", err)
	}

	task, ok := result.(*pb.Task)
	if !ok {
		return nil, fmt.Errorf("unexpected type from executor: %T", result)
	}
	return task, nil
}

// Validate checks that the scheduler is reachable. Used as a readiness
// probe before the agent starts serving.
func (r *ResilientClient) Validate(ctx context.Context) error {
	if r.conn == nil {
		return nil
	}
	state := r.conn.GetState()
	r.logger.Debug("scheduler connection state", "state", state.String())
	return nil
}

// Close closes the scheduler connection.
func (r *ResilientClient) Close() error {
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}
