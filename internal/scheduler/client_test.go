package scheduler

import (
	"context"
	"io"
	"log/slog"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/arsac/peerd/internal/utils"
	pb "github.com/arsac/peerd/proto"
)

type fakeScheduler struct {
	pb.UnimplementedSchedulerServer

	tasks map[string]*pb.Task
	calls atomic.Int32
	// failuresBeforeSuccess makes the first N calls fail with Unavailable.
	failuresBeforeSuccess int32
}

func (f *fakeScheduler) StatTask(_ context.Context, req *pb.SchedulerStatRequest) (*pb.Task, error) {
	n := f.calls.Add(1)
	if n <= f.failuresBeforeSuccess {
		return nil, status.Error(codes.Unavailable, "scheduler restarting")
	}
	task, ok := f.tasks[req.GetId()]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "task %s not found", req.GetId())
	}
	return task, nil
}

func startFakeScheduler(t *testing.T, fake *fakeScheduler) string {
	t.Helper()

	lis, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	pb.RegisterSchedulerServer(srv, fake)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return lis.Addr().String()
}

func newTestClient(t *testing.T, addr string, config Config) *ResilientClient {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := New(addr, config, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func fastRetryConfig() Config {
	return Config{
		Retry: utils.RetryConfig{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			MaxDelay:     5 * time.Millisecond,
		},
	}
}

func TestStatTaskReturnsTask(t *testing.T) {
	addr := startFakeScheduler(t, &fakeScheduler{
		tasks: map[string]*pb.Task{
			"task-1": {Id: "task-1", Url: "http://origin/file.bin", PieceCount: 8},
		},
	})
	client := newTestClient(t, addr, fastRetryConfig())

	task, err := client.StatTask(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, "task-1", task.GetId())
	assert.Equal(t, int32(8), task.GetPieceCount())
}

func TestStatTaskNotFoundIsNotRetried(t *testing.T) {
	fake := &fakeScheduler{tasks: map[string]*pb.Task{}}
	addr := startFakeScheduler(t, fake)
	client := newTestClient(t, addr, fastRetryConfig())

	_, err := client.StatTask(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, utils.GRPCErrorCode(err))
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestStatTaskRetriesTransientFailures(t *testing.T) {
	fake := &fakeScheduler{
		tasks:                 map[string]*pb.Task{"task-1": {Id: "task-1"}},
		failuresBeforeSuccess: 2,
	}
	addr := startFakeScheduler(t, fake)
	client := newTestClient(t, addr, fastRetryConfig())

	task, err := client.StatTask(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, "task-1", task.GetId())
	assert.Equal(t, int32(3), fake.calls.Load())
}

func TestStatTaskCircuitBreakerOpens(t *testing.T) {
	fake := &fakeScheduler{
		tasks:                 map[string]*pb.Task{},
		failuresBeforeSuccess: 100,
	}
	addr := startFakeScheduler(t, fake)

	config := fastRetryConfig()
	config.CircuitBreaker = &utils.CircuitBreakerConfig{
		MaxFailures:  2,
		ResetTimeout: time.Minute,
	}
	client := newTestClient(t, addr, config)

	_, err := client.StatTask(context.Background(), "task-1")
	require.Error(t, err)

	// The breaker has seen enough failures to open; the next call must fail
	// without reaching the server.
	before := fake.calls.Load()
	_, err = client.StatTask(context.Background(), "task-1")
	require.Error(t, err)
	assert.Equal(t, before, fake.calls.Load())
}
