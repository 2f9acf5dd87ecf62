package rpcserver

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/arsac/peerd/proto"
)

func startServer(t *testing.T, store PieceStore) *Server {
	t.Helper()

	srv := NewServer(Config{
		ListenAddr: "127.0.0.1:0",
		SocketPath: filepath.Join(t.TempDir(), "peerd.sock"),
	}, NewHandler(store, &fakeEngine{}, &fakeSchedulerClient{}, testLogger()), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(15 * time.Second):
			t.Error("server did not shut down")
		}
	})

	select {
	case <-srv.Ready():
	case err := <-done:
		t.Fatalf("server exited before ready: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("server never became ready")
	}
	return srv
}

func dialAgent(t *testing.T, target string) pb.PeerAgentClient {
	t.Helper()
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return pb.NewPeerAgentClient(conn)
}

func TestServerServesIdenticalResultsOnBothTransports(t *testing.T) {
	store := newMemStore()
	store.add("task-1", 0, []byte("aa"))
	store.add("task-1", 2, []byte("bb"))
	srv := startServer(t, store)

	tcpClient := dialAgent(t, srv.TCPAddr().String())
	unixClient := dialAgent(t, "unix://"+srv.SocketPath())

	ctx := testCtx(t)
	tcpResp, err := tcpClient.GetPieceNumbers(ctx, &pb.GetPieceNumbersRequest{TaskId: "task-1"})
	require.NoError(t, err)
	unixResp, err := unixClient.GetPieceNumbers(ctx, &pb.GetPieceNumbersRequest{TaskId: "task-1"})
	require.NoError(t, err)

	assert.Equal(t, []int32{0, 2}, tcpResp.GetPieceNumbers())
	assert.Equal(t, tcpResp.GetPieceNumbers(), unixResp.GetPieceNumbers())
}

func TestServerShutdownRemovesSocket(t *testing.T) {
	srv := NewServer(Config{
		ListenAddr: "127.0.0.1:0",
		SocketPath: filepath.Join(t.TempDir(), "peerd.sock"),
	}, NewHandler(newMemStore(), &fakeEngine{}, &fakeSchedulerClient{}, testLogger()), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	select {
	case <-srv.Ready():
	case <-time.After(10 * time.Second):
		t.Fatal("server never became ready")
	}

	cancel()
	select {
	case err := <-done:
		require.True(t, errors.Is(err, context.Canceled))
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err := os.Stat(srv.SocketPath())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestServerClearsStaleSocket(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "peerd.sock")

	// Leave a socket file behind the way a crashed process would.
	addr, err := net.ResolveUnixAddr("unix", socketPath)
	require.NoError(t, err)
	stale, err := net.ListenUnix("unix", addr)
	require.NoError(t, err)
	stale.SetUnlinkOnClose(false)
	require.NoError(t, stale.Close())

	_, statErr := os.Stat(socketPath)
	require.NoError(t, statErr)

	store := newMemStore()
	store.add("task-1", 0, []byte("aa"))
	srv := NewServer(Config{
		ListenAddr: "127.0.0.1:0",
		SocketPath: socketPath,
	}, NewHandler(store, &fakeEngine{}, &fakeSchedulerClient{}, testLogger()), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	select {
	case <-srv.Ready():
	case err := <-done:
		t.Fatalf("server exited before ready: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("server never became ready")
	}

	client := dialAgent(t, "unix://"+socketPath)
	resp, err := client.GetPieceNumbers(testCtx(t), &pb.GetPieceNumbersRequest{TaskId: "task-1"})
	require.NoError(t, err)
	assert.Equal(t, []int32{0}, resp.GetPieceNumbers())
}

func TestServerRejectsNonSocketPath(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "peerd.sock")
	require.NoError(t, os.WriteFile(socketPath, []byte("not a socket"), 0o644))

	srv := NewServer(Config{
		ListenAddr: "127.0.0.1:0",
		SocketPath: socketPath,
	}, NewHandler(newMemStore(), &fakeEngine{}, &fakeSchedulerClient{}, testLogger()), testLogger())

	err := srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a socket")
}
