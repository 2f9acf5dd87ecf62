// Package rpcserver serves the PeerAgent surface over two transports at
// once: a TCP listener for other peers and a unix socket for local clients.
package rpcserver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"net"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	_ "google.golang.org/grpc/encoding/gzip" // Register the gzip compressor
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	pb "github.com/arsac/peerd/proto"
)

const (
	// maxGRPCMessageSize is effectively unbounded: pieces are held whole in
	// sync responses and their size is set by the task's piece length, which
	// the agent does not control.
	maxGRPCMessageSize = math.MaxInt32

	// gracefulShutdownTimeout is how long GracefulStop waits for active
	// streams to finish before force-stopping. Long-lived piece streams can
	// block shutdown indefinitely without this timeout.
	gracefulShutdownTimeout = 10 * time.Second

	// gRPC keepalive parameters.
	keepalivePingInterval = 30 * time.Second // Send pings if no activity
	keepalivePingTimeout  = 10 * time.Second // Wait for ping ack before closing
	keepaliveMinPingTime  = 15 * time.Second // Minimum allowed client ping frequency
)

// Config configures the RPC server.
type Config struct {
	ListenAddr string // TCP address other peers dial
	SocketPath string // Unix socket path local clients dial
}

// Server runs one gRPC service over both transports.
type Server struct {
	config  Config
	handler pb.PeerAgentServer
	logger  *slog.Logger

	server *grpc.Server

	readyOnce sync.Once
	ready     chan struct{}

	mu       sync.Mutex
	tcpAddr  net.Addr
	unixAddr net.Addr
}

// NewServer creates the RPC server around a PeerAgent handler.
func NewServer(config Config, handler pb.PeerAgentServer, logger *slog.Logger) *Server {
	return &Server{
		config:  config,
		handler: handler,
		logger:  logger,
		ready:   make(chan struct{}),
	}
}

// Ready is closed once both listeners are bound and the server is accepting
// connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// TCPAddr returns the bound TCP address, nil before Ready.
func (s *Server) TCPAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tcpAddr
}

// SocketPath returns the unix socket path.
func (s *Server) SocketPath() string {
	return s.config.SocketPath
}

// Run starts serving on both transports and blocks until the context is
// cancelled or a listener fails.
func (s *Server) Run(ctx context.Context) error {
	lc := net.ListenConfig{}

	tcpListener, err := lc.Listen(ctx, "tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen tcp %s: %w", s.config.ListenAddr, err)
	}

	unixListener, err := s.listenUnix(ctx, &lc)
	if err != nil {
		_ = tcpListener.Close()
		return err
	}

	s.server = grpc.NewServer(
		grpc.MaxRecvMsgSize(maxGRPCMessageSize),
		grpc.MaxSendMsgSize(maxGRPCMessageSize),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    keepalivePingInterval,
			Timeout: keepalivePingTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             keepaliveMinPingTime,
			PermitWithoutStream: true, // Allow pings even when no active streams
		}),
	)
	pb.RegisterPeerAgentServer(s.server, s.handler)

	// Register standard gRPC health service
	grpcHealthServer := grpchealth.NewServer()
	healthpb.RegisterHealthServer(s.server, grpcHealthServer)
	grpcHealthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	reflection.Register(s.server)

	s.mu.Lock()
	s.tcpAddr = tcpListener.Addr()
	s.unixAddr = unixListener.Addr()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "starting gRPC server",
		"addr", tcpListener.Addr().String(),
		"socket", s.config.SocketPath,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.server.Serve(tcpListener) })
	g.Go(func() error { return s.server.Serve(unixListener) })

	s.readyOnce.Do(func() { close(s.ready) })

	errCh := make(chan error, 1)
	go func() { errCh <- g.Wait() }()

	select {
	case <-gctx.Done():
		if ctx.Err() == nil {
			// A listener failed on its own; stop the other transport and
			// surface the error.
			s.server.Stop()
			err := <-errCh
			s.removeSocket()
			return err
		}
		s.logger.InfoContext(ctx, "shutting down gRPC server")

		// Try graceful shutdown first, then force-stop after timeout.
		// GracefulStop blocks until all active RPCs finish — long-lived
		// piece streams can block indefinitely.
		stopped := make(chan struct{})
		go func() {
			s.server.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(gracefulShutdownTimeout):
			s.logger.WarnContext(ctx, "graceful shutdown timed out, forcing stop")
			s.server.Stop()
			<-stopped // Wait for GracefulStop to return after Stop
		}

		<-errCh
		s.removeSocket()
		return ctx.Err()
	case err := <-errCh:
		s.removeSocket()
		return err
	}
}

// listenUnix binds the unix socket, clearing any stale socket file left by a
// previous run.
func (s *Server) listenUnix(ctx context.Context, lc *net.ListenConfig) (net.Listener, error) {
	if info, err := os.Lstat(s.config.SocketPath); err == nil {
		if info.Mode().Type() != fs.ModeSocket {
			return nil, fmt.Errorf("socket path %s exists and is not a socket", s.config.SocketPath)
		}
		s.logger.Warn("removing stale socket", "path", s.config.SocketPath)
		if err := os.Remove(s.config.SocketPath); err != nil {
			return nil, fmt.Errorf("remove stale socket: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat socket path: %w", err)
	}

	listener, err := lc.Listen(ctx, "unix", s.config.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("listen unix %s: %w", s.config.SocketPath, err)
	}
	return listener, nil
}

func (s *Server) removeSocket() {
	if err := os.Remove(s.config.SocketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("failed to remove socket", "path", s.config.SocketPath, "error", err)
	}
}
