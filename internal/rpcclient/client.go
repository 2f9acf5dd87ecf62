// Package rpcclient is the typed client for the PeerAgent surface. It hides
// connection setup, per-call deadlines, and stream lifecycle behind a small
// API that other peers and local tools share.
package rpcclient

import (
	"context"
	"fmt"
	"math"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding/gzip"
	"google.golang.org/grpc/keepalive"

	pb "github.com/arsac/peerd/proto"
)

const (
	// requestTimeout bounds every call except DownloadTask, whose duration
	// is set by the download itself.
	requestTimeout = 30 * time.Second

	// gRPC keepalive parameters.
	keepaliveTime    = 30 * time.Second // Send pings every 30 seconds if no activity
	keepaliveTimeout = 10 * time.Second // Wait 10 seconds for ping ack

	// Reconnect backoff parameters.
	backoffBaseDelay    = 1 * time.Second
	backoffMultiplier   = 1.6
	backoffJitter       = 0.2
	maxReconnectBackoff = 30 * time.Second

	// maxGRPCMessageSize is effectively unbounded; piece sizes are set by
	// the task, not by this client.
	maxGRPCMessageSize = math.MaxInt32
)

// Client is a typed PeerAgent client over one connection.
type Client struct {
	conn   *grpc.ClientConn
	client pb.PeerAgentClient
}

func dialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                keepaliveTime,
			Timeout:             keepaliveTimeout,
			PermitWithoutStream: true, // Send pings even without active streams
		}),
		grpc.WithConnectParams(grpc.ConnectParams{
			Backoff: backoff.Config{
				BaseDelay:  backoffBaseDelay,
				Multiplier: backoffMultiplier,
				Jitter:     backoffJitter,
				MaxDelay:   maxReconnectBackoff,
			},
		}),
		grpc.WithDefaultCallOptions(
			grpc.UseCompressor(gzip.Name),
			grpc.MaxCallRecvMsgSize(maxGRPCMessageSize),
			grpc.MaxCallSendMsgSize(maxGRPCMessageSize),
		),
	}
}

// New connects to a peer's TCP endpoint.
func New(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, dialOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return &Client{conn: conn, client: pb.NewPeerAgentClient(conn)}, nil
}

// NewUnix connects to the local agent over its unix socket.
func NewUnix(socketPath string) (*Client, error) {
	opts := append(dialOptions(), grpc.WithContextDialer(
		func(ctx context.Context, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		},
	))

	// The target is never resolved; the dialer above ignores it.
	conn, err := grpc.NewClient("passthrough:///peerd", opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", socketPath, err)
	}
	return &Client{conn: conn, client: pb.NewPeerAgentClient(conn)}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// GetPieceNumbers lists the pieces a peer holds for a task.
func (c *Client) GetPieceNumbers(ctx context.Context, taskID string) ([]int32, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.GetPieceNumbers(ctx, &pb.GetPieceNumbersRequest{TaskId: taskID})
	if err != nil {
		return nil, fmt.Errorf("get piece numbers RPC failed: %w", err)
	}
	return resp.GetPieceNumbers(), nil
}

// SyncPieces opens a piece stream for the given numbers. An empty numbers
// slice yields an empty stream. The whole stream must finish within the
// request timeout.
func (c *Client) SyncPieces(ctx context.Context, taskID string, numbers []int32) (*PieceStream, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)

	stream, err := c.client.SyncPieces(ctx, &pb.SyncPiecesRequest{
		TaskId: taskID,
		Request: &pb.SyncPiecesRequest_InterestedPiecesRequest{
			InterestedPiecesRequest: &pb.InterestedPiecesRequest{PieceNumbers: numbers},
		},
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("sync pieces RPC failed: %w", err)
	}
	return &PieceStream{stream: stream, cancel: cancel}, nil
}

// DownloadTask asks the agent to download a whole task, streaming one
// response per finished piece. The deadline comes from the download's own
// timeout; a download without one runs unbounded.
func (c *Client) DownloadTask(ctx context.Context, download *pb.Download) (*DownloadStream, error) {
	cancel := context.CancelFunc(func() {})
	if t := download.GetTimeout(); t != nil {
		ctx, cancel = context.WithTimeout(ctx, t.AsDuration())
	}

	stream, err := c.client.DownloadTask(ctx, &pb.DownloadTaskRequest{Download: download})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("download task RPC failed: %w", err)
	}
	return &DownloadStream{stream: stream, cancel: cancel}, nil
}

// StatTask looks a task up through the agent's scheduler proxy.
func (c *Client) StatTask(ctx context.Context, taskID string) (*pb.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	task, err := c.client.StatTask(ctx, &pb.StatTaskRequest{TaskId: taskID})
	if err != nil {
		return nil, fmt.Errorf("stat task RPC failed: %w", err)
	}
	return task, nil
}

// UploadTask asks the agent to upload a task. The agent currently rejects
// this with Unimplemented.
func (c *Client) UploadTask(ctx context.Context, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if _, err := c.client.UploadTask(ctx, &pb.UploadTaskRequest{TaskId: taskID}); err != nil {
		return fmt.Errorf("upload task RPC failed: %w", err)
	}
	return nil
}

// DeleteTask asks the agent to delete a task. The agent currently rejects
// this with Unimplemented.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if _, err := c.client.DeleteTask(ctx, &pb.DeleteTaskRequest{TaskId: taskID}); err != nil {
		return fmt.Errorf("delete task RPC failed: %w", err)
	}
	return nil
}

// PieceStream reads pieces off a SyncPieces stream. The stream context is
// released on the first Recv error, io.EOF included, or on Close.
type PieceStream struct {
	stream pb.PeerAgent_SyncPiecesClient
	cancel context.CancelFunc
}

// Recv returns the next piece. io.EOF marks a clean end of stream.
func (s *PieceStream) Recv() (*pb.Piece, error) {
	resp, err := s.stream.Recv()
	if err != nil {
		s.cancel()
		return nil, err
	}
	return resp.GetInterestedPiecesResponse().GetPiece(), nil
}

// Close releases the stream context. Recv must not be called afterwards.
func (s *PieceStream) Close() error {
	s.cancel()
	return nil
}

// DownloadStream reads per-piece progress off a DownloadTask stream.
type DownloadStream struct {
	stream pb.PeerAgent_DownloadTaskClient
	cancel context.CancelFunc
}

// Recv returns the next finished piece. io.EOF marks a completed download.
func (s *DownloadStream) Recv() (*pb.Piece, error) {
	resp, err := s.stream.Recv()
	if err != nil {
		s.cancel()
		return nil, err
	}
	return resp.GetPiece(), nil
}

// Close releases the stream context. Recv must not be called afterwards.
func (s *DownloadStream) Close() error {
	s.cancel()
	return nil
}
