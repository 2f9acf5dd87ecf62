package rpcclient

import (
	"context"
	"errors"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/durationpb"

	pb "github.com/arsac/peerd/proto"
)

// fakeAgent records the deadline of each call and serves scripted pieces.
type fakeAgent struct {
	pb.UnimplementedPeerAgentServer

	pieces []*pb.Piece

	statDeadline     chan time.Time // zero time means no deadline
	downloadDeadline chan time.Time
}

func newFakeAgent() *fakeAgent {
	return &fakeAgent{
		statDeadline:     make(chan time.Time, 1),
		downloadDeadline: make(chan time.Time, 1),
	}
}

func (f *fakeAgent) GetPieceNumbers(_ context.Context, _ *pb.GetPieceNumbersRequest) (*pb.GetPieceNumbersResponse, error) {
	numbers := make([]int32, 0, len(f.pieces))
	for _, p := range f.pieces {
		numbers = append(numbers, p.GetNumber())
	}
	return &pb.GetPieceNumbersResponse{PieceNumbers: numbers}, nil
}

func (f *fakeAgent) SyncPieces(_ *pb.SyncPiecesRequest, stream pb.PeerAgent_SyncPiecesServer) error {
	for _, p := range f.pieces {
		resp := &pb.SyncPiecesResponse{
			Response: &pb.SyncPiecesResponse_InterestedPiecesResponse{
				InterestedPiecesResponse: &pb.InterestedPiecesResponse{Piece: p},
			},
		}
		if err := stream.Send(resp); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAgent) DownloadTask(_ *pb.DownloadTaskRequest, stream pb.PeerAgent_DownloadTaskServer) error {
	deadline, ok := stream.Context().Deadline()
	if !ok {
		deadline = time.Time{}
	}
	f.downloadDeadline <- deadline

	for _, p := range f.pieces {
		if err := stream.Send(&pb.DownloadTaskResponse{Piece: p}); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAgent) StatTask(ctx context.Context, req *pb.StatTaskRequest) (*pb.Task, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	f.statDeadline <- deadline
	return &pb.Task{Id: req.GetTaskId()}, nil
}

func serveFakeAgent(t *testing.T, fake *fakeAgent, network, addr string) {
	t.Helper()
	lis, err := net.Listen(network, addr)
	require.NoError(t, err)

	srv := grpc.NewServer()
	pb.RegisterPeerAgentServer(srv, fake)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
}

func startTCPAgent(t *testing.T, fake *fakeAgent) *Client {
	t.Helper()
	lis, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	pb.RegisterPeerAgentServer(srv, fake)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	client, err := New(lis.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestGetPieceNumbers(t *testing.T) {
	fake := newFakeAgent()
	fake.pieces = []*pb.Piece{{Number: 0}, {Number: 2}, {Number: 1}}
	client := startTCPAgent(t, fake)

	numbers, err := client.GetPieceNumbers(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 2, 1}, numbers)
}

func TestSyncPiecesStreamAndEOF(t *testing.T) {
	fake := newFakeAgent()
	fake.pieces = []*pb.Piece{
		{Number: 0, Content: []byte("aa")},
		{Number: 1, Content: []byte("bb")},
	}
	client := startTCPAgent(t, fake)

	stream, err := client.SyncPieces(context.Background(), "task-1", []int32{0, 1})
	require.NoError(t, err)
	defer stream.Close()

	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, []byte("aa"), first.GetContent())

	second, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, int32(1), second.GetNumber())

	_, err = stream.Recv()
	require.True(t, errors.Is(err, io.EOF))
}

func TestStatTaskAppliesRequestTimeout(t *testing.T) {
	fake := newFakeAgent()
	client := startTCPAgent(t, fake)

	before := time.Now()
	task, err := client.StatTask(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, "task-1", task.GetId())

	deadline := <-fake.statDeadline
	require.False(t, deadline.IsZero())
	remaining := deadline.Sub(before)
	assert.Greater(t, remaining, 20*time.Second)
	assert.LessOrEqual(t, remaining, requestTimeout)
}

func TestDownloadTaskDeadlineFromDownloadTimeout(t *testing.T) {
	fake := newFakeAgent()
	client := startTCPAgent(t, fake)

	before := time.Now()
	stream, err := client.DownloadTask(context.Background(), &pb.Download{
		TaskId:     "task-1",
		ParentAddr: "parent:65000",
		Timeout:    durationpb.New(5 * time.Second),
	})
	require.NoError(t, err)
	defer stream.Close()

	_, err = stream.Recv()
	require.True(t, errors.Is(err, io.EOF))

	deadline := <-fake.downloadDeadline
	require.False(t, deadline.IsZero())
	remaining := deadline.Sub(before)
	assert.Greater(t, remaining, 2*time.Second)
	assert.LessOrEqual(t, remaining, 5*time.Second)
}

func TestDownloadTaskUnboundedWithoutTimeout(t *testing.T) {
	fake := newFakeAgent()
	fake.pieces = []*pb.Piece{{Number: 0}}
	client := startTCPAgent(t, fake)

	stream, err := client.DownloadTask(context.Background(), &pb.Download{
		TaskId:     "task-1",
		ParentAddr: "parent:65000",
	})
	require.NoError(t, err)
	defer stream.Close()

	piece, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, int32(0), piece.GetNumber())

	deadline := <-fake.downloadDeadline
	assert.True(t, deadline.IsZero())
}

func TestNewUnixDialsSocket(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "peerd.sock")
	fake := newFakeAgent()
	fake.pieces = []*pb.Piece{{Number: 3}}
	serveFakeAgent(t, fake, "unix", socketPath)

	client, err := NewUnix(socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	numbers, err := client.GetPieceNumbers(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, []int32{3}, numbers)
}
