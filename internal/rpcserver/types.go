package rpcserver

import (
	"context"
	"io"

	"github.com/arsac/peerd/internal/downloader"
	"github.com/arsac/peerd/internal/storage"
	pb "github.com/arsac/peerd/proto"
)

// PieceStore is the slice of local storage the RPC surface reads from.
// This interface allows for mocking in tests.
type PieceStore interface {
	Pieces(ctx context.Context, taskID string) ([]storage.PieceMetadata, error)
	Piece(ctx context.Context, taskID string, number int32) (*storage.PieceMetadata, error)
	OpenPieceReader(ctx context.Context, taskID string, number int32) (io.ReadCloser, error)
}

// DownloadEngine starts whole-task downloads and reports progress.
type DownloadEngine interface {
	DownloadIntoFile(ctx context.Context, download *pb.Download) (<-chan downloader.Progress, error)
}

// SchedulerClient is the slice of the scheduler surface StatTask proxies to.
type SchedulerClient interface {
	StatTask(ctx context.Context, taskID string) (*pb.Task, error)
}
