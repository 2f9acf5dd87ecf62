// Package downloader fetches whole tasks piece by piece from a parent peer
// and persists them locally, reporting per-piece progress to the caller.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/arsac/peerd/internal/metrics"
	"github.com/arsac/peerd/internal/storage"
	pb "github.com/arsac/peerd/proto"
)

const (
	// progressBuffer keeps the engine from blocking on a slow consumer
	// between pieces.
	progressBuffer = 16

	// rateLimitChunk caps a single limiter reservation so pieces larger
	// than the limiter burst still make progress.
	rateLimitChunk = 64 * 1024
)

// ErrInvalidDownload marks download requests rejected before any work
// started.
var ErrInvalidDownload = errors.New("invalid download")

// PieceStream yields pieces from a parent peer one at a time. Recv returns
// io.EOF when the stream is exhausted.
type PieceStream interface {
	Recv() (*pb.Piece, error)
	Close() error
}

// PeerClient is the slice of the peer RPC surface the engine needs.
type PeerClient interface {
	GetPieceNumbers(ctx context.Context, taskID string) ([]int32, error)
	SyncPieces(ctx context.Context, taskID string, numbers []int32) (PieceStream, error)
	Close() error
}

// DialFunc connects to a parent peer.
type DialFunc func(addr string) (PeerClient, error)

// PieceWriter is the slice of the storage surface the engine needs.
type PieceWriter interface {
	CreateTask(ctx context.Context, task storage.TaskMetadata) error
	UpdateTaskState(ctx context.Context, taskID, state string) error
	WritePiece(ctx context.Context, taskID string, meta storage.PieceMetadata, content []byte) error
	BlobPath(taskID string) string
}

// FinishedPiece describes one piece the engine has fetched and persisted.
type FinishedPiece struct {
	Number    int32
	Offset    uint64
	Length    uint64
	Digest    string
	Cost      time.Duration
	CreatedAt time.Time
}

// Progress is one event on the engine's progress channel: either a finished
// piece or the terminal error that ended the download. After an event with
// Err set, the channel is closed.
type Progress struct {
	Piece *FinishedPiece
	Err   error
}

// Config configures the download engine.
type Config struct {
	// Concurrency is the number of piece streams fetched in parallel.
	Concurrency int
	// RateLimit caps download throughput in bytes per second. Zero means
	// unlimited.
	RateLimit int
}

// Engine downloads tasks from parent peers into local storage.
type Engine struct {
	dial    DialFunc
	store   PieceWriter
	logger  *slog.Logger
	config  Config
	limiter *rate.Limiter
}

// NewEngine creates a download engine.
func NewEngine(dial DialFunc, store PieceWriter, config Config, logger *slog.Logger) *Engine {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimit)
	}
	return &Engine{
		dial:    dial,
		store:   store,
		logger:  logger,
		config:  config,
		limiter: limiter,
	}
}

// DownloadIntoFile starts downloading the task described by download and
// returns a progress channel. Setup failures (bad request, unreachable
// parent) are returned directly; failures after the download has started
// arrive as the channel's terminal event. The channel is closed when the
// download finishes, successfully or not.
func (e *Engine) DownloadIntoFile(ctx context.Context, download *pb.Download) (<-chan Progress, error) {
	if download.GetTaskId() == "" {
		return nil, fmt.Errorf("%w: no task id", ErrInvalidDownload)
	}
	if download.GetParentAddr() == "" {
		return nil, fmt.Errorf("%w: no parent address", ErrInvalidDownload)
	}

	peer, err := e.dial(download.GetParentAddr())
	if err != nil {
		return nil, fmt.Errorf("dial parent %s: %w", download.GetParentAddr(), err)
	}

	numbers, err := peer.GetPieceNumbers(ctx, download.GetTaskId())
	if err != nil {
		_ = peer.Close()
		return nil, fmt.Errorf("list parent pieces: %w", err)
	}

	if err := e.store.CreateTask(ctx, storage.TaskMetadata{
		ID:          download.GetTaskId(),
		URL:         download.GetUrl(),
		PieceLength: download.GetPieceLength(),
		State:       storage.TaskStateDownloading,
	}); err != nil {
		_ = peer.Close()
		return nil, err
	}

	out := make(chan Progress, progressBuffer)
	go e.run(ctx, peer, download, numbers, out)
	return out, nil
}

// run drives the download to completion and closes out when done.
func (e *Engine) run(ctx context.Context, peer PeerClient, download *pb.Download, numbers []int32, out chan<- Progress) {
	defer close(out)
	defer func() { _ = peer.Close() }()

	metrics.ActiveDownloads.Inc()
	defer metrics.ActiveDownloads.Dec()

	taskID := download.GetTaskId()
	logger := e.logger.With("task_id", taskID, "parent", download.GetParentAddr())
	logger.Info("download starting", "pieces", len(numbers))

	err := e.fetchPieces(ctx, peer, taskID, numbers, out)
	if err == nil && download.GetOutputPath() != "" {
		err = ExportTask(e.store.BlobPath(taskID), download.GetOutputPath())
	}
	if err != nil {
		logger.Warn("download failed", "error", err)
		metrics.DownloadsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		_ = e.store.UpdateTaskState(context.WithoutCancel(ctx), taskID, storage.TaskStateFailed)
		e.sendTerminal(ctx, out, err)
		return
	}

	if err := e.store.UpdateTaskState(ctx, taskID, storage.TaskStateComplete); err != nil {
		metrics.DownloadsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		e.sendTerminal(ctx, out, err)
		return
	}

	logger.Info("download complete", "pieces", len(numbers))
	metrics.DownloadsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
}

// sendTerminal delivers the terminal error event unless the consumer has
// already walked away.
func (e *Engine) sendTerminal(ctx context.Context, out chan<- Progress, err error) {
	select {
	case out <- Progress{Err: err}:
	case <-ctx.Done():
	}
}

// fetchPieces fans the piece list out over bounded concurrent streams and
// forwards each finished piece to out in completion order.
func (e *Engine) fetchPieces(ctx context.Context, peer PeerClient, taskID string, numbers []int32, out chan<- Progress) error {
	if len(numbers) == 0 {
		return nil
	}

	batches := splitBatches(numbers, e.config.Concurrency)

	var sendMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, batch := range batches {
		batch := batch
		g.Go(func() error {
			return e.fetchBatch(gctx, peer, taskID, batch, &sendMu, out)
		})
	}
	return g.Wait()
}

// fetchBatch pulls one stream of pieces, verifies and persists each, and
// reports progress.
func (e *Engine) fetchBatch(ctx context.Context, peer PeerClient, taskID string, batch []int32, sendMu *sync.Mutex, out chan<- Progress) error {
	stream, err := peer.SyncPieces(ctx, taskID, batch)
	if err != nil {
		return fmt.Errorf("open piece stream: %w", err)
	}
	defer func() { _ = stream.Close() }()

	received := 0
	for {
		start := time.Now()
		piece, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("receive piece: %w", err)
		}

		content := piece.GetContent()
		if err := e.waitRate(ctx, len(content)); err != nil {
			return err
		}
		if err := storage.VerifyPieceDigest(piece.GetDigest(), content); err != nil {
			return fmt.Errorf("piece %d: %w", piece.GetNumber(), err)
		}

		meta := storage.PieceMetadata{
			Number: piece.GetNumber(),
			Offset: piece.GetOffset(),
			Length: uint64(len(content)),
			Digest: piece.GetDigest(),
		}
		if err := e.store.WritePiece(ctx, taskID, meta, content); err != nil {
			return err
		}

		cost := time.Since(start)
		metrics.DownloadedPiecesTotal.Inc()
		metrics.DownloadedBytesTotal.Add(float64(len(content)))
		metrics.PieceDownloadCost.Observe(cost.Seconds())

		sendMu.Lock()
		select {
		case out <- Progress{Piece: &FinishedPiece{
			Number:    meta.Number,
			Offset:    meta.Offset,
			Length:    meta.Length,
			Digest:    meta.Digest,
			Cost:      cost,
			CreatedAt: time.Now(),
		}}:
			sendMu.Unlock()
		case <-ctx.Done():
			sendMu.Unlock()
			return ctx.Err()
		}
		received++
	}

	if received != len(batch) {
		return fmt.Errorf("parent sent %d of %d requested pieces", received, len(batch))
	}
	return nil
}

// waitRate blocks until the limiter admits n bytes. Large pieces are
// reserved in chunks so n never exceeds the burst.
func (e *Engine) waitRate(ctx context.Context, n int) error {
	if e.limiter == nil {
		return nil
	}
	for n > 0 {
		chunk := min(n, rateLimitChunk)
		if err := e.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// ExportTask copies a completed task's content blob to path.
func ExportTask(blobPath, path string) error {
	src, err := os.Open(blobPath)
	if err != nil {
		return fmt.Errorf("open task content: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("copy task content: %w", err)
	}
	return dst.Close()
}

// splitBatches partitions numbers into at most n round-robin batches, so
// concurrent streams receive interleaved piece numbers.
func splitBatches(numbers []int32, n int) [][]int32 {
	if n > len(numbers) {
		n = len(numbers)
	}
	batches := make([][]int32, n)
	for i, number := range numbers {
		batches[i%n] = append(batches[i%n], number)
	}
	return batches
}
