package rpcserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/arsac/peerd/internal/downloader"
	"github.com/arsac/peerd/internal/metrics"
	"github.com/arsac/peerd/internal/utils"
	pb "github.com/arsac/peerd/proto"
)

const (
	// outboxSize bounds piece responses buffered between the store reader
	// and the stream writer.
	outboxSize = 128

	// statTaskTimeout bounds the scheduler round trip behind StatTask.
	statTaskTimeout = 30 * time.Second
)

// Handler implements the PeerAgent RPC surface on top of local storage, the
// download engine, and the scheduler client.
type Handler struct {
	pb.UnimplementedPeerAgentServer

	store     PieceStore
	engine    DownloadEngine
	scheduler SchedulerClient
	logger    *slog.Logger
}

// NewHandler creates the PeerAgent handler.
func NewHandler(store PieceStore, engine DownloadEngine, scheduler SchedulerClient, logger *slog.Logger) *Handler {
	return &Handler{
		store:     store,
		engine:    engine,
		scheduler: scheduler,
		logger:    logger,
	}
}

// GetPieceNumbers returns the numbers of all locally stored pieces of a
// task, in storage order. A task with no stored pieces is NotFound.
func (h *Handler) GetPieceNumbers(ctx context.Context, req *pb.GetPieceNumbersRequest) (*pb.GetPieceNumbersResponse, error) {
	if req.GetTaskId() == "" {
		return nil, status.Error(codes.InvalidArgument, "task id is required")
	}

	pieces, err := h.store.Pieces(ctx, req.GetTaskId())
	if err != nil {
		h.logger.Error("failed to list pieces", "task_id", req.GetTaskId(), "error", err)
		return nil, status.Errorf(codes.Internal, "list pieces: %v", err)
	}
	if len(pieces) == 0 {
		return nil, status.Errorf(codes.NotFound, "task %s has no pieces", req.GetTaskId())
	}

	numbers := make([]int32, 0, len(pieces))
	for _, p := range pieces {
		numbers = append(numbers, p.Number)
	}
	return &pb.GetPieceNumbersResponse{PieceNumbers: numbers}, nil
}

// SyncPieces streams the content of the requested pieces. An empty interest
// list yields an empty stream. Pieces that cannot be loaded are skipped so
// one bad piece does not kill the stream; the client notices the gap and
// re-requests elsewhere.
func (h *Handler) SyncPieces(req *pb.SyncPiecesRequest, stream pb.PeerAgent_SyncPiecesServer) error {
	if req.GetTaskId() == "" {
		return status.Error(codes.InvalidArgument, "task id is required")
	}
	interested := req.GetInterestedPiecesRequest()
	if interested == nil {
		return status.Error(codes.InvalidArgument, "request must carry an interested pieces request")
	}

	metrics.ActiveSyncStreams.Inc()
	defer metrics.ActiveSyncStreams.Dec()

	logger := h.logger.With("task_id", req.GetTaskId())

	numbers := interested.GetPieceNumbers()

	// done tells the producer the consumer is gone; the producer keeps
	// draining its work so store reads are never interrupted mid-piece.
	outbox := make(chan *pb.SyncPiecesResponse, outboxSize)
	done := make(chan struct{})
	defer close(done)

	go h.producePieces(context.WithoutCancel(stream.Context()), req.GetTaskId(), numbers, outbox, done, logger)

	for resp := range outbox {
		if err := stream.Send(resp); err != nil {
			logger.Debug("sync stream consumer went away", "error", err)
			return err
		}
	}
	return nil
}

// producePieces loads each requested piece and queues it on outbox. It owns
// outbox and closes it when finished. Sends are abandoned, not blocked on,
// once done is closed.
func (h *Handler) producePieces(ctx context.Context, taskID string, numbers []int32, outbox chan<- *pb.SyncPiecesResponse, done <-chan struct{}, logger *slog.Logger) {
	defer close(outbox)

	for _, number := range numbers {
		piece, err := h.loadPiece(ctx, taskID, number)
		if err != nil {
			logger.Warn("skipping piece", "number", number, "error", err)
			metrics.PieceServeSkipsTotal.WithLabelValues("load_failed").Inc()
			continue
		}
		if piece == nil {
			logger.Warn("skipping unknown piece", "number", number)
			metrics.PieceServeSkipsTotal.WithLabelValues("not_found").Inc()
			continue
		}

		resp := &pb.SyncPiecesResponse{
			Response: &pb.SyncPiecesResponse_InterestedPiecesResponse{
				InterestedPiecesResponse: &pb.InterestedPiecesResponse{Piece: piece},
			},
		}
		if !trySend(outbox, resp, done) {
			logger.Debug("dropping piece, stream closed", "number", number)
			metrics.PieceServeSkipsTotal.WithLabelValues("stream_closed").Inc()
			continue
		}
		metrics.PiecesServedTotal.Inc()
		metrics.BytesServedTotal.Add(float64(len(piece.GetContent())))
	}
}

// loadPiece reads one piece's metadata and content from the store. Returns
// (nil, nil) for pieces the store does not have.
func (h *Handler) loadPiece(ctx context.Context, taskID string, number int32) (*pb.Piece, error) {
	meta, err := h.store.Piece(ctx, taskID, number)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, nil
	}

	start := time.Now()
	r, err := h.store.OpenPieceReader(ctx, taskID, number)
	if err != nil {
		return nil, err
	}
	content, err := io.ReadAll(r)
	closeErr := r.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}
	metrics.PieceReadDuration.Observe(time.Since(start).Seconds())

	return &pb.Piece{
		Number:  meta.Number,
		Offset:  meta.Offset,
		Length:  meta.Length,
		Digest:  meta.Digest,
		Content: content,
	}, nil
}

// trySend queues resp unless done is already closed or closes while the
// outbox is full. Reports whether the send happened.
func trySend[T any](outbox chan<- T, resp T, done <-chan struct{}) bool {
	select {
	case <-done:
		return false
	default:
	}
	select {
	case outbox <- resp:
		return true
	case <-done:
		return false
	}
}

// DownloadTask downloads a whole task from a parent peer, streaming one
// response per finished piece. A failure after the download has started
// ends the stream with an Internal error; pieces already streamed stand.
// A consumer that walks away does not cancel the download: the engine runs
// to completion and events after the disconnect are dropped.
func (h *Handler) DownloadTask(req *pb.DownloadTaskRequest, stream pb.PeerAgent_DownloadTaskServer) error {
	download := req.GetDownload()
	if download == nil {
		return status.Error(codes.InvalidArgument, "request must carry a download")
	}

	logger := h.logger.With("task_id", download.GetTaskId())

	progress, err := h.engine.DownloadIntoFile(context.WithoutCancel(stream.Context()), download)
	if err != nil {
		if errors.Is(err, downloader.ErrInvalidDownload) {
			return status.Errorf(codes.InvalidArgument, "start download: %v", err)
		}
		return status.Errorf(codes.Internal, "start download: %v", err)
	}

	var sendErr error
	for p := range progress {
		if sendErr != nil {
			continue
		}
		if p.Err != nil {
			return status.Errorf(codes.Internal, "download failed: %v", p.Err)
		}
		resp := &pb.DownloadTaskResponse{
			Piece: &pb.Piece{
				Number:    p.Piece.Number,
				Offset:    p.Piece.Offset,
				Length:    p.Piece.Length,
				Digest:    p.Piece.Digest,
				Cost:      durationpb.New(p.Piece.Cost),
				CreatedAt: timestamppb.New(p.Piece.CreatedAt),
			},
		}
		if err := stream.Send(resp); err != nil {
			logger.Debug("download stream consumer went away", "error", err)
			sendErr = err
		}
	}
	return sendErr
}

// StatTask proxies a task lookup to the scheduler.
func (h *Handler) StatTask(ctx context.Context, req *pb.StatTaskRequest) (*pb.Task, error) {
	if req.GetTaskId() == "" {
		return nil, status.Error(codes.InvalidArgument, "task id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, statTaskTimeout)
	defer cancel()

	task, err := h.scheduler.StatTask(ctx, req.GetTaskId())
	if err != nil {
		// Preserve the scheduler's status code even when the client wrapped it.
		if code := utils.GRPCErrorCode(err); code != codes.Unknown {
			return nil, status.Error(code, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "stat task: %v", err)
	}
	return task, nil
}

// UploadTask is not part of this agent's duties; uploads happen through
// SyncPieces pull semantics.
func (h *Handler) UploadTask(_ context.Context, _ *pb.UploadTaskRequest) (*pb.UploadTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "UploadTask is not implemented")
}

// DeleteTask is not part of this agent's duties; task eviction is driven by
// the scheduler.
func (h *Handler) DeleteTask(_ context.Context, _ *pb.DeleteTaskRequest) (*pb.DeleteTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "DeleteTask is not implemented")
}
