package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPiecesPreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Insert out of numeric order; reads must come back in write order.
	for _, n := range []int32{0, 2, 1} {
		content := []byte{byte(n), byte(n), byte(n)}
		err := s.WritePiece(ctx, "task-1", PieceMetadata{
			Number: n,
			Offset: uint64(n) * 3,
			Length: 3,
			Digest: PieceDigest(content),
		}, content)
		require.NoError(t, err)
	}

	pieces, err := s.Pieces(ctx, "task-1")
	require.NoError(t, err)
	require.Len(t, pieces, 3)
	assert.Equal(t, int32(0), pieces[0].Number)
	assert.Equal(t, int32(2), pieces[1].Number)
	assert.Equal(t, int32(1), pieces[2].Number)
}

func TestPiecesEmptyForUnknownTask(t *testing.T) {
	s := newTestStore(t)

	pieces, err := s.Pieces(context.Background(), "no-such-task")
	require.NoError(t, err)
	assert.Empty(t, pieces)
}

func TestPieceAbsentReturnsNil(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Piece(context.Background(), "task-1", 7)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestWritePieceRejectsLengthMismatch(t *testing.T) {
	s := newTestStore(t)

	err := s.WritePiece(context.Background(), "task-1", PieceMetadata{
		Number: 0,
		Length: 10,
	}, []byte("short"))
	require.Error(t, err)
}

func TestOpenPieceReaderReturnsExactRange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := []byte("hello")
	second := []byte("world!")
	require.NoError(t, s.WritePiece(ctx, "task-1", PieceMetadata{
		Number: 0, Offset: 0, Length: uint64(len(first)), Digest: PieceDigest(first),
	}, first))
	require.NoError(t, s.WritePiece(ctx, "task-1", PieceMetadata{
		Number: 1, Offset: uint64(len(first)), Length: uint64(len(second)), Digest: PieceDigest(second),
	}, second))

	r, err := s.OpenPieceReader(ctx, "task-1", 1)
	require.NoError(t, err)
	defer r.Close()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestOpenPieceReaderUnknownPiece(t *testing.T) {
	s := newTestStore(t)

	_, err := s.OpenPieceReader(context.Background(), "task-1", 0)
	require.Error(t, err)
}

func TestRewritePieceReplacesMetadata(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	old := []byte("aaaa")
	require.NoError(t, s.WritePiece(ctx, "task-1", PieceMetadata{
		Number: 0, Offset: 0, Length: 4, Digest: PieceDigest(old),
	}, old))

	updated := []byte("bbbb")
	require.NoError(t, s.WritePiece(ctx, "task-1", PieceMetadata{
		Number: 0, Offset: 0, Length: 4, Digest: PieceDigest(updated),
	}, updated))

	pieces, err := s.Pieces(ctx, "task-1")
	require.NoError(t, err)
	require.Len(t, pieces, 1)
	assert.Equal(t, PieceDigest(updated), pieces[0].Digest)
}

func TestTaskLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTask(ctx, TaskMetadata{
		ID:            "task-1",
		URL:           "http://origin/file.bin",
		ContentLength: 1024,
		PieceLength:   256,
	}))

	task, err := s.Task(ctx, "task-1")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, TaskStateDownloading, task.State)
	assert.Equal(t, uint64(1024), task.ContentLength)

	require.NoError(t, s.UpdateTaskState(ctx, "task-1", TaskStateComplete))
	task, err = s.Task(ctx, "task-1")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, TaskStateComplete, task.State)
}

func TestDeleteTaskRemovesEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	content := []byte("data")
	require.NoError(t, s.CreateTask(ctx, TaskMetadata{ID: "task-1"}))
	require.NoError(t, s.WritePiece(ctx, "task-1", PieceMetadata{
		Number: 0, Offset: 0, Length: 4, Digest: PieceDigest(content),
	}, content))

	require.NoError(t, s.DeleteTask(ctx, "task-1"))

	task, err := s.Task(ctx, "task-1")
	require.NoError(t, err)
	assert.Nil(t, task)

	pieces, err := s.Pieces(ctx, "task-1")
	require.NoError(t, err)
	assert.Empty(t, pieces)

	// Deleting again is fine, nothing left to remove.
	require.NoError(t, s.DeleteTask(ctx, "task-1"))
}

func TestVerifyPieceDigest(t *testing.T) {
	content := []byte("payload")

	assert.NoError(t, VerifyPieceDigest(PieceDigest(content), content))
	assert.NoError(t, VerifyPieceDigest("", content))
	assert.Error(t, VerifyPieceDigest(PieceDigest(content), []byte("tampered")))
	assert.Error(t, VerifyPieceDigest("sha256:deadbeef", content))
}
