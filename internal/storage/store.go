// Package storage is the authoritative local piece and task state: piece
// metadata indexed in sqlite, piece content stored as byte ranges of a
// per-task blob file.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Task states.
const (
	TaskStateDownloading = "downloading"
	TaskStateComplete    = "complete"
	TaskStateFailed      = "failed"
)

// PieceMetadata describes one stored piece of a task.
type PieceMetadata struct {
	Number int32
	Offset uint64
	Length uint64
	Digest string
}

// TaskMetadata describes one stored task.
type TaskMetadata struct {
	ID            string
	URL           string
	ContentLength uint64
	PieceLength   uint64
	State         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Store persists piece metadata in sqlite and piece content in per-task
// blob files under blobDir. Safe for concurrent use; sqlite serializes
// writers, blob writes target disjoint ranges.
type Store struct {
	db      *sql.DB
	blobDir string
	logger  *slog.Logger
}

// New opens (or creates) the store rooted at dataPath.
func New(dataPath string, logger *slog.Logger) (*Store, error) {
	blobDir := filepath.Join(dataPath, "content")
	if err := os.MkdirAll(blobDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}

	dbPath := filepath.Join(dataPath, "metadata.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// Ping makes sure the file is actually accessible and the DSN is valid
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	s := &Store{db: db, blobDir: blobDir, logger: logger}

	if err := s.runMigrations(); err != nil {
		return nil, fmt.Errorf("could not migrate database: %w", err)
	}

	return s, nil
}

// Close closes the metadata database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Pieces returns all piece metadata for a task in insertion order. An empty
// slice with a nil error means the task has no stored pieces.
func (s *Store) Pieces(ctx context.Context, taskID string) ([]PieceMetadata, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT number, "offset", length, digest FROM pieces WHERE task_id = ? ORDER BY rowid`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("query pieces: %w", err)
	}
	defer rows.Close()

	var pieces []PieceMetadata
	for rows.Next() {
		var p PieceMetadata
		if err := rows.Scan(&p.Number, &p.Offset, &p.Length, &p.Digest); err != nil {
			return nil, fmt.Errorf("scan piece: %w", err)
		}
		pieces = append(pieces, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pieces: %w", err)
	}
	return pieces, nil
}

// Piece returns metadata for one piece, or (nil, nil) when it is absent.
func (s *Store) Piece(ctx context.Context, taskID string, number int32) (*PieceMetadata, error) {
	var p PieceMetadata
	err := s.db.QueryRowContext(ctx,
		`SELECT number, "offset", length, digest FROM pieces WHERE task_id = ? AND number = ?`,
		taskID, number,
	).Scan(&p.Number, &p.Offset, &p.Length, &p.Digest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query piece: %w", err)
	}
	return &p, nil
}

// OpenPieceReader opens a reader over the stored content of one piece.
// The caller owns the returned ReadCloser.
func (s *Store) OpenPieceReader(ctx context.Context, taskID string, number int32) (io.ReadCloser, error) {
	p, err := s.Piece(ctx, taskID, number)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("piece %d of task %s not found", number, taskID)
	}

	f, err := os.Open(s.blobPath(taskID))
	if err != nil {
		return nil, fmt.Errorf("open task content: %w", err)
	}
	return &sectionReadCloser{
		Reader: io.NewSectionReader(f, int64(p.Offset), int64(p.Length)),
		f:      f,
	}, nil
}

// CreateTask records a task, replacing any previous record with the same id.
func (s *Store) CreateTask(ctx context.Context, task TaskMetadata) error {
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.State == "" {
		task.State = TaskStateDownloading
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, url, content_length, piece_length, state, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   url = excluded.url,
		   content_length = excluded.content_length,
		   piece_length = excluded.piece_length,
		   state = excluded.state,
		   updated_at = excluded.updated_at`,
		task.ID, task.URL, task.ContentLength, task.PieceLength, task.State, task.CreatedAt, now,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Task returns task metadata, or (nil, nil) when absent.
func (s *Store) Task(ctx context.Context, taskID string) (*TaskMetadata, error) {
	var t TaskMetadata
	err := s.db.QueryRowContext(ctx,
		`SELECT id, url, content_length, piece_length, state, created_at, updated_at
		 FROM tasks WHERE id = ?`,
		taskID,
	).Scan(&t.ID, &t.URL, &t.ContentLength, &t.PieceLength, &t.State, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query task: %w", err)
	}
	return &t, nil
}

// UpdateTaskState transitions a task's state.
func (s *Store) UpdateTaskState(ctx context.Context, taskID, state string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET state = ?, updated_at = ? WHERE id = ?`,
		state, time.Now().UTC(), taskID,
	)
	if err != nil {
		return fmt.Errorf("update task state: %w", err)
	}
	return nil
}

// WritePiece writes piece content into the task's blob file at the piece's
// offset and records its metadata. Re-writing an existing piece replaces it.
func (s *Store) WritePiece(ctx context.Context, taskID string, meta PieceMetadata, content []byte) error {
	if uint64(len(content)) != meta.Length {
		return fmt.Errorf("piece %d content is %d bytes, metadata says %d", meta.Number, len(content), meta.Length)
	}

	f, err := os.OpenFile(s.blobPath(taskID), os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open task content: %w", err)
	}
	if _, err := f.WriteAt(content, int64(meta.Offset)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write piece content: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close task content: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO pieces (task_id, number, "offset", length, digest)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(task_id, number) DO UPDATE SET
		   "offset" = excluded."offset",
		   length = excluded.length,
		   digest = excluded.digest`,
		taskID, meta.Number, meta.Offset, meta.Length, meta.Digest,
	)
	if err != nil {
		return fmt.Errorf("record piece: %w", err)
	}
	return nil
}

// DeleteTask removes a task's metadata, piece index, and content blob.
func (s *Store) DeleteTask(ctx context.Context, taskID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pieces WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("delete pieces: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if err := os.Remove(s.blobPath(taskID)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete task content: %w", err)
	}
	return nil
}

// BlobPath returns the path of a task's content blob. The file may not
// exist yet if no piece has been written.
func (s *Store) BlobPath(taskID string) string {
	return s.blobPath(taskID)
}

func (s *Store) blobPath(taskID string) string {
	return filepath.Join(s.blobDir, taskID+".data")
}

type sectionReadCloser struct {
	io.Reader
	f *os.File
}

func (r *sectionReadCloser) Close() error {
	return r.f.Close()
}
