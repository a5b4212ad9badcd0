package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evanschultz/sortboard/internal/app"
	"github.com/evanschultz/sortboard/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// tsLayout is fixed width so created_at text sorts chronologically.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Repository is the drag journal backed by one sqlite database.
type Repository struct {
	db *sql.DB
}

// Open opens the journal at path, creating parent directories and schema as needed.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenInMemory opens a private in-memory journal.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, "file::memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	// every pooled connection to :memory: would see its own empty database.
	db.SetMaxOpenConns(1)
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate creates the journal schema.
func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS drag_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			operation TEXT NOT NULL,
			item_id TEXT NOT NULL DEFAULT '',
			from_container_id TEXT NOT NULL DEFAULT '',
			to_container_id TEXT NOT NULL DEFAULT '',
			from_index INTEGER NOT NULL DEFAULT -1,
			to_index INTEGER NOT NULL DEFAULT -1,
			reason TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_drag_events_session_created_at ON drag_events(session_id, created_at DESC, id DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_drag_events_created_at ON drag_events(created_at DESC, id DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// AppendDragEvent inserts one journal row.
func (r *Repository) AppendDragEvent(ctx context.Context, event domain.DragEvent) error {
	sessionID := strings.TrimSpace(event.SessionID)
	if sessionID == "" {
		return fmt.Errorf("append drag event: %w", domain.ErrInvalidID)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO drag_events(session_id, operation, item_id, from_container_id, to_container_id, from_index, to_index, reason, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sessionID,
		string(normalizeOperation(string(event.Operation))),
		event.ItemID,
		event.FromContainerID,
		event.ToContainerID,
		event.FromIndex,
		event.ToIndex,
		event.Reason,
		ts(normalizeEventTS(event.OccurredAt)),
	)
	return err
}

// ListDragEvents returns journal rows newest first.
func (r *Repository) ListDragEvents(ctx context.Context, filter app.DragEventFilter) ([]domain.DragEvent, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = app.DefaultEventLimit
	}
	query := `
		SELECT id, session_id, operation, item_id, from_container_id, to_container_id, from_index, to_index, reason, created_at
		FROM drag_events
	`
	args := make([]any, 0, 2)
	if sessionID := strings.TrimSpace(filter.SessionID); sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.DragEvent, 0)
	for rows.Next() {
		event, err := scanDragEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, event)
	}
	return out, rows.Err()
}

// scanner represents scanner data used by this package.
type scanner interface {
	Scan(dest ...any) error
}

// scanDragEvent decodes one drag_events row.
func scanDragEvent(s scanner) (domain.DragEvent, error) {
	var (
		event      domain.DragEvent
		opRaw      string
		createdRaw string
	)
	if err := s.Scan(
		&event.ID,
		&event.SessionID,
		&opRaw,
		&event.ItemID,
		&event.FromContainerID,
		&event.ToContainerID,
		&event.FromIndex,
		&event.ToIndex,
		&event.Reason,
		&createdRaw,
	); err != nil {
		return domain.DragEvent{}, err
	}
	event.Operation = normalizeOperation(opRaw)
	event.OccurredAt = parseTS(createdRaw)
	return event, nil
}

// normalizeOperation maps stored operation text onto a known value.
func normalizeOperation(raw string) domain.DragOperation {
	switch op := domain.DragOperation(strings.ToLower(strings.TrimSpace(raw))); op {
	case domain.DragOperationStart, domain.DragOperationPreview, domain.DragOperationReorder, domain.DragOperationMove:
		return op
	default:
		return domain.DragOperationDrop
	}
}

// normalizeEventTS ensures event timestamps are always populated and UTC-normalized.
func normalizeEventTS(in time.Time) time.Time {
	if in.IsZero() {
		return time.Now().UTC()
	}
	return in.UTC()
}

// ts formats a timestamp for storage.
func ts(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

// parseTS parses input into a normalized form.
func parseTS(v string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}
