package app

import (
	"context"

	"github.com/evanschultz/sortboard/internal/domain"
)

// Journal limits applied by ListDragEvents.
const (
	DefaultEventLimit = 50
	MaxEventLimit     = 500
)

// DragEventFilter narrows journal queries. An empty SessionID matches every session.
type DragEventFilter struct {
	SessionID string
	Limit     int
}

// Journal is the append-only store for drag outcomes.
type Journal interface {
	AppendDragEvent(context.Context, domain.DragEvent) error
	ListDragEvents(context.Context, DragEventFilter) ([]domain.DragEvent, error)
}

// Logger receives structured debug lines for each gesture.
type Logger interface {
	Debug(msg string, keyvals ...any)
}

// normalizeLimit clamps a requested event limit into the supported range.
func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultEventLimit
	case limit > MaxEventLimit:
		return MaxEventLimit
	default:
		return limit
	}
}
