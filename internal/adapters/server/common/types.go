// Package common provides transport-agnostic server contracts used by HTTP and MCP adapters.
package common

import (
	"context"
	"errors"
	"time"

	"github.com/evanschultz/sortboard/internal/app"
)

// ErrInvalidRequest reports malformed transport input.
var ErrInvalidRequest = errors.New("invalid request")

// ErrNotFound reports missing transport-visible resources.
var ErrNotFound = errors.New("not found")

// ErrJournalUnavailable reports that the drag journal is disabled for this process.
var ErrJournalUnavailable = errors.New("drag journal unavailable")

// Board is the board payload shared by every transport.
type Board = app.Snapshot

// Item is one card as exposed to transports.
type Item = app.SnapshotItem

// DragRequest carries the ids of one pointer gesture. OverID may be empty.
type DragRequest struct {
	ActiveID string `json:"active_id"`
	OverID   string `json:"over_id,omitempty"`
}

// GestureResult is the board after one gesture together with what the gesture did.
type GestureResult struct {
	Board    Board       `json:"board"`
	ActiveID string      `json:"active_id,omitempty"`
	Outcome  app.Outcome `json:"outcome"`
}

// ListDragEventsRequest captures journal query filters.
type ListDragEventsRequest struct {
	SessionID string
	Limit     int
}

// DragEvent is one journal row as exposed to transports.
type DragEvent struct {
	ID              int64     `json:"id"`
	SessionID       string    `json:"session_id"`
	Operation       string    `json:"operation"`
	ItemID          string    `json:"item_id,omitempty"`
	FromContainerID string    `json:"from_container_id,omitempty"`
	ToContainerID   string    `json:"to_container_id,omitempty"`
	FromIndex       int       `json:"from_index"`
	ToIndex         int       `json:"to_index"`
	Reason          string    `json:"reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// BoardService exposes the board and its drag gestures to transports.
type BoardService interface {
	GetBoard(context.Context) (Board, error)
	GetActiveItem(context.Context) (Item, error)
	StartDrag(context.Context, DragRequest) (GestureResult, error)
	DragOver(context.Context, DragRequest) (GestureResult, error)
	EndDrag(context.Context, DragRequest) (GestureResult, error)
	ResetBoard(context.Context) (GestureResult, error)
}

// JournalReader exposes the optional drag journal to transports.
type JournalReader interface {
	ListDragEvents(context.Context, ListDragEventsRequest) ([]DragEvent, error)
}
