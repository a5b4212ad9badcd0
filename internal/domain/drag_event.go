package domain

import "time"

// DragOperation describes one journaled gesture outcome.
type DragOperation string

// DragOperation values written to the drag journal.
const (
	DragOperationStart   DragOperation = "start"
	DragOperationPreview DragOperation = "preview"
	DragOperationReorder DragOperation = "reorder"
	DragOperationMove    DragOperation = "move"
	DragOperationDrop    DragOperation = "drop"
)

// DragEvent is one append-only journal entry for a drag session.
type DragEvent struct {
	ID              int64
	SessionID       string
	Operation       DragOperation
	ItemID          string
	FromContainerID string
	ToContainerID   string
	FromIndex       int
	ToIndex         int
	Reason          string
	OccurredAt      time.Time
}
