package app

import (
	"context"
	"time"

	"github.com/evanschultz/sortboard/internal/domain"
)

// SnapshotVersion defines a package constant value.
const SnapshotVersion = "sortboard.snapshot.v1"

// Snapshot is the JSON export of the current arrangement and drag session.
type Snapshot struct {
	Version    string              `json:"version"`
	ExportedAt time.Time           `json:"exported_at"`
	Containers []SnapshotContainer `json:"containers"`
	ActiveID   string              `json:"active_id,omitempty"`
	SessionID  string              `json:"session_id,omitempty"`
}

// SnapshotContainer represents snapshot container data used by this package.
type SnapshotContainer struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	Items []SnapshotItem `json:"items"`
}

// SnapshotItem represents snapshot item data used by this package.
type SnapshotItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	StyleTag string `json:"style_tag,omitempty"`
}

// ExportSnapshot captures the current board.
func (s *Service) ExportSnapshot(ctx context.Context) Snapshot {
	return SnapshotFromView(s.View(ctx), s.clock())
}

// SnapshotFromView converts a board view into its export shape.
func SnapshotFromView(view BoardView, at time.Time) Snapshot {
	snap := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: at.UTC(),
		Containers: make([]SnapshotContainer, 0, len(view.Board.Containers)),
		ActiveID:   view.ActiveID,
		SessionID:  view.SessionID,
	}
	for _, container := range view.Board.Containers {
		snap.Containers = append(snap.Containers, snapshotContainerFromDomain(container))
	}
	return snap
}

// ItemIDs lists every item id in snapshot order.
func (s Snapshot) ItemIDs() []string {
	out := make([]string, 0)
	for _, container := range s.Containers {
		for _, item := range container.Items {
			out = append(out, item.ID)
		}
	}
	return out
}

func snapshotContainerFromDomain(c domain.CardContainer) SnapshotContainer {
	items := make([]SnapshotItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, SnapshotItemFromDomain(item))
	}
	return SnapshotContainer{
		ID:    c.ID,
		Label: c.Label,
		Items: items,
	}
}

// SnapshotItemFromDomain converts one card item into its export shape.
func SnapshotItemFromDomain(item domain.CardItem) SnapshotItem {
	return SnapshotItem{
		ID:       item.ID,
		Title:    item.Payload.Title,
		Body:     item.Payload.Body,
		StyleTag: item.StyleTag,
	}
}
