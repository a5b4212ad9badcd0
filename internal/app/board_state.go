package app

import "github.com/evanschultz/sortboard/internal/domain"

// OutcomeKind classifies what one gesture handler did to the board.
type OutcomeKind string

// OutcomeKind values reported by BoardState handlers.
const (
	OutcomeNone    OutcomeKind = "none"
	OutcomeStarted OutcomeKind = "started"
	OutcomePreview OutcomeKind = "preview"
	OutcomeReorder OutcomeKind = "reorder"
	OutcomeMove    OutcomeKind = "move"
	OutcomeDropped OutcomeKind = "dropped"
)

// Reasons attached to gestures that left the board unchanged.
const (
	ReasonNoTarget        = "no_target"
	ReasonUnresolved      = "unresolved"
	ReasonSameContainer   = "same_container"
	ReasonIndexNotFound   = "index_not_found"
	ReasonItemNotInSource = "item_not_in_source"
)

// Outcome describes the effect of one gesture. Indexes are -1 when they do not apply.
type Outcome struct {
	Kind            OutcomeKind `json:"kind"`
	ItemID          string      `json:"item_id,omitempty"`
	FromContainerID string      `json:"from_container_id,omitempty"`
	ToContainerID   string      `json:"to_container_id,omitempty"`
	FromIndex       int         `json:"from_index"`
	ToIndex         int         `json:"to_index"`
	Reason          string      `json:"reason,omitempty"`
}

// Mutated reports whether the gesture changed the arrangement.
func (o Outcome) Mutated() bool {
	switch o.Kind {
	case OutcomePreview, OutcomeReorder, OutcomeMove:
		return true
	default:
		return false
	}
}

// noOutcome builds an outcome for a gesture that did not touch the board.
func noOutcome(kind OutcomeKind, itemID, reason string) Outcome {
	return Outcome{Kind: kind, ItemID: itemID, FromIndex: -1, ToIndex: -1, Reason: reason}
}

// BoardState owns the current arrangement and the drag session. It is not
// safe for concurrent use; callers serialize gestures (see Service).
type BoardState[P any] struct {
	board    domain.Board[P]
	activeID string
}

// NewBoardState starts an idle state holding the seed arrangement.
func NewBoardState[P any](seed domain.Board[P]) *BoardState[P] {
	return &BoardState[P]{board: seed}
}

// Board returns the current arrangement.
func (s *BoardState[P]) Board() domain.Board[P] {
	return s.board
}

// ActiveID returns the active drag id and whether a drag session is live.
func (s *BoardState[P]) ActiveID() (string, bool) {
	return s.activeID, s.activeID != ""
}

// ActiveItem returns the item being dragged, for overlay rendering only.
func (s *BoardState[P]) ActiveItem() (domain.Item[P], bool) {
	return s.board.FindItem(s.activeID)
}

// Reset replaces the arrangement and clears any drag session.
func (s *BoardState[P]) Reset(board domain.Board[P]) {
	s.board = board
	s.activeID = ""
}

// DragStart records the active id. The id is not validated: handlers that
// follow treat an id that resolves to nothing as a no-op.
func (s *BoardState[P]) DragStart(activeID string) Outcome {
	s.activeID = activeID
	return noOutcome(OutcomeStarted, activeID, "")
}

// DragOver relocates the active item to the end of the hovered container when
// the pointer crosses into a different container. Within one container it does
// nothing; reordering waits for DragEnd.
func (s *BoardState[P]) DragOver(activeID, overID string) (domain.Board[P], Outcome) {
	if overID == "" {
		return s.board, noOutcome(OutcomeNone, activeID, ReasonNoTarget)
	}
	source, okSource := s.board.FindContainer(activeID)
	target, okTarget := s.board.FindContainer(overID)
	if !okSource || !okTarget {
		return s.board, noOutcome(OutcomeNone, activeID, ReasonUnresolved)
	}
	if source.ID == target.ID {
		return s.board, noOutcome(OutcomeNone, activeID, ReasonSameContainer)
	}
	fromIndex := source.IndexOf(activeID)
	next, moved := s.board.MoveItem(activeID, source.ID, target.ID)
	if !moved {
		return s.board, noOutcome(OutcomeNone, activeID, ReasonItemNotInSource)
	}
	s.board = next
	return s.board, Outcome{
		Kind:            OutcomePreview,
		ItemID:          activeID,
		FromContainerID: source.ID,
		ToContainerID:   target.ID,
		FromIndex:       fromIndex,
		ToIndex:         len(target.Items),
	}
}

// DragEnd commits the gesture and always clears the drag session.
func (s *BoardState[P]) DragEnd(activeID, overID string) (domain.Board[P], Outcome) {
	defer func() { s.activeID = "" }()

	if overID == "" {
		return s.board, noOutcome(OutcomeDropped, activeID, ReasonNoTarget)
	}
	source, okSource := s.board.FindContainer(activeID)
	target, okTarget := s.board.FindContainer(overID)
	if !okSource || !okTarget {
		return s.board, noOutcome(OutcomeDropped, activeID, ReasonUnresolved)
	}

	if source.ID == target.ID {
		from := source.IndexOf(activeID)
		to := target.IndexOf(overID)
		next, moved := s.board.ReorderItem(source.ID, activeID, overID)
		if !moved {
			reason := ReasonIndexNotFound
			if from >= 0 && from == to {
				reason = ""
			}
			return s.board, noOutcome(OutcomeDropped, activeID, reason)
		}
		s.board = next
		return s.board, Outcome{
			Kind:            OutcomeReorder,
			ItemID:          activeID,
			FromContainerID: source.ID,
			ToContainerID:   target.ID,
			FromIndex:       from,
			ToIndex:         to,
		}
	}

	// Drag-over previews normally move the item first, so this branch is
	// reached only by a drop that crossed containers without an over event.
	fromIndex := source.IndexOf(activeID)
	next, moved := s.board.MoveItem(activeID, source.ID, target.ID)
	if !moved {
		return s.board, noOutcome(OutcomeDropped, activeID, ReasonItemNotInSource)
	}
	s.board = next
	return s.board, Outcome{
		Kind:            OutcomeMove,
		ItemID:          activeID,
		FromContainerID: source.ID,
		ToContainerID:   target.ID,
		FromIndex:       fromIndex,
		ToIndex:         len(target.Items),
	}
}
