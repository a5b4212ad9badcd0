package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/evanschultz/sortboard/internal/domain"
)

// IDGenerator returns unique identifiers for drag sessions.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// ServiceConfig holds configuration for service.
type ServiceConfig struct {
	Seed   domain.CardBoard
	Logger Logger
}

// BoardView is the render-facing state: arrangement plus drag session.
type BoardView struct {
	Board     domain.CardBoard
	ActiveID  string
	SessionID string
}

// DragResult is the state after one gesture together with what the gesture did.
type DragResult struct {
	BoardView
	Outcome Outcome
}

// Service serializes gestures from every host (terminal, HTTP, MCP) onto one
// BoardState and journals their outcomes.
type Service struct {
	mu        sync.Mutex
	state     *BoardState[domain.Card]
	seed      domain.CardBoard
	sessionID string

	journal Journal
	idGen   IDGenerator
	clock   Clock
	logger  Logger
}

// NewService constructs a new value for this package. A nil journal disables journaling.
func NewService(journal Journal, idGen IDGenerator, clock Clock, cfg ServiceConfig) *Service {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	seed := cfg.Seed
	if len(seed.Containers) == 0 {
		seed = domain.DefaultSeed()
	}
	return &Service{
		state:   NewBoardState(seed),
		seed:    seed,
		journal: journal,
		idGen:   idGen,
		clock:   clock,
		logger:  cfg.Logger,
	}
}

// View returns the current arrangement and drag session.
func (s *Service) View(context.Context) BoardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// ActiveItem returns the item currently being dragged.
func (s *Service) ActiveItem(context.Context) (domain.CardItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.state.ActiveItem()
	if !ok {
		return domain.CardItem{}, ErrNotFound
	}
	return item, nil
}

// StartDrag begins a drag session for activeID.
func (s *Service) StartDrag(ctx context.Context, activeID string) (DragResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activeID = strings.TrimSpace(activeID)
	s.sessionID = s.idGen()
	outcome := s.state.DragStart(activeID)
	s.debug("drag start", outcome)
	result := DragResult{BoardView: s.viewLocked(), Outcome: outcome}
	if err := s.record(ctx, domain.DragOperationStart, outcome); err != nil {
		return result, err
	}
	return result, nil
}

// DragOver applies one hover event.
func (s *Service) DragOver(ctx context.Context, activeID, overID string) (DragResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, outcome := s.state.DragOver(strings.TrimSpace(activeID), strings.TrimSpace(overID))
	s.debug("drag over", outcome)
	result := DragResult{BoardView: s.viewLocked(), Outcome: outcome}
	if !outcome.Mutated() {
		return result, nil
	}
	if err := s.record(ctx, domain.DragOperationPreview, outcome); err != nil {
		return result, err
	}
	return result, nil
}

// EndDrag commits the gesture and closes the drag session.
func (s *Service) EndDrag(ctx context.Context, activeID, overID string) (DragResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, outcome := s.state.DragEnd(strings.TrimSpace(activeID), strings.TrimSpace(overID))
	s.debug("drag end", outcome)
	op := domain.DragOperationDrop
	switch outcome.Kind {
	case OutcomeReorder:
		op = domain.DragOperationReorder
	case OutcomeMove:
		op = domain.DragOperationMove
	}
	err := s.record(ctx, op, outcome)
	s.sessionID = ""
	return DragResult{BoardView: s.viewLocked(), Outcome: outcome}, err
}

// Reset restores the seed arrangement and clears any drag session.
func (s *Service) Reset(context.Context) (DragResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Reset(s.seed)
	s.sessionID = ""
	if s.logger != nil {
		s.logger.Debug("board reset", "containers", len(s.seed.Containers), "items", s.seed.ItemCount())
	}
	return DragResult{BoardView: s.viewLocked(), Outcome: noOutcome(OutcomeNone, "", "")}, nil
}

// ListDragEvents lists journaled gestures, newest first.
func (s *Service) ListDragEvents(ctx context.Context, filter DragEventFilter) ([]domain.DragEvent, error) {
	if s.journal == nil {
		return nil, ErrJournalUnavailable
	}
	filter.SessionID = strings.TrimSpace(filter.SessionID)
	filter.Limit = normalizeLimit(filter.Limit)
	return s.journal.ListDragEvents(ctx, filter)
}

// viewLocked snapshots state; callers hold s.mu.
func (s *Service) viewLocked() BoardView {
	activeID, _ := s.state.ActiveID()
	return BoardView{
		Board:     s.state.Board(),
		ActiveID:  activeID,
		SessionID: s.sessionID,
	}
}

// record appends one journal entry for the current session. The board change
// has already been applied when this fails.
func (s *Service) record(ctx context.Context, op domain.DragOperation, outcome Outcome) error {
	if s.journal == nil {
		return nil
	}
	sessionID := s.sessionID
	if sessionID == "" {
		sessionID = s.idGen()
		s.sessionID = sessionID
	}
	event := domain.DragEvent{
		SessionID:       sessionID,
		Operation:       op,
		ItemID:          outcome.ItemID,
		FromContainerID: outcome.FromContainerID,
		ToContainerID:   outcome.ToContainerID,
		FromIndex:       outcome.FromIndex,
		ToIndex:         outcome.ToIndex,
		Reason:          outcome.Reason,
		OccurredAt:      s.clock().UTC(),
	}
	if err := s.journal.AppendDragEvent(ctx, event); err != nil {
		return fmt.Errorf("append drag event: %w", err)
	}
	return nil
}

// debug logs one gesture outcome when a logger is configured.
func (s *Service) debug(msg string, outcome Outcome) {
	if s.logger == nil {
		return
	}
	s.logger.Debug(msg,
		"kind", outcome.Kind,
		"item_id", outcome.ItemID,
		"from", outcome.FromContainerID,
		"to", outcome.ToContainerID,
		"reason", outcome.Reason,
		"session_id", s.sessionID,
	)
}
