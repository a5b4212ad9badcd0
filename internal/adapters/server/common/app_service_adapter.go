package common

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evanschultz/sortboard/internal/app"
	"github.com/evanschultz/sortboard/internal/domain"
)

// AppServiceAdapter maps transport contracts onto app.Service board and journal APIs.
type AppServiceAdapter struct {
	service *app.Service
	now     func() time.Time
}

// NewAppServiceAdapter builds one common adapter over an app.Service instance.
func NewAppServiceAdapter(service *app.Service) *AppServiceAdapter {
	return &AppServiceAdapter{service: service, now: time.Now}
}

// GetBoard returns the current arrangement.
func (a *AppServiceAdapter) GetBoard(ctx context.Context) (Board, error) {
	if err := a.ensure(); err != nil {
		return Board{}, err
	}
	return a.service.ExportSnapshot(ctx), nil
}

// GetActiveItem returns the card currently being dragged.
func (a *AppServiceAdapter) GetActiveItem(ctx context.Context) (Item, error) {
	if err := a.ensure(); err != nil {
		return Item{}, err
	}
	item, err := a.service.ActiveItem(ctx)
	if err != nil {
		return Item{}, mapAppError("get active item", err)
	}
	return app.SnapshotItemFromDomain(item), nil
}

// StartDrag opens a drag session.
func (a *AppServiceAdapter) StartDrag(ctx context.Context, in DragRequest) (GestureResult, error) {
	if err := a.ensure(); err != nil {
		return GestureResult{}, err
	}
	req, err := normalizeDragRequest(in)
	if err != nil {
		return GestureResult{}, err
	}
	result, err := a.service.StartDrag(ctx, req.ActiveID)
	return a.gestureResult(result), mapAppError("start drag", err)
}

// DragOver applies one hover event.
func (a *AppServiceAdapter) DragOver(ctx context.Context, in DragRequest) (GestureResult, error) {
	if err := a.ensure(); err != nil {
		return GestureResult{}, err
	}
	req, err := normalizeDragRequest(in)
	if err != nil {
		return GestureResult{}, err
	}
	result, err := a.service.DragOver(ctx, req.ActiveID, req.OverID)
	return a.gestureResult(result), mapAppError("drag over", err)
}

// EndDrag commits the gesture.
func (a *AppServiceAdapter) EndDrag(ctx context.Context, in DragRequest) (GestureResult, error) {
	if err := a.ensure(); err != nil {
		return GestureResult{}, err
	}
	req, err := normalizeDragRequest(in)
	if err != nil {
		return GestureResult{}, err
	}
	result, err := a.service.EndDrag(ctx, req.ActiveID, req.OverID)
	return a.gestureResult(result), mapAppError("end drag", err)
}

// ResetBoard restores the seed arrangement.
func (a *AppServiceAdapter) ResetBoard(ctx context.Context) (GestureResult, error) {
	if err := a.ensure(); err != nil {
		return GestureResult{}, err
	}
	result, err := a.service.Reset(ctx)
	return a.gestureResult(result), mapAppError("reset board", err)
}

// ListDragEvents lists journal rows newest first.
func (a *AppServiceAdapter) ListDragEvents(ctx context.Context, in ListDragEventsRequest) ([]DragEvent, error) {
	if err := a.ensure(); err != nil {
		return nil, err
	}
	if in.Limit < 0 {
		return nil, fmt.Errorf("limit must be >= 0: %w", ErrInvalidRequest)
	}
	events, err := a.service.ListDragEvents(ctx, app.DragEventFilter{
		SessionID: strings.TrimSpace(in.SessionID),
		Limit:     in.Limit,
	})
	if err != nil {
		return nil, mapAppError("list drag events", err)
	}
	return mapDomainDragEvents(events), nil
}

// ensure reports a configuration error for a zero-value adapter.
func (a *AppServiceAdapter) ensure() error {
	if a == nil || a.service == nil {
		return fmt.Errorf("app service adapter is not configured: %w", ErrInvalidRequest)
	}
	return nil
}

// gestureResult converts one app result into the transport shape.
func (a *AppServiceAdapter) gestureResult(result app.DragResult) GestureResult {
	return GestureResult{
		Board:    app.SnapshotFromView(result.BoardView, a.now()),
		ActiveID: result.ActiveID,
		Outcome:  result.Outcome,
	}
}

// normalizeDragRequest trims ids and requires the active id.
func normalizeDragRequest(in DragRequest) (DragRequest, error) {
	in.ActiveID = strings.TrimSpace(in.ActiveID)
	in.OverID = strings.TrimSpace(in.OverID)
	if in.ActiveID == "" {
		return DragRequest{}, fmt.Errorf("active_id is required: %w", ErrInvalidRequest)
	}
	return in, nil
}

// mapDomainDragEvents converts journal rows into transport rows.
func mapDomainDragEvents(events []domain.DragEvent) []DragEvent {
	out := make([]DragEvent, 0, len(events))
	for _, event := range events {
		out = append(out, DragEvent{
			ID:              event.ID,
			SessionID:       event.SessionID,
			Operation:       string(event.Operation),
			ItemID:          event.ItemID,
			FromContainerID: event.FromContainerID,
			ToContainerID:   event.ToContainerID,
			FromIndex:       event.FromIndex,
			ToIndex:         event.ToIndex,
			Reason:          event.Reason,
			OccurredAt:      event.OccurredAt,
		})
	}
	return out
}

// mapAppError maps app-level errors into transport-visible sentinels.
func mapAppError(operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, app.ErrNotFound):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrNotFound, err))
	case errors.Is(err, app.ErrJournalUnavailable):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrJournalUnavailable, err))
	default:
		return fmt.Errorf("%s: %w", operation, err)
	}
}
