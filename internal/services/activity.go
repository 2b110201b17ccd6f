package services

import (
	"context"
	"fmt"
	"time"

	"github.com/focusflow/focusflow-server/internal/model"
	"github.com/focusflow/focusflow-server/internal/store"
)

// ActivityService owns the write path for activity events.
type ActivityService struct {
	store store.Store
}

func NewActivityService(s store.Store) *ActivityService {
	return &ActivityService{store: s}
}

// CreateEvent records a new activity event. Status defaults to completed and
// EventTime to now (UTC) when absent.
func (s *ActivityService) CreateEvent(ctx context.Context, e *model.ActivityEvent) (*model.ActivityEvent, error) {
	if e.UserID == "" {
		return nil, fmt.Errorf("userId is required: %w", model.ErrValidation)
	}
	if e.Minutes != nil && *e.Minutes < 0 {
		return nil, fmt.Errorf("minutes must be non-negative: %w", model.ErrValidation)
	}
	if e.Status == "" {
		e.Status = model.StatusCompleted
	}
	if !model.ValidStatus(e.Status) {
		return nil, fmt.Errorf("unknown status %q: %w", e.Status, model.ErrValidation)
	}
	if _, err := s.store.Directory().GetUser(ctx, e.UserID); err != nil {
		return nil, err
	}
	return s.store.Events().Create(ctx, e)
}

func (s *ActivityService) GetEvent(ctx context.Context, eventID string) (*model.ActivityEvent, error) {
	return s.store.Events().GetByID(ctx, eventID)
}

// ListEvents returns a user's events in [from, to), capped by the store scan
// limit. A zero To defaults to now; a zero From leaves the window open-ended
// at the past.
func (s *ActivityService) ListEvents(ctx context.Context, userID string, from, to time.Time, limit int) ([]*model.ActivityEvent, error) {
	if userID == "" {
		return nil, fmt.Errorf("userId is required: %w", model.ErrValidation)
	}
	if to.IsZero() {
		to = time.Now().UTC()
	}
	return s.store.Events().ListRange(ctx, model.ListEventsRequest{
		UserID: userID, From: from, To: to, Limit: limit,
	})
}

func (s *ActivityService) DeleteEvent(ctx context.Context, eventID string) error {
	ev, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if ev.Status == model.StatusPublished {
		return fmt.Errorf("event %s is published: %w", eventID, model.ErrEntryPublished)
	}
	return s.store.Events().Delete(ctx, eventID)
}
