package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/focusflow/focusflow-server/internal/model"
	"github.com/focusflow/focusflow-server/internal/store"
)

// PublishService owns the status transitions that freeze activity into
// published reports.
type PublishService struct {
	store store.Store
}

func NewPublishService(s store.Store) *PublishService {
	return &PublishService{store: s}
}

// PublishEntry transitions a single event to published. Publishing an already
// published entry is a no-op success.
func (s *PublishService) PublishEntry(ctx context.Context, eventID string) (*model.ActivityEvent, error) {
	ev, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.Status == model.StatusPublished {
		return ev, nil
	}
	status := model.StatusPublished
	return s.store.Events().Update(ctx, eventID, model.EventUpdate{Status: &status})
}

// WeekPublication is the result of publishing a week.
type WeekPublication struct {
	Report          *model.WeeklyReport `json:"report"`
	EventsPublished int                 `json:"eventsPublished"`
}

// PublishWeek atomically marks the week's report published and transitions all
// of its events. The report must exist: callers generate it first, then
// publish. Republishing is idempotent.
func (s *PublishService) PublishWeek(ctx context.Context, userID string, weekStart time.Time) (*WeekPublication, error) {
	if userID == "" {
		return nil, fmt.Errorf("userId is required: %w", model.ErrValidation)
	}
	if _, err := s.store.Directory().GetUser(ctx, userID); err != nil {
		return nil, err
	}
	n, err := s.store.Reports().PublishWeek(ctx, userID, weekStart)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("weekly report not found, generate the report first: %w", model.ErrPreconditionFailed)
		}
		return nil, err
	}
	rep, err := s.store.Reports().GetByUserWeek(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}
	return &WeekPublication{Report: rep, EventsPublished: n}, nil
}
