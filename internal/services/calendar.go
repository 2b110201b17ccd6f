package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/focusflow/focusflow-server/internal/model"
	"github.com/focusflow/focusflow-server/internal/store"
)

// CalendarService composes read-side calendar views from events, reports and
// the tool/template catalog.
type CalendarService struct {
	store store.Store
}

func NewCalendarService(s store.Store) *CalendarService {
	return &CalendarService{store: s}
}

// WeekView builds the calendar for [weekStart, weekStart+7d). Published
// mirrors the weekly report's flag; a missing report reads as unpublished.
func (s *CalendarService) WeekView(ctx context.Context, userID string, weekStart time.Time) (*model.CalendarWeek, error) {
	if userID == "" {
		return nil, fmt.Errorf("userId is required: %w", model.ErrValidation)
	}
	from, to, err := model.WeekWindow(weekStart)
	if err != nil {
		return nil, err
	}
	events, err := s.store.Events().ListRange(ctx, model.ListEventsRequest{UserID: userID, From: from, To: to})
	if err != nil {
		return nil, err
	}

	week := &model.CalendarWeek{
		UserID:    userID,
		WeekStart: from,
		WeekEnd:   to.AddDate(0, 0, -1),
		Entries:   make([]*model.CalendarEntry, 0, len(events)),
	}
	names := newNameCache(s.store.Catalog())
	for _, e := range events {
		entry, err := names.entry(ctx, e)
		if err != nil {
			return nil, err
		}
		week.Entries = append(week.Entries, entry)
		week.TotalActivities++
		week.TotalMinutes += minutesOf(e)
	}

	rep, err := s.store.Reports().GetByUserWeek(ctx, userID, from)
	switch {
	case err == nil:
		week.Published = rep.Published
	case errors.Is(err, model.ErrNotFound):
		week.Published = false
	default:
		return nil, err
	}
	return week, nil
}

// DateView builds the calendar for a single day.
func (s *CalendarService) DateView(ctx context.Context, userID string, date time.Time) (*model.CalendarDay, error) {
	if userID == "" {
		return nil, fmt.Errorf("userId is required: %w", model.ErrValidation)
	}
	from, to := model.DayWindow(date)
	events, err := s.store.Events().ListRange(ctx, model.ListEventsRequest{UserID: userID, From: from, To: to})
	if err != nil {
		return nil, err
	}

	day := &model.CalendarDay{
		UserID:  userID,
		Date:    from,
		Entries: make([]*model.CalendarEntry, 0, len(events)),
	}
	names := newNameCache(s.store.Catalog())
	for _, e := range events {
		entry, err := names.entry(ctx, e)
		if err != nil {
			return nil, err
		}
		day.Entries = append(day.Entries, entry)
		day.TotalActivities++
		day.TotalMinutes += minutesOf(e)
	}
	return day, nil
}

// UpdateEntry applies a partial update to a calendar entry. Published entries
// accept metadata merges only; everything else is frozen.
func (s *CalendarService) UpdateEntry(ctx context.Context, eventID string, upd model.EventUpdate) (*model.CalendarEntry, error) {
	if upd.IsZero() {
		return nil, fmt.Errorf("update carries no fields: %w", model.ErrValidation)
	}
	if upd.Minutes != nil && *upd.Minutes < 0 {
		return nil, fmt.Errorf("minutes must be non-negative: %w", model.ErrValidation)
	}
	if upd.Status != nil && !model.ValidStatus(*upd.Status) {
		return nil, fmt.Errorf("unknown status %q: %w", *upd.Status, model.ErrValidation)
	}

	cur, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if cur.Status == model.StatusPublished && (upd.Minutes != nil || upd.Title != nil || upd.Status != nil) {
		return nil, fmt.Errorf("entry %s is published: %w", eventID, model.ErrEntryPublished)
	}

	updated, err := s.store.Events().Update(ctx, eventID, upd)
	if err != nil {
		return nil, err
	}
	return newNameCache(s.store.Catalog()).entry(ctx, updated)
}

// nameCache memoizes catalog lookups for the duration of one view build.
// Catalog misses resolve to nil names rather than failing the view; any other
// catalog error (storage trouble) fails the build.
type nameCache struct {
	catalog   store.Catalog
	tools     map[string]*string
	templates map[string]*string
}

func newNameCache(c store.Catalog) *nameCache {
	return &nameCache{catalog: c, tools: map[string]*string{}, templates: map[string]*string{}}
}

func (n *nameCache) entry(ctx context.Context, e *model.ActivityEvent) (*model.CalendarEntry, error) {
	out := &model.CalendarEntry{
		EventID:    e.EventID,
		UserID:     e.UserID,
		ToolID:     e.ToolID,
		TemplateID: e.TemplateID,
		EventTime:  e.EventTime,
		Minutes:    e.Minutes,
		Title:      e.Title,
		Status:     e.Status,
		Metadata:   e.Metadata,
	}
	var err error
	if e.ToolID != nil {
		if out.ToolName, err = n.lookup(ctx, n.tools, *e.ToolID, n.catalog.ToolName); err != nil {
			return nil, err
		}
	}
	if e.TemplateID != nil {
		if out.TemplateName, err = n.lookup(ctx, n.templates, *e.TemplateID, n.catalog.TemplateName); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (n *nameCache) lookup(ctx context.Context, cache map[string]*string, id string, fn func(context.Context, string) (string, error)) (*string, error) {
	if v, ok := cache[id]; ok {
		return v, nil
	}
	name, err := fn(ctx, id)
	switch {
	case err == nil:
		cache[id] = &name
		return &name, nil
	case errors.Is(err, model.ErrNotFound):
		cache[id] = nil
		return nil, nil
	default:
		return nil, err
	}
}
