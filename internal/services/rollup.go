package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/focusflow/focusflow-server/internal/model"
	"github.com/focusflow/focusflow-server/internal/store"
)

// Categorizer assigns an event to a breakdown bucket (project, tool, ...).
type Categorizer func(*model.ActivityEvent) string

// DefaultCategorizer buckets by the "project" metadata key, falling back to
// the tool id, then to "uncategorized".
func DefaultCategorizer(e *model.ActivityEvent) string {
	if e.Metadata != nil {
		if p, ok := e.Metadata["project"].(string); ok && p != "" {
			return p
		}
	}
	if e.ToolID != nil && *e.ToolID != "" {
		return *e.ToolID
	}
	return "uncategorized"
}

// RollupService computes daily, weekly and team aggregates from activity
// events. All rollups are pure functions of the underlying events, so
// recomputation is idempotent.
type RollupService struct {
	store      store.Store
	categorize Categorizer
}

func NewRollupService(s store.Store, c Categorizer) *RollupService {
	if c == nil {
		c = DefaultCategorizer
	}
	return &RollupService{store: s, categorize: c}
}

// minutesOf treats absent minutes as zero so unsized events still count as
// actions without contributing time.
func minutesOf(e *model.ActivityEvent) int {
	if e.Minutes == nil {
		return 0
	}
	return *e.Minutes
}

// listWindow pages through every event in [from, to) with a keyset cursor.
// Rollups must see the full window; only drilldowns stop at the scan cap.
func (s *RollupService) listWindow(ctx context.Context, userID string, from, to time.Time) ([]*model.ActivityEvent, error) {
	req := model.ListEventsRequest{UserID: userID, From: from, To: to, Limit: store.DefaultScanLimit}
	var out []*model.ActivityEvent
	for {
		page, err := s.store.Events().ListRange(ctx, req)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < store.DefaultScanLimit {
			return out, nil
		}
		last := page[len(page)-1]
		req.From = last.EventTime
		req.AfterEventID = last.EventID
	}
}

// ComputeDaily recomputes and persists the summary for (userID, date).
func (s *RollupService) ComputeDaily(ctx context.Context, userID string, date time.Time) (*model.DailySummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("userId is required: %w", model.ErrValidation)
	}
	if _, err := s.store.Directory().GetUser(ctx, userID); err != nil {
		return nil, err
	}
	from, to := model.DayWindow(date)
	events, err := s.listWindow(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	sum := &model.DailySummary{
		UserID:    userID,
		Date:      from,
		Breakdown: map[string]int{},
	}
	for _, e := range events {
		sum.TotalActions++
		sum.TotalMinutes += minutesOf(e)
		sum.Breakdown[s.categorize(e)] += minutesOf(e)
	}
	return s.store.Summaries().Upsert(ctx, sum)
}

// GetDaily returns the stored summary for (userID, date), computing and
// persisting it on first access.
func (s *RollupService) GetDaily(ctx context.Context, userID string, date time.Time) (*model.DailySummary, error) {
	sum, err := s.store.Summaries().GetByUserDate(ctx, userID, date)
	if err == nil {
		return sum, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	return s.ComputeDaily(ctx, userID, date)
}

// GenerateWeekly recomputes and persists the weekly report for
// (userID, weekStart). weekStart must be a Monday midnight UTC.
func (s *RollupService) GenerateWeekly(ctx context.Context, userID string, weekStart time.Time) (*model.WeeklyReport, error) {
	rep, err := s.computeWeekly(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}
	return s.store.Reports().Upsert(ctx, rep)
}

// GetWeekly returns the stored weekly report; model.ErrNotFound when the week
// has not been generated.
func (s *RollupService) GetWeekly(ctx context.Context, userID string, weekStart time.Time) (*model.WeeklyReport, error) {
	if _, _, err := model.WeekWindow(weekStart); err != nil {
		return nil, err
	}
	return s.store.Reports().GetByUserWeek(ctx, userID, weekStart)
}

// computeWeekly aggregates the week's events without persisting. DailyStats
// carries all seven day keys so the weekly total always equals the sum of the
// daily totals.
func (s *RollupService) computeWeekly(ctx context.Context, userID string, weekStart time.Time) (*model.WeeklyReport, error) {
	if userID == "" {
		return nil, fmt.Errorf("userId is required: %w", model.ErrValidation)
	}
	from, to, err := model.WeekWindow(weekStart)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Directory().GetUser(ctx, userID); err != nil {
		return nil, err
	}
	events, err := s.listWindow(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	rep := &model.WeeklyReport{
		UserID:      userID,
		WeekStart:   from,
		ProjectTime: map[string]int{},
		DailyStats:  map[string]model.DayStat{},
	}
	for d := 0; d < 7; d++ {
		rep.DailyStats[model.DayKey(from.AddDate(0, 0, d))] = model.DayStat{Breakdown: map[string]int{}}
	}
	for _, e := range events {
		mins := minutesOf(e)
		rep.TotalActions++
		rep.TotalMinutes += mins
		rep.ProjectTime[s.categorize(e)] += mins

		key := model.DayKey(e.EventTime)
		day := rep.DailyStats[key]
		day.TotalActions++
		day.TotalMinutes += mins
		if day.Breakdown == nil {
			day.Breakdown = map[string]int{}
		}
		day.Breakdown[s.categorize(e)] += mins
		rep.DailyStats[key] = day
	}
	return rep, nil
}

// GenerateTeamReport recomputes and persists the team rollup over the team's
// current members. Members with a stored weekly report contribute that report;
// others are aggregated on the fly without persisting a report on their behalf.
func (s *RollupService) GenerateTeamReport(ctx context.Context, teamID string, weekStart time.Time) (*model.TeamReport, error) {
	if teamID == "" {
		return nil, fmt.Errorf("teamId is required: %w", model.ErrValidation)
	}
	from, _, err := model.WeekWindow(weekStart)
	if err != nil {
		return nil, err
	}
	members, err := s.store.Directory().ListTeamMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	out := &model.TeamReport{
		TeamID:        teamID,
		WeekStart:     from,
		MemberReports: map[string]*model.WeeklyReport{},
	}
	out.TeamStats.MemberCount = len(members)
	for _, m := range members {
		rep, err := s.store.Reports().GetByUserWeek(ctx, m.UserID, from)
		if errors.Is(err, model.ErrNotFound) {
			rep, err = s.computeWeekly(ctx, m.UserID, from)
		}
		if err != nil {
			return nil, err
		}
		out.MemberReports[m.UserID] = rep
		out.TeamStats.TotalActions += rep.TotalActions
		out.TeamStats.TotalMinutes += rep.TotalMinutes
	}
	return s.store.TeamReports().Upsert(ctx, out)
}

// GetTeamReport returns the stored team rollup; model.ErrNotFound when the
// week has not been generated.
func (s *RollupService) GetTeamReport(ctx context.Context, teamID string, weekStart time.Time) (*model.TeamReport, error) {
	if _, _, err := model.WeekWindow(weekStart); err != nil {
		return nil, err
	}
	return s.store.TeamReports().GetByTeamWeek(ctx, teamID, weekStart)
}

// TeamActivity returns the team's events in [from, to), merged across members
// in event-time order and capped at the store scan limit.
func (s *RollupService) TeamActivity(ctx context.Context, teamID string, from, to time.Time) ([]*model.ActivityEvent, error) {
	if teamID == "" {
		return nil, fmt.Errorf("teamId is required: %w", model.ErrValidation)
	}
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if to.Before(from) {
		return nil, fmt.Errorf("window [%s, %s): %w",
			from.Format(time.RFC3339), to.Format(time.RFC3339), model.ErrInvalidRange)
	}
	members, err := s.store.Directory().ListTeamMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	var merged []*model.ActivityEvent
	for _, m := range members {
		events, err := s.store.Events().ListRange(ctx, model.ListEventsRequest{UserID: m.UserID, From: from, To: to})
		if err != nil {
			return nil, err
		}
		merged = append(merged, events...)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].EventTime.Equal(merged[j].EventTime) {
			return merged[i].EventID < merged[j].EventID
		}
		return merged[i].EventTime.Before(merged[j].EventTime)
	})
	if len(merged) > store.DefaultScanLimit {
		merged = merged[:store.DefaultScanLimit]
	}
	return merged, nil
}
