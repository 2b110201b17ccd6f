package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-server/internal/model"
	"github.com/focusflow/focusflow-server/internal/store"
)

// Seeder provisions directory and catalog rows for the suite. Concrete stores
// expose these outside store.Store so the read path stays read-only.
type Seeder interface {
	SeedTeam(ctx context.Context, t *model.Team) error
	SeedUser(ctx context.Context, u *model.User) error
	SeedTool(ctx context.Context, t *model.Tool) error
	SeedTemplate(ctx context.Context, t *model.ActionTemplate) error
}

func ptrInt(n int) *int       { return &n }
func ptrStr(s string) *string { return &s }

// Run exercises a compliance suite against a store.Store implementation.
// makeStore should return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) (store.Store, Seeder)) {
	t.Helper()

	s, seed := makeStore(t)
	ctx := context.Background()

	userID := "u-" + uuid.New().String()
	teamID := "t-" + uuid.New().String()

	if err := seed.SeedTeam(ctx, &model.Team{TeamID: teamID, Name: "platform"}); err != nil {
		t.Fatalf("SeedTeam: %v", err)
	}
	if err := seed.SeedUser(ctx, &model.User{UserID: userID, TeamID: &teamID, Email: userID + "@example.test", Name: "Dev One", TimeZone: "UTC", Status: "ACTIVE"}); err != nil {
		t.Fatalf("SeedUser: %v", err)
	}
	if err := seed.SeedTool(ctx, &model.Tool{ToolID: "tool-ide", Name: "IDE"}); err != nil {
		t.Fatalf("SeedTool: %v", err)
	}
	if err := seed.SeedTemplate(ctx, &model.ActionTemplate{TemplateID: "tmpl-review", DisplayName: "Code Review"}); err != nil {
		t.Fatalf("SeedTemplate: %v", err)
	}

	// Directory
	if got, err := s.Directory().GetUser(ctx, userID); err != nil || got == nil || got.UserID != userID {
		t.Fatalf("GetUser: got=%v err=%v", got, err)
	}
	if _, err := s.Directory().GetUser(ctx, "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetUser unknown: err=%v, want ErrNotFound", err)
	}
	if members, err := s.Directory().ListTeamMembers(ctx, teamID); err != nil || len(members) != 1 {
		t.Fatalf("ListTeamMembers: n=%d err=%v", len(members), err)
	}
	if _, err := s.Directory().ListTeamMembers(ctx, "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("ListTeamMembers unknown team: err=%v, want ErrNotFound", err)
	}

	// Catalog
	if name, err := s.Catalog().ToolName(ctx, "tool-ide"); err != nil || name != "IDE" {
		t.Fatalf("ToolName: got=%q err=%v", name, err)
	}
	if _, err := s.Catalog().ToolName(ctx, "tool-unknown"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("ToolName unknown: err=%v, want ErrNotFound", err)
	}
	if name, err := s.Catalog().TemplateName(ctx, "tmpl-review"); err != nil || name != "Code Review" {
		t.Fatalf("TemplateName: got=%q err=%v", name, err)
	}

	// Events: create within one Monday-started week.
	weekStart := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC) // Monday
	monday := weekStart.Add(9 * time.Hour)
	tuesday := weekStart.Add(24*time.Hour + 10*time.Hour)

	e1, err := s.Events().Create(ctx, &model.ActivityEvent{
		UserID: userID, ToolID: ptrStr("tool-ide"), EventTime: monday,
		Minutes: ptrInt(30), Title: ptrStr("refactor"), Status: model.StatusCompleted,
		Metadata: map[string]interface{}{"a": float64(1)},
	})
	if err != nil {
		t.Fatalf("CreateEvent e1: %v", err)
	}
	if e1.EventID == "" {
		t.Fatalf("CreateEvent: empty event id")
	}
	e2, err := s.Events().Create(ctx, &model.ActivityEvent{
		UserID: userID, EventTime: monday.Add(time.Hour), Status: model.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("CreateEvent e2: %v", err)
	}
	if _, err := s.Events().Create(ctx, &model.ActivityEvent{
		UserID: userID, EventTime: tuesday, Minutes: ptrInt(45), Status: model.StatusCompleted,
	}); err != nil {
		t.Fatalf("CreateEvent e3: %v", err)
	}

	if got, err := s.Events().GetByID(ctx, e1.EventID); err != nil || got.Minutes == nil || *got.Minutes != 30 {
		t.Fatalf("GetEvent: got=%v err=%v", got, err)
	}
	if _, err := s.Events().GetByID(ctx, "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetEvent unknown: err=%v, want ErrNotFound", err)
	}

	// Range listing: half-open window, ascending order, cap honored.
	lst, err := s.Events().ListRange(ctx, model.ListEventsRequest{UserID: userID, From: weekStart, To: weekStart.Add(7 * 24 * time.Hour)})
	if err != nil || len(lst) != 3 {
		t.Fatalf("ListRange week: n=%d err=%v", len(lst), err)
	}
	for i := 1; i < len(lst); i++ {
		if lst[i].EventTime.Before(lst[i-1].EventTime) {
			t.Fatalf("ListRange: not ordered by event time")
		}
	}
	lst2, err := s.Events().ListRange(ctx, model.ListEventsRequest{UserID: userID, From: weekStart, To: weekStart.Add(7 * 24 * time.Hour), Limit: 2})
	if err != nil || len(lst2) != 2 {
		t.Fatalf("ListRange limit: n=%d err=%v", len(lst2), err)
	}
	// Keyset cursor resumes a capped scan without skipping or repeating rows.
	cursor := lst2[len(lst2)-1]
	rest, err := s.Events().ListRange(ctx, model.ListEventsRequest{
		UserID: userID, From: cursor.EventTime, To: weekStart.Add(7 * 24 * time.Hour),
		AfterEventID: cursor.EventID, Limit: 2,
	})
	if err != nil || len(rest) != 1 {
		t.Fatalf("ListRange cursor: n=%d err=%v", len(rest), err)
	}
	if rest[0].EventID != lst[2].EventID {
		t.Fatalf("ListRange cursor: got %q, want %q", rest[0].EventID, lst[2].EventID)
	}
	// Day window excludes the next day's events.
	if dayLst, err := s.Events().ListRange(ctx, model.ListEventsRequest{UserID: userID, From: weekStart, To: weekStart.Add(24 * time.Hour)}); err != nil || len(dayLst) != 2 {
		t.Fatalf("ListRange day: n=%d err=%v", len(dayLst), err)
	}

	// Partial update: metadata shallow-merges, untouched fields survive.
	upd, err := s.Events().Update(ctx, e1.EventID, model.EventUpdate{
		Metadata: map[string]interface{}{"b": float64(2)},
	})
	if err != nil {
		t.Fatalf("UpdateEvent merge: %v", err)
	}
	if upd.Metadata["a"] != float64(1) || upd.Metadata["b"] != float64(2) {
		t.Fatalf("UpdateEvent merge: metadata=%v", upd.Metadata)
	}
	if upd.Minutes == nil || *upd.Minutes != 30 {
		t.Fatalf("UpdateEvent merge: minutes clobbered: %v", upd.Minutes)
	}
	upd, err = s.Events().Update(ctx, e1.EventID, model.EventUpdate{
		Minutes:  ptrInt(40),
		Metadata: map[string]interface{}{"a": float64(3)},
	})
	if err != nil {
		t.Fatalf("UpdateEvent overwrite: %v", err)
	}
	if upd.Metadata["a"] != float64(3) || upd.Metadata["b"] != float64(2) {
		t.Fatalf("UpdateEvent overwrite: metadata=%v", upd.Metadata)
	}
	if *upd.Minutes != 40 {
		t.Fatalf("UpdateEvent overwrite: minutes=%d", *upd.Minutes)
	}
	if _, err := s.Events().Update(ctx, "nope", model.EventUpdate{Minutes: ptrInt(1)}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateEvent unknown: err=%v, want ErrNotFound", err)
	}

	// Summaries: upsert is last-writer-wins per (user, date).
	sum, err := s.Summaries().Upsert(ctx, &model.DailySummary{
		UserID: userID, Date: weekStart, TotalActions: 2, TotalMinutes: 70,
		Breakdown: map[string]int{"tool-ide": 70},
	})
	if err != nil || sum.SummaryID == "" {
		t.Fatalf("UpsertSummary: got=%v err=%v", sum, err)
	}
	sum2, err := s.Summaries().Upsert(ctx, &model.DailySummary{
		UserID: userID, Date: weekStart, TotalActions: 3, TotalMinutes: 75,
		Breakdown: map[string]int{"tool-ide": 75},
	})
	if err != nil {
		t.Fatalf("UpsertSummary again: %v", err)
	}
	if sum2.TotalMinutes != 75 || sum2.TotalActions != 3 {
		t.Fatalf("UpsertSummary again: got=%+v", sum2)
	}
	if got, err := s.Summaries().GetByUserDate(ctx, userID, weekStart); err != nil || got.TotalMinutes != 75 {
		t.Fatalf("GetSummary: got=%v err=%v", got, err)
	}
	if _, err := s.Summaries().GetByUserDate(ctx, userID, weekStart.AddDate(0, 0, 3)); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetSummary missing: err=%v, want ErrNotFound", err)
	}

	// Publishing before a report exists must fail and change nothing.
	if _, err := s.Reports().PublishWeek(ctx, userID, weekStart); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("PublishWeek without report: err=%v, want ErrNotFound", err)
	}
	if got, _ := s.Events().GetByID(ctx, e1.EventID); got.Status == model.StatusPublished {
		t.Fatalf("PublishWeek without report mutated events")
	}

	// Reports: upsert computed fields, published stays false.
	rep, err := s.Reports().Upsert(ctx, &model.WeeklyReport{
		UserID: userID, WeekStart: weekStart, TotalActions: 3, TotalMinutes: 85,
		ProjectTime: map[string]int{"tool-ide": 85},
		DailyStats: map[string]model.DayStat{
			"2025-11-03": {TotalActions: 2, TotalMinutes: 40, Breakdown: map[string]int{"tool-ide": 40}},
			"2025-11-04": {TotalActions: 1, TotalMinutes: 45, Breakdown: map[string]int{"tool-ide": 45}},
		},
	})
	if err != nil || rep.ReportID == "" || rep.Published {
		t.Fatalf("UpsertReport: got=%+v err=%v", rep, err)
	}

	// PublishWeek: report flagged, all events in window transitioned.
	n, err := s.Reports().PublishWeek(ctx, userID, weekStart)
	if err != nil || n != 3 {
		t.Fatalf("PublishWeek: n=%d err=%v", n, err)
	}
	rep, err = s.Reports().GetByUserWeek(ctx, userID, weekStart)
	if err != nil || !rep.Published {
		t.Fatalf("GetReport after publish: got=%+v err=%v", rep, err)
	}
	if got, _ := s.Events().GetByID(ctx, e1.EventID); got.Status != model.StatusPublished {
		t.Fatalf("PublishWeek: event status=%q", got.Status)
	}

	// Republishing is idempotent.
	if n, err := s.Reports().PublishWeek(ctx, userID, weekStart); err != nil || n != 3 {
		t.Fatalf("PublishWeek idempotent: n=%d err=%v", n, err)
	}

	// Recomputing a published week must not unpublish it.
	rep, err = s.Reports().Upsert(ctx, &model.WeeklyReport{
		UserID: userID, WeekStart: weekStart, TotalActions: 3, TotalMinutes: 95,
		ProjectTime: map[string]int{"tool-ide": 95},
	})
	if err != nil || !rep.Published || rep.TotalMinutes != 95 {
		t.Fatalf("UpsertReport after publish: got=%+v err=%v", rep, err)
	}

	// Non-canonical week start is rejected before any write.
	if _, err := s.Reports().PublishWeek(ctx, userID, weekStart.AddDate(0, 0, 1)); !errors.Is(err, model.ErrInvalidRange) {
		t.Fatalf("PublishWeek tuesday: err=%v, want ErrInvalidRange", err)
	}

	// Team reports
	trep, err := s.TeamReports().Upsert(ctx, &model.TeamReport{
		TeamID: teamID, WeekStart: weekStart,
		TeamStats:     model.TeamStats{TotalActions: 3, TotalMinutes: 95, MemberCount: 1},
		MemberReports: map[string]*model.WeeklyReport{userID: rep},
	})
	if err != nil || trep.TeamReportID == "" {
		t.Fatalf("UpsertTeamReport: got=%+v err=%v", trep, err)
	}
	if got, err := s.TeamReports().GetByTeamWeek(ctx, teamID, weekStart); err != nil || got.TeamStats.TotalMinutes != 95 || len(got.MemberReports) != 1 {
		t.Fatalf("GetTeamReport: got=%+v err=%v", got, err)
	}
	if _, err := s.TeamReports().GetByTeamWeek(ctx, teamID, weekStart.AddDate(0, 0, 7)); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetTeamReport missing: err=%v, want ErrNotFound", err)
	}

	// Delete
	if err := s.Events().Delete(ctx, e2.EventID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if err := s.Events().Delete(ctx, e2.EventID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteEvent again: err=%v, want ErrNotFound", err)
	}
}
