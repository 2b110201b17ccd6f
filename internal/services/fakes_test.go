package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/focusflow/focusflow-server/internal/model"
	"github.com/focusflow/focusflow-server/internal/store"
)

// fakeStore is an in-memory store.Store used by service tests. It mirrors the
// semantics the compliance suite pins on real stores: ordered range scans,
// shallow metadata merges, publish-preserving report upserts and an atomic
// PublishWeek.
type fakeStore struct {
	mu          sync.Mutex
	seq         int
	events      map[string]*model.ActivityEvent
	summaries   map[string]*model.DailySummary
	reports     map[string]*model.WeeklyReport
	teamReports map[string]*model.TeamReport
	users       map[string]*model.User
	teams       map[string]bool
	tools       map[string]string
	templates   map[string]string
	catalogErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:      map[string]*model.ActivityEvent{},
		summaries:   map[string]*model.DailySummary{},
		reports:     map[string]*model.WeeklyReport{},
		teamReports: map[string]*model.TeamReport{},
		users:       map[string]*model.User{},
		teams:       map[string]bool{},
		tools:       map[string]string{},
		templates:   map[string]string{},
	}
}

func (f *fakeStore) Events() store.Events           { return &fakeEvents{f} }
func (f *fakeStore) Summaries() store.Summaries     { return &fakeSummaries{f} }
func (f *fakeStore) Reports() store.Reports         { return &fakeReports{f} }
func (f *fakeStore) TeamReports() store.TeamReports { return &fakeTeamReports{f} }
func (f *fakeStore) Directory() store.Directory     { return &fakeDirectory{f} }
func (f *fakeStore) Catalog() store.Catalog         { return &fakeCatalog{f} }

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) addUser(userID string, teamID *string) {
	f.users[userID] = &model.User{UserID: userID, TeamID: teamID, Email: userID + "@example.test", Name: userID}
	if teamID != nil {
		f.teams[*teamID] = true
	}
}

type fakeEvents struct{ f *fakeStore }

func (e *fakeEvents) Create(ctx context.Context, ev *model.ActivityEvent) (*model.ActivityEvent, error) {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	cp := *ev
	if cp.EventID == "" {
		cp.EventID = e.f.nextID("ev")
	}
	if cp.EventTime.IsZero() {
		cp.EventTime = time.Now().UTC()
	}
	cp.CreationTime = time.Now().UTC()
	e.f.events[cp.EventID] = &cp
	out := cp
	return &out, nil
}

func (e *fakeEvents) GetByID(ctx context.Context, id string) (*model.ActivityEvent, error) {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	ev, ok := e.f.events[id]
	if !ok {
		return nil, model.NotFoundf("activity event", id)
	}
	cp := *ev
	return &cp, nil
}

func (e *fakeEvents) ListRange(ctx context.Context, req model.ListEventsRequest) ([]*model.ActivityEvent, error) {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	limit := req.Limit
	if limit <= 0 || limit > store.DefaultScanLimit {
		limit = store.DefaultScanLimit
	}
	var out []*model.ActivityEvent
	for _, ev := range e.f.events {
		if ev.UserID != req.UserID {
			continue
		}
		if ev.EventTime.Before(req.From) || !ev.EventTime.Before(req.To) {
			continue
		}
		if req.AfterEventID != "" && ev.EventTime.Equal(req.From) && ev.EventID <= req.AfterEventID {
			continue
		}
		cp := *ev
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EventTime.Equal(out[j].EventTime) {
			return out[i].EventID < out[j].EventID
		}
		return out[i].EventTime.Before(out[j].EventTime)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (e *fakeEvents) Update(ctx context.Context, id string, upd model.EventUpdate) (*model.ActivityEvent, error) {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	ev, ok := e.f.events[id]
	if !ok {
		return nil, model.NotFoundf("activity event", id)
	}
	if upd.Minutes != nil {
		ev.Minutes = upd.Minutes
	}
	if upd.Title != nil {
		ev.Title = upd.Title
	}
	if upd.Status != nil {
		ev.Status = *upd.Status
	}
	if upd.Metadata != nil {
		ev.Metadata = model.MergeMetadata(ev.Metadata, upd.Metadata)
	}
	cp := *ev
	return &cp, nil
}

func (e *fakeEvents) Delete(ctx context.Context, id string) error {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	if _, ok := e.f.events[id]; !ok {
		return model.NotFoundf("activity event", id)
	}
	delete(e.f.events, id)
	return nil
}

type fakeSummaries struct{ f *fakeStore }

func summaryKey(userID string, date time.Time) string {
	return userID + "|" + model.DayKey(date)
}

func (s *fakeSummaries) Upsert(ctx context.Context, sum *model.DailySummary) (*model.DailySummary, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	cp := *sum
	key := summaryKey(cp.UserID, cp.Date)
	if prev, ok := s.f.summaries[key]; ok {
		cp.SummaryID = prev.SummaryID
	} else if cp.SummaryID == "" {
		cp.SummaryID = s.f.nextID("sum")
	}
	s.f.summaries[key] = &cp
	out := cp
	return &out, nil
}

func (s *fakeSummaries) GetByUserDate(ctx context.Context, userID string, date time.Time) (*model.DailySummary, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	sum, ok := s.f.summaries[summaryKey(userID, date)]
	if !ok {
		return nil, model.NotFoundf("daily summary", summaryKey(userID, date))
	}
	cp := *sum
	return &cp, nil
}

type fakeReports struct{ f *fakeStore }

func (r *fakeReports) Upsert(ctx context.Context, rep *model.WeeklyReport) (*model.WeeklyReport, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	cp := *rep
	key := summaryKey(cp.UserID, cp.WeekStart)
	if prev, ok := r.f.reports[key]; ok {
		cp.ReportID = prev.ReportID
		cp.Published = prev.Published
	} else {
		if cp.ReportID == "" {
			cp.ReportID = r.f.nextID("rep")
		}
		cp.Published = false
	}
	r.f.reports[key] = &cp
	out := cp
	return &out, nil
}

func (r *fakeReports) GetByUserWeek(ctx context.Context, userID string, weekStart time.Time) (*model.WeeklyReport, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	rep, ok := r.f.reports[summaryKey(userID, weekStart)]
	if !ok {
		return nil, model.NotFoundf("weekly report", summaryKey(userID, weekStart))
	}
	cp := *rep
	return &cp, nil
}

func (r *fakeReports) PublishWeek(ctx context.Context, userID string, weekStart time.Time) (int, error) {
	from, to, err := model.WeekWindow(weekStart)
	if err != nil {
		return 0, err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	rep, ok := r.f.reports[summaryKey(userID, from)]
	if !ok {
		return 0, model.NotFoundf("weekly report", summaryKey(userID, from))
	}
	rep.Published = true
	n := 0
	for _, ev := range r.f.events {
		if ev.UserID == userID && !ev.EventTime.Before(from) && ev.EventTime.Before(to) {
			ev.Status = model.StatusPublished
			n++
		}
	}
	return n, nil
}

type fakeTeamReports struct{ f *fakeStore }

func (t *fakeTeamReports) Upsert(ctx context.Context, rep *model.TeamReport) (*model.TeamReport, error) {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	cp := *rep
	key := cp.TeamID + "|" + model.DayKey(cp.WeekStart)
	if prev, ok := t.f.teamReports[key]; ok {
		cp.TeamReportID = prev.TeamReportID
	} else if cp.TeamReportID == "" {
		cp.TeamReportID = t.f.nextID("trep")
	}
	t.f.teamReports[key] = &cp
	out := cp
	return &out, nil
}

func (t *fakeTeamReports) GetByTeamWeek(ctx context.Context, teamID string, weekStart time.Time) (*model.TeamReport, error) {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	rep, ok := t.f.teamReports[teamID+"|"+model.DayKey(weekStart)]
	if !ok {
		return nil, model.NotFoundf("team report", teamID)
	}
	cp := *rep
	return &cp, nil
}

type fakeDirectory struct{ f *fakeStore }

func (d *fakeDirectory) GetUser(ctx context.Context, userID string) (*model.User, error) {
	d.f.mu.Lock()
	defer d.f.mu.Unlock()
	u, ok := d.f.users[userID]
	if !ok {
		return nil, model.NotFoundf("user", userID)
	}
	cp := *u
	return &cp, nil
}

func (d *fakeDirectory) ListTeamMembers(ctx context.Context, teamID string) ([]*model.User, error) {
	d.f.mu.Lock()
	defer d.f.mu.Unlock()
	if !d.f.teams[teamID] {
		return nil, model.NotFoundf("team", teamID)
	}
	out := []*model.User{}
	for _, u := range d.f.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type fakeCatalog struct{ f *fakeStore }

func (c *fakeCatalog) ToolName(ctx context.Context, toolID string) (string, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if c.f.catalogErr != nil {
		return "", c.f.catalogErr
	}
	name, ok := c.f.tools[toolID]
	if !ok {
		return "", model.NotFoundf("tool", toolID)
	}
	return name, nil
}

func (c *fakeCatalog) TemplateName(ctx context.Context, templateID string) (string, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if c.f.catalogErr != nil {
		return "", c.f.catalogErr
	}
	name, ok := c.f.templates[templateID]
	if !ok {
		return "", model.NotFoundf("action template", templateID)
	}
	return name, nil
}

// test helpers shared across service tests

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

var testWeekStart = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC) // Monday

func seedEvent(f *fakeStore, userID string, at time.Time, minutes *int, toolID *string, meta map[string]interface{}) *model.ActivityEvent {
	ev, _ := f.Events().Create(context.Background(), &model.ActivityEvent{
		UserID:    userID,
		ToolID:    toolID,
		EventTime: at,
		Minutes:   minutes,
		Status:    model.StatusCompleted,
		Metadata:  meta,
	})
	return ev
}
