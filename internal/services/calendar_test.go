package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/focusflow-server/internal/model"
)

func TestCalendar_WeekView(t *testing.T) {
	f := newFakeStore()
	f.addUser("u1", nil)
	f.tools["tool-a"] = "IDE"
	seedEvent(f, "u1", testWeekStart.Add(9*time.Hour), intPtr(30), strPtr("tool-a"), nil)
	seedEvent(f, "u1", testWeekStart.Add(30*time.Hour), nil, strPtr("tool-missing"), nil)

	svc := NewCalendarService(f)
	week, err := svc.WeekView(context.Background(), "u1", testWeekStart)
	require.NoError(t, err)

	assert.Equal(t, testWeekStart, week.WeekStart)
	assert.Equal(t, testWeekStart.AddDate(0, 0, 6), week.WeekEnd)
	assert.Equal(t, 2, week.TotalActivities)
	assert.Equal(t, 30, week.TotalMinutes)
	assert.False(t, week.Published, "no report yet reads as unpublished")

	require.Len(t, week.Entries, 2)
	require.NotNil(t, week.Entries[0].ToolName)
	assert.Equal(t, "IDE", *week.Entries[0].ToolName)
	assert.Nil(t, week.Entries[1].ToolName, "unknown tool resolves to nil name")
}

func TestCalendar_WeekView_PublishedMirrorsReport(t *testing.T) {
	f := newFakeStore()
	f.addUser("u1", nil)
	seedEvent(f, "u1", testWeekStart.Add(time.Hour), intPtr(30), nil, nil)

	rollup := NewRollupService(f, nil)
	_, err := rollup.GenerateWeekly(context.Background(), "u1", testWeekStart)
	require.NoError(t, err)
	_, err = NewPublishService(f).PublishWeek(context.Background(), "u1", testWeekStart)
	require.NoError(t, err)

	week, err := NewCalendarService(f).WeekView(context.Background(), "u1", testWeekStart)
	require.NoError(t, err)
	assert.True(t, week.Published)
}

func TestCalendar_WeekView_CatalogOutagePropagates(t *testing.T) {
	f := newFakeStore()
	f.addUser("u1", nil)
	f.tools["tool-a"] = "IDE"
	seedEvent(f, "u1", testWeekStart.Add(9*time.Hour), intPtr(30), strPtr("tool-a"), nil)
	f.catalogErr = model.ErrStorageUnavailable

	// A catalog miss is tolerated; a storage failure must not silently render
	// nameless views.
	_, err := NewCalendarService(f).WeekView(context.Background(), "u1", testWeekStart)
	require.ErrorIs(t, err, model.ErrStorageUnavailable)
}

func TestCalendar_WeekView_RejectsNonMondayStart(t *testing.T) {
	f := newFakeStore()
	f.addUser("u1", nil)
	_, err := NewCalendarService(f).WeekView(context.Background(), "u1", testWeekStart.AddDate(0, 0, 3))
	require.ErrorIs(t, err, model.ErrInvalidRange)
}

func TestCalendar_DateView(t *testing.T) {
	f := newFakeStore()
	f.addUser("u1", nil)
	f.templates["tmpl-1"] = "Code Review"
	ev, _ := f.Events().Create(context.Background(), &model.ActivityEvent{
		UserID: "u1", TemplateID: strPtr("tmpl-1"),
		EventTime: testWeekStart.Add(10 * time.Hour),
		Minutes:   intPtr(25), Status: model.StatusCompleted,
	})
	// Next day: excluded.
	seedEvent(f, "u1", testWeekStart.AddDate(0, 0, 1).Add(time.Hour), intPtr(60), nil, nil)

	day, err := NewCalendarService(f).DateView(context.Background(), "u1", testWeekStart)
	require.NoError(t, err)
	assert.Equal(t, 1, day.TotalActivities)
	assert.Equal(t, 25, day.TotalMinutes)
	require.Len(t, day.Entries, 1)
	assert.Equal(t, ev.EventID, day.Entries[0].EventID)
	require.NotNil(t, day.Entries[0].TemplateName)
	assert.Equal(t, "Code Review", *day.Entries[0].TemplateName)
}

func TestCalendar_UpdateEntry_MetadataMerge(t *testing.T) {
	f := newFakeStore()
	f.addUser("u1", nil)
	ev := seedEvent(f, "u1", testWeekStart.Add(time.Hour), intPtr(30), nil,
		map[string]interface{}{"a": 1})

	svc := NewCalendarService(f)
	out, err := svc.UpdateEntry(context.Background(), ev.EventID, model.EventUpdate{
		Metadata: map[string]interface{}{"b": 2},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": 1, "b": 2}, out.Metadata)

	out, err = svc.UpdateEntry(context.Background(), ev.EventID, model.EventUpdate{
		Metadata: map[string]interface{}{"a": 3},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": 3, "b": 2}, out.Metadata)
}

func TestCalendar_UpdateEntry_PublishedEntryIsFrozen(t *testing.T) {
	f := newFakeStore()
	f.addUser("u1", nil)
	ev := seedEvent(f, "u1", testWeekStart.Add(time.Hour), intPtr(30), nil, nil)
	_, err := NewPublishService(f).PublishEntry(context.Background(), ev.EventID)
	require.NoError(t, err)

	svc := NewCalendarService(f)
	_, err = svc.UpdateEntry(context.Background(), ev.EventID, model.EventUpdate{Minutes: intPtr(60)})
	require.ErrorIs(t, err, model.ErrEntryPublished)

	_, err = svc.UpdateEntry(context.Background(), ev.EventID, model.EventUpdate{Title: strPtr("new")})
	require.ErrorIs(t, err, model.ErrEntryPublished)

	// Metadata merges stay allowed on published entries.
	out, err := svc.UpdateEntry(context.Background(), ev.EventID, model.EventUpdate{
		Metadata: map[string]interface{}{"note": "late"},
	})
	require.NoError(t, err)
	assert.Equal(t, "late", out.Metadata["note"])
}

func TestCalendar_UpdateEntry_Validation(t *testing.T) {
	f := newFakeStore()
	f.addUser("u1", nil)
	ev := seedEvent(f, "u1", testWeekStart.Add(time.Hour), intPtr(30), nil, nil)

	svc := NewCalendarService(f)
	_, err := svc.UpdateEntry(context.Background(), ev.EventID, model.EventUpdate{})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.UpdateEntry(context.Background(), ev.EventID, model.EventUpdate{Minutes: intPtr(-5)})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.UpdateEntry(context.Background(), ev.EventID, model.EventUpdate{Status: strPtr("bogus")})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.UpdateEntry(context.Background(), "ghost", model.EventUpdate{Minutes: intPtr(5)})
	require.ErrorIs(t, err, model.ErrNotFound)
}
