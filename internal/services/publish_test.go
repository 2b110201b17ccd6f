package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/focusflow-server/internal/model"
)

func TestPublish_Entry(t *testing.T) {
	f := newFakeStore()
	f.addUser("u1", nil)
	ev := seedEvent(f, "u1", testWeekStart.Add(time.Hour), intPtr(30), nil, nil)

	svc := NewPublishService(f)
	out, err := svc.PublishEntry(context.Background(), ev.EventID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, out.Status)

	// Idempotent.
	out, err = svc.PublishEntry(context.Background(), ev.EventID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, out.Status)
}

func TestPublish_Entry_Unknown(t *testing.T) {
	svc := NewPublishService(newFakeStore())
	_, err := svc.PublishEntry(context.Background(), "ghost")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestPublish_Week_RequiresGeneratedReport(t *testing.T) {
	f := newFakeStore()
	f.addUser("u1", nil)
	ev := seedEvent(f, "u1", testWeekStart.Add(time.Hour), intPtr(30), nil, nil)

	svc := NewPublishService(f)
	_, err := svc.PublishWeek(context.Background(), "u1", testWeekStart)
	require.ErrorIs(t, err, model.ErrPreconditionFailed)

	// The failed publish must not have touched any event.
	got, err := f.Events().GetByID(context.Background(), ev.EventID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
}

func TestPublish_Week_FlipsReportAndEvents(t *testing.T) {
	f := newFakeStore()
	f.addUser("u1", nil)
	e1 := seedEvent(f, "u1", testWeekStart.Add(time.Hour), intPtr(30), nil, nil)
	e2 := seedEvent(f, "u1", testWeekStart.Add(30*time.Hour), intPtr(45), nil, nil)
	outside := seedEvent(f, "u1", testWeekStart.AddDate(0, 0, 7).Add(time.Hour), intPtr(10), nil, nil)

	rollup := NewRollupService(f, nil)
	_, err := rollup.GenerateWeekly(context.Background(), "u1", testWeekStart)
	require.NoError(t, err)

	svc := NewPublishService(f)
	pub, err := svc.PublishWeek(context.Background(), "u1", testWeekStart)
	require.NoError(t, err)
	assert.Equal(t, 2, pub.EventsPublished)
	assert.True(t, pub.Report.Published)

	for _, id := range []string{e1.EventID, e2.EventID} {
		got, err := f.Events().GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPublished, got.Status)
	}
	got, err := f.Events().GetByID(context.Background(), outside.EventID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status, "events outside the week are untouched")

	// Republishing succeeds and reports the same window.
	pub, err = svc.PublishWeek(context.Background(), "u1", testWeekStart)
	require.NoError(t, err)
	assert.Equal(t, 2, pub.EventsPublished)
}

func TestPublish_Week_UnknownUser(t *testing.T) {
	svc := NewPublishService(newFakeStore())
	_, err := svc.PublishWeek(context.Background(), "ghost", testWeekStart)
	require.ErrorIs(t, err, model.ErrNotFound)
	assert.NotErrorIs(t, err, model.ErrPreconditionFailed,
		"a missing user is not a missing report")
}

func TestPublish_Week_RejectsNonMondayStart(t *testing.T) {
	f := newFakeStore()
	f.addUser("u1", nil)
	svc := NewPublishService(f)
	_, err := svc.PublishWeek(context.Background(), "u1", testWeekStart.AddDate(0, 0, 2))
	require.ErrorIs(t, err, model.ErrInvalidRange)
}
