package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/focusflow-server/internal/model"
)

// flakyStore fails GetByID a configured number of times before succeeding.
type flakyStore struct {
	failures int
	err      error
	calls    int
}

func (f *flakyStore) Events() Events           { return &flakyEvents{f} }
func (f *flakyStore) Summaries() Summaries     { return nil }
func (f *flakyStore) Reports() Reports         { return nil }
func (f *flakyStore) TeamReports() TeamReports { return nil }
func (f *flakyStore) Directory() Directory     { return nil }
func (f *flakyStore) Catalog() Catalog         { return nil }

type flakyEvents struct{ f *flakyStore }

func (e *flakyEvents) Create(ctx context.Context, ev *model.ActivityEvent) (*model.ActivityEvent, error) {
	return ev, nil
}

func (e *flakyEvents) GetByID(ctx context.Context, id string) (*model.ActivityEvent, error) {
	e.f.calls++
	if e.f.calls <= e.f.failures {
		return nil, e.f.err
	}
	return &model.ActivityEvent{EventID: id}, nil
}

func (e *flakyEvents) ListRange(ctx context.Context, req model.ListEventsRequest) ([]*model.ActivityEvent, error) {
	return nil, nil
}

func (e *flakyEvents) Update(ctx context.Context, id string, upd model.EventUpdate) (*model.ActivityEvent, error) {
	return nil, nil
}

func (e *flakyEvents) Delete(ctx context.Context, id string) error { return nil }

func TestWithRetry_RecoversFromTransientFailure(t *testing.T) {
	inner := &flakyStore{failures: 2, err: errors.New("connection reset")}
	s := WithRetry(inner, 5, zerolog.Nop())

	ev, err := s.Events().GetByID(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "ev-1", ev.EventID)
	assert.Equal(t, 3, inner.calls)
}

func TestWithRetry_SentinelErrorsPassThroughUnretried(t *testing.T) {
	inner := &flakyStore{failures: 10, err: model.NotFoundf("activity event", "ev-1")}
	s := WithRetry(inner, 5, zerolog.Nop())

	_, err := s.Events().GetByID(context.Background(), "ev-1")
	require.ErrorIs(t, err, model.ErrNotFound)
	assert.NotErrorIs(t, err, model.ErrStorageUnavailable)
	assert.Equal(t, 1, inner.calls, "sentinel errors must not be retried")
}

func TestWithRetry_ExhaustionSurfacesStorageUnavailable(t *testing.T) {
	inner := &flakyStore{failures: 100, err: errors.New("connection reset")}
	s := WithRetry(inner, 2, zerolog.Nop())

	_, err := s.Events().GetByID(context.Background(), "ev-1")
	require.ErrorIs(t, err, model.ErrStorageUnavailable)
	assert.Equal(t, 3, inner.calls, "initial attempt plus two retries")
}

func TestWithRetry_ContextCancellationNotRetried(t *testing.T) {
	inner := &flakyStore{failures: 100, err: context.Canceled}
	s := WithRetry(inner, 5, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Events().GetByID(ctx, "ev-1")
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}
