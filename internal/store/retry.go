package store

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/focusflow/focusflow-server/internal/model"
)

// WithRetry decorates a Store so that transient storage failures are retried
// a bounded number of times with exponential backoff before surfacing as
// model.ErrStorageUnavailable. Domain sentinel errors and context
// cancellation pass through untouched: they indicate caller/state issues,
// not faults worth retrying.
func WithRetry(inner Store, maxRetries uint64, log zerolog.Logger) Store {
	return &retryStore{inner: inner, max: maxRetries, log: log}
}

type retryStore struct {
	inner Store
	max   uint64
	log   zerolog.Logger
}

func (s *retryStore) Events() Events           { return &retryEvents{s} }
func (s *retryStore) Summaries() Summaries     { return &retrySummaries{s} }
func (s *retryStore) Reports() Reports         { return &retryReports{s} }
func (s *retryStore) TeamReports() TeamReports { return &retryTeamReports{s} }
func (s *retryStore) Directory() Directory     { return &retryDirectory{s} }
func (s *retryStore) Catalog() Catalog         { return &retryCatalog{s} }

// HealthPing forwards to the inner store without retry; the health checker
// supplies its own probing cadence.
func (s *retryStore) HealthPing(ctx context.Context) error {
	type pinger interface{ HealthPing(context.Context) error }
	if p, ok := s.inner.(pinger); ok {
		return p.HealthPing(ctx)
	}
	return nil
}

// retryable classifies errors worth a retry.
func retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	for _, sentinel := range []error{
		model.ErrNotFound, model.ErrPreconditionFailed, model.ErrInvalidRange,
		model.ErrEntryPublished, model.ErrValidation,
	} {
		if errors.Is(err, sentinel) {
			return false
		}
	}
	return true
}

func (s *retryStore) do(ctx context.Context, op string, fn func() error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), s.max), ctx)
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		s.log.Warn().Err(err).Str("op", op).Int("attempt", attempt).Msg("transient store failure, retrying")
		return err
	}, policy)
	if err == nil || !retryable(err) {
		return err
	}
	return errors.Join(model.ErrStorageUnavailable, err)
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return b
}

type retryEvents struct{ s *retryStore }

func (r *retryEvents) Create(ctx context.Context, e *model.ActivityEvent) (*model.ActivityEvent, error) {
	var out *model.ActivityEvent
	err := r.s.do(ctx, "events.create", func() (err error) {
		out, err = r.s.inner.Events().Create(ctx, e)
		return
	})
	return out, err
}

func (r *retryEvents) GetByID(ctx context.Context, eventID string) (*model.ActivityEvent, error) {
	var out *model.ActivityEvent
	err := r.s.do(ctx, "events.get", func() (err error) {
		out, err = r.s.inner.Events().GetByID(ctx, eventID)
		return
	})
	return out, err
}

func (r *retryEvents) ListRange(ctx context.Context, req model.ListEventsRequest) ([]*model.ActivityEvent, error) {
	var out []*model.ActivityEvent
	err := r.s.do(ctx, "events.list", func() (err error) {
		out, err = r.s.inner.Events().ListRange(ctx, req)
		return
	})
	return out, err
}

func (r *retryEvents) Update(ctx context.Context, eventID string, upd model.EventUpdate) (*model.ActivityEvent, error) {
	var out *model.ActivityEvent
	err := r.s.do(ctx, "events.update", func() (err error) {
		out, err = r.s.inner.Events().Update(ctx, eventID, upd)
		return
	})
	return out, err
}

func (r *retryEvents) Delete(ctx context.Context, eventID string) error {
	return r.s.do(ctx, "events.delete", func() error {
		return r.s.inner.Events().Delete(ctx, eventID)
	})
}

type retrySummaries struct{ s *retryStore }

func (r *retrySummaries) Upsert(ctx context.Context, sum *model.DailySummary) (*model.DailySummary, error) {
	var out *model.DailySummary
	err := r.s.do(ctx, "summaries.upsert", func() (err error) {
		out, err = r.s.inner.Summaries().Upsert(ctx, sum)
		return
	})
	return out, err
}

func (r *retrySummaries) GetByUserDate(ctx context.Context, userID string, date time.Time) (*model.DailySummary, error) {
	var out *model.DailySummary
	err := r.s.do(ctx, "summaries.get", func() (err error) {
		out, err = r.s.inner.Summaries().GetByUserDate(ctx, userID, date)
		return
	})
	return out, err
}

type retryReports struct{ s *retryStore }

func (r *retryReports) Upsert(ctx context.Context, rep *model.WeeklyReport) (*model.WeeklyReport, error) {
	var out *model.WeeklyReport
	err := r.s.do(ctx, "reports.upsert", func() (err error) {
		out, err = r.s.inner.Reports().Upsert(ctx, rep)
		return
	})
	return out, err
}

func (r *retryReports) GetByUserWeek(ctx context.Context, userID string, weekStart time.Time) (*model.WeeklyReport, error) {
	var out *model.WeeklyReport
	err := r.s.do(ctx, "reports.get", func() (err error) {
		out, err = r.s.inner.Reports().GetByUserWeek(ctx, userID, weekStart)
		return
	})
	return out, err
}

func (r *retryReports) PublishWeek(ctx context.Context, userID string, weekStart time.Time) (int, error) {
	var n int
	err := r.s.do(ctx, "reports.publish_week", func() (err error) {
		n, err = r.s.inner.Reports().PublishWeek(ctx, userID, weekStart)
		return
	})
	return n, err
}

type retryTeamReports struct{ s *retryStore }

func (r *retryTeamReports) Upsert(ctx context.Context, rep *model.TeamReport) (*model.TeamReport, error) {
	var out *model.TeamReport
	err := r.s.do(ctx, "team_reports.upsert", func() (err error) {
		out, err = r.s.inner.TeamReports().Upsert(ctx, rep)
		return
	})
	return out, err
}

func (r *retryTeamReports) GetByTeamWeek(ctx context.Context, teamID string, weekStart time.Time) (*model.TeamReport, error) {
	var out *model.TeamReport
	err := r.s.do(ctx, "team_reports.get", func() (err error) {
		out, err = r.s.inner.TeamReports().GetByTeamWeek(ctx, teamID, weekStart)
		return
	})
	return out, err
}

type retryDirectory struct{ s *retryStore }

func (r *retryDirectory) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var out *model.User
	err := r.s.do(ctx, "directory.get_user", func() (err error) {
		out, err = r.s.inner.Directory().GetUser(ctx, userID)
		return
	})
	return out, err
}

func (r *retryDirectory) ListTeamMembers(ctx context.Context, teamID string) ([]*model.User, error) {
	var out []*model.User
	err := r.s.do(ctx, "directory.list_team_members", func() (err error) {
		out, err = r.s.inner.Directory().ListTeamMembers(ctx, teamID)
		return
	})
	return out, err
}

type retryCatalog struct{ s *retryStore }

func (r *retryCatalog) ToolName(ctx context.Context, toolID string) (string, error) {
	var out string
	err := r.s.do(ctx, "catalog.tool_name", func() (err error) {
		out, err = r.s.inner.Catalog().ToolName(ctx, toolID)
		return
	})
	return out, err
}

func (r *retryCatalog) TemplateName(ctx context.Context, templateID string) (string, error) {
	var out string
	err := r.s.do(ctx, "catalog.template_name", func() (err error) {
		out, err = r.s.inner.Catalog().TemplateName(ctx, templateID)
		return
	})
	return out, err
}
