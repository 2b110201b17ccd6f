package store

import (
	"context"
	"time"

	"github.com/focusflow/focusflow-server/internal/model"
)

// DefaultScanLimit bounds unbounded event scans (activity drilldowns and
// range listings) to keep worst-case latency predictable.
const DefaultScanLimit = 500

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (e.g., postgres, sqlite).
type Store interface {
	Events() Events
	Summaries() Summaries
	Reports() Reports
	TeamReports() TeamReports
	Directory() Directory
	Catalog() Catalog
}

// Events is the durable append/query interface for activity events.
type Events interface {
	Create(ctx context.Context, e *model.ActivityEvent) (*model.ActivityEvent, error)
	GetByID(ctx context.Context, eventID string) (*model.ActivityEvent, error)
	// ListRange returns events with From <= event_time < To, ordered by
	// event_time ascending (event id breaks ties), capped at req.Limit or
	// DefaultScanLimit. A req.AfterEventID keyset cursor resumes the scan
	// strictly after (From, AfterEventID), so callers that must see every
	// row (rollup aggregation) page until a short page comes back.
	ListRange(ctx context.Context, req model.ListEventsRequest) ([]*model.ActivityEvent, error)
	// Update applies only the provided fields; metadata is shallow-merged
	// into the stored mapping under the row's lock. Unknown id yields
	// model.ErrNotFound.
	Update(ctx context.Context, eventID string, upd model.EventUpdate) (*model.ActivityEvent, error)
	Delete(ctx context.Context, eventID string) error
}

// Summaries persists daily rollups, one logical row per (user, date).
type Summaries interface {
	// Upsert inserts or replaces the summary for (UserID, Date).
	// Concurrent recomputation resolves to last-writer-wins on the row.
	Upsert(ctx context.Context, s *model.DailySummary) (*model.DailySummary, error)
	GetByUserDate(ctx context.Context, userID string, date time.Time) (*model.DailySummary, error)
}

// Reports persists weekly rollups, one logical row per (user, week_start).
type Reports interface {
	// Upsert inserts or replaces the computed fields for (UserID, WeekStart).
	// The published flag is never modified by an upsert.
	Upsert(ctx context.Context, r *model.WeeklyReport) (*model.WeeklyReport, error)
	GetByUserWeek(ctx context.Context, userID string, weekStart time.Time) (*model.WeeklyReport, error)
	// PublishWeek atomically marks the report published and transitions every
	// event in [weekStart, weekStart+7d) to status published, in a single
	// transaction. Returns the number of events touched. model.ErrNotFound
	// when no report row exists for the week.
	PublishWeek(ctx context.Context, userID string, weekStart time.Time) (int, error)
}

// TeamReports persists team rollups, one logical row per (team, week_start).
type TeamReports interface {
	Upsert(ctx context.Context, r *model.TeamReport) (*model.TeamReport, error)
	GetByTeamWeek(ctx context.Context, teamID string, weekStart time.Time) (*model.TeamReport, error)
}

// Directory resolves users and team membership. It is a read-only collaborator;
// account CRUD belongs to the surrounding service layer.
type Directory interface {
	GetUser(ctx context.Context, userID string) (*model.User, error)
	// ListTeamMembers returns the team's current members. Unknown team yields
	// model.ErrNotFound; a known team with no members returns an empty slice.
	ListTeamMembers(ctx context.Context, teamID string) ([]*model.User, error)
}

// Catalog resolves tool and template display names. Absence is reported as
// model.ErrNotFound and is non-fatal to callers.
type Catalog interface {
	ToolName(ctx context.Context, toolID string) (string, error)
	TemplateName(ctx context.Context, templateID string) (string, error)
}
