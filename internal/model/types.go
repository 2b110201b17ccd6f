package model

import "time"

// Activity event statuses. An event moves in_progress -> completed -> published;
// published is terminal for the reporting pipeline.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusPublished  = "published"
)

// ValidStatus reports whether s is a known activity event status.
func ValidStatus(s string) bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusPublished:
		return true
	}
	return false
}

// ActivityEvent is one timestamped unit of recorded work, owned by a user.
type ActivityEvent struct {
	EventID      string                 `json:"eventId"`
	UserID       string                 `json:"userId"`
	ToolID       *string                `json:"toolId,omitempty"`
	TemplateID   *string                `json:"templateId,omitempty"`
	EventTime    time.Time              `json:"eventTime"`
	Minutes      *int                   `json:"minutes,omitempty"`
	Title        *string                `json:"title,omitempty"`
	Status       string                 `json:"status"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreationTime time.Time              `json:"creationTime"`
}

// EventUpdate carries a partial mutation of an ActivityEvent. Nil fields are
// left untouched; Metadata is shallow-merged into the existing mapping
// (provided keys overwrite, absent keys are preserved).
type EventUpdate struct {
	Minutes  *int                   `json:"minutes,omitempty"`
	Title    *string                `json:"title,omitempty"`
	Status   *string                `json:"status,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// IsZero reports whether the update carries no fields at all.
func (u EventUpdate) IsZero() bool {
	return u.Minutes == nil && u.Title == nil && u.Status == nil && u.Metadata == nil
}

// ListEventsRequest captures filters used when querying events in a time range.
// From is inclusive, To exclusive. Limit caps the scan; zero means the store
// default applies. When AfterEventID is set, (From, AfterEventID) is treated as
// an exclusive keyset cursor: the scan resumes strictly after that position in
// (event_time, event_id) order, letting callers page past the scan cap.
type ListEventsRequest struct {
	UserID       string
	From         time.Time
	To           time.Time
	Limit        int
	AfterEventID string
}

// DailySummary is the per-(user, date) rollup of that day's events. It is
// recomputable at any time from the events of the date.
type DailySummary struct {
	SummaryID    string         `json:"summaryId"`
	UserID       string         `json:"userId"`
	Date         time.Time      `json:"date"`
	TotalActions int            `json:"totalActions"`
	TotalMinutes int            `json:"totalMinutes"`
	Breakdown    map[string]int `json:"breakdown"`
	Submitted    bool           `json:"submitted"`
	CreationTime time.Time      `json:"creationTime"`
}

// DayStat is a DailySummary-shaped aggregate embedded in a WeeklyReport,
// keyed by day (see DayKey).
type DayStat struct {
	TotalActions int            `json:"totalActions"`
	TotalMinutes int            `json:"totalMinutes"`
	Breakdown    map[string]int `json:"breakdown"`
}

// WeeklyReport is the per-(user, week) rollup. WeekStart must be a canonical
// week start (Monday midnight UTC); the report covers [WeekStart, WeekStart+7d).
type WeeklyReport struct {
	ReportID     string             `json:"reportId"`
	UserID       string             `json:"userId"`
	WeekStart    time.Time          `json:"weekStart"`
	TotalActions int                `json:"totalActions"`
	TotalMinutes int                `json:"totalMinutes"`
	ProjectTime  map[string]int     `json:"projectTime"`
	DailyStats   map[string]DayStat `json:"dailyStats"`
	Published    bool               `json:"published"`
	CreationTime time.Time          `json:"creationTime"`
}

// TeamStats aggregates member weekly totals.
type TeamStats struct {
	TotalActions int `json:"totalActions"`
	TotalMinutes int `json:"totalMinutes"`
	MemberCount  int `json:"memberCount"`
}

// TeamReport is the per-(team, week) rollup over the team's current members.
type TeamReport struct {
	TeamReportID  string                   `json:"teamReportId"`
	TeamID        string                   `json:"teamId"`
	WeekStart     time.Time                `json:"weekStart"`
	AISummary     *string                  `json:"aiSummary,omitempty"`
	TeamStats     TeamStats                `json:"teamStats"`
	MemberReports map[string]*WeeklyReport `json:"memberReports"`
	CreationTime  time.Time                `json:"creationTime"`
}

// User is the directory view of an account; the surrounding CRUD layer owns
// the full record.
type User struct {
	UserID   string  `json:"userId"`
	TeamID   *string `json:"teamId,omitempty"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	TimeZone string  `json:"timeZone,omitempty"`
	Status   string  `json:"status,omitempty"`
}

// Team is the directory view of a team.
type Team struct {
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
}

// Tool is the catalog view of an integrated tool.
type Tool struct {
	ToolID string `json:"toolId"`
	Name   string `json:"name"`
}

// ActionTemplate is the catalog view of an action template.
type ActionTemplate struct {
	TemplateID  string `json:"templateId"`
	DisplayName string `json:"displayName"`
}

// CalendarEntry is the read-side view of an event with resolved display names.
// Nil ToolName/TemplateName means the referenced record is absent.
type CalendarEntry struct {
	EventID      string                 `json:"eventId"`
	UserID       string                 `json:"userId"`
	ToolID       *string                `json:"toolId,omitempty"`
	TemplateID   *string                `json:"templateId,omitempty"`
	EventTime    time.Time              `json:"eventTime"`
	Minutes      *int                   `json:"minutes,omitempty"`
	Title        *string                `json:"title,omitempty"`
	Status       string                 `json:"status"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	ToolName     *string                `json:"toolName,omitempty"`
	TemplateName *string                `json:"templateName,omitempty"`
}

// CalendarDay is the composed day view. Not persisted.
type CalendarDay struct {
	UserID          string           `json:"userId"`
	Date            time.Time        `json:"date"`
	TotalMinutes    int              `json:"totalMinutes"`
	TotalActivities int              `json:"totalActivities"`
	Entries         []*CalendarEntry `json:"entries"`
}

// CalendarWeek is the composed week view. Published reflects the weekly
// report's flag, or false when no report exists. Not persisted.
type CalendarWeek struct {
	UserID          string           `json:"userId"`
	WeekStart       time.Time        `json:"weekStart"`
	WeekEnd         time.Time        `json:"weekEnd"`
	TotalMinutes    int              `json:"totalMinutes"`
	TotalActivities int              `json:"totalActivities"`
	Published       bool             `json:"published"`
	Entries         []*CalendarEntry `json:"entries"`
}

// MergeMetadata returns the shallow merge of upd into existing: keys present
// in upd overwrite, keys absent from upd are preserved. A nil existing map is
// treated as empty. The inputs are not mutated.
func MergeMetadata(existing, upd map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(existing)+len(upd))
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range upd {
		out[k] = v
	}
	return out
}
