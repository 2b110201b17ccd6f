package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/focusflow/focusflow-server/internal/model"
	"github.com/focusflow/focusflow-server/internal/store"
)

// Open opens (or creates) a SQLite database file and verifies connectivity.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Writers are serialized; a busy timeout avoids spurious SQLITE_BUSY
	// under request-parallel load.
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a SQLite store backed directly by database/sql.
func NewWithDB(db *sql.DB) *SqliteStore { return &SqliteStore{db: db} }

// SqliteStore implements store.Store on modernc.org/sqlite. Event times are
// stored as Unix nanoseconds so half-open range scans compare exactly.
type SqliteStore struct{ db *sql.DB }

var _ store.Store = (*SqliteStore)(nil)

func (s *SqliteStore) Events() store.Events           { return &events{db: s.db} }
func (s *SqliteStore) Summaries() store.Summaries     { return &summaries{db: s.db} }
func (s *SqliteStore) Reports() store.Reports         { return &reports{db: s.db} }
func (s *SqliteStore) TeamReports() store.TeamReports { return &teamReports{db: s.db} }
func (s *SqliteStore) Directory() store.Directory     { return &directory{db: s.db} }
func (s *SqliteStore) Catalog() store.Catalog         { return &catalog{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *SqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the tables used by the reporting core.
func (s *SqliteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS team (
            team_id       TEXT PRIMARY KEY,
            name          TEXT NOT NULL,
            creation_time TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS user_account (
            user_id       TEXT PRIMARY KEY,
            team_id       TEXT,
            email         TEXT NOT NULL,
            name          TEXT NOT NULL,
            time_zone     TEXT,
            status        TEXT,
            creation_time TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS tool (
            tool_id TEXT PRIMARY KEY,
            name    TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS action_template (
            template_id  TEXT PRIMARY KEY,
            display_name TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS activity_log (
            event_id      TEXT PRIMARY KEY,
            user_id       TEXT NOT NULL,
            tool_id       TEXT,
            template_id   TEXT,
            event_time    INTEGER NOT NULL,
            minutes       INTEGER,
            title         TEXT,
            metadata      TEXT,
            status        TEXT NOT NULL,
            creation_time TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_activity_log_user_time
            ON activity_log(user_id, event_time)`,
		`CREATE TABLE IF NOT EXISTS daily_summary (
            summary_id    TEXT PRIMARY KEY,
            user_id       TEXT NOT NULL,
            summary_date  TEXT NOT NULL,
            total_actions INTEGER NOT NULL,
            total_minutes INTEGER NOT NULL,
            breakdown     TEXT,
            submitted     INTEGER NOT NULL DEFAULT 0,
            creation_time TEXT NOT NULL,
            UNIQUE(user_id, summary_date)
        )`,
		`CREATE TABLE IF NOT EXISTS weekly_report (
            report_id     TEXT PRIMARY KEY,
            user_id       TEXT NOT NULL,
            week_start    TEXT NOT NULL,
            total_actions INTEGER NOT NULL,
            total_minutes INTEGER NOT NULL,
            project_time  TEXT,
            daily_stats   TEXT,
            published     INTEGER NOT NULL DEFAULT 0,
            creation_time TEXT NOT NULL,
            UNIQUE(user_id, week_start)
        )`,
		`CREATE TABLE IF NOT EXISTS team_report (
            team_report_id TEXT PRIMARY KEY,
            team_id        TEXT NOT NULL,
            week_start     TEXT NOT NULL,
            ai_summary     TEXT,
            team_stats     TEXT,
            member_reports TEXT,
            creation_time  TEXT NOT NULL,
            UNIQUE(team_id, week_start)
        )`,
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// Seed helpers write directory/catalog rows. They exist for local bootstrap
// and tests; directory and catalog stay read-only through store.Store.

func (s *SqliteStore) SeedTeam(ctx context.Context, t *model.Team) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO team (team_id, name, creation_time) VALUES (?,?,?)
         ON CONFLICT(team_id) DO UPDATE SET name=excluded.name`,
		t.TeamID, t.Name, encodeTime(time.Now().UTC()))
	return err
}

func (s *SqliteStore) SeedUser(ctx context.Context, u *model.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_account (user_id, team_id, email, name, time_zone, status, creation_time)
         VALUES (?,?,?,?,?,?,?)
         ON CONFLICT(user_id) DO UPDATE SET
            team_id=excluded.team_id, email=excluded.email, name=excluded.name,
            time_zone=excluded.time_zone, status=excluded.status`,
		u.UserID, u.TeamID, u.Email, u.Name, u.TimeZone, u.Status, encodeTime(time.Now().UTC()))
	return err
}

func (s *SqliteStore) SeedTool(ctx context.Context, t *model.Tool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tool (tool_id, name) VALUES (?,?)
         ON CONFLICT(tool_id) DO UPDATE SET name=excluded.name`,
		t.ToolID, t.Name)
	return err
}

func (s *SqliteStore) SeedTemplate(ctx context.Context, t *model.ActionTemplate) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO action_template (template_id, display_name) VALUES (?,?)
         ON CONFLICT(template_id) DO UPDATE SET display_name=excluded.display_name`,
		t.TemplateID, t.DisplayName)
	return err
}

// --- Events ---

type events struct{ db *sql.DB }

func (e *events) Create(ctx context.Context, ev *model.ActivityEvent) (*model.ActivityEvent, error) {
	id := ev.EventID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	eventTime := ev.EventTime
	if eventTime.IsZero() {
		eventTime = now
	}
	metaJSON, err := marshalMap(ev.Metadata)
	if err != nil {
		return nil, err
	}
	_, err = e.db.ExecContext(ctx, `
        INSERT INTO activity_log (event_id, user_id, tool_id, template_id, event_time, minutes, title, metadata, status, creation_time)
        VALUES (?,?,?,?,?,?,?,?,?,?)
    `, id, ev.UserID, ev.ToolID, ev.TemplateID, eventTime.UnixNano(), nullInt(ev.Minutes), ev.Title, metaJSON, ev.Status, encodeTime(now))
	if err != nil {
		return nil, err
	}
	out := *ev
	out.EventID = id
	out.EventTime = eventTime
	out.CreationTime = now
	return &out, nil
}

const eventColumns = `event_id, user_id, tool_id, template_id, event_time, minutes, title, metadata, status, creation_time`

func (e *events) GetByID(ctx context.Context, eventID string) (*model.ActivityEvent, error) {
	row := e.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM activity_log WHERE event_id = ?`, eventID)
	ev, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NotFoundf("activity event", eventID)
	}
	return ev, err
}

func (e *events) ListRange(ctx context.Context, req model.ListEventsRequest) ([]*model.ActivityEvent, error) {
	if !req.To.IsZero() && req.To.Before(req.From) {
		return nil, fmt.Errorf("window [%s, %s): %w",
			req.From.Format(time.RFC3339), req.To.Format(time.RFC3339), model.ErrInvalidRange)
	}
	limit := req.Limit
	if limit <= 0 || limit > store.DefaultScanLimit {
		limit = store.DefaultScanLimit
	}
	query := `
        SELECT ` + eventColumns + ` FROM activity_log
        WHERE user_id = ? AND event_time >= ? AND event_time < ?
        ORDER BY event_time ASC, event_id ASC
        LIMIT ?
    `
	args := []interface{}{req.UserID, req.From.UnixNano(), req.To.UnixNano(), limit}
	if req.AfterEventID != "" {
		query = `
        SELECT ` + eventColumns + ` FROM activity_log
        WHERE user_id = ? AND (event_time > ? OR (event_time = ? AND event_id > ?)) AND event_time < ?
        ORDER BY event_time ASC, event_id ASC
        LIMIT ?
    `
		cursor := req.From.UnixNano()
		args = []interface{}{req.UserID, cursor, cursor, req.AfterEventID, req.To.UnixNano(), limit}
	}
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.ActivityEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (e *events) Update(ctx context.Context, eventID string, upd model.EventUpdate) (*model.ActivityEvent, error) {
	tx, err := e.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM activity_log WHERE event_id = ?`, eventID)
	cur, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NotFoundf("activity event", eventID)
	}
	if err != nil {
		return nil, err
	}

	if upd.Minutes != nil {
		cur.Minutes = upd.Minutes
	}
	if upd.Title != nil {
		cur.Title = upd.Title
	}
	if upd.Status != nil {
		cur.Status = *upd.Status
	}
	if upd.Metadata != nil {
		cur.Metadata = model.MergeMetadata(cur.Metadata, upd.Metadata)
	}

	metaJSON, err := marshalMap(cur.Metadata)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `
        UPDATE activity_log SET minutes = ?, title = ?, status = ?, metadata = ?
        WHERE event_id = ?
    `, nullInt(cur.Minutes), cur.Title, cur.Status, metaJSON, eventID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return cur, nil
}

func (e *events) Delete(ctx context.Context, eventID string) error {
	res, err := e.db.ExecContext(ctx, `DELETE FROM activity_log WHERE event_id = ?`, eventID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.NotFoundf("activity event", eventID)
	}
	return nil
}

// --- Summaries ---

type summaries struct{ db *sql.DB }

func (s *summaries) Upsert(ctx context.Context, sum *model.DailySummary) (*model.DailySummary, error) {
	id := sum.SummaryID
	if id == "" {
		id = uuid.New().String()
	}
	breakdownJSON, err := marshalIntMap(sum.Breakdown)
	if err != nil {
		return nil, err
	}
	day := model.DayKey(sum.Date)
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO daily_summary (summary_id, user_id, summary_date, total_actions, total_minutes, breakdown, submitted, creation_time)
        VALUES (?,?,?,?,?,?,?,?)
        ON CONFLICT(user_id, summary_date) DO UPDATE SET
            total_actions = excluded.total_actions,
            total_minutes = excluded.total_minutes,
            breakdown     = excluded.breakdown,
            submitted     = excluded.submitted
    `, id, sum.UserID, day, sum.TotalActions, sum.TotalMinutes, breakdownJSON, boolInt(sum.Submitted), encodeTime(time.Now().UTC()))
	if err != nil {
		return nil, err
	}
	return s.GetByUserDate(ctx, sum.UserID, sum.Date)
}

func (s *summaries) GetByUserDate(ctx context.Context, userID string, date time.Time) (*model.DailySummary, error) {
	day := model.DayKey(date)
	row := s.db.QueryRowContext(ctx, `
        SELECT summary_id, user_id, summary_date, total_actions, total_minutes, breakdown, submitted, creation_time
        FROM daily_summary WHERE user_id = ? AND summary_date = ?
    `, userID, day)

	var out model.DailySummary
	var dayStr, created string
	var breakdown sql.NullString
	var submitted int
	if err := row.Scan(&out.SummaryID, &out.UserID, &dayStr, &out.TotalActions, &out.TotalMinutes, &breakdown, &submitted, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFoundf("daily summary", userID+"/"+day)
		}
		return nil, err
	}
	out.Date, _ = model.ParseDay(dayStr)
	out.Submitted = submitted != 0
	out.Breakdown = unmarshalIntMap(breakdown)
	out.CreationTime = decodeTime(created)
	return &out, nil
}

// --- Reports ---

type reports struct{ db *sql.DB }

func (r *reports) Upsert(ctx context.Context, rep *model.WeeklyReport) (*model.WeeklyReport, error) {
	id := rep.ReportID
	if id == "" {
		id = uuid.New().String()
	}
	projectJSON, err := marshalIntMap(rep.ProjectTime)
	if err != nil {
		return nil, err
	}
	dailyJSON, err := json.Marshal(rep.DailyStats)
	if err != nil {
		return nil, err
	}
	week := model.DayKey(rep.WeekStart)
	// published is intentionally absent from the conflict update: recomputing
	// a published week must not unpublish it.
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO weekly_report (report_id, user_id, week_start, total_actions, total_minutes, project_time, daily_stats, published, creation_time)
        VALUES (?,?,?,?,?,?,?,0,?)
        ON CONFLICT(user_id, week_start) DO UPDATE SET
            total_actions = excluded.total_actions,
            total_minutes = excluded.total_minutes,
            project_time  = excluded.project_time,
            daily_stats   = excluded.daily_stats
    `, id, rep.UserID, week, rep.TotalActions, rep.TotalMinutes, projectJSON, string(dailyJSON), encodeTime(time.Now().UTC()))
	if err != nil {
		return nil, err
	}
	return r.GetByUserWeek(ctx, rep.UserID, rep.WeekStart)
}

func (r *reports) GetByUserWeek(ctx context.Context, userID string, weekStart time.Time) (*model.WeeklyReport, error) {
	week := model.DayKey(weekStart)
	row := r.db.QueryRowContext(ctx, `
        SELECT report_id, user_id, week_start, total_actions, total_minutes, project_time, daily_stats, published, creation_time
        FROM weekly_report WHERE user_id = ? AND week_start = ?
    `, userID, week)
	return scanWeeklyReport(row, userID, week)
}

func (r *reports) PublishWeek(ctx context.Context, userID string, weekStart time.Time) (int, error) {
	from, to, err := model.WeekWindow(weekStart)
	if err != nil {
		return 0, err
	}
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	week := model.DayKey(from)
	res, err := tx.ExecContext(ctx,
		`UPDATE weekly_report SET published = 1 WHERE user_id = ? AND week_start = ?`,
		userID, week)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, model.NotFoundf("weekly report", userID+"/"+week)
	}

	res, err = tx.ExecContext(ctx, `
        UPDATE activity_log SET status = ?
        WHERE user_id = ? AND event_time >= ? AND event_time < ?
    `, model.StatusPublished, userID, from.UnixNano(), to.UnixNano())
	if err != nil {
		return 0, err
	}
	touched, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(touched), nil
}

// --- Team reports ---

type teamReports struct{ db *sql.DB }

func (t *teamReports) Upsert(ctx context.Context, rep *model.TeamReport) (*model.TeamReport, error) {
	id := rep.TeamReportID
	if id == "" {
		id = uuid.New().String()
	}
	statsJSON, err := json.Marshal(rep.TeamStats)
	if err != nil {
		return nil, err
	}
	membersJSON, err := json.Marshal(rep.MemberReports)
	if err != nil {
		return nil, err
	}
	week := model.DayKey(rep.WeekStart)
	_, err = t.db.ExecContext(ctx, `
        INSERT INTO team_report (team_report_id, team_id, week_start, ai_summary, team_stats, member_reports, creation_time)
        VALUES (?,?,?,?,?,?,?)
        ON CONFLICT(team_id, week_start) DO UPDATE SET
            ai_summary     = excluded.ai_summary,
            team_stats     = excluded.team_stats,
            member_reports = excluded.member_reports
    `, id, rep.TeamID, week, rep.AISummary, string(statsJSON), string(membersJSON), encodeTime(time.Now().UTC()))
	if err != nil {
		return nil, err
	}
	return t.GetByTeamWeek(ctx, rep.TeamID, rep.WeekStart)
}

func (t *teamReports) GetByTeamWeek(ctx context.Context, teamID string, weekStart time.Time) (*model.TeamReport, error) {
	week := model.DayKey(weekStart)
	row := t.db.QueryRowContext(ctx, `
        SELECT team_report_id, team_id, week_start, ai_summary, team_stats, member_reports, creation_time
        FROM team_report WHERE team_id = ? AND week_start = ?
    `, teamID, week)

	var out model.TeamReport
	var weekStr, created string
	var stats, members sql.NullString
	if err := row.Scan(&out.TeamReportID, &out.TeamID, &weekStr, &out.AISummary, &stats, &members, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFoundf("team report", teamID+"/"+week)
		}
		return nil, err
	}
	out.WeekStart, _ = model.ParseDay(weekStr)
	if stats.Valid {
		_ = json.Unmarshal([]byte(stats.String), &out.TeamStats)
	}
	if members.Valid {
		_ = json.Unmarshal([]byte(members.String), &out.MemberReports)
	}
	out.CreationTime = decodeTime(created)
	return &out, nil
}

// --- Directory ---

type directory struct{ db *sql.DB }

func (d *directory) GetUser(ctx context.Context, userID string) (*model.User, error) {
	row := d.db.QueryRowContext(ctx, `
        SELECT user_id, team_id, email, name, time_zone, status
        FROM user_account WHERE user_id = ?
    `, userID)
	var out model.User
	var teamID, tz, status sql.NullString
	if err := row.Scan(&out.UserID, &teamID, &out.Email, &out.Name, &tz, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFoundf("user", userID)
		}
		return nil, err
	}
	if teamID.Valid {
		out.TeamID = &teamID.String
	}
	out.TimeZone = tz.String
	out.Status = status.String
	return &out, nil
}

func (d *directory) ListTeamMembers(ctx context.Context, teamID string) ([]*model.User, error) {
	var exists int
	if err := d.db.QueryRowContext(ctx, `SELECT 1 FROM team WHERE team_id = ?`, teamID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFoundf("team", teamID)
		}
		return nil, err
	}
	rows, err := d.db.QueryContext(ctx, `
        SELECT user_id, team_id, email, name, time_zone, status
        FROM user_account WHERE team_id = ? ORDER BY user_id
    `, teamID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []*model.User{}
	for rows.Next() {
		var u model.User
		var tid, tz, status sql.NullString
		if err := rows.Scan(&u.UserID, &tid, &u.Email, &u.Name, &tz, &status); err != nil {
			return nil, err
		}
		if tid.Valid {
			u.TeamID = &tid.String
		}
		u.TimeZone = tz.String
		u.Status = status.String
		out = append(out, &u)
	}
	return out, rows.Err()
}

// --- Catalog ---

type catalog struct{ db *sql.DB }

func (c *catalog) ToolName(ctx context.Context, toolID string) (string, error) {
	var name string
	err := c.db.QueryRowContext(ctx, `SELECT name FROM tool WHERE tool_id = ?`, toolID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", model.NotFoundf("tool", toolID)
	}
	return name, err
}

func (c *catalog) TemplateName(ctx context.Context, templateID string) (string, error) {
	var name string
	err := c.db.QueryRowContext(ctx, `SELECT display_name FROM action_template WHERE template_id = ?`, templateID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", model.NotFoundf("action template", templateID)
	}
	return name, err
}

// --- helpers ---

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanEvent(row rowScanner) (*model.ActivityEvent, error) {
	var ev model.ActivityEvent
	var toolID, templateID, title, meta sql.NullString
	var minutes sql.NullInt64
	var eventNanos int64
	var created string
	if err := row.Scan(&ev.EventID, &ev.UserID, &toolID, &templateID, &eventNanos, &minutes, &title, &meta, &ev.Status, &created); err != nil {
		return nil, err
	}
	if toolID.Valid {
		ev.ToolID = &toolID.String
	}
	if templateID.Valid {
		ev.TemplateID = &templateID.String
	}
	if title.Valid {
		ev.Title = &title.String
	}
	if minutes.Valid {
		m := int(minutes.Int64)
		ev.Minutes = &m
	}
	if meta.Valid && meta.String != "" {
		_ = json.Unmarshal([]byte(meta.String), &ev.Metadata)
	}
	ev.EventTime = time.Unix(0, eventNanos).UTC()
	ev.CreationTime = decodeTime(created)
	return &ev, nil
}

func scanWeeklyReport(row rowScanner, userID, week string) (*model.WeeklyReport, error) {
	var out model.WeeklyReport
	var weekStr, created string
	var project, daily sql.NullString
	var published int
	if err := row.Scan(&out.ReportID, &out.UserID, &weekStr, &out.TotalActions, &out.TotalMinutes, &project, &daily, &published, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFoundf("weekly report", userID+"/"+week)
		}
		return nil, err
	}
	out.WeekStart, _ = model.ParseDay(weekStr)
	out.Published = published != 0
	out.ProjectTime = unmarshalIntMap(project)
	if daily.Valid && daily.String != "" {
		_ = json.Unmarshal([]byte(daily.String), &out.DailyStats)
	}
	out.CreationTime = decodeTime(created)
	return &out, nil
}

func marshalMap(m map[string]interface{}) (interface{}, error) {
	if len(m) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func marshalIntMap(m map[string]int) (interface{}, error) {
	if m == nil {
		m = map[string]int{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func unmarshalIntMap(s sql.NullString) map[string]int {
	out := map[string]int{}
	if s.Valid && s.String != "" {
		_ = json.Unmarshal([]byte(s.String), &out)
	}
	return out
}

func nullInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func encodeTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func decodeTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
