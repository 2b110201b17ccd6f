package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/focusflow/focusflow-server/internal/model"
	"github.com/focusflow/focusflow-server/internal/store"
)

// Open opens a Postgres pool via the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
// Schema is managed externally (migrations), matching cloud deployments.
func NewWithDB(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

// PostgresStore implements store.Store on Postgres through database/sql.
type PostgresStore struct{ db *sql.DB }

var _ store.Store = (*PostgresStore)(nil)

func (s *PostgresStore) Events() store.Events           { return &events{db: s.db} }
func (s *PostgresStore) Summaries() store.Summaries     { return &summaries{db: s.db} }
func (s *PostgresStore) Reports() store.Reports         { return &reports{db: s.db} }
func (s *PostgresStore) TeamReports() store.TeamReports { return &teamReports{db: s.db} }
func (s *PostgresStore) Directory() store.Directory     { return &directory{db: s.db} }
func (s *PostgresStore) Catalog() store.Catalog         { return &catalog{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *PostgresStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Events ---

type events struct{ db *sql.DB }

const eventColumns = `event_id, user_id, tool_id, template_id, event_time, minutes, title, metadata, status, creation_time`

func (e *events) Create(ctx context.Context, ev *model.ActivityEvent) (*model.ActivityEvent, error) {
	id := ev.EventID
	if id == "" {
		id = uuid.New().String()
	}
	eventTime := ev.EventTime
	if eventTime.IsZero() {
		eventTime = time.Now().UTC()
	}
	metaJSON, err := marshalMap(ev.Metadata)
	if err != nil {
		return nil, err
	}
	row := e.db.QueryRowContext(ctx, `
        INSERT INTO activity_log (event_id, user_id, tool_id, template_id, event_time, minutes, title, metadata, status, creation_time)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
        RETURNING `+eventColumns,
		id, ev.UserID, ev.ToolID, ev.TemplateID, eventTime, nullInt(ev.Minutes), ev.Title, metaJSON, ev.Status)
	return scanEvent(row)
}

func (e *events) GetByID(ctx context.Context, eventID string) (*model.ActivityEvent, error) {
	row := e.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM activity_log WHERE event_id = $1`, eventID)
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
        WHERE user_id = $1 AND event_time >= $2 AND event_time < $3
        ORDER BY event_time ASC, event_id ASC
        LIMIT $4
    `
	args := []interface{}{req.UserID, req.From, req.To, limit}
	if req.AfterEventID != "" {
		query = `
        SELECT ` + eventColumns + ` FROM activity_log
        WHERE user_id = $1 AND (event_time > $2 OR (event_time = $2 AND event_id > $3)) AND event_time < $4
        ORDER BY event_time ASC, event_id ASC
        LIMIT $5
    `
		args = []interface{}{req.UserID, req.From, req.AfterEventID, req.To, limit}
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

	// Row lock so concurrent partial updates serialize and the metadata
	// merge reads a settled mapping.
	row := tx.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM activity_log WHERE event_id = $1 FOR UPDATE`, eventID)
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
        UPDATE activity_log SET minutes = $1, title = $2, status = $3, metadata = $4
        WHERE event_id = $5
    `, nullInt(cur.Minutes), cur.Title, cur.Status, metaJSON, eventID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return cur, nil
}

func (e *events) Delete(ctx context.Context, eventID string) error {
	res, err := e.db.ExecContext(ctx, `DELETE FROM activity_log WHERE event_id = $1`, eventID)
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
        VALUES ($1, $2, $3, $4, $5, $6, $7, now())
        ON CONFLICT (user_id, summary_date) DO UPDATE SET
            total_actions = EXCLUDED.total_actions,
            total_minutes = EXCLUDED.total_minutes,
            breakdown     = EXCLUDED.breakdown,
            submitted     = EXCLUDED.submitted
    `, id, sum.UserID, day, sum.TotalActions, sum.TotalMinutes, breakdownJSON, sum.Submitted)
	if err != nil {
		return nil, err
	}
	return s.GetByUserDate(ctx, sum.UserID, sum.Date)
}

func (s *summaries) GetByUserDate(ctx context.Context, userID string, date time.Time) (*model.DailySummary, error) {
	day := model.DayKey(date)
	row := s.db.QueryRowContext(ctx, `
        SELECT summary_id, user_id, summary_date, total_actions, total_minutes, breakdown, submitted, creation_time
        FROM daily_summary WHERE user_id = $1 AND summary_date = $2
    `, userID, day)

	var out model.DailySummary
	var dayStr string
	var breakdown []byte
	if err := row.Scan(&out.SummaryID, &out.UserID, &dayStr, &out.TotalActions, &out.TotalMinutes, &breakdown, &out.Submitted, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFoundf("daily summary", userID+"/"+day)
		}
		return nil, err
	}
	out.Date, _ = model.ParseDay(dayStr)
	out.Breakdown = unmarshalIntMap(breakdown)
	out.CreationTime = out.CreationTime.UTC()
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
        VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, now())
        ON CONFLICT (user_id, week_start) DO UPDATE SET
            total_actions = EXCLUDED.total_actions,
            total_minutes = EXCLUDED.total_minutes,
            project_time  = EXCLUDED.project_time,
            daily_stats   = EXCLUDED.daily_stats
    `, id, rep.UserID, week, rep.TotalActions, rep.TotalMinutes, projectJSON, dailyJSON)
	if err != nil {
		return nil, err
	}
	return r.GetByUserWeek(ctx, rep.UserID, rep.WeekStart)
}

func (r *reports) GetByUserWeek(ctx context.Context, userID string, weekStart time.Time) (*model.WeeklyReport, error) {
	week := model.DayKey(weekStart)
	row := r.db.QueryRowContext(ctx, `
        SELECT report_id, user_id, week_start, total_actions, total_minutes, project_time, daily_stats, published, creation_time
        FROM weekly_report WHERE user_id = $1 AND week_start = $2
    `, userID, week)

	var out model.WeeklyReport
	var weekStr string
	var project, daily []byte
	if err := row.Scan(&out.ReportID, &out.UserID, &weekStr, &out.TotalActions, &out.TotalMinutes, &project, &daily, &out.Published, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFoundf("weekly report", userID+"/"+week)
		}
		return nil, err
	}
	out.WeekStart, _ = model.ParseDay(weekStr)
	out.ProjectTime = unmarshalIntMap(project)
	if len(daily) > 0 {
		_ = json.Unmarshal(daily, &out.DailyStats)
	}
	out.CreationTime = out.CreationTime.UTC()
	return &out, nil
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
		`UPDATE weekly_report SET published = TRUE WHERE user_id = $1 AND week_start = $2`,
		userID, week)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, model.NotFoundf("weekly report", userID+"/"+week)
	}

	res, err = tx.ExecContext(ctx, `
        UPDATE activity_log SET status = $1
        WHERE user_id = $2 AND event_time >= $3 AND event_time < $4
    `, model.StatusPublished, userID, from, to)
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
        VALUES ($1, $2, $3, $4, $5, $6, now())
        ON CONFLICT (team_id, week_start) DO UPDATE SET
            ai_summary     = EXCLUDED.ai_summary,
            team_stats     = EXCLUDED.team_stats,
            member_reports = EXCLUDED.member_reports
    `, id, rep.TeamID, week, rep.AISummary, statsJSON, membersJSON)
	if err != nil {
		return nil, err
	}
	return t.GetByTeamWeek(ctx, rep.TeamID, rep.WeekStart)
}

func (t *teamReports) GetByTeamWeek(ctx context.Context, teamID string, weekStart time.Time) (*model.TeamReport, error) {
	week := model.DayKey(weekStart)
	row := t.db.QueryRowContext(ctx, `
        SELECT team_report_id, team_id, week_start, ai_summary, team_stats, member_reports, creation_time
        FROM team_report WHERE team_id = $1 AND week_start = $2
    `, teamID, week)

	var out model.TeamReport
	var weekStr string
	var stats, members []byte
	if err := row.Scan(&out.TeamReportID, &out.TeamID, &weekStr, &out.AISummary, &stats, &members, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFoundf("team report", teamID+"/"+week)
		}
		return nil, err
	}
	out.WeekStart, _ = model.ParseDay(weekStr)
	if len(stats) > 0 {
		_ = json.Unmarshal(stats, &out.TeamStats)
	}
	if len(members) > 0 {
		_ = json.Unmarshal(members, &out.MemberReports)
	}
	out.CreationTime = out.CreationTime.UTC()
	return &out, nil
}

// --- Directory ---

type directory struct{ db *sql.DB }

func (d *directory) GetUser(ctx context.Context, userID string) (*model.User, error) {
	row := d.db.QueryRowContext(ctx, `
        SELECT user_id, team_id, email, name, time_zone, status
        FROM user_account WHERE user_id = $1
    `, userID)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NotFoundf("user", userID)
	}
	return u, err
}

func (d *directory) ListTeamMembers(ctx context.Context, teamID string) ([]*model.User, error) {
	var exists int
	if err := d.db.QueryRowContext(ctx, `SELECT 1 FROM team WHERE team_id = $1`, teamID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFoundf("team", teamID)
		}
		return nil, err
	}
	rows, err := d.db.QueryContext(ctx, `
        SELECT user_id, team_id, email, name, time_zone, status
        FROM user_account WHERE team_id = $1 ORDER BY user_id
    `, teamID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []*model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// --- Catalog ---

type catalog struct{ db *sql.DB }

func (c *catalog) ToolName(ctx context.Context, toolID string) (string, error) {
	var name string
	err := c.db.QueryRowContext(ctx, `SELECT name FROM tool WHERE tool_id = $1`, toolID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", model.NotFoundf("tool", toolID)
	}
	return name, err
}

func (c *catalog) TemplateName(ctx context.Context, templateID string) (string, error) {
	var name string
	err := c.db.QueryRowContext(ctx, `SELECT display_name FROM action_template WHERE template_id = $1`, templateID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", model.NotFoundf("action template", templateID)
	}
	return name, err
}

// --- helpers ---

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanEvent(row rowScanner) (*model.ActivityEvent, error) {
	var ev model.ActivityEvent
	var toolID, templateID, title sql.NullString
	var minutes sql.NullInt64
	var meta []byte
	if err := row.Scan(&ev.EventID, &ev.UserID, &toolID, &templateID, &ev.EventTime, &minutes, &title, &meta, &ev.Status, &ev.CreationTime); err != nil {
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
	if len(meta) > 0 {
		_ = json.Unmarshal(meta, &ev.Metadata)
	}
	ev.EventTime = ev.EventTime.UTC()
	ev.CreationTime = ev.CreationTime.UTC()
	return &ev, nil
}

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	var teamID, tz, status sql.NullString
	if err := row.Scan(&u.UserID, &teamID, &u.Email, &u.Name, &tz, &status); err != nil {
		return nil, err
	}
	if teamID.Valid {
		u.TeamID = &teamID.String
	}
	u.TimeZone = tz.String
	u.Status = status.String
	return &u, nil
}

func marshalMap(m map[string]interface{}) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func marshalIntMap(m map[string]int) ([]byte, error) {
	if m == nil {
		m = map[string]int{}
	}
	return json.Marshal(m)
}

func unmarshalIntMap(b []byte) map[string]int {
	out := map[string]int{}
	if len(b) > 0 {
		_ = json.Unmarshal(b, &out)
	}
	return out
}

func nullInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
