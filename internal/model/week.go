package model

import (
	"fmt"
	"time"
)

// DayKeyLayout is the wire and map-key format for dates.
const DayKeyLayout = "2006-01-02"

// DayKey formats t's UTC date for use as a DailyStats key or path segment.
func DayKey(t time.Time) string { return t.UTC().Format(DayKeyLayout) }

// Midnight truncates t to midnight UTC.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayWindow returns the half-open window [midnight(date), midnight(date)+1d).
func DayWindow(date time.Time) (time.Time, time.Time) {
	from := Midnight(date)
	return from, from.AddDate(0, 0, 1)
}

// WeekStartOf returns the canonical week start (Monday midnight UTC) of the
// week containing t.
func WeekStartOf(t time.Time) time.Time {
	d := Midnight(t)
	// time.Weekday: Sunday==0, Monday==1.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekWindow validates weekStart and returns the half-open 7-day window
// [weekStart, weekStart+7d). A week start that is not a Monday at midnight
// UTC is rejected with ErrInvalidRange.
func WeekWindow(weekStart time.Time) (time.Time, time.Time, error) {
	ws := weekStart.UTC()
	if ws.Weekday() != time.Monday || !ws.Equal(Midnight(ws)) {
		return time.Time{}, time.Time{}, fmt.Errorf("week start %s is not a Monday midnight UTC: %w",
			ws.Format(time.RFC3339), ErrInvalidRange)
	}
	return ws, ws.AddDate(0, 0, 7), nil
}

// ParseDay parses a 2006-01-02 date into midnight UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayKeyLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, ErrInvalidRange)
	}
	return t.UTC(), nil
}
