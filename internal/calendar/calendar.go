// Package calendar resolves venue-local (US Eastern) dates. Every date key the
// ingest pipeline uses is an Eastern calendar date, independent of the
// caller's own time zone.
package calendar

import (
	"fmt"
	"time"

	_ "time/tzdata" // containers often ship without zoneinfo
)

const dayLayout = "2006-01-02"

// Eastern is the venue time zone. Falls back to a fixed EST offset if the
// zone database is unavailable.
var Eastern = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// Date truncates t to midnight of its Eastern calendar day.
func Date(t time.Time) time.Time {
	e := t.In(Eastern)
	return time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, Eastern)
}

// Today returns the Eastern calendar date containing now.
func Today(now time.Time) time.Time {
	return Date(now)
}

// SameDay reports whether a and b fall on the same Eastern calendar date.
func SameDay(a, b time.Time) bool {
	return Date(a).Equal(Date(b))
}

// YMD formats the Eastern calendar date of d as an 8-digit YYYYMMDD key.
func YMD(d time.Time) string {
	return d.In(Eastern).Format("20060102")
}

// ParseDay parses a YYYY-MM-DD string as an Eastern calendar date.
func ParseDay(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dayLayout, s, Eastern)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// Window selects which dates a run covers. Start/End take precedence over
// DaysBack; with neither set the window is yesterday and today.
type Window struct {
	Start    string // YYYY-MM-DD, inclusive
	End      string // YYYY-MM-DD, inclusive
	DaysBack int
}

// Targets expands w into an ordered list of Eastern dates (oldest first) and
// a short description for logging.
func Targets(w Window, now time.Time) ([]time.Time, string, error) {
	today := Today(now)

	switch {
	case w.Start != "" && w.End != "":
		start, err := ParseDay(w.Start)
		if err != nil {
			return nil, "", err
		}
		end, err := ParseDay(w.End)
		if err != nil {
			return nil, "", err
		}
		if end.Before(start) {
			start, end = end, start
		}
		dates := Range(start, end)
		return dates, fmt.Sprintf("backfill range %s..%s (%d days)",
			start.Format(dayLayout), end.Format(dayLayout), len(dates)), nil

	case w.DaysBack > 0:
		start := today.AddDate(0, 0, -w.DaysBack)
		return Range(start, today), fmt.Sprintf("last %d days through %s",
			w.DaysBack, today.Format(dayLayout)), nil

	default:
		yesterday := today.AddDate(0, 0, -1)
		return []time.Time{yesterday, today}, fmt.Sprintf("window: %s & %s (ET)",
			yesterday.Format(dayLayout), today.Format(dayLayout)), nil
	}
}

// Range returns every Eastern date from start through end inclusive.
func Range(start, end time.Time) []time.Time {
	var out []time.Time
	for d := Date(start); !d.After(Date(end)); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}
