// Package seed drives one ingest run: scoreboards for each target date, a box
// score for each discovered game, and an upsert into each output table.
package seed

import "fmt"

// SeedResult tracks counts and problems from one run.
type SeedResult struct {
	RunID string

	DatesRequested      int
	DatesUnresolved     int
	GamesDiscovered     int
	BoxscoresUnresolved int

	TeamRowsFetched   int
	PlayerRowsFetched int

	// Row totals of each table after the merge; zero when not written.
	GamesStored       int
	TeamStatsStored   int
	PlayerStatsStored int

	Errors   []string
	Warnings []string
}

// AddError records an error message.
func (r *SeedResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// AddWarnings records non-fatal output problems.
func (r *SeedResult) AddWarnings(msgs ...string) {
	r.Warnings = append(r.Warnings, msgs...)
}

// Summary returns a human-readable summary of the run.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf(
		"dates=%d/%d games=%d boxscores=%d/%d team_rows=%d player_rows=%d stored(games=%d team_stats=%d player_stats=%d) errors=%d warnings=%d",
		r.DatesRequested-r.DatesUnresolved, r.DatesRequested,
		r.GamesDiscovered,
		r.GamesDiscovered-r.BoxscoresUnresolved, r.GamesDiscovered,
		r.TeamRowsFetched, r.PlayerRowsFetched,
		r.GamesStored, r.TeamStatsStored, r.PlayerStatsStored,
		len(r.Errors), len(r.Warnings),
	)
}
