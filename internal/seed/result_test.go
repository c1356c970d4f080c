package seed

import "testing"

func TestSeedResult_Summary(t *testing.T) {
	r := SeedResult{
		DatesRequested:      2,
		DatesUnresolved:     1,
		GamesDiscovered:     3,
		BoxscoresUnresolved: 1,
		TeamRowsFetched:     4,
		PlayerRowsFetched:   20,
		GamesStored:         3,
		TeamStatsStored:     4,
		PlayerStatsStored:   20,
	}
	r.AddErrorf("scoreboard %s: no source responded", "20241022")
	r.AddError("boxscore G3: no source responded")
	r.AddWarnings("games parquet mirror: disk full")

	want := "dates=1/2 games=3 boxscores=2/3 team_rows=4 player_rows=20 stored(games=3 team_stats=4 player_stats=20) errors=2 warnings=1"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() =\n  %s\nwant\n  %s", got, want)
	}
	if r.Errors[0] != "scoreboard 20241022: no source responded" {
		t.Errorf("Errors[0] = %q", r.Errors[0])
	}
}
