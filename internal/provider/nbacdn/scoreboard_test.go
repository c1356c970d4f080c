package nbacdn_test

import (
	"testing"

	"github.com/albapepper/scoracle-boxscores/internal/provider"
	"github.com/albapepper/scoracle-boxscores/internal/provider/nbacdn"
	"github.com/albapepper/scoracle-boxscores/internal/provider/nbacdn/nbacdntest"
)

func decodeDoc(t *testing.T, source provider.Source, fixture interface{}) nbacdn.Document {
	t.Helper()
	body, err := nbacdn.Decode(nbacdntest.JSON(fixture))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return nbacdn.Document{Source: source, URL: "fixture", Body: body}
}

func TestNormalizeScoreboard_Live(t *testing.T) {
	g1 := nbacdntest.GameFixture()
	g2 := nbacdntest.GameFixture(func(g *nbacdntest.Game) {
		g.ID = "0022400002"
		g.Status = "7:30 pm ET"
		g.HomeScore = 0
		g.AwayScore = 0
	})
	doc := decodeDoc(t, provider.SourceLive, nbacdntest.LiveScoreboard(g1, g2))

	games := nbacdn.NormalizeScoreboard(doc, "20241022")
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}

	g := games[0]
	checks := map[string][2]string{
		"gameId":          {g.GameID, "0022400001"},
		"gameCode":        {g.GameCode.String(), "20241022/NYKBOS"},
		"gameStatusText":  {g.GameStatusText.String(), "Final"},
		"period":          {g.Period.String(), "4"},
		"homeTeamId":      {g.HomeTeamID.String(), "1610612738"},
		"homeTeamTricode": {g.HomeTeamTricode.String(), "BOS"},
		"homeScore":       {g.HomeScore.String(), "110"},
		"awayTeamId":      {g.AwayTeamID.String(), "1610612752"},
		"awayTeamTricode": {g.AwayTeamTricode.String(), "NYK"},
		"awayScore":       {g.AwayScore.String(), "100"},
	}
	for name, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", name, c[0], c[1])
		}
	}
	if g.Source != provider.SourceLive || g.DateYMD != "20241022" {
		t.Errorf("tags = (%s, %s), want (live, 20241022)", g.Source, g.DateYMD)
	}
	if !g.GameClock.IsNull() {
		t.Errorf("empty game clock should be null, got %q", g.GameClock.String())
	}
	if games[1].GameStatusText.String() != "7:30 pm ET" {
		t.Errorf("second game status = %q", games[1].GameStatusText.String())
	}
}

func TestNormalizeScoreboard_Legacy(t *testing.T) {
	doc := decodeDoc(t, provider.SourceLegacy, nbacdntest.LegacyScoreboard(nbacdntest.GameFixture()))

	games := nbacdn.NormalizeScoreboard(doc, "20191022")
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	g := games[0]

	if g.HomeTeamTricode.String() != "BOS" {
		t.Errorf("home tricode = %q, want BOS via triCode", g.HomeTeamTricode.String())
	}
	if g.AwayTeamTricode.String() != "NYK" {
		t.Errorf("away tricode = %q, want NYK via tricode", g.AwayTeamTricode.String())
	}
	if g.ArenaName != "TD Garden" {
		t.Errorf("arena = %q", g.ArenaName)
	}
	if g.Period.String() != "4" {
		t.Errorf("period = %q, want period.current", g.Period.String())
	}
	if g.GameDateEt.String() != "2019-10-23T00:00:00.000Z" {
		t.Errorf("game date = %q, want startTimeUTC fallback", g.GameDateEt.String())
	}
	if g.HomeScore.String() != "110" {
		t.Errorf("home score = %q", g.HomeScore.String())
	}
	if g.Source != provider.SourceLegacy || g.DateYMD != "20191022" {
		t.Errorf("tags = (%s, %s)", g.Source, g.DateYMD)
	}
}

func TestNormalizeScoreboard_DropsGamesWithoutID(t *testing.T) {
	fixture := nbacdntest.LiveScoreboard(
		nbacdntest.GameFixture(),
		nbacdntest.GameFixture(func(g *nbacdntest.Game) { g.ID = "" }),
	)
	doc := decodeDoc(t, provider.SourceLive, fixture)

	games := nbacdn.NormalizeScoreboard(doc, "20241022")
	if len(games) != 1 || games[0].GameID != "0022400001" {
		t.Errorf("got %+v, want only the game with an id", games)
	}
}

func TestNormalizeScoreboard_EmptyOrUnknownShape(t *testing.T) {
	cases := map[string]nbacdn.Document{
		"live without scoreboard": decodeDoc(t, provider.SourceLive, map[string]interface{}{"meta": 1}),
		"legacy games not a list": decodeDoc(t, provider.SourceLegacy, map[string]interface{}{"games": "none"}),
		"unknown source":          {Source: "other", Body: map[string]interface{}{}},
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if games := nbacdn.NormalizeScoreboard(doc, "20241022"); len(games) != 0 {
				t.Errorf("got %d games, want none", len(games))
			}
		})
	}
}
