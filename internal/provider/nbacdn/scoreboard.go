package nbacdn

import (
	"github.com/albapepper/scoracle-boxscores/internal/provider"
)

// NormalizeScoreboard converts a scoreboard document into game records. ymd
// is the YYYYMMDD key the document was fetched with; it is carried on every
// record for legacy box score lookups. Entries without a gameId are dropped.
func NormalizeScoreboard(doc Document, ymd string) []provider.GameRecord {
	var games []provider.GameRecord
	switch doc.Source {
	case provider.SourceLive:
		games = liveGames(doc.Body)
	case provider.SourceLegacy:
		games = legacyGames(doc.Body)
	}

	out := games[:0]
	for _, g := range games {
		if g.GameID == "" {
			continue
		}
		g.Source = doc.Source
		g.DateYMD = ymd
		out = append(out, g)
	}
	return out
}

// liveGames reads scoreboard.games[] with homeTeam/awayTeam sub-objects.
func liveGames(body map[string]interface{}) []provider.GameRecord {
	scoreboard := extractMap(body, "scoreboard")
	entries := extractObjects(scoreboard, "games")

	games := make([]provider.GameRecord, 0, len(entries))
	for _, g := range entries {
		home := extractMap(g, "homeTeam")
		away := extractMap(g, "awayTeam")
		games = append(games, provider.GameRecord{
			GameID:          value(g, "gameId").String(),
			GameCode:        value(g, "gameCode"),
			GameDateEt:      value(g, "gameEt"),
			GameStatusText:  value(g, "gameStatusText"),
			Period:          value(g, "period"),
			GameClock:       value(g, "gameClock"),
			ArenaName:       value(g, "arenaName").String(),
			HomeTeamID:      value(home, "teamId"),
			HomeTeamTricode: value(home, "teamTricode"),
			HomeScore:       value(home, "score"),
			AwayTeamID:      value(away, "teamId"),
			AwayTeamTricode: value(away, "teamTricode"),
			AwayScore:       value(away, "score"),
		})
	}
	return games
}

// legacyGames reads the root games[] with hTeam/vTeam sub-objects.
func legacyGames(body map[string]interface{}) []provider.GameRecord {
	entries := extractObjects(body, "games")

	games := make([]provider.GameRecord, 0, len(entries))
	for _, g := range entries {
		home := extractMap(g, "hTeam")
		away := extractMap(g, "vTeam")
		arena := value(extractMap(g, "arena"), "name").Or(value(g, "arenaName"))
		games = append(games, provider.GameRecord{
			GameID:          value(g, "gameId").String(),
			GameCode:        value(g, "gameCode"),
			GameDateEt:      value(g, "startTimeEastern", "startTimeUTC"),
			GameStatusText:  value(g, "statusText", "gameStatusText"),
			Period:          value(extractMap(g, "period"), "current"),
			GameClock:       value(g, "clock"),
			ArenaName:       arena.String(),
			HomeTeamID:      value(home, "teamId"),
			HomeTeamTricode: value(home, "triCode", "tricode"),
			HomeScore:       value(home, "score"),
			AwayTeamID:      value(away, "teamId"),
			AwayTeamTricode: value(away, "triCode", "tricode"),
			AwayScore:       value(away, "score"),
		})
	}
	return games
}
