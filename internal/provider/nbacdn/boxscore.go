package nbacdn

import (
	"github.com/albapepper/scoracle-boxscores/internal/provider"
)

// NormalizeBoxscore converts a box score document into team and player
// records. The two extractions are independent: a document with usable team
// totals but no player list still yields its team rows, and vice versa.
// Records missing a required key are dropped.
func NormalizeBoxscore(doc Document) provider.Boxscore {
	switch doc.Source {
	case provider.SourceLive:
		return provider.Boxscore{
			Teams:   liveTeams(doc.Body),
			Players: livePlayers(doc.Body),
		}
	case provider.SourceLegacy:
		return provider.Boxscore{
			Teams:   legacyTeams(doc.Body),
			Players: legacyPlayers(doc.Body),
		}
	}
	return provider.Boxscore{}
}

// --------------------------------------------------------------------------
// Derived fields
// --------------------------------------------------------------------------

// matchup holds the game-level home/away ids and scores used to derive each
// team's home flag, opponent and result.
type matchup struct {
	homeID, awayID       provider.Value
	homeScore, awayScore provider.Value
}

// side derives (home, opponentTeamId, win) for teamID. A team matching
// neither side gets nulls for all three.
func (m matchup) side(teamID provider.Value) (home, opponent, win provider.Value) {
	switch {
	case teamID.Same(m.homeID):
		return provider.Int(1), m.awayID, outcome(m.homeScore, m.awayScore)
	case teamID.Same(m.awayID):
		return provider.Int(0), m.homeID, outcome(m.awayScore, m.homeScore)
	}
	return provider.Null, provider.Null, provider.Null
}

// fill supplies a side's score from its team entry when the game-level
// score is missing.
func (m *matchup) fill(teamID, score provider.Value) {
	switch {
	case teamID.Same(m.homeID):
		m.homeScore = m.homeScore.Or(score)
	case teamID.Same(m.awayID):
		m.awayScore = m.awayScore.Or(score)
	}
}

// outcome is 1 for a win and 0 for a loss. Missing or non-numeric scores and
// ties are unknown (null).
func outcome(own, opp provider.Value) provider.Value {
	a, ok := own.Int()
	if !ok {
		return provider.Null
	}
	b, ok := opp.Int()
	if !ok || a == b {
		return provider.Null
	}
	if a > b {
		return provider.Int(1)
	}
	return provider.Int(0)
}

// --------------------------------------------------------------------------
// Live family
// --------------------------------------------------------------------------

func liveCounters(stats map[string]interface{}) provider.Counters {
	return provider.Counters{
		Points:                 value(stats, "points"),
		ReboundsTotal:          value(stats, "reboundsTotal"),
		Assists:                value(stats, "assists"),
		Steals:                 value(stats, "steals"),
		Blocks:                 value(stats, "blocks"),
		Turnovers:              value(stats, "turnovers"),
		FieldGoalsMade:         value(stats, "fieldGoalsMade"),
		FieldGoalsAttempted:    value(stats, "fieldGoalsAttempted"),
		ThreePointersMade:      value(stats, "threePointersMade"),
		ThreePointersAttempted: value(stats, "threePointersAttempted"),
		FreeThrowsMade:         value(stats, "freeThrowsMade"),
		FreeThrowsAttempted:    value(stats, "freeThrowsAttempted"),
	}
}

// liveTeamEntries returns the team objects of a live box score. The older
// layout lists them under game.boxScore.teams; the current CDN layout puts
// them directly at game.homeTeam / game.awayTeam.
func liveTeamEntries(game map[string]interface{}) []map[string]interface{} {
	if box, ok := game["boxScore"].(map[string]interface{}); ok {
		return extractObjects(box, "teams")
	}
	var out []map[string]interface{}
	for _, key := range []string{"homeTeam", "awayTeam"} {
		if t := extractMap(game, key); len(t) > 0 {
			out = append(out, t)
		}
	}
	return out
}

func liveTeams(body map[string]interface{}) []provider.TeamGameRecord {
	game := extractMap(body, "game")
	gameID := value(game, "gameId").String()
	home := extractMap(game, "homeTeam")
	away := extractMap(game, "awayTeam")
	m := matchup{
		homeID:    value(home, "teamId"),
		awayID:    value(away, "teamId"),
		homeScore: value(home, "score"),
		awayScore: value(away, "score"),
	}

	entries := liveTeamEntries(game)
	for _, t := range entries {
		m.fill(value(t, "teamId"), value(t, "score").Or(value(extractMap(t, "statistics"), "points")))
	}

	var rows []provider.TeamGameRecord
	for _, t := range entries {
		teamID := value(t, "teamId")
		if gameID == "" || teamID.IsNull() {
			continue
		}
		stats := extractMap(t, "statistics")
		counters := liveCounters(stats)
		counters.Points = value(t, "score").Or(counters.Points)

		isHome, opp, win := m.side(teamID)
		rows = append(rows, provider.TeamGameRecord{
			GameID:         gameID,
			TeamID:         teamID.String(),
			TeamTricode:    value(t, "teamTricode"),
			TeamCity:       value(t, "teamCity"),
			TeamName:       value(t, "teamName"),
			OpponentTeamID: opp,
			Home:           isHome,
			Win:            win,
			Stats:          counters,
		})
	}
	return rows
}

func livePlayers(body map[string]interface{}) []provider.PlayerGameRecord {
	game := extractMap(body, "game")
	gameID := value(game, "gameId").String()

	type rosterEntry struct {
		player  map[string]interface{}
		teamID  provider.Value
		tricode provider.Value
	}
	var roster []rosterEntry

	if box, ok := game["boxScore"].(map[string]interface{}); ok {
		// Players name their team only by tricode here.
		idByTricode := make(map[string]provider.Value)
		for _, t := range extractObjects(box, "teams") {
			if tri := value(t, "teamTricode"); !tri.IsNull() {
				idByTricode[tri.String()] = value(t, "teamId")
			}
		}
		for _, p := range extractObjects(box, "players") {
			tri := value(p, "teamTricode")
			teamID := value(p, "teamId")
			if teamID.IsNull() && !tri.IsNull() {
				teamID = idByTricode[tri.String()]
			}
			roster = append(roster, rosterEntry{player: p, teamID: teamID, tricode: tri})
		}
	} else {
		for _, t := range liveTeamEntries(game) {
			for _, p := range extractObjects(t, "players") {
				roster = append(roster, rosterEntry{
					player:  p,
					teamID:  value(t, "teamId"),
					tricode: value(t, "teamTricode"),
				})
			}
		}
	}

	var rows []provider.PlayerGameRecord
	for _, e := range roster {
		playerID := value(e.player, "personId")
		if gameID == "" || playerID.IsNull() {
			continue
		}
		stats := extractMap(e.player, "statistics")
		rows = append(rows, provider.PlayerGameRecord{
			GameID:           gameID,
			PlayerID:         playerID.String(),
			TeamID:           e.teamID,
			TeamTricode:      e.tricode,
			FirstName:        value(e.player, "firstName"),
			FamilyName:       value(e.player, "familyName"),
			JerseyNum:        value(e.player, "jerseyNum"),
			Position:         value(e.player, "position"),
			Minutes:          value(stats, "minutes"),
			Stats:            liveCounters(stats),
			PlusMinus:        value(stats, "plusMinusPoints"),
			DidNotPlay:       value(e.player, "didNotPlay"),
			NotPlayingReason: value(e.player, "notPlayingReason"),
		})
	}
	return rows
}

// --------------------------------------------------------------------------
// Legacy family
// --------------------------------------------------------------------------

func legacyCounters(stats map[string]interface{}) provider.Counters {
	return provider.Counters{
		Points:                 value(stats, "points"),
		ReboundsTotal:          value(stats, "totReb"),
		Assists:                value(stats, "assists"),
		Steals:                 value(stats, "steals"),
		Blocks:                 value(stats, "blocks"),
		Turnovers:              value(stats, "turnovers"),
		FieldGoalsMade:         value(stats, "fgm"),
		FieldGoalsAttempted:    value(stats, "fga"),
		ThreePointersMade:      value(stats, "tpm", "fg3m"),
		ThreePointersAttempted: value(stats, "tpa", "fg3a"),
		FreeThrowsMade:         value(stats, "ftm"),
		FreeThrowsAttempted:    value(stats, "fta"),
	}
}

// legacySide is one team of a legacy box score: metadata from
// basicGameData and totals from stats.
type legacySide struct {
	meta   map[string]interface{}
	totals map[string]interface{}
	teamID provider.Value
	score  provider.Value
}

func readLegacySide(basic, stats map[string]interface{}, key string) legacySide {
	meta := extractMap(basic, key)
	st := extractMap(stats, key)
	totals := extractMap(st, "totals")
	if len(totals) == 0 {
		totals = st
	}
	return legacySide{
		meta:   meta,
		totals: totals,
		teamID: value(meta, "teamId").Or(value(st, "teamId")),
		score:  value(meta, "score").Or(value(totals, "points")),
	}
}

func legacyTeams(body map[string]interface{}) []provider.TeamGameRecord {
	basic := extractMap(body, "basicGameData")
	stats := extractMap(body, "stats")
	gameID := value(basic, "gameId").Or(value(body, "gameId")).String()

	home := readLegacySide(basic, stats, "hTeam")
	away := readLegacySide(basic, stats, "vTeam")
	m := matchup{homeID: home.teamID, awayID: away.teamID, homeScore: home.score, awayScore: away.score}

	var rows []provider.TeamGameRecord
	for _, s := range []legacySide{home, away} {
		if gameID == "" || s.teamID.IsNull() {
			continue
		}
		counters := legacyCounters(s.totals)
		counters.Points = s.score.Or(counters.Points)

		isHome, opp, win := m.side(s.teamID)
		rows = append(rows, provider.TeamGameRecord{
			GameID:         gameID,
			TeamID:         s.teamID.String(),
			TeamTricode:    value(s.meta, "triCode", "tricode"),
			TeamCity:       provider.Null,
			TeamName:       provider.Null,
			OpponentTeamID: opp,
			Home:           isHome,
			Win:            win,
			Stats:          counters,
		})
	}
	return rows
}

// legacyPlayers reads stats.activePlayers. The family carries no player
// names or team tricodes, so those stay null.
func legacyPlayers(body map[string]interface{}) []provider.PlayerGameRecord {
	basic := extractMap(body, "basicGameData")
	gameID := value(basic, "gameId").Or(value(body, "gameId")).String()
	stats := extractMap(body, "stats")

	var rows []provider.PlayerGameRecord
	for _, p := range extractObjects(stats, "activePlayers") {
		playerID := value(p, "personId")
		if gameID == "" || playerID.IsNull() {
			continue
		}
		dnp := value(p, "dnp")
		didNotPlay := provider.Null
		if !dnp.IsNull() {
			didNotPlay = provider.ValueOf(true)
		}
		rows = append(rows, provider.PlayerGameRecord{
			GameID:           gameID,
			PlayerID:         playerID.String(),
			TeamID:           value(p, "teamId"),
			TeamTricode:      provider.Null,
			FirstName:        provider.Null,
			FamilyName:       provider.Null,
			JerseyNum:        value(p, "jersey"),
			Position:         value(p, "pos"),
			Minutes:          value(p, "min"),
			Stats:            legacyCounters(p),
			PlusMinus:        value(p, "plusMinus"),
			DidNotPlay:       didNotPlay,
			NotPlayingReason: dnp,
		})
	}
	return rows
}
