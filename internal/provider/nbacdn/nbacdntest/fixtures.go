// Package nbacdntest provides source-document fixtures and a fake endpoint
// server for tests of the ingest pipeline.
package nbacdntest

import (
	"encoding/json"
	"fmt"
)

// Game describes one fixture game. Scores are interface{} so tests can use
// numbers, numeric strings, junk text or nil.
type Game struct {
	ID        string
	Code      string
	Status    string
	HomeID    int
	HomeTri   string
	HomeScore interface{}
	AwayID    int
	AwayTri   string
	AwayScore interface{}
}

// GameFixture creates a finished game with sensible defaults: BOS 110, NYK 100.
func GameFixture(overrides ...func(*Game)) Game {
	g := Game{
		ID:        "0022400001",
		Code:      "20241022/NYKBOS",
		Status:    "Final",
		HomeID:    1610612738,
		HomeTri:   "BOS",
		HomeScore: 110,
		AwayID:    1610612752,
		AwayTri:   "NYK",
		AwayScore: 100,
	}
	for _, override := range overrides {
		override(&g)
	}
	return g
}

// JSON marshals a fixture document.
func JSON(doc interface{}) []byte {
	b, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return b
}

type obj = map[string]interface{}

// --------------------------------------------------------------------------
// Live family
// --------------------------------------------------------------------------

// LiveScoreboard builds a live scoreboard document.
func LiveScoreboard(games ...Game) map[string]interface{} {
	list := make([]interface{}, 0, len(games))
	for _, g := range games {
		list = append(list, obj{
			"gameId":         g.ID,
			"gameCode":       g.Code,
			"gameStatusText": g.Status,
			"period":         4,
			"gameClock":      "",
			"gameEt":         "2024-10-22T19:30:00Z",
			"homeTeam":       obj{"teamId": g.HomeID, "teamTricode": g.HomeTri, "score": g.HomeScore},
			"awayTeam":       obj{"teamId": g.AwayID, "teamTricode": g.AwayTri, "score": g.AwayScore},
		})
	}
	return obj{"scoreboard": obj{"gameDate": "2024-10-22", "games": list}}
}

func livePlayer(id int, tri string, withTeamTri bool) obj {
	p := obj{
		"personId":   id,
		"firstName":  fmt.Sprintf("First%d", id),
		"familyName": fmt.Sprintf("Family%d", id),
		"jerseyNum":  fmt.Sprintf("%d", id%100),
		"position":   "G",
		"statistics": obj{
			"minutes":                "PT24M00.00S",
			"points":                 10,
			"reboundsTotal":          4,
			"assists":                3,
			"steals":                 1,
			"blocks":                 0,
			"turnovers":              2,
			"fieldGoalsMade":         4,
			"fieldGoalsAttempted":    9,
			"threePointersMade":      1,
			"threePointersAttempted": 3,
			"freeThrowsMade":         1,
			"freeThrowsAttempted":    2,
			"plusMinusPoints":        5,
		},
	}
	if withTeamTri {
		p["teamTricode"] = tri
	}
	return p
}

func liveTeamStats(points interface{}) obj {
	return obj{
		"points":                 points,
		"reboundsTotal":          44,
		"assists":                25,
		"steals":                 8,
		"blocks":                 5,
		"turnovers":              12,
		"fieldGoalsMade":         40,
		"fieldGoalsAttempted":    85,
		"threePointersMade":      14,
		"threePointersAttempted": 38,
		"freeThrowsMade":         16,
		"freeThrowsAttempted":    20,
	}
}

// LiveBoxscore builds a live box score in the game.boxScore layout with
// playersPerTeam players on each side. Home player ids are 1001.., away
// 2001...
func LiveBoxscore(g Game, playersPerTeam int) map[string]interface{} {
	var players []interface{}
	for i := 1; i <= playersPerTeam; i++ {
		players = append(players, livePlayer(1000+i, g.HomeTri, true))
	}
	for i := 1; i <= playersPerTeam; i++ {
		players = append(players, livePlayer(2000+i, g.AwayTri, true))
	}
	return obj{"game": obj{
		"gameId":   g.ID,
		"homeTeam": obj{"teamId": g.HomeID, "teamTricode": g.HomeTri, "score": g.HomeScore},
		"awayTeam": obj{"teamId": g.AwayID, "teamTricode": g.AwayTri, "score": g.AwayScore},
		"boxScore": obj{
			"teams": []interface{}{
				obj{"teamId": g.HomeID, "teamTricode": g.HomeTri, "teamCity": "Boston", "teamName": "Celtics",
					"score": g.HomeScore, "statistics": liveTeamStats(g.HomeScore)},
				obj{"teamId": g.AwayID, "teamTricode": g.AwayTri, "teamCity": "New York", "teamName": "Knicks",
					"score": g.AwayScore, "statistics": liveTeamStats(g.AwayScore)},
			},
			"players": players,
		},
	}}
}

// LiveBoxscoreNested builds a live box score in the current CDN layout:
// players nested under game.homeTeam / game.awayTeam.
func LiveBoxscoreNested(g Game, playersPerTeam int) map[string]interface{} {
	side := func(id int, tri, city, name string, score interface{}, base int) obj {
		var players []interface{}
		for i := 1; i <= playersPerTeam; i++ {
			players = append(players, livePlayer(base+i, tri, false))
		}
		return obj{
			"teamId": id, "teamTricode": tri, "teamCity": city, "teamName": name,
			"score": score, "statistics": liveTeamStats(score), "players": players,
		}
	}
	return obj{"game": obj{
		"gameId":   g.ID,
		"homeTeam": side(g.HomeID, g.HomeTri, "Boston", "Celtics", g.HomeScore, 1000),
		"awayTeam": side(g.AwayID, g.AwayTri, "New York", "Knicks", g.AwayScore, 2000),
	}}
}

// --------------------------------------------------------------------------
// Legacy family
// --------------------------------------------------------------------------

// LegacyScoreboard builds a legacy scoreboard document. Ids and scores are
// strings as the legacy host sends them; the home side uses "triCode" and
// the away side "tricode".
func LegacyScoreboard(games ...Game) map[string]interface{} {
	list := make([]interface{}, 0, len(games))
	for _, g := range games {
		list = append(list, obj{
			"gameId":         g.ID,
			"gameCode":       g.Code,
			"statusNum":      3,
			"gameStatusText": g.Status,
			"startTimeUTC":   "2019-10-23T00:00:00.000Z",
			"clock":          "",
			"period":         obj{"current": 4, "type": 0},
			"arena":          obj{"name": "TD Garden"},
			"hTeam":          obj{"teamId": fmt.Sprint(g.HomeID), "triCode": g.HomeTri, "score": fmt.Sprint(g.HomeScore)},
			"vTeam":          obj{"teamId": fmt.Sprint(g.AwayID), "tricode": g.AwayTri, "score": fmt.Sprint(g.AwayScore)},
		})
	}
	return obj{"numGames": len(games), "games": list}
}

func legacyPlayer(id, teamID int) obj {
	return obj{
		"personId":   fmt.Sprint(id),
		"teamId":     fmt.Sprint(teamID),
		"jersey":     fmt.Sprint(id % 100),
		"pos":        "F",
		"min":        "24:00",
		"points":     "10",
		"totReb":     "4",
		"assists":    "3",
		"steals":     "1",
		"blocks":     "0",
		"turnovers":  "2",
		"fgm":        "4",
		"fga":        "9",
		"fg3m":       "1",
		"fg3a":       "3",
		"ftm":        "1",
		"fta":        "2",
		"plusMinus":  "+5",
		"dnp":        "",
	}
}

// LegacyBoxscore builds a legacy box score. Team totals are nested under
// "totals"; scores live in basicGameData.
func LegacyBoxscore(g Game, playersPerTeam int) map[string]interface{} {
	var players []interface{}
	for i := 1; i <= playersPerTeam; i++ {
		players = append(players, legacyPlayer(1000+i, g.HomeID))
	}
	for i := 1; i <= playersPerTeam; i++ {
		players = append(players, legacyPlayer(2000+i, g.AwayID))
	}
	totals := func(points interface{}) obj {
		return obj{"totals": obj{
			"points": fmt.Sprint(points), "totReb": "44", "assists": "25", "steals": "8",
			"blocks": "5", "turnovers": "12", "fgm": "40", "fga": "85", "tpm": "14",
			"tpa": "38", "ftm": "16", "fta": "20",
		}}
	}
	return obj{
		"basicGameData": obj{
			"gameId": g.ID,
			"hTeam":  obj{"teamId": fmt.Sprint(g.HomeID), "triCode": g.HomeTri, "score": fmt.Sprint(g.HomeScore)},
			"vTeam":  obj{"teamId": fmt.Sprint(g.AwayID), "triCode": g.AwayTri, "score": fmt.Sprint(g.AwayScore)},
		},
		"stats": obj{
			"hTeam":         totals(g.HomeScore),
			"vTeam":         totals(g.AwayScore),
			"activePlayers": players,
		},
	}
}
