// Package provider defines canonical record types that both source families
// normalize into. These structs are the contract between the endpoint
// normalizers and the export layer: normalizers output these, the seed runner
// turns them into table rows.
package provider

// Source tags which endpoint family produced a document.
type Source string

const (
	SourceLive   Source = "live"
	SourceLegacy Source = "legacy"
)

// Field is one named column value of a record.
type Field struct {
	Name  string
	Value Value
}

// GameRecord is one row of the games table, keyed by GameID.
type GameRecord struct {
	GameID          string
	GameCode        Value
	GameDateEt      Value
	GameStatusText  Value
	Period          Value
	GameClock       Value
	ArenaName       string
	HomeTeamID      Value
	HomeTeamTricode Value
	HomeScore       Value
	AwayTeamID      Value
	AwayTeamTricode Value
	AwayScore       Value

	// Not persisted: which family answered and the YYYYMMDD key used to
	// fetch it. The box score stage needs both.
	Source  Source
	DateYMD string
}

// Fields returns the persisted columns in table order.
func (g GameRecord) Fields() []Field {
	return []Field{
		{"gameId", ValueOf(g.GameID)},
		{"gameCode", g.GameCode},
		{"gameDateEt", g.GameDateEt},
		{"gameStatusText", g.GameStatusText},
		{"period", g.Period},
		{"gameClock", g.GameClock},
		{"arenaName", ValueOf(g.ArenaName)},
		{"homeTeamId", g.HomeTeamID},
		{"homeTeamTricode", g.HomeTeamTricode},
		{"homeScore", g.HomeScore},
		{"awayTeamId", g.AwayTeamID},
		{"awayTeamTricode", g.AwayTeamTricode},
		{"awayScore", g.AwayScore},
	}
}

// Counters are the box-score statistics shared by team totals and players.
type Counters struct {
	Points                 Value
	ReboundsTotal          Value
	Assists                Value
	Steals                 Value
	Blocks                 Value
	Turnovers              Value
	FieldGoalsMade         Value
	FieldGoalsAttempted    Value
	ThreePointersMade      Value
	ThreePointersAttempted Value
	FreeThrowsMade         Value
	FreeThrowsAttempted    Value
}

func (c Counters) fields() []Field {
	return []Field{
		{"points", c.Points},
		{"reboundsTotal", c.ReboundsTotal},
		{"assists", c.Assists},
		{"steals", c.Steals},
		{"blocks", c.Blocks},
		{"turnovers", c.Turnovers},
		{"fieldGoalsMade", c.FieldGoalsMade},
		{"fieldGoalsAttempted", c.FieldGoalsAttempted},
		{"threePointersMade", c.ThreePointersMade},
		{"threePointersAttempted", c.ThreePointersAttempted},
		{"freeThrowsMade", c.FreeThrowsMade},
		{"freeThrowsAttempted", c.FreeThrowsAttempted},
	}
}

// TeamGameRecord is one row of the team_stats table, keyed by (GameID, TeamID).
type TeamGameRecord struct {
	GameID         string
	TeamID         string
	TeamTricode    Value
	TeamCity       Value
	TeamName       Value
	OpponentTeamID Value
	Home           Value // 1 home, 0 away, null unknown
	Win            Value // 1/0, null when undeterminable or tied
	Stats          Counters
}

// Fields returns the persisted columns in table order.
func (t TeamGameRecord) Fields() []Field {
	out := []Field{
		{"gameId", ValueOf(t.GameID)},
		{"teamId", ValueOf(t.TeamID)},
		{"teamTricode", t.TeamTricode},
		{"teamCity", t.TeamCity},
		{"teamName", t.TeamName},
		{"opponentTeamId", t.OpponentTeamID},
		{"home", t.Home},
		{"win", t.Win},
	}
	return append(out, t.Stats.fields()...)
}

// PlayerGameRecord is one row of the player_stats table, keyed by
// (GameID, PlayerID).
type PlayerGameRecord struct {
	GameID           string
	PlayerID         string
	TeamID           Value
	TeamTricode      Value
	FirstName        Value
	FamilyName       Value
	JerseyNum        Value
	Position         Value
	Minutes          Value // clock-style text, not parsed
	Stats            Counters
	PlusMinus        Value
	DidNotPlay       Value
	NotPlayingReason Value
}

// Fields returns the persisted columns in table order.
func (p PlayerGameRecord) Fields() []Field {
	out := []Field{
		{"gameId", ValueOf(p.GameID)},
		{"playerId", ValueOf(p.PlayerID)},
		{"teamId", p.TeamID},
		{"teamTricode", p.TeamTricode},
		{"firstName", p.FirstName},
		{"familyName", p.FamilyName},
		{"jerseyNum", p.JerseyNum},
		{"position", p.Position},
		{"minutes", p.Minutes},
	}
	out = append(out, p.Stats.fields()...)
	return append(out,
		Field{"plusMinus", p.PlusMinus},
		Field{"didNotPlay", p.DidNotPlay},
		Field{"notPlayingReason", p.NotPlayingReason},
	)
}

// Boxscore is everything extracted from one box score document.
type Boxscore struct {
	Teams   []TeamGameRecord
	Players []PlayerGameRecord
}

// Record is any canonical row type.
type Record interface {
	Fields() []Field
}

// Dedupe keys per table.
var (
	GameKeys   = []string{"gameId"}
	TeamKeys   = []string{"gameId", "teamId"}
	PlayerKeys = []string{"gameId", "playerId"}
)

// Columns returns the column names of a record type in table order.
func Columns(r Record) []string {
	fields := r.Fields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
	}
	return cols
}

// Cells renders records into string rows aligned with Columns.
func Cells[T Record](records []T) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		fields := r.Fields()
		row := make([]string, len(fields))
		for j, f := range fields {
			row[j] = f.Value.String()
		}
		rows[i] = row
	}
	return rows
}
