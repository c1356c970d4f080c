package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/albapepper/scoracle-boxscores/internal/calendar"
	"github.com/albapepper/scoracle-boxscores/internal/config"
	"github.com/albapepper/scoracle-boxscores/internal/export"
	"github.com/albapepper/scoracle-boxscores/internal/provider"
	"github.com/albapepper/scoracle-boxscores/internal/provider/nbacdn"
	"github.com/albapepper/scoracle-boxscores/internal/table"
)

// Deps are the collaborators of a run.
type Deps struct {
	Client   *nbacdn.Client
	Resolver *nbacdn.Resolver
	Exporter *export.Exporter

	// Pace is the minimum gap between box score fetches.
	Pace time.Duration
}

// SeedNBA runs the full flow for dates: scoreboards -> games table -> box
// scores -> player and team tables.
//
// Dates and games no source answers for are recorded in the result and
// skipped. The returned error is non-nil only when a canonical table cannot
// be written or ctx ends; the result still holds everything done before.
func SeedNBA(ctx context.Context, deps Deps, dates []time.Time, logger *slog.Logger) (SeedResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	result := SeedResult{RunID: uuid.NewString(), DatesRequested: len(dates)}
	logger = logger.With("run_id", result.RunID)

	// 1. Scoreboards
	var games []provider.GameRecord
	for _, d := range dates {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		ymd := calendar.YMD(d)
		doc, ok := deps.Client.Resolve(ctx, deps.Resolver.ScoreboardCandidates(d))
		if !ok {
			result.DatesUnresolved++
			result.AddErrorf("scoreboard %s: no source available", ymd)
			logger.Warn("scoreboard unresolved", "date", ymd)
			continue
		}
		found := nbacdn.NormalizeScoreboard(doc, ymd)
		for _, g := range found {
			logger.Info("game",
				"game_id", g.GameID,
				"matchup", g.AwayTeamTricode.String()+"@"+g.HomeTeamTricode.String(),
				"status", g.GameStatusText.String(),
				"source", g.Source)
		}
		games = append(games, found...)
	}
	result.GamesDiscovered = len(games)
	logger.Info("total games discovered", "count", len(games))

	if len(games) > 0 {
		stored, err := upsert(ctx, deps.Exporter, config.GamesTable, provider.GameKeys, games, &result)
		if err != nil {
			return result, err
		}
		result.GamesStored = stored
	} else {
		logger.Warn("no games found for target dates")
	}

	// 2. Box scores, one at a time
	pacer := rate.NewLimiter(rate.Every(deps.Pace), 1)
	var players []provider.PlayerGameRecord
	var teams []provider.TeamGameRecord
	for _, g := range games {
		if err := pacer.Wait(ctx); err != nil {
			return result, fmt.Errorf("pace box score fetches: %w", err)
		}
		doc, ok := deps.Client.Resolve(ctx, deps.Resolver.BoxscoreCandidates(g.GameID, g.DateYMD))
		if !ok {
			result.BoxscoresUnresolved++
			result.AddErrorf("boxscore %s: no source available", g.GameID)
			logger.Warn("boxscore unresolved", "game_id", g.GameID, "date", g.DateYMD)
			continue
		}
		box := nbacdn.NormalizeBoxscore(doc)
		logger.Info("boxscore",
			"game_id", g.GameID,
			"player_rows", len(box.Players),
			"team_rows", len(box.Teams),
			"source", doc.Source)
		players = append(players, box.Players...)
		teams = append(teams, box.Teams...)
	}
	result.PlayerRowsFetched = len(players)
	result.TeamRowsFetched = len(teams)

	// 3. Player and team tables
	if len(players) > 0 {
		stored, err := upsert(ctx, deps.Exporter, config.PlayerStatsTable, provider.PlayerKeys, players, &result)
		if err != nil {
			return result, err
		}
		result.PlayerStatsStored = stored
	} else {
		logger.Warn("no player rows collected")
	}

	if len(teams) > 0 {
		stored, err := upsert(ctx, deps.Exporter, config.TeamStatsTable, provider.TeamKeys, teams, &result)
		if err != nil {
			return result, err
		}
		result.TeamStatsStored = stored
	} else {
		logger.Warn("no team rows collected")
	}

	logger.Info("NBA seed complete", "summary", result.Summary())
	return result, nil
}

// upsert renders records as a table and merges them into the named table.
func upsert[T provider.Record](ctx context.Context, exp *export.Exporter, name string, keys []string, records []T, result *SeedResult) (int, error) {
	var zero T
	fresh := table.New(provider.Columns(zero), provider.Cells(records))

	out, err := exp.Upsert(ctx, name, fresh, keys)
	if err != nil {
		return 0, fmt.Errorf("write %s table: %w", name, err)
	}
	result.AddWarnings(out.Warnings...)
	return out.Rows, nil
}
