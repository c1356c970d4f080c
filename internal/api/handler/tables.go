package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-boxscores/internal/api/respond"
	"github.com/albapepper/scoracle-boxscores/internal/cache"
	"github.com/albapepper/scoracle-boxscores/internal/config"
	"github.com/albapepper/scoracle-boxscores/internal/export"
	"github.com/albapepper/scoracle-boxscores/internal/table"
)

// TableResponse is the body of GET /api/v1/tables/{table}.
type TableResponse struct {
	Table   string                   `json:"table"`
	Columns []string                 `json:"columns"`
	Count   int                      `json:"count"`
	Rows    []map[string]interface{} `json:"rows"`
}

// GameResponse is the body of GET /api/v1/games/{gameID}.
type GameResponse struct {
	Game    map[string]interface{}   `json:"game"`
	Teams   []map[string]interface{} `json:"teams"`
	Players []map[string]interface{} `json:"players"`
}

func knownTable(name string) bool {
	for _, t := range config.Tables {
		if t == name {
			return true
		}
	}
	return false
}

// version identifies the current contents of a table for cache keys.
// A table that was never written has version "none".
func (h *Handler) version(name string) (string, error) {
	mt, err := h.tables.ModTime(name)
	if errors.Is(err, export.ErrNoTable) {
		return "none", nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", mt.UnixNano()), nil
}

func (h *Handler) load(name string) (*table.Table, error) {
	t, err := h.tables.Load(name)
	if errors.Is(err, export.ErrNoTable) {
		return nil, notFound(fmt.Sprintf("Table %s has not been exported yet", name))
	}
	return t, err
}

// GetTable returns every row of one exported table, optionally filtered to
// a single game with ?gameId=.
//
// @Summary Exported table
// @Description Returns the columns and rows of one exported table. Empty cells are null.
// @Tags tables
// @Produce json
// @Param table path string true "Table name" Enums(games, team_stats, player_stats)
// @Param gameId query string false "Only rows of this game"
// @Success 200 {object} TableResponse
// @Success 304 "Not modified"
// @Failure 404 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /tables/{table} [get]
func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "table")
	if !knownTable(name) {
		respond.WriteError(w, http.StatusNotFound, "UNKNOWN_TABLE",
			fmt.Sprintf("Unknown table %q. Valid: %s", name, strings.Join(config.Tables, ", ")))
		return
	}
	gameID := r.URL.Query().Get("gameId")

	ver, err := h.version(name)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "READ_FAILED", "Could not read exported data", err.Error())
		return
	}
	cacheKey := fmt.Sprintf("table:%s:%s", name, ver)
	if gameID != "" {
		cacheKey += ":" + gameID
	}

	h.serveCached(w, r, cacheKey, cache.TTLTable, func() (interface{}, error) {
		t, err := h.load(name)
		if err != nil {
			return nil, err
		}
		if gameID != "" {
			t = t.Where("gameId", gameID)
		}
		return TableResponse{
			Table:   name,
			Columns: t.Columns,
			Count:   t.Len(),
			Rows:    t.Records(),
		}, nil
	})
}

// GetGame returns one game with its team and player lines.
//
// @Summary Game box score
// @Description Returns one game row with its team and player statistics rows.
// @Tags games
// @Produce json
// @Param gameID path string true "Game ID"
// @Success 200 {object} GameResponse
// @Success 304 "Not modified"
// @Failure 404 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /games/{gameID} [get]
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	versions := make([]string, 0, len(config.Tables))
	for _, name := range config.Tables {
		ver, err := h.version(name)
		if err != nil {
			respond.WriteErrorDetail(w, http.StatusInternalServerError, "READ_FAILED", "Could not read exported data", err.Error())
			return
		}
		versions = append(versions, ver)
	}
	cacheKey := fmt.Sprintf("game:%s:%s", gameID, strings.Join(versions, ":"))

	h.serveCached(w, r, cacheKey, cache.TTLGame, func() (interface{}, error) {
		games, err := h.load(config.GamesTable)
		if err != nil {
			return nil, err
		}
		match := games.Where("gameId", gameID).Records()
		if len(match) == 0 {
			return nil, notFound(fmt.Sprintf("Game %s not found", gameID))
		}

		resp := GameResponse{
			Game:    match[0],
			Teams:   []map[string]interface{}{},
			Players: []map[string]interface{}{},
		}
		if resp.Teams, err = h.linesFor(config.TeamStatsTable, gameID); err != nil {
			return nil, err
		}
		if resp.Players, err = h.linesFor(config.PlayerStatsTable, gameID); err != nil {
			return nil, err
		}
		return resp, nil
	})
}

// linesFor returns the rows of a stats table for one game. A stats table
// that was never written yields no rows.
func (h *Handler) linesFor(name, gameID string) ([]map[string]interface{}, error) {
	t, err := h.tables.Load(name)
	if errors.Is(err, export.ErrNoTable) {
		return []map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, err
	}
	return t.Where("gameId", gameID).Records(), nil
}
