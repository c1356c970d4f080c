// Package handler provides HTTP handlers for all API endpoints.
// Handlers read the exported tables directly with no service layer. Rendered
// responses are cached keyed on the tables' modification times.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/albapepper/scoracle-boxscores/internal/api/respond"
	"github.com/albapepper/scoracle-boxscores/internal/cache"
	"github.com/albapepper/scoracle-boxscores/internal/config"
	"github.com/albapepper/scoracle-boxscores/internal/table"
)

// TableSource reads exported tables. *export.Exporter implements it.
type TableSource interface {
	Load(name string) (*table.Table, error)
	ModTime(name string) (time.Time, error)
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	tables TableSource
	cache  *cache.Cache
	cfg    *config.Config
}

// New creates a Handler with shared dependencies.
func New(tables TableSource, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{tables: tables, cache: c, cfg: cfg}
}

// Root serves API info at /.
//
// @Summary API root info
// @Description Returns API name, version, status, the exported tables, and available optimizations.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Scoracle Boxscores API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"tables":  config.Tables,
		"optimizations": []string{
			"gzip_compression",
			"in_memory_cache",
			"etag_support",
		},
	})
}

// HealthCheck returns basic health status.
//
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
//
// @Summary Cache health check
// @Description Returns response cache statistics, including shared tier hits when Redis is configured.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// statusError is a build failure that maps to an HTTP error response.
type statusError struct {
	status  int
	code    string
	message string
}

func (e *statusError) Error() string { return e.message }

func notFound(message string) error {
	return &statusError{status: http.StatusNotFound, code: "NOT_FOUND", message: message}
}

// serveCached answers from the cache when possible, otherwise renders the
// body with build and caches it. Matching If-None-Match gets a 304 either
// way.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, build func() (interface{}, error)) {
	ifNoneMatch := r.Header.Get("If-None-Match")

	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(ifNoneMatch, etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	v, err := build()
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			respond.WriteError(w, se.status, se.code, se.message)
			return
		}
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "READ_FAILED", "Could not read exported data", err.Error())
		return
	}

	data, err := respond.Marshal(v)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Could not encode response")
		return
	}

	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(ifNoneMatch, etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}
