// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Table names: single source of truth for the export files
// --------------------------------------------------------------------------

const (
	GamesTable       = "games"
	TeamStatsTable   = "team_stats"
	PlayerStatsTable = "player_stats"
)

// Tables lists every exported table in write order.
var Tables = []string{GamesTable, TeamStatsTable, PlayerStatsTable}

// Mirror format names accepted in MIRROR_FORMATS.
const (
	MirrorParquet = "parquet"
	MirrorXLSX    = "xlsx"
)

const (
	DefaultLiveBaseURL   = "https://cdn.nba.com/static/json/liveData"
	DefaultLegacyBaseURL = "https://data.nba.net"
	DefaultUserAgent     = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome Safari"
	DefaultCron          = "0 6 * * *"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Export
	ExportDir     string
	MirrorFormats []string

	// Source endpoints
	LiveBaseURL   string
	LegacyBaseURL string
	HTTPTimeout   time.Duration
	UserAgent     string
	BoxscorePace  time.Duration

	// Date window (YYYY-MM-DD; empty = unset)
	StartDate string
	EndDate   string
	DaysBack  int

	// Scheduling
	CronSpec string

	// Object-store publishing (disabled when bucket is empty)
	PublishBucket    string
	PublishPrefix    string
	PublishEndpoint  string
	PublishRegion    string
	PublishAccessKey string
	PublishSecretKey string

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled     bool
	RedisURL         string // shared cache tier; empty = in-memory only
	CacheRedisPrefix string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		ExportDir:     envOr("EXPORT_DIR", "export"),
		MirrorFormats: mirrorFormats(),

		LiveBaseURL:   strings.TrimRight(envOr("NBA_LIVE_BASE_URL", DefaultLiveBaseURL), "/"),
		LegacyBaseURL: strings.TrimRight(envOr("NBA_LEGACY_BASE_URL", DefaultLegacyBaseURL), "/"),
		HTTPTimeout:   time.Duration(envInt("HTTP_TIMEOUT_SECONDS", 20)) * time.Second,
		UserAgent:     envOr("HTTP_USER_AGENT", DefaultUserAgent),
		BoxscorePace:  time.Duration(envInt("BOXSCORE_PACE_MS", 400)) * time.Millisecond,

		StartDate: envOr("START_DATE", ""),
		EndDate:   envOr("END_DATE", ""),

		CronSpec: envOr("INGEST_CRON", DefaultCron),

		PublishBucket:    envOr("PUBLISH_S3_BUCKET", ""),
		PublishPrefix:    strings.Trim(envOr("PUBLISH_S3_PREFIX", ""), "/"),
		PublishEndpoint:  envOr("PUBLISH_S3_ENDPOINT", ""),
		PublishRegion:    envOr("PUBLISH_S3_REGION", "auto"),
		PublishAccessKey: envOr("PUBLISH_S3_ACCESS_KEY_ID", ""),
		PublishSecretKey: envOr("PUBLISH_S3_SECRET_ACCESS_KEY", ""),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled:     envBool("CACHE_ENABLED", true),
		RedisURL:         envOr("REDIS_URL", ""),
		CacheRedisPrefix: envOr("CACHE_REDIS_PREFIX", "scoracle:boxscores:"),
	}

	if v := os.Getenv("DAYS_BACK"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("DAYS_BACK must be a positive integer, got %q", v)
		}
		cfg.DaysBack = n
	}

	if err := cfg.ValidateWindow(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateWindow checks the explicit date range settings. START_DATE and
// END_DATE must be set together and use the YYYY-MM-DD layout.
func (c *Config) ValidateWindow() error {
	if (c.StartDate == "") != (c.EndDate == "") {
		return fmt.Errorf("START_DATE and END_DATE must be set together")
	}
	for _, v := range []string{c.StartDate, c.EndDate} {
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", v)
		}
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// PublishEnabled reports whether exported tables are uploaded to object storage.
func (c *Config) PublishEnabled() bool {
	return c.PublishBucket != ""
}

// mirrorFormats merges the legacy USE_PARQUET switch with MIRROR_FORMATS.
func mirrorFormats() []string {
	var out []string
	seen := map[string]bool{}
	add := func(f string) {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			return
		}
		seen[f] = true
		out = append(out, f)
	}
	if envOr("USE_PARQUET", "0") == "1" {
		add(MirrorParquet)
	}
	for _, f := range envList("MIRROR_FORMATS", nil) {
		add(f)
	}
	return out
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
