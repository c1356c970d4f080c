package nbacdn

import (
	"fmt"
	"time"

	"github.com/albapepper/scoracle-boxscores/internal/calendar"
	"github.com/albapepper/scoracle-boxscores/internal/provider"
)

// Legacy API versions, in the order they are tried.
var legacyVersions = []string{"v2", "v1"}

// Candidate is one source URL to try for a document.
type Candidate struct {
	URL    string
	Source provider.Source
}

// Resolver builds ordered candidate lists for scoreboards and box scores.
// Live URLs always come first; legacy URLs are fallbacks for older seasons.
type Resolver struct {
	liveBaseURL   string
	legacyBaseURL string
	now           func() time.Time
}

// NewResolver creates a resolver for the given base URLs. now may be nil.
func NewResolver(liveBaseURL, legacyBaseURL string, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{
		liveBaseURL:   liveBaseURL,
		legacyBaseURL: legacyBaseURL,
		now:           now,
	}
}

// ScoreboardCandidates lists the scoreboard URLs for an Eastern date: the
// date-keyed live URL, the live "today" URL when date is today, then the
// legacy versions.
func (r *Resolver) ScoreboardCandidates(date time.Time) []Candidate {
	ymd := calendar.YMD(date)

	out := []Candidate{{
		URL:    fmt.Sprintf("%s/scoreboard/scoreboard_%s.json", r.liveBaseURL, ymd),
		Source: provider.SourceLive,
	}}
	if calendar.SameDay(date, r.now()) {
		out = append(out, Candidate{
			URL:    r.liveBaseURL + "/scoreboard/todaysScoreboard_00.json",
			Source: provider.SourceLive,
		})
	}
	for _, v := range legacyVersions {
		out = append(out, Candidate{
			URL:    fmt.Sprintf("%s/prod/%s/%s/scoreboard.json", r.legacyBaseURL, v, ymd),
			Source: provider.SourceLegacy,
		})
	}
	return out
}

// BoxscoreCandidates lists the box score URLs for a game. Legacy URLs need
// the YYYYMMDD date hint and are omitted without it.
func (r *Resolver) BoxscoreCandidates(gameID, dateHint string) []Candidate {
	out := []Candidate{{
		URL:    fmt.Sprintf("%s/boxscore/boxscore_%s.json", r.liveBaseURL, gameID),
		Source: provider.SourceLive,
	}}
	if dateHint == "" {
		return out
	}
	for _, v := range legacyVersions {
		out = append(out, Candidate{
			URL:    fmt.Sprintf("%s/prod/%s/%s/%s_boxscore.json", r.legacyBaseURL, v, dateHint, gameID),
			Source: provider.SourceLegacy,
		})
	}
	return out
}
