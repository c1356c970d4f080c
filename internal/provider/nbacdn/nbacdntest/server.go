package nbacdntest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Server is a fake of both endpoint families. Unregistered paths answer 404.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]route
	hits   map[string]int
}

type route struct {
	status int
	body   []byte
}

// NewServer starts a fake server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	s := &Server{
		routes: make(map[string]route),
		hits:   make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	rt, ok := s.routes[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rt.status)
	w.Write(rt.body)
}

// Handle serves doc as JSON at path.
func (s *Server) Handle(path string, doc interface{}) {
	s.HandleRaw(path, http.StatusOK, string(JSON(doc)))
}

// HandleRaw serves a literal body with the given status at path.
func (s *Server) HandleRaw(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = route{status: status, body: []byte(body)}
}

// Hits returns how many requests path received.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// LiveBaseURL is the base URL of the fake live family.
func (s *Server) LiveBaseURL() string { return s.URL + "/live" }

// LegacyBaseURL is the base URL of the fake legacy family.
func (s *Server) LegacyBaseURL() string { return s.URL + "/legacy" }

// Request paths, matching the URLs nbacdn.Resolver builds.

func LiveScoreboardPath(ymd string) string {
	return fmt.Sprintf("/live/scoreboard/scoreboard_%s.json", ymd)
}

const LiveTodayPath = "/live/scoreboard/todaysScoreboard_00.json"

func LiveBoxscorePath(gameID string) string {
	return fmt.Sprintf("/live/boxscore/boxscore_%s.json", gameID)
}

func LegacyScoreboardPath(version, ymd string) string {
	return fmt.Sprintf("/legacy/prod/%s/%s/scoreboard.json", version, ymd)
}

func LegacyBoxscorePath(version, ymd, gameID string) string {
	return fmt.Sprintf("/legacy/prod/%s/%s/%s_boxscore.json", version, ymd, gameID)
}
