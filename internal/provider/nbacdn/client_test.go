package nbacdn_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/albapepper/scoracle-boxscores/internal/provider"
	"github.com/albapepper/scoracle-boxscores/internal/provider/nbacdn"
	"github.com/albapepper/scoracle-boxscores/internal/provider/nbacdn/nbacdntest"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient() *nbacdn.Client {
	return nbacdn.NewClient(2*time.Second, "test-agent", quietLogger())
}

func TestClient_Fetch(t *testing.T) {
	srv := nbacdntest.NewServer(t)
	srv.Handle("/ok.json", map[string]interface{}{"gameId": "0022400001", "score": 110})
	srv.HandleRaw("/broken.json", http.StatusOK, `{"gameId": `)
	srv.HandleRaw("/array.json", http.StatusOK, `[1, 2]`)
	srv.HandleRaw("/forbidden.json", http.StatusForbidden, `denied`)

	c := newTestClient()
	ctx := context.Background()

	body, ok := c.Fetch(ctx, srv.URL+"/ok.json")
	if !ok {
		t.Fatal("expected document")
	}
	if n, ok := body["score"].(json.Number); !ok || n.String() != "110" {
		t.Errorf("score = %#v, want json.Number 110", body["score"])
	}

	for _, path := range []string{"/missing.json", "/broken.json", "/array.json", "/forbidden.json"} {
		if _, ok := c.Fetch(ctx, srv.URL+path); ok {
			t.Errorf("Fetch(%s) ok, want absence", path)
		}
	}
}

func TestClient_FetchUnreachable(t *testing.T) {
	c := newTestClient()
	if _, ok := c.Fetch(context.Background(), "http://127.0.0.1:1/nothing.json"); ok {
		t.Error("expected absence for connection failure")
	}
}

func TestClient_SendsHeaders(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, ok := newTestClient().Fetch(context.Background(), srv.URL+"/x.json"); !ok {
		t.Fatal("expected document")
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestClient_ResolveStopsAtFirstSuccess(t *testing.T) {
	srv := nbacdntest.NewServer(t)
	srv.Handle("/second.json", map[string]interface{}{"which": "second"})
	srv.Handle("/third.json", map[string]interface{}{"which": "third"})

	candidates := []nbacdn.Candidate{
		{URL: srv.URL + "/first.json", Source: provider.SourceLive},
		{URL: srv.URL + "/second.json", Source: provider.SourceLegacy},
		{URL: srv.URL + "/third.json", Source: provider.SourceLegacy},
	}

	doc, ok := newTestClient().Resolve(context.Background(), candidates)
	if !ok {
		t.Fatal("expected a document")
	}
	if doc.Source != provider.SourceLegacy || doc.Body["which"] != "second" {
		t.Errorf("resolved %+v, want second candidate", doc)
	}
	if srv.Hits("/first.json") != 1 || srv.Hits("/second.json") != 1 {
		t.Error("expected first and second candidates to be tried once")
	}
	if srv.Hits("/third.json") != 0 {
		t.Error("third candidate should not be requested")
	}
}

func TestClient_ResolveNothing(t *testing.T) {
	srv := nbacdntest.NewServer(t)
	_, ok := newTestClient().Resolve(context.Background(), []nbacdn.Candidate{
		{URL: srv.URL + "/a.json", Source: provider.SourceLive},
		{URL: srv.URL + "/b.json", Source: provider.SourceLegacy},
	})
	if ok {
		t.Error("expected absence when no candidate answers")
	}
}
