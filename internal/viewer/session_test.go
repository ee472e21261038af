package viewer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"storyviewer/internal/client"
	"storyviewer/internal/config"
	"storyviewer/internal/state"
)

type fakeAPI struct {
	runsStatus int
	runsBody   string
	books      map[string]struct {
		status int
		body   string
	}
	bookCalls atomic.Int32
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/runs":
		w.WriteHeader(f.runsStatus)
		_, _ = w.Write([]byte(f.runsBody))
	case "/api/book":
		f.bookCalls.Add(1)
		b, ok := f.books[r.URL.Query().Get("run")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"run not found"}`))
			return
		}
		w.WriteHeader(b.status)
		_, _ = w.Write([]byte(b.body))
	default:
		http.NotFound(w, r)
	}
}

func newSession(t *testing.T, api *fakeAPI) *Session {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	c := client.NewBookClient(config.ViewerConfig{BaseURL: srv.URL, Timeout: 5})
	return NewSession(New(state.New()), NewRunner(c))
}

const threePageBook = `{"meta":{"title_primary":"T"},"pages":[{"page_number":1,"text_primary":"a"},{"page_number":2,"text_primary":"b"},{"page_number":3,"text_primary":"c"}]}`

func TestSessionEmptyCatalog(t *testing.T) {
	api := &fakeAPI{runsStatus: http.StatusOK, runsBody: `{"runs":[]}`}
	s := newSession(t, api)

	s.Start(context.Background())

	screen := s.Screen()
	if screen.Status != StatusNoRuns {
		t.Fatalf("status = %q", screen.Status)
	}
	if screen.BookVisible {
		t.Fatal("no book view expected")
	}
	if n := api.bookCalls.Load(); n != 0 {
		t.Fatalf("expected no book requests, got %d", n)
	}
}

func TestSessionFirstRun(t *testing.T) {
	api := &fakeAPI{
		runsStatus: http.StatusOK,
		runsBody:   `{"runs":[{"id":"r1","title_primary":"T","page_count":3}]}`,
		books: map[string]struct {
			status int
			body   string
		}{
			"r1": {status: http.StatusOK, body: threePageBook},
		},
	}
	s := newSession(t, api)

	s.Start(context.Background())

	screen := s.Screen()
	if !screen.BookVisible {
		t.Fatalf("book hidden, status %q", screen.Status)
	}
	if screen.View.Indicator != "1 / 3" || screen.View.Title != "T" {
		t.Fatalf("unexpected view %+v", screen.View)
	}
	if !screen.View.PrevDisabled || screen.View.NextDisabled {
		t.Fatalf("prev=%v next=%v", screen.View.PrevDisabled, screen.View.NextDisabled)
	}
	if screen.SelectedRunID != "r1" || len(screen.Options) != 1 || screen.Options[0].Label != "r1 | T (3p)" {
		t.Fatalf("unexpected selector %+v", screen.Options)
	}

	if !s.Next() || s.Screen().View.TextPrimary != "b" {
		t.Fatal("next page not shown")
	}
	if !s.Previous() || s.Screen().View.TextPrimary != "a" {
		t.Fatal("previous page not shown")
	}
}

func TestSessionBookServerError(t *testing.T) {
	api := &fakeAPI{
		runsStatus: http.StatusOK,
		runsBody:   `{"runs":[{"id":"r1","page_count":3},{"id":"r2","page_count":1}]}`,
		books: map[string]struct {
			status int
			body   string
		}{
			"r1": {status: http.StatusOK, body: threePageBook},
			"r2": {status: http.StatusInternalServerError, body: `{"error":"boom"}`},
		},
	}
	s := newSession(t, api)
	s.Start(context.Background())
	if !s.Screen().BookVisible {
		t.Fatal("r1 should be shown first")
	}

	s.Select(context.Background(), "r2")

	screen := s.Screen()
	if !strings.HasSuffix(screen.Status, ": boom") {
		t.Fatalf("status = %q", screen.Status)
	}
	if screen.BookVisible {
		t.Fatal("previous book must be hidden after a failed load")
	}
}

func TestSessionStaleRunID(t *testing.T) {
	api := &fakeAPI{
		runsStatus: http.StatusOK,
		runsBody:   `{"runs":[{"id":"gone","page_count":1}]}`,
	}
	s := newSession(t, api)
	s.Start(context.Background())

	if got := s.Screen().Status; got != "Failed to load book: run not found" {
		t.Fatalf("status = %q", got)
	}
}

func TestSessionCatalogFailure(t *testing.T) {
	api := &fakeAPI{runsStatus: http.StatusInternalServerError, runsBody: `oops`}
	s := newSession(t, api)
	s.Start(context.Background())

	screen := s.Screen()
	if screen.Status != "Failed to load run list: HTTP 500" {
		t.Fatalf("status = %q", screen.Status)
	}
	if api.bookCalls.Load() != 0 {
		t.Fatal("no book load expected after a catalog failure")
	}
}
