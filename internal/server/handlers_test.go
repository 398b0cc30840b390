package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/user/anicatalog-go/internal/catalog"
	"github.com/user/anicatalog-go/internal/config"
	"github.com/user/anicatalog-go/internal/model"
	"github.com/user/anicatalog-go/internal/store"
)

// stubStore is a minimal in-memory store for handler tests.
type stubStore struct {
	genres   []*model.Genre
	contents []*model.Content
	byID     map[int64]*model.Content
	ids      []int64
	count    int64

	lastCrit store.ContentCriteria
}

func (s *stubStore) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	return s.genres, nil
}

func (s *stubStore) ListContent(ctx context.Context, crit store.ContentCriteria, order store.OrderKey, limit, offset int) ([]*model.Content, error) {
	s.lastCrit = crit
	return s.contents, nil
}

func (s *stubStore) GetContentByID(ctx context.Context, id int64) (*model.Content, error) {
	return s.byID[id], nil
}

func (s *stubStore) CountContent(ctx context.Context, crit store.ContentCriteria) (int64, error) {
	s.lastCrit = crit
	return s.count, nil
}

func (s *stubStore) ListContentIDs(ctx context.Context) ([]int64, error) {
	return s.ids, nil
}

func (s *stubStore) Ping(ctx context.Context) error { return nil }
func (s *stubStore) Close() error                   { return nil }

func newTestServer(st *stubStore, serverCfg config.ServerConfig) *Server {
	queryCfg := config.QueryConfig{DefaultLimit: 10, MaxLimit: 100}
	svc := catalog.NewService(st, queryCfg)
	return NewServer(svc, st, serverCfg)
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleGenres(t *testing.T) {
	st := &stubStore{genres: []*model.Genre{
		{ID: 1, Name: "Приключения", EnName: "Adventure"},
	}}
	srv := newTestServer(st, config.ServerConfig{})

	rec := get(t, srv, "/api/genres")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var genres []*model.Genre
	if err := json.Unmarshal(rec.Body.Bytes(), &genres); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(genres) != 1 || genres[0].EnName != "Adventure" {
		t.Errorf("genres = %+v", genres)
	}
}

func TestHandleContentByType_RequiresValidEnum(t *testing.T) {
	srv := newTestServer(&stubStore{}, config.ServerConfig{})

	// Missing type
	if rec := get(t, srv, "/api/content"); rec.Code != http.StatusBadRequest {
		t.Errorf("missing type: status = %d, want 400", rec.Code)
	}

	// Invalid enum value is rejected at this boundary, never in the core
	if rec := get(t, srv, "/api/content?type=podcast"); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid type: status = %d, want 400", rec.Code)
	}

	if rec := get(t, srv, "/api/content?type=series"); rec.Code != http.StatusOK {
		t.Errorf("valid type: status = %d, want 200", rec.Code)
	}
}

func TestHandleFiltered_InvalidStatus(t *testing.T) {
	srv := newTestServer(&stubStore{}, config.ServerConfig{})

	if rec := get(t, srv, "/api/content/filter?status=paused"); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if rec := get(t, srv, "/api/content/filter?status=ongoing&year=2024"); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHandleFiltered_PassesBounds(t *testing.T) {
	st := &stubStore{}
	srv := newTestServer(st, config.ServerConfig{})

	rec := get(t, srv, "/api/content/filter?released_from=1600000000")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if st.lastCrit.ReleasedFrom == nil || *st.lastCrit.ReleasedFrom != 1_600_000_000 {
		t.Errorf("ReleasedFrom = %v, want 1600000000", st.lastCrit.ReleasedFrom)
	}
	if st.lastCrit.ReleasedTo != nil {
		t.Errorf("ReleasedTo = %v, want nil", st.lastCrit.ReleasedTo)
	}
}

func TestHandleContentByID_NotFoundIsNull(t *testing.T) {
	srv := newTestServer(&stubStore{byID: map[int64]*model.Content{}}, config.ServerConfig{})

	rec := get(t, srv, "/api/content/999999")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Errorf("body = %q, want null", rec.Body.String())
	}
}

func TestHandleContentByID_BadID(t *testing.T) {
	srv := newTestServer(&stubStore{}, config.ServerConfig{})

	if rec := get(t, srv, "/api/content/abc"); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleCountByType(t *testing.T) {
	st := &stubStore{count: 42}
	srv := newTestServer(st, config.ServerConfig{})

	rec := get(t, srv, "/api/content/count?type=movie")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["count"] != 42 {
		t.Errorf("count = %d, want 42", body["count"])
	}
	if st.lastCrit.Type != model.TypeMovie {
		t.Errorf("Type = %q, want movie", st.lastCrit.Type)
	}
}

func TestHandleContentIDs(t *testing.T) {
	srv := newTestServer(&stubStore{ids: []int64{1, 2, 3}}, config.ServerConfig{})

	rec := get(t, srv, "/api/content/ids")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string][]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body["ids"]) != 3 {
		t.Errorf("ids = %v, want 3 entries", body["ids"])
	}
}

func TestHandleScheduledContent_WeeklyFlag(t *testing.T) {
	st := &stubStore{}
	srv := newTestServer(st, config.ServerConfig{})

	if rec := get(t, srv, "/api/schedule?weekly=yes-please"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad weekly: status = %d, want 400", rec.Code)
	}

	rec := get(t, srv, "/api/schedule?weekly=true&tz=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if st.lastCrit.NextEpisodeFrom == nil || st.lastCrit.NextEpisodeTo == nil {
		t.Error("weekly=true did not apply the window bounds")
	}
	if st.lastCrit.Status != model.StatusInProduction || !st.lastCrit.HasNextEpisode {
		t.Errorf("eligibility predicate missing: %+v", st.lastCrit)
	}
}

func TestHandleSearch_RequiresQuery(t *testing.T) {
	srv := newTestServer(&stubStore{}, config.ServerConfig{})

	if rec := get(t, srv, "/api/content/search"); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if rec := get(t, srv, "/api/content/search?q=Frieren"); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(&stubStore{}, config.ServerConfig{RateLimit: 1, Burst: 1})

	if rec := get(t, srv, "/api/genres"); rec.Code != http.StatusOK {
		t.Fatalf("first request: status = %d, want 200", rec.Code)
	}
	// Burst exhausted, the immediate follow-up is rejected
	if rec := get(t, srv, "/api/genres"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request: status = %d, want 429", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubStore{}, config.ServerConfig{})

	rec := get(t, srv, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var health HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if health.Status != "healthy" || health.Database != "healthy" {
		t.Errorf("health = %+v", health)
	}
}
