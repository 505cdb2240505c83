package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"jobtrack/internal/config"
	"jobtrack/internal/metrics"
	"jobtrack/internal/model"
	"jobtrack/internal/tracker"
)

type stubFetcher struct {
	postings []model.Posting
	err      error
}

func (f *stubFetcher) FetchPostings(_ context.Context) ([]model.Posting, error) {
	return f.postings, f.err
}

type memStore struct {
	seen        map[string]struct{}
	containsErr error
}

func newMemStore() *memStore {
	return &memStore{seen: make(map[string]struct{})}
}

func (s *memStore) Contains(id string) (bool, error) {
	if s.containsErr != nil {
		return false, s.containsErr
	}
	_, ok := s.seen[id]
	return ok, nil
}

func (s *memStore) AddAll(ids []string) error {
	for _, id := range ids {
		s.seen[id] = struct{}{}
	}
	return nil
}

func (s *memStore) Count() (int, error) { return len(s.seen), nil }
func (s *memStore) Backend() string     { return "memory" }
func (s *memStore) Close() error        { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(t *testing.T, st model.SeenStore, postings ...model.Posting) http.Handler {
	t.Helper()
	logger := discardLogger()
	sources := []tracker.Source{
		{Name: "acme", Kind: model.SourceGreenhouse, Fetcher: &stubFetcher{postings: postings}},
	}
	collector := tracker.NewCollector(sources, logger)
	runner := tracker.NewRunner(collector, st, metrics.New(prometheus.NewRegistry()), logger)
	srv := New(config.ServerConfig{Addr: ":0", CORSOrigins: []string{"*"}}, runner, "test", logger)
	return srv.Handler()
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	handler.ServeHTTP(w, req)
	return w
}

func TestIndex(t *testing.T) {
	handler := newTestHandler(t, newMemStore())

	w := get(handler, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response["status"] != "online" {
		t.Errorf("status = %v, want online", response["status"])
	}
	if response["service"] != "jobtrack" {
		t.Errorf("service = %v, want jobtrack", response["service"])
	}
	if response["version"] != "test" {
		t.Errorf("version = %v, want test", response["version"])
	}
	endpoints, ok := response["endpoints"].(map[string]any)
	if !ok || len(endpoints) == 0 {
		t.Errorf("expected a non-empty endpoints map, got %v", response["endpoints"])
	}
}

func TestCheck_Success(t *testing.T) {
	postings := []model.Posting{
		{ID: "gh_acme_1", Title: "Engineer", Company: "Acme", Source: "greenhouse"},
		{ID: "gh_acme_2", Title: "Designer", Company: "Acme", Source: "greenhouse"},
		{ID: "lv_beta_3", Title: "SRE", Company: "Beta", Source: "lever"},
	}
	handler := newTestHandler(t, newMemStore(), postings...)

	w := get(handler, "/check")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response checkResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Status != "success" {
		t.Errorf("status = %q, want success", response.Status)
	}
	if response.Timestamp == "" {
		t.Error("expected a timestamp")
	}
	if response.Summary.TotalJobsFetched != 3 {
		t.Errorf("total_jobs_fetched = %d, want 3", response.Summary.TotalJobsFetched)
	}
	if response.Summary.NewJobsFound != 3 {
		t.Errorf("new_jobs_found = %d, want 3", response.Summary.NewJobsFound)
	}
	if response.Summary.CompaniesChecked != 2 {
		t.Errorf("companies_checked = %d, want 2 (distinct companies)", response.Summary.CompaniesChecked)
	}
	if len(response.NewJobs) != 3 {
		t.Errorf("new_jobs length = %d, want 3", len(response.NewJobs))
	}
}

func TestCheck_SecondCallFindsNothingNew(t *testing.T) {
	postings := []model.Posting{
		{ID: "gh_acme_1", Title: "Engineer", Company: "Acme", Source: "greenhouse"},
	}
	handler := newTestHandler(t, newMemStore(), postings...)

	if w := get(handler, "/check"); w.Code != http.StatusOK {
		t.Fatalf("first check: expected status 200, got %d", w.Code)
	}

	w := get(handler, "/check")
	if w.Code != http.StatusOK {
		t.Fatalf("second check: expected status 200, got %d", w.Code)
	}

	var response checkResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Summary.NewJobsFound != 0 {
		t.Errorf("new_jobs_found = %d, want 0 on repeat", response.Summary.NewJobsFound)
	}
	// new_jobs must be an empty array, not null.
	if !strings.Contains(w.Body.String(), `"new_jobs":[]`) {
		t.Errorf("expected empty new_jobs array in body: %s", w.Body.String())
	}
}

func TestCheck_StoreErrorReturns500(t *testing.T) {
	st := newMemStore()
	st.containsErr = errors.New("disk gone")
	handler := newTestHandler(t, st, model.Posting{ID: "gh_acme_1", Company: "Acme"})

	w := get(handler, "/check")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}

	var response errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Status != "error" {
		t.Errorf("status = %q, want error", response.Status)
	}
	if response.Message == "" {
		t.Error("expected an error message")
	}
	if response.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}

func TestStats(t *testing.T) {
	postings := []model.Posting{
		{ID: "gh_acme_1", Company: "Acme"},
		{ID: "gh_acme_2", Company: "Acme"},
	}
	handler := newTestHandler(t, newMemStore(), postings...)

	if w := get(handler, "/check"); w.Code != http.StatusOK {
		t.Fatalf("check: expected status 200, got %d", w.Code)
	}

	w := get(handler, "/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response statsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Status != "success" {
		t.Errorf("status = %q, want success", response.Status)
	}
	if response.Stats.TotalJobsSeen != 2 {
		t.Errorf("total_jobs_seen = %d, want 2", response.Stats.TotalJobsSeen)
	}
	if response.Stats.StorageFile != "memory" {
		t.Errorf("storage_file = %q, want memory", response.Stats.StorageFile)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(t, newMemStore())

	w := get(handler, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if w.Body.Len() == 0 {
		t.Error("expected a non-empty metrics exposition")
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestHandler(t, newMemStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/check", nil)
	req.Header.Set("Origin", "https://example.com")
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
