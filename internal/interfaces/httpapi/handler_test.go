package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/worldcup-insights/internal/domain/team"
	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
	worldcupmock "github.com/riskibarqy/worldcup-insights/internal/mocks/domain/worldcup"
	"github.com/riskibarqy/worldcup-insights/internal/platform/logging"
	"github.com/riskibarqy/worldcup-insights/internal/platform/metrics"
	"github.com/riskibarqy/worldcup-insights/internal/usecase"
)

var (
	argentina   = team.Team{Name: "Argentina", Code: "ARG"}
	netherlands = team.Team{Name: "Netherlands", Code: "NED"}
	france      = team.Team{Name: "France", Code: "FRA"}
	croatia     = team.Team{Name: "Croatia", Code: "CRO"}
)

func testDocuments() map[int]worldcup.Document {
	return map[int]worldcup.Document{
		1978: {Name: "World Cup 1978", Rounds: []worldcup.Round{{
			Name: "Final",
			Matches: []worldcup.Match{
				{Num: 38, Date: "1978-06-25", TeamA: argentina, TeamB: netherlands, ScoreA: 3, ScoreB: 1, Knockout: true},
			},
		}}},
		2022: {Name: "World Cup 2022", Rounds: []worldcup.Round{
			{Name: "Quarter-finals", Matches: []worldcup.Match{
				{Num: 58, Date: "2022-12-09", TeamA: netherlands, TeamB: argentina, ScoreA: 3, ScoreB: 4, Knockout: true},
			}},
			{Name: "Final", Matches: []worldcup.Match{
				{Num: 64, Date: "2022-12-18", TeamA: argentina, TeamB: france, ScoreA: 4, ScoreB: 2, Knockout: true},
			}},
		}},
	}
}

type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T, load bool) testServer {
	t.Helper()

	repo := worldcupmock.NewRepository(t)
	for year, doc := range testDocuments() {
		repo.On("ReadDocument", mock.Anything, year).Return(doc, nil).Maybe()
		repo.On("ReadGroups", mock.Anything, year).
			Return(worldcup.GroupsDocument{Groups: []worldcup.Group{{Name: "Group C", Teams: []team.Team{croatia}}}}, nil).
			Maybe()
	}

	catalog := usecase.NewCatalogService(repo, team.DefaultResolver(), nil, usecase.CatalogConfig{Years: []int{1978, 2022}}, logging.NewNop(), nil)
	if load {
		if _, err := catalog.Load(context.Background()); err != nil {
			t.Fatalf("load catalog: %v", err)
		}
	}
	analytics := usecase.NewAnalyticsService(catalog, nil)
	handler := NewHandler(catalog, analytics, logging.NewNop())

	return testServer{
		handler: NewRouter(handler, logging.NewNop(), []string{"*"}, metrics.New(prometheus.NewRegistry())),
	}
}

func (s testServer) get(t *testing.T, path string) (int, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal %s response: %v", path, err)
		}
	}
	return rec.Code, body
}

func dataOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T (%v)", body["data"], body)
	}
	return data
}

func TestRouter_NotLoadedReturns503(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, false)

	for _, path := range []string{"/readyz", "/v1/teams", "/v1/stats/goals/ARG", "/v1/predictions/ARG/FRA"} {
		code, body := srv.get(t, path)
		if code != http.StatusServiceUnavailable {
			t.Fatalf("%s: expected 503, got %d (%v)", path, code, body)
		}
	}

	code, _ := srv.get(t, "/healthz")
	if code != http.StatusOK {
		t.Fatalf("healthz must not depend on the catalog, got %d", code)
	}
}

func TestRouter_TeamsAndMatches(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, true)

	code, body := srv.get(t, "/v1/teams")
	if code != http.StatusOK {
		t.Fatalf("list teams: got %d", code)
	}
	teams, ok := body["data"].([]any)
	if !ok || len(teams) != 4 {
		t.Fatalf("unexpected teams payload: %v", body["data"])
	}

	code, body = srv.get(t, "/v1/teams/arg")
	if code != http.StatusOK {
		t.Fatalf("get team: got %d", code)
	}
	details := dataOf(t, body)
	if details["matches_played"] != float64(3) {
		t.Fatalf("unexpected matches_played: %v", details["matches_played"])
	}

	code, _ = srv.get(t, "/v1/teams/ZZZ")
	if code != http.StatusNotFound {
		t.Fatalf("unknown team: expected 404, got %d", code)
	}
	code, _ = srv.get(t, "/v1/teams/AR1")
	if code != http.StatusBadRequest {
		t.Fatalf("malformed team: expected 400, got %d", code)
	}

	code, body = srv.get(t, "/v1/matches?team=NED&year=2022")
	if code != http.StatusOK {
		t.Fatalf("list matches: got %d", code)
	}
	if got := dataOf(t, body)["count"]; got != float64(1) {
		t.Fatalf("unexpected match count: %v", got)
	}

	code, _ = srv.get(t, "/v1/matches?year=abc")
	if code != http.StatusBadRequest {
		t.Fatalf("bad year: expected 400, got %d", code)
	}
}

func TestRouter_Stats(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, true)

	tests := []struct {
		path   string
		status int
		key    string
	}{
		{path: "/v1/stats/goals/ARG", status: http.StatusOK, key: "global"},
		{path: "/v1/stats/home-away/ARG", status: http.StatusOK, key: "home"},
		{path: "/v1/stats/streaks/ARG", status: http.StatusOK, key: "current_streak"},
		{path: "/v1/stats/graph/ARG", status: http.StatusOK, key: "indirect_wins"},
		{path: "/v1/stats/record/ARG", status: http.StatusOK, key: "win_percentage"},
		{path: "/v1/stats/possession/ARG", status: http.StatusOK, key: "available"},
		{path: "/v1/stats/momentum/ARG?span=3", status: http.StatusOK, key: "current_momentum"},
		{path: "/v1/stats/momentum/ARG?span=99", status: http.StatusBadRequest},
		{path: "/v1/stats/xg/ARG", status: http.StatusNotFound},
		{path: "/v1/history/ARG/NED", status: http.StatusOK, key: "recent_matches"},
		{path: "/v1/history/ARG/ARG", status: http.StatusBadRequest},
		{path: "/v1/predictions/ARG/FRA", status: http.StatusOK, key: "probability_a"},
	}

	for _, tt := range tests {
		code, body := srv.get(t, tt.path)
		if code != tt.status {
			t.Fatalf("%s: expected %d, got %d (%v)", tt.path, tt.status, code, body)
		}
		if tt.key == "" {
			continue
		}
		if _, ok := dataOf(t, body)[tt.key]; !ok {
			t.Fatalf("%s: expected key %q in %v", tt.path, tt.key, body["data"])
		}
	}

	_, body := srv.get(t, "/v1/history/ARG/NED")
	history := dataOf(t, body)
	if history["total_matches"] != float64(2) || history["wins_a"] != float64(2) {
		t.Fatalf("unexpected head to head: %v", history)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, true)
	srv.get(t, "/v1/teams")

	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `route="GET /v1/teams"`) {
		t.Fatalf("expected request metric for /v1/teams, got:\n%s", rec.Body.String())
	}
}
