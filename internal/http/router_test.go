package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-possession-sim/internal/app/games"
	appteams "github.com/preston-bernstein/nba-possession-sim/internal/app/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/http/handlers"
	"github.com/preston-bernstein/nba-possession-sim/internal/store"
	"github.com/preston-bernstein/nba-possession-sim/internal/testutil"
)

func newRouter(t *testing.T, withAdmin bool) http.Handler {
	t.Helper()
	teamSvc := appteams.NewService(store.NewTeamStore())
	if err := teamSvc.Load(context.Background(), &testutil.StubRosterProvider{Teams: testutil.SampleLeague()}); err != nil {
		t.Fatalf("unexpected roster error: %v", err)
	}
	gameSvc, err := games.NewService(store.NewMemoryStore(), teamSvc, games.Options{NewID: func() string { return "sim-1" }})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	var admin *handlers.AdminHandler
	if withAdmin {
		admin = handlers.NewAdminHandler(teamSvc, &testutil.StubRosterProvider{Teams: testutil.SampleLeague()}, "secret", nil)
	}
	return NewRouter(handlers.NewHandler(gameSvc, teamSvc, nil, nil), admin)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newRouter(t, false)

	rr := testutil.Serve(router, http.MethodPost, "/simulations", strings.NewReader(`{"homeTeamId":"home","awayTeamId":"away","seed":3,"quarters":1}`))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	cases := map[string]int{
		"/health":                    http.StatusOK,
		"/ready":                     http.StatusOK,
		"/teams":                     http.StatusOK,
		"/teams/home":                http.StatusOK,
		"/simulations":               http.StatusOK,
		"/simulations/sim-1":         http.StatusOK,
		"/simulations/sim-1/plays":   http.StatusOK,
		"/simulations/missing":       http.StatusNotFound,
		"/simulations/batch":         http.StatusMethodNotAllowed,
		"/admin/rosters/reload":      http.StatusNotFound,
		"/simulations/missing/plays": http.StatusNotFound,
	}

	for path, expected := range cases {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterMountsAdminWhenConfigured(t *testing.T) {
	router := newRouter(t, true)

	req := httptest.NewRequest(http.MethodPost, "/admin/rosters/reload", nil)
	req.Header.Set("Authorization", "Bearer secret")
	testutil.AssertStatus(t, testutil.ServeRequest(router, req), http.StatusOK)
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := newRouter(t, false)

	rr := testutil.Serve(router, http.MethodGet, "/does-not-exist", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}
