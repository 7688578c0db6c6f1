package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/nba-possession-sim/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. admin may be nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) *nethttp.ServeMux {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/teams", handler.Teams)
	mux.HandleFunc("/teams/", handler.TeamByID)
	mux.HandleFunc("/simulations", handler.Simulations)
	mux.HandleFunc("/simulations/batch", handler.SimulateBatch)
	mux.HandleFunc("/simulations/", handler.SimulationByID)
	if admin != nil {
		mux.HandleFunc("/admin/rosters/reload", admin.ReloadRosters)
	}
	return mux
}
