package handlers

import (
	"log/slog"
	"net/http"

	appteams "github.com/preston-bernstein/nba-possession-sim/internal/app/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/http/requestutil"
	"github.com/preston-bernstein/nba-possession-sim/internal/logging"
	"github.com/preston-bernstein/nba-possession-sim/internal/providers"
)

// AdminHandler exposes admin-only endpoints (roster reload).
type AdminHandler struct {
	teams    *appteams.Service
	provider providers.RosterProvider
	token    string
	logger   *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(teamSvc *appteams.Service, provider providers.RosterProvider, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		teams:    teamSvc,
		provider: provider,
		token:    token,
		logger:   logger,
	}
}

// ReloadRosters refetches rosters from the provider and swaps them in. Games already simulated
// keep the rosters they were played with.
// Guarded by the configured admin token; returns 401 if missing/invalid.
func (h *AdminHandler) ReloadRosters(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.provider == nil || h.teams == nil {
		writeError(w, r, http.StatusServiceUnavailable, "roster provider not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	if err := h.teams.Load(r.Context(), h.provider); err != nil {
		if rosterErr, ok := providers.AsRosterError(err); ok {
			logging.Warn(logger, "admin roster reload rejected", slog.Any("err", rosterErr))
			writeError(w, r, http.StatusUnprocessableEntity, rosterErr.Error(), logger)
			return
		}
		logging.Warn(logger, "admin roster reload failed", slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, "failed to fetch rosters", logger)
		return
	}

	count := len(h.teams.Teams())
	writeJSON(w, http.StatusOK, map[string]any{
		"teams":  count,
		"status": "ok",
	}, logger)
	logging.Info(logger, "admin rosters reloaded", slog.Int(logging.FieldCount, count))
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
