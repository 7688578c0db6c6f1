package handlers

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/preston-bernstein/nba-possession-sim/internal/app/games"
	appteams "github.com/preston-bernstein/nba-possession-sim/internal/app/teams"
	domaingames "github.com/preston-bernstein/nba-possession-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-possession-sim/internal/formation"
	"github.com/preston-bernstein/nba-possession-sim/internal/http/requestutil"
	"github.com/preston-bernstein/nba-possession-sim/internal/logging"
	"github.com/preston-bernstein/nba-possession-sim/internal/scheme"
)

// Handler wires HTTP routes to the simulation and roster services.
type Handler struct {
	games  *games.Service
	teams  *appteams.Service
	logger *slog.Logger
	ready  func(context.Context) error
}

// NewHandler constructs a Handler. ready, when set, is consulted by /ready in addition to the
// roster check.
func NewHandler(gameSvc *games.Service, teamSvc *appteams.Service, logger *slog.Logger, ready func(context.Context) error) *Handler {
	return &Handler{
		games:  gameSvc,
		teams:  teamSvc,
		logger: logger,
		ready:  ready,
	}
}

// BatchRequest is the body of POST /simulations/batch.
type BatchRequest struct {
	Simulations []games.Request `json:"simulations"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic: rosters are loaded and the store answers.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.teams == nil || len(h.teams.Teams()) == 0 {
		writeError(w, r, nethttp.StatusServiceUnavailable, "rosters not loaded", h.logger)
		return
	}
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			logging.Warn(loggerFromContext(r, h.logger), "readiness check failed", slog.Any("err", err))
			writeError(w, r, nethttp.StatusServiceUnavailable, "store unavailable", h.logger)
			return
		}
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Teams lists the loaded rosters.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	items := h.teams.Teams()
	writeJSON(w, nethttp.StatusOK, map[string]any{"count": len(items), "teams": items}, h.logger)
}

// TeamByID returns one roster.
func (h *Handler) TeamByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	id, ok := requestutil.PathID(r.URL.Path, "/teams")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team id", h.logger)
		return
	}
	team, err := h.teams.TeamByID(id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, team, h.logger)
}

// Simulations creates a simulation on POST and lists stored simulations on GET.
func (h *Handler) Simulations(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodGet:
		h.listSimulations(w, r)
	case nethttp.MethodPost:
		h.createSimulation(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) listSimulations(w nethttp.ResponseWriter, r *nethttp.Request) {
	items, err := h.games.Games(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, domaingames.NewListResponse(items), h.logger)
}

func (h *Handler) createSimulation(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req games.Request
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	game, err := h.games.Simulate(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/simulations/"+url.PathEscape(game.ID))
	writeJSON(w, nethttp.StatusCreated, game, h.logger)
}

// SimulateBatch runs several simulations and returns them in request order.
func (h *Handler) SimulateBatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	var req BatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	items, err := h.games.SimulateBatch(r.Context(), req.Simulations)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusCreated, domaingames.NewListResponse(items), h.logger)
}

// SimulationByID serves /simulations/{id} and /simulations/{id}/plays.
func (h *Handler) SimulationByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	path := r.URL.Path
	plays := strings.HasSuffix(path, "/plays")
	if plays {
		path = strings.TrimSuffix(path, "/plays")
	}
	id, ok := requestutil.PathID(path, "/simulations")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid simulation id", h.logger)
		return
	}

	if plays {
		items, err := h.games.Plays(r.Context(), id)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"gameId": id, "count": len(items), "plays": items}, h.logger)
		return
	}

	game, err := h.games.GameByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, game, h.logger)
}

// writeServiceError maps service errors onto status codes.
func (h *Handler) writeServiceError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	logger := loggerFromContext(r, h.logger)
	switch {
	case errors.Is(err, games.ErrInvalidRequest),
		errors.Is(err, games.ErrBatchTooLarge),
		errors.Is(err, scheme.ErrUnknown),
		errors.Is(err, formation.ErrUnknownSet):
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
	case errors.Is(err, appteams.ErrNotFound):
		writeError(w, r, nethttp.StatusNotFound, err.Error(), h.logger)
	case errors.Is(err, domaingames.ErrNotFound):
		writeError(w, r, nethttp.StatusNotFound, "simulation not found", h.logger)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, nethttp.StatusServiceUnavailable, "request canceled", h.logger)
	default:
		logging.Error(logger, "simulation request failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "internal error", h.logger)
	}
}
