package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"streamlane/internal/config/configs"
	"streamlane/internal/core/allocation"
	"streamlane/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds a CampaignUseCase to execute business logic and a logger for
// structured logging. Routes are registered on a chi.Router for convenient
// method handling.
type Handler struct {
	svc    port.CampaignUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. It accepts a
// use case implementation, a logger and the HTTP config used for rate
// limiting. The returned Handler registers handlers for each endpoint on a
// new chi.Router.
func NewHandler(svc port.CampaignUseCase, logger *slog.Logger, cfg configs.HTTP) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Use(observeRequests)
	if cfg.RateLimit > 0 {
		r.Use(rateLimit(cfg.RateLimit, cfg.RateBurst))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/campaigns", h.handleCreateCampaign)
		r.Get("/campaigns", h.handleListCampaigns)
		r.Get("/campaigns/{id}", h.handleGetCampaign)
		r.Post("/campaigns/{id}/build", h.handleBuildCampaign)
		r.Post("/campaigns/{id}/status", h.handleUpdateStatus)
		r.Post("/campaigns/{id}/updates", h.handleRecordUpdate)
		r.Get("/campaigns/{id}/updates", h.handleListUpdates)
		r.Get("/campaigns/{id}/report", h.handleGetReport)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto status codes: malformed input is 400,
// unknown ids 404, illegal lifecycle moves 409, everything else a logged 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrInvalidRequest), errors.Is(err, allocation.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, port.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, port.ErrInvalidTransition):
		h.writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
