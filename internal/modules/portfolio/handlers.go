package portfolio

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/invest-planner/internal/domain"
)

// Handlers exposes recommendation calculation and saved portfolios
// over HTTP
type Handlers struct {
	service *Service
	repo    *Repository
	log     zerolog.Logger
}

// NewHandlers creates portfolio handlers
func NewHandlers(service *Service, repo *Repository, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		repo:    repo,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// Routes mounts the portfolio routes
func (h *Handlers) Routes(r chi.Router) {
	r.Post("/calculate", h.handleCalculate)
	r.Post("/save", h.handleSave)
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.Delete("/{id}", h.handleDelete)
}

type calculateRequest struct {
	UserID string `json:"user_id"`
}

func (h *Handlers) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	rec, err := h.service.Calculate(req.UserID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type saveRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

func (h *Handlers) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.Name == "" {
		req.Name = "My portfolio"
	}

	rec, ok := h.service.Cached(req.UserID)
	if !ok {
		writeError(w, http.StatusNotFound, "no calculated recommendation to save")
		return
	}

	id, err := h.repo.Save(req.UserID, req.Name, rec)
	if err != nil {
		h.log.Error().Err(err).Msg("Portfolio save failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) handleList(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	summaries, err := h.repo.ListByUser(userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Portfolio list failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	rec, err := h.repo.Get(chi.URLParam(r, "id"), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := h.repo.Delete(chi.URLParam(r, "id"), userID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrRiskResultNotFound),
		errors.Is(err, domain.ErrPortfolioNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Error().Err(err).Msg("Portfolio request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
