package riskprofile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/invest-planner/internal/domain"
)

// Handlers exposes risk profiling over HTTP
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates risk profile handlers
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("handler", "riskprofile").Logger(),
	}
}

// Routes mounts the risk profile routes
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/questions", h.handleQuestions)
	r.Post("/answers", h.handleAnswers)
	r.Post("/clarifications", h.handleClarifications)
	r.Get("/result", h.handleResult)
}

func (h *Handlers) handleQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Questions())
}

type answersRequest struct {
	UserID  string                       `json:"user_id"`
	Answers []domain.QuestionnaireAnswer `json:"answers"`
}

func (h *Handlers) handleAnswers(w http.ResponseWriter, r *http.Request) {
	var req answersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	resp, err := h.service.SubmitAnswers(req.UserID, req.Answers)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type clarificationsRequest struct {
	UserID         string                       `json:"user_id"`
	Clarifications []domain.ClarificationAnswer `json:"clarifications"`
}

func (h *Handlers) handleClarifications(w http.ResponseWriter, r *http.Request) {
	var req clarificationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	resp, err := h.service.ResolveClarifications(req.UserID, req.Clarifications)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) handleResult(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	result, err := h.service.Result(userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAnswer):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoPendingAnswers):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrRiskResultNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Error().Err(err).Msg("Risk profile request failed")
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
