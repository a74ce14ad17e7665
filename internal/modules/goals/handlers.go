// Package goals is the boundary the conversational intake reports
// through: once the external dialog layer has extracted a goal, it is
// posted here and kept in the session for the profiling and portfolio
// services.
package goals

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/invest-planner/internal/domain"
	"github.com/aristath/invest-planner/internal/session"
)

// Handlers exposes goal intake over HTTP
type Handlers struct {
	store *session.Store
	log   zerolog.Logger
}

// NewHandlers creates goal handlers
func NewHandlers(store *session.Store, log zerolog.Logger) *Handlers {
	return &Handlers{
		store: store,
		log:   log.With().Str("handler", "goals").Logger(),
	}
}

// Routes mounts the goal routes
func (h *Handlers) Routes(r chi.Router) {
	r.Post("/", h.handleSet)
	r.Get("/", h.handleGet)
}

type setRequest struct {
	UserID string      `json:"user_id"`
	Goal   domain.Goal `json:"goal"`
}

func (h *Handlers) handleSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if err := validate(req.Goal); err != "" {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	h.store.SetGoal(req.UserID, req.Goal)
	h.log.Info().
		Str("user_id", req.UserID).
		Int("term_months", req.Goal.TermMonths).
		Float64("target_sum", req.Goal.TargetSum).
		Msg("Goal stored")
	writeJSON(w, http.StatusOK, req.Goal)
}

func (h *Handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	goal, ok := h.store.Goal(userID)
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrGoalNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func validate(g domain.Goal) string {
	switch {
	case g.TermMonths <= 0:
		return "term_months must be positive"
	case g.TargetSum <= 0:
		return "target_sum must be positive"
	case g.StartingCapital < 0:
		return "starting_capital must not be negative"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
