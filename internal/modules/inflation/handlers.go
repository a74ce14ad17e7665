package inflation

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers exposes inflation observations over HTTP. POST is the
// boundary the external rate fetcher reports through.
type Handlers struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandlers creates inflation handlers
func NewHandlers(repo *Repository, log zerolog.Logger) *Handlers {
	return &Handlers{
		repo: repo,
		log:  log.With().Str("handler", "inflation").Logger(),
	}
}

// Routes mounts the inflation routes
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/latest", h.handleLatest)
	r.Post("/", h.handleAdd)
}

func (h *Handlers) handleLatest(w http.ResponseWriter, r *http.Request) {
	latest, err := h.repo.Latest()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read latest inflation")
		writeError(w, http.StatusInternalServerError, "failed to read inflation")
		return
	}
	if latest == nil {
		writeError(w, http.StatusNotFound, "no inflation observations stored")
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

type addRequest struct {
	ObservedOn string  `json:"observed_on"` // YYYY-MM-DD, defaults to today
	Value      float64 `json:"value"`       // percent per year
}

func (h *Handlers) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Value <= 0 {
		writeError(w, http.StatusBadRequest, "value must be positive")
		return
	}

	observedOn := time.Now()
	if req.ObservedOn != "" {
		parsed, err := time.Parse("2006-01-02", req.ObservedOn)
		if err != nil {
			writeError(w, http.StatusBadRequest, "observed_on must be YYYY-MM-DD")
			return
		}
		observedOn = parsed
	}

	if err := h.repo.Add(observedOn, req.Value); err != nil {
		h.log.Error().Err(err).Msg("Failed to store inflation observation")
		writeError(w, http.StatusInternalServerError, "failed to store observation")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "stored"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
