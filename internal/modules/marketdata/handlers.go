package marketdata

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/invest-planner/internal/domain"
)

// Handlers exposes the instrument catalog over HTTP
type Handlers struct {
	repo *InstrumentRepository
	log  zerolog.Logger
}

// NewHandlers creates marketdata handlers
func NewHandlers(repo *InstrumentRepository, log zerolog.Logger) *Handlers {
	return &Handlers{
		repo: repo,
		log:  log.With().Str("handler", "marketdata").Logger(),
	}
}

// Routes mounts the catalog routes
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/class/{class}", h.handleListByClass)
}

func (h *Handlers) handleList(w http.ResponseWriter, r *http.Request) {
	instruments, err := h.repo.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list instruments")
		writeError(w, http.StatusInternalServerError, "failed to list instruments")
		return
	}
	writeJSON(w, http.StatusOK, instruments)
}

func (h *Handlers) handleListByClass(w http.ResponseWriter, r *http.Request) {
	class := domain.AssetClass(chi.URLParam(r, "class"))
	instruments, err := h.repo.GetByClass(class)
	if err != nil {
		h.log.Error().Err(err).Str("class", string(class)).Msg("Failed to list instruments by class")
		writeError(w, http.StatusInternalServerError, "failed to list instruments")
		return
	}
	writeJSON(w, http.StatusOK, instruments)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
