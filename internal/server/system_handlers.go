package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/invest-planner/internal/modules/marketdata"
	"github.com/aristath/invest-planner/internal/scheduler"
)

// SystemHandlers handles monitoring and operations endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	startedAt   time.Time
	instruments *marketdata.InstrumentRepository
	scheduler   *scheduler.Scheduler
	syncJob     scheduler.Job
}

// NewSystemHandlers creates system handlers
func NewSystemHandlers(log zerolog.Logger, instruments *marketdata.InstrumentRepository, sched *scheduler.Scheduler) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		startedAt:   time.Now(),
		instruments: instruments,
		scheduler:   sched,
	}
}

// SetSyncJob registers the catalog sync job for manual triggering.
// Called after job registration in main.
func (h *SystemHandlers) SetSyncJob(job scheduler.Job) {
	h.syncJob = job
}

func (h *SystemHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusResponse struct {
	Status          string     `json:"status"`
	UptimeSeconds   int64      `json:"uptime_seconds"`
	InstrumentCount int        `json:"instrument_count"`
	CatalogUpdated  *time.Time `json:"catalog_updated_at,omitempty"`
}

func (h *SystemHandlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
	}

	instruments, err := h.instruments.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read instrument catalog")
		resp.Status = "degraded"
	} else {
		resp.InstrumentCount = len(instruments)
		for _, inst := range instruments {
			if resp.CatalogUpdated == nil || inst.UpdatedAt.After(*resp.CatalogUpdated) {
				updated := inst.UpdatedAt
				resp.CatalogUpdated = &updated
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *SystemHandlers) handleSyncNow(w http.ResponseWriter, r *http.Request) {
	if h.syncJob == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "sync job not registered"})
		return
	}

	if err := h.scheduler.RunNow(h.syncJob); err != nil {
		h.log.Error().Err(err).Msg("Manual catalog sync failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "sync failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "synced"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
