package inflation

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Observation is one stored inflation reading. Value is a percentage,
// e.g. 7.5 means 7.5% per year.
type Observation struct {
	ID         int64     `json:"id"`
	ObservedOn time.Time `json:"observed_on"`
	Value      float64   `json:"value"`
}

// Repository stores inflation observations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates an inflation repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "inflation").Logger(),
	}
}

// Latest returns the most recent observation, or nil when none exists
func (r *Repository) Latest() (*Observation, error) {
	row := r.db.QueryRow("SELECT id, observed_on, value FROM inflation_observations ORDER BY observed_on DESC LIMIT 1")

	// The driver hands DATE columns back as time.Time, so scan the
	// field directly instead of going through a string.
	var obs Observation
	if err := row.Scan(&obs.ID, &obs.ObservedOn, &obs.Value); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query latest inflation: %w", err)
	}

	return &obs, nil
}

// Add stores an observation for a date. One observation per date; a
// second write for the same date is a no-op.
func (r *Repository) Add(observedOn time.Time, value float64) error {
	_, err := r.db.Exec(
		"INSERT INTO inflation_observations (observed_on, value) VALUES (?, ?) ON CONFLICT(observed_on) DO NOTHING",
		observedOn.Format("2006-01-02"), value,
	)
	if err != nil {
		return fmt.Errorf("failed to insert inflation observation: %w", err)
	}
	return nil
}
