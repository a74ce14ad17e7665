package inflation

import (
	"math"

	"github.com/rs/zerolog"
)

// defaultAnnualRate is used when no observation has ever been stored.
const defaultAnnualRate = 0.08

// Service projects nominal sums to their inflation-adjusted future value
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates an inflation service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "inflation").Logger(),
	}
}

// AnnualRate returns the latest observed inflation as a fraction
// (stored 7.5 -> 0.075), or the default when nothing is stored.
func (s *Service) AnnualRate() float64 {
	latest, err := s.repo.Latest()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to read inflation, using default")
		return defaultAnnualRate
	}
	if latest == nil {
		return defaultAnnualRate
	}
	return latest.Value / 100
}

// FutureValue projects a nominal target over the term:
// target x (1+rate)^(months/12). Returns the projected value and the
// rate that was applied.
func (s *Service) FutureValue(targetSum float64, termMonths int) (float64, float64) {
	rate := s.AnnualRate()
	years := float64(termMonths) / 12
	return targetSum * math.Pow(1+rate, years), rate
}
