package portfolio

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/invest-planner/internal/domain"
	"github.com/aristath/invest-planner/internal/session"
)

// Inflater projects a nominal target to its inflation-adjusted future
// value, returning the projected value and the rate applied.
type Inflater interface {
	FutureValue(targetSum float64, termMonths int) (float64, float64)
}

// Service assembles portfolio recommendations from the session goal,
// the risk profiling result, the instrument catalog and the latest
// inflation observation.
type Service struct {
	store     *session.Store
	inflation Inflater
	engine    *Engine
	log       zerolog.Logger
}

// NewService creates a portfolio service.
func NewService(store *session.Store, inflation Inflater, engine *Engine, log zerolog.Logger) *Service {
	return &Service{
		store:     store,
		inflation: inflation,
		engine:    engine,
		log:       log.With().Str("service", "portfolio").Logger(),
	}
}

// Calculate builds a fresh recommendation for the user. It requires a
// stored goal and a completed risk profiling result; the result is
// cached in the session for later saving.
func (s *Service) Calculate(userID string) (*Recommendation, error) {
	goal, ok := s.store.Goal(userID)
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	risk, ok := s.store.RiskResult(userID)
	if !ok {
		return nil, domain.ErrRiskResultNotFound
	}

	futureValue, rate := s.inflation.FutureValue(goal.TargetSum, goal.TermMonths)
	horizon := domain.HorizonForTerm(goal.TermMonths)

	composition, err := s.engine.BuildComposition(risk.Profile, horizon, futureValue)
	if err != nil {
		return nil, fmt.Errorf("building composition: %w", err)
	}
	expectedReturn := s.engine.ExpectedReturn(composition)

	var totalInvestment float64
	for _, comp := range composition {
		totalInvestment += comp.Amount
	}

	payment := CalculateMonthlyPayment(futureValue, goal.TermMonths, expectedReturn, goal.StartingCapital)

	rec := &Recommendation{
		TargetAmount:    goal.TargetSum,
		InitialCapital:  goal.StartingCapital,
		TermMonths:      goal.TermMonths,
		InflationRate:   rate,
		FutureValue:     futureValue,
		RiskProfile:     risk.Profile,
		TimeHorizon:     horizon,
		SmartGoal:       smartGoal(goal, futureValue),
		TotalInvestment: totalInvestment,
		ExpectedReturn:  expectedReturn,
		Composition:     composition,
		MonthlyPayment:  payment,
	}
	rec.Plan = GeneratePlan(rec)

	s.store.SetRecommendation(userID, rec)

	s.log.Info().
		Str("user_id", userID).
		Str("profile", string(risk.Profile)).
		Float64("future_value", futureValue).
		Float64("monthly_payment", payment.MonthlyPayment).
		Msg("recommendation calculated")

	return rec, nil
}

// Cached returns the last recommendation computed for the user, if
// the session still holds one.
func (s *Service) Cached(userID string) (*Recommendation, bool) {
	v, ok := s.store.Recommendation(userID)
	if !ok {
		return nil, false
	}
	rec, ok := v.(*Recommendation)
	return rec, ok
}

func smartGoal(goal domain.Goal, futureValue float64) string {
	reason := goal.Reason
	if reason == "" {
		reason = "the financial goal"
	}
	return fmt.Sprintf("Accumulate %.0f (%.0f adjusted for inflation) within %d months for %s",
		goal.TargetSum, futureValue, goal.TermMonths, reason)
}
