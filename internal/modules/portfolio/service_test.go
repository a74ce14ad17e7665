package portfolio

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/invest-planner/internal/domain"
	"github.com/aristath/invest-planner/internal/session"
)

type stubInflater struct {
	rate float64
}

func (s stubInflater) FutureValue(targetSum float64, termMonths int) (float64, float64) {
	return targetSum * math.Pow(1+s.rate, float64(termMonths)/12), s.rate
}

func newTestPortfolioService(t *testing.T) (*Service, *session.Store) {
	t.Helper()
	store := session.New(time.Minute)
	engine := NewEngine(testCatalog(), DefaultPolicy(), zerolog.Nop())
	svc := NewService(store, stubInflater{rate: 0.08}, engine, zerolog.Nop())
	return svc, store
}

func TestCalculate_RequiresGoal(t *testing.T) {
	svc, _ := newTestPortfolioService(t)

	_, err := svc.Calculate("u1")
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}

func TestCalculate_RequiresRiskResult(t *testing.T) {
	svc, store := newTestPortfolioService(t)
	store.SetGoal("u1", domain.Goal{TermMonths: 60, TargetSum: 1_000_000})

	_, err := svc.Calculate("u1")
	assert.ErrorIs(t, err, domain.ErrRiskResultNotFound)
}

func TestCalculate_FullRecommendation(t *testing.T) {
	svc, store := newTestPortfolioService(t)
	store.SetGoal("u1", domain.Goal{
		TermMonths:      60,
		TargetSum:       1_000_000,
		StartingCapital: 200_000,
		Reason:          "an apartment",
	})
	store.SetRiskResult("u1", domain.RiskProfileResult{Profile: domain.ProfileModerate})

	rec, err := svc.Calculate("u1")
	require.NoError(t, err)

	// 1,000,000 over 5 years at 8% inflation.
	assert.InDelta(t, 1_469_328, rec.FutureValue, 1)
	assert.Equal(t, domain.ProfileModerate, rec.RiskProfile)
	assert.Equal(t, domain.HorizonMedium, rec.TimeHorizon)
	assert.InDelta(t, 0.08, rec.InflationRate, 1e-9)
	assert.Contains(t, rec.SmartGoal, "an apartment")

	require.Len(t, rec.Composition, 4)
	assert.Positive(t, rec.TotalInvestment)
	assert.Positive(t, rec.ExpectedReturn)
	assert.Positive(t, rec.MonthlyPayment.MonthlyPayment)
	assert.Equal(t, 60, rec.MonthlyPayment.TotalMonths)

	require.NotNil(t, rec.Plan)
	assert.Equal(t, rec.Plan.TotalSteps, len(rec.Plan.Steps))

	// The annuity invariant holds against the inflation-adjusted goal.
	got := rec.MonthlyPayment.FutureCapital + rec.MonthlyPayment.MonthlyPayment*rec.MonthlyPayment.AnnuityFactor
	assert.InDelta(t, rec.FutureValue, got, 0.01)
}

func TestCalculate_CachesRecommendation(t *testing.T) {
	svc, store := newTestPortfolioService(t)
	store.SetGoal("u1", domain.Goal{TermMonths: 36, TargetSum: 500_000})
	store.SetRiskResult("u1", domain.RiskProfileResult{Profile: domain.ProfileConservative})

	_, ok := svc.Cached("u1")
	assert.False(t, ok)

	rec, err := svc.Calculate("u1")
	require.NoError(t, err)

	cached, ok := svc.Cached("u1")
	require.True(t, ok)
	assert.Same(t, rec, cached)
}

func TestCalculate_UnknownProfileFallsBack(t *testing.T) {
	svc, store := newTestPortfolioService(t)
	store.SetGoal("u1", domain.Goal{TermMonths: 60, TargetSum: 1_000_000})
	store.SetRiskResult("u1", domain.RiskProfileResult{Profile: domain.RiskProfile("mystery")})

	rec, err := svc.Calculate("u1")
	require.NoError(t, err)

	// Moderate/medium weights apply.
	weights := DefaultPolicy().Moderate.Medium
	for _, comp := range rec.Composition {
		assert.InDelta(t, weights.Weight(comp.Bucket), comp.TargetWeight, 1e-9)
	}
}
