package portfolio

import (
	"time"

	"github.com/aristath/invest-planner/internal/domain"
)

// Bucket is an allocation bucket of the target-weight table. Bonds are
// a single bucket here; the maturity split happens during instrument
// selection.
type Bucket string

const (
	BucketStocks     Bucket = "stocks"
	BucketBonds      Bucket = "bonds"
	BucketGold       Bucket = "gold"
	BucketRealEstate Bucket = "real_estate"
)

// Buckets lists the allocation buckets in presentation order.
func Buckets() []Bucket {
	return []Bucket{BucketStocks, BucketBonds, BucketGold, BucketRealEstate}
}

// AssetAllocation is one purchase line: a concrete instrument, an
// integer quantity and the weight it carries within its bucket.
type AssetAllocation struct {
	Ticker         string           `json:"ticker"`
	Name           string           `json:"name"`
	Class          domain.AssetClass `json:"class"`
	Quantity       int              `json:"quantity"`
	Price          float64          `json:"price"`
	Weight         float64          `json:"weight"`
	Amount         float64          `json:"amount"`
	ExpectedReturn float64          `json:"expected_return"`
}

// Composition is the realized allocation for one bucket. ActualWeight
// can fall short of TargetWeight through integer-quantity rounding and
// instrument availability; never through strategy error.
type Composition struct {
	Bucket       Bucket            `json:"bucket"`
	TargetWeight float64           `json:"target_weight"`
	ActualWeight float64           `json:"actual_weight"`
	Amount       float64           `json:"amount"`
	Assets       []AssetAllocation `json:"assets"`
}

// MonthlyPaymentDetail is the annuity calculation result. When
// MonthlyPayment is positive, FutureCapital plus the payment stream
// compounded by AnnuityFactor reproduces the future-value target
// within rounding.
type MonthlyPaymentDetail struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	FutureCapital  float64 `json:"future_capital"`
	TotalMonths    int     `json:"total_months"`
	MonthlyRate    float64 `json:"monthly_rate"`
	AnnuityFactor  float64 `json:"annuity_factor"`
}

// PlanStep is one ordered step of the action plan.
type PlanStep struct {
	StepNumber  int      `json:"step_number"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

// StepByStepPlan is the generated action plan. Always rebuilt from the
// recommendation, never mutated in place.
type StepByStepPlan struct {
	Steps       []PlanStep `json:"steps"`
	TotalSteps  int        `json:"total_steps"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// Recommendation is the aggregate the planner produces: goal-derived
// figures, the realized composition, the contribution schedule and the
// action plan. Recomputation always builds a new aggregate.
type Recommendation struct {
	TargetAmount    float64              `json:"target_amount"`
	InitialCapital  float64              `json:"initial_capital"`
	TermMonths      int                  `json:"investment_term_months"`
	InflationRate   float64              `json:"annual_inflation_rate"`
	FutureValue     float64              `json:"future_value_with_inflation"`
	RiskProfile     domain.RiskProfile   `json:"risk_profile"`
	TimeHorizon     domain.HorizonBucket `json:"time_horizon"`
	SmartGoal       string               `json:"smart_goal"`
	TotalInvestment float64              `json:"total_investment"`
	ExpectedReturn  float64              `json:"expected_portfolio_return"`
	Composition     []Composition        `json:"composition"`
	MonthlyPayment  MonthlyPaymentDetail `json:"monthly_payment_detail"`
	Plan            *StepByStepPlan      `json:"step_by_step_plan,omitempty"`
}

// Summary is the list representation of a persisted portfolio.
type Summary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	TargetAmount   float64   `json:"target_amount"`
	InitialCapital float64   `json:"initial_capital"`
	RiskProfile    string    `json:"risk_profile"`
	CreatedAt      time.Time `json:"created_at"`
}
