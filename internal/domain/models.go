package domain

import "time"

// AssetClass identifies the broad class an instrument belongs to.
// Bonds are split by maturity bucket because the allocation engine
// blends them differently depending on the investment horizon.
type AssetClass string

const (
	ClassStock      AssetClass = "stock"
	ClassBondShort  AssetClass = "bond_short"
	ClassBondMedium AssetClass = "bond_medium"
	ClassBondLong   AssetClass = "bond_long"
	ClassGold       AssetClass = "gold"
	ClassRealEstate AssetClass = "real_estate"
)

// IsBond reports whether the class is any of the bond maturity buckets.
func (c AssetClass) IsBond() bool {
	return c == ClassBondShort || c == ClassBondMedium || c == ClassBondLong
}

// BondClasses lists the bond maturity buckets from shortest to longest.
func BondClasses() []AssetClass {
	return []AssetClass{ClassBondShort, ClassBondMedium, ClassBondLong}
}

// RiskProfile is the investor classification produced by the risk profiler.
type RiskProfile string

const (
	ProfileConservative RiskProfile = "conservative"
	ProfileModerate     RiskProfile = "moderate"
	ProfileAggressive   RiskProfile = "aggressive"
)

// HorizonBucket is the coarse classification of the investment term.
type HorizonBucket string

const (
	HorizonShort  HorizonBucket = "short"  // <= 3 years
	HorizonMedium HorizonBucket = "medium" // <= 7 years
	HorizonLong   HorizonBucket = "long"   // > 7 years
)

// HorizonForTerm buckets an investment term given in months.
func HorizonForTerm(termMonths int) HorizonBucket {
	switch {
	case termMonths <= 36:
		return HorizonShort
	case termMonths <= 84:
		return HorizonMedium
	default:
		return HorizonLong
	}
}

// HorizonForYears buckets an investment term given in years.
func HorizonForYears(years float64) HorizonBucket {
	switch {
	case years <= 3:
		return HorizonShort
	case years <= 7:
		return HorizonMedium
	default:
		return HorizonLong
	}
}

// Label returns the human-readable horizon label used in responses.
func (h HorizonBucket) Label() string {
	switch h {
	case HorizonShort:
		return "up to 3 years"
	case HorizonMedium:
		return "3-7 years"
	case HorizonLong:
		return "over 7 years"
	}
	return ""
}

// Instrument is a tradable instrument from the market-data catalog.
// PriceThen is the historical reference price (~3 years back, nearest
// trading date), PriceNow the latest open. Yield and volatility are
// annualized by the estimator before the instrument is stored.
type Instrument struct {
	ID            int64      `json:"id"`
	Ticker        string     `json:"ticker"`
	Name          string     `json:"name"`
	Class         AssetClass `json:"class"`
	PriceThen     float64    `json:"price_then"`
	PriceNow      float64    `json:"price_now"`
	ExpectedYield float64    `json:"expected_yield"`
	Volatility    float64    `json:"volatility"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Goal is the user's financial goal as produced by the conversational
// intake. Immutable input to the planner.
type Goal struct {
	TermMonths      int     `json:"term_months"`
	TargetSum       float64 `json:"target_sum"`
	StartingCapital float64 `json:"starting_capital"`
	Reason          string  `json:"reason"`
}

// GoalFactors are risk-profiling factors derived from the goal.
// Both are answer letters on the same A/B/C scale as questionnaire
// answers: horizon A means a short term, capital size A a small capital.
type GoalFactors struct {
	Horizon     string `json:"horizon"`
	CapitalSize string `json:"capital_size"`
}

// FactorsFromGoal converts a goal into risk factors. The numeric goal
// term is considered more reliable than any questionnaire answer, so
// these factors override the questionnaire-derived horizon downstream.
func FactorsFromGoal(g Goal) GoalFactors {
	var horizon string
	switch {
	case g.TermMonths <= 36:
		horizon = "A"
	case g.TermMonths <= 84:
		horizon = "B"
	default:
		horizon = "C"
	}

	var capitalSize string
	switch {
	case g.StartingCapital < 1_000_000:
		capitalSize = "A"
	case g.StartingCapital <= 5_000_000:
		capitalSize = "B"
	default:
		capitalSize = "C"
	}

	return GoalFactors{Horizon: horizon, CapitalSize: capitalSize}
}

// HorizonBucket maps the factor letter back to a horizon bucket.
func (f GoalFactors) HorizonBucket() HorizonBucket {
	switch f.Horizon {
	case "A":
		return HorizonShort
	case "B":
		return HorizonMedium
	default:
		return HorizonLong
	}
}
