package formulas

import "math"

// MonthlyRate converts an annual compound return into its equivalent
// monthly rate: (1+annual)^(1/12) - 1.
func MonthlyRate(annualReturn float64) float64 {
	return math.Pow(1+annualReturn, 1.0/12) - 1
}

// AnnuityFactor is the future-value-of-an-ordinary-annuity multiplier:
// ((1+r)^n - 1) / r. With a zero rate it degenerates to n (the sum of
// n uncompounded payments).
func AnnuityFactor(monthlyRate float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return float64(months)
	}
	return (math.Pow(1+monthlyRate, float64(months)) - 1) / monthlyRate
}

// CompoundGrowth grows a principal at the given monthly rate over the
// given number of months.
func CompoundGrowth(principal, monthlyRate float64, months int) float64 {
	return principal * math.Pow(1+monthlyRate, float64(months))
}
