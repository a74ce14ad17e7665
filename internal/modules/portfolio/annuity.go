package portfolio

import "github.com/aristath/invest-planner/pkg/formulas"

// fallbackAnnualReturn stands in when the portfolio expected return is
// unusable for the annuity calculation.
const fallbackAnnualReturn = 0.08

// CalculateMonthlyPayment solves for the level monthly contribution
// that, together with the starting capital compounded at the same
// monthly rate, reaches futureGoal after termMonths. A starting
// capital already covering the goal yields a zero payment.
func CalculateMonthlyPayment(futureGoal float64, termMonths int, annualReturn float64, startingCapital float64) MonthlyPaymentDetail {
	if annualReturn <= 0 {
		annualReturn = fallbackAnnualReturn
	}
	if termMonths <= 0 {
		termMonths = 1
	}

	monthlyRate := formulas.MonthlyRate(annualReturn)
	factor := formulas.AnnuityFactor(monthlyRate, termMonths)

	var futureCapital float64
	if startingCapital > 0 {
		futureCapital = formulas.CompoundGrowth(startingCapital, monthlyRate, termMonths)
	}

	var payment float64
	if futureCapital < futureGoal && factor > 0 {
		payment = (futureGoal - futureCapital) / factor
	}

	return MonthlyPaymentDetail{
		MonthlyPayment: payment,
		FutureCapital:  futureCapital,
		TotalMonths:    termMonths,
		MonthlyRate:    monthlyRate,
		AnnuityFactor:  factor,
	}
}
