package marketdata

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/invest-planner/internal/domain"
	"github.com/aristath/invest-planner/pkg/formulas"
)

// minYears floors the elapsed-time denominator of the CAGR so a
// historical match only days in the past cannot blow the yield up.
const minYears = 0.1

// Estimator turns raw price data into annualized expected-yield and
// volatility figures, falling back to per-class defaults when the data
// cannot support a calculation.
type Estimator struct {
	log zerolog.Logger
}

// NewEstimator creates a new estimator
func NewEstimator(log zerolog.Logger) *Estimator {
	return &Estimator{
		log: log.With().Str("component", "estimator").Logger(),
	}
}

// ExpectedYield computes the compound annual growth rate between the
// matched historical price and the current price. The elapsed years
// come from the date actually matched, not an assumed three years.
func (e *Estimator) ExpectedYield(class domain.AssetClass, priceThen, priceNow float64, thenDate, now time.Time) float64 {
	if priceThen > 0 && priceNow > 0 {
		years := now.Sub(thenDate).Hours() / 24 / 365.25
		if years < minYears {
			years = minYears
		}
		if y := formulas.CAGR(priceThen, priceNow, years); y != 0 {
			e.log.Debug().
				Str("class", string(class)).
				Float64("yield", y).
				Float64("years", years).
				Msg("Yield from price history")
			return y
		}
	}

	fallback := FallbackYield(class)
	e.log.Debug().Str("class", string(class)).Float64("yield", fallback).Msg("Yield fallback applied")
	return fallback
}

// Volatility computes the annualized standard deviation of log daily
// returns. Requires at least two usable return observations.
func (e *Estimator) Volatility(class domain.AssetClass, prices []float64) float64 {
	returns := formulas.LogReturns(prices)
	if len(returns) >= 2 {
		if vol := formulas.AnnualizedVolatility(returns); vol > 0 {
			e.log.Debug().
				Str("class", string(class)).
				Float64("volatility", vol).
				Int("returns", len(returns)).
				Msg("Volatility from price series")
			return vol
		}
	}

	fallback := FallbackVolatility(class)
	e.log.Debug().Str("class", string(class)).Float64("volatility", fallback).Msg("Volatility fallback applied")
	return fallback
}

// FallbackYield is the per-class default expected yield used when price
// history is missing or unusable.
func FallbackYield(class domain.AssetClass) float64 {
	switch class {
	case domain.ClassBondShort:
		return 0.08
	case domain.ClassBondMedium:
		return 0.09
	case domain.ClassBondLong:
		return 0.10
	case domain.ClassStock:
		return 0.12
	case domain.ClassGold:
		return 0.06
	case domain.ClassRealEstate:
		return 0.07
	default:
		return 0.08
	}
}

// FallbackVolatility is the per-class default volatility.
func FallbackVolatility(class domain.AssetClass) float64 {
	switch {
	case class.IsBond():
		return 0.05
	case class == domain.ClassStock:
		return 0.20
	default:
		return 0.15
	}
}
