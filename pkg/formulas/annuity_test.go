package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthlyRate(t *testing.T) {
	// Twelve monthly compoundings reproduce the annual rate.
	monthly := MonthlyRate(0.08)
	assert.InDelta(t, 1.08, math.Pow(1+monthly, 12), 1e-12)
	assert.Equal(t, 0.0, MonthlyRate(0))
}

func TestAnnuityFactor(t *testing.T) {
	assert.Equal(t, 0.0, AnnuityFactor(0.01, 0))
	assert.Equal(t, 12.0, AnnuityFactor(0, 12))

	// Two payments at 10%: the first compounds once, 1.1 + 1 = 2.1.
	assert.InDelta(t, 2.1, AnnuityFactor(0.1, 2), 1e-12)
}

func TestCompoundGrowth(t *testing.T) {
	assert.InDelta(t, 121, CompoundGrowth(100, 0.1, 2), 1e-9)
	assert.InDelta(t, 100, CompoundGrowth(100, 0, 36), 1e-9)
}
