package portfolio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/invest-planner/internal/domain"
)

func TestDefaultPolicy_CellsSumToOne(t *testing.T) {
	policy := DefaultPolicy()
	require.NoError(t, policy.Validate())

	profiles := []domain.RiskProfile{domain.ProfileConservative, domain.ProfileModerate, domain.ProfileAggressive}
	horizons := []domain.HorizonBucket{domain.HorizonShort, domain.HorizonMedium, domain.HorizonLong}

	for _, profile := range profiles {
		for _, horizon := range horizons {
			cell := policy.WeightsFor(profile, horizon)
			assert.InDelta(t, 1.0, cell.Sum(), 1e-9, "%s/%s", profile, horizon)
		}
	}
}

func TestPolicy_UnknownProfileFallsBackToModerate(t *testing.T) {
	policy := DefaultPolicy()

	cell := policy.WeightsFor(domain.RiskProfile("mystery"), domain.HorizonMedium)
	assert.Equal(t, policy.Moderate.Medium, cell)

	assert.Equal(t, policy.Stocks.Moderate, policy.StocksFor(domain.RiskProfile("mystery")))
}

func TestPolicy_WhitelistsNest(t *testing.T) {
	policy := DefaultPolicy()

	moderate := make(map[string]bool)
	for _, ticker := range policy.Stocks.Moderate {
		moderate[ticker] = true
	}
	for _, ticker := range policy.Stocks.Conservative {
		assert.True(t, moderate[ticker], "conservative pick %s missing from moderate", ticker)
	}

	aggressive := make(map[string]bool)
	for _, ticker := range policy.Stocks.Aggressive {
		aggressive[ticker] = true
	}
	for _, ticker := range policy.Stocks.Moderate {
		assert.True(t, aggressive[ticker], "moderate pick %s missing from aggressive", ticker)
	}
}

func TestLoadPolicy_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.toml")
	content := `
[allocation.conservative.short]
stocks = 0.2
bonds = 0.6
gold = 0.1
real_estate = 0.1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	policy, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, policy.Conservative.Short.Stocks, 1e-9)
	// Untouched cells keep their defaults.
	assert.Equal(t, DefaultPolicy().Aggressive.Long, policy.Aggressive.Long)
}

func TestLoadPolicy_RejectsBrokenWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.toml")
	content := `
[allocation.moderate.long]
stocks = 0.9
bonds = 0.9
gold = 0.0
real_estate = 0.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadPolicy(path)
	assert.Error(t, err)
}

func TestLoadPolicy_EmptyPathUsesDefaults(t *testing.T) {
	policy, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), policy)
}
