package portfolio

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/aristath/invest-planner/internal/domain"
)

// BucketWeights are the target shares for one profile/horizon cell.
// Each cell must sum to 1.0.
type BucketWeights struct {
	Stocks     float64 `toml:"stocks"`
	Bonds      float64 `toml:"bonds"`
	Gold       float64 `toml:"gold"`
	RealEstate float64 `toml:"real_estate"`
}

// Weight returns the share for a bucket.
func (w BucketWeights) Weight(b Bucket) float64 {
	switch b {
	case BucketStocks:
		return w.Stocks
	case BucketBonds:
		return w.Bonds
	case BucketGold:
		return w.Gold
	case BucketRealEstate:
		return w.RealEstate
	}
	return 0
}

// Sum returns the total of all bucket shares.
func (w BucketWeights) Sum() float64 {
	return w.Stocks + w.Bonds + w.Gold + w.RealEstate
}

// HorizonWeights holds the three horizon cells for one risk profile.
type HorizonWeights struct {
	Short  BucketWeights `toml:"short"`
	Medium BucketWeights `toml:"medium"`
	Long   BucketWeights `toml:"long"`
}

func (h HorizonWeights) cell(bucket domain.HorizonBucket) BucketWeights {
	switch bucket {
	case domain.HorizonShort:
		return h.Short
	case domain.HorizonLong:
		return h.Long
	default:
		return h.Medium
	}
}

// Policy holds the allocation strategy tables: target weights per
// profile and horizon, and the stock whitelist per profile. The
// whitelists nest: every conservative pick is also available to
// moderate, and every moderate pick to aggressive.
type Policy struct {
	Conservative HorizonWeights `toml:"conservative"`
	Moderate     HorizonWeights `toml:"moderate"`
	Aggressive   HorizonWeights `toml:"aggressive"`

	Stocks StockWhitelist `toml:"stocks"`
}

// StockWhitelist lists allowed stock tickers per risk profile.
type StockWhitelist struct {
	Conservative []string `toml:"conservative"`
	Moderate     []string `toml:"moderate"`
	Aggressive   []string `toml:"aggressive"`
}

// DefaultPolicy returns the built-in allocation tables.
func DefaultPolicy() Policy {
	return Policy{
		Conservative: HorizonWeights{
			Short:  BucketWeights{Stocks: 0.10, Bonds: 0.70, Gold: 0.10, RealEstate: 0.10},
			Medium: BucketWeights{Stocks: 0.20, Bonds: 0.65, Gold: 0.08, RealEstate: 0.07},
			Long:   BucketWeights{Stocks: 0.45, Bonds: 0.45, Gold: 0.05, RealEstate: 0.05},
		},
		Moderate: HorizonWeights{
			Short:  BucketWeights{Stocks: 0.10, Bonds: 0.75, Gold: 0.08, RealEstate: 0.07},
			Medium: BucketWeights{Stocks: 0.40, Bonds: 0.50, Gold: 0.05, RealEstate: 0.05},
			Long:   BucketWeights{Stocks: 0.55, Bonds: 0.40, Gold: 0.03, RealEstate: 0.02},
		},
		Aggressive: HorizonWeights{
			Short:  BucketWeights{Stocks: 0.45, Bonds: 0.45, Gold: 0.05, RealEstate: 0.05},
			Medium: BucketWeights{Stocks: 0.55, Bonds: 0.40, Gold: 0.03, RealEstate: 0.02},
			Long:   BucketWeights{Stocks: 0.60, Bonds: 0.35, Gold: 0.03, RealEstate: 0.02},
		},
		Stocks: StockWhitelist{
			Conservative: []string{"SBER", "GAZP", "LKOH"},
			Moderate:     []string{"SBER", "GAZP", "LKOH", "GMKN", "ROSN", "MGNT"},
			Aggressive:   []string{"SBER", "GAZP", "LKOH", "GMKN", "ROSN", "MGNT", "TCSG", "TATN", "NLMK"},
		},
	}
}

// LoadPolicy reads allocation tables from a TOML file, falling back to
// the built-in defaults when path is empty.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}
	var file policyFile
	file.Allocation = DefaultPolicy()
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return Policy{}, fmt.Errorf("decoding allocation policy %s: %w", path, err)
	}
	if err := file.Allocation.Validate(); err != nil {
		return Policy{}, err
	}
	return file.Allocation, nil
}

type policyFile struct {
	Allocation Policy `toml:"allocation"`
}

// Validate checks that every weight cell sums to 1.0.
func (p Policy) Validate() error {
	profiles := map[string]HorizonWeights{
		"conservative": p.Conservative,
		"moderate":     p.Moderate,
		"aggressive":   p.Aggressive,
	}
	for name, hw := range profiles {
		for label, cell := range map[string]BucketWeights{"short": hw.Short, "medium": hw.Medium, "long": hw.Long} {
			if sum := cell.Sum(); sum < 0.999 || sum > 1.001 {
				return fmt.Errorf("allocation weights for %s/%s sum to %.4f, want 1.0", name, label, sum)
			}
		}
	}
	return nil
}

// WeightsFor resolves the target-weight cell for a profile and
// horizon. Unknown profiles resolve to the moderate row.
func (p Policy) WeightsFor(profile domain.RiskProfile, horizon domain.HorizonBucket) BucketWeights {
	switch profile {
	case domain.ProfileConservative:
		return p.Conservative.cell(horizon)
	case domain.ProfileAggressive:
		return p.Aggressive.cell(horizon)
	default:
		return p.Moderate.cell(horizon)
	}
}

// StocksFor returns the whitelist of stock tickers for a profile.
// Unknown profiles get the moderate list.
func (p Policy) StocksFor(profile domain.RiskProfile) []string {
	switch profile {
	case domain.ProfileConservative:
		return p.Stocks.Conservative
	case domain.ProfileAggressive:
		return p.Stocks.Aggressive
	default:
		return p.Stocks.Moderate
	}
}
