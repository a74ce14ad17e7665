package portfolio

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/invest-planner/internal/domain"
)

// fallbackPortfolioReturn is used when the weighted expected return of
// the composition comes out non-positive, which happens when the
// catalog has no usable yield data.
const fallbackPortfolioReturn = 0.08

// fallbackStockPicks caps how many catalog stocks stand in when none
// of the whitelist tickers is available.
const fallbackStockPicks = 4

// Catalog provides the instruments the engine can allocate into.
type Catalog interface {
	GetByClass(class domain.AssetClass) ([]domain.Instrument, error)
}

// Engine turns a risk profile, horizon and budget into a concrete
// portfolio composition with integer quantities.
type Engine struct {
	catalog Catalog
	policy  Policy
	log     zerolog.Logger
}

// NewEngine creates an allocation engine.
func NewEngine(catalog Catalog, policy Policy, log zerolog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		policy:  policy,
		log:     log.With().Str("component", "allocation_engine").Logger(),
	}
}

// BuildComposition allocates totalBudget across the target buckets for
// the given profile and horizon. Buckets whose instruments are all too
// expensive for their share come out with zero assets; the shortfall
// shows up as ActualWeight below TargetWeight.
func (e *Engine) BuildComposition(profile domain.RiskProfile, horizon domain.HorizonBucket, totalBudget float64) ([]Composition, error) {
	weights := e.policy.WeightsFor(profile, horizon)

	compositions := make([]Composition, 0, 4)
	var invested float64
	for _, bucket := range Buckets() {
		target := weights.Weight(bucket)
		budget := totalBudget * target

		assets, err := e.selectAssets(bucket, profile, horizon, budget)
		if err != nil {
			return nil, err
		}

		var amount float64
		for _, a := range assets {
			amount += a.Amount
		}
		invested += amount

		compositions = append(compositions, Composition{
			Bucket:       bucket,
			TargetWeight: target,
			Amount:       amount,
			Assets:       assets,
		})
	}

	if totalBudget > 0 {
		for i := range compositions {
			compositions[i].ActualWeight = compositions[i].Amount / totalBudget
		}
	}

	e.log.Debug().
		Str("profile", string(profile)).
		Str("horizon", string(horizon)).
		Float64("budget", totalBudget).
		Float64("invested", invested).
		Msg("composition built")

	return compositions, nil
}

// ExpectedReturn computes the portfolio expected return: within each
// bucket assets are weighted by their selection weight, buckets by
// their target weight. Non-positive results fall back to a flat 8%.
func (e *Engine) ExpectedReturn(compositions []Composition) float64 {
	var total float64
	for _, comp := range compositions {
		if len(comp.Assets) == 0 {
			continue
		}
		var bucketReturn, weightSum float64
		for _, a := range comp.Assets {
			if a.ExpectedReturn <= 0 {
				continue
			}
			bucketReturn += a.ExpectedReturn * a.Weight
			weightSum += a.Weight
		}
		if weightSum > 0 {
			bucketReturn /= weightSum
		}
		total += bucketReturn * comp.TargetWeight
	}
	if total <= 0 {
		return fallbackPortfolioReturn
	}
	return total
}

func (e *Engine) selectAssets(bucket Bucket, profile domain.RiskProfile, horizon domain.HorizonBucket, budget float64) ([]AssetAllocation, error) {
	switch bucket {
	case BucketStocks:
		return e.selectStocks(profile, budget)
	case BucketBonds:
		return e.selectBonds(horizon, budget)
	case BucketGold:
		return e.selectSingle(domain.ClassGold, budget)
	case BucketRealEstate:
		return e.selectSingle(domain.ClassRealEstate, budget)
	}
	return nil, fmt.Errorf("unknown allocation bucket %q", bucket)
}

// selectStocks splits the stock budget equally across the whitelist
// stocks available in the catalog.
func (e *Engine) selectStocks(profile domain.RiskProfile, budget float64) ([]AssetAllocation, error) {
	stocks, err := e.catalog.GetByClass(domain.ClassStock)
	if err != nil {
		return nil, fmt.Errorf("loading stocks: %w", err)
	}

	allowed := make(map[string]bool, len(stocks))
	for _, ticker := range e.policy.StocksFor(profile) {
		allowed[ticker] = true
	}
	picks := make([]domain.Instrument, 0, len(allowed))
	for _, s := range stocks {
		if allowed[s.Ticker] {
			picks = append(picks, s)
		}
	}
	if len(picks) == 0 {
		// None of the whitelist tickers is in the catalog. Fall back
		// to the first few catalog stocks rather than leaving the
		// stock bucket empty.
		picks = firstN(stocks, fallbackStockPicks)
	}
	if len(picks) == 0 {
		return nil, nil
	}

	weight := 1.0 / float64(len(picks))
	return sizeAllocations(picks, uniformWeights(len(picks), weight), budget), nil
}

// selectBonds blends bond maturities to match the horizon: short-term
// portfolios stay in short bonds, medium adds medium maturities, long
// shifts most of the budget into long bonds.
func (e *Engine) selectBonds(horizon domain.HorizonBucket, budget float64) ([]AssetAllocation, error) {
	byClass := make(map[domain.AssetClass][]domain.Instrument, 3)
	for _, class := range domain.BondClasses() {
		bonds, err := e.catalog.GetByClass(class)
		if err != nil {
			return nil, fmt.Errorf("loading %s bonds: %w", class, err)
		}
		byClass[class] = bonds
	}

	var picks []domain.Instrument
	var weights []float64
	switch horizon {
	case domain.HorizonShort:
		picks = firstN(byClass[domain.ClassBondShort], 2)
		weights = []float64{0.6, 0.4}
	case domain.HorizonMedium:
		picks = append(picks, firstN(byClass[domain.ClassBondShort], 1)...)
		picks = append(picks, firstN(byClass[domain.ClassBondMedium], 2)...)
		weights = []float64{0.3, 0.35, 0.35}
	default:
		picks = append(picks, firstN(byClass[domain.ClassBondShort], 1)...)
		picks = append(picks, firstN(byClass[domain.ClassBondMedium], 1)...)
		picks = append(picks, firstN(byClass[domain.ClassBondLong], 1)...)
		weights = []float64{0.2, 0.3, 0.5}
	}
	if len(picks) == 0 {
		return nil, nil
	}
	if len(picks) != len(weights) {
		// Catalog thinner than the blend expects: fall back to an
		// equal split across what is available.
		weights = uniformWeights(len(picks), 1.0/float64(len(picks)))
	}

	return sizeAllocations(picks, weights, budget), nil
}

// selectSingle puts the whole bucket budget into the first available
// instrument of the class.
func (e *Engine) selectSingle(class domain.AssetClass, budget float64) ([]AssetAllocation, error) {
	instruments, err := e.catalog.GetByClass(class)
	if err != nil {
		return nil, fmt.Errorf("loading %s instruments: %w", class, err)
	}
	if len(instruments) == 0 {
		return nil, nil
	}
	return sizeAllocations(instruments[:1], []float64{1.0}, budget), nil
}

// sizeAllocations turns instrument picks and in-bucket weights into
// integer purchase quantities. Lines whose share cannot buy a single
// unit are dropped.
func sizeAllocations(picks []domain.Instrument, weights []float64, budget float64) []AssetAllocation {
	assets := make([]AssetAllocation, 0, len(picks))
	for i, inst := range picks {
		if inst.PriceNow <= 0 {
			continue
		}
		share := budget * weights[i]
		quantity := int(math.Floor(share / inst.PriceNow))
		if quantity <= 0 {
			continue
		}
		assets = append(assets, AssetAllocation{
			Ticker:         inst.Ticker,
			Name:           inst.Name,
			Class:          inst.Class,
			Quantity:       quantity,
			Price:          inst.PriceNow,
			Weight:         weights[i],
			Amount:         float64(quantity) * inst.PriceNow,
			ExpectedReturn: inst.ExpectedYield,
		})
	}
	return assets
}

func firstN(instruments []domain.Instrument, n int) []domain.Instrument {
	if len(instruments) < n {
		n = len(instruments)
	}
	return instruments[:n]
}

func uniformWeights(n int, w float64) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = w
	}
	return weights
}
