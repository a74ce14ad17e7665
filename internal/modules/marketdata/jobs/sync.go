package jobs

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/invest-planner/internal/clients/moex"
	"github.com/aristath/invest-planner/internal/domain"
	"github.com/aristath/invest-planner/internal/modules/marketdata"
)

const (
	historyLookbackYears = 3
	historyWindowDays    = 60
	volatilitySeriesLen  = 252
)

// CatalogSync refreshes the instrument catalog from MOEX: current and
// three-year-back open prices, plus a trading-year series for the
// volatility estimate.
type CatalogSync struct {
	client    *moex.Client
	repo      *marketdata.InstrumentRepository
	estimator *marketdata.Estimator
	universe  []marketdata.UniverseEntry
	log       zerolog.Logger
}

// NewCatalogSync creates the catalog sync job
func NewCatalogSync(client *moex.Client, repo *marketdata.InstrumentRepository, estimator *marketdata.Estimator, universe []marketdata.UniverseEntry, log zerolog.Logger) *CatalogSync {
	return &CatalogSync{
		client:    client,
		repo:      repo,
		estimator: estimator,
		universe:  universe,
		log:       log.With().Str("job", "catalog_sync").Logger(),
	}
}

// Name implements scheduler.Job
func (j *CatalogSync) Name() string {
	return "catalog_sync"
}

// Run fetches and refreshes every instrument in the universe. A
// failure on one instrument does not abort the others; the repository's
// carry-forward policy absorbs partial fetches.
func (j *CatalogSync) Run() error {
	now := time.Now()
	target := now.AddDate(-historyLookbackYears, 0, 0)

	updated := 0
	for _, entry := range j.universe {
		inst, err := j.fetchOne(entry, now, target)
		if err != nil {
			j.log.Warn().Err(err).Str("ticker", entry.Ticker).Msg("Failed to fetch instrument data")
			continue
		}

		changed, err := j.repo.Upsert(inst)
		if err != nil {
			j.log.Error().Err(err).Str("ticker", entry.Ticker).Msg("Failed to store instrument")
			continue
		}
		if changed {
			updated++
		}
	}

	j.log.Info().Int("universe", len(j.universe)).Int("updated", updated).Msg("Catalog sync finished")
	return nil
}

func (j *CatalogSync) fetchOne(entry marketdata.UniverseEntry, now, target time.Time) (domain.Instrument, error) {
	market := entry.Market()

	priceNow, err := j.client.CurrentOpenPrice(entry.Ticker, market)
	if err != nil {
		j.log.Warn().Err(err).Str("ticker", entry.Ticker).Msg("Current price unavailable")
	}

	priceThen, thenDate, err := j.client.HistoricalOpenNear(entry.Ticker, market, target, historyWindowDays)
	if err != nil {
		j.log.Warn().Err(err).Str("ticker", entry.Ticker).Msg("Historical price unavailable")
	}

	series, err := j.client.DailyOpens(entry.Ticker, market, volatilitySeriesLen)
	if err != nil {
		j.log.Warn().Err(err).Str("ticker", entry.Ticker).Msg("Price series unavailable")
	}

	return domain.Instrument{
		Ticker:        entry.Ticker,
		Name:          entry.Name,
		Class:         entry.Class,
		PriceThen:     priceThen,
		PriceNow:      priceNow,
		ExpectedYield: j.estimator.ExpectedYield(entry.Class, priceThen, priceNow, thenDate, now),
		Volatility:    j.estimator.Volatility(entry.Class, series),
	}, nil
}
