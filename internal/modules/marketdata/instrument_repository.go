package marketdata

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/invest-planner/internal/domain"
)

// updateTolerance is the minimum move in any numeric field before an
// update is written. Smaller moves are churn, not data.
const updateTolerance = 0.001

// InstrumentRepository handles the instrument catalog
type InstrumentRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewInstrumentRepository creates a new instrument repository
func NewInstrumentRepository(db *sql.DB, log zerolog.Logger) *InstrumentRepository {
	return &InstrumentRepository{
		db:  db,
		log: log.With().Str("repo", "instrument").Logger(),
	}
}

// GetAll returns the whole catalog
func (r *InstrumentRepository) GetAll() ([]domain.Instrument, error) {
	return r.query("SELECT id, ticker, name, class, price_then, price_now, expected_yield, volatility, updated_at FROM instruments ORDER BY ticker")
}

// GetByClass returns all instruments of one asset class
func (r *InstrumentRepository) GetByClass(class domain.AssetClass) ([]domain.Instrument, error) {
	return r.query("SELECT id, ticker, name, class, price_then, price_now, expected_yield, volatility, updated_at FROM instruments WHERE class = ? ORDER BY ticker", string(class))
}

// GetBonds returns all instruments in any bond maturity bucket
func (r *InstrumentRepository) GetBonds() ([]domain.Instrument, error) {
	return r.query("SELECT id, ticker, name, class, price_then, price_now, expected_yield, volatility, updated_at FROM instruments WHERE class IN (?, ?, ?) ORDER BY ticker",
		string(domain.ClassBondShort), string(domain.ClassBondMedium), string(domain.ClassBondLong))
}

// GetByTicker returns one instrument, or nil when absent
func (r *InstrumentRepository) GetByTicker(ticker string) (*domain.Instrument, error) {
	rows, err := r.query("SELECT id, ticker, name, class, price_then, price_now, expected_yield, volatility, updated_at FROM instruments WHERE ticker = ?", ticker)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Upsert writes a refreshed instrument into the catalog.
//
// Staleness policy: a freshly fetched zero never overwrites a stored
// non-zero value — the previous figure is carried forward instead. The
// row is rewritten only when at least one numeric field moves by more
// than the tolerance, which preserves updated_at as a meaningful
// freshness marker. Returns whether anything was written.
func (r *InstrumentRepository) Upsert(inst domain.Instrument) (bool, error) {
	existing, err := r.GetByTicker(inst.Ticker)
	if err != nil {
		return false, err
	}

	if existing == nil {
		if inst.PriceNow <= 0 || inst.PriceThen <= 0 {
			r.log.Warn().Str("ticker", inst.Ticker).Msg("Skipping new instrument without valid prices")
			return false, nil
		}
		_, err := r.db.Exec(
			`INSERT INTO instruments (ticker, name, class, price_then, price_now, expected_yield, volatility, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			inst.Ticker, inst.Name, string(inst.Class),
			inst.PriceThen, inst.PriceNow, inst.ExpectedYield, inst.Volatility,
			time.Now().UTC(),
		)
		if err != nil {
			return false, fmt.Errorf("failed to insert instrument: %w", err)
		}
		return true, nil
	}

	merged := carryForward(inst, *existing)

	if !significantChange(*existing, merged) {
		return false, nil
	}

	_, err = r.db.Exec(
		`UPDATE instruments
		 SET name = ?, class = ?, price_then = ?, price_now = ?, expected_yield = ?, volatility = ?, updated_at = ?
		 WHERE ticker = ?`,
		merged.Name, string(merged.Class),
		merged.PriceThen, merged.PriceNow, merged.ExpectedYield, merged.Volatility,
		time.Now().UTC(), merged.Ticker,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update instrument: %w", err)
	}
	return true, nil
}

// carryForward retains stored non-zero values wherever the fresh fetch
// came back empty.
func carryForward(fresh, stored domain.Instrument) domain.Instrument {
	if fresh.PriceNow <= 0 && stored.PriceNow > 0 {
		fresh.PriceNow = stored.PriceNow
	}
	if fresh.PriceThen <= 0 && stored.PriceThen > 0 {
		fresh.PriceThen = stored.PriceThen
	}
	if fresh.ExpectedYield <= 0 && stored.ExpectedYield > 0 {
		fresh.ExpectedYield = stored.ExpectedYield
	}
	if fresh.Volatility <= 0 && stored.Volatility > 0 {
		fresh.Volatility = stored.Volatility
	}
	return fresh
}

func significantChange(old, new domain.Instrument) bool {
	return math.Abs(old.PriceNow-new.PriceNow) > updateTolerance ||
		math.Abs(old.PriceThen-new.PriceThen) > updateTolerance ||
		math.Abs(old.ExpectedYield-new.ExpectedYield) > updateTolerance ||
		math.Abs(old.Volatility-new.Volatility) > updateTolerance
}

func (r *InstrumentRepository) query(q string, args ...interface{}) ([]domain.Instrument, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query instruments: %w", err)
	}
	defer rows.Close()

	var instruments []domain.Instrument
	for rows.Next() {
		var inst domain.Instrument
		var class string
		if err := rows.Scan(&inst.ID, &inst.Ticker, &inst.Name, &class,
			&inst.PriceThen, &inst.PriceNow, &inst.ExpectedYield, &inst.Volatility, &inst.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan instrument: %w", err)
		}
		inst.Class = domain.AssetClass(class)
		instruments = append(instruments, inst)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instruments: %w", err)
	}
	return instruments, nil
}
