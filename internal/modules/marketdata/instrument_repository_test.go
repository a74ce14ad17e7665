package marketdata

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/aristath/invest-planner/internal/database"
	"github.com/aristath/invest-planner/internal/domain"
)

func newTestInstrumentRepository(t *testing.T) *InstrumentRepository {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, database.Migrate(conn))
	return NewInstrumentRepository(conn, zerolog.Nop())
}

func sber() domain.Instrument {
	return domain.Instrument{
		Ticker:        "SBER",
		Name:          "Sberbank",
		Class:         domain.ClassStock,
		PriceThen:     120,
		PriceNow:      150,
		ExpectedYield: 0.11,
		Volatility:    0.22,
	}
}

func TestUpsert_InsertsNewInstrument(t *testing.T) {
	repo := newTestInstrumentRepository(t)

	changed, err := repo.Upsert(sber())
	require.NoError(t, err)
	assert.True(t, changed)

	stored, err := repo.GetByTicker("SBER")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 150.0, stored.PriceNow)
	assert.False(t, stored.UpdatedAt.IsZero())
}

func TestUpsert_RejectsNewInstrumentWithoutPrices(t *testing.T) {
	repo := newTestInstrumentRepository(t)

	inst := sber()
	inst.PriceNow = 0

	changed, err := repo.Upsert(inst)
	require.NoError(t, err)
	assert.False(t, changed)

	stored, err := repo.GetByTicker("SBER")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestUpsert_ZeroPriceCarriesStoredValueForward(t *testing.T) {
	repo := newTestInstrumentRepository(t)
	_, err := repo.Upsert(sber())
	require.NoError(t, err)

	// A failed fetch comes back with a zero current price. The stored
	// price survives and the record is not flagged changed for that
	// field alone.
	stale := sber()
	stale.PriceNow = 0

	changed, err := repo.Upsert(stale)
	require.NoError(t, err)
	assert.False(t, changed)

	stored, err := repo.GetByTicker("SBER")
	require.NoError(t, err)
	assert.Equal(t, 150.0, stored.PriceNow)
}

func TestUpsert_IgnoresSubToleranceMoves(t *testing.T) {
	repo := newTestInstrumentRepository(t)
	_, err := repo.Upsert(sber())
	require.NoError(t, err)

	nudged := sber()
	nudged.PriceNow = 150.0005

	changed, err := repo.Upsert(nudged)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestUpsert_WritesSignificantMoves(t *testing.T) {
	repo := newTestInstrumentRepository(t)
	_, err := repo.Upsert(sber())
	require.NoError(t, err)

	moved := sber()
	moved.PriceNow = 155

	changed, err := repo.Upsert(moved)
	require.NoError(t, err)
	assert.True(t, changed)

	stored, err := repo.GetByTicker("SBER")
	require.NoError(t, err)
	assert.Equal(t, 155.0, stored.PriceNow)
}

func TestGetByClass(t *testing.T) {
	repo := newTestInstrumentRepository(t)

	_, err := repo.Upsert(sber())
	require.NoError(t, err)

	bond := domain.Instrument{
		Ticker: "OFZS1", Name: "Short bond", Class: domain.ClassBondShort,
		PriceThen: 900, PriceNow: 950, ExpectedYield: 0.08, Volatility: 0.05,
	}
	_, err = repo.Upsert(bond)
	require.NoError(t, err)

	stocks, err := repo.GetByClass(domain.ClassStock)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, "SBER", stocks[0].Ticker)

	bonds, err := repo.GetBonds()
	require.NoError(t, err)
	require.Len(t, bonds, 1)
	assert.Equal(t, "OFZS1", bonds[0].Ticker)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
