package jobs

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/aristath/invest-planner/internal/clients/moex"
	"github.com/aristath/invest-planner/internal/database"
	"github.com/aristath/invest-planner/internal/domain"
	"github.com/aristath/invest-planner/internal/modules/marketdata"
)

// issHandler serves the minimal ISS responses the sync needs.
func issHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/iss/history/"):
			if r.URL.Query().Get("from") != "" {
				fmt.Fprint(w, `{"history":{"columns":["OPEN"],"data":[[120.0]]}}`)
				return
			}
			fmt.Fprint(w, `{"history":{"columns":["OPEN"],"data":[[148.0],[150.5],[149.0],[151.0]]}}`)
		case strings.HasPrefix(r.URL.Path, "/iss/engines/"):
			fmt.Fprint(w, `{"marketdata":{"columns":["OPEN"],"data":[[150.0]]}}`)
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
		}
	}
}

func TestCatalogSync_Run(t *testing.T) {
	srv := httptest.NewServer(issHandler(t))
	defer srv.Close()

	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, database.Migrate(conn))

	repo := marketdata.NewInstrumentRepository(conn, zerolog.Nop())
	client := moex.NewClient(srv.URL, zerolog.Nop())
	estimator := marketdata.NewEstimator(zerolog.Nop())
	universe := []marketdata.UniverseEntry{
		{Ticker: "SBER", Name: "Sberbank", Class: domain.ClassStock},
	}

	job := NewCatalogSync(client, repo, estimator, universe, zerolog.Nop())
	assert.Equal(t, "catalog_sync", job.Name())
	require.NoError(t, job.Run())

	stored, err := repo.GetByTicker("SBER")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 150.0, stored.PriceNow)
	assert.Equal(t, 120.0, stored.PriceThen)
	// 120 -> 150 over ~3 years: a positive annualized yield well
	// below the raw 25% total move.
	assert.Greater(t, stored.ExpectedYield, 0.0)
	assert.Less(t, stored.ExpectedYield, 0.25)
	assert.Greater(t, stored.Volatility, 0.0)
}

func TestCatalogSync_SecondRunWithoutChangesWritesNothing(t *testing.T) {
	srv := httptest.NewServer(issHandler(t))
	defer srv.Close()

	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, database.Migrate(conn))

	repo := marketdata.NewInstrumentRepository(conn, zerolog.Nop())
	client := moex.NewClient(srv.URL, zerolog.Nop())
	universe := []marketdata.UniverseEntry{
		{Ticker: "SBER", Name: "Sberbank", Class: domain.ClassStock},
	}
	job := NewCatalogSync(client, repo, marketdata.NewEstimator(zerolog.Nop()), universe, zerolog.Nop())

	require.NoError(t, job.Run())
	first, err := repo.GetByTicker("SBER")
	require.NoError(t, err)

	require.NoError(t, job.Run())
	second, err := repo.GetByTicker("SBER")
	require.NoError(t, err)

	// Identical prices mean no rewrite and an untouched timestamp.
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
}
