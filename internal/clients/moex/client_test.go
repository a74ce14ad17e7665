package moex

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentOpenPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/iss/engines/stock/markets/shares/securities/SBER.json", r.URL.Path)
		fmt.Fprint(w, `{"marketdata":{"columns":["SECID","OPEN","LAST"],"data":[["SBER",null,251.0],["SBER",250.5,251.0]]}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	price, err := c.CurrentOpenPrice("SBER", MarketShares)
	require.NoError(t, err)
	// The null open row is skipped in favor of the first real print.
	assert.Equal(t, 250.5, price)
}

func TestCurrentOpenPrice_NoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"marketdata":{"columns":["SECID","OPEN"],"data":[]}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	price, err := c.CurrentOpenPrice("SBER", MarketShares)
	require.NoError(t, err)
	assert.Equal(t, 0.0, price)
}

func TestHistoricalOpenNear_WidensUntilTradeFound(t *testing.T) {
	// Wednesday 2023-06-14 is the target; only Friday 2023-06-16 has a
	// trade, two days out.
	traded := "2023-06-16"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("from") == traded {
			fmt.Fprint(w, `{"history":{"columns":["OPEN"],"data":[[123.4]]}}`)
			return
		}
		fmt.Fprint(w, `{"history":{"columns":["OPEN"],"data":[]}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	target := time.Date(2023, 6, 14, 0, 0, 0, 0, time.UTC)
	price, date, err := c.HistoricalOpenNear("SBER", MarketShares, target, 5)
	require.NoError(t, err)
	assert.Equal(t, 123.4, price)
	assert.Equal(t, traded, date.Format("2006-01-02"))
}

func TestHistoricalOpenNear_SkipsWeekends(t *testing.T) {
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Query().Get("from"))
		fmt.Fprint(w, `{"history":{"columns":["OPEN"],"data":[]}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	// Saturday target.
	target := time.Date(2023, 6, 17, 0, 0, 0, 0, time.UTC)
	price, _, err := c.HistoricalOpenNear("SBER", MarketShares, target, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, price)

	for _, day := range requested {
		parsed, err := time.Parse("2006-01-02", day)
		require.NoError(t, err)
		wd := parsed.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}
}

func TestDailyOpens_FiltersNonPositive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/iss/history/engines/stock/markets/bonds/securities/OFZS1.json", r.URL.Path)
		fmt.Fprint(w, `{"history":{"columns":["OPEN"],"data":[[950.0],[null],[0],[951.5]]}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	prices, err := c.DailyOpens("OFZS1", MarketBonds, 252)
	require.NoError(t, err)
	assert.Equal(t, []float64{950, 951.5}, prices)
}

func TestGetJSON_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	_, err := c.DailyOpens("SBER", MarketShares, 10)
	assert.Error(t, err)
}
