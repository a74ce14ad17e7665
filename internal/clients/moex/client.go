// Package moex is a thin client for the Moscow Exchange ISS API. It
// only knows how to fetch open prices; all yield and volatility math
// lives in the marketdata module.
package moex

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Market selects the ISS market segment a security trades on.
type Market string

const (
	MarketShares Market = "shares"
	MarketBonds  Market = "bonds"
)

// Client is a MOEX ISS API client
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new MOEX ISS client
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("client", "moex").Logger(),
	}
}

// issTable is the column/row table every ISS block uses.
type issTable struct {
	Columns []string        `json:"columns"`
	Data    [][]interface{} `json:"data"`
}

type marketdataResponse struct {
	Marketdata issTable `json:"marketdata"`
}

type historyResponse struct {
	History issTable `json:"history"`
}

// CurrentOpenPrice returns today's first open price above zero for the
// ticker, or 0 when the board has not printed one.
func (c *Client) CurrentOpenPrice(ticker string, market Market) (float64, error) {
	u := fmt.Sprintf("%s/iss/engines/stock/markets/%s/securities/%s.json",
		c.baseURL, market, url.PathEscape(ticker))

	var resp marketdataResponse
	if err := c.getJSON(u, &resp); err != nil {
		return 0, fmt.Errorf("failed to fetch current price: %w", err)
	}

	openIdx := columnIndex(resp.Marketdata.Columns, "OPEN")
	if openIdx < 0 {
		return 0, nil
	}

	for _, row := range resp.Marketdata.Data {
		if openIdx < len(row) {
			if price := toFloat(row[openIdx]); price > 0 {
				return price, nil
			}
		}
	}
	return 0, nil
}

// HistoricalOpenNear finds the open price on the nearest trading date
// within +/- windowDays of the target date. Weekends are skipped
// outright; other non-trading days simply return no data and the search
// widens. Returns the price and the date actually matched, or 0 when
// nothing traded inside the window.
func (c *Client) HistoricalOpenNear(ticker string, market Market, target time.Time, windowDays int) (float64, time.Time, error) {
	for offset := 0; offset <= windowDays; offset++ {
		for _, direction := range []int{0, 1, -1} {
			if offset == 0 && direction != 0 {
				continue
			}

			date := target.AddDate(0, 0, direction*offset)
			if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}

			price, err := c.historicalOpenOn(ticker, market, date)
			if err != nil {
				c.log.Debug().Err(err).Str("ticker", ticker).Time("date", date).Msg("History lookup failed, widening search")
				continue
			}
			if price > 0 {
				return price, date, nil
			}
		}
	}

	c.log.Warn().
		Str("ticker", ticker).
		Time("target", target).
		Int("window_days", windowDays).
		Msg("No trades found near target date")
	return 0, target, nil
}

func (c *Client) historicalOpenOn(ticker string, market Market, date time.Time) (float64, error) {
	day := date.Format("2006-01-02")
	u := fmt.Sprintf("%s/iss/history/engines/stock/markets/%s/securities/%s.json?from=%s&till=%s&history.columns=OPEN&iss.meta=off",
		c.baseURL, market, url.PathEscape(ticker), day, day)

	var resp historyResponse
	if err := c.getJSON(u, &resp); err != nil {
		return 0, err
	}

	for _, row := range resp.History.Data {
		if len(row) > 0 {
			if price := toFloat(row[0]); price > 0 {
				return price, nil
			}
		}
	}
	return 0, nil
}

// DailyOpens returns up to limit recent daily open prices, oldest
// first, for the volatility estimate.
func (c *Client) DailyOpens(ticker string, market Market, limit int) ([]float64, error) {
	u := fmt.Sprintf("%s/iss/history/engines/stock/markets/%s/securities/%s.json?limit=%d&history.columns=OPEN&iss.meta=off",
		c.baseURL, market, url.PathEscape(ticker), limit)

	var resp historyResponse
	if err := c.getJSON(u, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch price history: %w", err)
	}

	var prices []float64
	for _, row := range resp.History.Data {
		if len(row) > 0 {
			if price := toFloat(row[0]); price > 0 {
				prices = append(prices, price)
			}
		}
	}
	return prices, nil
}

func (c *Client) getJSON(u string, out interface{}) error {
	resp, err := c.client.Get(u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func columnIndex(columns []string, name string) int {
	for i, col := range columns {
		if col == name {
			return i
		}
	}
	return -1
}

// toFloat converts an ISS cell to a float. ISS serves nulls and the
// odd string-typed number, both of which collapse to 0.
func toFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, _ := val.Float64()
		return f
	default:
		return 0
	}
}
