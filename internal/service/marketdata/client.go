package marketdata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"CalmTrader/internal/domain/models"
	xhttp "CalmTrader/pkg/http"
	applogger "CalmTrader/pkg/logger"
	"CalmTrader/pkg/metrics"
)

// ErrNoData covers every failed lookup: empty history, transport failure,
// bad payload, unknown symbol. Callers treat them all as "no data"; the
// underlying cause is only logged.
var ErrNoData = errors.New("marketdata: no data for ticker")

// Client fetches a trailing daily OHLC window from the Yahoo v8 chart API
// and reduces it to a MarketSnapshot. One outbound request per call, no
// retry, no caching.
type Client struct {
	http         *xhttp.Client
	baseURL      string
	lookbackDays int
	l            *applogger.Logger
	m            *metrics.Recorder
}

// New creates a market data client.
func New(baseURL string, lookbackDays int, timeout time.Duration) *Client {
	if lookbackDays <= 0 {
		lookbackDays = 8
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:         xhttp.NewClient(xhttp.WithTimeout(timeout)),
		baseURL:      strings.TrimRight(baseURL, "/"),
		lookbackDays: lookbackDays,
	}
}

// SetLogger injects a structured logger.
func (c *Client) SetLogger(l *applogger.Logger) { c.l = l }

// SetMetrics injects a metrics recorder.
func (c *Client) SetMetrics(m *metrics.Recorder) { c.m = m }

// chartResponse is the Yahoo v8 chart payload, reduced to the fields used.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  any           `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol    string `json:"symbol"`
		LongName  string `json:"longName"`
		ShortName string `json:"shortName"`
		Sector    string `json:"sector"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []chartQuote `json:"quote"`
	} `json:"indicators"`
}

type chartQuote struct {
	Open  []float64 `json:"open"`
	High  []float64 `json:"high"`
	Low   []float64 `json:"low"`
	Close []float64 `json:"close"`
}

// Fetch retrieves the configured trailing window for ticker and reduces it
// to a snapshot. Any failure yields ErrNoData.
func (c *Client) Fetch(ctx context.Context, ticker string) (*models.MarketSnapshot, error) {
	return c.FetchWindow(ctx, ticker, c.lookbackDays)
}

// FetchWindow is Fetch with an explicit trailing window in calendar days.
func (c *Client) FetchWindow(ctx context.Context, ticker string, days int) (*models.MarketSnapshot, error) {
	start := time.Now()
	snap, err := c.fetch(ctx, ticker, days)
	if c.m != nil {
		c.m.RecordLatency("market_fetch", time.Since(start).Seconds())
		if err != nil {
			c.m.RecordError("market_fetch")
		} else {
			c.m.RecordLastPrice(snap.Ticker, snap.CurrentPrice)
		}
	}
	return snap, err
}

func (c *Client) fetch(ctx context.Context, ticker string, days int) (*models.MarketSnapshot, error) {
	now := time.Now()
	// The default window is a week plus one day so it always spans at least
	// one trading day, weekends and holidays included.
	from := now.AddDate(0, 0, -days)

	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(ticker)),
		Headers: map[string]string{
			"User-Agent": "calmtrader/1.0",
		},
		QueryParams: map[string][]string{
			"period1":  {strconv.FormatInt(from.Unix(), 10)},
			"period2":  {strconv.FormatInt(now.Unix(), 10)},
			"interval": {"1d"},
		},
	}, &resp)
	if err != nil {
		c.debugf(ticker, "chart request failed", err)
		return nil, ErrNoData
	}

	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		c.debugf(ticker, "empty chart result", nil)
		return nil, ErrNoData
	}

	result := resp.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	closes := validPrices(quote.Close)
	if len(closes) == 0 {
		c.debugf(ticker, "no usable closes in window", nil)
		return nil, ErrNoData
	}

	current := closes[len(closes)-1]
	weekAgo := closes[0]

	change := math.NaN()
	if weekAgo != 0 {
		change = (current - weekAgo) / weekAgo * 100
	}

	high := seriesMax(quote.High)
	low := seriesMin(quote.Low)
	if high == 0 && low == 0 {
		// Some thin listings return only closes.
		high = seriesMax(quote.Close)
		low = seriesMin(quote.Close)
	}

	symbol := result.Meta.Symbol
	if symbol == "" {
		symbol = ticker
	}
	symbol = strings.ToUpper(symbol)

	name := result.Meta.LongName
	if name == "" {
		name = result.Meta.ShortName
	}
	if name == "" {
		name = symbol
	}

	sector := result.Meta.Sector
	if sector == "" {
		sector = "Unknown"
	}

	return &models.MarketSnapshot{
		Ticker:        symbol,
		CompanyName:   name,
		CurrentPrice:  current,
		WeekChangePct: change,
		WeekHigh:      high,
		WeekLow:       low,
		Sector:        sector,
	}, nil
}

func (c *Client) debugf(ticker, msg string, err error) {
	if c.l == nil {
		return
	}
	fields := []applogger.Field{applogger.String("ticker", ticker)}
	if err != nil {
		fields = append(fields, applogger.Error(err))
	}
	c.l.Debug("marketdata: "+msg, fields...)
}

// validPrices filters out the zero entries Yahoo emits for missing points
// (JSON nulls decode to zero).
func validPrices(in []float64) []float64 {
	out := make([]float64, 0, len(in))
	for _, v := range in {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}

func seriesMax(in []float64) float64 {
	var max float64
	for _, v := range in {
		if v > max {
			max = v
		}
	}
	return max
}

func seriesMin(in []float64) float64 {
	min := math.Inf(1)
	for _, v := range in {
		if v > 0 && v < min {
			min = v
		}
	}
	if math.IsInf(min, 1) {
		return 0
	}
	return min
}
