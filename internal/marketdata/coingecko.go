package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"CryptoViewer/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL   = "https://api.coingecko.com/api/v3"
	DefaultUserAgent = "CryptoViewerApp/1.0"
)

// CoinGeckoFetcher implements Fetcher using the CoinGecko public REST API.
type CoinGeckoFetcher struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

// NewCoinGeckoFetcher creates a fetcher with optional proxy support.
func NewCoinGeckoFetcher(baseURL, userAgent, proxyURL string, timeout time.Duration) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CoinGeckoFetcher{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// geckoMarket is one element of the /coins/markets response.
// Pointers distinguish an absent or null field from a zero value.
type geckoMarket struct {
	ID                       *string  `json:"id"`
	Name                     *string  `json:"name"`
	Symbol                   *string  `json:"symbol"`
	CurrentPrice             *float64 `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	TotalVolume              *float64 `json:"total_volume"`
}

// geckoMarketChart is the /coins/{id}/market_chart response.
type geckoMarketChart struct {
	Prices *[][]*float64 `json:"prices"`
}

// FetchTopCurrencies returns the top currencies by market cap, quoted in USD.
func (f *CoinGeckoFetcher) FetchTopCurrencies(ctx context.Context, limit int) ([]*model.Currency, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidArgument, limit)
	}
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(limit))
	q.Set("page", "1")
	q.Set("sparkline", "false")
	endpoint := fmt.Sprintf("%s/coins/markets?%s", f.BaseURL, q.Encode())

	body, ok, err := f.get(ctx, endpoint, logrus.Fields{"limit": limit})
	if err != nil || !ok {
		return nil, err
	}
	return decodeMarkets(body)
}

// FetchPriceHistory returns the USD price history of currencyID over the last days.
func (f *CoinGeckoFetcher) FetchPriceHistory(ctx context.Context, currencyID string, days int) ([]model.PriceHistorySample, error) {
	if currencyID == "" {
		return nil, fmt.Errorf("%w: currency id is empty", ErrInvalidArgument)
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidArgument, days)
	}
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", strconv.Itoa(days))
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?%s", f.BaseURL, url.PathEscape(currencyID), q.Encode())

	body, ok, err := f.get(ctx, endpoint, logrus.Fields{"currency": currencyID, "days": days})
	if err != nil || !ok {
		return nil, err
	}
	samples, err := decodeMarketChart(body)
	if err != nil {
		return nil, fmt.Errorf("history for %s: %w", currencyID, err)
	}
	return samples, nil
}

// get performs a GET and returns the body of a 2xx response. Transport
// failures are logged and reported as ok=false with a nil error; only caller
// cancellation is returned as an error.
func (f *CoinGeckoFetcher) get(ctx context.Context, endpoint string, fields logrus.Fields) ([]byte, bool, error) {
	entry := logrus.WithFields(fields).WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"endpoint":   endpoint,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "application/json")

	entry.Debug("coingecko request")
	resp, err := f.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		entry.WithError(err).Warn("request to CoinGecko failed")
		return nil, false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		entry.WithField("status", resp.StatusCode).Warn("request to CoinGecko failed")
		return nil, false, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		entry.WithError(err).Warn("read CoinGecko response")
		return nil, false, nil
	}
	return body, true, nil
}

func decodeMarkets(body []byte) ([]*model.Currency, error) {
	var markets []geckoMarket
	if err := json.Unmarshal(body, &markets); err != nil {
		return nil, fmt.Errorf("%w: markets: %v", ErrDecodePayload, err)
	}
	if markets == nil {
		return nil, fmt.Errorf("%w: markets: expected array, got null", ErrDecodePayload)
	}

	currencies := make([]*model.Currency, 0, len(markets))
	for i, m := range markets {
		if missing := m.missingField(); missing != "" {
			return nil, fmt.Errorf("%w: markets[%d]: missing %s", ErrDecodePayload, i, missing)
		}
		currencies = append(currencies, &model.Currency{
			ID:                *m.ID,
			Name:              *m.Name,
			Symbol:            *m.Symbol,
			PriceUsd:          *m.CurrentPrice,
			ChangePercent24Hr: *m.PriceChangePercentage24h,
			VolumeUsd24Hr:     *m.TotalVolume,
		})
	}
	return currencies, nil
}

func (m *geckoMarket) missingField() string {
	switch {
	case m.ID == nil || *m.ID == "":
		return "id"
	case m.Name == nil:
		return "name"
	case m.Symbol == nil:
		return "symbol"
	case m.CurrentPrice == nil:
		return "current_price"
	case m.PriceChangePercentage24h == nil:
		return "price_change_percentage_24h"
	case m.TotalVolume == nil:
		return "total_volume"
	}
	return ""
}

func decodeMarketChart(body []byte) ([]model.PriceHistorySample, error) {
	var chart geckoMarketChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("%w: market chart: %v", ErrDecodePayload, err)
	}
	if chart.Prices == nil {
		return nil, fmt.Errorf("%w: market chart: missing prices", ErrDecodePayload)
	}

	prices := *chart.Prices
	samples := make([]model.PriceHistorySample, 0, len(prices))
	for i, pair := range prices {
		if len(pair) != 2 || pair[0] == nil || pair[1] == nil {
			return nil, fmt.Errorf("%w: prices[%d]: expected [epochMillis, price]", ErrDecodePayload, i)
		}
		samples = append(samples, model.PriceHistorySample{
			Time:  time.UnixMilli(int64(*pair[0])).UTC(),
			Price: *pair[1],
		})
	}
	return samples, nil
}
