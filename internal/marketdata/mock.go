package marketdata

import (
	"context"
	"fmt"
	"math"
	"time"

	"CryptoViewer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Currencies []*model.Currency
	History    map[string][]model.PriceHistorySample
	// HistoryErr, when set, is returned by every FetchPriceHistory call.
	HistoryErr error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchTopCurrencies(ctx context.Context, limit int) ([]*model.Currency, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidArgument, limit)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := m.Currencies
	if src == nil {
		src = defaultMockCurrencies()
	}
	if len(src) > limit {
		src = src[:limit]
	}
	out := make([]*model.Currency, len(src))
	for i, c := range src {
		out[i] = c.Clone()
	}
	return out, nil
}

func (m *MockFetcher) FetchPriceHistory(ctx context.Context, currencyID string, days int) ([]model.PriceHistorySample, error) {
	if currencyID == "" {
		return nil, fmt.Errorf("%w: currency id is empty", ErrInvalidArgument)
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidArgument, days)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	if m.History != nil {
		if h, ok := m.History[currencyID]; ok {
			return append([]model.PriceHistorySample(nil), h...), nil
		}
		return nil, nil
	}
	base := 100.0
	for _, c := range m.Currencies {
		if c.ID == currencyID {
			base = c.PriceUsd
		}
	}
	return generateMockHistory(base, days), nil
}

func defaultMockCurrencies() []*model.Currency {
	return []*model.Currency{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", PriceUsd: 65000, ChangePercent24Hr: 2.5, VolumeUsd24Hr: 3.0e10},
		{ID: "ethereum", Name: "Ethereum", Symbol: "eth", PriceUsd: 3200, ChangePercent24Hr: -1.2, VolumeUsd24Hr: 1.5e10},
		{ID: "tether", Name: "Tether", Symbol: "usdt", PriceUsd: 1, ChangePercent24Hr: 0, VolumeUsd24Hr: 4.0e10},
	}
}

// generateMockHistory produces hourly samples oscillating within 2% of basePrice.
func generateMockHistory(basePrice float64, days int) []model.PriceHistorySample {
	count := days * 24
	start := time.Now().UTC().Add(-time.Duration(count) * time.Hour).Truncate(time.Hour)
	samples := make([]model.PriceHistorySample, count)
	for i := 0; i < count; i++ {
		samples[i] = model.PriceHistorySample{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Price: basePrice * (1 + 0.02*math.Sin(float64(i)/12)),
		}
	}
	return samples
}
