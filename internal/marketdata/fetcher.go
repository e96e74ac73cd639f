package marketdata

import (
	"context"
	"errors"

	"CryptoViewer/internal/model"
)

const (
	// DefaultTopLimit is the snapshot size used when none is configured.
	DefaultTopLimit = 10
	// DefaultHistoryDays is the history span used when none is configured.
	DefaultHistoryDays = 7
)

var (
	// ErrDecodePayload reports a success response whose body lacks a required field or array.
	ErrDecodePayload = errors.New("decode payload")
	// ErrInvalidArgument reports a non-positive limit/days or an empty currency id.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Fetcher defines the interface for fetching market data.
//
// A non-success response is not an error: implementations log it and return
// an empty result. Errors are reserved for malformed success payloads,
// invalid arguments and caller cancellation.
type Fetcher interface {
	FetchTopCurrencies(ctx context.Context, limit int) ([]*model.Currency, error)
	FetchPriceHistory(ctx context.Context, currencyID string, days int) ([]model.PriceHistorySample, error)
	Name() string
}
