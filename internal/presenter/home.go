package presenter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"CryptoViewer/internal/catalog"
	"CryptoViewer/internal/marketdata"
	"CryptoViewer/internal/model"
	"CryptoViewer/internal/recorder"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Home backs the currency list screen.
type Home struct {
	Fetcher  marketdata.Fetcher
	Catalog  *catalog.Catalog
	Recorder recorder.Recorder
	Limit    int

	mu        sync.Mutex
	listeners []func(filtered []*model.Currency)
}

// NewHome creates a Home over an existing catalog.
func NewHome(f marketdata.Fetcher, cat *catalog.Catalog, rec recorder.Recorder, limit int) *Home {
	if limit <= 0 {
		limit = marketdata.DefaultTopLimit
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Home{Fetcher: f, Catalog: cat, Recorder: rec, Limit: limit}
}

// OnChange registers fn to receive the filtered list after every change.
func (h *Home) OnChange(fn func(filtered []*model.Currency)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// LoadCatalog fetches a fresh snapshot and replaces the catalog with it. A
// failed request leaves an empty catalog; a malformed response is returned as
// an error and leaves the catalog untouched.
func (h *Home) LoadCatalog(ctx context.Context) error {
	evt := &recorder.SnapshotEvent{
		RequestID: uuid.NewString(),
		Source:    h.Fetcher.Name(),
		Limit:     h.Limit,
	}
	log := logrus.WithFields(logrus.Fields{"request_id": evt.RequestID, "source": evt.Source})

	currencies, err := h.Fetcher.FetchTopCurrencies(ctx, h.Limit)
	if err != nil {
		evt.Outcome = recorder.OutcomeFailed
		evt.Error = err.Error()
		h.record(evt)
		if !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("load catalog")
		}
		return fmt.Errorf("load catalog: %w", err)
	}

	h.Catalog.Load(currencies)
	evt.Count = len(currencies)
	evt.Outcome = recorder.OutcomeLoaded
	if len(currencies) == 0 {
		evt.Outcome = recorder.OutcomeEmpty
	}
	h.record(evt)
	log.WithField("count", len(currencies)).Info("catalog loaded")

	h.notify()
	return nil
}

// Search applies text as the live filter and returns the filtered list.
func (h *Home) Search(text string) []*model.Currency {
	h.Catalog.SetSearchText(text)
	h.notify()
	return h.Catalog.Filtered()
}

// Currencies returns the filtered list.
func (h *Home) Currencies() []*model.Currency {
	return h.Catalog.Filtered()
}

// SelectCurrency records id as the active selection. Ids absent from the
// catalog are accepted and resolved to a bare record so history can still be
// fetched by id.
func (h *Home) SelectCurrency(id string) *model.Currency {
	cur, ok := h.Catalog.Lookup(id)
	if !ok {
		logrus.WithField("currency", id).Warn("selected currency is not in the catalog")
		cur = &model.Currency{ID: id, Name: id}
	}
	h.Catalog.Select(cur)
	return cur
}

func (h *Home) notify() {
	filtered := h.Catalog.Filtered()
	h.mu.Lock()
	listeners := append([]func([]*model.Currency){}, h.listeners...)
	h.mu.Unlock()
	for _, fn := range listeners {
		fn(filtered)
	}
}

func (h *Home) record(evt *recorder.SnapshotEvent) {
	if err := h.Recorder.RecordSnapshot(evt); err != nil {
		logrus.WithError(err).Error("record snapshot")
	}
}
