package presenter

import (
	"context"
	"errors"
	"sync"

	"CryptoViewer/internal/catalog"
	"CryptoViewer/internal/chart"
	"CryptoViewer/internal/marketdata"
	"CryptoViewer/internal/model"
	"CryptoViewer/internal/recorder"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Details backs the per-currency chart screen.
//
// Every selection bumps a generation counter; a history fetch only publishes
// its result if no newer selection happened while it was in flight.
type Details struct {
	Fetcher  marketdata.Fetcher
	Catalog  *catalog.Catalog
	Builder  *chart.Builder
	Recorder recorder.Recorder
	Days     int

	mu        sync.Mutex
	gen       uint64
	view      model.DetailView
	listeners []func(model.DetailView)
}

// NewDetails creates a Details with nothing selected.
func NewDetails(f marketdata.Fetcher, cat *catalog.Catalog, b *chart.Builder, rec recorder.Recorder, days int) *Details {
	if days <= 0 {
		days = marketdata.DefaultHistoryDays
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Details{
		Fetcher:  f,
		Catalog:  cat,
		Builder:  b,
		Recorder: rec,
		Days:     days,
		view:     model.DetailView{State: model.DetailNotLoaded},
	}
}

// OnChange registers fn to receive every published view. fn runs with the
// Details lock held and must not call back into Details.
func (d *Details) OnChange(fn func(model.DetailView)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// View returns the current detail view.
func (d *Details) View() model.DetailView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// Select starts a fresh selection in the NotLoaded state, orphaning any
// fetch still in flight for the previous one.
func (d *Details) Select(cur *model.Currency) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selectLocked(cur)
}

func (d *Details) selectLocked(cur *model.Currency) uint64 {
	d.gen++
	d.publishLocked(model.DetailView{CurrencyID: cur.ID, Currency: cur, State: model.DetailNotLoaded})
	return d.gen
}

// LoadHistoryFor selects cur, fetches its price history and builds the
// chart series. The returned view is the one published for this call, or the
// newer selection's view if this call was superseded.
func (d *Details) LoadHistoryFor(ctx context.Context, cur *model.Currency) model.DetailView {
	return d.complete(ctx, cur, d.begin(cur))
}

// begin selects cur and publishes LOADING. The returned generation identifies
// this load to complete.
func (d *Details) begin(cur *model.Currency) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	gen := d.selectLocked(cur)
	d.publishLocked(model.DetailView{CurrencyID: cur.ID, Currency: cur, State: model.DetailLoading})
	return gen
}

func (d *Details) complete(ctx context.Context, cur *model.Currency, gen uint64) model.DetailView {
	evt := &recorder.HistoryEvent{
		RequestID:  uuid.NewString(),
		CurrencyID: cur.ID,
		Days:       d.Days,
	}
	log := logrus.WithFields(logrus.Fields{"request_id": evt.RequestID, "currency": cur.ID})

	samples, err := d.Fetcher.FetchPriceHistory(ctx, cur.ID, d.Days)
	evt.Samples = len(samples)

	next := model.DetailView{CurrencyID: cur.ID, Currency: cur}
	var series *model.ChartSeries
	if err == nil {
		series, err = d.Builder.Build(cur, samples)
	}
	switch {
	case err == nil:
		next.State = model.DetailLoaded
		next.Series = series
		evt.Outcome = recorder.OutcomeLoaded
	case errors.Is(err, chart.ErrNoData):
		next.State = model.DetailEmpty
		evt.Outcome = recorder.OutcomeEmpty
	default:
		next.State = model.DetailFailed
		next.Err = err
		evt.Outcome = recorder.OutcomeFailed
		evt.Error = err.Error()
	}

	d.mu.Lock()
	if d.gen != gen {
		current := d.view
		d.mu.Unlock()
		evt.Outcome = recorder.OutcomeStale
		d.record(evt)
		log.Debug("discarding history for superseded selection")
		return current
	}
	if next.State == model.DetailLoaded {
		d.Catalog.AttachHistory(cur.ID, samples)
	}
	d.publishLocked(next)
	d.mu.Unlock()

	d.record(evt)
	switch next.State {
	case model.DetailFailed:
		log.WithError(next.Err).Error("load price history")
	case model.DetailEmpty:
		log.Info("price history is empty")
	default:
		log.WithField("points", len(series.Points)).Info("price history loaded")
	}
	return next
}

func (d *Details) publishLocked(v model.DetailView) {
	d.view = v
	for _, fn := range d.listeners {
		fn(v)
	}
}

func (d *Details) record(evt *recorder.HistoryEvent) {
	if err := d.Recorder.RecordHistory(evt); err != nil {
		logrus.WithError(err).Error("record history load")
	}
}
