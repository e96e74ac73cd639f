package presenter

import (
	"context"
	"sync"

	"CryptoViewer/internal/model"
)

// Viewer is the boundary the UI layer talks to. It only invokes these
// operations and renders what they publish.
type Viewer struct {
	Home    *Home
	Details *Details

	// selMu keeps the catalog selection and the detail generation in step.
	selMu sync.Mutex
}

// NewViewer pairs a Home and Details sharing one catalog.
func NewViewer(home *Home, details *Details) *Viewer {
	return &Viewer{Home: home, Details: details}
}

func (v *Viewer) LoadCatalog(ctx context.Context) error {
	return v.Home.LoadCatalog(ctx)
}

func (v *Viewer) Search(text string) []*model.Currency {
	return v.Home.Search(text)
}

// SelectCurrency makes id the active selection and resets the detail view.
func (v *Viewer) SelectCurrency(id string) *model.Currency {
	v.selMu.Lock()
	defer v.selMu.Unlock()
	cur := v.Home.SelectCurrency(id)
	v.Details.Select(cur)
	return cur
}

// LoadHistoryFor selects id and loads its chart. Only the selection is
// serialized; the fetch itself runs unlocked.
func (v *Viewer) LoadHistoryFor(ctx context.Context, id string) model.DetailView {
	v.selMu.Lock()
	cur := v.Home.SelectCurrency(id)
	gen := v.Details.begin(cur)
	v.selMu.Unlock()
	return v.Details.complete(ctx, cur, gen)
}

// Selected returns the id of the active selection, or "" if none.
func (v *Viewer) Selected() string {
	return v.Details.View().CurrencyID
}
