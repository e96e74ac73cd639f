package model

// DetailState is the lifecycle of a single currency's detail view.
type DetailState string

const (
	DetailNotLoaded DetailState = "NOT_LOADED"
	DetailLoading   DetailState = "LOADING"
	DetailLoaded    DetailState = "LOADED"
	DetailEmpty     DetailState = "EMPTY"
	DetailFailed    DetailState = "FAILED"
)

// DetailView is what the detail screen renders for the current selection.
type DetailView struct {
	CurrencyID string
	Currency   *Currency
	State      DetailState
	Series     *ChartSeries // set only when State == DetailLoaded
	Err        error        // set only when State == DetailFailed
}
