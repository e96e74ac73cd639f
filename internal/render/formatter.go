package render

import (
	"fmt"
	"strings"
	"time"

	"CryptoViewer/internal/model"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// FormatPrice renders a USD price: two decimals from $1 up, eight significant places below.
func FormatPrice(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return "$" + d.StringFixed(2)
	}
	return "$" + d.Round(8).String()
}

// FormatPercent renders a signed percentage with two decimals.
func FormatPercent(v float64) string {
	d := decimal.NewFromFloat(v)
	s := d.StringFixed(2)
	if d.IsPositive() {
		s = "+" + s
	}
	return s + "%"
}

// FormatVolume renders a USD amount with a K/M/B suffix.
func FormatVolume(v float64) string {
	d := decimal.NewFromFloat(v)
	switch {
	case d.GreaterThanOrEqual(billion):
		return "$" + d.Div(billion).StringFixed(2) + "B"
	case d.GreaterThanOrEqual(million):
		return "$" + d.Div(million).StringFixed(2) + "M"
	case d.GreaterThanOrEqual(thousand):
		return "$" + d.Div(thousand).StringFixed(2) + "K"
	default:
		return "$" + d.StringFixed(2)
	}
}

// FormatCatalog renders the currency list as a fixed-width table.
func FormatCatalog(list []*model.Currency) string {
	if len(list) == 0 {
		return "No currencies.\n"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-3s %-20s %-8s %16s %9s %12s\n", "#", "NAME", "SYMBOL", "PRICE", "24H", "VOLUME"))
	for i, c := range list {
		b.WriteString(fmt.Sprintf("%-3d %-20s %-8s %16s %9s %12s\n",
			i+1, truncate(c.Name, 20), strings.ToUpper(c.Symbol),
			FormatPrice(c.PriceUsd), FormatPercent(c.ChangePercent24Hr), FormatVolume(c.VolumeUsd24Hr)))
	}
	return b.String()
}

// FormatDetail renders the detail view for the current selection.
func FormatDetail(view model.DetailView) string {
	name := view.CurrencyID
	if view.Currency != nil && view.Currency.Name != "" {
		name = view.Currency.Name
	}

	switch view.State {
	case model.DetailNotLoaded:
		if name == "" {
			return "No currency selected.\n"
		}
		return fmt.Sprintf("%s: history not loaded.\n", name)
	case model.DetailLoading:
		return fmt.Sprintf("%s: loading price history...\n", name)
	case model.DetailEmpty:
		return fmt.Sprintf("%s: no price history available.\n", name)
	case model.DetailFailed:
		return fmt.Sprintf("%s: request failed: %v\n", name, view.Err)
	}

	s := view.Series
	if s == nil || len(s.Points) == 0 {
		return fmt.Sprintf("%s: no price history available.\n", name)
	}

	first, last := s.Points[0], s.Points[len(s.Points)-1]
	lo, hi := first.Y, first.Y
	for _, p := range s.Points {
		if p.Y < lo {
			lo = p.Y
		}
		if p.Y > hi {
			hi = p.Y
		}
	}
	change := (last.Y - first.Y) / first.Y * 100

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s price history (%d points, %s buckets)\n", s.Title, len(s.Points), bucketName(s.TimeAxis.BucketInterval)))
	b.WriteString(fmt.Sprintf("%s: %s .. %s\n", s.TimeAxis.Title, xToTime(first.X).Format(s.TimeAxis.Format), xToTime(last.X).Format(s.TimeAxis.Format)))
	b.WriteString(fmt.Sprintf("%s: low %s | high %s | last %s\n", s.ValueAxis.Title, FormatPrice(lo), FormatPrice(hi), FormatPrice(last.Y)))
	b.WriteString(fmt.Sprintf("Change over range: %s\n", FormatPercent(change)))
	return b.String()
}

// FormatOutcomes renders history-load outcome counts in a fixed order.
func FormatOutcomes(counts map[string]int) string {
	var b strings.Builder
	b.WriteString("History loads:\n")
	total := 0
	for _, o := range []string{"LOADED", "EMPTY", "FAILED", "STALE"} {
		b.WriteString(fmt.Sprintf("  %-7s %d\n", o, counts[o]))
		total += counts[o]
	}
	b.WriteString(fmt.Sprintf("  %-7s %d\n", "TOTAL", total))
	return b.String()
}

func bucketName(d time.Duration) string {
	switch d {
	case 24 * time.Hour:
		return "daily"
	case time.Hour:
		return "hourly"
	default:
		return d.String()
	}
}

func xToTime(x float64) time.Time {
	return time.UnixMilli(int64(x)).UTC()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
