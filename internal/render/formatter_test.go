package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"CryptoViewer/internal/model"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{65000, "$65000.00"},
		{1, "$1.00"},
		{0.5, "$0.5"},
		{0.000123456789, "$0.00012346"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.in); got != tt.want {
			t.Errorf("FormatPrice(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2.5, "+2.50%"},
		{-1.234, "-1.23%"},
		{0, "0.00%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.in); got != tt.want {
			t.Errorf("FormatPercent(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormatVolume(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.0e10, "$30.00B"},
		{2.5e6, "$2.50M"},
		{1500, "$1.50K"},
		{12, "$12.00"},
	}
	for _, tt := range tests {
		if got := FormatVolume(tt.in); got != tt.want {
			t.Errorf("FormatVolume(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormatCatalog(t *testing.T) {
	out := FormatCatalog([]*model.Currency{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", PriceUsd: 65000, ChangePercent24Hr: 2.5, VolumeUsd24Hr: 3.0e10},
	})
	for _, want := range []string{"Bitcoin", "BTC", "$65000.00", "+2.50%", "$30.00B"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if FormatCatalog(nil) != "No currencies.\n" {
		t.Error("expected empty-catalog message")
	}
}

func TestFormatDetail_States(t *testing.T) {
	btc := &model.Currency{ID: "bitcoin", Name: "Bitcoin"}
	tests := []struct {
		view model.DetailView
		want string
	}{
		{model.DetailView{State: model.DetailNotLoaded}, "No currency selected"},
		{model.DetailView{CurrencyID: "bitcoin", Currency: btc, State: model.DetailLoading}, "loading"},
		{model.DetailView{CurrencyID: "bitcoin", Currency: btc, State: model.DetailEmpty}, "no price history"},
		{model.DetailView{CurrencyID: "bitcoin", Currency: btc, State: model.DetailFailed, Err: errors.New("boom")}, "request failed: boom"},
	}
	for _, tt := range tests {
		if got := FormatDetail(tt.view); !strings.Contains(got, tt.want) {
			t.Errorf("state %s: expected %q in %q", tt.view.State, tt.want, got)
		}
	}
}

func TestFormatDetail_Loaded(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	view := model.DetailView{
		CurrencyID: "bitcoin",
		State:      model.DetailLoaded,
		Series: &model.ChartSeries{
			Title: "Bitcoin",
			Points: []model.ChartPoint{
				{X: float64(start.UnixMilli()), Y: 100},
				{X: float64(start.AddDate(0, 0, 1).UnixMilli()), Y: 90},
				{X: float64(start.AddDate(0, 0, 2).UnixMilli()), Y: 110},
			},
			TimeAxis:  model.TimeAxis{Title: "Date", Format: "01-02", BucketInterval: 24 * time.Hour},
			ValueAxis: model.ValueAxis{Title: "Price (USD)"},
		},
	}
	out := FormatDetail(view)
	for _, want := range []string{"3 points", "daily", "Date: 03-01 .. 03-03", "low $90.00", "high $110.00", "+10.00%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestFormatOutcomes(t *testing.T) {
	out := FormatOutcomes(map[string]int{"LOADED": 3, "STALE": 1})
	for _, want := range []string{"LOADED  3", "EMPTY   0", "FAILED  0", "STALE   1", "TOTAL   4"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}
