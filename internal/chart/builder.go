package chart

import (
	"errors"
	"fmt"
	"math"
	"time"

	"CryptoViewer/internal/model"
)

const (
	DefaultColor      = "steelblue"
	DefaultTimeFormat = "01-02"
)

var (
	// ErrNoData means there were no samples to plot. It is an outcome, not a failure.
	ErrNoData = errors.New("no price history")
	// ErrInvalidSample is wrapped by every *ValidationError.
	ErrInvalidSample = errors.New("invalid price sample")
)

// ValidationError reports the first sample that aborted a build.
type ValidationError struct {
	Index int
	Price float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: sample %d has price %v", ErrInvalidSample, e.Index, e.Price)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidSample }

// AxisLabels are the localized axis titles supplied by the presentation layer.
type AxisLabels struct {
	Time  string
	Price string
}

// Builder turns price history into a plottable series.
type Builder struct {
	Color      string
	TimeFormat string
	Labels     AxisLabels
}

// NewBuilder creates a Builder with the default accent color and date format.
func NewBuilder(labels AxisLabels) *Builder {
	return &Builder{Color: DefaultColor, TimeFormat: DefaultTimeFormat, Labels: labels}
}

// Build maps samples to chart points. It returns ErrNoData for an empty
// history and a *ValidationError if any price is not strictly positive and finite, in
// which case no series is produced.
func (b *Builder) Build(cur *model.Currency, samples []model.PriceHistorySample) (*model.ChartSeries, error) {
	if len(samples) == 0 {
		return nil, ErrNoData
	}

	points := make([]model.ChartPoint, len(samples))
	for i, s := range samples {
		// !(p > 0) also rejects NaN
		if !(s.Price > 0) || math.IsInf(s.Price, 1) {
			return nil, &ValidationError{Index: i, Price: s.Price}
		}
		points[i] = model.ChartPoint{X: TimeToX(s.Time), Y: s.Price}
	}

	title := ""
	if cur != nil {
		title = cur.Name
	}
	return &model.ChartSeries{
		Title:  title,
		Color:  b.Color,
		Points: points,
		TimeAxis: model.TimeAxis{
			Title:          b.Labels.Time,
			Format:         b.TimeFormat,
			BucketInterval: BucketInterval(samples),
			MajorGridline:  model.LineSolid,
			MinorGridline:  model.LineDot,
		},
		ValueAxis: model.ValueAxis{
			Title:         b.Labels.Price,
			MajorGridline: model.LineSolid,
			MinorGridline: model.LineDot,
		},
	}, nil
}

// TimeToX encodes t as Unix milliseconds.
func TimeToX(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// BucketInterval picks the time-axis granularity: daily buckets when the
// samples cover more than one day, hourly otherwise.
func BucketInterval(samples []model.PriceHistorySample) time.Duration {
	if len(samples) < 2 {
		return time.Hour
	}
	first, last := samples[0].Time, samples[len(samples)-1].Time
	span := last.Sub(first)
	if span < 0 {
		span = -span
	}
	if span > 24*time.Hour {
		return 24 * time.Hour
	}
	return time.Hour
}
