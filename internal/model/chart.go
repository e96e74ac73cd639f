package model

import "time"

// ChartPoint is a plottable sample: X is the timestamp in Unix milliseconds, Y the price.
type ChartPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineStyle names a gridline style understood by the render target.
type LineStyle string

const (
	LineSolid LineStyle = "solid"
	LineDot   LineStyle = "dot"
)

// TimeAxis describes the horizontal axis of a price chart.
type TimeAxis struct {
	Title          string        `json:"title"`
	Format         string        `json:"format"`
	BucketInterval time.Duration `json:"bucket_interval"`
	MajorGridline  LineStyle     `json:"major_gridline"`
	MinorGridline  LineStyle     `json:"minor_gridline"`
}

// ValueAxis describes the vertical axis of a price chart.
type ValueAxis struct {
	Title         string    `json:"title"`
	MajorGridline LineStyle `json:"major_gridline"`
	MinorGridline LineStyle `json:"minor_gridline"`
}

// ChartSeries is one currency's price history ready for plotting.
type ChartSeries struct {
	Title     string       `json:"title"`
	Color     string       `json:"color"`
	Points    []ChartPoint `json:"points"`
	TimeAxis  TimeAxis     `json:"time_axis"`
	ValueAxis ValueAxis    `json:"value_axis"`
}
