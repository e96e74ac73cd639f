package model

import "time"

// Currency is one entry of a ranked market snapshot.
type Currency struct {
	ID                string
	Name              string
	Symbol            string
	PriceUsd          float64
	ChangePercent24Hr float64
	VolumeUsd24Hr     float64
	PriceHistory      []PriceHistorySample // empty until explicitly loaded
}

// Clone returns a copy that shares no slice memory with c.
func (c *Currency) Clone() *Currency {
	if c == nil {
		return nil
	}
	cp := *c
	if c.PriceHistory != nil {
		cp.PriceHistory = append([]PriceHistorySample(nil), c.PriceHistory...)
	}
	return &cp
}

// PriceHistorySample is a single point of a price history series.
type PriceHistorySample struct {
	Time  time.Time
	Price float64
}
