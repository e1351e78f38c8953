package model

import (
	"time"
)

// Dataset is an immutable snapshot of everything the service serves.
// Holders must treat the slices as read-only and copy before reordering.
type Dataset struct {
	Prices   PriceSeries `bson:"prices" json:"prices" yaml:"prices"`
	Events   []Event     `bson:"events" json:"events" yaml:"events"`
	LoadedAt time.Time   `bson:"loaded_at" json:"loaded_at" yaml:"loaded_at"`
}

// NewDataset builds a snapshot, sorting a private copy of the prices.
func NewDataset(prices PriceSeries, events []Event) *Dataset {
	evts := make([]Event, len(events))
	copy(evts, events)

	return &Dataset{
		Prices:   prices.Sorted(),
		Events:   evts,
		LoadedAt: time.Now(),
	}
}

// Summary describes the extent of the price history.
type Summary struct {
	StartDate    time.Time
	EndDate      time.Time
	TotalRecords int
	EventCount   int
}

func (d *Dataset) Summary() Summary {
	out := Summary{
		TotalRecords: len(d.Prices),
		EventCount:   len(d.Events),
	}
	if first, last, ok := d.Prices.DateRange(); ok {
		out.StartDate = first
		out.EndDate = last
	}

	return out
}
