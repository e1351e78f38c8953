package model

import (
	"sort"
	"time"

	"github.com/crude-signals/crude/util"
)

// Event is an annotated market event displayed next to the price series.
// Columns beyond date, name and category are carried in Attributes.
type Event struct {
	Date       time.Time         `bson:"date" json:"date" yaml:"date"`
	Name       string            `bson:"event_name" json:"event_name" yaml:"event_name"`
	Category   string            `bson:"category" json:"category" yaml:"category"`
	Attributes map[string]string `bson:"attributes,omitempty" json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// HasDate is false for events whose source date could not be parsed.
func (e Event) HasDate() bool { return !e.Date.IsZero() }

// FilterEvents returns the events inside the range, in their original
// order. Undated events only survive an open range.
func FilterEvents(events []Event, tr util.TimeRange) []Event {
	out := []Event{}
	for _, e := range events {
		if tr.Check(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// SortEvents orders events by date; undated events sort first.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
}
