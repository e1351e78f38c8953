package util

import (
	"time"
)

// TimeRange is an inclusive date window. A zero StartAt or EndAt leaves
// that side of the range open.
type TimeRange struct {
	StartAt time.Time `bson:"start" json:"start" yaml:"start"`
	EndAt   time.Time `bson:"end" json:"end" yaml:"end"`
}

// NewTimeRange builds a range from optional bounds; nil bounds stay open.
func NewTimeRange(startAt, endAt *time.Time) TimeRange {
	tr := TimeRange{}
	if startAt != nil {
		tr.StartAt = *startAt
	}
	if endAt != nil {
		tr.EndAt = *endAt
	}
	return tr
}

func (t TimeRange) IsZero() bool    { return t.EndAt.IsZero() && t.StartAt.IsZero() }
func (t TimeRange) HasStart() bool  { return !t.StartAt.IsZero() }
func (t TimeRange) HasEnd() bool    { return !t.EndAt.IsZero() }
func (t TimeRange) IsBounded() bool { return t.HasStart() && t.HasEnd() }
func (t TimeRange) IsValid() bool   { return !t.IsBounded() || !t.StartAt.After(t.EndAt) }
func (t TimeRange) Duration() time.Duration {
	if !t.IsBounded() {
		return 0
	}
	return t.EndAt.Sub(t.StartAt)
}

// Check returns true if the given time is within the TimeRange (inclusive) and
// false otherwise. A zero timestamp only matches a fully open range.
func (t TimeRange) Check(ts time.Time) bool {
	if ts.IsZero() {
		return t.IsZero()
	}
	if t.HasStart() && ts.Before(t.StartAt) {
		return false
	}
	if t.HasEnd() && ts.After(t.EndAt) {
		return false
	}
	return true
}
