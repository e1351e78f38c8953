package model

import (
	"math"
	"sort"
	"time"

	"github.com/crude-signals/crude/util"
)

// PricePoint is a single daily price observation.
type PricePoint struct {
	Date  time.Time `bson:"date" json:"date" yaml:"date"`
	Price float64   `bson:"price" json:"price" yaml:"price"`
}

// IsValid reports whether the price can take part in log-return
// derivation: it must be finite and strictly positive.
func (p PricePoint) IsValid() bool {
	return !math.IsNaN(p.Price) && !math.IsInf(p.Price, 0) && p.Price > 0
}

// PriceSeries is a sequence of price observations, normally ordered by
// date ascending. Dates are not required to be unique.
type PriceSeries []PricePoint

// Copy returns an independent copy of the series.
func (s PriceSeries) Copy() PriceSeries {
	out := make(PriceSeries, len(s))
	copy(out, s)
	return out
}

// Sorted returns a copy of the series ordered by date ascending. Points
// sharing a date keep their relative order.
func (s PriceSeries) Sorted() PriceSeries {
	out := s.Copy()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Filter returns the points whose date falls inside the range. The result
// is never nil, so an inverted range serializes as an empty list.
func (s PriceSeries) Filter(tr util.TimeRange) PriceSeries {
	out := PriceSeries{}
	for _, p := range s {
		if tr.Check(p.Date) {
			out = append(out, p)
		}
	}
	return out
}

// LogReturns derives the log-return series. Points with a missing,
// non-finite or non-positive price are dropped first, the remainder is
// ordered by date, and each surviving point after the first yields
// ln(p[i]) - ln(p[i-1]). Fewer than two valid points produce an empty
// series. The receiver is never modified.
func (s PriceSeries) LogReturns() LogReturnSeries {
	valid := make(PriceSeries, 0, len(s))
	for _, p := range s {
		if p.IsValid() {
			valid = append(valid, p)
		}
	}
	valid = valid.Sorted()

	if len(valid) < 2 {
		return LogReturnSeries{}
	}

	out := make(LogReturnSeries, 0, len(valid)-1)
	prev := math.Log(valid[0].Price)
	for _, p := range valid[1:] {
		cur := math.Log(p.Price)
		out = append(out, LogReturnPoint{Date: p.Date, LogReturn: cur - prev})
		prev = cur
	}

	return out
}

// DateRange returns the earliest and latest dates in the series; ok is
// false for an empty series.
func (s PriceSeries) DateRange() (first, last time.Time, ok bool) {
	if len(s) == 0 {
		return time.Time{}, time.Time{}, false
	}

	first, last = s[0].Date, s[0].Date
	for _, p := range s[1:] {
		if p.Date.Before(first) {
			first = p.Date
		}
		if p.Date.After(last) {
			last = p.Date
		}
	}

	return first, last, true
}
