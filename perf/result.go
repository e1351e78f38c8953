package perf

import (
	"time"

	"github.com/crude-signals/crude/model"
)

type Status string

const (
	StatusOK               Status = "ok"
	StatusInsufficientData Status = "insufficient_data"
)

// Result is either InsufficientData or ChangePoint; callers switch on the
// concrete type.
type Result interface {
	Status() Status
	result()
}

// InsufficientData reports that the log-return series is too short to
// place any split with a full window on each side.
type InsufficientData struct {
	Window int
}

func (InsufficientData) Status() Status { return StatusInsufficientData }
func (InsufficientData) result()        {}

// ChangePoint is the best single split of the log-return series. Index
// refers to the log-return series, and MeanShift is always exactly
// MeanAfter - MeanBefore.
type ChangePoint struct {
	Index      int
	Date       time.Time
	Window     int
	MeanBefore float64
	MeanAfter  float64
	MeanShift  float64
}

func (ChangePoint) Status() Status { return StatusOK }
func (ChangePoint) result()        {}

func newChangePoint(returns model.LogReturnSeries, index, window int, before, after float64) ChangePoint {
	return ChangePoint{
		Index:      index,
		Date:       returns[index].Date,
		Window:     window,
		MeanBefore: before,
		MeanAfter:  after,
		MeanShift:  after - before,
	}
}

// hasCandidates is false unless every candidate split has a full window
// on both sides and at least one candidate exists.
func hasCandidates(length, window int) bool {
	return window > 0 && length > 2*window
}
