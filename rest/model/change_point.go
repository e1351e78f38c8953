package model

import (
	"github.com/crude-signals/crude/perf"
	"github.com/pkg/errors"
)

// APIChangePointResult is the outcome of a change point estimate. The
// date and means are omitted when Status is insufficient_data.
type APIChangePointResult struct {
	Status          string   `json:"status"`
	ChangePointDate *APIDate `json:"change_point_date,omitempty"`
	Window          int      `json:"window"`
	MeanBefore      *float64 `json:"mean_before,omitempty"`
	MeanAfter       *float64 `json:"mean_after,omitempty"`
	MeanShift       *float64 `json:"mean_shift,omitempty"`
}

// Import transforms an estimator result into an APIChangePointResult.
func (a *APIChangePointResult) Import(i interface{}) error {
	switch r := i.(type) {
	case perf.InsufficientData:
		*a = APIChangePointResult{
			Status: string(r.Status()),
			Window: r.Window,
		}
	case perf.ChangePoint:
		date := NewDate(r.Date)
		before, after, shift := r.MeanBefore, r.MeanAfter, r.MeanShift
		*a = APIChangePointResult{
			Status:          string(r.Status()),
			ChangePointDate: &date,
			Window:          r.Window,
			MeanBefore:      &before,
			MeanAfter:       &after,
			MeanShift:       &shift,
		}
	default:
		return errors.Errorf("incorrect type %T when converting change point result", i)
	}
	return nil
}

// IsOK is true when the result carries a change point.
func (a *APIChangePointResult) IsOK() bool { return a.Status == string(perf.StatusOK) }
