package perf

import (
	"github.com/crude-signals/crude/model"
)

// ChangePointEstimator types locate the single date at which the average
// log-return shifts the most between the windows on either side of it.
// Implementations are pure: they hold no per-call state and are safe for
// concurrent use.
type ChangePointEstimator interface {
	// Estimate derives log-returns from the prices and scans them.
	Estimate(model.PriceSeries, int) Result
	// EstimateReturns scans an already derived log-return series.
	EstimateReturns(model.LogReturnSeries, int) Result
	Info() AlgorithmInfo
}

type AlgorithmInfo struct {
	Name    string            `json:"name" yaml:"name"`
	Version int               `json:"version" yaml:"version"`
	Options []AlgorithmOption `json:"options,omitempty" yaml:"options,omitempty"`
}

type AlgorithmOption struct {
	Name  string      `json:"name" yaml:"name"`
	Value interface{} `json:"value" yaml:"value"`
}
