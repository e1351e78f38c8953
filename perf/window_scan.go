package perf

import (
	"math"

	"github.com/crude-signals/crude/model"
	"gonum.org/v1/gonum/stat"
)

type windowScanEstimator struct {
	info AlgorithmInfo
}

// NewWindowScanEstimator returns an estimator that recomputes both window
// means at every candidate split, costing O(n*window) per call.
func NewWindowScanEstimator() ChangePointEstimator {
	return &windowScanEstimator{
		info: AlgorithmInfo{
			Name:    WindowScan,
			Version: 1,
		},
	}
}

func (e *windowScanEstimator) Info() AlgorithmInfo { return e.info }

func (e *windowScanEstimator) Estimate(prices model.PriceSeries, window int) Result {
	return e.EstimateReturns(prices.LogReturns(), window)
}

func (e *windowScanEstimator) EstimateReturns(returns model.LogReturnSeries, window int) Result {
	if !hasCandidates(len(returns), window) {
		return InsufficientData{Window: window}
	}

	values := returns.Values()

	var (
		index     = -1
		bestScore float64
		before    float64
		after     float64
	)

	for idx := window; idx < len(values)-window; idx++ {
		meanBefore := stat.Mean(values[idx-window:idx], nil)
		meanAfter := stat.Mean(values[idx:idx+window], nil)

		// ties keep the earliest index
		if score := math.Abs(meanAfter - meanBefore); index < 0 || score > bestScore {
			index = idx
			bestScore = score
			before = meanBefore
			after = meanAfter
		}
	}

	return newChangePoint(returns, index, window, before, after)
}
