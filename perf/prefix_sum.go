package perf

import (
	"math"

	"github.com/crude-signals/crude/model"
)

type prefixSumEstimator struct {
	info AlgorithmInfo
}

// NewPrefixSumEstimator returns an O(n) estimator that derives each window
// mean from running sums. It selects the same split as the window scan,
// including the earliest-index tie break.
func NewPrefixSumEstimator() ChangePointEstimator {
	return &prefixSumEstimator{
		info: AlgorithmInfo{
			Name:    PrefixSum,
			Version: 1,
		},
	}
}

func (e *prefixSumEstimator) Info() AlgorithmInfo { return e.info }

func (e *prefixSumEstimator) Estimate(prices model.PriceSeries, window int) Result {
	return e.EstimateReturns(prices.LogReturns(), window)
}

func (e *prefixSumEstimator) EstimateReturns(returns model.LogReturnSeries, window int) Result {
	if !hasCandidates(len(returns), window) {
		return InsufficientData{Window: window}
	}

	sums := make([]float64, len(returns)+1)
	for idx, point := range returns {
		sums[idx+1] = sums[idx] + point.LogReturn
	}

	size := float64(window)
	index := -1
	var bestScore, before, after float64

	for idx := window; idx < len(returns)-window; idx++ {
		meanBefore := (sums[idx] - sums[idx-window]) / size
		meanAfter := (sums[idx+window] - sums[idx]) / size

		if score := math.Abs(meanAfter - meanBefore); index < 0 || score > bestScore {
			index = idx
			bestScore = score
			before = meanBefore
			after = meanAfter
		}
	}

	return newChangePoint(returns, index, window, before, after)
}
