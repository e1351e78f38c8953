package perf

import (
	"github.com/pkg/errors"
)

const (
	WindowScan = "window_scan"
	PrefixSum  = "prefix_sum"

	// DefaultWindow is the number of log-returns averaged on each side of
	// a candidate split when the caller does not choose one.
	DefaultWindow = 30
)

// NewEstimator returns the estimator registered under name. An empty name
// selects the window scan.
func NewEstimator(name string) (ChangePointEstimator, error) {
	switch name {
	case "", WindowScan:
		return NewWindowScanEstimator(), nil
	case PrefixSum:
		return NewPrefixSumEstimator(), nil
	default:
		return nil, errors.Errorf("unknown change point algorithm '%s'", name)
	}
}

// Algorithms lists the names accepted by NewEstimator.
func Algorithms() []string { return []string{WindowScan, PrefixSum} }
