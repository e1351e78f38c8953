package main

import (
	"context"
	"os"
	"time"

	"github.com/crude-signals/crude/perf"
	"github.com/crude-signals/crude/storage"
	"github.com/crude-signals/crude/testutils"
	"github.com/evergreen-ci/pail"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

const (
	// things that really should be command line args
	outputDir = "data"
	numPrices = 8000
	changeAt  = 5000
	numEvents = 40
)

// generates a synthetic dataset for running the service locally
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startAt := time.Now()
	grip.EmergencyFatal(os.MkdirAll(outputDir, 0755))

	bucket, err := pail.NewLocalBucket(pail.LocalOptions{Path: outputDir})
	grip.EmergencyFatal(err)

	dataset := testutils.GenerateDataset(testutils.SeriesOptions{
		Size:        numPrices,
		ChangeAt:    changeAt,
		DriftBefore: 0.0004,
		DriftAfter:  -0.0006,
		Noise:       0.02,
		Seed:        startAt.UnixNano(),
		NumEvents:   numEvents,
	})
	grip.EmergencyFatal(testutils.WriteDataset(ctx, bucket, storage.DefaultPricesKey, storage.DefaultEventsKey, dataset))

	msg := message.Fields{
		"dur_secs": time.Since(startAt).Seconds(),
		"dir":      outputDir,
		"prices":   len(dataset.Prices),
		"events":   len(dataset.Events),
	}
	if cp, ok := perf.NewPrefixSumEstimator().Estimate(dataset.Prices, perf.DefaultWindow).(perf.ChangePoint); ok {
		msg["change_point"] = cp.Date.Format("2006-01-02")
		msg["mean_shift"] = cp.MeanShift
	}
	grip.Info(msg)
}
