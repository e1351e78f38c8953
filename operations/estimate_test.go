package operations

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/crude-signals/crude/perf"
	"github.com/crude-signals/crude/storage"
	"github.com/crude-signals/crude/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePricesFile writes n daily prices starting on 2020-01-01 that grow
// by 1% a day until the change index and then fall by 2% a day.
func writePricesFile(t *testing.T, n, change int) string {
	var b strings.Builder
	b.WriteString("Date,Price\n")

	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	price := 50.0
	for idx := 0; idx < n; idx++ {
		fmt.Fprintf(&b, "%s,%.6f\n", start.AddDate(0, 0, idx).Format("02-Jan-06"), price)
		if idx < change {
			price *= math.Exp(0.01)
		} else {
			price *= math.Exp(-0.02)
		}
	}
	b.WriteString("not a date,12.5\n")

	fn := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(fn, []byte(b.String()), 0644))
	return fn
}

func TestEstimateFile(t *testing.T) {
	fn := writePricesFile(t, 121, 60)

	for _, algo := range perf.Algorithms() {
		t.Run(algo, func(t *testing.T) {
			estimator, err := perf.NewEstimator(algo)
			require.NoError(t, err)

			result, err := estimateFile(fn, estimator, 30, util.TimeRange{})
			require.NoError(t, err)
			require.True(t, result.IsOK())
			assert.Equal(t, "2020-03-02", result.ChangePointDate.String())
			assert.Equal(t, 30, result.Window)
			require.NotNil(t, result.MeanShift)
			assert.InDelta(t, -0.03, *result.MeanShift, 1e-6)
		})
	}
	t.Run("DateRangeLeavesTooFewReturns", func(t *testing.T) {
		start := time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 20)

		result, err := estimateFile(fn, perf.NewWindowScanEstimator(), 30, util.NewTimeRange(&start, &end))
		require.NoError(t, err)
		assert.False(t, result.IsOK())
		assert.Equal(t, string(perf.StatusInsufficientData), result.Status)
		assert.Equal(t, 30, result.Window)
	})
	t.Run("NonPositiveWindow", func(t *testing.T) {
		_, err := estimateFile(fn, perf.NewWindowScanEstimator(), 0, util.TimeRange{})
		assert.Error(t, err)
	})
	t.Run("MissingFile", func(t *testing.T) {
		_, err := estimateFile(filepath.Join(t.TempDir(), "missing.csv"), perf.NewWindowScanEstimator(), 30, util.TimeRange{})
		assert.Error(t, err)
	})
}

func TestImportFiles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pricesFile := writePricesFile(t, 10, 5)
	eventsFile := filepath.Join(t.TempDir(), "events.csv")
	require.NoError(t, os.WriteFile(eventsFile, []byte(
		"event_date,event_name,category,region\n"+
			"2020-01-03,quota cut,OPEC Policy,gulf\n"+
			"sometime,rumour,Macro,\n"), 0644))

	t.Run("Both", func(t *testing.T) {
		source := storage.NewMemorySource(nil, nil)
		require.NoError(t, importFiles(ctx, source, pricesFile, eventsFile))

		prices, err := source.Prices(ctx)
		require.NoError(t, err)
		assert.Len(t, prices, 10)

		events, err := source.Events(ctx)
		require.NoError(t, err)
		require.Len(t, events, 2)
	})
	t.Run("PricesOnly", func(t *testing.T) {
		source := storage.NewMemorySource(nil, nil)
		require.NoError(t, importFiles(ctx, source, pricesFile, ""))

		events, err := source.Events(ctx)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
	t.Run("LocalBucket", func(t *testing.T) {
		opts := storage.BucketOptions{Path: t.TempDir()}
		source, err := storage.NewBucketSource(ctx, opts)
		require.NoError(t, err)
		require.NoError(t, importFiles(ctx, source, pricesFile, eventsFile))

		dataset, err := storage.LoadDataset(ctx, source)
		require.NoError(t, err)
		assert.Len(t, dataset.Prices, 10)
		assert.Len(t, dataset.Events, 2)
	})
	t.Run("MissingFile", func(t *testing.T) {
		source := storage.NewMemorySource(nil, nil)
		assert.Error(t, importFiles(ctx, source, filepath.Join(t.TempDir(), "nope.csv"), ""))
	})
}
