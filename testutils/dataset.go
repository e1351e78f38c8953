package testutils

import (
	"bytes"
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/crude-signals/crude/model"
	"github.com/crude-signals/crude/parser"
	"github.com/evergreen-ci/pail"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

// SeriesOptions describes a synthetic daily price series with a single
// shift in the mean log-return.
type SeriesOptions struct {
	Start       time.Time
	Size        int
	ChangeAt    int
	Initial     float64
	DriftBefore float64
	DriftAfter  float64
	Noise       float64
	Seed        int64
	NumEvents   int
}

// GenerateDataset builds prices whose daily log-return is DriftBefore
// (plus gaussian noise) for the first ChangeAt returns and DriftAfter
// afterwards, along with NumEvents events spread over the series.
func GenerateDataset(opts SeriesOptions) *model.Dataset {
	if opts.Start.IsZero() {
		opts.Start = time.Date(1987, time.May, 20, 0, 0, 0, 0, time.UTC)
	}
	if opts.Initial <= 0 {
		opts.Initial = 18.63
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	prices := make(model.PriceSeries, 0, opts.Size)
	price := opts.Initial
	for idx := 0; idx < opts.Size; idx++ {
		prices = append(prices, model.PricePoint{
			Date:  opts.Start.AddDate(0, 0, idx),
			Price: price,
		})

		drift := opts.DriftBefore
		if idx >= opts.ChangeAt {
			drift = opts.DriftAfter
		}
		price *= math.Exp(drift + opts.Noise*rng.NormFloat64())
	}

	events := make([]model.Event, 0, opts.NumEvents)
	for idx := 0; idx < opts.NumEvents && opts.Size > 0; idx++ {
		events = append(events, model.Event{
			Date:     opts.Start.AddDate(0, 0, rng.Intn(opts.Size)),
			Name:     "event-" + utility.RandomString(),
			Category: []string{"OPEC Policy", "Geopolitical", "Macro"}[idx%3],
		})
	}
	model.SortEvents(events)

	return model.NewDataset(prices, events)
}

// WriteDataset stores the dataset as the two CSV objects a bucket-backed
// source reads.
func WriteDataset(ctx context.Context, bucket pail.Bucket, pricesKey, eventsKey string, dataset *model.Dataset) error {
	buf := &bytes.Buffer{}
	if err := parser.WritePrices(buf, dataset.Prices); err != nil {
		return errors.WithStack(err)
	}
	if err := bucket.Put(ctx, pricesKey, buf); err != nil {
		return errors.Wrapf(err, "problem writing '%s'", pricesKey)
	}

	buf = &bytes.Buffer{}
	if err := parser.WriteEvents(buf, dataset.Events); err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrapf(bucket.Put(ctx, eventsKey, buf), "problem writing '%s'", eventsKey)
}
