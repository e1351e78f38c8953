package storage

import (
	"context"
	"time"

	"github.com/crude-signals/crude/model"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// DatasetSource provides the raw price history and event annotations.
// Implementations must be safe for concurrent use.
type DatasetSource interface {
	Type() SourceType
	Prices(context.Context) (model.PriceSeries, error)
	Events(context.Context) ([]model.Event, error)
	SavePrices(context.Context, model.PriceSeries) error
	SaveEvents(context.Context, []model.Event) error
	Close(context.Context) error
}

// SourceType names the backend holding the dataset.
type SourceType string

const (
	SourceLocal   SourceType = "local"
	SourceS3      SourceType = "s3"
	SourceMongoDB SourceType = "mongodb"
	SourceMemory  SourceType = "memory"
)

func (t SourceType) Validate() error {
	switch t {
	case SourceLocal, SourceS3, SourceMongoDB, SourceMemory:
		return nil
	default:
		return errors.Errorf("unsupported source type '%s'", t)
	}
}

// Options configures a dataset source.
type Options struct {
	Type   SourceType    `yaml:"type"`
	Bucket BucketOptions `yaml:"bucket"`
	Mongo  MongoOptions  `yaml:"mongodb"`
}

func (o *Options) Validate() error {
	if o.Type == "" {
		o.Type = SourceLocal
	}

	catcher := grip.NewBasicCatcher()
	catcher.Add(o.Type.Validate())
	switch o.Type {
	case SourceLocal:
		catcher.Add(o.Bucket.Validate())
	case SourceS3:
		catcher.Add(o.Bucket.ValidateS3())
	case SourceMongoDB:
		catcher.Add(o.Mongo.Validate())
	}

	return catcher.Resolve()
}

// NewSource validates the options and opens the configured source.
func NewSource(ctx context.Context, opts Options) (DatasetSource, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid source options")
	}

	switch opts.Type {
	case SourceLocal:
		return NewBucketSource(ctx, opts.Bucket)
	case SourceS3:
		return NewS3BucketSource(ctx, opts.Bucket)
	case SourceMongoDB:
		return NewMongoSource(ctx, opts.Mongo)
	default:
		return NewMemorySource(nil, nil), nil
	}
}

// LoadDataset reads both halves of the dataset from the source and
// returns them as a snapshot.
func LoadDataset(ctx context.Context, source DatasetSource) (*model.Dataset, error) {
	start := time.Now()

	prices, err := source.Prices(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "problem loading prices from %s source", source.Type())
	}

	events, err := source.Events(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "problem loading events from %s source", source.Type())
	}

	dataset := model.NewDataset(prices, events)
	grip.Debug(message.Fields{
		"message":  "loaded dataset",
		"source":   source.Type(),
		"prices":   len(dataset.Prices),
		"events":   len(dataset.Events),
		"duration": time.Since(start),
	})

	return dataset, nil
}
