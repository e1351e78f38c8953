package storage

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/crude-signals/crude/model"
	"github.com/crude-signals/crude/parser"
	"github.com/evergreen-ci/pail"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const (
	DefaultPricesKey = "BrentOilPrices.csv"
	DefaultEventsKey = "events.csv"

	defaultS3Region = "us-east-1"
)

// BucketOptions locates the price and event CSV objects in a pail
// bucket. Path applies to local buckets; Name, Region and the AWS keys
// apply to S3 buckets.
type BucketOptions struct {
	Path      string `yaml:"path"`
	Prefix    string `yaml:"prefix"`
	PricesKey string `yaml:"prices_key"`
	EventsKey string `yaml:"events_key"`

	Name      string `yaml:"name"`
	Region    string `yaml:"region"`
	AWSKey    string `yaml:"aws_key"`
	AWSSecret string `yaml:"aws_secret"`
}

func (o *BucketOptions) setDefaults() {
	if o.PricesKey == "" {
		o.PricesKey = DefaultPricesKey
	}
	if o.EventsKey == "" {
		o.EventsKey = DefaultEventsKey
	}
}

// Validate checks the options of a local bucket.
func (o *BucketOptions) Validate() error {
	o.setDefaults()
	if o.Path == "" {
		return errors.New("must specify a bucket path for a local source")
	}
	return nil
}

// ValidateS3 checks the options of an S3 bucket.
func (o *BucketOptions) ValidateS3() error {
	o.setDefaults()
	if o.Region == "" {
		o.Region = defaultS3Region
	}

	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(o.Name == "", "must specify a bucket name for an s3 source")
	catcher.NewWhen((o.AWSKey == "") != (o.AWSSecret == ""), "must specify both or neither of the aws key and secret")
	return catcher.Resolve()
}

// BucketSource reads and writes the dataset as CSV objects in a pail
// bucket.
type BucketSource struct {
	bucket     pail.Bucket
	opts       BucketOptions
	sourceType SourceType
}

// NewBucketSource opens a local bucket rooted at opts.Path, creating the
// directory when it does not exist yet.
func NewBucketSource(ctx context.Context, opts BucketOptions) (*BucketSource, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := os.MkdirAll(opts.Path, 0755); err != nil {
		return nil, errors.Wrapf(err, "problem creating bucket directory '%s'", opts.Path)
	}

	b, err := pail.NewLocalBucket(pail.LocalOptions{
		Path:   opts.Path,
		Prefix: opts.Prefix,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return newBucketSource(ctx, b, opts, SourceLocal)
}

// NewS3BucketSource opens the S3 bucket opts.Name. Without keys the
// default AWS credential chain is used.
func NewS3BucketSource(ctx context.Context, opts BucketOptions) (*BucketSource, error) {
	if err := opts.ValidateS3(); err != nil {
		return nil, errors.WithStack(err)
	}

	b, err := pail.NewS3Bucket(s3Options(opts))
	if err != nil {
		return nil, errors.Wrapf(err, "problem opening s3 bucket '%s'", opts.Name)
	}

	return newBucketSource(ctx, b, opts, SourceS3)
}

func s3Options(opts BucketOptions) pail.S3Options {
	s3Opts := pail.S3Options{
		Name:   opts.Name,
		Prefix: opts.Prefix,
		Region: opts.Region,
	}
	if opts.AWSKey != "" {
		s3Opts.Credentials = pail.CreateAWSCredentials(opts.AWSKey, opts.AWSSecret, "")
	}
	return s3Opts
}

func newBucketSource(ctx context.Context, b pail.Bucket, opts BucketOptions, sourceType SourceType) (*BucketSource, error) {
	if err := b.Check(ctx); err != nil {
		return nil, errors.Wrapf(err, "problem checking %s bucket", sourceType)
	}

	return &BucketSource{bucket: b, opts: opts, sourceType: sourceType}, nil
}

func (s *BucketSource) Type() SourceType { return s.sourceType }

func (s *BucketSource) Prices(ctx context.Context) (model.PriceSeries, error) {
	r, err := s.bucket.Get(ctx, s.opts.PricesKey)
	if err != nil {
		return nil, errors.Wrapf(err, "problem opening prices object '%s'", s.opts.PricesKey)
	}
	defer r.Close()

	series, report, err := parser.ParsePrices(r)
	if err != nil {
		return nil, errors.Wrapf(err, "problem parsing prices object '%s'", s.opts.PricesKey)
	}
	s.logReport(s.opts.PricesKey, report)

	return series, nil
}

func (s *BucketSource) Events(ctx context.Context) ([]model.Event, error) {
	r, err := s.bucket.Get(ctx, s.opts.EventsKey)
	if err != nil {
		return nil, errors.Wrapf(err, "problem opening events object '%s'", s.opts.EventsKey)
	}
	defer r.Close()

	events, report, err := parser.ParseEvents(r)
	if err != nil {
		return nil, errors.Wrapf(err, "problem parsing events object '%s'", s.opts.EventsKey)
	}
	s.logReport(s.opts.EventsKey, report)

	return events, nil
}

func (s *BucketSource) SavePrices(ctx context.Context, series model.PriceSeries) error {
	buf := &bytes.Buffer{}
	if err := parser.WritePrices(buf, series); err != nil {
		return errors.WithStack(err)
	}
	return s.put(ctx, s.opts.PricesKey, buf)
}

func (s *BucketSource) SaveEvents(ctx context.Context, events []model.Event) error {
	buf := &bytes.Buffer{}
	if err := parser.WriteEvents(buf, events); err != nil {
		return errors.WithStack(err)
	}
	return s.put(ctx, s.opts.EventsKey, buf)
}

func (s *BucketSource) Close(context.Context) error { return nil }

func (s *BucketSource) put(ctx context.Context, key string, r io.Reader) error {
	return errors.Wrapf(s.bucket.Put(ctx, key, r), "problem writing object '%s'", key)
}

func (s *BucketSource) logReport(key string, report parser.Report) {
	grip.InfoWhen(report.Dropped > 0, message.Fields{
		"message":  "source contained unusable rows",
		"source":   s.sourceType,
		"path":     s.opts.Path,
		"bucket":   s.opts.Name,
		"key":      key,
		"rows":     report.Rows,
		"accepted": report.Accepted,
		"dropped":  report.Dropped,
	})
}
