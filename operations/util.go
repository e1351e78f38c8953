package operations

import (
	"github.com/crude-signals/crude"
	"github.com/crude-signals/crude/parser"
	"github.com/crude-signals/crude/storage"
	"github.com/crude-signals/crude/util"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// buildConfiguration reads the optional configuration file and applies
// any explicitly set flags over it.
func buildConfiguration(c *cli.Context) (*crude.Configuration, error) {
	conf := &crude.Configuration{}
	if fn := c.String(configFlag); fn != "" {
		var err error
		conf, err = crude.LoadConfiguration(fn)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if conf.Service.Port == 0 || c.IsSet(servicePortFlag) {
		conf.Service.Port = c.Int(servicePortFlag)
	}
	if conf.Service.Prefix == "" || c.IsSet(servicePrefixFlag) {
		conf.Service.Prefix = c.String(servicePrefixFlag)
	}
	if origins := c.StringSlice(corsOriginFlag); len(origins) > 0 {
		conf.Service.CORSOrigins = origins
	}
	if conf.Service.MaxWindow == 0 || c.IsSet(maxWindowFlag) {
		conf.Service.MaxWindow = c.Int(maxWindowFlag)
	}
	if conf.Service.DefaultWindow == 0 || c.IsSet(windowFlag) {
		conf.Service.DefaultWindow = c.Int(windowFlag)
	}
	if conf.Estimator == "" || c.IsSet(algorithmFlag) {
		conf.Estimator = c.String(algorithmFlag)
	}
	if conf.NumWorkers == 0 || c.IsSet(numWorkersFlag) {
		conf.NumWorkers = c.Int(numWorkersFlag)
	}
	if c.IsSet(refreshFlag) {
		conf.RefreshInterval = c.Duration(refreshFlag)
	}

	applyStorageFlags(c, &conf.Storage)

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return conf, nil
}

// applyStorageFlags fills unset storage options from flags, letting
// explicitly set flags win over file values.
func applyStorageFlags(c *cli.Context, opts *storage.Options) {
	if opts.Type == "" || c.IsSet(storageTypeFlag) {
		opts.Type = storage.SourceType(c.String(storageTypeFlag))
	}
	if opts.Bucket.Path == "" || c.IsSet(bucketPathFlag) {
		opts.Bucket.Path = c.String(bucketPathFlag)
	}
	if opts.Bucket.PricesKey == "" || c.IsSet(pricesKeyFlag) {
		opts.Bucket.PricesKey = c.String(pricesKeyFlag)
	}
	if opts.Bucket.EventsKey == "" || c.IsSet(eventsKeyFlag) {
		opts.Bucket.EventsKey = c.String(eventsKeyFlag)
	}
	if opts.Bucket.Name == "" || c.IsSet(bucketNameFlag) {
		opts.Bucket.Name = c.String(bucketNameFlag)
	}
	if opts.Bucket.Prefix == "" || c.IsSet(prefixKeyFlag) {
		opts.Bucket.Prefix = c.String(prefixKeyFlag)
	}
	if opts.Bucket.Region == "" || c.IsSet(regionFlag) {
		opts.Bucket.Region = c.String(regionFlag)
	}
	if opts.Bucket.AWSKey == "" || c.IsSet(awsKeyFlag) {
		opts.Bucket.AWSKey = c.String(awsKeyFlag)
	}
	if opts.Bucket.AWSSecret == "" || c.IsSet(awsSecretFlag) {
		opts.Bucket.AWSSecret = c.String(awsSecretFlag)
	}
	if opts.Mongo.URI == "" || c.IsSet(dbURIFlag) {
		opts.Mongo.URI = c.String(dbURIFlag)
	}
	if opts.Mongo.Database == "" || c.IsSet(dbNameFlag) {
		opts.Mongo.Database = c.String(dbNameFlag)
	}
}

func dateRangeFromFlags(c *cli.Context) util.TimeRange {
	return util.NewTimeRange(
		parser.ParseOptionalDate(c.String(startFlag)),
		parser.ParseOptionalDate(c.String(endFlag)),
	)
}

// writeOutput writes the document to the output flag's file or to
// standard output.
func writeOutput(c *cli.Context, data interface{}) error {
	if fn := c.String(outputFlagName); fn != "" {
		return errors.Wrapf(util.WriteJSON(fn, data), "problem writing '%s'", fn)
	}

	return errors.WithStack(util.PrintJSON(data))
}
