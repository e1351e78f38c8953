package operations

import (
	"strings"

	"github.com/crude-signals/crude/perf"
	"github.com/crude-signals/crude/storage"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

////////////////////////////////////////////////////////////////////////
//
// Flag Name Constants

const (
	configFlag = "config"

	servicePortFlag   = "port"
	servicePrefixFlag = "prefix"
	corsOriginFlag    = "corsOrigin"
	numWorkersFlag    = "workers"
	refreshFlag       = "refresh"

	storageTypeFlag = "storage"
	bucketPathFlag  = "bucketPath"
	pricesKeyFlag   = "pricesKey"
	eventsKeyFlag   = "eventsKey"
	bucketNameFlag  = "bucketName"
	prefixKeyFlag   = "bucketPrefix"
	regionFlag      = "region"
	awsKeyFlag      = "awsKey"
	awsSecretFlag   = "awsSecret"
	dbURIFlag       = "dbUri"
	dbNameFlag      = "dbName"

	windowFlag    = "window"
	maxWindowFlag = "maxWindow"
	algorithmFlag = "algorithm"
	startFlag     = "start"
	endFlag       = "end"

	pathFlagName   = "path"
	outputFlagName = "output"
	pricesFlag     = "prices"
	eventsFlag     = "events"

	clientHostFlag   = "host"
	clientPortFlag   = "port"
	clientPrefixFlag = "prefix"
)

////////////////////////////////////////////////////////////////////////
//
// Utility Functions

func joinFlagNames(ids ...string) string { return strings.Join(ids, ", ") }

func mergeFlags(in ...[]cli.Flag) []cli.Flag {
	out := []cli.Flag{}

	for idx := range in {
		out = append(out, in[idx]...)
	}

	return out
}

////////////////////////////////////////////////////////////////////////
//
// Flag Groups

func addPathFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(pathFlagName, "filename", "file", "f"),
		Usage: "path to a prices csv file",
	})
}

func addOutputPath(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(outputFlagName, "o"),
		Usage: "path to the output file, prints to standard output when unset",
	})
}

func configFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:   configFlag,
		Usage:  "path to a yaml configuration file; flags override its values",
		EnvVar: "CRUDE_CONFIG",
	})
}

func serviceFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.IntFlag{
			Name:   joinFlagNames(servicePortFlag, "p"),
			Usage:  "specify a port to run the service on",
			Value:  4000,
			EnvVar: "CRUDE_SERVICE_PORT",
		},
		cli.StringFlag{
			Name:   servicePrefixFlag,
			Usage:  "url prefix for the versioned api routes",
			Value:  "api",
			EnvVar: "CRUDE_SERVICE_PREFIX",
		},
		cli.StringSliceFlag{
			Name:   corsOriginFlag,
			Usage:  "origin allowed to make cross-origin requests, may be repeated",
			EnvVar: "CRUDE_CORS_ORIGINS",
		},
		cli.IntFlag{
			Name:  numWorkersFlag,
			Usage: "specify the number of worker jobs this process will have",
			Value: 2,
		},
		cli.DurationFlag{
			Name:   refreshFlag,
			Usage:  "interval between dataset reloads, zero disables periodic reloads",
			EnvVar: "CRUDE_REFRESH_INTERVAL",
		},
		cli.IntFlag{
			Name:  maxWindowFlag,
			Usage: "largest window the change-point endpoint accepts",
			Value: 2000,
		},
	)
}

func storageFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:   storageTypeFlag,
			Usage:  "dataset source type: 'local', 's3' or 'mongodb'",
			Value:  string(storage.SourceLocal),
			EnvVar: "CRUDE_STORAGE_TYPE",
		},
		cli.StringFlag{
			Name:   bucketPathFlag,
			Usage:  "directory holding the prices and events csv files",
			Value:  "data",
			EnvVar: "CRUDE_DATA_PATH",
		},
		cli.StringFlag{
			Name:  pricesKeyFlag,
			Usage: "name of the prices csv object in the bucket",
			Value: storage.DefaultPricesKey,
		},
		cli.StringFlag{
			Name:  eventsKeyFlag,
			Usage: "name of the events csv object in the bucket",
			Value: storage.DefaultEventsKey,
		},
		cli.StringFlag{
			Name:   bucketNameFlag,
			Usage:  "s3 bucket holding the csv files",
			EnvVar: "CRUDE_S3_BUCKET",
		},
		cli.StringFlag{
			Name:  prefixKeyFlag,
			Usage: "key prefix of the csv objects in the s3 bucket",
		},
		cli.StringFlag{
			Name:   regionFlag,
			Usage:  "aws region of the s3 bucket",
			EnvVar: "AWS_REGION",
		},
		cli.StringFlag{
			Name:   awsKeyFlag,
			Usage:  "aws access key for the s3 bucket",
			EnvVar: "AWS_ACCESS_KEY_ID",
		},
		cli.StringFlag{
			Name:   awsSecretFlag,
			Usage:  "aws secret key for the s3 bucket",
			EnvVar: "AWS_SECRET_ACCESS_KEY",
		},
		cli.StringFlag{
			Name:   dbURIFlag,
			Usage:  "specify a mongodb connection string",
			Value:  "mongodb://localhost:27017",
			EnvVar: "CRUDE_MONGODB_URL",
		},
		cli.StringFlag{
			Name:   dbNameFlag,
			Usage:  "specify a database name to use",
			Value:  "crude",
			EnvVar: "CRUDE_DATABASE_NAME",
		})
}

func estimatorFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.IntFlag{
			Name:  joinFlagNames(windowFlag, "w"),
			Usage: "number of log-returns on each side of a candidate change point",
			Value: perf.DefaultWindow,
		},
		cli.StringFlag{
			Name:  algorithmFlag,
			Usage: "change-point algorithm: " + strings.Join(perf.Algorithms(), ", "),
			Value: perf.WindowScan,
		})
}

func dateRangeFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:  startFlag,
			Usage: "earliest date to include (inclusive)",
		},
		cli.StringFlag{
			Name:  endFlag,
			Usage: "latest date to include (inclusive)",
		})
}

func restClientFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:   clientHostFlag,
			Usage:  "host for the remote change-point service",
			Value:  "http://localhost",
			EnvVar: "CRUDE_CLIENT_HOST",
		},
		cli.IntFlag{
			Name:   clientPortFlag,
			Usage:  "port for the remote change-point service",
			Value:  4000,
			EnvVar: "CRUDE_CLIENT_PORT",
		},
		cli.StringFlag{
			Name:  clientPrefixFlag,
			Usage: "url prefix of the remote service",
			Value: "api",
		},
	)
}

func setFlagOrFirstPositional(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		val := c.String(name)
		if val == "" {
			if c.NArg() != 1 {
				return errors.Errorf("must specify exactly one positional argument for '%s'", name)
			}

			val = c.Args().Get(0)
		}

		return c.Set(name, val)
	}
}
