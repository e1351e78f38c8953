package operations

import (
	"context"
	"os"

	"github.com/crude-signals/crude/parser"
	"github.com/crude-signals/crude/storage"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Import returns the ./crude import sub-command, which loads price and
// event csv files into a dataset source.
func Import() cli.Command {
	return cli.Command{
		Name:  "import",
		Usage: "load prices and events csv files into the configured storage",
		Flags: storageFlags(
			cli.StringFlag{
				Name:  pricesFlag,
				Usage: "path to a prices csv file with Date and Price columns",
			},
			cli.StringFlag{
				Name:  eventsFlag,
				Usage: "path to an events csv file with event_date, event_name and category columns",
			},
		),
		Before: mergeBeforeFuncs(
			requireAtLeastOneFlag(pricesFlag, eventsFlag),
			requireFileExists(pricesFlag),
			requireFileExists(eventsFlag),
		),
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			opts := storage.Options{}
			applyStorageFlags(c, &opts)

			source, err := storage.NewSource(ctx, opts)
			if err != nil {
				return errors.Wrap(err, "problem opening storage")
			}
			defer func() {
				grip.Warning(message.WrapError(source.Close(ctx), message.Fields{
					"message": "problem closing storage",
				}))
			}()

			return errors.WithStack(importFiles(ctx, source, c.String(pricesFlag), c.String(eventsFlag)))
		},
	}
}

// importFiles parses whichever files are named and saves them to the
// source. Empty file names are skipped.
func importFiles(ctx context.Context, source storage.DatasetSource, pricesFile, eventsFile string) error {
	if pricesFile != "" {
		f, err := os.Open(pricesFile)
		if err != nil {
			return errors.Wrapf(err, "problem opening '%s'", pricesFile)
		}
		defer f.Close()

		prices, report, err := parser.ParsePrices(f)
		if err != nil {
			return errors.Wrapf(err, "problem parsing '%s'", pricesFile)
		}
		if err = source.SavePrices(ctx, prices); err != nil {
			return errors.Wrap(err, "problem saving prices")
		}

		grip.Info(message.Fields{
			"message":  "imported prices",
			"file":     pricesFile,
			"storage":  source.Type(),
			"accepted": report.Accepted,
			"dropped":  report.Dropped,
		})
	}

	if eventsFile != "" {
		f, err := os.Open(eventsFile)
		if err != nil {
			return errors.Wrapf(err, "problem opening '%s'", eventsFile)
		}
		defer f.Close()

		events, report, err := parser.ParseEvents(f)
		if err != nil {
			return errors.Wrapf(err, "problem parsing '%s'", eventsFile)
		}
		if err = source.SaveEvents(ctx, events); err != nil {
			return errors.Wrap(err, "problem saving events")
		}

		grip.Info(message.Fields{
			"message":  "imported events",
			"file":     eventsFile,
			"storage":  source.Type(),
			"accepted": report.Accepted,
			"dropped":  report.Dropped,
		})
	}

	return nil
}
