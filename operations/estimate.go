package operations

import (
	"os"

	"github.com/crude-signals/crude/parser"
	"github.com/crude-signals/crude/perf"
	"github.com/crude-signals/crude/rest/model"
	"github.com/crude-signals/crude/util"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Estimate returns the ./crude estimate sub-command, which runs the
// change-point estimator over a local prices file.
func Estimate() cli.Command {
	return cli.Command{
		Name:  "estimate",
		Usage: "estimate the change point of a local prices csv file",
		Flags: mergeFlags(
			addPathFlag(),
			addOutputPath(),
			estimatorFlags(),
			dateRangeFlags(),
		),
		Before: mergeBeforeFuncs(
			setFlagOrFirstPositional(pathFlagName),
			requireFileExists(pathFlagName),
		),
		Action: func(c *cli.Context) error {
			estimator, err := perf.NewEstimator(c.String(algorithmFlag))
			if err != nil {
				return errors.WithStack(err)
			}

			result, err := estimateFile(c.String(pathFlagName), estimator, c.Int(windowFlag), dateRangeFromFlags(c))
			if err != nil {
				return errors.WithStack(err)
			}

			return writeOutput(c, result)
		},
	}
}

func estimateFile(fn string, estimator perf.ChangePointEstimator, window int, tr util.TimeRange) (*model.APIChangePointResult, error) {
	if window < 1 {
		return nil, errors.Errorf("window must be positive, got %d", window)
	}

	f, err := os.Open(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "problem opening '%s'", fn)
	}
	defer f.Close()

	prices, report, err := parser.ParsePrices(f)
	if err != nil {
		return nil, errors.Wrapf(err, "problem parsing '%s'", fn)
	}

	grip.Debug(message.Fields{
		"message":   "parsed prices",
		"file":      fn,
		"rows":      report.Rows,
		"dropped":   report.Dropped,
		"algorithm": estimator.Info().Name,
		"window":    window,
	})

	if !tr.IsZero() {
		prices = prices.Filter(tr)
	}

	out := &model.APIChangePointResult{}
	if err = out.Import(estimator.Estimate(prices, window)); err != nil {
		return nil, errors.Wrap(err, "problem converting result")
	}

	return out, nil
}
