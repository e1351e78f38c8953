package operations

import (
	"context"

	"github.com/crude-signals/crude/rest"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Client returns the ./crude client sub-command, which queries a
// running change-point service.
func Client() cli.Command {
	return cli.Command{
		Name:  "client",
		Usage: "query a running change-point service",
		Flags: restClientFlags(),
		Subcommands: []cli.Command{
			printHealth(),
			printSummary(),
			printChangePoint(),
		},
	}
}

func withClient(c *cli.Context, op func(context.Context, *rest.Client) (interface{}, error)) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpClient := utility.GetHTTPClient()
	defer utility.PutHTTPClient(httpClient)

	parent := c.Parent()
	client, err := rest.NewClientFromExisting(httpClient, parent.String(clientHostFlag), parent.Int(clientPortFlag), parent.String(clientPrefixFlag))
	if err != nil {
		return errors.Wrap(err, "problem creating REST client")
	}

	out, err := op(ctx, client)
	if err != nil {
		return errors.WithStack(err)
	}

	return writeOutput(c, out)
}

func printHealth() cli.Command {
	return cli.Command{
		Name:   "health",
		Usage:  "prints the health document of the service",
		Flags:  addOutputPath(),
		Before: mergeBeforeFuncs(requireClientHostFlag, requireClientPortFlag),
		Action: func(c *cli.Context) error {
			return withClient(c, func(ctx context.Context, client *rest.Client) (interface{}, error) {
				return client.GetHealth(ctx)
			})
		},
	}
}

func printSummary() cli.Command {
	return cli.Command{
		Name:   "summary",
		Usage:  "prints the dataset summary",
		Flags:  addOutputPath(),
		Before: mergeBeforeFuncs(requireClientHostFlag, requireClientPortFlag),
		Action: func(c *cli.Context) error {
			return withClient(c, func(ctx context.Context, client *rest.Client) (interface{}, error) {
				return client.GetSummary(ctx)
			})
		},
	}
}

func printChangePoint() cli.Command {
	return cli.Command{
		Name:  "change-point",
		Usage: "prints the change-point estimate of the remote dataset",
		Flags: mergeFlags(
			addOutputPath(),
			dateRangeFlags(),
			[]cli.Flag{
				cli.IntFlag{
					Name:  joinFlagNames(windowFlag, "w"),
					Usage: "window size, the service default is used when unset",
				},
			},
		),
		Before: mergeBeforeFuncs(requireClientHostFlag, requireClientPortFlag),
		Action: func(c *cli.Context) error {
			dr := rest.DateRange{Start: c.String(startFlag), End: c.String(endFlag)}
			return withClient(c, func(ctx context.Context, client *rest.Client) (interface{}, error) {
				return client.GetChangePoint(ctx, c.Int(windowFlag), dr)
			})
		},
	}
}
