package operations

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/crude-signals/crude"
	"github.com/crude-signals/crude/rest"
	"github.com/crude-signals/crude/units"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Service returns the ./crude service sub-command object, which is
// responsible for starting the change-point api.
func Service() cli.Command {
	return cli.Command{
		Name:  "service",
		Usage: "run the change-point api service",
		Flags: mergeFlags(
			configFlags(),
			serviceFlags(),
			storageFlags(),
			estimatorFlags(),
		),
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			conf, err := buildConfiguration(c)
			if err != nil {
				return errors.WithStack(err)
			}

			env, err := crude.NewEnvironment(ctx, crude.ServiceName, conf)
			if err != nil {
				return errors.Wrap(err, "problem configuring environment")
			}
			defer func() {
				grip.Warning(message.WrapError(env.Close(context.Background()), message.Fields{
					"message": "problem closing environment",
				}))
			}()

			if err = env.RefreshDataset(ctx); err != nil {
				return errors.Wrap(err, "problem loading dataset")
			}

			if err = units.StartCrons(ctx, env); err != nil {
				return errors.Wrap(err, "problem starting background jobs")
			}

			service := &rest.Service{Environment: env}
			if err = service.Validate(); err != nil {
				return errors.Wrap(err, "problem validating service")
			}

			grip.Notice(message.Fields{
				"message":  "starting change-point service",
				"port":     service.Port,
				"storage":  conf.Storage.Type,
				"refresh":  conf.RefreshInterval.String(),
				"revision": crude.BuildRevision,
			})

			if err = service.Start(ctx); err != nil {
				return errors.Wrap(err, "problem running service")
			}

			grip.Info("completed service, terminating.")
			return nil
		},
	}
}
