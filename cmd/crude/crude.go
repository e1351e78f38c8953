package main

import (
	"os"

	"github.com/crude-signals/crude"
	"github.com/crude-signals/crude/operations"
	"github.com/joho/godotenv"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func main() {
	app := buildApp()
	err := app.Run(os.Args)
	grip.CatchEmergencyFatal(err)
}

func buildApp() *cli.App {
	app := cli.NewApp()

	app.Name = "crude"
	app.Usage = "an oil price change-point API"
	app.Version = crude.BuildRevision

	app.Commands = []cli.Command{
		operations.Service(),
		operations.Estimate(),
		operations.Import(),
		operations.Client(),
	}

	// global options, independent of the sub commands
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "level",
			Value: "info",
			Usage: "Specify lowest visible loglevel as string: 'emergency|alert|critical|error|warning|notice|info|debug'",
		},
		cli.StringFlag{
			Name:  "env",
			Value: ".env",
			Usage: "path to a dotenv file read before the flags; ignored when missing",
		},
	}

	app.Before = func(c *cli.Context) error {
		if err := loadDotEnv(c.String("env")); err != nil {
			return errors.WithStack(err)
		}
		return errors.WithStack(loggingSetup(app.Name, c.String("level")))
	}

	return app
}

// loadDotEnv exports the variables in fn so flag EnvVar lookups see
// them. Variables already set in the process win.
func loadDotEnv(fn string) error {
	if fn == "" {
		return nil
	}
	if _, err := os.Stat(fn); os.IsNotExist(err) {
		return nil
	}

	return errors.Wrapf(godotenv.Load(fn), "problem loading '%s'", fn)
}

// logging setup is separate to make it unit testable
func loggingSetup(name, logLevel string) error {
	sender := grip.GetSender()
	sender.SetName(name)

	lvl := sender.Level()
	lvl.Threshold = level.FromString(logLevel)
	return errors.WithStack(sender.SetLevel(lvl))
}
