package operations

import (
	"os"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// validators run as cli.BeforeFuncs to check flag contents before a
// command's action runs.

var (
	requireClientHostFlag = func(c *cli.Context) error {
		if c.Parent().String(clientHostFlag) == "" {
			return errors.New("host not specified for client")
		}
		return nil
	}

	requireClientPortFlag = func(c *cli.Context) error {
		if c.Parent().Int(clientPortFlag) == 0 {
			return errors.New("port not specified for client")
		}
		return nil
	}
)

func requireStringFlag(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		if c.String(name) == "" {
			return errors.Errorf("flag '--%s' was not specified", name)
		}
		return nil
	}
}

func requireAtLeastOneFlag(names ...string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		for _, name := range names {
			if c.String(name) != "" {
				return nil
			}
		}
		return errors.Errorf("must set at least one flag from the following: %s", names)
	}
}

func requireFileExists(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		path := c.String(name)
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return errors.Errorf("file '%s' does not exist", path)
		}

		return nil
	}
}

func mergeBeforeFuncs(ops ...func(c *cli.Context) error) cli.BeforeFunc {
	return func(c *cli.Context) error {
		catcher := grip.NewBasicCatcher()

		for _, op := range ops {
			catcher.Add(op(c))
		}

		return catcher.Resolve()
	}
}
