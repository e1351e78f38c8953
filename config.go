package crude

import (
	"time"

	"github.com/crude-signals/crude/perf"
	"github.com/crude-signals/crude/storage"
	"github.com/crude-signals/crude/util"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

const (
	defaultPort       = 4000
	defaultPrefix     = "api"
	defaultMaxWindow  = 2000
	defaultNumWorkers = 2
	defaultQueueSize  = 1024
)

// Configuration describes a service or command invocation.
type Configuration struct {
	Service         ServiceConfig   `yaml:"service"`
	Storage         storage.Options `yaml:"storage"`
	Estimator       string          `yaml:"estimator"`
	NumWorkers      int             `yaml:"num_workers"`
	RefreshInterval time.Duration   `yaml:"refresh_interval"`
}

// ServiceConfig holds the settings of the REST service.
type ServiceConfig struct {
	Port          int      `yaml:"port"`
	Prefix        string   `yaml:"prefix"`
	CORSOrigins   []string `yaml:"cors_origins"`
	DefaultWindow int      `yaml:"default_window"`
	MaxWindow     int      `yaml:"max_window"`
}

// LoadConfiguration reads a YAML configuration file. The result has not
// been validated.
func LoadConfiguration(fn string) (*Configuration, error) {
	conf := &Configuration{}
	if err := util.ReadFileYAML(fn, conf); err != nil {
		return nil, errors.Wrapf(err, "problem reading configuration from '%s'", fn)
	}

	return conf, nil
}

// Validate fills in defaults and reports every invalid setting at once.
func (c *Configuration) Validate() error {
	catcher := grip.NewBasicCatcher()

	if c.Service.Port == 0 {
		c.Service.Port = defaultPort
	}
	if c.Service.Prefix == "" {
		c.Service.Prefix = defaultPrefix
	}
	if c.Service.DefaultWindow == 0 {
		c.Service.DefaultWindow = perf.DefaultWindow
	}
	if c.Service.MaxWindow == 0 {
		c.Service.MaxWindow = defaultMaxWindow
	}
	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}
	if c.Estimator == "" {
		c.Estimator = perf.WindowScan
	}

	catcher.NewWhen(c.Service.Port < 0 || c.Service.Port > 65535, "must specify a valid port")
	catcher.NewWhen(c.Service.MaxWindow < 1, "max window must be positive")
	catcher.NewWhen(c.Service.DefaultWindow < 1 || c.Service.DefaultWindow > c.Service.MaxWindow,
		"default window must be positive and no larger than the max window")
	catcher.NewWhen(c.NumWorkers < 1, "must specify a valid number of amboy workers")
	catcher.NewWhen(c.RefreshInterval < 0, "refresh interval cannot be negative")

	_, err := perf.NewEstimator(c.Estimator)
	catcher.Add(err)
	catcher.Add(c.Storage.Validate())

	return catcher.Resolve()
}
