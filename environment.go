package crude

import (
	"context"
	"sync"

	"github.com/crude-signals/crude/model"
	"github.com/crude-signals/crude/perf"
	"github.com/crude-signals/crude/storage"
	"github.com/mongodb/amboy"
	"github.com/mongodb/amboy/queue"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// ErrDatasetNotLoaded is returned by GetDataset before the first
// successful load.
var ErrDatasetNotLoaded = errors.New("dataset has not been loaded")

// Environment objects provide access to shared configuration and state,
// in a way that you can isolate and test for. Each service or command
// builds its own; there is no process-wide instance.
type Environment interface {
	// GetConf returns a copy of the validated configuration.
	GetConf() *Configuration

	// GetQueue retrieves the application's local queue, which runs the
	// background jobs.
	GetQueue() amboy.Queue

	GetSource() storage.DatasetSource
	// SetSource replaces the dataset source. The previous source is not
	// closed.
	SetSource(storage.DatasetSource) error

	GetEstimator() perf.ChangePointEstimator

	// GetDataset returns the snapshot currently served.
	GetDataset() (*model.Dataset, error)
	SetDataset(*model.Dataset) error
	// RefreshDataset reloads the dataset from the source and swaps it in.
	// On failure the previous snapshot keeps being served.
	RefreshDataset(context.Context) error
	DatasetGeneration() int

	Close(context.Context) error
}

// NewEnvironment validates the configuration, opens the configured source
// and starts a local queue bound to ctx.
func NewEnvironment(ctx context.Context, name string, conf *Configuration) (Environment, error) {
	if conf == nil {
		return nil, errors.New("configuration is nil")
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	env := &envState{
		name:    name,
		conf:    conf,
		dataset: newDatasetCache(),
	}

	var err error
	env.estimator, err = perf.NewEstimator(conf.Estimator)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	env.source, err = storage.NewSource(ctx, conf.Storage)
	if err != nil {
		return nil, errors.Wrapf(err, "problem opening %s source", conf.Storage.Type)
	}

	env.queue = queue.NewLocalLimitedSize(conf.NumWorkers, defaultQueueSize)
	if err = env.queue.Start(ctx); err != nil {
		catcher := grip.NewBasicCatcher()
		catcher.Wrap(err, "problem starting local queue")
		catcher.Add(env.source.Close(ctx))
		return nil, catcher.Resolve()
	}

	grip.Info(message.Fields{
		"message":   "configured environment",
		"name":      name,
		"source":    conf.Storage.Type,
		"estimator": conf.Estimator,
		"workers":   conf.NumWorkers,
	})

	return env, nil
}

type envState struct {
	name      string
	conf      *Configuration
	queue     amboy.Queue
	source    storage.DatasetSource
	estimator perf.ChangePointEstimator
	dataset   *datasetCache
	refreshMu sync.Mutex
	mutex     sync.RWMutex
}

func (c *envState) GetConf() *Configuration {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	// copy the struct
	out := &Configuration{}
	*out = *c.conf
	out.Service.CORSOrigins = append([]string(nil), c.conf.Service.CORSOrigins...)

	return out
}

func (c *envState) GetQueue() amboy.Queue {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.queue
}

func (c *envState) GetSource() storage.DatasetSource {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.source
}

func (c *envState) SetSource(source storage.DatasetSource) error {
	if source == nil {
		return errors.New("cannot set source to nil")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.source = source
	grip.Noticef("caching a '%s' source in the '%s' environment", source.Type(), c.name)
	return nil
}

func (c *envState) GetEstimator() perf.ChangePointEstimator {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.estimator
}

func (c *envState) GetDataset() (*model.Dataset, error) {
	dataset, ok := c.dataset.Get()
	if !ok {
		return nil, ErrDatasetNotLoaded
	}

	return dataset, nil
}

func (c *envState) SetDataset(dataset *model.Dataset) error {
	if dataset == nil {
		return errors.New("cannot set dataset to nil")
	}

	c.dataset.Put(dataset)
	return nil
}

func (c *envState) DatasetGeneration() int { return c.dataset.Generation() }

func (c *envState) RefreshDataset(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	dataset, err := storage.LoadDataset(ctx, c.GetSource())
	if err != nil {
		return errors.Wrap(err, "problem refreshing dataset")
	}

	generation := c.dataset.Put(dataset)
	grip.Info(message.Fields{
		"message":    "refreshed dataset",
		"env":        c.name,
		"generation": generation,
		"prices":     len(dataset.Prices),
		"events":     len(dataset.Events),
	})

	return nil
}

func (c *envState) Close(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	catcher := grip.NewBasicCatcher()
	if c.queue != nil {
		c.queue.Close(ctx)
	}
	if c.source != nil {
		catcher.Wrapf(c.source.Close(ctx), "problem closing %s source", c.source.Type())
	}

	return catcher.Resolve()
}
