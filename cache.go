package crude

import (
	"sync"

	"github.com/crude-signals/crude/model"
)

// datasetCache provides thread-safe access to the dataset snapshot
// currently being served. Snapshots are replaced whole and never modified
// after Put, so readers may hold on to one without locking.
type datasetCache struct {
	mu         sync.RWMutex
	current    *model.Dataset
	generation int
}

func newDatasetCache() *datasetCache { return &datasetCache{} }

// Put replaces the snapshot, returning its generation. A nil dataset is
// ignored and reported with generation 0.
func (c *datasetCache) Put(dataset *model.Dataset) int {
	if dataset == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = dataset
	c.generation++
	return c.generation
}

// Get returns the current snapshot, and false when none has been loaded.
func (c *datasetCache) Get() (*model.Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current, c.current != nil
}

// Generation counts the snapshots put so far.
func (c *datasetCache) Generation() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.generation
}
