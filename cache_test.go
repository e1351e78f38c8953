package crude

import (
	"sync"
	"testing"

	"github.com/crude-signals/crude/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetCache(t *testing.T) {
	t.Run("EmptyUntilPut", func(t *testing.T) {
		cache := newDatasetCache()
		dataset, ok := cache.Get()
		assert.False(t, ok)
		assert.Nil(t, dataset)
		assert.Zero(t, cache.Generation())
	})
	t.Run("PutReplacesSnapshot", func(t *testing.T) {
		cache := newDatasetCache()
		first := model.NewDataset(nil, nil)
		second := model.NewDataset(model.PriceSeries{{Price: 1}}, nil)

		assert.Equal(t, 1, cache.Put(first))
		assert.Equal(t, 2, cache.Put(second))

		dataset, ok := cache.Get()
		require.True(t, ok)
		assert.Exactly(t, second, dataset)
		assert.Equal(t, 2, cache.Generation())
	})
	t.Run("NilIsIgnored", func(t *testing.T) {
		cache := newDatasetCache()
		first := model.NewDataset(nil, nil)
		cache.Put(first)

		assert.Zero(t, cache.Put(nil))
		dataset, ok := cache.Get()
		require.True(t, ok)
		assert.Exactly(t, first, dataset)
	})
	t.Run("ConcurrentAccess", func(t *testing.T) {
		cache := newDatasetCache()
		wg := sync.WaitGroup{}
		for i := 0; i < 32; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				cache.Put(model.NewDataset(nil, nil))
			}()
			go func() {
				defer wg.Done()
				_, _ = cache.Get()
			}()
		}
		wg.Wait()
		assert.Equal(t, 32, cache.Generation())
	})
}
