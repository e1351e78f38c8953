package units

import (
	"context"
	"testing"
	"time"

	"github.com/crude-signals/crude"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/amboy"
	"github.com/mongodb/amboy/registry"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshDatasetJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("Factory", func(t *testing.T) {
		factory, err := registry.GetJobFactory(refreshDatasetJobName)
		require.NoError(t, err)
		j, ok := factory().(*refreshDatasetJob)
		require.True(t, ok)
		assert.Equal(t, refreshDatasetJobName, j.Type().Name)
	})
	t.Run("LoadsDataset", func(t *testing.T) {
		env, _ := testEnvironment(ctx, t, nil)

		j := NewRefreshDatasetJob(env, utility.RandomString())
		j.Run(ctx)
		assert.True(t, j.Status().Completed)
		require.NoError(t, j.Error())

		dataset, err := env.GetDataset()
		require.NoError(t, err)
		assert.Len(t, dataset.Prices, 3)
		assert.Equal(t, 1, env.DatasetGeneration())
	})
	t.Run("SourceFailureKeepsSnapshot", func(t *testing.T) {
		env, source := testEnvironment(ctx, t, nil)
		require.NoError(t, env.RefreshDataset(ctx))
		source.Err = errors.New("connection refused")

		j := NewRefreshDatasetJob(env, utility.RandomString())
		j.Run(ctx)
		assert.True(t, j.Status().Completed)
		assert.Error(t, j.Error())

		dataset, err := env.GetDataset()
		require.NoError(t, err)
		assert.Len(t, dataset.Prices, 3)
	})
	t.Run("NoEnvironment", func(t *testing.T) {
		j := makeRefreshDatasetJob()
		j.Run(ctx)
		assert.True(t, j.Status().Completed)
		assert.Error(t, j.Error())
	})
}

func TestAmboyStatsCollector(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env, _ := testEnvironment(ctx, t, nil)
	j := NewAmboyStatsCollector(env, utility.RandomString())
	j.Run(ctx)
	assert.True(t, j.Status().Completed)
	assert.NoError(t, j.Error())

	j = makeAmboyStatsCollector()
	j.Run(ctx)
	assert.Error(t, j.Error())
}

func TestStartCrons(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("SchedulesRefresh", func(t *testing.T) {
		env, _ := testEnvironment(ctx, t, &crude.Configuration{RefreshInterval: 50 * time.Millisecond})
		require.NoError(t, StartCrons(ctx, env))

		retryOp := func() (bool, error) {
			if env.DatasetGeneration() == 0 {
				return true, errors.New("dataset not refreshed yet")
			}
			return false, nil
		}
		assert.NoError(t, utility.Retry(ctx, retryOp, utility.RetryOptions{
			MaxAttempts: 20,
			MinDelay:    50 * time.Millisecond,
			MaxDelay:    time.Second,
		}))
	})
	t.Run("NoRefreshWithoutInterval", func(t *testing.T) {
		env, _ := testEnvironment(ctx, t, nil)
		require.NoError(t, StartCrons(ctx, env))

		q := env.GetQueue()
		amboy.WaitInterval(ctx, q, 10*time.Millisecond)
		assert.Zero(t, env.DatasetGeneration())
	})
}
