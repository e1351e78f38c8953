package units

import (
	"context"
	"testing"
	"time"

	"github.com/crude-signals/crude"
	"github.com/crude-signals/crude/model"
	"github.com/crude-signals/crude/storage"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2020, time.January, d, 0, 0, 0, 0, time.UTC)
}

func testEnvironment(ctx context.Context, t *testing.T, conf *crude.Configuration) (crude.Environment, *storage.MemorySource) {
	if conf == nil {
		conf = &crude.Configuration{}
	}
	conf.Storage.Type = storage.SourceMemory

	env, err := crude.NewEnvironment(ctx, "crude.units.testing", conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = env.Close(context.Background()) })

	source := storage.NewMemorySource(model.PriceSeries{
		{Date: day(1), Price: 60.1},
		{Date: day(2), Price: 61.2},
		{Date: day(3), Price: 59.8},
	}, nil)
	require.NoError(t, env.SetSource(source))

	return env, source
}
