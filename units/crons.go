package units

import (
	"context"
	"time"

	"github.com/crude-signals/crude"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/amboy"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const (
	tsFormat      = "2006-01-02.15-04-05"
	statsInterval = 5 * time.Minute
)

// StartCrons schedules the background jobs on the environment's queue.
// The dataset refresh only runs when a refresh interval is configured.
func StartCrons(ctx context.Context, env crude.Environment) error {
	opts := amboy.QueueOperationConfig{
		ContinueOnError: true,
		LogErrors:       false,
		DebugLogging:    false,
	}

	q := env.GetQueue()
	if q == nil {
		return errors.New("environment has no queue")
	}
	conf := env.GetConf()

	grip.Info(message.Fields{
		"message":          "starting background cron jobs",
		"opts":             opts,
		"started":          q.Info().Started,
		"stats":            q.Stats(ctx),
		"refresh_interval": conf.RefreshInterval.String(),
	})

	amboy.IntervalQueueOperation(ctx, q, statsInterval, time.Now(), opts, func(ctx context.Context, queue amboy.Queue) error {
		return queue.Put(ctx, NewAmboyStatsCollector(env, utility.RoundPartOfMinute(0).Format(tsFormat)))
	})

	if conf.RefreshInterval > 0 {
		amboy.IntervalQueueOperation(ctx, q, conf.RefreshInterval, time.Now().Add(conf.RefreshInterval), opts, func(ctx context.Context, queue amboy.Queue) error {
			return queue.Put(ctx, NewRefreshDatasetJob(env, time.Now().UTC().Format(tsFormat)))
		})
	}

	return nil
}
