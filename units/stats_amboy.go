package units

import (
	"context"
	"fmt"

	"github.com/crude-signals/crude"
	"github.com/mongodb/amboy"
	"github.com/mongodb/amboy/dependency"
	"github.com/mongodb/amboy/job"
	"github.com/mongodb/amboy/registry"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const amboyStatsCollectorJobName = "amboy-stats-collector"

func init() {
	registry.AddJobType(amboyStatsCollectorJobName,
		func() amboy.Job { return makeAmboyStatsCollector() })
}

type amboyStatsCollector struct {
	job.Base `bson:"job_base" json:"job_base" yaml:"job_base"`
	env      crude.Environment
}

// NewAmboyStatsCollector logs the status of the queue registered in the
// environment together with the generation of the served dataset.
func NewAmboyStatsCollector(env crude.Environment, id string) amboy.Job {
	j := makeAmboyStatsCollector()
	j.env = env
	j.SetID(fmt.Sprintf("%s-%s", amboyStatsCollectorJobName, id))
	return j
}

func makeAmboyStatsCollector() *amboyStatsCollector {
	j := &amboyStatsCollector{
		Base: job.Base{
			JobType: amboy.JobType{
				Name:    amboyStatsCollectorJobName,
				Version: 0,
			},
		},
	}

	j.SetDependency(dependency.NewAlways())
	return j
}

func (j *amboyStatsCollector) Run(ctx context.Context) {
	defer j.MarkComplete()

	if j.env == nil {
		j.AddError(errors.New("environment is not set"))
		return
	}

	q := j.env.GetQueue()
	if q == nil || !q.Info().Started {
		return
	}

	grip.Info(message.Fields{
		"message":            "amboy local queue stats",
		"stats":              q.Stats(ctx),
		"dataset_generation": j.env.DatasetGeneration(),
	})
}
