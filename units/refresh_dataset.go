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

const refreshDatasetJobName = "refresh-dataset"

func init() {
	registry.AddJobType(refreshDatasetJobName, func() amboy.Job { return makeRefreshDatasetJob() })
}

type refreshDatasetJob struct {
	*job.Base `bson:"metadata" json:"metadata" yaml:"metadata"`
	env       crude.Environment
}

func makeRefreshDatasetJob() *refreshDatasetJob {
	j := &refreshDatasetJob{
		Base: &job.Base{
			JobType: amboy.JobType{
				Name:    refreshDatasetJobName,
				Version: 1,
			},
		},
	}
	j.SetDependency(dependency.NewAlways())
	return j
}

// NewRefreshDatasetJob reloads the prices and events served by env from
// its configured source.
func NewRefreshDatasetJob(env crude.Environment, id string) amboy.Job {
	j := makeRefreshDatasetJob()
	j.env = env
	j.SetID(fmt.Sprintf("%s.%s", refreshDatasetJobName, id))
	return j
}

func (j *refreshDatasetJob) Run(ctx context.Context) {
	defer j.MarkComplete()

	if j.env == nil {
		j.AddError(errors.New("environment is not set"))
		return
	}

	before := j.env.DatasetGeneration()
	if err := j.env.RefreshDataset(ctx); err != nil {
		j.AddError(err)
		grip.Warning(message.WrapError(err, message.Fields{
			"job_id":  j.ID(),
			"job":     refreshDatasetJobName,
			"message": "keeping the previous dataset",
		}))
		return
	}

	grip.Debug(message.Fields{
		"job_id":     j.ID(),
		"job":        refreshDatasetJobName,
		"generation": j.env.DatasetGeneration(),
		"previous":   before,
	})
}
