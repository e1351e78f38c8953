package rest

import (
	"net/http"
	"time"

	"github.com/crude-signals/crude"
	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

////////////////////////////////////////////////////////////////////////
//
// GET /status

type StatusResponse struct {
	Revision          string     `json:"revision,omitempty"`
	Storage           string     `json:"storage"`
	Estimator         string     `json:"estimator"`
	DatasetGeneration int        `json:"dataset_generation"`
	DatasetLoadedAt   *time.Time `json:"dataset_loaded_at,omitempty"`
	QueueStarted      bool       `json:"queue_started"`
	QueueRunning      int        `json:"queue_running"`
	QueuePending      int        `json:"queue_pending"`
	QueueCompleted    int        `json:"queue_completed"`
}

// statusHandler reports the state of the process rather than of the
// data it serves.
func (s *Service) statusHandler(w http.ResponseWriter, r *http.Request) {
	conf := s.Environment.GetConf()
	resp := &StatusResponse{
		Revision:          crude.BuildRevision,
		Storage:           string(conf.Storage.Type),
		Estimator:         s.Environment.GetEstimator().Info().Name,
		DatasetGeneration: s.Environment.DatasetGeneration(),
	}

	if dataset, err := s.Environment.GetDataset(); err == nil {
		loadedAt := dataset.LoadedAt
		resp.DatasetLoadedAt = &loadedAt
	} else {
		logRequestError(r, err)
	}

	if q := s.Environment.GetQueue(); q != nil {
		resp.QueueStarted = q.Info().Started
		stats := q.Stats(r.Context())
		resp.QueueRunning = stats.Running
		resp.QueuePending = stats.Pending
		resp.QueueCompleted = stats.Completed
	}

	gimlet.WriteJSON(w, resp)
}

func logRequestError(r *http.Request, err error) {
	grip.Warning(message.WrapError(err, message.Fields{
		"method":  r.Method,
		"remote":  r.RemoteAddr,
		"request": gimlet.GetRequestID(r.Context()),
		"path":    r.URL.Path,
	}))
}
