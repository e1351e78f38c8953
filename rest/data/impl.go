package data

import (
	"context"
	"net/http"

	"github.com/crude-signals/crude"
	dbmodel "github.com/crude-signals/crude/model"
	"github.com/crude-signals/crude/perf"
	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
)

// DatasetConnector is a struct that implements all of the methods which
// connect to the service layer. It reads the snapshot currently cached in
// the environment.
type DatasetConnector struct {
	env crude.Environment
}

// CreateDatasetConnector returns a Connector backed by env.
func CreateDatasetConnector(env crude.Environment) Connector {
	return &DatasetConnector{
		env: env,
	}
}

func (dc *DatasetConnector) dataset(_ context.Context) (*dbmodel.Dataset, error) {
	dataset, err := dc.env.GetDataset()
	if errors.Cause(err) == crude.ErrDatasetNotLoaded {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "dataset has not been loaded yet",
		}
	}
	if err != nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    errors.Wrap(err, "problem getting dataset").Error(),
		}
	}

	return dataset, nil
}

func (dc *DatasetConnector) estimator() perf.ChangePointEstimator {
	return dc.env.GetEstimator()
}

// MockConnector serves a fixed dataset for testing.
type MockConnector struct {
	Dataset   *dbmodel.Dataset
	Estimator perf.ChangePointEstimator
}

func (mc *MockConnector) dataset(_ context.Context) (*dbmodel.Dataset, error) {
	if mc.Dataset == nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "dataset has not been loaded yet",
		}
	}
	return mc.Dataset, nil
}

func (mc *MockConnector) estimator() perf.ChangePointEstimator {
	if mc.Estimator == nil {
		return perf.NewWindowScanEstimator()
	}
	return mc.Estimator
}
