package data

import (
	"context"

	dbmodel "github.com/crude-signals/crude/model"
	"github.com/crude-signals/crude/perf"
	"github.com/crude-signals/crude/rest/model"
	"github.com/crude-signals/crude/util"
	"github.com/pkg/errors"
)

type datasetProvider interface {
	dataset(context.Context) (*dbmodel.Dataset, error)
	estimator() perf.ChangePointEstimator
}

/////////////////////////////////
// DatasetConnector Implementation
/////////////////////////////////

func (dc *DatasetConnector) FindPrices(ctx context.Context, tr util.TimeRange) ([]model.APIPricePoint, error) {
	return findPrices(ctx, dc, tr)
}

func (dc *DatasetConnector) FindLogReturns(ctx context.Context, tr util.TimeRange) ([]model.APILogReturn, error) {
	return findLogReturns(ctx, dc, tr)
}

func (dc *DatasetConnector) FindEvents(ctx context.Context, tr util.TimeRange) ([]model.APIEvent, error) {
	return findEvents(ctx, dc, tr)
}

func (dc *DatasetConnector) EstimateChangePoint(ctx context.Context, opts ChangePointOptions) (*model.APIChangePointResult, error) {
	return estimateChangePoint(ctx, dc, opts)
}

func (dc *DatasetConnector) GetSummary(ctx context.Context) (*model.APISummary, error) {
	return getSummary(ctx, dc)
}

///////////////////////////////
// MockConnector Implementation
///////////////////////////////

func (mc *MockConnector) FindPrices(ctx context.Context, tr util.TimeRange) ([]model.APIPricePoint, error) {
	return findPrices(ctx, mc, tr)
}

func (mc *MockConnector) FindLogReturns(ctx context.Context, tr util.TimeRange) ([]model.APILogReturn, error) {
	return findLogReturns(ctx, mc, tr)
}

func (mc *MockConnector) FindEvents(ctx context.Context, tr util.TimeRange) ([]model.APIEvent, error) {
	return findEvents(ctx, mc, tr)
}

func (mc *MockConnector) EstimateChangePoint(ctx context.Context, opts ChangePointOptions) (*model.APIChangePointResult, error) {
	return estimateChangePoint(ctx, mc, opts)
}

func (mc *MockConnector) GetSummary(ctx context.Context) (*model.APISummary, error) {
	return getSummary(ctx, mc)
}

func findPrices(ctx context.Context, p datasetProvider, tr util.TimeRange) ([]model.APIPricePoint, error) {
	dataset, err := p.dataset(ctx)
	if err != nil {
		return nil, err
	}

	out, err := model.ImportPrices(dataset.Prices.Filter(tr))
	if err != nil {
		return nil, errors.Wrap(err, "problem converting prices")
	}

	return out, nil
}

func findLogReturns(ctx context.Context, p datasetProvider, tr util.TimeRange) ([]model.APILogReturn, error) {
	dataset, err := p.dataset(ctx)
	if err != nil {
		return nil, err
	}

	out, err := model.ImportLogReturns(dataset.Prices.LogReturns().Filter(tr))
	if err != nil {
		return nil, errors.Wrap(err, "problem converting log returns")
	}

	return out, nil
}

func findEvents(ctx context.Context, p datasetProvider, tr util.TimeRange) ([]model.APIEvent, error) {
	dataset, err := p.dataset(ctx)
	if err != nil {
		return nil, err
	}

	out, err := model.ImportEvents(dbmodel.FilterEvents(dataset.Events, tr))
	if err != nil {
		return nil, errors.Wrap(err, "problem converting events")
	}

	return out, nil
}

func estimateChangePoint(ctx context.Context, p datasetProvider, opts ChangePointOptions) (*model.APIChangePointResult, error) {
	dataset, err := p.dataset(ctx)
	if err != nil {
		return nil, err
	}

	prices := dataset.Prices
	if !opts.TimeRange.IsZero() {
		prices = prices.Filter(opts.TimeRange)
	}

	out := &model.APIChangePointResult{}
	if err = out.Import(p.estimator().Estimate(prices, opts.Window)); err != nil {
		return nil, errors.Wrap(err, "problem converting change point result")
	}

	return out, nil
}

func getSummary(ctx context.Context, p datasetProvider) (*model.APISummary, error) {
	dataset, err := p.dataset(ctx)
	if err != nil {
		return nil, err
	}

	out := &model.APISummary{}
	if err = out.Import(dataset.Summary()); err != nil {
		return nil, errors.Wrap(err, "problem converting summary")
	}

	return out, nil
}
