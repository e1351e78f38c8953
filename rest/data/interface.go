package data

import (
	"context"

	"github.com/crude-signals/crude/rest/model"
	"github.com/crude-signals/crude/util"
)

// Connector abstracts the link between the service and API layers,
// allowing for changes in the service architecture without forcing changes
// to the API.
type Connector interface {
	// FindPrices returns the prices whose dates fall within the range,
	// ordered by date.
	FindPrices(context.Context, util.TimeRange) ([]model.APIPricePoint, error)
	// FindLogReturns derives log-returns from the full price history and
	// then returns those within the range.
	FindLogReturns(context.Context, util.TimeRange) ([]model.APILogReturn, error)
	// FindEvents returns the events within the range. Undated events are
	// only returned for an open range.
	FindEvents(context.Context, util.TimeRange) ([]model.APIEvent, error)
	// EstimateChangePoint runs the configured estimator over the prices in
	// the options' range.
	EstimateChangePoint(context.Context, ChangePointOptions) (*model.APIChangePointResult, error)
	// GetSummary describes the served price history.
	GetSummary(context.Context) (*model.APISummary, error)
}

// ChangePointOptions holds the arguments of a change point estimate.
type ChangePointOptions struct {
	Window    int
	TimeRange util.TimeRange
}
