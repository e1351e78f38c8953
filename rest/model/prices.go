package model

import (
	dbmodel "github.com/crude-signals/crude/model"
	"github.com/pkg/errors"
)

// APIPricePoint is a single daily price.
type APIPricePoint struct {
	Date  APIDate `json:"date"`
	Price float64 `json:"price"`
}

// Import transforms a PricePoint object into an APIPricePoint object.
func (a *APIPricePoint) Import(i interface{}) error {
	switch p := i.(type) {
	case dbmodel.PricePoint:
		a.Date = NewDate(p.Date)
		a.Price = p.Price
	default:
		return errors.Errorf("incorrect type %T when converting price point type", i)
	}
	return nil
}

// APILogReturn is the log-price difference from the previous observation.
type APILogReturn struct {
	Date      APIDate `json:"date"`
	LogReturn float64 `json:"log_return"`
}

// Import transforms a LogReturnPoint object into an APILogReturn object.
func (a *APILogReturn) Import(i interface{}) error {
	switch p := i.(type) {
	case dbmodel.LogReturnPoint:
		a.Date = NewDate(p.Date)
		a.LogReturn = p.LogReturn
	default:
		return errors.Errorf("incorrect type %T when converting log return type", i)
	}
	return nil
}

// ImportPrices converts a whole series. The result is never nil.
func ImportPrices(series dbmodel.PriceSeries) ([]APIPricePoint, error) {
	out := make([]APIPricePoint, len(series))
	for idx := range series {
		if err := out[idx].Import(series[idx]); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return out, nil
}

// ImportLogReturns converts a whole series. The result is never nil.
func ImportLogReturns(series dbmodel.LogReturnSeries) ([]APILogReturn, error) {
	out := make([]APILogReturn, len(series))
	for idx := range series {
		if err := out[idx].Import(series[idx]); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return out, nil
}
