package model

import (
	dbmodel "github.com/crude-signals/crude/model"
	"github.com/pkg/errors"
)

// APISummary describes the extent of the served price history. Dates are
// null when there are no prices.
type APISummary struct {
	StartDate    APIDate `json:"start_date"`
	EndDate      APIDate `json:"end_date"`
	TotalRecords int     `json:"total_records"`
	EventCount   int     `json:"event_count"`
}

// Import transforms a Summary object into an APISummary object.
func (a *APISummary) Import(i interface{}) error {
	switch s := i.(type) {
	case dbmodel.Summary:
		a.StartDate = NewDate(s.StartDate)
		a.EndDate = NewDate(s.EndDate)
		a.TotalRecords = s.TotalRecords
		a.EventCount = s.EventCount
	default:
		return errors.Errorf("incorrect type %T when converting summary type", i)
	}
	return nil
}

// APIHealth is the body of the health endpoint.
type APIHealth struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Revision string `json:"revision,omitempty"`
}
