package rest

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dbmodel "github.com/crude-signals/crude/model"
	"github.com/crude-signals/crude/parser"
	"github.com/crude-signals/crude/perf"
	"github.com/crude-signals/crude/rest/data"
	"github.com/crude-signals/crude/rest/model"
	"github.com/evergreen-ci/gimlet"
	"github.com/stretchr/testify/suite"
)

func day(d int) time.Time {
	return time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

// testDataset rises 1% a day for 40 days and then falls 2% a day.
func testDataset() *dbmodel.Dataset {
	prices := dbmodel.PriceSeries{}
	price := 50.0
	for idx := 0; idx <= 80; idx++ {
		prices = append(prices, dbmodel.PricePoint{Date: day(idx), Price: price})
		if idx < 40 {
			price *= 1.01
		} else {
			price *= 0.98
		}
	}

	return dbmodel.NewDataset(prices, []dbmodel.Event{
		{Date: day(10), Name: "quota cut", Category: "OPEC Policy"},
		{Date: day(41), Name: "demand shock", Category: "Macro", Attributes: map[string]string{"region": "global"}},
	})
}

type DatasetHandlerSuite struct {
	sc data.MockConnector
	rh map[string]gimlet.RouteHandler

	suite.Suite
}

func TestDatasetHandlerSuite(t *testing.T) {
	suite.Run(t, new(DatasetHandlerSuite))
}

func (s *DatasetHandlerSuite) SetupTest() {
	s.sc = data.MockConnector{
		Dataset:   testDataset(),
		Estimator: perf.NewWindowScanEstimator(),
	}
	s.rh = map[string]gimlet.RouteHandler{
		"health":       makeHealthHandler(),
		"prices":       makeGetPrices(&s.sc),
		"log_returns":  makeGetLogReturns(&s.sc),
		"events":       makeGetEvents(&s.sc),
		"change_point": makeGetChangePoint(&s.sc, perf.DefaultWindow, 60),
		"summary":      makeGetSummary(&s.sc),
	}
}

func (s *DatasetHandlerSuite) parse(name, target string) gimlet.RouteHandler {
	rh := s.rh[name].Factory()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	s.Require().NoError(rh.Parse(context.TODO(), req))
	return rh
}

func (s *DatasetHandlerSuite) TestFactoryKeepsConnector() {
	for name, rh := range s.rh {
		s.NotSame(rh, rh.Factory(), name)
	}
	s.Equal(s.rh["change_point"].(*changePointGetHandler).maxWindow,
		s.rh["change_point"].Factory().(*changePointGetHandler).maxWindow)
}

func (s *DatasetHandlerSuite) TestHealth() {
	resp := s.parse("health", "/health").Run(context.TODO())
	s.Require().NotNil(resp)
	s.Equal(http.StatusOK, resp.Status())
	health, ok := resp.Data().(model.APIHealth)
	s.Require().True(ok)
	s.Equal("ok", health.Status)
	s.Equal("change-point-api", health.Service)
}

func (s *DatasetHandlerSuite) TestPrices() {
	resp := s.parse("prices", "/prices?start=2020-01-05&end=2020-01-09").Run(context.TODO())
	s.Require().NotNil(resp)
	s.Equal(http.StatusOK, resp.Status())
	prices, ok := resp.Data().([]model.APIPricePoint)
	s.Require().True(ok)
	s.Require().Len(prices, 5)
	s.Equal(day(4), prices[0].Date.Time())
	s.Equal(day(8), prices[4].Date.Time())
}

func (s *DatasetHandlerSuite) TestPricesFromSourceWithNonFiniteCells() {
	prices, report, err := parser.ParsePrices(strings.NewReader(strings.Join([]string{
		"Date,Price",
		"2020-01-01,60.5",
		"2020-01-02,NaN",
		"2020-01-03,inf",
		"2020-01-04,61.25",
	}, "\n")))
	s.Require().NoError(err)
	s.Equal(2, report.Dropped)
	s.sc.Dataset = dbmodel.NewDataset(prices, nil)

	resp := s.parse("prices", "/prices").Run(context.TODO())
	s.Require().NotNil(resp)
	s.Equal(http.StatusOK, resp.Status())
	out, ok := resp.Data().([]model.APIPricePoint)
	s.Require().True(ok)
	s.Len(out, 2)

	_, err = json.Marshal(out)
	s.NoError(err)

	resp = s.parse("summary", "/summary").Run(context.TODO())
	s.Require().NotNil(resp)
	summary, ok := resp.Data().(*model.APISummary)
	s.Require().True(ok)
	s.Equal(2, summary.TotalRecords)
}

func (s *DatasetHandlerSuite) TestPricesUnparseableBoundsAreIgnored() {
	resp := s.parse("prices", "/prices?start=yesterday&end=").Run(context.TODO())
	s.Require().NotNil(resp)
	s.Equal(http.StatusOK, resp.Status())
	prices, ok := resp.Data().([]model.APIPricePoint)
	s.Require().True(ok)
	s.Len(prices, 81)
}

func (s *DatasetHandlerSuite) TestPricesInvertedRange() {
	resp := s.parse("prices", "/prices?start=2020-02-01&end=2020-01-01").Run(context.TODO())
	s.Require().NotNil(resp)
	s.Equal(http.StatusOK, resp.Status())
	prices, ok := resp.Data().([]model.APIPricePoint)
	s.Require().True(ok)
	s.NotNil(prices)
	s.Empty(prices)
}

func (s *DatasetHandlerSuite) TestLogReturns() {
	resp := s.parse("log_returns", "/log-returns?start=2020-01-01").Run(context.TODO())
	s.Require().NotNil(resp)
	s.Equal(http.StatusOK, resp.Status())
	returns, ok := resp.Data().([]model.APILogReturn)
	s.Require().True(ok)
	s.Require().Len(returns, 80)
	s.Equal(day(1), returns[0].Date.Time())
}

func (s *DatasetHandlerSuite) TestEvents() {
	resp := s.parse("events", "/events?start=2020-02-01").Run(context.TODO())
	s.Require().NotNil(resp)
	s.Equal(http.StatusOK, resp.Status())
	events, ok := resp.Data().([]model.APIEvent)
	s.Require().True(ok)
	s.Require().Len(events, 1)
	s.Equal("demand shock", events[0].Name)
}

func (s *DatasetHandlerSuite) TestChangePointDefaultWindow() {
	for _, target := range []string{"/change-point", "/change-point?window=", "/change-point?window=abc", "/change-point?window=2.5"} {
		rh := s.parse("change_point", target)
		s.Equal(perf.DefaultWindow, rh.(*changePointGetHandler).opts.Window, target)

		resp := rh.Run(context.TODO())
		s.Require().NotNil(resp)
		s.Equal(http.StatusOK, resp.Status())
		result, ok := resp.Data().(*model.APIChangePointResult)
		s.Require().True(ok)
		s.Require().True(result.IsOK())
		s.Equal(day(41), result.ChangePointDate.Time())
		s.Equal(perf.DefaultWindow, result.Window)
		s.InDelta(math.Log(0.98)-math.Log(1.01), *result.MeanShift, 1e-12)
	}
}

func (s *DatasetHandlerSuite) TestChangePointInsufficientData() {
	resp := s.parse("change_point", "/change-point?window=40").Run(context.TODO())
	s.Require().NotNil(resp)
	s.Equal(http.StatusOK, resp.Status())
	result, ok := resp.Data().(*model.APIChangePointResult)
	s.Require().True(ok)
	s.Equal(string(perf.StatusInsufficientData), result.Status)
	s.Equal(40, result.Window)

	resp = s.parse("change_point", "/change-point?window=10&start=2020-02-01&end=2020-02-10").Run(context.TODO())
	s.Require().NotNil(resp)
	result, ok = resp.Data().(*model.APIChangePointResult)
	s.Require().True(ok)
	s.Equal(string(perf.StatusInsufficientData), result.Status)
}

func (s *DatasetHandlerSuite) TestChangePointInvalidWindow() {
	for _, target := range []string{"/change-point?window=0", "/change-point?window=-5", "/change-point?window=61"} {
		rh := s.rh["change_point"].Factory()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		err := rh.Parse(context.TODO(), req)
		s.Require().Error(err, target)
		errResp, ok := err.(gimlet.ErrorResponse)
		s.Require().True(ok)
		s.Equal(http.StatusBadRequest, errResp.StatusCode)
	}
}

func (s *DatasetHandlerSuite) TestSummary() {
	resp := s.parse("summary", "/summary").Run(context.TODO())
	s.Require().NotNil(resp)
	s.Equal(http.StatusOK, resp.Status())
	summary, ok := resp.Data().(*model.APISummary)
	s.Require().True(ok)
	s.Equal(day(0), summary.StartDate.Time())
	s.Equal(day(80), summary.EndDate.Time())
	s.Equal(81, summary.TotalRecords)
	s.Equal(2, summary.EventCount)
}

func (s *DatasetHandlerSuite) TestNoDataset() {
	s.sc.Dataset = nil
	for _, name := range []string{"prices", "log_returns", "events", "change_point", "summary"} {
		resp := s.parse(name, "/").Run(context.TODO())
		s.Require().NotNil(resp)
		s.Equal(http.StatusServiceUnavailable, resp.Status(), name)
	}
}
