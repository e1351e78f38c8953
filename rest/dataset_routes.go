package rest

import (
	"context"
	"net/http"

	"github.com/crude-signals/crude"
	"github.com/crude-signals/crude/rest/data"
	"github.com/crude-signals/crude/rest/model"
	"github.com/crude-signals/crude/util"
	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const (
	startParam  = "start"
	endParam    = "end"
	windowParam = "window"
)

///////////////////////////////////////////////////////////////////////////////
//
// GET /health

type healthHandler struct{}

func makeHealthHandler() gimlet.RouteHandler { return &healthHandler{} }

func (h *healthHandler) Factory() gimlet.RouteHandler                   { return &healthHandler{} }
func (h *healthHandler) Parse(_ context.Context, _ *http.Request) error { return nil }

func (h *healthHandler) Run(_ context.Context) gimlet.Responder {
	return gimlet.NewJSONResponse(model.APIHealth{
		Status:   "ok",
		Service:  crude.ServiceName,
		Revision: crude.BuildRevision,
	})
}

///////////////////////////////////////////////////////////////////////////////
//
// GET /prices?start=<date>&end=<date>

type pricesGetHandler struct {
	tr util.TimeRange
	sc data.Connector
}

func makeGetPrices(sc data.Connector) gimlet.RouteHandler {
	return &pricesGetHandler{
		sc: sc,
	}
}

// Factory returns a pointer to a new pricesGetHandler.
func (h *pricesGetHandler) Factory() gimlet.RouteHandler {
	return &pricesGetHandler{
		sc: h.sc,
	}
}

// Parse reads the optional date range from the query string.
func (h *pricesGetHandler) Parse(_ context.Context, r *http.Request) error {
	h.tr = parseTimeRange(r.URL.Query(), startParam, endParam)
	return nil
}

// Run returns the prices within the range.
func (h *pricesGetHandler) Run(ctx context.Context) gimlet.Responder {
	prices, err := h.sc.FindPrices(ctx, h.tr)
	if err != nil {
		err = errors.Wrap(err, "problem getting prices")
		logFindError(err, message.Fields{
			"request": gimlet.GetRequestID(ctx),
			"method":  "GET",
			"route":   "/prices",
			"range":   h.tr,
		})
		return errorResponder(err)
	}

	return gimlet.NewJSONResponse(prices)
}

///////////////////////////////////////////////////////////////////////////////
//
// GET /log-returns?start=<date>&end=<date>

type logReturnsGetHandler struct {
	tr util.TimeRange
	sc data.Connector
}

func makeGetLogReturns(sc data.Connector) gimlet.RouteHandler {
	return &logReturnsGetHandler{
		sc: sc,
	}
}

// Factory returns a pointer to a new logReturnsGetHandler.
func (h *logReturnsGetHandler) Factory() gimlet.RouteHandler {
	return &logReturnsGetHandler{
		sc: h.sc,
	}
}

// Parse reads the optional date range from the query string.
func (h *logReturnsGetHandler) Parse(_ context.Context, r *http.Request) error {
	h.tr = parseTimeRange(r.URL.Query(), startParam, endParam)
	return nil
}

// Run returns the log-returns within the range.
func (h *logReturnsGetHandler) Run(ctx context.Context) gimlet.Responder {
	returns, err := h.sc.FindLogReturns(ctx, h.tr)
	if err != nil {
		err = errors.Wrap(err, "problem getting log returns")
		logFindError(err, message.Fields{
			"request": gimlet.GetRequestID(ctx),
			"method":  "GET",
			"route":   "/log-returns",
			"range":   h.tr,
		})
		return errorResponder(err)
	}

	return gimlet.NewJSONResponse(returns)
}

///////////////////////////////////////////////////////////////////////////////
//
// GET /events?start=<date>&end=<date>

type eventsGetHandler struct {
	tr util.TimeRange
	sc data.Connector
}

func makeGetEvents(sc data.Connector) gimlet.RouteHandler {
	return &eventsGetHandler{
		sc: sc,
	}
}

// Factory returns a pointer to a new eventsGetHandler.
func (h *eventsGetHandler) Factory() gimlet.RouteHandler {
	return &eventsGetHandler{
		sc: h.sc,
	}
}

// Parse reads the optional date range from the query string.
func (h *eventsGetHandler) Parse(_ context.Context, r *http.Request) error {
	h.tr = parseTimeRange(r.URL.Query(), startParam, endParam)
	return nil
}

// Run returns the events within the range.
func (h *eventsGetHandler) Run(ctx context.Context) gimlet.Responder {
	events, err := h.sc.FindEvents(ctx, h.tr)
	if err != nil {
		err = errors.Wrap(err, "problem getting events")
		logFindError(err, message.Fields{
			"request": gimlet.GetRequestID(ctx),
			"method":  "GET",
			"route":   "/events",
			"range":   h.tr,
		})
		return errorResponder(err)
	}

	return gimlet.NewJSONResponse(events)
}

///////////////////////////////////////////////////////////////////////////////
//
// GET /change-point?window=<int>&start=<date>&end=<date>

type changePointGetHandler struct {
	opts          data.ChangePointOptions
	defaultWindow int
	maxWindow     int
	sc            data.Connector
}

func makeGetChangePoint(sc data.Connector, defaultWindow, maxWindow int) gimlet.RouteHandler {
	return &changePointGetHandler{
		defaultWindow: defaultWindow,
		maxWindow:     maxWindow,
		sc:            sc,
	}
}

// Factory returns a pointer to a new changePointGetHandler.
func (h *changePointGetHandler) Factory() gimlet.RouteHandler {
	return &changePointGetHandler{
		defaultWindow: h.defaultWindow,
		maxWindow:     h.maxWindow,
		sc:            h.sc,
	}
}

// Parse reads the window and optional date range from the query string.
func (h *changePointGetHandler) Parse(_ context.Context, r *http.Request) error {
	vals := r.URL.Query()

	window, err := parseWindow(vals, windowParam, h.defaultWindow, h.maxWindow)
	if err != nil {
		return err
	}

	h.opts = data.ChangePointOptions{
		Window:    window,
		TimeRange: parseTimeRange(vals, startParam, endParam),
	}

	return nil
}

// Run estimates the change point of the selected prices.
func (h *changePointGetHandler) Run(ctx context.Context) gimlet.Responder {
	result, err := h.sc.EstimateChangePoint(ctx, h.opts)
	if err != nil {
		err = errors.Wrap(err, "problem estimating change point")
		logFindError(err, message.Fields{
			"request": gimlet.GetRequestID(ctx),
			"method":  "GET",
			"route":   "/change-point",
			"window":  h.opts.Window,
			"range":   h.opts.TimeRange,
		})
		return errorResponder(err)
	}

	return gimlet.NewJSONResponse(result)
}

///////////////////////////////////////////////////////////////////////////////
//
// GET /summary

type summaryGetHandler struct {
	sc data.Connector
}

func makeGetSummary(sc data.Connector) gimlet.RouteHandler {
	return &summaryGetHandler{
		sc: sc,
	}
}

// Factory returns a pointer to a new summaryGetHandler.
func (h *summaryGetHandler) Factory() gimlet.RouteHandler {
	return &summaryGetHandler{
		sc: h.sc,
	}
}

func (h *summaryGetHandler) Parse(_ context.Context, _ *http.Request) error { return nil }

// Run describes the served price history.
func (h *summaryGetHandler) Run(ctx context.Context) gimlet.Responder {
	summary, err := h.sc.GetSummary(ctx)
	if err != nil {
		err = errors.Wrap(err, "problem getting summary")
		logFindError(err, message.Fields{
			"request": gimlet.GetRequestID(ctx),
			"method":  "GET",
			"route":   "/summary",
		})
		return errorResponder(err)
	}

	return gimlet.NewJSONResponse(summary)
}

// errorResponder keeps the status of a wrapped gimlet.ErrorResponse and
// reports anything else as an internal error.
func errorResponder(err error) gimlet.Responder {
	if errResp, ok := errors.Cause(err).(gimlet.ErrorResponse); ok {
		return gimlet.MakeJSONErrorResponder(gimlet.ErrorResponse{
			StatusCode: errResp.StatusCode,
			Message:    err.Error(),
		})
	}
	return gimlet.MakeJSONInternalErrorResponder(err)
}
