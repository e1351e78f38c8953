package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/crude-signals/crude"
	"github.com/crude-signals/crude/rest/data"
	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

const apiVersion = 1

type Service struct {
	Port        int
	Prefix      string
	CORSOrigins []string
	Environment crude.Environment

	// internal settings
	defaultWindow int
	maxWindow     int
	sc            data.Connector
	metrics       *serviceMetrics
	app           *gimlet.APIApp
}

// Validate fills unset fields from the environment's configuration and
// builds the application.
func (s *Service) Validate() error {
	if s.Environment == nil {
		return errors.New("must specify an environment")
	}

	conf := s.Environment.GetConf()
	if s.Port == 0 {
		s.Port = conf.Service.Port
	}
	if s.Prefix == "" {
		s.Prefix = conf.Service.Prefix
	}
	if s.CORSOrigins == nil {
		s.CORSOrigins = conf.Service.CORSOrigins
	}
	s.defaultWindow = conf.Service.DefaultWindow
	s.maxWindow = conf.Service.MaxWindow

	if s.sc == nil {
		s.sc = data.CreateDatasetConnector(s.Environment)
	}

	if s.app == nil {
		s.app = gimlet.NewApp()
		s.metrics = newServiceMetrics(s.datasetRecords)

		if err := s.app.SetPort(s.Port); err != nil {
			return errors.WithStack(err)
		}
		if s.Prefix != "" {
			s.app.SetPrefix(s.Prefix)
		}
		// version 1 routes are also served without the version segment,
		// which is where existing dashboards look for them
		s.app.SetDefaultVersion(apiVersion)

		s.addMiddleware()
		s.addRoutes()
	}

	return nil
}

// Start resolves the routes and serves until ctx is canceled.
func (s *Service) Start(ctx context.Context) error {
	if s.app == nil {
		return errors.New("application is not valid")
	}

	if err := s.app.Resolve(); err != nil {
		return errors.Wrap(err, "problem resolving routes")
	}

	grip.Info(message.Fields{
		"message": "starting rest service",
		"port":    s.Port,
		"prefix":  s.Prefix,
		"cors":    s.CORSOrigins,
	})

	return s.app.Run(ctx)
}

func (s *Service) addMiddleware() {
	s.app.AddMiddleware(gimlet.MakeRecoveryLogger())
	s.app.AddMiddleware(gimlet.NewAppLogger())
	s.app.AddMiddleware(s.metrics)

	origins := s.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.app.AddMiddleware(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))
}

func (s *Service) addRoutes() {
	s.route("/health", "health").Get().RouteHandler(makeHealthHandler())
	s.route("/prices", "prices").Get().RouteHandler(makeGetPrices(s.sc))
	s.route("/log-returns", "log_returns").Get().RouteHandler(makeGetLogReturns(s.sc))
	s.route("/events", "events").Get().RouteHandler(makeGetEvents(s.sc))
	s.route("/change-point", "change_point").Get().RouteHandler(makeGetChangePoint(s.sc, s.defaultWindow, s.maxWindow))
	s.route("/summary", "summary").Get().RouteHandler(makeGetSummary(s.sc))
	s.route("/status", "status").Get().Handler(s.statusHandler)
	s.route("/metrics", "metrics").Get().Handler(s.metrics.handler().ServeHTTP)
}

// route adds a version 1 route and registers both its versioned and
// unversioned paths with the request metrics.
func (s *Service) route(path, label string) *gimlet.APIRoute {
	base := ""
	if prefix := strings.Trim(s.Prefix, "/"); prefix != "" {
		base = "/" + prefix
	}
	s.metrics.addRoute(fmt.Sprintf("%s/v%d%s", base, apiVersion, path), label)
	s.metrics.addRoute(base+path, label)

	return s.app.AddRoute(path).Version(apiVersion)
}

func (s *Service) datasetRecords() float64 {
	dataset, err := s.Environment.GetDataset()
	if err != nil {
		return 0
	}
	return float64(len(dataset.Prices))
}
