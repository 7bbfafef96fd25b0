// Package server exposes the registry, the batch runner and the journal over
// a local JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/ankit-chaubey/fileprops/core/batch"
	"github.com/ankit-chaubey/fileprops/core/journal"
	"github.com/ankit-chaubey/fileprops/core/logging"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// maxJobs is how many finished jobs stay queryable.
const maxJobs = 32

// Error codes specific to the API. Handler failures use core.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeConfirmRequired  = "confirmation_required"
	CodeBusy             = "busy"
	CodeNotFound         = "not_found"
	CodeJournalDisabled  = "journal_disabled"
	CodeMethodNotAllowed = "method_not_allowed"
)

// Engine is the registry surface the API needs. *core.Registry implements it.
type Engine interface {
	batch.Engine
	Formats() []core.FormatInfo
}

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server is the HTTP API.
type Server struct {
	e       *echo.Echo
	engine  Engine
	runner  *batch.Runner
	journal *journal.Journal
	logger  logging.Logger

	// base outlives requests so background jobs survive their POST.
	base   context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	jobs  map[string]*batch.Job
	order []string
}

// New builds the API. j may be nil, in which case the run history routes
// answer 404.
func New(engine Engine, runner *batch.Runner, j *journal.Journal, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	base, cancel := context.WithCancel(context.Background())
	s := &Server{
		e:       echo.New(),
		engine:  engine,
		runner:  runner,
		journal: j,
		logger:  logger,
		base:    base,
		cancel:  cancel,
		jobs:    make(map[string]*batch.Job),
	}

	s.e.HideBanner = true
	s.e.HidePort = true
	s.e.HTTPErrorHandler = s.handleError

	s.e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := logging.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			}
			if v.Error != nil {
				fields["error"] = v.Error.Error()
			}
			s.logger.Info(c.Request().Context(), "http request", fields)
			return nil
		},
	}))
	s.e.Use(middleware.Recover())

	s.e.GET("/api/formats", s.Formats)
	s.e.POST("/api/inspect", s.Inspect)
	s.e.POST("/api/strip", s.Strip)
	s.e.POST("/api/jobs", s.StartJob)
	s.e.GET("/api/jobs/:id", s.GetJob)
	s.e.DELETE("/api/jobs/:id", s.CancelJob)
	s.e.GET("/api/runs", s.ListRuns)
	s.e.GET("/api/runs/:id", s.GetRun)
	return s
}

// Handler returns the HTTP handler for tests and embedding.
func (s *Server) Handler() http.Handler { return s.e }

// Start listens on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info(context.Background(), "server listening", logging.Fields{"addr": addr})
	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown cancels running jobs and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	return s.e.Shutdown(ctx)
}

func apiError(status int, code, format string, args ...any) *echo.HTTPError {
	return echo.NewHTTPError(status, ErrorBody{Code: code, Message: fmt.Sprintf(format, args...)})
}

// failure maps a core error onto a status and body.
func failure(err error) *echo.HTTPError {
	if errors.Is(err, batch.ErrBusy) {
		return apiError(http.StatusConflict, CodeBusy, "%v", err)
	}
	code := core.Code(err)
	status := http.StatusInternalServerError
	switch code {
	case core.CodeFileNotFound:
		status = http.StatusNotFound
	case core.CodeUnsupportedFormat:
		status = http.StatusUnsupportedMediaType
	case core.CodeHostUnavailable:
		status = http.StatusNotImplemented
	case core.CodeExtraction:
		status = http.StatusUnprocessableEntity
	case core.CodeCanceled:
		status = http.StatusServiceUnavailable
	}
	return echo.NewHTTPError(status, ErrorBody{Code: code, Message: err.Error()})
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	body := ErrorBody{Code: core.CodeInternal, Message: err.Error()}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if b, ok := he.Message.(ErrorBody); ok {
			body = b
		} else {
			body = ErrorBody{Code: statusCode(status), Message: fmt.Sprint(he.Message)}
		}
	}
	if err := c.JSON(status, body); err != nil {
		s.logger.Error(c.Request().Context(), "failed to write error response", err, nil)
	}
}

func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	}
	return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
}
