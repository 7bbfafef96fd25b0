package server

import (
	"net/http"
	"strconv"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/ankit-chaubey/fileprops/core/batch"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/ankit-chaubey/fileprops/core/server"

// FileRequest is the body of /api/inspect and /api/strip.
type FileRequest struct {
	Path    string `json:"path"`
	Confirm bool   `json:"confirm"`
}

// JobRequest is the body of POST /api/jobs.
type JobRequest struct {
	Op      string   `json:"op"`
	Paths   []string `json:"paths"`
	Confirm bool     `json:"confirm"`
}

// Skipped is a path a job could not list.
type Skipped struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JobAccepted is the body of a 202 from POST /api/jobs.
type JobAccepted struct {
	batch.JobStatus
	Skipped []Skipped `json:"skipped"`
}

// JobView is the body of GET /api/jobs/:id.
type JobView struct {
	batch.JobStatus
	Outcomes []core.JSONOutcome `json:"outcomes"`
}

func (s *Server) span(c echo.Context, name string, attrs ...attribute.KeyValue) trace.Span {
	ctx, span := otel.Tracer(tracerName).Start(c.Request().Context(), name, trace.WithAttributes(attrs...))
	c.SetRequest(c.Request().WithContext(ctx))
	return span
}

// Formats lists the capabilities of every category.
func (s *Server) Formats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.engine.Formats())
}

func bindFile(c echo.Context) (FileRequest, error) {
	var req FileRequest
	if err := c.Bind(&req); err != nil {
		return req, apiError(http.StatusBadRequest, CodeBadRequest, "invalid request body")
	}
	if req.Path == "" {
		return req, apiError(http.StatusBadRequest, CodeBadRequest, "path is required")
	}
	return req, nil
}

// Inspect reads the properties of one file.
func (s *Server) Inspect(c echo.Context) error {
	req, err := bindFile(c)
	if err != nil {
		return err
	}
	span := s.span(c, "server.Inspect", attribute.String("file.path", req.Path))
	defer span.End()

	res, err := s.runner.Run(c.Request().Context(), []string{req.Path}, batch.OpView)
	if err != nil {
		span.RecordError(err)
		return failure(err)
	}
	out := res.Outcomes[0]
	if out.Report == nil {
		span.RecordError(out.Err)
		return failure(out.Err)
	}
	// Section failures stay inside the report.
	return c.JSON(http.StatusOK, out.Report.ToJSON())
}

// Strip removes the metadata of one file. The request must confirm.
func (s *Server) Strip(c echo.Context) error {
	req, err := bindFile(c)
	if err != nil {
		return err
	}
	if !req.Confirm {
		return apiError(http.StatusBadRequest, CodeConfirmRequired, "stripping rewrites %s; set confirm to true", req.Path)
	}
	span := s.span(c, "server.Strip", attribute.String("file.path", req.Path))
	defer span.End()

	res, err := s.runner.Run(c.Request().Context(), []string{req.Path}, batch.OpStrip)
	if err != nil {
		span.RecordError(err)
		return failure(err)
	}
	out := res.Outcomes[0]
	if !out.Success {
		span.RecordError(out.Err)
		return failure(out.Err)
	}
	return c.JSON(http.StatusOK, out.ToJSON())
}

// StartJob launches a background batch over the listed files. Paths that do
// not exist are reported as skipped; duplicates are listed once.
func (s *Server) StartJob(c echo.Context) error {
	var req JobRequest
	if err := c.Bind(&req); err != nil {
		return apiError(http.StatusBadRequest, CodeBadRequest, "invalid request body")
	}
	op, err := batch.ParseOp(req.Op)
	if err != nil {
		return apiError(http.StatusBadRequest, CodeBadRequest, "%v", err)
	}
	if op == batch.OpStrip && !req.Confirm {
		return apiError(http.StatusBadRequest, CodeConfirmRequired, "stripping rewrites %d files; set confirm to true", len(req.Paths))
	}

	list := batch.NewList()
	_, errs := list.Add(req.Paths...)
	skipped := []Skipped{}
	for _, e := range errs {
		skipped = append(skipped, Skipped{Path: pathOf(e), Code: core.Code(e), Message: e.Error()})
	}
	if list.Len() == 0 {
		return apiError(http.StatusBadRequest, CodeBadRequest, "no files to process")
	}

	job, err := s.runner.Start(s.base, list.Selected(), op)
	if err != nil {
		return failure(err)
	}
	s.track(job)
	return c.JSON(http.StatusAccepted, JobAccepted{JobStatus: job.Status(), Skipped: skipped})
}

// GetJob reports the progress and outcomes of a job.
func (s *Server) GetJob(c echo.Context) error {
	job, ok := s.job(c.Param("id"))
	if !ok {
		return apiError(http.StatusNotFound, CodeNotFound, "job %s not found", c.Param("id"))
	}
	st := job.Status()
	view := JobView{JobStatus: st, Outcomes: make([]core.JSONOutcome, 0, len(st.Outcomes))}
	for _, o := range st.Outcomes {
		view.Outcomes = append(view.Outcomes, o.ToJSON())
	}
	return c.JSON(http.StatusOK, view)
}

// CancelJob stops a running job. The remaining files get canceled outcomes.
func (s *Server) CancelJob(c echo.Context) error {
	job, ok := s.job(c.Param("id"))
	if !ok {
		return apiError(http.StatusNotFound, CodeNotFound, "job %s not found", c.Param("id"))
	}
	job.Cancel()
	return c.NoContent(http.StatusAccepted)
}

// ListRuns returns journaled runs, newest first.
func (s *Server) ListRuns(c echo.Context) error {
	if s.journal == nil {
		return apiError(http.StatusNotFound, CodeJournalDisabled, "journal is disabled")
	}
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return apiError(http.StatusBadRequest, CodeBadRequest, "invalid limit")
		}
		limit = n
	}
	runs, err := s.journal.Runs(c.Request().Context(), limit)
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, runs)
}

// GetRun returns one journaled run with its file rows.
func (s *Server) GetRun(c echo.Context) error {
	if s.journal == nil {
		return apiError(http.StatusNotFound, CodeJournalDisabled, "journal is disabled")
	}
	ctx := c.Request().Context()
	id := c.Param("id")
	run, err := s.journal.Run(ctx, id)
	if err != nil {
		return runFailure(err)
	}
	files, err := s.journal.Outcomes(ctx, id)
	if err != nil {
		return runFailure(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"run": run, "files": files})
}
