package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/ankit-chaubey/fileprops/core/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/ankit-chaubey/fileprops/core/batch"

// ErrBusy is returned when a run is requested while another is active.
var ErrBusy = errors.New("another batch operation is running")

// Op is the operation applied to every file of a run.
type Op string

const (
	OpView  Op = "view"
	OpStrip Op = "strip"
)

// ParseOp converts an operation name.
func ParseOp(s string) (Op, error) {
	switch Op(strings.ToLower(s)) {
	case OpView:
		return OpView, nil
	case OpStrip:
		return OpStrip, nil
	}
	return "", fmt.Errorf("unknown operation %q (want view or strip)", s)
}

// Engine reads and strips single files. *core.Registry implements it.
type Engine interface {
	Inspect(ctx context.Context, path string) (*core.Report, error)
	Strip(ctx context.Context, path string) error
}

// Result is the outcome of a whole run. Outcomes has one entry per input
// path, in input order.
type Result struct {
	ID        string
	Op        Op
	Outcomes  []core.Outcome
	Processed int // files actually attempted; canceled files are not counted
	Succeeded int
	Failed    int
	Started   time.Time
	Finished  time.Time
}

// Runner executes one run at a time.
type Runner struct {
	engine    Engine
	logger    logging.Logger
	busy      atomic.Bool
	mu        sync.Mutex
	observers []Observer
}

// NewRunner returns a Runner over engine.
func NewRunner(engine Engine, logger logging.Logger, observers ...Observer) *Runner {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Runner{engine: engine, logger: logger, observers: observers}
}

// AddObserver registers o for subsequent runs.
func (r *Runner) AddObserver(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// Busy reports whether a run is active.
func (r *Runner) Busy() bool { return r.busy.Load() }

// Run processes paths sequentially and returns when every file has an
// outcome. A failure on one file never skips the others. If ctx is canceled
// the remaining files get a failed outcome carrying the context error.
func (r *Runner) Run(ctx context.Context, paths []string, op Op) (*Result, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer r.busy.Store(false)
	return r.run(ctx, uuid.New().String(), paths, op, nil), nil
}

func (r *Runner) run(ctx context.Context, id string, paths []string, op Op, progress func(Progress)) *Result {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "batch.Run", trace.WithAttributes(
		attribute.String("run.id", id),
		attribute.String("run.op", string(op)),
		attribute.Int("run.files", len(paths)),
	))
	defer span.End()

	r.mu.Lock()
	observers := append([]Observer(nil), r.observers...)
	r.mu.Unlock()

	info := RunInfo{ID: id, Op: op, Total: len(paths), Started: time.Now()}
	res := &Result{ID: id, Op: op, Started: info.Started, Outcomes: make([]core.Outcome, 0, len(paths))}
	log := r.logger.WithFields(logging.Fields{"run": id, "op": string(op)})
	log.Info(ctx, "batch started", logging.Fields{"files": len(paths)})
	for _, o := range observers {
		o.RunStarted(ctx, info)
	}

	for i, p := range paths {
		var out core.Outcome
		if err := ctx.Err(); err != nil {
			out = core.Outcome{Path: p, Category: core.Classify(p), Message: err.Error(), Err: err}
		} else {
			for _, o := range observers {
				o.FileStarted(ctx, info, i, p)
			}
			out = r.process(ctx, p, op)
			res.Processed++
		}

		if out.Success {
			res.Succeeded++
		} else {
			res.Failed++
			log.Warn(ctx, "file failed", logging.Fields{"path": p, "code": core.Code(out.Err), "error": out.Message})
		}
		res.Outcomes = append(res.Outcomes, out)
		for _, o := range observers {
			o.FileFinished(ctx, info, i, out)
		}
		if progress != nil {
			progress(Progress{Index: i, Total: len(paths), Path: p, Outcome: out})
		}
	}

	res.Finished = time.Now()
	span.SetAttributes(
		attribute.Int("run.succeeded", res.Succeeded),
		attribute.Int("run.failed", res.Failed),
	)
	log.Info(ctx, "batch finished", logging.Fields{
		"processed": res.Processed, "succeeded": res.Succeeded, "failed": res.Failed,
		"elapsed": res.Finished.Sub(res.Started).String(),
	})
	for _, o := range observers {
		o.RunFinished(ctx, res)
	}
	return res
}

// process turns every failure on path, including a panic, into its outcome.
func (r *Runner) process(ctx context.Context, path string, op Op) (out core.Outcome) {
	start := time.Now()
	out = core.Outcome{Path: path, Category: core.Classify(path)}
	defer func() {
		if p := recover(); p != nil {
			out.Success = false
			out.Err = fmt.Errorf("panic: %v", p)
			out.Message = out.Err.Error()
		}
		out.Elapsed = time.Since(start)
	}()

	switch op {
	case OpView:
		rep, err := r.engine.Inspect(ctx, path)
		out.Report = rep
		if err == nil && rep != nil {
			err = firstSectionError(rep)
		}
		out.Err = err
	case OpStrip:
		out.Err = r.engine.Strip(ctx, path)
	default:
		out.Err = fmt.Errorf("unknown operation %q", op)
	}

	if out.Err != nil {
		out.Message = out.Err.Error()
		return out
	}
	out.Success = true
	if op == OpStrip {
		out.Message = core.MessageStripped
	} else {
		out.Message = core.MessageRead
	}
	return out
}

// firstSectionError makes a view fail when any section could not be read.
func firstSectionError(rep *core.Report) error {
	for _, s := range rep.Sections {
		if s.Err != nil {
			return s.Err
		}
	}
	return nil
}
