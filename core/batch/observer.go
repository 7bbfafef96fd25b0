package batch

import (
	"context"
	"time"

	"github.com/ankit-chaubey/fileprops/core"
)

// RunInfo identifies a run to observers.
type RunInfo struct {
	ID      string
	Op      Op
	Total   int
	Started time.Time
}

// Observer is notified as a run progresses. Calls happen on the goroutine
// executing the run, in order, and must not block for long.
type Observer interface {
	RunStarted(ctx context.Context, run RunInfo)
	FileStarted(ctx context.Context, run RunInfo, index int, path string)
	FileFinished(ctx context.Context, run RunInfo, index int, outcome core.Outcome)
	RunFinished(ctx context.Context, result *Result)
}

// ObserverFuncs adapts optional callbacks to Observer.
type ObserverFuncs struct {
	OnRunStarted   func(run RunInfo)
	OnFileStarted  func(run RunInfo, index int, path string)
	OnFileFinished func(run RunInfo, index int, outcome core.Outcome)
	OnRunFinished  func(result *Result)
}

func (o ObserverFuncs) RunStarted(ctx context.Context, run RunInfo) {
	if o.OnRunStarted != nil {
		o.OnRunStarted(run)
	}
}

func (o ObserverFuncs) FileStarted(ctx context.Context, run RunInfo, index int, path string) {
	if o.OnFileStarted != nil {
		o.OnFileStarted(run, index, path)
	}
}

func (o ObserverFuncs) FileFinished(ctx context.Context, run RunInfo, index int, outcome core.Outcome) {
	if o.OnFileFinished != nil {
		o.OnFileFinished(run, index, outcome)
	}
}

func (o ObserverFuncs) RunFinished(ctx context.Context, result *Result) {
	if o.OnRunFinished != nil {
		o.OnRunFinished(result)
	}
}
