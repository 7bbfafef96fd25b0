package batch

import (
	"context"
	"sync"
	"time"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/google/uuid"
)

// Progress is sent after each file of a background run.
type Progress struct {
	Index   int
	Total   int
	Path    string
	Outcome core.Outcome
}

// Job is a run executing in the background.
type Job struct {
	ID      string
	Op      Op
	Total   int
	Started time.Time

	progress chan Progress
	done     chan struct{}
	cancel   context.CancelFunc

	mu       sync.Mutex
	outcomes []core.Outcome
	result   *Result
}

// JobStatus is a point-in-time view of a Job.
type JobStatus struct {
	ID        string         `json:"id"`
	Op        Op             `json:"op"`
	Total     int            `json:"total"`
	Completed int            `json:"completed"`
	Done      bool           `json:"done"`
	Started   time.Time      `json:"started"`
	Outcomes  []core.Outcome `json:"-"`
}

// Start launches a run in the background. The progress channel is buffered
// for every file, so a caller that never reads it does not stall the run.
func (r *Runner) Start(ctx context.Context, paths []string, op Op) (*Job, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	ctx, cancel := context.WithCancel(ctx)
	j := &Job{
		ID:       uuid.New().String(),
		Op:       op,
		Total:    len(paths),
		Started:  time.Now(),
		progress: make(chan Progress, len(paths)),
		done:     make(chan struct{}),
		cancel:   cancel,
	}

	go func() {
		defer cancel()
		res := r.run(ctx, j.ID, paths, op, j.record)

		j.mu.Lock()
		j.result = res
		j.mu.Unlock()

		close(j.progress)
		r.busy.Store(false)
		close(j.done)
	}()
	return j, nil
}

func (j *Job) record(p Progress) {
	j.mu.Lock()
	j.outcomes = append(j.outcomes, p.Outcome)
	j.mu.Unlock()
	j.progress <- p
}

// Progress returns the channel of per-file updates. It is closed when the
// run ends.
func (j *Job) Progress() <-chan Progress { return j.progress }

// Done is closed when the run has finished.
func (j *Job) Done() <-chan struct{} { return j.done }

// Cancel stops the run; remaining files get canceled outcomes.
func (j *Job) Cancel() { j.cancel() }

// Wait blocks until the run finishes and returns its result.
func (j *Job) Wait() *Result {
	<-j.done
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// Status returns a snapshot of the job.
func (j *Job) Status() JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	st := JobStatus{
		ID:        j.ID,
		Op:        j.Op,
		Total:     j.Total,
		Completed: len(j.outcomes),
		Done:      j.result != nil,
		Started:   j.Started,
		Outcomes:  append([]core.Outcome(nil), j.outcomes...),
	}
	return st
}
