package journal

import (
	"context"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/ankit-chaubey/fileprops/core/batch"
	"github.com/ankit-chaubey/fileprops/core/logging"
)

var _ batch.Observer = (*Journal)(nil)

// Writes detach from the run context so a canceled run is still recorded.

func (j *Journal) RunStarted(ctx context.Context, run batch.RunInfo) {
	_, err := j.db.ExecContext(context.WithoutCancel(ctx), `
		INSERT INTO runs (id, op, total, started_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, string(run.Op), run.Total, run.Started.UTC())
	if err != nil {
		j.logger.Error(ctx, "journal: failed to record run", err, logging.Fields{"run": run.ID})
	}
}

func (j *Journal) FileStarted(ctx context.Context, run batch.RunInfo, index int, path string) {
	snap := take(path)
	j.mu.Lock()
	j.pending[pendingKey{run.ID, index}] = snap
	j.mu.Unlock()
}

func (j *Journal) FileFinished(ctx context.Context, run batch.RunInfo, index int, out core.Outcome) {
	key := pendingKey{run.ID, index}
	j.mu.Lock()
	before, attempted := j.pending[key]
	delete(j.pending, key)
	j.mu.Unlock()

	// Canceled files were never opened; leave both snapshots empty.
	var after snapshot
	if attempted {
		after = take(out.Path)
	}

	_, err := j.db.ExecContext(context.WithoutCancel(ctx), `
		INSERT INTO run_files (
			run_id, file_index, path, category, success, code, message,
			size_before, size_after, digest_before, digest_after, elapsed_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, index, out.Path, string(out.Category), out.Success, core.Code(out.Err), out.Message,
		before.nullSize(), after.nullSize(), before.nullDigest(), after.nullDigest(), out.Elapsed.Milliseconds())
	if err != nil {
		j.logger.Error(ctx, "journal: failed to record file", err, logging.Fields{"run": run.ID, "path": out.Path})
	}
}

func (j *Journal) RunFinished(ctx context.Context, res *batch.Result) {
	_, err := j.db.ExecContext(context.WithoutCancel(ctx), `
		UPDATE runs
		SET processed = ?, succeeded = ?, failed = ?, finished_at = ?
		WHERE id = ?
	`, res.Processed, res.Succeeded, res.Failed, res.Finished.UTC(), res.ID)
	if err != nil {
		j.logger.Error(ctx, "journal: failed to finish run", err, logging.Fields{"run": res.ID})
	}
}
