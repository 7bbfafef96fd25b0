package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Run is a recorded batch run.
type Run struct {
	ID        string     `json:"id"`
	Op        string     `json:"op"`
	Total     int        `json:"total"`
	Processed int        `json:"processed"`
	Succeeded int        `json:"succeeded"`
	Failed    int        `json:"failed"`
	Started   time.Time  `json:"started"`
	Finished  *time.Time `json:"finished,omitempty"`
}

// File is one recorded outcome of a run.
type File struct {
	Index        int    `json:"index"`
	Path         string `json:"path"`
	Category     string `json:"category"`
	Success      bool   `json:"success"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	SizeBefore   *int64 `json:"size_before,omitempty"`
	SizeAfter    *int64 `json:"size_after,omitempty"`
	DigestBefore string `json:"digest_before,omitempty"`
	DigestAfter  string `json:"digest_after,omitempty"`
	ElapsedMS    int64  `json:"elapsed_ms"`
}

// Changed reports whether the file content differs after the operation.
func (f File) Changed() bool {
	return f.DigestBefore != "" && f.DigestAfter != "" && f.DigestBefore != f.DigestAfter
}

const runColumns = `id, op, total, processed, succeeded, failed, started_at, finished_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var finished sql.NullTime
	if err := row.Scan(&r.ID, &r.Op, &r.Total, &r.Processed, &r.Succeeded, &r.Failed, &r.Started, &finished); err != nil {
		return Run{}, err
	}
	if finished.Valid {
		t := finished.Time
		r.Finished = &t
	}
	return r, nil
}

// Runs returns the most recent runs, newest first. limit <= 0 returns all.
func (j *Journal) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Run returns a single run by id.
func (j *Journal) Run(ctx context.Context, id string) (Run, error) {
	r, err := scanRun(j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to query run: %w", err)
	}
	return r, nil
}

// Outcomes returns the file rows of a run in input order.
func (j *Journal) Outcomes(ctx context.Context, runID string) ([]File, error) {
	if _, err := j.Run(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT file_index, path, category, success, code, message,
			size_before, size_after, digest_before, digest_after, elapsed_ms
		FROM run_files
		WHERE run_id = ?
		ORDER BY file_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer rows.Close()

	files := []File{}
	for rows.Next() {
		var f File
		var sizeBefore, sizeAfter sql.NullInt64
		var digestBefore, digestAfter sql.NullString
		err := rows.Scan(
			&f.Index,
			&f.Path,
			&f.Category,
			&f.Success,
			&f.Code,
			&f.Message,
			&sizeBefore,
			&sizeAfter,
			&digestBefore,
			&digestAfter,
			&f.ElapsedMS,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		if sizeBefore.Valid {
			f.SizeBefore = &sizeBefore.Int64
		}
		if sizeAfter.Valid {
			f.SizeAfter = &sizeAfter.Int64
		}
		f.DigestBefore = digestBefore.String
		f.DigestAfter = digestAfter.String
		files = append(files, f)
	}
	return files, rows.Err()
}
