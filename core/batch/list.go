// Package batch runs view and strip operations over lists of files, one file
// at a time, collecting one outcome per file.
package batch

import (
	"path/filepath"

	"github.com/ankit-chaubey/fileprops/core"
)

// List is the working list of files for a batch. Membership changes have no
// side effects on disk. A List is not safe for concurrent use.
type List struct {
	records []core.FileRecord
}

// NewList returns an empty List.
func NewList() *List {
	return &List{}
}

// Status summarises a list for display.
type Status struct {
	Total    int `json:"total"`
	Selected int `json:"selected"`
}

// AddError reports a path List.Add could not list.
type AddError struct {
	Path string
	Err  error
}

func (e *AddError) Error() string { return e.Err.Error() }

func (e *AddError) Unwrap() error { return e.Err }

// Add appends every path not already present. New records start selected.
// Paths that cannot be stat'ed are skipped and reported in errs as
// *AddError.
func (l *List) Add(paths ...string) (added int, errs []error) {
	for _, p := range paths {
		p = filepath.Clean(p)
		if l.index(p) >= 0 {
			continue
		}
		rec, err := core.NewRecord(p)
		if err != nil {
			errs = append(errs, &AddError{Path: p, Err: err})
			continue
		}
		rec.Selected = true
		l.records = append(l.records, rec)
		added++
	}
	return added, errs
}

// Remove drops the given paths and returns how many were present.
func (l *List) Remove(paths ...string) int {
	drop := make(map[string]bool, len(paths))
	for _, p := range paths {
		drop[filepath.Clean(p)] = true
	}
	return l.filter(func(r core.FileRecord) bool { return drop[r.Path] })
}

// RemoveSelected drops every selected record.
func (l *List) RemoveSelected() int {
	return l.filter(func(r core.FileRecord) bool { return r.Selected })
}

func (l *List) filter(drop func(core.FileRecord) bool) int {
	kept := l.records[:0]
	removed := 0
	for _, r := range l.records {
		if drop(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	l.records = kept
	return removed
}

// Toggle flips the selection of path. ok is false if path is not listed.
func (l *List) Toggle(path string) (selected, ok bool) {
	i := l.index(filepath.Clean(path))
	if i < 0 {
		return false, false
	}
	l.records[i].Selected = !l.records[i].Selected
	return l.records[i].Selected, true
}

// SelectAll marks every record selected.
func (l *List) SelectAll() { l.setAll(true) }

// DeselectAll clears every selection.
func (l *List) DeselectAll() { l.setAll(false) }

func (l *List) setAll(v bool) {
	for i := range l.records {
		l.records[i].Selected = v
	}
}

// Selected returns the selected paths in list order.
func (l *List) Selected() []string {
	var out []string
	for _, r := range l.records {
		if r.Selected {
			out = append(out, r.Path)
		}
	}
	return out
}

// Records returns a copy of the records in list order.
func (l *List) Records() []core.FileRecord {
	return append([]core.FileRecord(nil), l.records...)
}

// Len returns the number of records.
func (l *List) Len() int { return len(l.records) }

// Status returns the total and selected counts.
func (l *List) Status() Status {
	return Status{Total: len(l.records), Selected: len(l.Selected())}
}

func (l *List) index(path string) int {
	for i, r := range l.records {
		if r.Path == path {
			return i
		}
	}
	return -1
}
