package core

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when the target path does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrUnsupportedFormat is returned when a category cannot be stripped.
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrHostUnavailable is returned when legacy .doc editing is requested on
	// a system without a Word automation host.
	ErrHostUnavailable = errors.New("document host unavailable")
)

// ExtractionError is a failure while reading or rewriting one category of
// properties.
type ExtractionError struct {
	Section SectionKind
	Path    string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed for %s: %v", e.Section, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Write stages reported by WriteError.
const (
	StageTempWrite = "temp-write"
	StageReplace   = "replace"
)

// WriteError is a failure writing the temporary file or replacing the
// original with it.
type WriteError struct {
	Path  string
	Stage string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write failed (%s) for %s: %v", e.Stage, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Error codes returned by Code.
const (
	CodeOK                = "ok"
	CodeFileNotFound      = "file_not_found"
	CodeUnsupportedFormat = "unsupported_format"
	CodeExtraction        = "extraction_failure"
	CodeWrite             = "write_failure"
	CodeHostUnavailable   = "host_unavailable"
	CodeCanceled          = "canceled"
	CodeInternal          = "internal"
)

// Code maps err onto a stable machine-readable code.
func Code(err error) string {
	var (
		extErr   *ExtractionError
		writeErr *WriteError
	)
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrFileNotFound):
		return CodeFileNotFound
	case errors.Is(err, ErrUnsupportedFormat):
		return CodeUnsupportedFormat
	case errors.Is(err, ErrHostUnavailable):
		return CodeHostUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCanceled
	case errors.As(err, &writeErr):
		return CodeWrite
	case errors.As(err, &extErr):
		return CodeExtraction
	default:
		return CodeInternal
	}
}
