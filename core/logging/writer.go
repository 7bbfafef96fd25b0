package logging

import (
	"io"
	"sync"
)

type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *writerSink) write(line []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w.Write(line)
}

func (s *writerSink) close() error { return nil }

// NewWriterLogger returns a logger writing to w, typically os.Stderr.
// Closing it does not close w.
func NewWriterLogger(w io.Writer, format Format, level Level) *StreamLogger {
	return &StreamLogger{
		sink:   &writerSink{w: w},
		level:  level,
		format: format,
	}
}
