package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileLoggerConfig holds configuration for file logging
type FileLoggerConfig struct {
	// Path is the log file path
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
	// MaxBackups is the maximum number of backup files to keep
	MaxBackups int
}

type fileSink struct {
	mu   sync.Mutex
	cfg  FileLoggerConfig
	file *os.File
	size int64
}

// NewFileLogger opens (or creates) the log file in append mode.
func NewFileLogger(config FileLoggerConfig) (*StreamLogger, error) {
	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	return &StreamLogger{
		sink:   &fileSink{cfg: config, file: file, size: info.Size()},
		level:  config.Level,
		format: config.Format,
	}, nil
}

func (s *fileSink) write(line []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return
	}
	if s.cfg.MaxSize > 0 && s.size >= s.cfg.MaxSize {
		s.rotate()
		if s.file == nil {
			return
		}
	}
	n, _ := s.file.Write(line)
	s.size += int64(n)
}

func (s *fileSink) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// rotate shifts path.N to path.N+1, moves the live file to path.1 and
// drops anything beyond MaxBackups.
func (s *fileSink) rotate() {
	s.file.Close()
	s.file = nil

	path := s.cfg.Path
	for i := s.cfg.MaxBackups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", path, i), fmt.Sprintf("%s.%d", path, i+1))
	}
	os.Rename(path, path+".1")
	if s.cfg.MaxBackups > 0 {
		os.Remove(fmt.Sprintf("%s.%d", path, s.cfg.MaxBackups+1))
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}
	s.file = file
	s.size = 0
}
