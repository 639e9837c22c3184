// Package sink persists collection records as newline-delimited JSON.
package sink

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"tscollect/src/internal/config"
	"tscollect/src/internal/core"

	"github.com/lixenwraith/log"
)

// Appends records to a fixed-path NDJSON file. The file only ever
// grows: a tailing consumer must never observe truncation, rewritten
// bytes, or a partial line, so each record goes out as one compact
// marshal plus newline in a single O_APPEND write.
type FileSink struct {
	path   string
	logger *log.Logger

	// Statistics
	totalAppended atomic.Uint64
	lastAppend    atomic.Value // time.Time
}

func NewFileSink(cfg config.OutputConfig, logger *log.Logger) *FileSink {
	s := &FileSink{
		path:   filepath.Join(cfg.Directory, cfg.Filename),
		logger: logger,
	}
	s.lastAppend.Store(time.Time{})
	return s
}

// Path returns the fixed target file path
func (s *FileSink) Path() string {
	return s.path
}

// Append serializes the record compactly and appends it followed by
// exactly one newline. The target directory is created if absent.
// Writes use O_APPEND with a single Write call so concurrent
// invocations cannot interleave at the byte level.
func (s *FileSink) Append(record core.CollectionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return s.classify("creating output directory", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return s.classify("opening output file", err)
	}

	line := append(data, '\n')
	if _, err := f.Write(line); err != nil {
		f.Close()
		return s.classify("appending record", err)
	}

	// Flush to stable storage before reporting success
	if err := f.Sync(); err != nil {
		s.logger.Debug("msg", "Output file sync failed",
			"component", "file_sink",
			"error", err)
	}

	if err := f.Close(); err != nil {
		return s.classify("closing output file", err)
	}

	s.totalAppended.Add(1)
	s.lastAppend.Store(time.Now())

	s.logger.Info("msg", "Record appended",
		"component", "file_sink",
		"path", s.path,
		"bytes", len(line))

	return nil
}

// GetStats returns sink statistics
func (s *FileSink) GetStats() map[string]any {
	lastAppend, _ := s.lastAppend.Load().(time.Time)

	return map[string]any{
		"type":           "file",
		"path":           s.path,
		"total_appended": s.totalAppended.Load(),
		"last_append":    lastAppend,
	}
}

func (s *FileSink) classify(op string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		s.logger.Error("msg", "Permission denied on output path",
			"component", "file_sink",
			"path", s.path,
			"op", op)
		return fmt.Errorf("%s %s: %w", op, s.path, core.ErrPermissionDenied)
	}
	return fmt.Errorf("%s %s: %w", op, s.path, err)
}
