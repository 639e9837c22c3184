package source

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"tscollect/src/internal/config"

	"github.com/lixenwraith/log"
)

// Retrieves a bounded window of structured entries from the system
// journal. Retrieval is best-effort enrichment: every failure mode
// yields an empty result, never aborts the run.
type JournalSource struct {
	command string
	unit    string
	lines   int64
	timeout time.Duration
	logger  *log.Logger
}

func NewJournalSource(cfg config.JournalConfig, logger *log.Logger) *JournalSource {
	return &JournalSource{
		command: cfg.Command,
		unit:    cfg.Unit,
		lines:   cfg.Lines,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:  logger,
	}
}

// Collect runs `<command> -u <unit> -n <lines> --output=json` and
// parses each non-empty stdout line independently. Lines that fail to
// parse are skipped; entry order is preserved as emitted by the tool.
func (s *JournalSource) Collect(ctx context.Context) ([]map[string]any, error) {
	out, err := runCommand(ctx, s.timeout, s.command,
		"-u", s.unit,
		"-n", strconv.FormatInt(s.lines, 10),
		"--output=json")
	if err != nil {
		s.logger.Warn("msg", "Journal query failed",
			"component", "journal_source",
			"command", s.command,
			"unit", s.unit,
			"error", err)
		return nil, err
	}

	entries := make([]map[string]any, 0, s.lines)
	skipped := 0

	// The full output is already captured, so lines are split directly:
	// a scanner's line-length cap would abort retrieval mid-window when
	// a journal entry carries an oversized message payload.
	for _, line := range bytes.Split(out, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var doc map[string]any
		if err := json.Unmarshal(line, &doc); err != nil {
			skipped++
			continue
		}
		entries = append(entries, doc)
	}

	s.logger.Debug("msg", "Journal entries retrieved",
		"component", "journal_source",
		"unit", s.unit,
		"entries", len(entries),
		"skipped", skipped)

	return entries, nil
}
