package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tscollect/src/internal/config"
	"tscollect/src/internal/core"

	"github.com/lixenwraith/log"
)

// Obtains a point-in-time snapshot of the mesh agent's state by
// invoking its CLI in machine-readable mode.
type StatusSource struct {
	command string
	timeout time.Duration
	logger  *log.Logger
}

func NewStatusSource(cfg config.StatusConfig, logger *log.Logger) *StatusSource {
	return &StatusSource{
		command: cfg.Command,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:  logger,
	}
}

// Collect runs `<command> status --json` and returns the raw snapshot
// document. The snapshot is validated to parse as a JSON object but is
// otherwise passed through verbatim - no schema is assumed upstream.
func (s *StatusSource) Collect(ctx context.Context) (json.RawMessage, error) {
	out, err := runCommand(ctx, s.timeout, s.command, "status", "--json")
	if err != nil {
		s.logger.Warn("msg", "Status query failed",
			"component", "status_source",
			"command", s.command,
			"error", err)
		return nil, err
	}

	raw := bytes.TrimSpace(out)

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("msg", "Status output is not a JSON document",
			"component", "status_source",
			"command", s.command,
			"error", err)
		return nil, fmt.Errorf("%s: %w: %v", s.command, core.ErrMalformedOutput, err)
	}

	s.logger.Debug("msg", "Status snapshot obtained",
		"component", "status_source",
		"bytes", len(raw))

	return json.RawMessage(raw), nil
}
