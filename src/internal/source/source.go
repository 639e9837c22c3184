// Package source obtains collector inputs from external command-line
// tools. Both sources are one-shot: each Collect call spawns one
// subprocess, blocks until it exits, and classifies any failure into
// one of the core error kinds.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"time"

	"tscollect/src/internal/core"
)

// runCommand executes a tool, captures stdout, and maps failures onto
// the collector's error taxonomy. A zero timeout disables the deadline.
func runCommand(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if isToolAbsent(err) {
			return nil, fmt.Errorf("%s: %w", name, core.ErrToolAbsent)
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w: %v", name, core.ErrToolFailed, ctx.Err())
		}
		return nil, fmt.Errorf("%s: %w: %v", name, core.ErrToolFailed, err)
	}

	return stdout.Bytes(), nil
}

func isToolAbsent(err error) bool {
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	// Absolute paths bypass PATH lookup and surface as path errors
	var pathErr *fs.PathError
	return errors.As(err, &pathErr) && errors.Is(pathErr.Err, fs.ErrNotExist)
}
