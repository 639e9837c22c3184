package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"tscollect/src/internal/collector"
	"tscollect/src/internal/config"
	"tscollect/src/internal/core"
	"tscollect/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	// Parse flags first to get quiet mode early
	flagCfg, err := ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize output handler with quiet mode
	InitOutputHandler(flagCfg.Quiet)

	// Handle version flag
	if flagCfg.ShowVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Set config file environment if specified
	if flagCfg.ConfigFile != "" {
		os.Setenv("TSCOLLECT_CONFIG_FILE", flagCfg.ConfigFile)
	}

	// Load configuration with CLI overrides
	cfg, err := config.Load(flagCfg.Overrides())
	if err != nil {
		FatalError(1, "Failed to load config: %v\n", err)
	}

	// Initialize logger with quiet mode awareness
	if err := initializeLogger(cfg, flagCfg.Quiet); err != nil {
		FatalError(1, "Failed to initialize logger: %v\n", err)
	}
	defer shutdownLogger()

	logger.Info("msg", "tscollect starting",
		"version", version.Short(),
		"config_file", flagCfg.ConfigFile,
		"output_dir", cfg.Output.Directory)

	col, err := collector.New(cfg, logger)
	if err != nil {
		FatalError(1, "Failed to initialize collector: %v\n", err)
	}

	Print("Collecting Tailscale logs...\n")

	// Collection failures are diagnostics, not exit codes: the process
	// exits 0 so an external scheduler keeps invoking it unconditionally.
	res, err := col.Run(context.Background())
	if err != nil {
		reportRunFailure(err)
		return
	}

	if res.JournalErr != nil {
		reportJournalFailure(res.JournalErr)
	}

	Print("Log appended to: %s\n", res.Path)
}

func reportRunFailure(err error) {
	switch {
	case errors.Is(err, core.ErrToolAbsent):
		Error("Tailscale CLI not found. Please install Tailscale.\n")
		Error("Failed to collect status.\n")
	case errors.Is(err, core.ErrToolFailed), errors.Is(err, core.ErrMalformedOutput):
		Error("Error getting Tailscale status: %v\n", err)
		Error("Failed to collect status.\n")
	case errors.Is(err, core.ErrPermissionDenied):
		Error("Error: Permission denied writing output. Try sudo?\n")
	default:
		Error("Collection failed: %v\n", err)
	}
}

func reportJournalFailure(err error) {
	if errors.Is(err, core.ErrToolAbsent) {
		Error("journalctl not found. This collector works best on Linux with systemd.\n")
		return
	}
	Error("Could not retrieve system logs. Running without sudo?\n")
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}
