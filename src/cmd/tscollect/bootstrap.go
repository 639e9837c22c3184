package main

import (
	"fmt"
	"strings"

	"tscollect/src/internal/config"

	"github.com/lixenwraith/log"
)

// initializeLogger sets up the diagnostic logger based on configuration
func initializeLogger(cfg *config.Config, quiet bool) error {
	logger = log.NewLogger()

	var configArgs []string

	if quiet {
		// In quiet mode, disable ALL logging output
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=false",
			"level=255")

		return logger.ApplyConfigString(configArgs...)
	}

	logging := cfg.Logging
	if logging == nil {
		logging = config.DefaultLogConfig()
	}

	// Determine log level
	levelValue, err := parseLogLevel(logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	// Configure based on output mode
	switch logging.Output {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case "stdout":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stdout")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case "file":
		configArgs = append(configArgs, "enable_stdout=false")
		configureFileLogging(&configArgs, logging)

	case "both":
		configArgs = append(configArgs, "enable_stdout=true")
		configureFileLogging(&configArgs, logging)
		configureConsoleTarget(&configArgs, logging)

	default:
		return fmt.Errorf("invalid log output mode: %s", logging.Output)
	}

	// Apply format if specified
	if logging.Console != nil && logging.Console.Format != "" {
		configArgs = append(configArgs, fmt.Sprintf("format=%s", logging.Console.Format))
	}

	return logger.ApplyConfigString(configArgs...)
}

// configureFileLogging sets up file-based logging parameters
func configureFileLogging(configArgs *[]string, cfg *config.LogConfig) {
	if cfg.File != nil {
		*configArgs = append(*configArgs,
			fmt.Sprintf("directory=%s", cfg.File.Directory),
			fmt.Sprintf("name=%s", cfg.File.Name),
			fmt.Sprintf("max_size_mb=%d", cfg.File.MaxSizeMB),
			fmt.Sprintf("max_total_size_mb=%d", cfg.File.MaxTotalSizeMB))

		if cfg.File.RetentionHours > 0 {
			*configArgs = append(*configArgs,
				fmt.Sprintf("retention_period_hrs=%.1f", cfg.File.RetentionHours))
		}
	}
}

// configureConsoleTarget sets up console output parameters
func configureConsoleTarget(configArgs *[]string, cfg *config.LogConfig) {
	target := "stderr" // default

	if cfg.Console != nil && cfg.Console.Target != "" {
		target = cfg.Console.Target
	}

	// Split mode by configuring log package with level-based routing
	if target == "split" {
		*configArgs = append(*configArgs, "stdout_split_mode=true")
		*configArgs = append(*configArgs, "stdout_target=split")
	} else {
		*configArgs = append(*configArgs, fmt.Sprintf("stdout_target=%s", target))
	}
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
