package main

import (
	"flag"
	"fmt"

	"tscollect/src/internal/config"
)

// FlagConfig holds parsed command-line options
type FlagConfig struct {
	ConfigFile  string
	ShowVersion bool
	Quiet       bool

	// Optional positional argument: the output directory
	OutputDir string

	// Logging overrides
	LogOutput  string
	LogLevel   string
	LogDir     string
	LogFile    string
	LogConsole string
}

func ParseFlags() (*FlagConfig, error) {
	fc := &FlagConfig{}

	flag.StringVar(&fc.ConfigFile, "config", "", "Config file path")
	flag.BoolVar(&fc.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&fc.Quiet, "quiet", false, "Suppress all console output")

	flag.StringVar(&fc.LogOutput, "log-output", "", "Log output: file, stdout, stderr, both, none (overrides config)")
	flag.StringVar(&fc.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flag.StringVar(&fc.LogDir, "log-dir", "", "Log directory (when using file output)")
	flag.StringVar(&fc.LogFile, "log-file", "", "Log file base name (when using file output)")
	flag.StringVar(&fc.LogConsole, "log-console", "", "Console target: stdout, stderr, split (overrides config)")

	flag.Usage = customUsage
	flag.Parse()

	// Validate log-output flag if provided
	if fc.LogOutput != "" {
		validOutputs := map[string]bool{
			"file": true, "stdout": true, "stderr": true,
			"both": true, "none": true,
		}
		if !validOutputs[fc.LogOutput] {
			return nil, fmt.Errorf("invalid log-output: %s (valid: file, stdout, stderr, both, none)", fc.LogOutput)
		}
	}

	// Validate log-level flag if provided
	if fc.LogLevel != "" {
		if _, err := parseLogLevel(fc.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid log-level: %s (valid: debug, info, warn, error)", fc.LogLevel)
		}
	}

	// Validate log-console flag if provided
	if fc.LogConsole != "" {
		validTargets := map[string]bool{
			"stdout": true, "stderr": true, "split": true,
		}
		if !validTargets[fc.LogConsole] {
			return nil, fmt.Errorf("invalid log-console: %s (valid: stdout, stderr, split)", fc.LogConsole)
		}
	}

	// At most one positional argument: the output directory
	switch args := flag.Args(); len(args) {
	case 0:
	case 1:
		fc.OutputDir = args[0]
	default:
		return nil, fmt.Errorf("too many arguments: expected at most one output directory, got %d", len(args))
	}

	return fc, nil
}

// Overrides maps the parsed flags onto config-layer overrides
func (fc *FlagConfig) Overrides() config.CLIOverrides {
	return config.CLIOverrides{
		OutputDir:  fc.OutputDir,
		LogOutput:  fc.LogOutput,
		LogLevel:   fc.LogLevel,
		LogDir:     fc.LogDir,
		LogFile:    fc.LogFile,
		LogConsole: fc.LogConsole,
	}
}
