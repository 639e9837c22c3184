package config

import (
	"fmt"
	"regexp"
)

// validateConfig is the centralized validator for the entire configuration
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.Output.Directory == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if cfg.Output.Filename == "" {
		return fmt.Errorf("output filename cannot be empty")
	}

	if cfg.Status.Command == "" {
		return fmt.Errorf("status command cannot be empty")
	}
	if cfg.Status.TimeoutSeconds < 0 {
		return fmt.Errorf("status timeout_seconds cannot be negative")
	}

	if cfg.Journal.Command == "" {
		return fmt.Errorf("journal command cannot be empty")
	}
	if cfg.Journal.Unit == "" {
		return fmt.Errorf("journal unit cannot be empty")
	}
	if cfg.Journal.Lines <= 0 {
		return fmt.Errorf("journal lines must be positive, got %d", cfg.Journal.Lines)
	}
	if cfg.Journal.TimeoutSeconds < 0 {
		return fmt.Errorf("journal timeout_seconds cannot be negative")
	}

	for i, filter := range cfg.Filters {
		if err := validateFilter(i, &filter); err != nil {
			return err
		}
	}

	if cfg.Logging != nil {
		if err := validateLogConfig(cfg.Logging); err != nil {
			return fmt.Errorf("logging config: %w", err)
		}
	}

	return nil
}

func validateFilter(filterIndex int, cfg *FilterConfig) error {
	switch cfg.Type {
	case FilterTypeInclude, FilterTypeExclude, "":
		// Valid types
	default:
		return fmt.Errorf("filter[%d]: invalid type '%s' (must be 'include' or 'exclude')",
			filterIndex, cfg.Type)
	}

	switch cfg.Logic {
	case FilterLogicOr, FilterLogicAnd, "":
		// Valid logic
	default:
		return fmt.Errorf("filter[%d]: invalid logic '%s' (must be 'or' or 'and')",
			filterIndex, cfg.Logic)
	}

	// Empty patterns is valid - passes everything
	for i, pattern := range cfg.Patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("filter[%d] pattern[%d] '%s': invalid regex: %w",
				filterIndex, i, pattern, err)
		}
	}

	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	validOutputs := map[string]bool{
		"file": true, "stdout": true, "stderr": true,
		"both": true, "none": true,
	}
	if !validOutputs[cfg.Output] {
		return fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	if cfg.Console != nil {
		validTargets := map[string]bool{
			"stdout": true, "stderr": true, "split": true,
		}
		if !validTargets[cfg.Console.Target] {
			return fmt.Errorf("invalid console target: %s", cfg.Console.Target)
		}

		validFormats := map[string]bool{
			"txt": true, "json": true, "": true,
		}
		if !validFormats[cfg.Console.Format] {
			return fmt.Errorf("invalid console format: %s", cfg.Console.Format)
		}
	}

	return nil
}
