package config

import "tscollect/src/internal/core"

type Config struct {
	Output  OutputConfig   `toml:"output"`
	Status  StatusConfig   `toml:"status"`
	Journal JournalConfig  `toml:"journal"`
	Filters []FilterConfig `toml:"filters"`
	Logging *LogConfig     `toml:"logging"`
}

// OutputConfig locates the NDJSON target file. The path stays fixed
// across invocations so the downstream agent can watch it consistently.
type OutputConfig struct {
	Directory string `toml:"directory"`
	Filename  string `toml:"filename"`
}

// StatusConfig controls the mesh agent status query
type StatusConfig struct {
	// Command name or path of the status CLI
	Command string `toml:"command"`

	// Subprocess timeout, 0 disables
	TimeoutSeconds int64 `toml:"timeout_seconds"`
}

// JournalConfig controls the system journal query
type JournalConfig struct {
	// Command name or path of the journal query tool
	Command string `toml:"command"`

	// Service unit to select entries from
	Unit string `toml:"unit"`

	// Maximum number of entries to request
	Lines int64 `toml:"lines"`

	// Subprocess timeout, 0 disables
	TimeoutSeconds int64 `toml:"timeout_seconds"`
}

// FilterConfig describes one regex filter over normalized events
type FilterConfig struct {
	// "include" or "exclude"
	Type string `toml:"type"`

	// "or" or "and"
	Logic string `toml:"logic"`

	Patterns []string `toml:"patterns"`
}

const (
	FilterTypeInclude = "include"
	FilterTypeExclude = "exclude"

	FilterLogicOr  = "or"
	FilterLogicAnd = "and"
)

func defaults() *Config {
	return &Config{
		Output: OutputConfig{
			Directory: "/var/log/tailscale-custom",
			Filename:  "tailscale.log",
		},
		Status: StatusConfig{
			Command:        "tailscale",
			TimeoutSeconds: 30,
		},
		Journal: JournalConfig{
			Command:        "journalctl",
			Unit:           core.DefaultUnit,
			Lines:          50,
			TimeoutSeconds: 30,
		},
		Logging: DefaultLogConfig(),
	}
}
