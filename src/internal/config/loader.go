package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

// CLIOverrides carries command-line values that take precedence over
// every other configuration source.
type CLIOverrides struct {
	// Positional output directory argument
	OutputDir string

	LogOutput  string
	LogLevel   string
	LogDir     string
	LogFile    string
	LogConsole string
}

// Load builds the effective configuration: defaults < TOML file <
// TSCOLLECT_* environment < CLI overrides.
func Load(cli CLIOverrides) (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("TSCOLLECT_").
		WithFile(configPath).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	cli.apply(finalConfig)

	return finalConfig, validateConfig(finalConfig)
}

func (cli CLIOverrides) apply(cfg *Config) {
	if cli.OutputDir != "" {
		cfg.Output.Directory = cli.OutputDir
	}

	if cfg.Logging == nil {
		cfg.Logging = DefaultLogConfig()
	}
	if cli.LogOutput != "" {
		cfg.Logging.Output = cli.LogOutput
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	if cli.LogDir != "" {
		if cfg.Logging.File == nil {
			cfg.Logging.File = DefaultLogConfig().File
		}
		cfg.Logging.File.Directory = cli.LogDir
	}
	if cli.LogFile != "" {
		if cfg.Logging.File == nil {
			cfg.Logging.File = DefaultLogConfig().File
		}
		cfg.Logging.File.Name = cli.LogFile
	}
	if cli.LogConsole != "" {
		if cfg.Logging.Console == nil {
			cfg.Logging.Console = DefaultLogConfig().Console
		}
		cfg.Logging.Console.Target = cli.LogConsole
	}
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "TSCOLLECT_" + env
	return env
}

func GetConfigPath() string {
	if configFile := os.Getenv("TSCOLLECT_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("TSCOLLECT_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("TSCOLLECT_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "tscollect.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "tscollect.toml")
	}

	return "tscollect.toml"
}
