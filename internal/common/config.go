package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the ingester's application configuration.
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Logging     LoggingConfig `toml:"logging"`
	Ingest      IngestConfig  `toml:"ingest"`
	Rules       RulesConfig   `toml:"rules"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // default: "15:04:05.000"
}

// IngestConfig controls the default WalkDir/IgnoreAware enumerators.
type IngestConfig struct {
	Roots           []string `toml:"roots"`             // root paths to walk
	ExcludeHidden   bool     `toml:"exclude_hidden"`    // skip dotfiles/dotdirs
	IgnoreFileName  string   `toml:"ignore_file_name"`  // default: .surveilr_ignore
	HonorGitignore  bool     `toml:"honor_gitignore"`   // use the IgnoreAware enumerator instead of plain WalkDir
}

// RulesConfig points at an optional TOML rule-set file overlaying the
// compiled-in defaults (rules.Default()).
type RulesConfig struct {
	Path string `toml:"path"`
}

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout"},
		},
		Ingest: IngestConfig{
			Roots:          []string{"."},
			ExcludeHidden:  true,
			IgnoreFileName: ".surveilr_ignore",
			HonorGitignore: true,
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env.
// path == "" returns the defaults with only env overrides applied.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config,
// mirroring the SURVEILR_* convention.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SURVEILR_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("SURVEILR_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("SURVEILR_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("SURVEILR_LOG_OUTPUT"); output != "" {
		var outputs []string
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	if roots := os.Getenv("SURVEILR_INGEST_ROOTS"); roots != "" {
		var rs []string
		for _, r := range strings.Split(roots, ",") {
			if trimmed := strings.TrimSpace(r); trimmed != "" {
				rs = append(rs, trimmed)
			}
		}
		if len(rs) > 0 {
			config.Ingest.Roots = rs
		}
	}
	if excludeHidden := os.Getenv("SURVEILR_INGEST_EXCLUDE_HIDDEN"); excludeHidden != "" {
		if b, err := strconv.ParseBool(excludeHidden); err == nil {
			config.Ingest.ExcludeHidden = b
		}
	}
	if rulesPath := os.Getenv("SURVEILR_RULES_PATH"); rulesPath != "" {
		config.Rules.Path = rulesPath
	}
}
