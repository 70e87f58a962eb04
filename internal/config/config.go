// Package config loads swagfix settings from an optional YAML file and
// SWAGFIX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.yaml.in/yaml/v4"

	"github.com/casdoor/swagfix/fixer"
	"github.com/casdoor/swagfix/oaserrors"
	"github.com/casdoor/swagfix/parser"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SWAGFIX"

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = ".swagfix.yaml"

// Dotenv files loaded from the working directory before the environment is
// read. Variables already set in the process environment win.
var dotenvFiles = []string{".env.local", ".env"}

// Defaults.
const (
	DefaultDocsDir    = "swagger"
	DefaultJSONIndent = 4
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// MCP server defaults.
const (
	DefaultFixLimit      = 100
	DefaultMaxLimit      = 1000
	DefaultMaxInlineSize = 10 << 20
)

// MaxJSONIndent bounds the json_indent setting.
const MaxJSONIndent = 16

// MetadataConfig overrides the info block written by the metadata stage.
// Empty fields keep the built-in values.
type MetadataConfig struct {
	Title        string `yaml:"title" envconfig:"TITLE"`
	Description  string `yaml:"description" envconfig:"DESCRIPTION"`
	Version      string `yaml:"version" envconfig:"VERSION"`
	ContactEmail string `yaml:"contact_email" envconfig:"CONTACT_EMAIL"`
}

// MCPConfig holds settings for the MCP server.
type MCPConfig struct {
	// FixLimit is the number of fixes returned when a call sets no limit.
	FixLimit int `yaml:"fix_limit" envconfig:"FIX_LIMIT"`
	// MaxLimit caps the limit a call may request.
	MaxLimit int `yaml:"max_limit" envconfig:"MAX_LIMIT"`
	// MaxInlineSize caps inline document content, in bytes.
	MaxInlineSize int64 `yaml:"max_inline_size" envconfig:"MAX_INLINE_SIZE"`
}

// Config is the root configuration structure.
type Config struct {
	// DocsDir is the directory holding swagger.json and swagger.yml.
	DocsDir string `yaml:"docs_dir" envconfig:"DOCS_DIR"`

	// JSONIndent is the number of spaces per JSON nesting level.
	JSONIndent int `yaml:"json_indent" envconfig:"JSON_INDENT"`

	// Stages is a comma-separated subset of the fix stages. Empty runs all.
	Stages string `yaml:"stages" envconfig:"STAGES"`

	// MaxFileSize caps input documents, in bytes.
	MaxFileSize int64 `yaml:"max_file_size" envconfig:"MAX_FILE_SIZE"`

	// LogLevel is a slog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"`

	Metadata MetadataConfig `yaml:"metadata" envconfig:"METADATA"`

	MCP MCPConfig `yaml:"mcp" envconfig:"MCP"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		DocsDir:     DefaultDocsDir,
		JSONIndent:  DefaultJSONIndent,
		MaxFileSize: parser.DefaultMaxFileSize,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		MCP: MCPConfig{
			FixLimit:      DefaultFixLimit,
			MaxLimit:      DefaultMaxLimit,
			MaxInlineSize: DefaultMaxInlineSize,
		},
	}
}

// Load reads configuration from path, or from DefaultFile in the working
// directory if path is empty and that file exists.
// Priority: Env Vars > .env files > Config File > Defaults
func Load(path string) (*Config, error) {
	for _, f := range dotenvFiles {
		_ = godotenv.Load(f)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &oaserrors.ConfigError{
				Option:  "config",
				Value:   path,
				Message: "invalid YAML",
				Cause:   err,
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, &oaserrors.ConfigError{
			Option:  "env",
			Message: "failed to process environment variables",
			Cause:   err,
		}
	}

	if cfg.DocsDir == "" {
		cfg.DocsDir = DefaultDocsDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting and returns the problems joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.JSONIndent < 0 || c.JSONIndent > MaxJSONIndent {
		errs = append(errs, &oaserrors.ConfigError{
			Option:  "json_indent",
			Value:   c.JSONIndent,
			Message: fmt.Sprintf("must be between 0 and %d", MaxJSONIndent),
		})
	}
	if c.MaxFileSize < 0 {
		errs = append(errs, &oaserrors.ConfigError{
			Option:  "max_file_size",
			Value:   c.MaxFileSize,
			Message: "must not be negative",
		})
	}
	if c.MCP.FixLimit <= 0 {
		errs = append(errs, &oaserrors.ConfigError{
			Option:  "mcp.fix_limit",
			Value:   c.MCP.FixLimit,
			Message: "must be positive",
		})
	}
	if c.MCP.MaxLimit < c.MCP.FixLimit {
		errs = append(errs, &oaserrors.ConfigError{
			Option:  "mcp.max_limit",
			Value:   c.MCP.MaxLimit,
			Message: "must not be below mcp.fix_limit",
		})
	}
	if c.MCP.MaxInlineSize <= 0 {
		errs = append(errs, &oaserrors.ConfigError{
			Option:  "mcp.max_inline_size",
			Value:   c.MCP.MaxInlineSize,
			Message: "must be positive",
		})
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, &oaserrors.ConfigError{
			Option:  "log_format",
			Value:   c.LogFormat,
			Message: "must be text or json",
		})
	}
	if _, err := c.EnabledStages(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, &oaserrors.ConfigError{
			Option:  "log_level",
			Value:   c.LogLevel,
			Message: "must be debug, info, warn, or error",
			Cause:   err,
		}
	}
	return level, nil
}

// EnabledStages parses Stages. A nil result means every stage.
func (c *Config) EnabledStages() ([]fixer.Stage, error) {
	stages, err := fixer.ParseStages(c.Stages)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "stages", Value: c.Stages, Cause: err}
	}
	return stages, nil
}

// FixerMetadata returns the metadata block with config overrides applied.
func (c *Config) FixerMetadata() fixer.Metadata {
	return fixer.Metadata{
		Title:        c.Metadata.Title,
		Description:  c.Metadata.Description,
		Version:      c.Metadata.Version,
		ContactEmail: c.Metadata.ContactEmail,
	}
}
