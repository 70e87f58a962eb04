// Package commands provides CLI command handlers for swagfix.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/casdoor/swagfix"
	"github.com/casdoor/swagfix/fixer"
	"github.com/casdoor/swagfix/internal/cliutil"
	"github.com/casdoor/swagfix/internal/config"
	"github.com/casdoor/swagfix/parser"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Standard streams used by the handlers. Tests replace them.
var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// LoadConfig loads the configuration file and SWAGFIX_* environment.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the stderr logger described by cfg.
func NewLogger(cfg *config.Config) parser.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return parser.NewSlogAdapter(cliutil.NewLogger(Stderr, level, cfg.LogFormat))
}

// ParseInput reads a document from a file or, for StdinFilePath, from Stdin.
func ParseInput(specPath string, cfg *config.Config, logger parser.Logger) (*parser.ParseResult, error) {
	opts := []parser.Option{
		parser.WithMaxFileSize(cfg.MaxFileSize),
		parser.WithLogger(logger),
	}
	if specPath == StdinFilePath {
		opts = append(opts, parser.WithReader(Stdin))
	} else {
		opts = append(opts, parser.WithFilePath(specPath))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}
	return result, nil
}

// FixOptions returns the fixer options for a parsed document under cfg.
func FixOptions(parsed *parser.ParseResult, cfg *config.Config, logger parser.Logger) ([]fixer.Option, error) {
	stages, err := cfg.EnabledStages()
	if err != nil {
		return nil, err
	}
	return []fixer.Option{
		fixer.WithParsed(*parsed),
		fixer.WithMutableInput(true),
		fixer.WithMetadata(cfg.FixerMetadata()),
		fixer.WithEnabledStages(stages...),
		fixer.WithLogger(logger),
	}, nil
}

// OutputFixReport writes the diagnostic header and fix list to w.
func OutputFixReport(w io.Writer, specPath string, result *fixer.FixResult, elapsed time.Duration) {
	cliutil.Writef(w, "swagfix version: %s\n", swagfix.Version())
	cliutil.Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	cliutil.Writef(w, "Swagger Version: %s\n", result.SourceVersion)
	cliutil.Writef(w, "Paths: %d\n", result.Stats.PathCount)
	cliutil.Writef(w, "Operations: %d\n", result.Stats.OperationCount)
	cliutil.Writef(w, "Definitions: %d\n", result.Stats.DefinitionCount)
	cliutil.Writef(w, "Total Time: %v\n\n", elapsed)

	if !result.HasFixes() {
		cliutil.Writef(w, "✓ No fixes needed\n")
		return
	}

	cliutil.Writef(w, "Fixes Applied (%d):\n", result.FixCount)
	for _, fix := range result.Fixes {
		cliutil.Writef(w, "  - [%s] %s: %s\n", fix.Type, fix.Path, fix.Description)
	}
	cliutil.Writef(w, "\n✓ Applied %d fix(es)\n", result.FixCount)
}
