package fixer

import (
	"fmt"

	"github.com/casdoor/swagfix/internal/options"
	"github.com/casdoor/swagfix/oaserrors"
	"github.com/casdoor/swagfix/parser"
)

// FixType identifies the type of fix applied
type FixType string

const (
	// FixTypeMetadata indicates the info block was replaced
	FixTypeMetadata FixType = "metadata"
	// FixTypeDefaultSchemes indicates missing or empty schemes were set to the defaults
	FixTypeDefaultSchemes FixType = "default-schemes"
	// FixTypeRenamedTag indicates a tag was rewritten to its canonical short name
	FixTypeRenamedTag FixType = "renamed-tag"
	// FixTypeSanitizedDescription indicates <br> artifacts were removed from an operation description
	FixTypeSanitizedDescription FixType = "sanitized-description"
	// FixTypeCorrectedOperationID indicates an operationId was replaced from the correction table
	FixTypeCorrectedOperationID FixType = "corrected-operation-id"
	// FixTypeCorrectedResponseSchema indicates a 200 response schema reference was replaced
	FixTypeCorrectedResponseSchema FixType = "corrected-response-schema"
)

// Fix represents a single fix applied to the document
type Fix struct {
	// Type identifies the category of fix
	Type FixType
	// Path is the JSON path to the fixed location (e.g., "paths./api/login.post.tags[0]")
	Path string
	// Description is a human-readable description of the fix
	Description string
	// Before is the value before the fix (nil if the value was absent)
	Before any
	// After is the value that was written
	After any
}

// FixResult contains the results of a fix operation
type FixResult struct {
	// Document is the fixed document tree
	Document map[string]any
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat parser.SourceFormat
	// SourcePath is the path to the source file
	SourcePath string
	// SourceVersion is the "swagger" field of the source document, if any
	SourceVersion string
	// Fixes contains all fixes applied, in stage order
	Fixes []Fix
	// FixCount is the total number of fixes applied
	FixCount int
	// TagRenames maps each rewritten tag to its canonical name
	TagRenames map[string]string
	// Stats contains statistical information about the fixed document
	Stats parser.DocumentStats
	// Success is true if fixing completed without errors
	Success bool

	// source keeps the key order of the parsed input for ToParseResult
	source *parser.ParseResult
}

// HasFixes returns true if any fixes were applied
func (r *FixResult) HasFixes() bool {
	return r.FixCount > 0
}

// ToParseResult wraps the fixed document so it can be serialized with the
// parser's ordered marshalers. Keys keep their source order when the input
// came from the parser.
func (r *FixResult) ToParseResult() *parser.ParseResult {
	if r.source != nil {
		return r.source.WithData(r.Document)
	}
	format := r.SourceFormat
	if format == "" {
		format = parser.SourceFormatUnknown
	}
	pr := parser.NewParseResult(r.Document, format)
	if r.SourcePath != "" {
		pr.SourcePath = r.SourcePath
	}
	return pr
}

// Fixer applies the normalization stages to Swagger 2.0 documents
type Fixer struct {
	// Metadata is written to the info block. Empty fields fall back to
	// DefaultMetadata.
	Metadata Metadata
	// Corrections is the path-keyed correction table.
	// If nil, DefaultCorrections is used.
	Corrections *CorrectionTable
	// EnabledStages specifies which stages to run.
	// If nil or empty, all stages run. Stages always run in StageOrder.
	EnabledStages []Stage
	// MutableInput skips the defensive deep copy of the input tree and
	// fixes it in place.
	MutableInput bool
	// Logger receives debug output. If nil, logging is disabled.
	Logger parser.Logger
}

// New creates a new Fixer instance with default settings
func New() *Fixer {
	return &Fixer{}
}

func (f *Fixer) log() parser.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return parser.NopLogger{}
}

// Option is a function that configures a fix operation
type Option func(*fixConfig) error

// fixConfig holds configuration for a fix operation
type fixConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	metadata      Metadata
	corrections   *CorrectionTable
	enabledStages []Stage
	mutableInput  bool
	logger        parser.Logger
}

// FixWithOptions fixes a Swagger document using functional options.
// This combines input source selection and configuration in a single
// function call.
//
// Example:
//
//	result, err := fixer.FixWithOptions(
//	    fixer.WithFilePath("swagger/swagger.json"),
//	    fixer.WithEnabledStages(fixer.StageTags, fixer.StageDescriptions),
//	)
func FixWithOptions(opts ...Option) (*FixResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("fixer: invalid options: %w", err)
	}

	f := &Fixer{
		Metadata:      cfg.metadata,
		Corrections:   cfg.corrections,
		EnabledStages: cfg.enabledStages,
		MutableInput:  cfg.mutableInput,
		Logger:        cfg.logger,
	}

	if cfg.filePath != nil {
		return f.Fix(*cfg.filePath)
	}
	if cfg.parsed != nil {
		return f.FixParsed(*cfg.parsed)
	}

	// Should never reach here due to validation in applyOptions
	return nil, fmt.Errorf("fixer: no input source specified")
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*fixConfig, error) {
	cfg := &fixConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.RequireOneSource(
		options.Source{Option: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Option: "WithParsed", Set: cfg.parsed != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies the local file path to fix
func WithFilePath(path string) Option {
	return func(cfg *fixConfig) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "file_path", Message: "file path cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies an already-parsed document to fix
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *fixConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithMetadata sets the info block written by the metadata stage
func WithMetadata(m Metadata) Option {
	return func(cfg *fixConfig) error {
		cfg.metadata = m
		return nil
	}
}

// WithCorrections replaces the default correction table
func WithCorrections(table CorrectionTable) Option {
	return func(cfg *fixConfig) error {
		cfg.corrections = &table
		return nil
	}
}

// WithEnabledStages specifies which stages to run
func WithEnabledStages(stages ...Stage) Option {
	return func(cfg *fixConfig) error {
		for _, s := range stages {
			if !s.valid() {
				return &oaserrors.ConfigError{Option: "enabled_stages", Value: string(s), Message: "unknown stage"}
			}
		}
		cfg.enabledStages = stages
		return nil
	}
}

// WithMutableInput fixes the parsed tree in place instead of a copy
func WithMutableInput(mutable bool) Option {
	return func(cfg *fixConfig) error {
		cfg.mutableInput = mutable
		return nil
	}
}

// WithLogger sets the structured logger for debug output
func WithLogger(logger parser.Logger) Option {
	return func(cfg *fixConfig) error {
		cfg.logger = logger
		return nil
	}
}

// Fix parses a Swagger document file and fixes it
func (f *Fixer) Fix(specPath string) (*FixResult, error) {
	p := parser.New()
	p.Logger = f.Logger

	parseResult, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("fixer: failed to parse document: %w", err)
	}

	// The parse result is private to this call
	f2 := *f
	f2.MutableInput = true
	return f2.FixParsed(*parseResult)
}

// FixParsed fixes an already-parsed document.
// Unless MutableInput is set, parseResult.Data is left untouched.
func (f *Fixer) FixParsed(parseResult parser.ParseResult) (*FixResult, error) {
	if parseResult.Data == nil {
		return nil, fmt.Errorf("fixer: document could not be parsed (nil document)")
	}

	result, err := f.FixDocument(parseResult.Data)
	if err != nil {
		return nil, err
	}

	result.SourceFormat = parseResult.SourceFormat
	result.SourcePath = parseResult.SourcePath
	result.source = &parseResult
	return result, nil
}

// FixDocument fixes a document tree that did not come from the parser.
// Objects must be map[string]any and arrays []any.
func (f *Fixer) FixDocument(doc map[string]any) (*FixResult, error) {
	if doc == nil {
		return nil, fmt.Errorf("fixer: cannot fix nil document")
	}

	corrections := DefaultCorrections()
	if f.Corrections != nil {
		corrections = *f.Corrections
	}

	if !f.MutableInput {
		doc = parser.CopyData(doc)
	}

	result := &FixResult{
		SourceVersion: versionOf(doc),
		Fixes:         make([]Fix, 0),
		TagRenames:    make(map[string]string),
	}

	f.applyPipeline(doc, corrections, result)

	result.Document = doc
	result.FixCount = len(result.Fixes)
	result.Stats = parser.GetDocumentStats(doc)
	result.Success = true
	return result, nil
}
