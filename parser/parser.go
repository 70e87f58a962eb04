package parser

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mitchellh/copystructure"
	"go.yaml.in/yaml/v4"

	"github.com/casdoor/swagfix/oaserrors"
)

// DefaultMaxFileSize is the input size limit used when Parser.MaxFileSize is 0.
const DefaultMaxFileSize int64 = 64 << 20

// Parser loads Swagger documents into an order-preserving generic tree
type Parser struct {
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
	// MaxFileSize is the maximum input size in bytes.
	// Default: 64MiB
	MaxFileSize int64
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// SourceFormat represents the serialization format of a document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains a parsed document and metadata about its source.
//
// Data is the generic tree: objects are map[string]any, arrays are []any,
// and leaves are string, int, float64, bool, or nil. The original key order
// is kept alongside the tree so MarshalOrderedJSON and MarshalOrderedYAML
// can reproduce it.
//
// Callers should treat a ParseResult as read-only; use Copy() before
// modifying Data if the original is still needed.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name of the method
	// and end in '.yaml' or '.json' based on the detected format
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the value of the root "swagger" (or "openapi") field, if any.
	// It is informational only; documents without it are still accepted.
	Version string
	// Data contains the parsed document tree
	Data map[string]any
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
	// sourceNode holds the original yaml.Node tree for order-preserving marshaling.
	sourceNode *yaml.Node
}

// NewParseResult wraps an in-memory document tree so it can be marshaled.
// No key order is known for data built this way, so objects are emitted
// with sorted keys.
func NewParseResult(data map[string]any, format SourceFormat) *ParseResult {
	return &ParseResult{
		SourcePath:   "NewParseResult." + string(format),
		SourceFormat: format,
		Version:      detectVersion(data),
		Data:         data,
		Stats:        GetDocumentStats(data),
	}
}

// WithData returns a shallow copy of the result carrying data in place of
// the original tree. The source key order is kept, so marshaling the new
// result emits surviving keys where they were and appends new ones.
func (pr *ParseResult) WithData(data map[string]any) *ParseResult {
	cp := *pr
	cp.Data = data
	cp.Stats = GetDocumentStats(data)
	return &cp
}

// Copy creates a deep copy of the ParseResult.
// The source key order is shared since it is never modified.
//
// Example:
//
//	original, _ := parser.ParseWithOptions(parser.WithFilePath("swagger.yml"))
//	modified := original.Copy()
//	modified.Data["schemes"] = []any{"https"}
func (pr *ParseResult) Copy() *ParseResult {
	if pr == nil {
		return nil
	}

	result := *pr
	if pr.Data != nil {
		result.Data = CopyData(pr.Data)
	}
	return &result
}

// CopyData returns a deep copy of a document tree.
func CopyData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	cp, err := copystructure.Copy(data)
	if err != nil {
		// copystructure only fails on unsupported kinds, which a decoded tree never contains
		panic(fmt.Sprintf("parser: failed to copy document: %v", err))
	}
	return cp.(map[string]any)
}

// Parse parses a Swagger document from a local file.
// URLs are rejected; fetch the document yourself and use ParseBytes.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	if isURL(specPath) {
		return nil, &oaserrors.ConfigError{
			Option:  "file_path",
			Value:   specPath,
			Message: "remote documents are not supported",
		}
	}

	loadStart := time.Now()
	data, err := p.readFile(specPath)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, err
	}

	res, err := p.parseBytes(data, specPath)
	if err != nil {
		return nil, err
	}

	res.SourcePath = specPath
	res.LoadTime = loadTime
	res.SourceSize = int64(len(data))

	// Extension wins over content sniffing
	if format := detectFormatFromPath(specPath); format != SourceFormatUnknown {
		res.SourceFormat = format
	}

	p.log().Debug("parsed document",
		"path", specPath,
		"format", res.SourceFormat,
		"size", res.SourceSize,
		"paths", res.Stats.PathCount,
	)
	return res, nil
}

// ParseReader parses a Swagger document from an io.Reader
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseReader.yaml or ParseReader.json
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, p.maxFileSize()+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	if int64(len(data)) > p.maxFileSize() {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        p.maxFileSize(),
			Message:      "reader input too large",
		}
	}

	res, err := p.parseBytes(data, "")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourceSize = int64(len(data))
	res.SourcePath = "ParseReader." + string(res.SourceFormat)
	return res, nil
}

// ParseBytes parses a Swagger document from a byte slice
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseBytes.yaml or ParseBytes.json
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	if int64(len(data)) > p.maxFileSize() {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        p.maxFileSize(),
			Actual:       int64(len(data)),
		}
	}

	res, err := p.parseBytes(data, "")
	if err != nil {
		return nil, err
	}
	res.SourceSize = int64(len(data))
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

func (p *Parser) readFile(specPath string) ([]byte, error) {
	info, err := os.Stat(specPath)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	if info.Size() > p.maxFileSize() {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        p.maxFileSize(),
			Actual:       info.Size(),
			Message:      specPath,
		}
	}
	data, err := os.ReadFile(specPath) //nolint:gosec // G304 - path is user-provided CLI input
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	return data, nil
}

// parseBytes decodes data into a node tree (for key order) and a generic
// tree (for editing). sourcePath is only used in error messages.
func (p *Parser) parseBytes(data []byte, sourcePath string) (*ParseResult, error) {
	result := &ParseResult{
		SourceFormat: detectFormatFromContent(data),
	}

	var rootNode yaml.Node
	if err := yaml.Unmarshal(data, &rootNode); err != nil {
		return nil, newParseError(sourcePath, "failed to parse YAML/JSON", err)
	}
	if rootNode.Kind == 0 {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "document is empty"}
	}

	var raw any
	if err := decodePreservingScalars(&rootNode, &raw); err != nil {
		return nil, newParseError(sourcePath, "failed to decode document", err)
	}
	if raw == nil {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "document is empty"}
	}

	doc, ok := normalizeKeys(raw).(map[string]any)
	if !ok {
		line, col := rootPosition(&rootNode)
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Line:    line,
			Column:  col,
			Message: fmt.Sprintf("document root must be an object, got %T", raw),
		}
	}

	result.Data = doc
	result.sourceNode = &rootNode
	result.Version = detectVersion(doc)
	result.Stats = GetDocumentStats(doc)
	return result, nil
}

// decodePreservingScalars decodes node into out, keeping plain timestamp
// scalars as their source text instead of time.Time so they pass through
// unchanged. The node's tags are restored afterwards.
func decodePreservingScalars(node *yaml.Node, out any) error {
	timestamps := collectTimestamps(node, nil)
	for _, n := range timestamps {
		n.Tag = "!!str"
	}
	defer func() {
		for _, n := range timestamps {
			n.Tag = "!!timestamp"
		}
	}()
	return node.Decode(out)
}

func collectTimestamps(node *yaml.Node, acc []*yaml.Node) []*yaml.Node {
	if node == nil {
		return acc
	}
	if isTimestampScalar(node) {
		return append(acc, node)
	}
	for _, child := range node.Content {
		acc = collectTimestamps(child, acc)
	}
	return acc
}

// isTimestampScalar reports whether node is a scalar that YAML resolves
// to a timestamp without an explicit tag.
func isTimestampScalar(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Style&yaml.TaggedStyle == 0 && node.ShortTag() == "!!timestamp"
}

// newParseError wraps a decoder error. The decoder already reports the
// line number in its message.
func newParseError(sourcePath, msg string, cause error) *oaserrors.ParseError {
	return &oaserrors.ParseError{Path: sourcePath, Message: msg, Cause: cause}
}

func rootPosition(node *yaml.Node) (int, int) {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	return node.Line, node.Column
}

// normalizeKeys converts mappings decoded with non-string keys (such as an
// unquoted 200: response code) into map[string]any so lookups behave the
// same for JSON and YAML input.
func normalizeKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			val[k] = normalizeKeys(child)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[fmt.Sprint(k)] = normalizeKeys(child)
		}
		return out
	case []any:
		for i, child := range val {
			val[i] = normalizeKeys(child)
		}
		return val
	default:
		return v
	}
}

// detectVersion returns the "swagger" or "openapi" field as a string.
func detectVersion(data map[string]any) string {
	for _, key := range []string{"swagger", "openapi"} {
		if v, ok := data[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return ""
}
