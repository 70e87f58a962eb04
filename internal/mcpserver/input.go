package mcpserver

import (
	"fmt"
	"strings"

	"github.com/casdoor/swagfix/parser"
)

// specInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a swagger.json or swagger.yml file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline Swagger 2.0 document content (JSON or YAML)"`
}

// resolve parses the document from whichever input was provided. Every
// call parses afresh; the result is owned by the caller.
func (s specInput) resolve() (*parser.ParseResult, error) {
	count := 0
	if s.File != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %s exceeds maximum %s; use file input instead, or set SWAGFIX_MCP_MAX_INLINE_SIZE to increase",
			parser.FormatBytes(int64(len(s.Content))), parser.FormatBytes(cfg.MaxInlineSize))
	}

	opts := []parser.Option{
		parser.WithMaxFileSize(cfg.MaxFileSize),
		parser.WithLogger(cfg.Logger),
	}
	if s.File != "" {
		opts = append(opts, parser.WithFilePath(s.File))
	} else {
		opts = append(opts, parser.WithReader(strings.NewReader(s.Content)))
	}

	return parser.ParseWithOptions(opts...)
}
