package mcpserver

import (
	"github.com/casdoor/swagfix/fixer"
	"github.com/casdoor/swagfix/internal/config"
	"github.com/casdoor/swagfix/parser"
)

// serverConfig holds the defaults every tool call runs with.
type serverConfig struct {
	// Fix tool defaults.
	Metadata    fixer.Metadata
	Stages      []fixer.Stage
	JSONIndent  int
	MaxFileSize int64

	// Pagination.
	FixLimit int
	MaxLimit int

	// MaxInlineSize caps inline content, in bytes.
	MaxInlineSize int64

	Logger parser.Logger
}

// cfg is the active server configuration. Run replaces it before serving.
var cfg = mustServerConfig(config.Default())

// newServerConfig derives the server settings from the application config.
func newServerConfig(c *config.Config) (*serverConfig, error) {
	stages, err := c.EnabledStages()
	if err != nil {
		return nil, err
	}
	return &serverConfig{
		Metadata:      c.FixerMetadata(),
		Stages:        stages,
		JSONIndent:    c.JSONIndent,
		MaxFileSize:   c.MaxFileSize,
		FixLimit:      c.MCP.FixLimit,
		MaxLimit:      c.MCP.MaxLimit,
		MaxInlineSize: c.MCP.MaxInlineSize,
		Logger:        parser.NopLogger{},
	}, nil
}

func mustServerConfig(c *config.Config) *serverConfig {
	sc, err := newServerConfig(c)
	if err != nil {
		panic(err)
	}
	return sc
}
