// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the swagfix normalizer as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/casdoor/swagfix"
	"github.com/casdoor/swagfix/internal/config"
	"github.com/casdoor/swagfix/parser"
)

const serverInstructions = `swagfix MCP server: normalizes Casdoor-style Swagger 2.0 documents generated from Beego annotations.

The fix tool runs four stages in order: metadata (info block and default schemes), tags (shorten controller tags such as "github.com/casdoor/casdoor/controllersApiController" to "api"), descriptions (strip <br> markup from operation descriptions), and corrections (fixed operationId and response schema table for the payment endpoints). The canonical_tag tool previews tag renames without touching a document.

Configuration: defaults come from .swagfix.yaml and SWAGFIX_* environment variables set in your MCP client config.

Key settings:
- SWAGFIX_STAGES (default: all) — comma-separated stages to run
- SWAGFIX_JSON_INDENT (default: 4) — JSON output indentation
- SWAGFIX_METADATA_TITLE, _DESCRIPTION, _VERSION, _CONTACT_EMAIL — override the info block
- SWAGFIX_MCP_FIX_LIMIT (default: 100) — fixes returned per call
- SWAGFIX_MCP_MAX_INLINE_SIZE (default: 10MiB) — inline content limit`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled. A nil logger disables logging.
func Run(ctx context.Context, appConfig *config.Config, logger parser.Logger) error {
	sc, err := newServerConfig(appConfig)
	if err != nil {
		return err
	}
	if logger != nil {
		sc.Logger = logger
	}
	cfg = sc

	server := mcp.NewServer(
		&mcp.Implementation{Name: "swagfix", Version: swagfix.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "fix",
		Description: "Normalize a Swagger 2.0 document generated from Beego controllers. Stages: metadata (info block, default schemes), tags (canonical short tag names), descriptions (remove <br> markup), corrections (operationId and response schema table). Returns every fix with its path, the tag rename map, and optionally the fixed document. Use dry_run=true to preview. Use output to write the fixed document to a file atomically. Use offset/limit to paginate fixes.",
	}, handleFix)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "canonical_tag",
		Description: "Compute the canonical short form of one or more controller tag names, e.g. \"github.com/casdoor/casdoor/controllersAccountController\" becomes \"account\". Tags without '/' or '.' are returned unchanged.",
	}, handleCanonicalTag)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.FixLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.FixLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
