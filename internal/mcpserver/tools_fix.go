package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/casdoor/swagfix/fixer"
	"github.com/casdoor/swagfix/internal/docwriter"
	"github.com/casdoor/swagfix/parser"
)

type fixInput struct {
	Spec            specInput `json:"spec"                       jsonschema:"The Swagger 2.0 document to normalize"`
	Stages          []string  `json:"stages,omitempty"           jsonschema:"Stages to run: metadata, tags, descriptions, corrections. Default: all (or SWAGFIX_STAGES)"`
	DryRun          bool      `json:"dry_run,omitempty"          jsonschema:"Report fixes without writing or returning the document"`
	IncludeDocument bool      `json:"include_document,omitempty" jsonschema:"Include the full fixed document in output"`
	Output          string    `json:"output,omitempty"           jsonschema:"File path to write the fixed document to. The format follows the file extension, falling back to the input format."`
	Offset          int       `json:"offset,omitempty"           jsonschema:"Skip the first N fixes (for pagination)"`
	Limit           int       `json:"limit,omitempty"            jsonschema:"Maximum number of fixes to return (default 100)"`
}

type fixApplied struct {
	Type        string `json:"type"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Before      any    `json:"before,omitempty"`
	After       any    `json:"after,omitempty"`
}

type fixOutput struct {
	FixCount   int               `json:"fix_count"`
	Returned   int               `json:"returned"`
	Fixes      []fixApplied      `json:"fixes,omitempty"`
	TagRenames map[string]string `json:"tag_renames,omitempty"`
	Version    string            `json:"version"`
	Format     string            `json:"format"`
	WrittenTo  string            `json:"written_to,omitempty"`
	Document   string            `json:"document,omitempty"`
}

func handleFix(_ context.Context, _ *mcp.CallToolRequest, input fixInput) (*mcp.CallToolResult, fixOutput, error) {
	opts, err := buildFixerOptions(input)
	if err != nil {
		return errResult(err), fixOutput{}, nil
	}

	result, err := fixer.FixWithOptions(opts...)
	if err != nil {
		return errResult(err), fixOutput{}, nil
	}

	output := fixOutput{
		FixCount:   result.FixCount,
		TagRenames: result.TagRenames,
		Version:    result.SourceVersion,
		Format:     string(result.SourceFormat),
	}
	if len(output.TagRenames) == 0 {
		output.TagRenames = nil
	}

	output.Fixes = makeSlice[fixApplied](len(result.Fixes))
	for _, f := range result.Fixes {
		output.Fixes = append(output.Fixes, fixApplied{
			Type:        string(f.Type),
			Path:        f.Path,
			Description: f.Description,
			Before:      f.Before,
			After:       f.After,
		})
	}

	output.Fixes = paginate(output.Fixes, input.Offset, input.Limit)
	output.Returned = len(output.Fixes)

	if input.DryRun {
		return nil, output, nil
	}

	writer := docwriter.New()
	writer.JSONIndent = cfg.JSONIndent
	pr := result.ToParseResult()

	if input.Output != "" {
		if err := writer.Write(input.Output, pr, parser.SourceFormatUnknown); err != nil {
			return errResult(err), fixOutput{}, nil
		}
		output.WrittenTo = input.Output
		cfg.Logger.Info("wrote fixed document", "path", input.Output, "fixes", result.FixCount)
	}

	if input.IncludeDocument {
		data, err := writer.Encode(pr, result.SourceFormat)
		if err != nil {
			return errResult(err), fixOutput{}, nil
		}
		output.Document = string(data)
	}

	return nil, output, nil
}

// buildFixerOptions translates the MCP input into fixer options.
func buildFixerOptions(input fixInput) ([]fixer.Option, error) {
	parsed, err := input.Spec.resolve()
	if err != nil {
		return nil, err
	}

	stages := cfg.Stages
	if len(input.Stages) > 0 {
		stages, err = fixer.ParseStages(strings.Join(input.Stages, ","))
		if err != nil {
			return nil, err
		}
	}

	// The parse result belongs to this call, so the fixer may work in place.
	return []fixer.Option{
		fixer.WithParsed(*parsed),
		fixer.WithMutableInput(true),
		fixer.WithMetadata(cfg.Metadata),
		fixer.WithEnabledStages(stages...),
		fixer.WithLogger(cfg.Logger),
	}, nil
}
