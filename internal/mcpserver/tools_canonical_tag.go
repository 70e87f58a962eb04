package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/casdoor/swagfix/fixer"
)

type canonicalTagInput struct {
	Tags []string `json:"tags" jsonschema:"Tag names to canonicalize"`
}

type tagMapping struct {
	Tag       string `json:"tag"`
	Canonical string `json:"canonical"`
	Changed   bool   `json:"changed"`
}

type canonicalTagOutput struct {
	Tags    []tagMapping `json:"tags"`
	Changed int          `json:"changed"`
}

func handleCanonicalTag(_ context.Context, _ *mcp.CallToolRequest, input canonicalTagInput) (*mcp.CallToolResult, canonicalTagOutput, error) {
	if len(input.Tags) == 0 {
		return errResult(errors.New("at least one tag must be provided")), canonicalTagOutput{}, nil
	}

	output := canonicalTagOutput{Tags: make([]tagMapping, 0, len(input.Tags))}
	for _, tag := range input.Tags {
		canonical := fixer.CanonicalTagName(tag)
		changed := canonical != tag
		if changed {
			output.Changed++
		}
		output.Tags = append(output.Tags, tagMapping{Tag: tag, Canonical: canonical, Changed: changed})
	}
	return nil, output, nil
}
