package mcpserver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casdoor/swagfix/parser"
)

func TestSpecInput_ResolveFile(t *testing.T) {
	input := specInput{File: "../../testdata/swagger.yml"}
	result, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, "2.0", result.Version)
	assert.Equal(t, parser.SourceFormatYAML, result.SourceFormat)
}

func TestSpecInput_ResolveContent(t *testing.T) {
	input := specInput{Content: `{"swagger":"2.0","paths":{}}`}
	result, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, "2.0", result.Version)
	assert.Equal(t, parser.SourceFormatJSON, result.SourceFormat)
}

func TestSpecInput_ResolveFreshParse(t *testing.T) {
	input := specInput{Content: loginSpec}
	first, err := input.resolve()
	require.NoError(t, err)
	first.Data["swagger"] = "changed"

	second, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, "2.0", second.Data["swagger"])
}

func TestSpecInput_ResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   specInput
		wantMsg string
	}{
		{"none provided", specInput{}, "exactly one of file or content must be provided"},
		{"both provided", specInput{File: "swagger.json", Content: "{}"}, "exactly one of file or content must be provided"},
		{"missing file", specInput{File: "/nonexistent/swagger.json"}, ""},
		{"empty document", specInput{Content: "   "}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.resolve()
			require.Error(t, err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestSpecInput_InlineSizeLimit(t *testing.T) {
	withServerConfig(t, func(c *serverConfig) { c.MaxInlineSize = 16 })

	_, err := specInput{Content: strings.Repeat("a", 17)}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inline content size 17B exceeds maximum 16B")
}
