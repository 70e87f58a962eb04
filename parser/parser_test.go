package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casdoor/swagfix/oaserrors"
)

func TestParseFixtures(t *testing.T) {
	tests := []struct {
		file   string
		format SourceFormat
	}{
		{"../testdata/swagger.json", SourceFormatJSON},
		{"../testdata/swagger.yml", SourceFormatYAML},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.file), func(t *testing.T) {
			result, err := New().Parse(tt.file)
			require.NoError(t, err)

			assert.Equal(t, tt.file, result.SourcePath)
			assert.Equal(t, tt.format, result.SourceFormat)
			assert.Equal(t, "2.0", result.Version)
			assert.True(t, result.HasPreservedOrder())
			assert.Positive(t, result.SourceSize)
			assert.Equal(t, DocumentStats{
				PathCount:       6,
				OperationCount:  6,
				DefinitionCount: 2,
				TagCount:        3,
			}, result.Stats)
		})
	}
}

func TestParseJSONAndYAMLDecodeToSameTree(t *testing.T) {
	jsonResult, err := New().Parse("../testdata/swagger.json")
	require.NoError(t, err)
	yamlResult, err := New().Parse("../testdata/swagger.yml")
	require.NoError(t, err)

	if diff := cmp.Diff(jsonResult.Data, yamlResult.Data); diff != "" {
		t.Errorf("JSON and YAML trees differ (-json +yaml):\n%s", diff)
	}
}

func TestParseBytes(t *testing.T) {
	t.Run("json content", func(t *testing.T) {
		result, err := New().ParseBytes([]byte(`{"swagger":"2.0","paths":{}}`))
		require.NoError(t, err)
		assert.Equal(t, SourceFormatJSON, result.SourceFormat)
		assert.Equal(t, "ParseBytes.json", result.SourcePath)
		assert.Equal(t, "2.0", result.Version)
	})

	t.Run("yaml content", func(t *testing.T) {
		result, err := New().ParseBytes([]byte("swagger: \"2.0\"\npaths: {}\n"))
		require.NoError(t, err)
		assert.Equal(t, SourceFormatYAML, result.SourceFormat)
		assert.Equal(t, "ParseBytes.yaml", result.SourcePath)
	})

	t.Run("no version field is accepted", func(t *testing.T) {
		result, err := New().ParseBytes([]byte(`{"paths":{}}`))
		require.NoError(t, err)
		assert.Empty(t, result.Version)
	})
}

func TestParseNormalizesIntegerKeys(t *testing.T) {
	input := `swagger: "2.0"
paths:
  /a:
    get:
      responses:
        200:
          description: ok
`
	result, err := New().ParseBytes([]byte(input))
	require.NoError(t, err)

	paths := result.Data["paths"].(map[string]any)
	get := paths["/a"].(map[string]any)["get"].(map[string]any)
	responses, ok := get["responses"].(map[string]any)
	require.True(t, ok, "responses should be map[string]any, got %T", get["responses"])
	assert.Contains(t, responses, "200")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		message string
	}{
		{name: "syntax error", input: "{\"swagger\": \"2.0\",", message: "failed to parse"},
		{name: "empty document", input: "", message: "document is empty"},
		{name: "null document", input: "null", message: "document is empty"},
		{name: "array root", input: "- a\n- b\n", line: 1, message: "must be an object"},
		{name: "scalar root", input: "just a string", line: 1, message: "must be an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().ParseBytes([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrParse))

			var parseErr *oaserrors.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.line, parseErr.Line)
			assert.Contains(t, parseErr.Error(), tt.message)
		})
	}
}

func TestParseFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := New().Parse(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("url rejected", func(t *testing.T) {
		_, err := New().Parse("https://example.com/swagger.json")
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	})

	t.Run("file too large", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "swagger.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"swagger":"2.0"}`), 0o600))

		p := New()
		p.MaxFileSize = 4
		_, err := p.Parse(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrResourceLimit))

		var limitErr *oaserrors.ResourceLimitError
		require.True(t, errors.As(err, &limitErr))
		assert.Equal(t, int64(4), limitErr.Limit)
		assert.Equal(t, int64(17), limitErr.Actual)
	})

	t.Run("parse error carries path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yml")
		require.NoError(t, os.WriteFile(path, []byte("- not\n- an object\n"), 0o600))

		_, err := New().Parse(path)
		var parseErr *oaserrors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, path, parseErr.Path)
	})
}

func TestParseExtensionOverridesContent(t *testing.T) {
	// JSON is valid YAML, so a .yml file holding JSON is still read
	path := filepath.Join(t.TempDir(), "swagger.yml")
	require.NoError(t, os.WriteFile(path, []byte(`{"swagger":"2.0"}`), 0o600))

	result, err := New().Parse(path)
	require.NoError(t, err)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
}

func TestParseReader(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		result, err := New().ParseReader(strings.NewReader(`{"swagger":"2.0"}`))
		require.NoError(t, err)
		assert.Equal(t, "ParseReader.json", result.SourcePath)
		assert.Equal(t, int64(17), result.SourceSize)
	})

	t.Run("too large", func(t *testing.T) {
		p := New()
		p.MaxFileSize = 8
		_, err := p.ParseReader(strings.NewReader(`{"swagger":"2.0"}`))
		assert.True(t, errors.Is(err, oaserrors.ErrResourceLimit))
	})
}

func TestCopyIsDeep(t *testing.T) {
	result, err := New().Parse("../testdata/swagger.json")
	require.NoError(t, err)

	cp := result.Copy()
	cp.Data["info"].(map[string]any)["title"] = "changed"
	cp.Data["tags"].([]any)[0].(map[string]any)["name"] = "api"

	assert.Equal(t, "beego Test API", result.Data["info"].(map[string]any)["title"])
	assert.Equal(t, "casdoor/controllers.ApiController", result.Data["tags"].([]any)[0].(map[string]any)["name"])
	assert.True(t, cp.HasPreservedOrder())

	var nilResult *ParseResult
	assert.Nil(t, nilResult.Copy())
	assert.Nil(t, CopyData(nil))
}

func TestNewParseResult(t *testing.T) {
	data := map[string]any{"swagger": "2.0", "paths": map[string]any{"/a": map[string]any{}}}
	result := NewParseResult(data, SourceFormatJSON)

	assert.Equal(t, "NewParseResult.json", result.SourcePath)
	assert.Equal(t, "2.0", result.Version)
	assert.Equal(t, 1, result.Stats.PathCount)
	assert.False(t, result.HasPreservedOrder())
}

func TestWithData(t *testing.T) {
	result, err := New().ParseBytes([]byte(`{"swagger":"2.0","paths":{}}`))
	require.NoError(t, err)

	replaced := result.WithData(map[string]any{"swagger": "2.0", "paths": map[string]any{"/x": map[string]any{}}})
	assert.True(t, replaced.HasPreservedOrder())
	assert.Equal(t, 1, replaced.Stats.PathCount)
	assert.Equal(t, 0, result.Stats.PathCount)
}
