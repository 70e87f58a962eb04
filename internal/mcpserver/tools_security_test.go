package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixTool_OutputPathSymlinkRejected(t *testing.T) {
	tmpDir := t.TempDir()
	realFile := filepath.Join(tmpDir, "real.yml")
	linkFile := filepath.Join(tmpDir, "link.yml")

	require.NoError(t, os.WriteFile(realFile, []byte("placeholder"), 0o600))
	require.NoError(t, os.Symlink(realFile, linkFile))

	input := fixInput{
		Spec:   specInput{Content: loginSpec},
		Output: linkFile,
	}
	result, _, err := handleFix(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError, "expected error for symlink output path")

	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "symlink")
	assert.NotContains(t, text, tmpDir, "absolute paths must be stripped")

	data, err := os.ReadFile(realFile)
	require.NoError(t, err)
	assert.Equal(t, "placeholder", string(data))
}

func TestFixTool_OutputPathNormalized(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "sub")
	require.NoError(t, os.Mkdir(subDir, 0o755))

	messyPath := subDir + "/./../sub/swagger.yml"

	input := fixInput{
		Spec:   specInput{Content: loginSpec},
		Output: messyPath,
	}
	result, output, err := handleFix(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, messyPath, output.WrittenTo)
	assert.FileExists(t, filepath.Join(subDir, "swagger.yml"))
}

func TestFixTool_OutputMissingDirectory(t *testing.T) {
	input := fixInput{
		Spec:   specInput{Content: loginSpec},
		Output: filepath.Join(t.TempDir(), "missing", "swagger.yml"),
	}
	result, _, err := handleFix(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, "write error")
}
