package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casdoor/swagfix/fixer"
	"github.com/casdoor/swagfix/internal/config"
	"github.com/casdoor/swagfix/parser"
)

// captureOutput redirects Stdout and Stderr for the rest of the test.
func captureOutput(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	prevOut, prevErr := Stdout, Stderr
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	Stdout, Stderr = stdout, stderr
	t.Cleanup(func() { Stdout, Stderr = prevOut, prevErr })
	return stdout, stderr
}

// setStdin replaces Stdin for the rest of the test.
func setStdin(t *testing.T, r io.Reader) {
	t.Helper()
	prev := Stdin
	Stdin = r
	t.Cleanup(func() { Stdin = prev })
}

// workspace copies the document fixtures into a fresh working directory
// and returns its path. No configuration file is present.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"swagger.json", "swagger.yml"} {
		data, err := os.ReadFile(filepath.Join("..", "..", "..", "testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	t.Chdir(dir)
	return dir
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "swagger/swagger.json", FormatSpecPath("swagger/swagger.json"))
}

func TestParseInput(t *testing.T) {
	cfg := config.Default()

	t.Run("stdin", func(t *testing.T) {
		setStdin(t, strings.NewReader(`{"swagger":"2.0"}`))
		result, err := ParseInput(StdinFilePath, cfg, parser.NopLogger{})
		require.NoError(t, err)
		assert.Equal(t, parser.SourceFormatJSON, result.SourceFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseInput(filepath.Join(t.TempDir(), "missing.json"), cfg, parser.NopLogger{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing")
	})

	t.Run("size limit", func(t *testing.T) {
		small := config.Default()
		small.MaxFileSize = 8
		setStdin(t, strings.NewReader(`{"swagger":"2.0","paths":{}}`))
		_, err := ParseInput(StdinFilePath, small, parser.NopLogger{})
		require.Error(t, err)
	})
}

func TestFixOptions(t *testing.T) {
	parsed, err := parser.New().ParseBytes([]byte("swagger: \"2.0\"\npaths: {}\n"))
	require.NoError(t, err)

	t.Run("stages from config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Stages = "descriptions"
		opts, err := FixOptions(parsed, cfg, parser.NopLogger{})
		require.NoError(t, err)

		result, err := fixer.FixWithOptions(opts...)
		require.NoError(t, err)
		assert.Zero(t, result.FixCount, "descriptions stage alone has nothing to fix")
	})

	t.Run("bad stage", func(t *testing.T) {
		cfg := config.Default()
		cfg.Stages = "bogus"
		_, err := FixOptions(parsed, cfg, parser.NopLogger{})
		require.Error(t, err)
	})
}

func TestOutputFixReport(t *testing.T) {
	result, err := fixer.New().Fix("../../../testdata/swagger.json")
	require.NoError(t, err)

	var buf bytes.Buffer
	OutputFixReport(&buf, "swagger.json", result, 0)
	out := buf.String()
	assert.Contains(t, out, "Specification: swagger.json")
	assert.Contains(t, out, "Swagger Version: 2.0")
	assert.Contains(t, out, "Fixes Applied (12):")
	assert.Contains(t, out, "[renamed-tag] paths./api/login.post.tags[0]: Renamed tag 'casdoor/controllers.ApiController' to 'api'")
	assert.Contains(t, out, "✓ Applied 12 fix(es)")

	buf.Reset()
	clean, err := fixer.New().FixDocument(result.Document)
	require.NoError(t, err)
	OutputFixReport(&buf, StdinFilePath, clean, 0)
	assert.Contains(t, buf.String(), "Specification: <stdin>")
	assert.Contains(t, buf.String(), "✓ No fixes needed")
}
