// Package docwriter serializes fixed documents and replaces files on disk
// atomically, so an interrupted or failed write never leaves a partial
// document behind.
package docwriter

import (
	"errors"
	"os"
	"strings"

	"github.com/moby/sys/atomicwriter"

	"github.com/casdoor/swagfix/internal/fileutil"
	"github.com/casdoor/swagfix/internal/pathutil"
	"github.com/casdoor/swagfix/oaserrors"
	"github.com/casdoor/swagfix/parser"
)

// DefaultJSONIndent is the number of spaces used to indent JSON output.
const DefaultJSONIndent = 4

// Writer encodes documents and persists them.
type Writer struct {
	// JSONIndent is the number of spaces per JSON nesting level.
	// YAML output is unaffected.
	JSONIndent int
	// Perm is the mode used when the destination does not exist yet.
	// Existing files keep their current mode.
	Perm os.FileMode
}

// New creates a Writer with default settings.
func New() *Writer {
	return &Writer{
		JSONIndent: DefaultJSONIndent,
		Perm:       fileutil.ReadableByAll,
	}
}

// Encode serializes result in format. SourceFormatUnknown falls back to
// the result's own source format.
func (w *Writer) Encode(result *parser.ParseResult, format parser.SourceFormat) ([]byte, error) {
	if format == parser.SourceFormatUnknown {
		format = result.SourceFormat
	}
	data, err := result.Marshal(format, w.indent())
	if err != nil {
		return nil, &oaserrors.WriteError{
			Format:  string(format),
			Message: "serialization failed",
			Cause:   err,
		}
	}
	return data, nil
}

// Write encodes result and atomically replaces path with it. When format is
// unknown it is taken from the path extension, then from the result.
func (w *Writer) Write(path string, result *parser.ParseResult, format parser.SourceFormat) error {
	if format == parser.SourceFormatUnknown {
		format = parser.FormatFromPath(path)
	}
	data, err := w.Encode(result, format)
	if err != nil {
		var we *oaserrors.WriteError
		if errors.As(err, &we) {
			we.Path = path
		}
		return err
	}
	return w.WriteBytes(path, format, data)
}

// WriteBytes atomically replaces path with data. The destination directory
// must already exist. Symlinks and directories are refused.
func (w *Writer) WriteBytes(path string, format parser.SourceFormat, data []byte) error {
	abs, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return &oaserrors.WriteError{
			Path:    path,
			Format:  string(format),
			Message: "invalid output path",
			Cause:   err,
		}
	}
	if err := atomicwriter.WriteFile(abs, data, fileutil.ModeOf(abs, w.Perm)); err != nil {
		return &oaserrors.WriteError{
			Path:   path,
			Format: string(format),
			Cause:  err,
		}
	}
	return nil
}

func (w *Writer) indent() string {
	if w.JSONIndent <= 0 {
		return ""
	}
	return strings.Repeat(" ", w.JSONIndent)
}
