package parser

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
)

// FormatBytes formats a byte count using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	return units.BytesSize(float64(size))
}

// FormatFromPath returns the format implied by a file extension, or
// SourceFormatUnknown.
func FormatFromPath(path string) SourceFormat {
	return detectFormatFromPath(path)
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes
// JSON typically starts with '{' or '[', while YAML does not
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")

	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}

	return SourceFormatYAML
}

// isURL determines if the given path is a URL (http:// or https://)
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
