// Package fileutil holds file permission helpers shared by writers.
package fileutil

import (
	"io/fs"
	"os"
)

// OwnerReadWrite is the mode for documents written to a new path chosen
// by the user, such as `fix -o`.
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the mode for generated API documents that are served
// or committed alongside the source tree.
const ReadableByAll os.FileMode = 0o644

// ModeOf returns the permission bits of an existing file, or fallback if
// the file does not exist or cannot be inspected. Rewriting a document in
// place keeps the mode it already had.
func ModeOf(path string, fallback os.FileMode) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return fallback
	}
	return info.Mode() & fs.ModePerm
}
