package fixer

import (
	"strings"

	"github.com/casdoor/swagfix/internal/pathutil"
)

// SanitizeDescription removes the <br> artifacts the doc generator leaves in
// operation descriptions. Every "\n<br>" is removed first, then every
// remaining "<br>"; all other text and whitespace is kept.
func SanitizeDescription(s string) string {
	s = strings.ReplaceAll(s, "\n<br>", "")
	return strings.ReplaceAll(s, "<br>", "")
}

// fixDescriptions sanitizes the string description of every operation.
// info.description and non-string descriptions are left alone.
func fixDescriptions(doc map[string]any, result *FixResult) {
	walkOperations(doc, func(op map[string]any, path *pathutil.PathBuilder) {
		desc, ok := op["description"].(string)
		if !ok {
			return
		}
		clean := SanitizeDescription(desc)
		if clean == desc {
			return
		}
		op["description"] = clean
		result.Fixes = append(result.Fixes, Fix{
			Type:        FixTypeSanitizedDescription,
			Path:        path.Child("description"),
			Description: "Removed <br> markup from description",
			Before:      desc,
			After:       clean,
		})
	})
}
