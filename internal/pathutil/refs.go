package pathutil

import "strings"

// RefPrefixDefinitions is the JSON pointer prefix of Swagger 2.0 schema definitions.
const RefPrefixDefinitions = "#/definitions/"

// DefinitionRef builds "#/definitions/{name}".
func DefinitionRef(name string) string {
	return RefPrefixDefinitions + name
}

// DefinitionName returns the definition name of a local definitions
// reference, and false for any other reference.
func DefinitionName(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, RefPrefixDefinitions)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
