package parser

// DocumentStats contains counts of the sections the normalizer works on
type DocumentStats struct {
	PathCount       int
	OperationCount  int
	DefinitionCount int
	TagCount        int
}

// GetDocumentStats counts paths, operations, definitions, and registered
// tags in a document tree. Sections with an unexpected shape count as empty.
func GetDocumentStats(data map[string]any) DocumentStats {
	stats := DocumentStats{}
	if data == nil {
		return stats
	}

	if paths, ok := data["paths"].(map[string]any); ok {
		stats.PathCount = len(paths)
		for _, item := range paths {
			if pathItem, ok := item.(map[string]any); ok {
				stats.OperationCount += len(GetOperations(pathItem))
			}
		}
	}
	if defs, ok := data["definitions"].(map[string]any); ok {
		stats.DefinitionCount = len(defs)
	}
	if tags, ok := data["tags"].([]any); ok {
		stats.TagCount = len(tags)
	}

	return stats
}
