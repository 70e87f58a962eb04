package fixer

import (
	"fmt"
	"maps"
	"slices"

	"github.com/casdoor/swagfix/internal/pathutil"
	"github.com/casdoor/swagfix/parser"
)

// sortedKeys returns map keys in sorted order for deterministic iteration.
func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// operationVisitor is called for each operation with a path builder
// positioned at the operation ("paths.<path>.<method>").
type operationVisitor func(op map[string]any, path *pathutil.PathBuilder)

// walkOperations visits every operation object under doc["paths"] with
// paths sorted and methods in declaration order. Path items and operations
// that are not objects are skipped.
func walkOperations(doc map[string]any, visit operationVisitor) {
	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		return
	}

	path := pathutil.New("paths")
	for _, pathKey := range sortedKeys(paths) {
		pathItem, ok := paths[pathKey].(map[string]any)
		if !ok {
			continue
		}
		walkPathItem(pathItem, pathKey, path, visit)
	}
}

func walkPathItem(pathItem map[string]any, pathKey string, path *pathutil.PathBuilder, visit operationVisitor) {
	path.Push(pathKey)
	defer path.Pop()

	for _, method := range parser.OperationMethods() {
		op, ok := pathItem[method].(map[string]any)
		if !ok {
			continue
		}
		path.Push(method)
		visit(op, path)
		path.Pop()
	}
}

// isFalsy reports whether v is absent or empty in the loose sense used for
// the schemes default: nil, "", false, zero, or an empty array or object.
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case int:
		return val == 0
	case int64:
		return val == 0
	case uint64:
		return val == 0
	case float64:
		return val == 0
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

// versionOf returns the root "swagger" field as a string.
func versionOf(doc map[string]any) string {
	if v, ok := doc["swagger"]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}
