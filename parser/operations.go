package parser

// HTTP methods that can hold an operation in an OAS 2.0 path item,
// in Swagger 2.0 path item order.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
)

var operationMethods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete, MethodOptions, MethodHead, MethodPatch,
}

// OperationMethods returns the path item keys that hold operations.
func OperationMethods() []string {
	out := make([]string, len(operationMethods))
	copy(out, operationMethods)
	return out
}

// IsOperationMethod reports whether key names an operation in a path item.
func IsOperationMethod(key string) bool {
	for _, m := range operationMethods {
		if m == key {
			return true
		}
	}
	return false
}

// GetOperations returns the operation objects of a path item keyed by
// method. Non-object values (and path-level keys such as "parameters")
// are skipped.
func GetOperations(pathItem map[string]any) map[string]map[string]any {
	ops := make(map[string]map[string]any)
	for _, method := range operationMethods {
		if op, ok := pathItem[method].(map[string]any); ok {
			ops[method] = op
		}
	}
	return ops
}
