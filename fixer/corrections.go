package fixer

import (
	"fmt"

	"github.com/casdoor/swagfix/internal/pathutil"
	"github.com/casdoor/swagfix/oaserrors"
)

// PaymentDefinition is the schema the default corrections point payment endpoints at.
const PaymentDefinition = "object.Payment"

// Correction overrides the operationId and 200 response schema of one path.
// Exactly one of SchemaRef and ArrayItemRef is set.
type Correction struct {
	// Path is the exact key under "paths"
	Path string
	// OperationID replaces an existing operationId
	OperationID string
	// SchemaRef replaces the $ref of a direct reference schema
	SchemaRef string
	// ArrayItemRef replaces items.$ref of an array schema
	ArrayItemRef string
}

// CorrectionTable is an ordered, validated list of corrections.
// The zero value is an empty table.
type CorrectionTable struct {
	entries []Correction
}

// NewCorrectionTable validates entries and builds a table. Every entry needs
// a path, an operationId, and exactly one ref kind; paths must be unique.
func NewCorrectionTable(entries ...Correction) (CorrectionTable, error) {
	seen := make(map[string]bool, len(entries))
	for i, c := range entries {
		option := fmt.Sprintf("corrections[%d]", i)
		switch {
		case c.Path == "":
			return CorrectionTable{}, &oaserrors.ConfigError{Option: option, Message: "path is required"}
		case c.OperationID == "":
			return CorrectionTable{}, &oaserrors.ConfigError{Option: option, Value: c.Path, Message: "operationId is required"}
		case (c.SchemaRef == "") == (c.ArrayItemRef == ""):
			return CorrectionTable{}, &oaserrors.ConfigError{Option: option, Value: c.Path, Message: "exactly one of SchemaRef or ArrayItemRef must be set"}
		case seen[c.Path]:
			return CorrectionTable{}, &oaserrors.ConfigError{Option: option, Value: c.Path, Message: "duplicate path"}
		}
		seen[c.Path] = true
	}

	table := CorrectionTable{entries: make([]Correction, len(entries))}
	copy(table.entries, entries)
	return table, nil
}

// DefaultCorrections returns the table for payment endpoints that the doc
// generator labels with the wrong operation and response type.
func DefaultCorrections() CorrectionTable {
	paymentRef := pathutil.DefinitionRef(PaymentDefinition)
	return CorrectionTable{entries: []Correction{
		{Path: "/api/get-payment", OperationID: "ApiController.GetPayment", SchemaRef: paymentRef},
		{Path: "/api/get-payments", OperationID: "ApiController.GetPayments", ArrayItemRef: paymentRef},
		{Path: "/api/get-user-payments", OperationID: "ApiController.GetUserPayments", ArrayItemRef: paymentRef},
	}}
}

// Entries returns a copy of the table's corrections in order.
func (t CorrectionTable) Entries() []Correction {
	out := make([]Correction, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of corrections.
func (t CorrectionTable) Len() int {
	return len(t.entries)
}

// Lookup returns the correction for path, if any.
func (t CorrectionTable) Lookup(path string) (Correction, bool) {
	for _, c := range t.entries {
		if c.Path == path {
			return c, true
		}
	}
	return Correction{}, false
}

// fixCorrections applies each table entry whose path exists. Operations
// without an operationId keep it absent; schemas whose shape does not
// match the entry's ref kind are skipped.
func fixCorrections(doc map[string]any, table CorrectionTable, result *FixResult) {
	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		return
	}

	path := pathutil.New("paths")
	for _, c := range table.entries {
		pathItem, ok := paths[c.Path].(map[string]any)
		if !ok {
			continue
		}
		walkPathItem(pathItem, c.Path, path, func(op map[string]any, opPath *pathutil.PathBuilder) {
			correctOperationID(op, c, opPath, result)
			correctResponseSchema(op, c, opPath, result)
		})
	}
}

func correctOperationID(op map[string]any, c Correction, path *pathutil.PathBuilder, result *FixResult) {
	before, ok := op["operationId"]
	if !ok || before == c.OperationID {
		return
	}
	op["operationId"] = c.OperationID
	result.Fixes = append(result.Fixes, Fix{
		Type:        FixTypeCorrectedOperationID,
		Path:        path.Child("operationId"),
		Description: fmt.Sprintf("Corrected operationId to '%s'", c.OperationID),
		Before:      before,
		After:       c.OperationID,
	})
}

func correctResponseSchema(op map[string]any, c Correction, path *pathutil.PathBuilder, result *FixResult) {
	responses, ok := op["responses"].(map[string]any)
	if !ok {
		return
	}
	response, ok := responses["200"].(map[string]any)
	if !ok {
		return
	}
	schema, ok := response["schema"].(map[string]any)
	if !ok {
		return
	}

	path.Push("responses")
	path.Push("200")
	path.Push("schema")
	defer func() {
		path.Pop()
		path.Pop()
		path.Pop()
	}()

	target, want := schema, c.SchemaRef
	if c.ArrayItemRef != "" {
		if schema["type"] != "array" {
			return
		}
		items, ok := schema["items"].(map[string]any)
		if !ok {
			return
		}
		path.Push("items")
		defer path.Pop()
		target, want = items, c.ArrayItemRef
	}

	before, ok := target["$ref"]
	if !ok || before == want {
		return
	}
	target["$ref"] = want

	desc := fmt.Sprintf("Corrected 200 response schema reference to '%s'", want)
	if name, ok := pathutil.DefinitionName(want); ok {
		desc = fmt.Sprintf("Corrected 200 response schema to definition '%s'", name)
	}
	result.Fixes = append(result.Fixes, Fix{
		Type:        FixTypeCorrectedResponseSchema,
		Path:        path.Child("$ref"),
		Description: desc,
		Before:      before,
		After:       want,
	})
}
