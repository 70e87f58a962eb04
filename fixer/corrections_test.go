package fixer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casdoor/swagfix/oaserrors"
	"github.com/casdoor/swagfix/parser"
)

func arraySchema(ref string) map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"$ref": ref}}
}

func okResponse(schema map[string]any) map[string]any {
	return map[string]any{"200": map[string]any{"description": "ok", "schema": schema}}
}

func TestDefaultCorrections(t *testing.T) {
	table := DefaultCorrections()
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []Correction{
		{Path: "/api/get-payment", OperationID: "ApiController.GetPayment", SchemaRef: "#/definitions/object.Payment"},
		{Path: "/api/get-payments", OperationID: "ApiController.GetPayments", ArrayItemRef: "#/definitions/object.Payment"},
		{Path: "/api/get-user-payments", OperationID: "ApiController.GetUserPayments", ArrayItemRef: "#/definitions/object.Payment"},
	}, table.Entries())

	c, ok := table.Lookup("/api/get-payments")
	require.True(t, ok)
	assert.Equal(t, "ApiController.GetPayments", c.OperationID)

	_, ok = table.Lookup("/api/get-user")
	assert.False(t, ok)

	entries := table.Entries()
	entries[0].OperationID = "changed"
	assert.Equal(t, "ApiController.GetPayment", table.Entries()[0].OperationID)
}

func TestNewCorrectionTable(t *testing.T) {
	valid := Correction{Path: "/api/a", OperationID: "ApiController.A", SchemaRef: "#/definitions/object.A"}

	tests := []struct {
		name    string
		entries []Correction
		wantMsg string
	}{
		{"missing path", []Correction{{OperationID: "x", SchemaRef: "y"}}, "path is required"},
		{"missing operationId", []Correction{{Path: "/a", SchemaRef: "y"}}, "operationId is required"},
		{"no ref", []Correction{{Path: "/a", OperationID: "x"}}, "exactly one of"},
		{"both refs", []Correction{{Path: "/a", OperationID: "x", SchemaRef: "y", ArrayItemRef: "z"}}, "exactly one of"},
		{"duplicate path", []Correction{valid, valid}, "duplicate path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCorrectionTable(tt.entries...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	t.Run("valid", func(t *testing.T) {
		entries := []Correction{valid}
		table, err := NewCorrectionTable(entries...)
		require.NoError(t, err)
		entries[0].Path = "/changed"
		assert.Equal(t, "/api/a", table.Entries()[0].Path)
	})
}

func TestFixCorrectionsArrayItems(t *testing.T) {
	doc := map[string]any{
		"paths": map[string]any{
			"/api/get-payments": map[string]any{
				"get": map[string]any{
					"operationId": "ApiController.GetVerifications",
					"responses":   okResponse(arraySchema("#/definitions/old.Thing")),
				},
			},
			"/api/get-users": map[string]any{
				"get": map[string]any{
					"operationId": "ApiController.GetUsers",
					"responses":   okResponse(arraySchema("#/definitions/old.Thing")),
				},
			},
		},
	}
	untouched := parser.CopyData(doc)["paths"].(map[string]any)["/api/get-users"]

	result := &FixResult{}
	fixCorrections(doc, DefaultCorrections(), result)

	paths := doc["paths"].(map[string]any)
	op := paths["/api/get-payments"].(map[string]any)["get"].(map[string]any)
	assert.Equal(t, "ApiController.GetPayments", op["operationId"])
	assert.Equal(t, arraySchema("#/definitions/object.Payment"), op["responses"].(map[string]any)["200"].(map[string]any)["schema"])
	assert.Equal(t, untouched, paths["/api/get-users"])

	require.Len(t, result.Fixes, 2)
	assert.Equal(t, Fix{
		Type:        FixTypeCorrectedOperationID,
		Path:        "paths./api/get-payments.get.operationId",
		Description: "Corrected operationId to 'ApiController.GetPayments'",
		Before:      "ApiController.GetVerifications",
		After:       "ApiController.GetPayments",
	}, result.Fixes[0])
	assert.Equal(t, "paths./api/get-payments.get.responses.200.schema.items.$ref", result.Fixes[1].Path)
	assert.Equal(t, "#/definitions/old.Thing", result.Fixes[1].Before)
	assert.Equal(t, "Corrected 200 response schema to definition 'object.Payment'", result.Fixes[1].Description)
}

func TestFixCorrectionsSingleRef(t *testing.T) {
	doc := map[string]any{
		"paths": map[string]any{
			"/api/get-payment": map[string]any{
				"get": map[string]any{
					"operationId": "ApiController.GetVerification",
					"responses":   okResponse(map[string]any{"$ref": "#/definitions/object.Verification"}),
				},
				"post": map[string]any{
					"responses": okResponse(map[string]any{"$ref": "#/definitions/object.Verification"}),
				},
			},
		},
	}

	result := &FixResult{}
	fixCorrections(doc, DefaultCorrections(), result)

	pathItem := doc["paths"].(map[string]any)["/api/get-payment"].(map[string]any)
	get := pathItem["get"].(map[string]any)
	post := pathItem["post"].(map[string]any)

	assert.Equal(t, "ApiController.GetPayment", get["operationId"])
	assert.NotContains(t, post, "operationId", "operationId must never be invented")
	for _, op := range []map[string]any{get, post} {
		schema := op["responses"].(map[string]any)["200"].(map[string]any)["schema"]
		assert.Equal(t, map[string]any{"$ref": "#/definitions/object.Payment"}, schema)
	}
	assert.Len(t, result.Fixes, 3)
}

func TestFixCorrectionsShapeMismatch(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		responses any
	}{
		{"array fix on direct ref", "/api/get-payments", okResponse(map[string]any{"$ref": "#/definitions/object.Payment2"})},
		{"single fix on array", "/api/get-payment", okResponse(arraySchema("#/definitions/object.Payment2"))},
		{"array without items ref", "/api/get-user-payments", okResponse(map[string]any{"type": "array", "items": map[string]any{"type": "string"}})},
		{"array items not object", "/api/get-user-payments", okResponse(map[string]any{"type": "array", "items": "x"})},
		{"object type with items", "/api/get-payments", okResponse(map[string]any{"type": "object", "items": map[string]any{"$ref": "#/definitions/x"}})},
		{"no 200 response", "/api/get-payment", map[string]any{"201": map[string]any{"schema": map[string]any{"$ref": "#/definitions/x"}}}},
		{"no schema", "/api/get-payment", map[string]any{"200": map[string]any{"description": "ok"}}},
		{"responses not object", "/api/get-payment", []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := map[string]any{
				"paths": map[string]any{
					tt.path: map[string]any{"get": map[string]any{"responses": tt.responses}},
				},
			}
			want := parser.CopyData(doc)

			result := &FixResult{}
			fixCorrections(doc, DefaultCorrections(), result)

			assert.Empty(t, result.Fixes)
			assert.Equal(t, want, doc)
		})
	}
}

func TestFixCorrectionsMissingSections(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
	}{
		{"no paths", map[string]any{"swagger": "2.0"}},
		{"paths not object", map[string]any{"paths": []any{}}},
		{"unknown paths only", map[string]any{"paths": map[string]any{"/api/other": map[string]any{}}}},
		{"path item not object", map[string]any{"paths": map[string]any{"/api/get-payment": "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := parser.CopyData(tt.doc)
			result := &FixResult{}
			fixCorrections(tt.doc, DefaultCorrections(), result)

			assert.Empty(t, result.Fixes)
			assert.Equal(t, want, tt.doc)
		})
	}
}
