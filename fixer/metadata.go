package fixer

import "reflect"

// Default info block values for the Casdoor backend API.
const (
	DefaultTitle        = "Casdoor RESTful API"
	DefaultDescription  = "Swagger Docs of Casdoor Backend API"
	DefaultVersion      = "1.503.0"
	DefaultContactEmail = "casbin@googlegroups.com"
)

// Metadata is the info block written by the metadata stage.
type Metadata struct {
	Title        string
	Description  string
	Version      string
	ContactEmail string
}

// DefaultMetadata returns the built-in info block.
func DefaultMetadata() Metadata {
	return Metadata{
		Title:        DefaultTitle,
		Description:  DefaultDescription,
		Version:      DefaultVersion,
		ContactEmail: DefaultContactEmail,
	}
}

// withDefaults fills empty fields from DefaultMetadata.
func (m Metadata) withDefaults() Metadata {
	d := DefaultMetadata()
	if m.Title == "" {
		m.Title = d.Title
	}
	if m.Description == "" {
		m.Description = d.Description
	}
	if m.Version == "" {
		m.Version = d.Version
	}
	if m.ContactEmail == "" {
		m.ContactEmail = d.ContactEmail
	}
	return m
}

// Info returns the info block as a document subtree.
func (m Metadata) Info() map[string]any {
	return map[string]any{
		"title":       m.Title,
		"description": m.Description,
		"version":     m.Version,
		"contact": map[string]any{
			"email": m.ContactEmail,
		},
	}
}

// defaultSchemes returns a fresh copy of the schemes written when none are set.
func defaultSchemes() []any {
	return []any{"https", "http"}
}

// fixMetadata replaces info unconditionally and defaults empty schemes.
// A fix is only recorded when the written value differs from the old one.
func fixMetadata(doc map[string]any, meta Metadata, result *FixResult) {
	info := meta.Info()
	before, hadInfo := doc["info"]
	doc["info"] = info
	if !hadInfo || !reflect.DeepEqual(before, info) {
		result.Fixes = append(result.Fixes, Fix{
			Type:        FixTypeMetadata,
			Path:        "info",
			Description: "Replaced info block with " + meta.Title + " " + meta.Version,
			Before:      before,
			After:       info,
		})
	}

	schemes := doc["schemes"]
	if isFalsy(schemes) {
		doc["schemes"] = defaultSchemes()
		result.Fixes = append(result.Fixes, Fix{
			Type:        FixTypeDefaultSchemes,
			Path:        "schemes",
			Description: "Set missing schemes to https, http",
			Before:      schemes,
			After:       defaultSchemes(),
		})
	}
}
