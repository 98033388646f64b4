// Package types provides shared types for json2struct.
// These types are used across multiple packages and are designed for external consumption.
package types

import "encoding/json"

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any (instead of json.RawMessage)
// to satisfy the MCP SDK's schema validation.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateOutput is the output of the json2struct_generate tool.
type GenerateOutput struct {
	// Go type declaration inferred from the sample
	Declaration string `json:"declaration"`

	// Root type name as it appears in the declaration
	TypeName string `json:"type_name"`

	// Flattened field table, in source order
	Fields []FieldSummary `json:"fields,omitzero"`

	// Whether the declaration was served from the cache
	Cached bool `json:"cached"`

	// Validation of the sample against the declaration, when requested
	Verification *ValidationResult `json:"verification,omitempty"`

	// Hint for the next step
	Hint string `json:"hint,omitempty"`
}

// FieldSummary describes one field of the sample.
type FieldSummary struct {
	Path   string `json:"path"`
	Type   string `json:"type"`
	GoName string `json:"go_name"`
	Format string `json:"format,omitempty"`
}

// SchemaOutput is the output of the json2struct_schema tool.
type SchemaOutput struct {
	// JSON Schema (Draft 2020-12) document
	Schema any `json:"schema"`
}
