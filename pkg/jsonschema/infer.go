// Package jsonschema derives a JSON Schema from a single sample value.
// It generates schemas following JSON Schema Draft 2020-12, with object
// properties in the sample's key order.
package jsonschema

import (
	"github.com/invopop/jsonschema"

	"github.com/usestring/json2struct/pkg/sample"
)

// InferOptions controls schema inference behavior.
type InferOptions struct {
	// Title is set on the root schema when non-empty.
	Title string
	// Required marks every property present in the sample as required.
	// Default: true
	Required bool
	// AdditionalProperties sets additionalProperties in object schemas.
	// Default: nil (not set)
	AdditionalProperties *bool
	// DetectFormats sets "format" on string properties whose sample value
	// looks like a uuid, date-time, uri or email.
	// Default: true
	DetectFormats bool
}

// DefaultInferOptions returns the default inference options.
func DefaultInferOptions() *InferOptions {
	return &InferOptions{
		Required:      true,
		DetectFormats: true,
	}
}

// FromSample generates a JSON Schema document from a sample value.
func FromSample(v sample.Value, opts *InferOptions) *jsonschema.Schema {
	if opts == nil {
		opts = DefaultInferOptions()
	}
	schema := inferFromValue(v, opts)
	schema.Version = jsonschema.Version
	if opts.Title != "" {
		schema.Title = opts.Title
	}
	return schema
}

// InferFromValue generates a JSON Schema for v with default options,
// without the $schema keyword.
func InferFromValue(v sample.Value) *jsonschema.Schema {
	return inferFromValue(v, DefaultInferOptions())
}

func inferFromValue(v sample.Value, opts *InferOptions) *jsonschema.Schema {
	switch v.Kind() {
	case sample.KindNull:
		return &jsonschema.Schema{Type: "null"}

	case sample.KindBool:
		return &jsonschema.Schema{Type: "boolean"}

	case sample.KindInteger:
		return &jsonschema.Schema{Type: "integer"}

	case sample.KindFloat:
		return &jsonschema.Schema{Type: "number"}

	case sample.KindString:
		schema := &jsonschema.Schema{Type: "string"}
		if opts.DetectFormats {
			schema.Format = detectFormat(v.Text())
		}
		return schema

	case sample.KindSequence:
		return inferArraySchema(v, opts)

	case sample.KindMapping:
		return inferObjectSchema(v, opts)

	default:
		// Unknown kind, return empty schema (matches anything)
		return &jsonschema.Schema{}
	}
}

// inferArraySchema types the items after the first element, the same element
// the Go declaration is built from.
func inferArraySchema(v sample.Value, opts *InferOptions) *jsonschema.Schema {
	schema := &jsonschema.Schema{Type: "array"}
	if v.Len() == 0 {
		return schema
	}
	schema.Items = inferFromValue(v.Index(0), opts)
	return schema
}

func inferObjectSchema(v sample.Value, opts *InferOptions) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	if opts.AdditionalProperties != nil {
		if *opts.AdditionalProperties {
			schema.AdditionalProperties = jsonschema.TrueSchema
		} else {
			schema.AdditionalProperties = jsonschema.FalseSchema
		}
	}

	for _, f := range v.Fields() {
		schema.Properties.Set(f.Key, inferFromValue(f.Value, opts))
		if opts.Required {
			schema.Required = append(schema.Required, f.Key)
		}
	}

	return schema
}
