package jsonschema

import (
	"regexp"

	"github.com/invopop/jsonschema"

	"github.com/usestring/json2struct/pkg/ident"
	"github.com/usestring/json2struct/pkg/sample"
)

// FieldInfo describes one field of a sample, flattened to a dotted path.
type FieldInfo struct {
	Path    string `json:"path"`              // JSON path (e.g., "retention.min_age_days", "access_tokens[].id")
	Type    string `json:"type"`              // JSON Schema type (string, integer, object, array, etc.)
	GoName  string `json:"go_name"`           // Converted Go field name
	Format  string `json:"format,omitempty"`  // Detected format: uuid, date-time, uri, email
	Example any    `json:"example,omitempty"` // Sample value for scalar fields
}

const defaultMaxDepth = 8

var (
	uuidRegex    = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	iso8601Regex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2})?`)
	urlRegex     = regexp.MustCompile(`^https?://`)
	emailRegex   = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
)

// ListFields walks a mapping sample and returns a flat table of its fields
// in source order. Arrays are described by their first element, like the
// generated declaration. Nesting deeper than a fixed limit is truncated.
func ListFields(v sample.Value) []FieldInfo {
	if v.Kind() != sample.KindMapping {
		return nil
	}
	fields := make([]FieldInfo, 0)
	walkFields(v, "", 0, defaultMaxDepth, &fields)
	return fields
}

func walkFields(v sample.Value, path string, depth, maxDepth int, out *[]FieldInfo) {
	if depth > maxDepth {
		*out = append(*out, FieldInfo{
			Path: path + " (truncated at depth limit)",
			Type: "...",
		})
		return
	}

	for _, f := range v.Fields() {
		fieldPath := f.Key
		if path != "" {
			fieldPath = path + "." + f.Key
		}

		schema := inferFromValue(f.Value, DefaultInferOptions())
		info := FieldInfo{
			Path:   fieldPath,
			Type:   resolveType(schema),
			GoName: ident.Convert(f.Key),
			Format: schema.Format,
		}
		if f.Value.Kind().IsScalar() && !f.Value.IsNull() {
			info.Example = f.Value.Interface()
		}
		*out = append(*out, info)

		switch f.Value.Kind() {
		case sample.KindMapping:
			walkFields(f.Value, fieldPath, depth+1, maxDepth, out)
		case sample.KindSequence:
			if first := f.Value.Index(0); first.Kind() == sample.KindMapping {
				walkFields(first, fieldPath+"[]", depth+1, maxDepth, out)
			}
		}
	}
}

// detectFormat returns the JSON Schema format a string value looks like.
func detectFormat(s string) string {
	switch {
	case uuidRegex.MatchString(s):
		return "uuid"
	case iso8601Regex.MatchString(s):
		if len(s) > len("2006-01-02") {
			return "date-time"
		}
		return "date"
	case urlRegex.MatchString(s):
		return "uri"
	case emailRegex.MatchString(s):
		return "email"
	default:
		return ""
	}
}

// resolveType returns the type string for a schema, including the item type
// of arrays.
func resolveType(schema *jsonschema.Schema) string {
	if schema.Type == "array" && schema.Items != nil && schema.Items.Type != "" {
		return "array<" + schema.Items.Type + ">"
	}
	if schema.Type != "" {
		return schema.Type
	}
	return "unknown"
}
