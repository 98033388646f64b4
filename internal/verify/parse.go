// Package verify checks that a generated Go declaration decodes the sample it
// was generated from: the declaration is parsed back into a JSON Schema using
// its field types and tags, and the sample is validated against that schema.
package verify

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"
)

// JSONSchema represents a JSON Schema object.
// This is a simplified representation that can be marshaled to standard JSON Schema.
type JSONSchema struct {
	Type                 string                 `json:"type,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	Required             []string               `json:"required,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
	AnyOf                []*JSONSchema          `json:"anyOf,omitempty"`
}

// declParser turns struct field lists into schemas.
type declParser struct {
	tagKey string
}

// ParseDeclaration parses Go source holding a struct type declaration and
// returns the schema its fields describe. The first struct type found is used.
// Source without a package clause is accepted.
//
// Objects are closed (additionalProperties: false) and every field without
// omitempty is required, so a sample validates only if each of its keys maps
// to exactly one tagged field.
func ParseDeclaration(src, tagKey string) (*JSONSchema, error) {
	if tagKey == "" {
		tagKey = "json"
	}
	if !strings.HasPrefix(strings.TrimSpace(src), "package ") {
		src = "package decl\n\n" + src
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "decl.go", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parsing declaration: %w", err)
	}

	p := &declParser{tagKey: tagKey}
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			schema, err := p.structSchema(ts.Name.Name, st)
			if err != nil {
				return nil, err
			}
			schema.Title = ts.Name.Name
			return schema, nil
		}
	}
	return nil, fmt.Errorf("no struct type declaration found")
}

func (p *declParser) structSchema(path string, st *ast.StructType) (*JSONSchema, error) {
	closed := false
	schema := &JSONSchema{
		Type:                 "object",
		Properties:           make(map[string]*JSONSchema),
		AdditionalProperties: &closed,
	}

	for _, field := range st.Fields.List {
		if len(field.Names) != 1 {
			return nil, fmt.Errorf("%s: embedded or grouped fields are not supported", path)
		}
		name := field.Names[0].Name
		fieldPath := path + "." + name

		key, omitempty, skip, err := p.fieldKey(name, field.Tag)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fieldPath, err)
		}
		if skip {
			continue
		}
		if _, dup := schema.Properties[key]; dup {
			return nil, fmt.Errorf("%s: key %q is declared twice", fieldPath, key)
		}

		fieldSchema, err := p.typeSchema(fieldPath, field.Type)
		if err != nil {
			return nil, err
		}
		schema.Properties[key] = fieldSchema
		if !omitempty {
			schema.Required = append(schema.Required, key)
		}
	}

	return schema, nil
}

// fieldKey resolves the data key of a field from its tag, falling back to the
// field name the way encoding/json does.
func (p *declParser) fieldKey(name string, tag *ast.BasicLit) (key string, omitempty, skip bool, err error) {
	if tag == nil {
		return name, false, false, nil
	}
	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return "", false, false, fmt.Errorf("malformed tag %s: %w", tag.Value, err)
	}

	value, ok := reflect.StructTag(raw).Lookup(p.tagKey)
	if !ok {
		return name, false, false, nil
	}
	key, opts, _ := strings.Cut(value, ",")
	if key == "-" && opts == "" {
		return "", false, true, nil
	}
	if key == "" {
		key = name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			omitempty = true
		}
	}
	return key, omitempty, false, nil
}

func (p *declParser) typeSchema(path string, expr ast.Expr) (*JSONSchema, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		switch t.Name {
		case "string":
			return &JSONSchema{Type: "string"}, nil
		case "bool":
			return &JSONSchema{Type: "boolean"}, nil
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			return &JSONSchema{Type: "integer"}, nil
		case "float32", "float64":
			return &JSONSchema{Type: "number"}, nil
		default:
			return nil, fmt.Errorf("%s: unsupported type %q", path, t.Name)
		}

	case *ast.StructType:
		return p.structSchema(path, t)

	case *ast.ArrayType:
		if t.Len != nil {
			return nil, fmt.Errorf("%s: fixed-size arrays are not supported", path)
		}
		items, err := p.typeSchema(path+"[]", t.Elt)
		if err != nil {
			return nil, err
		}
		return &JSONSchema{Type: "array", Items: items}, nil

	case *ast.StarExpr:
		elem, err := p.typeSchema(path, t.X)
		if err != nil {
			return nil, err
		}
		return &JSONSchema{AnyOf: []*JSONSchema{elem, {Type: "null"}}}, nil

	default:
		return nil, fmt.Errorf("%s: unsupported type expression %T", path, expr)
	}
}
