// Package gostruct infers a Go struct declaration from one sample value.
//
// Objects become inline struct fields and arrays of objects become inline
// []struct fields typed after their first element. Every field carries a tag
// with the original key so the declaration decodes the sample it came from.
//
//	v, _ := sample.DecodeJSON(data)
//	decl, err := gostruct.Generate(v, "ChannelReply", nil)
package gostruct

import (
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"

	"github.com/usestring/json2struct/pkg/ident"
	"github.com/usestring/json2struct/pkg/sample"
)

// Options controls how declarations are rendered.
type Options struct {
	// TagKey is the struct tag key carrying the original key. Default: "json".
	TagKey string
	// IndentWidth is the number of spaces per nesting level.
	// Zero indents with tabs, negative values are rejected. Default: 4.
	IndentWidth int
	// Gofmt runs the result through go/format, aligning field columns.
	// Only Generate applies it.
	Gofmt bool
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() *Options {
	return &Options{
		TagKey:      "json",
		IndentWidth: 4,
	}
}

// Validate reports whether the options render valid Go. An empty TagKey
// means the default and is accepted.
func (o *Options) Validate() error {
	if o.TagKey != "" && !validTagKey(o.TagKey) {
		return &OptionError{Option: "tag key", Value: o.TagKey, Err: ErrInvalidTagKey}
	}
	if o.IndentWidth < 0 {
		return &OptionError{Option: "indent width", Value: strconv.Itoa(o.IndentWidth), Err: ErrInvalidIndent}
	}
	return nil
}

// validTagKey follows the key syntax reflect.StructTag.Lookup accepts.
// A backtick would also end the raw string literal holding the tag.
func validTagKey(key string) bool {
	for _, r := range key {
		if r <= ' ' || r == ':' || r == '"' || r == '`' || r == 0x7f {
			return false
		}
	}
	return key != ""
}

// CheckPackageName reports whether name can be used in a package clause.
func CheckPackageName(name string) error {
	if !token.IsIdentifier(name) || name == "_" {
		return &OptionError{Option: "package name", Value: name, Err: ErrInvalidPackageName}
	}
	return nil
}

// Emitter renders declarations. It holds no per-call state and may be shared
// between goroutines.
type Emitter struct {
	tagKey string
	indent string
	gofmt  bool
}

// NewEmitter creates an emitter. A nil opts uses DefaultOptions.
func NewEmitter(opts *Options) (*Emitter, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tagKey := opts.TagKey
	if tagKey == "" {
		tagKey = "json"
	}
	indent := "\t"
	if opts.IndentWidth > 0 {
		indent = strings.Repeat(" ", opts.IndentWidth)
	}
	return &Emitter{tagKey: tagKey, indent: indent, gofmt: opts.Gofmt}, nil
}

// Infer renders v under name at the given nesting depth with default options.
// Callers normally pass depth 0; see Emitter.Infer.
func Infer(v sample.Value, name string, depth int) (string, error) {
	e, _ := NewEmitter(nil)
	return e.Infer(v, name, depth)
}

// Generate renders the top-level declaration "type <Name> struct {...}".
func Generate(v sample.Value, name string, opts *Options) (string, error) {
	e, err := NewEmitter(opts)
	if err != nil {
		return "", err
	}
	return e.Generate(v, name)
}

// Generate renders the top-level declaration for v, gofmt'ed if configured.
func (e *Emitter) Generate(v sample.Value, name string) (string, error) {
	decl, err := e.Infer(v, name, 0)
	if err != nil {
		return "", err
	}
	if !e.gofmt {
		return decl, nil
	}
	formatted, err := format.Source([]byte(decl))
	if err != nil {
		return "", fmt.Errorf("formatting declaration: %w", err)
	}
	return string(formatted), nil
}

// Infer renders the declaration for v named after name.
//
// At depth 0, v must be a mapping and the result is a "type" statement.
// At depth > 0 the result is a struct field line: a mapping renders as
// "Name struct {...}", a sequence renders as "Name []struct {...}" typed after
// its first element. Either closes with the tag carrying name.
//
// Errors abort the whole call; no partial text is returned.
func (e *Emitter) Infer(v sample.Value, name string, depth int) (string, error) {
	var sb strings.Builder
	if err := e.emit(&sb, v, name, depth, ""); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (e *Emitter) emit(sb *strings.Builder, v sample.Value, name string, depth int, path string) error {
	id := ident.Convert(name)
	if !ident.Valid(id) {
		return &IdentifierError{Path: path, Key: name, Identifier: id}
	}

	head := strings.Repeat(e.indent, depth)
	body := v
	bodyPath := path

	switch {
	case depth == 0:
		if v.Kind() != sample.KindMapping {
			return &UnsupportedValueKindError{Path: path, Key: name, Kind: v.Kind().String()}
		}
		fmt.Fprintf(sb, "type %s struct {\n", id)

	case v.Kind() == sample.KindSequence:
		if v.Len() == 0 {
			return &EmptySequenceError{Path: path, Key: name}
		}
		body = v.Index(0)
		bodyPath = path + "[0]"
		if body.Kind() != sample.KindMapping {
			return &UnsupportedValueKindError{Path: bodyPath, Key: name, Kind: "sequence of " + body.Kind().String()}
		}
		fmt.Fprintf(sb, "%s%s []struct {\n", head, id)

	case v.Kind() == sample.KindMapping:
		fmt.Fprintf(sb, "%s%s struct {\n", head, id)

	default:
		return &UnsupportedValueKindError{Path: path, Key: name, Kind: v.Kind().String()}
	}

	if err := e.emitFields(sb, body, depth, bodyPath); err != nil {
		return err
	}

	sb.WriteString(head)
	sb.WriteString("}")
	if depth == 0 {
		sb.WriteString("\n")
		return nil
	}
	sb.WriteString(" ")
	sb.WriteString(e.tag(name))
	sb.WriteString("\n")
	return nil
}

func (e *Emitter) emitFields(sb *strings.Builder, body sample.Value, depth int, path string) error {
	pad := strings.Repeat(e.indent, depth+1)
	seen := make(map[string]string, body.Len())

	for _, f := range body.Fields() {
		fieldPath := joinPath(path, f.Key)
		id := ident.Convert(f.Key)
		if !ident.Valid(id) {
			return &IdentifierError{Path: fieldPath, Key: f.Key, Identifier: id}
		}
		if other, dup := seen[id]; dup {
			return &DuplicateIdentifierError{Path: fieldPath, Key: f.Key, Other: other, Identifier: id}
		}
		seen[id] = f.Key

		var goType string
		switch kind := f.Value.Kind(); kind {
		case sample.KindBool:
			goType = "bool"
		case sample.KindInteger:
			if _, err := f.Value.Int(); err != nil {
				return &UnsupportedValueKindError{Path: fieldPath, Key: f.Key, Kind: "integer out of range"}
			}
			goType = "int"
		case sample.KindString:
			goType = "string"
		case sample.KindSequence, sample.KindMapping:
			if err := e.emit(sb, f.Value, f.Key, depth+1, fieldPath); err != nil {
				return err
			}
			continue
		case sample.KindNull, sample.KindFloat:
			return &UnsupportedValueKindError{Path: fieldPath, Key: f.Key, Kind: kind.String()}
		default:
			return &UnsupportedValueKindError{Path: fieldPath, Key: f.Key, Kind: kind.String()}
		}

		fmt.Fprintf(sb, "%s%s %s %s\n", pad, id, goType, e.tag(f.Key))
	}
	return nil
}

// tag renders `json:"key"` with the key quoted as a Go string.
func (e *Emitter) tag(key string) string {
	return "`" + e.tagKey + ":" + strconv.Quote(key) + "`"
}

// joinPath appends key to a dotted path. An empty key renders as [""] so it
// stays distinguishable from the root.
func joinPath(path, key string) string {
	if key == "" {
		return path + `[""]`
	}
	if path == "" {
		return key
	}
	return path + "." + key
}
