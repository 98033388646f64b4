// Package sample models one decoded example payload as a closed tagged union.
//
// Mappings keep the key order of the source document, which is what the
// generated declarations use for field order. Values are immutable once built.
package sample

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Value is one node of a sample tree. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	// s holds string content, or the number literal for integers and floats.
	s   string
	seq []Value
	m   *orderedmap.OrderedMap[string, Value]
}

// Field is one key/value pair of a mapping.
type Field struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// NewBool returns a boolean value.
func NewBool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// NewInteger returns an integer value from its decimal literal.
func NewInteger(literal string) Value {
	return Value{kind: KindInteger, s: literal}
}

// NewInt returns an integer value.
func NewInt(i int64) Value {
	return NewInteger(strconv.FormatInt(i, 10))
}

// NewFloat returns a floating-point value from its literal.
func NewFloat(literal string) Value {
	return Value{kind: KindFloat, s: literal}
}

// NewString returns a string value.
func NewString(s string) Value {
	return Value{kind: KindString, s: s}
}

// NewSequence returns a sequence of the given items.
func NewSequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, seq: items}
}

// NewMapping returns a mapping with fields in the given order.
// A repeated key keeps its first position and takes the last value.
func NewMapping(fields ...Field) Value {
	m := orderedmap.New[string, Value](len(fields))
	for _, f := range fields {
		m.Set(f.Key, f.Value)
	}
	return Value{kind: KindMapping, m: m}
}

// F is shorthand for building a Field.
func F(key string, v Value) Field {
	return Field{Key: key, Value: v}
}

// Kind returns the category of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the boolean content. It is false for other kinds.
func (v Value) Bool() bool {
	return v.b
}

// Text returns string content, or the literal text of a number.
func (v Value) Text() string {
	return v.s
}

// Int parses an integer value.
func (v Value) Int() (int64, error) {
	if v.kind != KindInteger {
		return 0, fmt.Errorf("value is %s, not integer", v.kind)
	}
	return strconv.ParseInt(v.s, 10, 64)
}

// Len returns the number of items of a sequence or fields of a mapping.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return v.m.Len()
	default:
		return 0
	}
}

// Index returns the i-th item of a sequence, or null when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindSequence || i < 0 || i >= len(v.seq) {
		return Value{}
	}
	return v.seq[i]
}

// Items returns the items of a sequence.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.seq
}

// Get looks up a mapping key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	return v.m.Get(key)
}

// Fields returns the fields of a mapping in source order.
func (v Value) Fields() []Field {
	if v.kind != KindMapping {
		return nil
	}
	fields := make([]Field, 0, v.m.Len())
	for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
		fields = append(fields, Field{Key: pair.Key, Value: pair.Value})
	}
	return fields
}

// Keys returns the mapping keys in source order.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, v.m.Len())
	for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Interface converts v to plain Go values as produced by a JSON decoder using
// json.Number: nil, bool, json.Number, string, []any and map[string]any.
// Key order is lost in the result.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInteger, KindFloat:
		return json.Number(v.s)
	case KindString:
		return v.s
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]any, v.m.Len())
		for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = pair.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// jqValue converts v to the value types gojq accepts.
func (v Value) jqValue() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInteger:
		if i, err := strconv.Atoi(v.s); err == nil {
			return i
		}
		if n, ok := new(big.Int).SetString(v.s, 10); ok {
			return n
		}
		f, _ := strconv.ParseFloat(v.s, 64)
		return f
	case KindFloat:
		f, _ := strconv.ParseFloat(v.s, 64)
		return f
	case KindString:
		return v.s
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.jqValue()
		}
		return out
	case KindMapping:
		out := make(map[string]any, v.m.Len())
		for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = pair.Value.jqValue()
		}
		return out
	default:
		return nil
	}
}
