package sample

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

// Format selects the decoder for raw sample bytes.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrEmptyInput is returned when the sample contains no document.
var ErrEmptyInput = errors.New("empty sample")

// ParseFormat maps a user-supplied format name to a Format.
// An empty name means auto detection.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown sample format %q (want json, yaml or auto)", s)
	}
}

// Decode parses raw sample bytes in the given format.
// FormatAuto picks JSON when the input is valid JSON and YAML otherwise.
func Decode(data []byte, format Format) (Value, error) {
	data, err := Normalize(data)
	if err != nil {
		return Value{}, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, ErrEmptyInput
	}

	switch format {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	case FormatAuto, "":
		if json.Valid(data) {
			return DecodeJSON(data)
		}
		return DecodeYAML(data)
	default:
		return Value{}, fmt.Errorf("unknown sample format %q", format)
	}
}

// Normalize converts input to UTF-8 without a byte order mark.
// UTF-16 input is recognised by its BOM.
func Normalize(data []byte) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return nil, fmt.Errorf("decoding sample text: %w", err)
	}
	return out, nil
}

// DecodeJSON parses a JSON document, keeping object key order.
// Number literals without a fraction or exponent are integers.
func DecodeJSON(data []byte) (Value, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, fmt.Errorf("invalid JSON: %w", err)
	}

	value, dataType, _, err := jsonparser.Get(raw)
	if err != nil {
		return Value{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return decodeJSONValue(value, dataType)
}

func decodeJSONValue(raw []byte, dataType jsonparser.ValueType) (Value, error) {
	switch dataType {
	case jsonparser.Null:
		return Null(), nil

	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return Value{}, err
		}
		return NewBool(b), nil

	case jsonparser.Number:
		if bytes.ContainsAny(raw, ".eE") {
			return NewFloat(string(raw)), nil
		}
		return NewInteger(string(raw)), nil

	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return Value{}, err
		}
		return NewString(s), nil

	case jsonparser.Array:
		return decodeJSONArray(raw)

	case jsonparser.Object:
		return decodeJSONObject(raw)

	default:
		return Value{}, fmt.Errorf("unexpected JSON token %q", truncate(raw, 32))
	}
}

func decodeJSONArray(raw []byte) (Value, error) {
	items := make([]Value, 0)
	if isEmptyContainer(raw) {
		return NewSequence(items...), nil
	}

	var firstErr error
	_, err := jsonparser.ArrayEach(raw, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if firstErr != nil {
			return
		}
		if err != nil {
			firstErr = err
			return
		}
		item, err := decodeJSONValue(value, dataType)
		if err != nil {
			firstErr = err
			return
		}
		items = append(items, item)
	})
	if err != nil {
		return Value{}, err
	}
	if firstErr != nil {
		return Value{}, firstErr
	}
	return NewSequence(items...), nil
}

func decodeJSONObject(raw []byte) (Value, error) {
	fields := make([]Field, 0)
	if isEmptyContainer(raw) {
		return NewMapping(), nil
	}

	// ObjectEach hands over keys already unescaped.
	err := jsonparser.ObjectEach(raw, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		k := string(key)
		v, err := decodeJSONValue(value, dataType)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		fields = append(fields, Field{Key: k, Value: v})
		return nil
	})
	if err != nil {
		return Value{}, err
	}
	return NewMapping(fields...), nil
}

// isEmptyContainer reports whether raw is "[]" or "{}" with optional inner whitespace.
func isEmptyContainer(raw []byte) bool {
	if len(raw) < 2 {
		return false
	}
	return len(bytes.TrimSpace(raw[1:len(raw)-1])) == 0
}

// DecodeYAML parses the first document of a YAML stream, keeping mapping key order.
// Plain scalars are typed by their resolved YAML tag; anything that is not
// null, bool, int or float is kept as a string.
func DecodeYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("invalid YAML: %w", err)
	}
	if doc.Kind == 0 {
		return Value{}, ErrEmptyInput
	}
	return decodeYAMLNode(&doc)
}

func decodeYAMLNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return decodeYAMLNode(n.Content[0])

	case yaml.AliasNode:
		return decodeYAMLNode(n.Alias)

	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := decodeYAMLNode(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return NewSequence(items...), nil

	case yaml.MappingNode:
		fields := make([]Field, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valueNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			v, err := decodeYAMLNode(valueNode)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", keyNode.Value, err)
			}
			fields = append(fields, Field{Key: keyNode.Value, Value: v})
		}
		return NewMapping(fields...), nil

	case yaml.ScalarNode:
		return decodeYAMLScalar(n)

	default:
		return Value{}, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}

func decodeYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return NewBool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return NewInteger(strconv.FormatInt(i, 10)), nil
	case "!!float":
		return NewFloat(n.Value), nil
	default:
		return NewString(n.Value), nil
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
