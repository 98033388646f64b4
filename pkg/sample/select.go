package sample

import (
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// Select returns the sub-value addressed by a jq path expression such as
// ".channels[0]" or ".data.items". The expression must address exactly one
// value. Key order of the result is preserved because the expression is
// evaluated as a path and then resolved against v itself.
func Select(v Value, expression string) (Value, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" || expression == "." {
		return v, nil
	}

	query, err := gojq.Parse("path(" + expression + ")")
	if err != nil {
		return Value{}, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return Value{}, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	iter := code.Run(v.jqValue())
	first, ok := iter.Next()
	if !ok {
		return Value{}, fmt.Errorf("expression %q selects nothing", expression)
	}
	if err, isErr := first.(error); isErr {
		return Value{}, fmt.Errorf("evaluating %q: %w", expression, err)
	}
	if _, more := iter.Next(); more {
		return Value{}, fmt.Errorf("expression %q selects more than one value", expression)
	}

	path, ok := first.([]any)
	if !ok {
		return Value{}, fmt.Errorf("expression %q did not produce a path", expression)
	}
	return resolvePath(v, path)
}

func resolvePath(v Value, path []any) (Value, error) {
	cur := v
	for i, step := range path {
		switch s := step.(type) {
		case string:
			next, ok := cur.Get(s)
			if !ok {
				return Value{}, fmt.Errorf("path %s: no key %q", formatPath(path[:i]), s)
			}
			cur = next
		case int:
			next, err := index(cur, s, path[:i])
			if err != nil {
				return Value{}, err
			}
			cur = next
		case float64:
			next, err := index(cur, int(s), path[:i])
			if err != nil {
				return Value{}, err
			}
			cur = next
		default:
			return Value{}, fmt.Errorf("path %s: unsupported step %v", formatPath(path[:i]), step)
		}
	}
	return cur, nil
}

func index(v Value, i int, at []any) (Value, error) {
	if v.Kind() != KindSequence {
		return Value{}, fmt.Errorf("path %s: cannot index %s", formatPath(at), v.Kind())
	}
	if i < 0 {
		i += v.Len()
	}
	if i < 0 || i >= v.Len() {
		return Value{}, fmt.Errorf("path %s: index %d out of range", formatPath(at), i)
	}
	return v.Index(i), nil
}

func formatPath(path []any) string {
	var sb strings.Builder
	for _, step := range path {
		switch s := step.(type) {
		case string:
			sb.WriteString(".")
			sb.WriteString(s)
		default:
			fmt.Fprintf(&sb, "[%v]", s)
		}
	}
	if sb.Len() == 0 {
		return "."
	}
	return sb.String()
}
