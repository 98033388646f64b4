// Package ident converts snake_case data keys to Go identifiers.
package ident

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Convert maps a key like "min_age_days" to "MinAgeDays".
//
// The key is split on every underscore; empty segments are dropped. Each
// segment gets its first rune upper-cased and keeps the rest unchanged.
// Keys that are empty or all underscores convert to "".
func Convert(key string) string {
	var sb strings.Builder
	sb.Grow(len(key))
	for _, seg := range strings.Split(key, "_") {
		if seg == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(seg)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(seg[size:])
	}
	return sb.String()
}

// Valid reports whether id can be used as an exported Go field or type name.
func Valid(id string) bool {
	return token.IsIdentifier(id) && token.IsExported(id)
}
