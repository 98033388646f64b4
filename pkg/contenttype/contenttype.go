// Package contenttype maps media types and file names to sample formats.
package contenttype

import (
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/usestring/json2struct/pkg/sample"
)

// Category represents a broad content-type classification.
type Category string

const (
	JSON   Category = "json"
	YAML   Category = "yaml"
	Text   Category = "text"
	Binary Category = "binary"
)

// Classify returns the broad content category for a content-type header value.
// Uses mime.ParseMediaType to strip parameters (charset etc.)
// before matching. Falls back to strings.ToLower for malformed values.
// Returns Text for empty content-type strings.
func Classify(contentType string) Category {
	if contentType == "" {
		return Text
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	// application/json, application/vnd.*+json, application/x-ndjson
	case strings.Contains(mediaType, "json"):
		return JSON
	// application/yaml, text/yaml, application/x-yaml
	case strings.Contains(mediaType, "yaml"):
		return YAML
	case strings.HasPrefix(mediaType, "text/"):
		return Text
	default:
		return Binary
	}
}

// FormatOf returns the sample format for a content type. Text and unknown
// types are sniffed.
func FormatOf(contentType string) sample.Format {
	switch Classify(contentType) {
	case JSON:
		return sample.FormatJSON
	case YAML:
		return sample.FormatYAML
	default:
		return sample.FormatAuto
	}
}

// FormatOfFile returns the sample format implied by a file name's extension.
func FormatOfFile(name string) sample.Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonc", ".geojson":
		return sample.FormatJSON
	case ".yaml", ".yml":
		return sample.FormatYAML
	default:
		return sample.FormatAuto
	}
}

// IsBinary reports whether data cannot be a text sample. A declared binary
// content type wins; otherwise the bytes must be valid UTF-8, possibly after
// a UTF-16 byte order mark.
func IsBinary(contentType string, data []byte) bool {
	if contentType != "" && Classify(contentType) == Binary {
		return true
	}
	if len(data) >= 2 && (data[0] == 0xFF && data[1] == 0xFE || data[0] == 0xFE && data[1] == 0xFF) {
		return false
	}
	return !utf8.Valid(data)
}
