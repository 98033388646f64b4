package contenttype

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/json2struct/pkg/sample"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		contentType string
		want        Category
	}{
		{"application/json", JSON},
		{"application/json; charset=utf-8", JSON},
		{"application/vnd.api+json", JSON},
		{"APPLICATION/JSON", JSON},
		{"application/yaml", YAML},
		{"text/yaml", YAML},
		{"application/x-yaml", YAML},
		{"text/plain", Text},
		{"", Text},
		{"image/png", Binary},
		{"application/octet-stream", Binary},
		{"application/json;;", JSON},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.contentType))
		})
	}
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, sample.FormatJSON, FormatOf("application/json"))
	assert.Equal(t, sample.FormatYAML, FormatOf("application/yaml"))
	assert.Equal(t, sample.FormatAuto, FormatOf("text/plain"))
	assert.Equal(t, sample.FormatAuto, FormatOf(""))
}

func TestFormatOfFile(t *testing.T) {
	tests := []struct {
		name string
		want sample.Format
	}{
		{"channel.json", sample.FormatJSON},
		{"dir/CHANNEL.JSON", sample.FormatJSON},
		{"config.yaml", sample.FormatYAML},
		{"config.yml", sample.FormatYAML},
		{"reply.txt", sample.FormatAuto},
		{"-", sample.FormatAuto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatOfFile(tt.name))
		})
	}
}

func TestIsBinary(t *testing.T) {
	assert.False(t, IsBinary("application/json", []byte(`{"a":1}`)))
	assert.False(t, IsBinary("", []byte("a: 1")))
	assert.False(t, IsBinary("", []byte{0xFF, 0xFE, '{', 0, '}', 0}))
	assert.True(t, IsBinary("image/png", []byte("PNG")))
	assert.True(t, IsBinary("", []byte{0xC3, 0x28}))
}
