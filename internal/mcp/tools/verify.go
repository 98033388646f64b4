package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/json2struct/internal/verify"
	"github.com/usestring/json2struct/pkg/types"
)

// VerifyInput is the input for json2struct_verify.
type VerifyInput struct {
	Declaration string `json:"declaration" jsonschema:"required,Go struct type declaration"`
	TagKey      string `json:"tag_key,omitempty" jsonschema:"Struct tag key naming the data keys (default: configured tag key)"`
	Sample      string `json:"sample" jsonschema:"required,Sample document text (JSON or YAML)"`
	Format      string `json:"format,omitempty" jsonschema:"Sample format: json, yaml, or auto (default: from content_type, else auto)"`
	ContentType string `json:"content_type,omitempty" jsonschema:"Content-Type the sample was served with, used when format is empty"`
	Select      string `json:"select,omitempty" jsonschema:"jq path expression selecting one value of the sample (e.g. .data.items[0])"`
}

func (in VerifyInput) source() sampleSource {
	return sampleSource{Sample: in.Sample, Format: in.Format, ContentType: in.ContentType, Select: in.Select}
}

// ToolVerify validates a sample against a Go struct declaration.
func ToolVerify(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input VerifyInput) (*sdkmcp.CallToolResult, types.ValidationResult, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input VerifyInput) (*sdkmcp.CallToolResult, types.ValidationResult, error) {
		if input.Declaration == "" {
			return nil, types.ValidationResult{}, ErrInvalidInput("declaration is required")
		}

		v, err := d.loadSample(input.source())
		if err != nil {
			return nil, types.ValidationResult{}, err
		}

		tagKey := input.TagKey
		if tagKey == "" {
			tagKey = d.options("", nil, nil).TagKey
		}

		validator, err := verify.NewValidator(input.Declaration, tagKey)
		if err != nil {
			return nil, types.ValidationResult{}, ErrInvalidInput("invalid declaration: " + err.Error())
		}
		return nil, *validator.Validate(v), nil
	}
}
