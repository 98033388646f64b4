package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/json2struct/pkg/ident"
	"github.com/usestring/json2struct/pkg/jsonschema"
	"github.com/usestring/json2struct/pkg/types"
)

// SchemaInput is the input for json2struct_schema.
type SchemaInput struct {
	Sample        string `json:"sample" jsonschema:"required,Sample document text (JSON or YAML)"`
	Format        string `json:"format,omitempty" jsonschema:"Sample format: json, yaml, or auto (default: from content_type, else auto)"`
	ContentType   string `json:"content_type,omitempty" jsonschema:"Content-Type the sample was served with, used when format is empty"`
	Select        string `json:"select,omitempty" jsonschema:"jq path expression selecting one value of the sample (e.g. .data.items[0])"`
	Title         string `json:"title,omitempty" jsonschema:"Schema title, converted to a Go identifier"`
	Strict        bool   `json:"strict,omitempty" jsonschema:"Forbid properties that are not in the sample"`
	DetectFormats *bool  `json:"detect_formats,omitempty" jsonschema:"Annotate strings that look like uuid, date-time, uri or email (default: true)"`
}

func (in SchemaInput) source() sampleSource {
	return sampleSource{Sample: in.Sample, Format: in.Format, ContentType: in.ContentType, Select: in.Select}
}

// ToolSchema infers a JSON Schema document from a sample.
func ToolSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SchemaInput) (*sdkmcp.CallToolResult, types.SchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SchemaInput) (*sdkmcp.CallToolResult, types.SchemaOutput, error) {
		v, err := d.loadSample(input.source())
		if err != nil {
			return nil, types.SchemaOutput{}, err
		}

		opts := jsonschema.DefaultInferOptions()
		if input.Title != "" {
			opts.Title = ident.Convert(input.Title)
		}
		if input.Strict {
			closed := false
			opts.AdditionalProperties = &closed
		}
		if input.DetectFormats != nil {
			opts.DetectFormats = *input.DetectFormats
		}

		schema, err := types.ToAny(jsonschema.FromSample(v, opts))
		if err != nil {
			return nil, types.SchemaOutput{}, err
		}
		return nil, types.SchemaOutput{Schema: schema}, nil
	}
}
