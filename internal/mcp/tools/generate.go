package tools

import (
	"context"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/json2struct/internal/cache"
	"github.com/usestring/json2struct/internal/verify"
	"github.com/usestring/json2struct/pkg/gostruct"
	"github.com/usestring/json2struct/pkg/ident"
	"github.com/usestring/json2struct/pkg/jsonschema"
	"github.com/usestring/json2struct/pkg/sample"
	"github.com/usestring/json2struct/pkg/types"
)

// defaultTypeName names the root type when the caller gives none.
const defaultTypeName = "Root"

// GenerateInput is the input for json2struct_generate.
type GenerateInput struct {
	Sample        string `json:"sample" jsonschema:"required,Sample document text (JSON or YAML)"`
	Format        string `json:"format,omitempty" jsonschema:"Sample format: json, yaml, or auto (default: from content_type, else auto)"`
	ContentType   string `json:"content_type,omitempty" jsonschema:"Content-Type the sample was served with, used when format is empty"`
	Select        string `json:"select,omitempty" jsonschema:"jq path expression selecting one value of the sample (e.g. .data.items[0])"`
	Name          string `json:"name,omitempty" jsonschema:"Root type name, converted to a Go identifier (default: Root)"`
	TagKey        string `json:"tag_key,omitempty" jsonschema:"Struct tag key carrying the original key (default: json)"`
	IndentWidth   *int   `json:"indent_width,omitempty" jsonschema:"Spaces per nesting level, 0 for tabs (default: 4)"`
	Gofmt         *bool  `json:"gofmt,omitempty" jsonschema:"Align field columns with gofmt (default: false)"`
	Package       string `json:"package,omitempty" jsonschema:"Prefix the declaration with this package clause"`
	Verify        bool   `json:"verify,omitempty" jsonschema:"Validate the sample against the generated declaration"`
	IncludeFields bool   `json:"include_fields,omitempty" jsonschema:"Return a flat table of the sample's fields"`
}

func (in GenerateInput) source() sampleSource {
	return sampleSource{Sample: in.Sample, Format: in.Format, ContentType: in.ContentType, Select: in.Select}
}

// ToolGenerate infers a Go struct declaration from a sample.
func ToolGenerate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateInput) (*sdkmcp.CallToolResult, types.GenerateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateInput) (*sdkmcp.CallToolResult, types.GenerateOutput, error) {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			name = defaultTypeName
		}
		opts := d.options(input.TagKey, input.IndentWidth, input.Gofmt)
		emitter, err := gostruct.NewEmitter(opts)
		if err != nil {
			return nil, types.GenerateOutput{}, &CodedError{Code: ErrCodeInvalidInput, Message: "invalid rendering options", Cause: err}
		}
		if input.Package != "" {
			if err := gostruct.CheckPackageName(input.Package); err != nil {
				return nil, types.GenerateOutput{}, &CodedError{Code: ErrCodeInvalidInput, Message: "invalid package clause", Cause: err}
			}
		}

		var (
			v       sample.Value
			decoded bool
		)
		load := func() error {
			if decoded {
				return nil
			}
			var err error
			v, err = d.loadSample(input.source())
			if err != nil {
				return err
			}
			decoded = true
			return nil
		}
		generate := func() (string, error) {
			if err := load(); err != nil {
				return "", err
			}
			return emitter.Generate(v, name)
		}

		var (
			decl string
			hit  bool
		)
		if d.Cache != nil {
			key := cache.Key([]byte(input.Sample), name,
				append([]string{input.Format, input.ContentType, input.Select}, cacheParts(opts)...)...)
			decl, hit, err = d.Cache.GetOrGenerate(key, generate)
		} else {
			decl, err = generate()
		}
		if err != nil {
			return nil, types.GenerateOutput{}, WrapGenerateError(err)
		}

		output := types.GenerateOutput{
			Declaration: decl,
			TypeName:    ident.Convert(name),
			Cached:      hit,
		}
		if input.Package != "" {
			output.Declaration = "package " + input.Package + "\n\n" + decl
		}

		if input.IncludeFields || input.Verify {
			// The sample may have been decoded by a concurrent caller sharing the
			// generation, so load it here if needed.
			if err := load(); err != nil {
				return nil, types.GenerateOutput{}, err
			}
		}

		if input.IncludeFields {
			for _, f := range jsonschema.ListFields(v) {
				output.Fields = append(output.Fields, types.FieldSummary{
					Path:   f.Path,
					Type:   f.Type,
					GoName: f.GoName,
					Format: f.Format,
				})
			}
		}

		if input.Verify {
			result, err := verify.Declaration(decl, v, opts.TagKey)
			if err != nil {
				return nil, types.GenerateOutput{}, &CodedError{Code: ErrCodeInvalidInput, Message: "verifying declaration", Cause: err}
			}
			output.Verification = result
		} else {
			output.Hint = "Pass declaration and sample to json2struct_verify to check that the sample decodes into it."
		}

		slog.Debug("generated declaration",
			slog.String("type", output.TypeName),
			slog.Bool("cached", hit),
			slog.Int("bytes", len(decl)),
		)

		return nil, output, nil
	}
}
