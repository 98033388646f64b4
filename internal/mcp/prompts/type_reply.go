package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleTypeAPIReply implements the reply typing workflow.
func HandleTypeAPIReply(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		typeName := "Root"
		selectExpr := ""
		if args := req.Params.Arguments; args != nil {
			if v, ok := args["type_name"]; ok && v != "" {
				typeName = v
			}
			if v, ok := args["select"]; ok {
				selectExpr = v
			}
		}

		var sb strings.Builder

		sb.WriteString("# Type an API Reply\n\n")
		sb.WriteString("You are turning a JSON or YAML API reply into a Go struct declaration that decodes it.\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		fmt.Fprintf(&sb, "1. **Generate** - Call `json2struct_generate` with the reply as `sample` and `name: %q`", typeName)
		if selectExpr != "" {
			fmt.Fprintf(&sb, " and `select: %q`", selectExpr)
		}
		sb.WriteString(".\n")
		fmt.Fprintf(&sb, "   - Fields are tagged with `%s:\"<key>\"`", cfg.TagKey)
		if cfg.IndentWidth == 0 {
			sb.WriteString(" and indented with tabs")
		} else {
			fmt.Fprintf(&sb, " and indented by %d spaces", cfg.IndentWidth)
		}
		if cfg.Gofmt {
			sb.WriteString(", with columns aligned by gofmt")
		}
		sb.WriteString(". Override with `tag_key`, `indent_width` and `gofmt`.\n")
		sb.WriteString("   - Nested objects become inline structs; arrays of objects become `[]struct` typed after their first element.\n\n")

		sb.WriteString("2. **Fix failures** - Generation stops at the first value it cannot type:\n")
		sb.WriteString("   - `UNSUPPORTED_VALUE`: null, floating-point numbers, arrays of scalars, or a non-object root. Edit the sample (use `0` for numbers, `\"\"` for unknown strings) or narrow it with `select`.\n")
		sb.WriteString("   - `EMPTY_SEQUENCE`: an empty array. Put one representative element in it.\n")
		sb.WriteString("   - `EMPTY_IDENTIFIER` / `INVALID_IDENTIFIER`: a key made only of underscores, one that does not start with a letter, or two keys converting to the same field name. Rename the key in the sample and restore it in the tag afterwards.\n\n")

		sb.WriteString("3. **Verify** - Call `json2struct_verify` with the declaration and the original reply, or pass `verify: true` to step 1.\n")
		sb.WriteString("   - `valid: false` lists JSON pointer paths of keys that are missing, unknown, or mistyped.\n\n")

		sb.WriteString("4. **Document** - Call `json2struct_schema` for a JSON Schema of the same reply when a language-neutral contract is needed.\n")

		return &sdkmcp.GetPromptResult{
			Description: "Type an API reply as a Go struct",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
