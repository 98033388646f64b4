package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: json2struct_generate
	AddTool(srv, &sdkmcp.Tool{
		Name:        "json2struct_generate",
		Description: "Infer a Go struct type declaration from a JSON or YAML sample. Objects become inline structs, arrays of objects become []struct typed after their first element, and every field carries a tag with its original key. Returns {declaration, type_name, fields, cached, verification, hint}. Use select to type one part of a larger document. Fails on null, floating-point, empty-array and scalar-array values.",
	}, ToolGenerate(d))

	// Tool 2: json2struct_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "json2struct_schema",
		Description: "Infer a JSON Schema (Draft 2020-12) document from a JSON or YAML sample. Properties keep the sample's key order and every present key is required. Unlike json2struct_generate it accepts null, floating-point and empty-array values.",
	}, ToolSchema(d))

	// Tool 3: json2struct_verify
	AddTool(srv, &sdkmcp.Tool{
		Name:        "json2struct_verify",
		Description: "Check that a sample decodes into a Go struct declaration: every key maps to exactly one tagged field of a matching type. Returns {valid, errors} with JSON pointer paths.",
	}, ToolVerify(d))
}
