// Package mcpsrv provides an extensible MCP server for json2struct.
//
// The server exposes the builtin tools json2struct_generate,
// json2struct_schema and json2struct_verify and the type_api_reply prompt.
// Callers can add their own tools, prompts and resources with functional
// options.
//
// # Basic Usage
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Custom tools can reuse the declaration cache and the configured rendering
// options through Deps:
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "type_fixture", Description: "Type a fixture file"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in FixtureInput) (*mcp.CallToolResult, FixtureOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in FixtureInput) (*mcp.CallToolResult, FixtureOutput, error) {
//	            v, err := sample.DecodeJSON(in.Data)
//	            if err != nil {
//	                return nil, FixtureOutput{}, err
//	            }
//	            decl, err := gostruct.Generate(v, in.Name, d.Options())
//	            return nil, FixtureOutput{Declaration: decl}, err
//	        }
//	    },
//	)
//
// # Configuration
//
// Defaults come from the environment (J2S_* and LOG_* variables) and can be
// overridden:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithTagKey("yaml"),
//	    mcpsrv.WithGofmt(true),
//	)
package mcpsrv
