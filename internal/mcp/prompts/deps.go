// Package prompts contains MCP prompt implementations for json2struct.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	TagKey      string
	IndentWidth int
	Gofmt       bool
}
