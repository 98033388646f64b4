package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "type_api_reply",
		Description: "Turn a captured API reply into a Go type: generate the declaration, fix unsupported values, and verify that the reply decodes into it.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "type_name",
				Description: "Name of the root Go type (e.g. ChannelReply)",
				Required:    false,
			},
			{
				Name:        "select",
				Description: "jq path of the part of the reply to type (e.g. .data.items[0])",
				Required:    false,
			},
		},
	}, HandleTypeAPIReply(cfg))
}
