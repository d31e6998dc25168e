package cmd

import (
	"github.com/huangsam/babscore/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the babscore MCP server",
	Long:  `Launch an MCP server that allows AI agents to score chapters, predict durations and run root cause analysis via standard tools.`,
	Args:  cobra.NoArgs,
	// Handlers suppress the run header since stdio carries the protocol.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}
