package cmd

import (
	"github.com/huangsam/mediascore/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the mediascore MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents build ratings and source trend reports.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr, keeping stdio for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
