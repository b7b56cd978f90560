package cmd

import (
	"github.com/huangsam/psicosocial/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the psicosocial MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents score answer sets,
list campaigns and read campaign report data via standard tools.`,
	// Nothing may print to stdout before the server starts; stdio carries the protocol.
	PreRunE: storeSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
