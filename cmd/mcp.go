package cmd

import (
	"github.com/qlinetech/qgit/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [repo-path]",
	Short: "Start the qgit MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents query repository
structure, languages, frameworks, contributors and timelines as tools.

Every tool accepts an optional repo_path; the positional argument only sets
the default repository.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
