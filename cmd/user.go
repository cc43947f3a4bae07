package cmd

import (
	"github.com/qlinetech/qgit/core"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/spf13/cobra"
)

// userSetup resolves config against the first repository and records the author.
func userSetup(cmd *cobra.Command, args []string) error {
	repos := args[1:]
	first := []string{}
	if len(repos) > 0 {
		first = repos[:1]
	}
	if err := sharedSetup(rootCtx, cmd, first); err != nil {
		return err
	}
	cfg.Author = args[0]
	cfg.UserRepos = repos
	return nil
}

// userCmd rolls up one author's contributions across repositories.
var userCmd = &cobra.Command{
	Use:   "user <author> [repo-path...]",
	Short: "Show one author's contributions across repositories.",
	Long: `Roll up commits and line changes for a single author name.

With no repository arguments the current repository is used. Repositories the
author never committed to are listed with zero counts.

Examples:
  qgit user "Ada Lovelace"
  qgit user "Ada Lovelace" ~/src/api ~/src/web --output csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: userSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteUser(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot build user report", err)
		}
	},
}
