// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msglint/msglint/internal/gitexec"
)

// NewRootCmd constructs the msglint root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("MSGLINT_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "msglint",
		Short:         "msglint - structured inspection of git commit messages",
		Long:          "msglint resolves one or more git commits into a structured context (title, body, author, parents, changed files) for commit-message rule evaluation.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInspect,
	}

	cmd.Flags().String("msg-file", "", "read a raw commit message from this file instead of the repository ('-' for stdin)")
	cmd.Flags().String("commits", "", "refspec selecting the commits to inspect (default: the most recent commit)")
	cmd.Flags().String("target", "", "path of the repository to inspect (default: the enclosing git worktree)")
	cmd.Flags().String("format", "text", "Output format: text (default) or json")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of msglint and of the git binary",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "msglint version %s\n", version)
			if gitVersion, err := gitexec.Open(".").Version(cmd.Context()); err == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), gitVersion)
			}
		},
	})

	return cmd
}
