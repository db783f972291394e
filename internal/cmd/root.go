package cmd

import (
	"github.com/spf13/cobra"

	"github.com/treedown/treedown/internal/log"
)

var fVerbose bool

func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:           "treedown",
		Short:         "Inspect and rewrite structured markdown documents",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if fVerbose {
				log.Set()
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Flush()
		},
	}

	pflags := cmd.PersistentFlags()
	pflags.BoolVarP(&fVerbose, "verbose", "v", false, "Log parser details to stderr.")

	cmd.AddCommand(fmtCmd())
	cmd.AddCommand(inspectCmd())
	cmd.AddCommand(outlineCmd())

	return &cmd
}
