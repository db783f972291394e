package cmd

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/treedown/treedown/internal/log"
	"github.com/treedown/treedown/pkg/document"
)

func fmtCmd() *cobra.Command {
	var (
		fCheck bool
		fWrite bool
	)

	cmd := cobra.Command{
		Use:   "fmt FILE",
		Short: "Parse a markdown file and serialize it back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return errors.WithStack(err)
			}

			tree := document.NewParser(document.WithLogger(log.Get())).Parse(source)
			if err := tree.Validate(); err != nil {
				return errors.Wrap(err, "parsed tree failed validation")
			}
			result := tree.Markdown()

			if fCheck {
				if !bytes.Equal(source, result) {
					return errors.Errorf("%s: serialized form differs from source", args[0])
				}
				return nil
			}
			if fWrite {
				return errors.WithStack(os.WriteFile(args[0], result, 0o600))
			}
			_, err = cmd.OutOrStdout().Write(result)
			return errors.WithStack(err)
		},
	}

	cmd.Flags().BoolVar(&fCheck, "check", false, "Exit non-zero when the file does not round-trip byte-for-byte.")
	cmd.Flags().BoolVarP(&fWrite, "write", "w", false, "Rewrite the file in place instead of printing.")

	return &cmd
}
