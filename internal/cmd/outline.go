package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/treedown/treedown/pkg/document"
)

var (
	outlineHeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	outlineLineStyle    = lipgloss.NewStyle().Faint(true)
)

func outlineCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "outline FILE",
		Short: "Print the heading outline of a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return errors.WithStack(err)
			}

			tree := document.Parse(source)
			out := cmd.OutOrStdout()

			for _, node := range tree.Children() {
				level := document.HeadingLevel(node.Kind())
				if level == 0 {
					continue
				}
				title := document.RenderedText(node.Content())
				_, err := fmt.Fprintf(
					out,
					"%s%s %s\n",
					strings.Repeat("  ", level-1),
					outlineLineStyle.Render(fmt.Sprintf("%4d", node.StartLine())),
					outlineHeadingStyle.Render(title),
				)
				if err != nil {
					return errors.WithStack(err)
				}
			}
			return nil
		},
	}
	return &cmd
}
