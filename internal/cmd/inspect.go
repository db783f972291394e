package cmd

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/treedown/treedown/internal/log"
	"github.com/treedown/treedown/pkg/document"
)

func inspectCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the document tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return errors.WithStack(err)
			}

			tree := document.NewParser(document.WithLogger(log.Get())).Parse(source)

			nodes := make([]map[string]any, 0, len(tree.Children()))
			for _, node := range tree.Children() {
				nodes = append(nodes, dumpNode(node))
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return errors.WithStack(encoder.Encode(nodes))
		},
	}
	return &cmd
}

func dumpNode(node *document.Node) map[string]any {
	result := map[string]any{
		"id":        node.ID(),
		"kind":      string(node.Kind()),
		"startLine": node.StartLine(),
		"endLine":   node.EndLine(),
	}
	if content := node.Content(); content != "" {
		result["content"] = content
	}
	if attrs := node.Attributes(); attrs != nil {
		result["attributes"] = attrs
	}
	if children := node.Children(); len(children) > 0 {
		dumped := make([]map[string]any, 0, len(children))
		for _, child := range children {
			dumped = append(dumped, dumpNode(child))
		}
		result["children"] = dumped
	}
	return result
}
