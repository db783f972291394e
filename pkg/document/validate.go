package document

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Validate checks the structural invariants of a built tree: strict tree
// shape (every node reachable by exactly one path, parent links agreeing
// with child lists), unique ids, attribute variants agreeing with node
// kinds, and code fence lengths that the content cannot close early. It
// returns all violations aggregated into one error, or nil.
func (t *Tree) Validate() error {
	var err error
	seen := make(map[*Node]bool)
	ids := make(map[string]bool)

	var walk func(n *Node, parent *Node)
	walk = func(n *Node, parent *Node) {
		if seen[n] {
			err = multierr.Append(err, errors.Errorf("node %q reachable by more than one path", n.id))
			return
		}
		seen[n] = true

		if ids[n.id] {
			err = multierr.Append(err, errors.Errorf("duplicate node id %q", n.id))
		}
		ids[n.id] = true

		if n.parent != parent {
			err = multierr.Append(err, errors.Errorf("node %q parent link does not match its owner", n.id))
		}

		err = multierr.Append(err, validateAttributes(n))

		for _, child := range n.children {
			walk(child, n)
		}
	}

	for _, node := range t.children {
		walk(node, nil)
	}
	return err
}

func validateAttributes(n *Node) error {
	switch n.kind {
	case CodeBlock:
		attrs := n.CodeAttributes()
		if attrs == nil {
			return errors.Errorf("code-block %q missing code attributes", n.id)
		}
		if attrs.FenceLen < 3 {
			return errors.Errorf("code-block %q fence length %d below minimum", n.id, attrs.FenceLen)
		}
		if attrs.Closed && attrs.CloseLen < attrs.FenceLen {
			return errors.Errorf("code-block %q closing fence shorter than opening", n.id)
		}
		for _, line := range strings.Split(n.content, "\n") {
			if w := backtickOnlyWidth(line); w >= attrs.FenceLen {
				return errors.Errorf("code-block %q content contains a closing-length fence", n.id)
			}
		}
	case ListItem:
		if n.ListItemAttributes() == nil {
			return errors.Errorf("list-item %q missing list attributes", n.id)
		}
	case Image, InlineImage:
		if n.ImageAttributes() == nil {
			return errors.Errorf("image %q missing image attributes", n.id)
		}
	case Link:
		if n.LinkAttributes() == nil {
			return errors.Errorf("link %q missing link attributes", n.id)
		}
	case HTMLBlock:
		attrs := n.HTMLAttributes()
		if attrs == nil {
			return errors.Errorf("html-block %q missing html attributes", n.id)
		}
		if attrs.SelfClosed && len(n.children) > 0 {
			return errors.Errorf("html-block %q self-closed but has children", n.id)
		}
	}
	return nil
}
