package document

import (
	"github.com/pkg/errors"
)

// Format identifies a toggleable inline formatting delimiter pair.
type Format int

const (
	FormatBold Format = iota
	FormatItalic
	FormatStrikethrough
	FormatCode
)

func (f Format) delimiter() string {
	switch f {
	case FormatBold:
		return "**"
	case FormatItalic:
		return "*"
	case FormatStrikethrough:
		return "~~"
	case FormatCode:
		return "`"
	}
	return ""
}

// Selection is a raw-offset range within a single node's content.
type Selection struct {
	NodeID string
	Start  int
	End    int
}

// ChangeKind re-labels the node and synthesizes the attribute shape the new
// kind requires. Attributes that are meaningless for the new kind are
// dropped; compatible ones carry over (a checklist item turned into a plain
// list item keeps its indentation but loses its checked state).
func (n *Node) ChangeKind(kind Kind) {
	prev := n.attrs
	n.attrs = synthesizeAttributes(prev, kind)
	n.kind = kind
}

func synthesizeAttributes(prev Attributes, kind Kind) Attributes {
	switch kind {
	case ListItem:
		attrs := &ListItemAttributes{Bullet: '-'}
		if p, ok := prev.(*ListItemAttributes); ok {
			attrs.Indent = p.Indent
			attrs.Ordered = p.Ordered
			attrs.Bullet = p.Bullet
			if p.Ordered {
				attrs.Number = p.Number
			}
		}
		if attrs.Ordered && attrs.Number == 0 {
			attrs.Number = 1
		}
		return attrs

	case CodeBlock:
		if p, ok := prev.(*CodeAttributes); ok {
			return p
		}
		return &CodeAttributes{FenceLen: 3, CloseLen: 3, Closed: true}

	case Image, InlineImage:
		if p, ok := prev.(*ImageAttributes); ok {
			return p
		}
		return &ImageAttributes{}

	case Link:
		if p, ok := prev.(*LinkAttributes); ok {
			return p
		}
		return &LinkAttributes{}

	case Italic:
		if p, ok := prev.(*EmphasisAttributes); ok {
			return p
		}
		return &EmphasisAttributes{Delimiter: "*"}

	case HTMLBlock:
		if p, ok := prev.(*HTMLAttributes); ok {
			return p
		}
		return &HTMLAttributes{TagName: "div", OpeningTag: "<div>", ClosingTag: "</div>"}
	}
	return nil
}

// ApplyFormat toggles a formatting delimiter pair around the selected
// raw-offset range of one node's content. Applying the same format twice
// with the returned selection restores the original text. Offsets outside
// the content clamp rather than fail.
func (t *Tree) ApplyFormat(sel Selection, format Format) (Selection, error) {
	node := t.FindNodeByID(sel.NodeID)
	if node == nil {
		return Selection{}, errors.Wrapf(ErrNodeNotFound, "id %q", sel.NodeID)
	}

	content := node.content
	start := clamp(sel.Start, 0, len(content))
	end := clamp(sel.End, 0, len(content))
	if end < start {
		start, end = end, start
	}

	delim := format.delimiter()
	d := len(delim)
	inner := content[start:end]

	// Selection includes the delimiters: strip them.
	if end-start >= 2*d && inner[:d] == delim && inner[len(inner)-d:] == delim {
		node.content = content[:start] + inner[d:len(inner)-d] + content[end:]
		return Selection{NodeID: sel.NodeID, Start: start, End: end - 2*d}, nil
	}

	// Delimiters sit just outside the selection: strip them.
	if start >= d && len(content)-end >= d &&
		content[start-d:start] == delim && content[end:end+d] == delim {
		node.content = content[:start-d] + inner + content[end+d:]
		return Selection{NodeID: sel.NodeID, Start: start - d, End: end - d}, nil
	}

	node.content = content[:start] + delim + inner + delim + content[end:]
	return Selection{NodeID: sel.NodeID, Start: start + d, End: end + d}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
