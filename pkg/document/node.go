package document

import (
	"github.com/treedown/treedown/internal/ulid"
)

// Kind identifies the semantics of a node. Block and inline nodes share the
// same tree type; whitelisted inline HTML nodes use their tag name as kind.
type Kind string

const (
	Heading1       Kind = "heading1"
	Heading2       Kind = "heading2"
	Heading3       Kind = "heading3"
	Heading4       Kind = "heading4"
	Heading5       Kind = "heading5"
	Heading6       Kind = "heading6"
	Paragraph      Kind = "paragraph"
	Blockquote     Kind = "blockquote"
	CodeBlock      Kind = "code-block"
	ListItem       Kind = "list-item"
	HorizontalRule Kind = "horizontal-rule"
	Image          Kind = "image"
	Table          Kind = "table"
	HTMLBlock      Kind = "html-block"

	Text          Kind = "text"
	Bold          Kind = "bold"
	Italic        Kind = "italic"
	Strikethrough Kind = "strikethrough"
	Link          Kind = "link"
	InlineCode    Kind = "inline-code"
	InlineImage   Kind = "inline-image"
)

// HeadingKind returns the heading kind for a level in 1..6.
func HeadingKind(level int) Kind {
	switch level {
	case 1:
		return Heading1
	case 2:
		return Heading2
	case 3:
		return Heading3
	case 4:
		return Heading4
	case 5:
		return Heading5
	default:
		return Heading6
	}
}

// HeadingLevel returns 1..6 for heading kinds and 0 otherwise.
func HeadingLevel(k Kind) int {
	switch k {
	case Heading1:
		return 1
	case Heading2:
		return 2
	case Heading3:
		return 3
	case Heading4:
		return 4
	case Heading5:
		return 5
	case Heading6:
		return 6
	}
	return 0
}

// Attributes is the per-kind metadata variant. Each kind that carries
// metadata has its own concrete type; a node never holds fields that are
// invalid for its kind.
type Attributes interface {
	isAttributes()
}

// CodeAttributes describes a fenced code block.
type CodeAttributes struct {
	Language string
	// FenceLen is the backtick count of the opening fence. Immutable once
	// parsed; serialization reproduces it exactly.
	FenceLen int
	// CloseLen is the backtick count of the closing fence. It is >= FenceLen
	// when the block was closed, and ignored otherwise.
	CloseLen int
	// Closed is false when the fence ran to end of input.
	Closed bool
}

// ListItemAttributes describes a single list item line.
type ListItemAttributes struct {
	// Indent is the leading whitespace width in columns.
	Indent  int
	Ordered bool
	// Number is the ordinal for ordered items.
	Number int
	// Bullet is '-' or '*' for unordered items.
	Bullet byte
	// Task marks a checklist item; Checked is only meaningful when Task.
	Task    bool
	Checked bool
}

// ImageAttributes describes block-level and inline markdown images.
type ImageAttributes struct {
	Alt string
	URL string
}

// LinkAttributes describes an inline link.
type LinkAttributes struct {
	Href string
}

// EmphasisAttributes records which delimiter character produced an italic
// span, so "_word_" does not reserialize as "*word*".
type EmphasisAttributes struct {
	Delimiter string
}

// HTMLAttributes describes HTML container blocks, self-closed HTML leaves
// and inline HTML spans. OpeningTag and ClosingTag hold the raw tag text so
// attributes inside the tag survive serialization byte-for-byte.
type HTMLAttributes struct {
	TagName    string
	OpeningTag string
	ClosingTag string
	SelfClosed bool
	// InnerBreaks is the count of line breaks between the opening tag line
	// and the first child (block containers only).
	InnerBreaks int
}

func (*CodeAttributes) isAttributes()     {}
func (*EmphasisAttributes) isAttributes() {}
func (*ListItemAttributes) isAttributes() {}
func (*ImageAttributes) isAttributes()    {}
func (*LinkAttributes) isAttributes()     {}
func (*HTMLAttributes) isAttributes()     {}

// Node is one element of the document tree, block or inline. The tree owns
// nodes through the children slices; parent is a non-owning back-reference.
type Node struct {
	id      string
	kind    Kind
	content string
	attrs   Attributes

	children []*Node
	parent   *Node

	startLine int
	endLine   int

	// trailingBreaks is the number of line breaks following this block in
	// the source, including the one terminating its own last line. It is
	// what makes blank runs between blocks round-trip exactly.
	trailingBreaks int
}

func newNode(id string, kind Kind) *Node {
	if id == "" {
		id = ulid.GenerateID()
	}
	return &Node{id: id, kind: kind}
}

// NewNode creates a detached node with a generated id.
func NewNode(kind Kind) *Node {
	return newNode("", kind)
}

func (n *Node) ID() string          { return n.id }
func (n *Node) Kind() Kind          { return n.kind }
func (n *Node) Content() string     { return n.content }
func (n *Node) Parent() *Node       { return n.parent }
func (n *Node) Children() []*Node   { return n.children }
func (n *Node) StartLine() int      { return n.startLine }
func (n *Node) EndLine() int        { return n.endLine }
func (n *Node) TrailingBreaks() int { return n.trailingBreaks }

func (n *Node) SetContent(content string) { n.content = content }

// Attributes returns the kind-specific metadata variant, which may be nil.
func (n *Node) Attributes() Attributes { return n.attrs }

func (n *Node) CodeAttributes() *CodeAttributes {
	a, _ := n.attrs.(*CodeAttributes)
	return a
}

func (n *Node) ListItemAttributes() *ListItemAttributes {
	a, _ := n.attrs.(*ListItemAttributes)
	return a
}

func (n *Node) ImageAttributes() *ImageAttributes {
	a, _ := n.attrs.(*ImageAttributes)
	return a
}

func (n *Node) LinkAttributes() *LinkAttributes {
	a, _ := n.attrs.(*LinkAttributes)
	return a
}

func (n *Node) EmphasisAttributes() *EmphasisAttributes {
	a, _ := n.attrs.(*EmphasisAttributes)
	return a
}

func (n *Node) HTMLAttributes() *HTMLAttributes {
	a, _ := n.attrs.(*HTMLAttributes)
	return a
}

// Append adds child at the end of n's children and sets its parent.
func (n *Node) Append(child *Node) *Node {
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// FindNode returns the first node in the subtree rooted at node for which
// fn reports true, in depth-first order.
func FindNode(node *Node, fn func(*Node) bool) *Node {
	if node == nil {
		return nil
	}
	if fn(node) {
		return node
	}
	for _, child := range node.children {
		if n := FindNode(child, fn); n != nil {
			return n
		}
	}
	return nil
}
