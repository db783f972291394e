package document

import (
	stderrors "errors"
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrNodeNotFound = stderrors.New("node not found")
	ErrInvalidPath  = stderrors.New("invalid path")
)

// CellAddress is an optional table cell position carried by the cursor.
type CellAddress struct {
	Row int
	Col int
}

// Cursor records where editing happens: a node id plus a raw character
// offset into that node's content, optionally narrowed to a table cell.
type Cursor struct {
	NodeID string
	Offset int
	Cell   *CellAddress
}

// Path is a structural address: child indices from the root, terminated by
// a raw character offset. Unlike node ids, paths survive a full reparse as
// long as the structure is unchanged.
type Path struct {
	Indices []int
	Offset  int
}

// Tree is the root of the document model: an ordered sequence of top-level
// nodes plus the cursor. A Tree is built by Parse and rebuilt wholesale on
// structural edits; node ids are not reused across reparses.
type Tree struct {
	children []*Node

	// frontmatterRaw holds the leading metadata section verbatim,
	// delimiters included, or "" when the document has none.
	frontmatterRaw string
	// leadingBreaks counts line breaks before the first node (after the
	// frontmatter when present).
	leadingBreaks int
	lineBreak     string

	cursor Cursor

	onceFrontmatter     sync.Once
	frontmatter         *Frontmatter
	parseFrontmatterErr error
}

func (t *Tree) Children() []*Node { return t.children }

// LineBreak returns the detected line terminator, "\n" or "\r\n";
// serialization reproduces it.
func (t *Tree) LineBreak() string { return t.lineBreak }

func (t *Tree) Cursor() Cursor { return t.cursor }

func (t *Tree) SetCursor(c Cursor) { t.cursor = c }

// FindNodeByID returns the node with the given id, or nil. Ids are only
// stable for the lifetime of this tree.
func (t *Tree) FindNodeByID(id string) *Node {
	for _, child := range t.children {
		if n := FindNode(child, func(n *Node) bool { return n.id == id }); n != nil {
			return n
		}
	}
	return nil
}

// PathToNode returns the structural address of the node with the given id.
// The returned path's offset is zero; callers position it as needed.
func (t *Tree) PathToNode(id string) (Path, error) {
	indices, ok := pathIndices(t.children, id)
	if !ok {
		return Path{}, errors.Wrapf(ErrNodeNotFound, "id %q", id)
	}
	return Path{Indices: indices}, nil
}

// PathToCursor returns the cursor position as a reparse-stable path.
func (t *Tree) PathToCursor() (Path, error) {
	p, err := t.PathToNode(t.cursor.NodeID)
	if err != nil {
		return Path{}, err
	}
	p.Offset = t.cursor.Offset
	return p, nil
}

// NodeAtPath resolves a structural address against this tree.
func (t *Tree) NodeAtPath(path Path) (*Node, error) {
	if len(path.Indices) == 0 {
		return nil, errors.Wrap(ErrInvalidPath, "empty index sequence")
	}
	nodes := t.children
	var node *Node
	for depth, idx := range path.Indices {
		if idx < 0 || idx >= len(nodes) {
			return nil, errors.Wrapf(ErrInvalidPath, "index %d out of range at depth %d", idx, depth)
		}
		node = nodes[idx]
		nodes = node.children
	}
	return node, nil
}

// RestoreCursor re-establishes the cursor from a path captured before a
// reparse, clamping the offset to the addressed node's content.
func (t *Tree) RestoreCursor(path Path) error {
	node, err := t.NodeAtPath(path)
	if err != nil {
		return err
	}
	offset := path.Offset
	if offset > len(node.content) {
		offset = len(node.content)
	}
	if offset < 0 {
		offset = 0
	}
	t.cursor = Cursor{NodeID: node.id, Offset: offset}
	return nil
}

func pathIndices(nodes []*Node, id string) ([]int, bool) {
	for i, n := range nodes {
		if n.id == id {
			return []int{i}, true
		}
		if sub, ok := pathIndices(n.children, id); ok {
			return append([]int{i}, sub...), true
		}
	}
	return nil, false
}
