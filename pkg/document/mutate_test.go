package document

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeKind_ParagraphToListItem(t *testing.T) {
	tree := testParser().Parse([]byte("buy milk\n"))
	node := tree.Children()[0]

	node.ChangeKind(ListItem)

	assert.Equal(t, ListItem, node.Kind())
	attrs := node.ListItemAttributes()
	require.NotNil(t, attrs)
	assert.Equal(t, byte('-'), attrs.Bullet)
	assert.False(t, attrs.Task)
	assert.Equal(t, "- buy milk", node.Markdown())
}

func TestChangeKind_ListItemToHeadingDropsAttributes(t *testing.T) {
	tree := testParser().Parse([]byte("- [x] done\n"))
	node := tree.Children()[0]

	node.ChangeKind(Heading2)

	assert.Equal(t, Heading2, node.Kind())
	assert.Nil(t, node.Attributes())
	assert.Equal(t, "## done", node.Markdown())
}

func TestChangeKind_ListItemKeepsIndent(t *testing.T) {
	tree := testParser().Parse([]byte("  2. second\n"))
	node := tree.Children()[0]

	// Round through paragraph and back: the indent is gone with the list
	// attributes, and defaults are synthesized on return.
	node.ChangeKind(Paragraph)
	assert.Nil(t, node.Attributes())

	node.ChangeKind(ListItem)
	attrs := node.ListItemAttributes()
	require.NotNil(t, attrs)
	assert.Equal(t, 0, attrs.Indent)
	assert.False(t, attrs.Ordered)
	assert.Equal(t, byte('-'), attrs.Bullet)
}

func TestChangeKind_ParagraphToCodeBlock(t *testing.T) {
	tree := testParser().Parse([]byte("echo hi\n"))
	node := tree.Children()[0]

	node.ChangeKind(CodeBlock)

	attrs := node.CodeAttributes()
	require.NotNil(t, attrs)
	assert.Equal(t, 3, attrs.FenceLen)
	assert.True(t, attrs.Closed)
	assert.NoError(t, tree.Validate())
}

func TestApplyFormat_Wrap(t *testing.T) {
	tree := testParser().Parse([]byte("make it strong now\n"))
	node := tree.Children()[0]

	sel, err := tree.ApplyFormat(Selection{NodeID: node.ID(), Start: 8, End: 14}, FormatBold)
	require.NoError(t, err)
	assert.Equal(t, "make it **strong** now", node.Content())
	assert.Equal(t, 10, sel.Start)
	assert.Equal(t, 16, sel.End)
}

func TestApplyFormat_DoubleApplyRestores(t *testing.T) {
	for _, format := range []Format{FormatBold, FormatItalic, FormatStrikethrough, FormatCode} {
		tree := testParser().Parse([]byte("one two three\n"))
		node := tree.Children()[0]

		sel := Selection{NodeID: node.ID(), Start: 4, End: 7}
		sel, err := tree.ApplyFormat(sel, format)
		require.NoError(t, err)

		sel, err = tree.ApplyFormat(sel, format)
		require.NoError(t, err)
		assert.Equal(t, "one two three", node.Content())
		assert.Equal(t, 4, sel.Start)
		assert.Equal(t, 7, sel.End)
	}
}

func TestApplyFormat_StripWhenSelectionIncludesDelimiters(t *testing.T) {
	tree := testParser().Parse([]byte("a **b** c\n"))
	node := tree.Children()[0]

	sel, err := tree.ApplyFormat(Selection{NodeID: node.ID(), Start: 2, End: 7}, FormatBold)
	require.NoError(t, err)
	assert.Equal(t, "a b c", node.Content())
	assert.Equal(t, 2, sel.Start)
	assert.Equal(t, 3, sel.End)
}

func TestApplyFormat_ClampsOutOfRangeOffsets(t *testing.T) {
	tree := testParser().Parse([]byte("short\n"))
	node := tree.Children()[0]

	_, err := tree.ApplyFormat(Selection{NodeID: node.ID(), Start: -3, End: 99}, FormatItalic)
	require.NoError(t, err)
	assert.Equal(t, "*short*", node.Content())
}

func TestApplyFormat_SwapsInvertedRange(t *testing.T) {
	tree := testParser().Parse([]byte("abcdef\n"))
	node := tree.Children()[0]

	_, err := tree.ApplyFormat(Selection{NodeID: node.ID(), Start: 4, End: 1}, FormatCode)
	require.NoError(t, err)
	assert.Equal(t, "a`bcd`ef", node.Content())
}

func TestApplyFormat_UnknownNode(t *testing.T) {
	tree := testParser().Parse([]byte("x\n"))
	_, err := tree.ApplyFormat(Selection{NodeID: "missing"}, FormatBold)
	assert.True(t, errors.Is(err, ErrNodeNotFound))
}
