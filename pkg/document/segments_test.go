package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInline(content string) []*Node {
	return BuildInlineTree(TokenizeInline(content))
}

func TestBuildInlineTree_BoldItalicNesting(t *testing.T) {
	nodes := buildInline("***word***")
	require.Len(t, nodes, 1)

	bold := nodes[0]
	assert.Equal(t, Bold, bold.Kind())
	require.Len(t, bold.Children(), 1)

	italic := bold.Children()[0]
	assert.Equal(t, Italic, italic.Kind())
	require.Len(t, italic.Children(), 1)
	assert.Equal(t, Text, italic.Children()[0].Kind())
	assert.Equal(t, "word", italic.Children()[0].Content())
}

func TestBuildInlineTree_MixedContent(t *testing.T) {
	nodes := buildInline("a **b *c* d** e")
	require.Len(t, nodes, 3)
	assert.Equal(t, "a ", nodes[0].Content())

	bold := nodes[1]
	require.Equal(t, Bold, bold.Kind())
	require.Len(t, bold.Children(), 3)
	assert.Equal(t, "b ", bold.Children()[0].Content())
	assert.Equal(t, Italic, bold.Children()[1].Kind())
	assert.Equal(t, " d", bold.Children()[2].Content())

	assert.Equal(t, " e", nodes[2].Content())
}

func TestBuildInlineTree_ItalicDelimiterPreserved(t *testing.T) {
	star := buildInline("*a*")
	require.Len(t, star, 1)
	require.NotNil(t, star[0].EmphasisAttributes())
	assert.Equal(t, "*", star[0].EmphasisAttributes().Delimiter)
	assert.Equal(t, "*a*", InlineMarkdown(star))

	under := buildInline("_a_")
	require.Len(t, under, 1)
	require.NotNil(t, under[0].EmphasisAttributes())
	assert.Equal(t, "_", under[0].EmphasisAttributes().Delimiter)
	assert.Equal(t, "_a_", InlineMarkdown(under))
}

func TestBuildInlineTree_UnmatchedDelimiterDegradesToText(t *testing.T) {
	nodes := buildInline("**unbalanced*")
	require.Len(t, nodes, 1)
	assert.Equal(t, Text, nodes[0].Kind())
	assert.Equal(t, "**unbalanced*", nodes[0].Content())
}

func TestBuildInlineTree_UnmatchedHTMLTagDegradesToText(t *testing.T) {
	nodes := buildInline("<strong> rest")
	require.Len(t, nodes, 1)
	assert.Equal(t, Text, nodes[0].Kind())
	assert.Equal(t, "<strong> rest", nodes[0].Content())
}

func TestBuildInlineTree_EmptyPairStaysLiteral(t *testing.T) {
	nodes := buildInline("a **** b")
	require.Len(t, nodes, 1)
	assert.Equal(t, Text, nodes[0].Kind())
	assert.Equal(t, "a **** b", nodes[0].Content())
}

func TestBuildInlineTree_ImproperNestingCollapsesInner(t *testing.T) {
	nodes := buildInline("**a ~~b** c~~")
	require.Len(t, nodes, 2)

	bold := nodes[0]
	require.Equal(t, Bold, bold.Kind())
	require.Len(t, bold.Children(), 1)
	assert.Equal(t, "a ~~b", bold.Children()[0].Content())

	assert.Equal(t, Text, nodes[1].Kind())
	assert.Equal(t, " c~~", nodes[1].Content())
}

func TestBuildInlineTree_Link(t *testing.T) {
	nodes := buildInline("see [the **docs**](https://example.com)")
	require.Len(t, nodes, 2)

	link := nodes[1]
	require.Equal(t, Link, link.Kind())
	require.NotNil(t, link.LinkAttributes())
	assert.Equal(t, "https://example.com", link.LinkAttributes().Href)
	require.Len(t, link.Children(), 2)
	assert.Equal(t, "the ", link.Children()[0].Content())
	assert.Equal(t, Bold, link.Children()[1].Kind())
}

func TestBuildInlineTree_CodeAndImageLeaves(t *testing.T) {
	nodes := buildInline("run `make` then ![icon](i.png)")
	require.Len(t, nodes, 4)

	code := nodes[1]
	assert.Equal(t, InlineCode, code.Kind())
	assert.Equal(t, "make", code.Content())

	image := nodes[3]
	assert.Equal(t, InlineImage, image.Kind())
	require.NotNil(t, image.ImageAttributes())
	assert.Equal(t, "icon", image.ImageAttributes().Alt)
	assert.Equal(t, "i.png", image.ImageAttributes().URL)
}

func TestBuildInlineTree_HTMLSpan(t *testing.T) {
	nodes := buildInline("press <kbd>ctrl</kbd> now")
	require.Len(t, nodes, 3)

	span := nodes[1]
	assert.Equal(t, Kind("kbd"), span.Kind())
	require.NotNil(t, span.HTMLAttributes())
	assert.Equal(t, "<kbd>", span.HTMLAttributes().OpeningTag)
	assert.Equal(t, "</kbd>", span.HTMLAttributes().ClosingTag)
	require.Len(t, span.Children(), 1)
	assert.Equal(t, "ctrl", span.Children()[0].Content())
}

func TestBuildInlineTree_RoundTripsThroughInlineMarkdown(t *testing.T) {
	inputs := []string{
		"a **b** `c` _d_ ~~e~~ [f](g) ![h](i) <em>j</em>",
		"***word***",
		"**a ~~b** c~~",
		"a **** b",
		"plain",
	}
	for _, input := range inputs {
		assert.Equal(t, input, InlineMarkdown(buildInline(input)), input)
	}
}
