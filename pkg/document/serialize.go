package document

import (
	"strconv"
	"strings"
)

// Markdown reconstructs the exact source of the whole document, including
// frontmatter, blank-line runs, and the detected line terminator. It is the
// precise inverse of Parse for every construct Parse recognizes.
func (t *Tree) Markdown() []byte {
	var b strings.Builder
	b.WriteString(t.frontmatterRaw)
	writeBreaks(&b, t.leadingBreaks)
	for _, node := range t.children {
		writeBlock(&b, node)
	}
	out := b.String()
	if t.lineBreak == "\r\n" {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	return []byte(out)
}

// Markdown reconstructs this node's exact markdown, without the line breaks
// that follow it in the document.
func (n *Node) Markdown() string {
	var b strings.Builder
	writeBlockBody(&b, n)
	return b.String()
}

func writeBreaks(b *strings.Builder, count int) {
	for i := 0; i < count; i++ {
		b.WriteByte('\n')
	}
}

func writeBlock(b *strings.Builder, n *Node) {
	writeBlockBody(b, n)
	writeBreaks(b, n.trailingBreaks)
}

func writeBlockBody(b *strings.Builder, n *Node) {
	switch n.kind {
	case Heading1, Heading2, Heading3, Heading4, Heading5, Heading6:
		b.WriteString(strings.Repeat("#", HeadingLevel(n.kind)))
		b.WriteByte(' ')
		b.WriteString(n.content)

	case Paragraph, HorizontalRule, Table:
		b.WriteString(n.content)

	case Blockquote:
		for i, line := range strings.Split(n.content, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString("> ")
			b.WriteString(line)
		}

	case CodeBlock:
		attrs := n.CodeAttributes()
		b.WriteString(strings.Repeat("`", attrs.FenceLen))
		b.WriteString(attrs.Language)
		if attrs.Closed || n.content != "" {
			b.WriteByte('\n')
		}
		b.WriteString(n.content)
		if attrs.Closed {
			b.WriteString(strings.Repeat("`", attrs.CloseLen))
		}

	case ListItem:
		attrs := n.ListItemAttributes()
		b.WriteString(strings.Repeat(" ", attrs.Indent))
		if attrs.Ordered {
			b.WriteString(strconv.Itoa(attrs.Number))
			b.WriteString(". ")
		} else {
			bullet := attrs.Bullet
			if bullet == 0 {
				bullet = '-'
			}
			b.WriteByte(bullet)
			b.WriteByte(' ')
		}
		if attrs.Task {
			if attrs.Checked {
				b.WriteString("[x] ")
			} else {
				b.WriteString("[ ] ")
			}
		}
		b.WriteString(n.content)

	case Image:
		attrs := n.ImageAttributes()
		b.WriteString("![")
		b.WriteString(attrs.Alt)
		b.WriteString("](")
		b.WriteString(attrs.URL)
		b.WriteByte(')')

	case HTMLBlock:
		attrs := n.HTMLAttributes()
		b.WriteString(attrs.OpeningTag)
		if attrs.SelfClosed {
			return
		}
		writeBreaks(b, attrs.InnerBreaks)
		for _, child := range n.children {
			writeBlock(b, child)
		}
		b.WriteString(attrs.ClosingTag)

	default:
		writeInline(b, n)
	}
}

// InlineMarkdown serializes a segment sequence produced by BuildInlineTree
// back into raw markdown content.
func InlineMarkdown(nodes []*Node) string {
	var b strings.Builder
	for _, n := range nodes {
		writeInline(&b, n)
	}
	return b.String()
}

func writeInline(b *strings.Builder, n *Node) {
	switch n.kind {
	case Text:
		b.WriteString(n.content)

	case Bold:
		b.WriteString("**")
		writeInlineChildren(b, n)
		b.WriteString("**")

	case Italic:
		delim := "*"
		if attrs := n.EmphasisAttributes(); attrs != nil && attrs.Delimiter != "" {
			delim = attrs.Delimiter
		}
		b.WriteString(delim)
		writeInlineChildren(b, n)
		b.WriteString(delim)

	case Strikethrough:
		b.WriteString("~~")
		writeInlineChildren(b, n)
		b.WriteString("~~")

	case Link:
		b.WriteByte('[')
		writeInlineChildren(b, n)
		b.WriteString("](")
		b.WriteString(n.LinkAttributes().Href)
		b.WriteByte(')')

	case InlineCode:
		b.WriteByte('`')
		b.WriteString(n.content)
		b.WriteByte('`')

	case InlineImage:
		attrs := n.ImageAttributes()
		b.WriteString("![")
		b.WriteString(attrs.Alt)
		b.WriteString("](")
		b.WriteString(attrs.URL)
		b.WriteByte(')')

	default:
		// Whitelisted inline HTML span: the kind is the tag name.
		if attrs := n.HTMLAttributes(); attrs != nil {
			b.WriteString(attrs.OpeningTag)
			writeInlineChildren(b, n)
			b.WriteString(attrs.ClosingTag)
			return
		}
		b.WriteString(n.content)
	}
}

func writeInlineChildren(b *strings.Builder, n *Node) {
	for _, child := range n.children {
		writeInline(b, child)
	}
}
