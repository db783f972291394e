package document

// BuildInlineTree converts a flat inline token stream into a nested segment
// tree. Matched delimiter pairs become typed container nodes; unmatched or
// improperly nested delimiters are re-emitted as literal text with their
// accumulated children spliced into the parent, so no input character is
// ever dropped.
func BuildInlineTree(tokens []InlineToken) []*Node {
	type frame struct {
		open     InlineToken
		children []*Node
	}

	var stack []frame
	var top []*Node

	appendChild := func(n *Node) {
		list := &top
		if len(stack) > 0 {
			list = &stack[len(stack)-1].children
		}
		// Adjacent literal runs merge into one text node.
		if n.kind == Text && len(*list) > 0 {
			last := (*list)[len(*list)-1]
			if last.kind == Text {
				last.content += n.content
				return
			}
		}
		*list = append(*list, n)
	}

	appendText := func(s string) {
		if s == "" {
			return
		}
		n := NewNode(Text)
		n.content = s
		appendChild(n)
	}

	appendAll := func(nodes []*Node) {
		for _, n := range nodes {
			appendChild(n)
		}
	}

	// collapse re-emits the top frame's opening delimiter as literal text
	// and splices its children one level up.
	collapse := func() {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		appendText(f.open.Raw)
		appendAll(f.children)
	}

	finalize := func(f frame, close InlineToken) {
		if len(f.children) == 0 {
			// An empty pair renders as nothing; keep it literal instead.
			appendText(f.open.Raw + close.Raw)
			return
		}
		node := containerNode(f.open)
		for _, c := range f.children {
			node.Append(c)
		}
		appendChild(node)
	}

	for _, tok := range tokens {
		switch {
		case tok.Kind == TokenText:
			appendText(tok.Raw)

		case tok.Kind == TokenCode:
			n := NewNode(InlineCode)
			n.content = tok.Inner
			appendChild(n)

		case tok.Kind == TokenImage:
			n := NewNode(InlineImage)
			n.attrs = &ImageAttributes{Alt: tok.Inner, URL: tok.Dest}
			appendChild(n)

		case tok.IsOpen():
			stack = append(stack, frame{open: tok})

		case tok.IsClose():
			key := tok.closeKey()
			found := -1
			for j := len(stack) - 1; j >= 0; j-- {
				if stack[j].open.closeKey() == key {
					found = j
					break
				}
			}
			if found < 0 {
				appendText(tok.Raw)
				continue
			}
			for len(stack) > found+1 {
				collapse()
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			finalize(f, tok)
		}
	}

	for len(stack) > 0 {
		collapse()
	}

	return top
}

func containerNode(open InlineToken) *Node {
	switch open.Kind {
	case TokenBoldOpen:
		return NewNode(Bold)
	case TokenItalicOpen:
		n := NewNode(Italic)
		n.attrs = &EmphasisAttributes{Delimiter: open.Raw}
		return n
	case TokenStrikeOpen:
		return NewNode(Strikethrough)
	case TokenLinkOpen:
		n := NewNode(Link)
		n.attrs = &LinkAttributes{Href: open.Dest}
		return n
	case TokenHTMLOpen:
		n := NewNode(Kind(open.Tag))
		n.attrs = &HTMLAttributes{TagName: open.Tag, OpeningTag: open.Raw, ClosingTag: "</" + open.Tag + ">"}
		return n
	}
	n := NewNode(Text)
	n.content = open.Raw
	return n
}
