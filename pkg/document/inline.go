package document

import (
	"strings"
)

// InlineTokenKind identifies one token of a node's raw content.
type InlineTokenKind int

const (
	TokenText InlineTokenKind = iota
	TokenBoldOpen
	TokenBoldClose
	TokenItalicOpen
	TokenItalicClose
	TokenStrikeOpen
	TokenStrikeClose
	TokenCode
	TokenImage
	TokenLinkOpen
	TokenLinkClose
	TokenHTMLOpen
	TokenHTMLClose
)

// InlineToken is the result of scanning a slice of a node's raw content.
// Raw always holds the exact source slice, so re-emitting unmatched tokens
// as literal text loses nothing.
type InlineToken struct {
	Kind InlineTokenKind
	Pos  int
	Raw  string
	// Inner is the content of a code span or the alt text of an image.
	Inner string
	// Dest is the link href or image source.
	Dest string
	// Tag is the inline HTML tag name.
	Tag string
}

// IsOpen reports whether the token opens an inline container.
func (t InlineToken) IsOpen() bool {
	switch t.Kind {
	case TokenBoldOpen, TokenItalicOpen, TokenStrikeOpen, TokenLinkOpen, TokenHTMLOpen:
		return true
	}
	return false
}

// IsClose reports whether the token closes an inline container.
func (t InlineToken) IsClose() bool {
	switch t.Kind {
	case TokenBoldClose, TokenItalicClose, TokenStrikeClose, TokenLinkClose, TokenHTMLClose:
		return true
	}
	return false
}

// closeKey is the pairing key shared by an open token and the close token
// that can match it. HTML tags pair per tag name.
func (t InlineToken) closeKey() string {
	switch t.Kind {
	case TokenBoldOpen, TokenBoldClose:
		return "bold"
	case TokenItalicOpen, TokenItalicClose:
		return "italic" + t.Raw
	case TokenStrikeOpen, TokenStrikeClose:
		return "strike"
	case TokenLinkOpen, TokenLinkClose:
		return "link"
	case TokenHTMLOpen, TokenHTMLClose:
		return "html:" + t.Tag
	}
	return ""
}

// inlineHTMLTags is the fixed whitelist of inline tag names. Anything else
// stays literal text.
var inlineHTMLTags = map[string]bool{
	"a": true, "b": true, "i": true, "u": true, "s": true,
	"em": true, "strong": true, "del": true, "mark": true,
	"code": true, "kbd": true, "sub": true, "sup": true, "span": true,
}

type inlineTokenizer struct {
	src    string
	tokens []InlineToken
	opens  []string
}

// TokenizeInline scans a single node's raw content into a flat token
// stream. The first occurrence of a delimiter kind always opens; a later
// occurrence closes when an unmatched open of the same kind exists, with
// delimiter runs closing the innermost open first.
func TokenizeInline(content string) []InlineToken {
	t := &inlineTokenizer{src: content}
	t.run(0)
	return t.tokens
}

func (t *inlineTokenizer) has(key string) bool {
	for _, k := range t.opens {
		if k == key {
			return true
		}
	}
	return false
}

// nearest returns whichever of the given keys sits closest to the top of
// the open stack, or "" when none is open.
func (t *inlineTokenizer) nearest(keys ...string) string {
	for i := len(t.opens) - 1; i >= 0; i-- {
		for _, k := range keys {
			if t.opens[i] == k {
				return k
			}
		}
	}
	return ""
}

func (t *inlineTokenizer) push(key string) {
	t.opens = append(t.opens, key)
}

func (t *inlineTokenizer) pop(key string) {
	for i := len(t.opens) - 1; i >= 0; i-- {
		if t.opens[i] == key {
			t.opens = append(t.opens[:i], t.opens[i+1:]...)
			return
		}
	}
}

func (t *inlineTokenizer) emit(tok InlineToken) {
	t.tokens = append(t.tokens, tok)
}

func runLen(s string, i int, b byte) int {
	j := i
	for j < len(s) && s[j] == b {
		j++
	}
	return j - i
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// run scans t.src, offsetting every token position by base. Link text is
// scanned by a nested tokenizer so emphasis cannot leak across the link
// boundary.
func (t *inlineTokenizer) run(base int) {
	s := t.src
	textStart := -1

	flush := func(end int) {
		if textStart >= 0 {
			t.emit(InlineToken{Kind: TokenText, Pos: base + textStart, Raw: s[textStart:end]})
			textStart = -1
		}
	}
	literal := func(i int) {
		if textStart < 0 {
			textStart = i
		}
	}

	i := 0
	for i < len(s) {
		switch s[i] {
		case '`':
			end := strings.IndexByte(s[i+1:], '`')
			if end < 0 {
				literal(i)
				i++
				continue
			}
			flush(i)
			j := i + 1 + end
			t.emit(InlineToken{Kind: TokenCode, Pos: base + i, Raw: s[i : j+1], Inner: s[i+1 : j]})
			i = j + 1

		case '*':
			r := runLen(s, i, '*')
			flush(i)
			pos := i
			for r > 0 {
				switch t.nearest("italic*", "bold") {
				case "italic*":
					t.emit(InlineToken{Kind: TokenItalicClose, Pos: base + pos, Raw: "*"})
					t.pop("italic*")
					pos, r = pos+1, r-1
				case "bold":
					if r >= 2 {
						t.emit(InlineToken{Kind: TokenBoldClose, Pos: base + pos, Raw: "**"})
						t.pop("bold")
						pos, r = pos+2, r-2
						continue
					}
					t.emit(InlineToken{Kind: TokenItalicOpen, Pos: base + pos, Raw: "*"})
					t.push("italic*")
					pos, r = pos+1, r-1
				default:
					if r >= 2 {
						t.emit(InlineToken{Kind: TokenBoldOpen, Pos: base + pos, Raw: "**"})
						t.push("bold")
						pos, r = pos+2, r-2
						continue
					}
					t.emit(InlineToken{Kind: TokenItalicOpen, Pos: base + pos, Raw: "*"})
					t.push("italic*")
					pos, r = pos+1, r-1
				}
			}
			i = pos

		case '_':
			prevBoundary := i == 0 || !isWordChar(s[i-1])
			nextBoundary := i+1 == len(s) || !isWordChar(s[i+1])
			prevNonSpace := i > 0 && s[i-1] != ' ' && s[i-1] != '\t'
			nextNonSpace := i+1 < len(s) && s[i+1] != ' ' && s[i+1] != '\t'

			switch {
			case t.has("italic_") && prevNonSpace && nextBoundary:
				flush(i)
				t.emit(InlineToken{Kind: TokenItalicClose, Pos: base + i, Raw: "_"})
				t.pop("italic_")
				i++
			case prevBoundary && nextNonSpace:
				flush(i)
				t.emit(InlineToken{Kind: TokenItalicOpen, Pos: base + i, Raw: "_"})
				t.push("italic_")
				i++
			default:
				literal(i)
				i++
			}

		case '~':
			r := runLen(s, i, '~')
			if r < 2 {
				literal(i)
				i++
				continue
			}
			flush(i)
			pos := i
			for r >= 2 {
				if t.has("strike") {
					t.emit(InlineToken{Kind: TokenStrikeClose, Pos: base + pos, Raw: "~~"})
					t.pop("strike")
				} else {
					t.emit(InlineToken{Kind: TokenStrikeOpen, Pos: base + pos, Raw: "~~"})
					t.push("strike")
				}
				pos, r = pos+2, r-2
			}
			i = pos
			if r == 1 {
				literal(i)
				i++
			}

		case '!':
			if i+1 >= len(s) || s[i+1] != '[' {
				literal(i)
				i++
				continue
			}
			alt, dest, end, ok := parseLinkBody(s, i+1)
			if !ok {
				literal(i)
				i++
				continue
			}
			flush(i)
			t.emit(InlineToken{Kind: TokenImage, Pos: base + i, Raw: s[i:end], Inner: alt, Dest: dest})
			i = end

		case '[':
			text, dest, end, ok := parseLinkBody(s, i)
			if !ok {
				literal(i)
				i++
				continue
			}
			flush(i)
			t.emit(InlineToken{Kind: TokenLinkOpen, Pos: base + i, Raw: "[", Dest: dest})
			inner := &inlineTokenizer{src: text}
			inner.run(base + i + 1)
			t.tokens = append(t.tokens, inner.tokens...)
			closePos := i + 1 + len(text)
			t.emit(InlineToken{Kind: TokenLinkClose, Pos: base + closePos, Raw: s[closePos:end], Dest: dest})
			i = end

		case '<':
			tag, raw, closing, ok := parseInlineTag(s, i)
			if !ok {
				literal(i)
				i++
				continue
			}
			flush(i)
			kind := TokenHTMLOpen
			if closing {
				kind = TokenHTMLClose
			}
			t.emit(InlineToken{Kind: kind, Pos: base + i, Raw: raw, Tag: tag})
			i += len(raw)

		default:
			literal(i)
			i++
		}
	}
	flush(len(s))
}

// parseLinkBody parses "[text](dest)" starting at the opening bracket.
// It returns the text, the destination, and the index one past the closing
// parenthesis. Nested emphasis inside text is the caller's business.
func parseLinkBody(s string, open int) (text, dest string, end int, ok bool) {
	sep := strings.Index(s[open+1:], "](")
	if sep < 0 {
		return "", "", 0, false
	}
	sep += open + 1
	close := strings.IndexByte(s[sep+2:], ')')
	if close < 0 {
		return "", "", 0, false
	}
	close += sep + 2
	return s[open+1 : sep], s[sep+2 : close], close + 1, true
}

// parseInlineTag parses an opening or closing inline HTML tag at i, which
// must point at '<'. Only whitelisted tag names qualify; anything else is
// literal text.
func parseInlineTag(s string, i int) (tag, raw string, closing bool, ok bool) {
	j := i + 1
	if j < len(s) && s[j] == '/' {
		closing = true
		j++
	}
	nameStart := j
	for j < len(s) && (s[j] >= 'a' && s[j] <= 'z' || s[j] >= 'A' && s[j] <= 'Z' || s[j] >= '0' && s[j] <= '9') {
		j++
	}
	tag = strings.ToLower(s[nameStart:j])
	if tag == "" || !inlineHTMLTags[tag] {
		return "", "", false, false
	}
	gt := strings.IndexByte(s[j:], '>')
	if gt < 0 {
		return "", "", false, false
	}
	nl := strings.IndexByte(s[j:j+gt], '\n')
	if nl >= 0 {
		return "", "", false, false
	}
	if closing && strings.TrimSpace(s[j:j+gt]) != "" {
		return "", "", false, false
	}
	return tag, s[i : j+gt+1], closing, true
}
