package document

import "strings"

// The offset mapper replays the inline tokenizer over a node's raw content.
// Text tokens map 1:1 into the rendered text; code spans map their inner
// content with the opening backtick skipped and the closing backtick
// excluded; every other token is invisible in the rendered view and
// contributes zero rendered length. Offsets outside the scanned range clamp
// instead of failing.

// RawToRenderedOffset translates a character offset in raw markdown content
// to the corresponding offset in the rendered, delimiter-free text.
func RawToRenderedOffset(content string, rawOffset int) int {
	if rawOffset <= 0 {
		return 0
	}
	rendered := 0
	for _, tok := range TokenizeInline(content) {
		rawEnd := tok.Pos + len(tok.Raw)
		switch tok.Kind {
		case TokenText:
			if rawOffset < rawEnd {
				return rendered + (rawOffset - tok.Pos)
			}
			rendered += len(tok.Raw)
		case TokenCode:
			if rawOffset < rawEnd {
				inner := rawOffset - tok.Pos - 1
				if inner < 0 {
					inner = 0
				}
				if inner > len(tok.Inner) {
					inner = len(tok.Inner)
				}
				return rendered + inner
			}
			rendered += len(tok.Inner)
		default:
			if rawOffset < rawEnd {
				return rendered
			}
		}
	}
	return rendered
}

// RenderedToRawOffset translates an offset in the rendered text back to the
// raw markdown content offset. It is the structural inverse of
// RawToRenderedOffset over visible characters.
func RenderedToRawOffset(content string, renderedOffset int) int {
	if renderedOffset <= 0 {
		renderedOffset = 0
	}
	rendered := 0
	rawEnd := 0
	for _, tok := range TokenizeInline(content) {
		rawEnd = tok.Pos + len(tok.Raw)
		switch tok.Kind {
		case TokenText:
			if renderedOffset < rendered+len(tok.Raw) {
				return tok.Pos + (renderedOffset - rendered)
			}
			rendered += len(tok.Raw)
		case TokenCode:
			if renderedOffset < rendered+len(tok.Inner) {
				return tok.Pos + 1 + (renderedOffset - rendered)
			}
			rendered += len(tok.Inner)
		}
	}
	return rawEnd
}

// RenderedText returns the delimiter-stripped text of raw content: what the
// editing surface displays and what rendered offsets index into.
func RenderedText(content string) string {
	var b strings.Builder
	for _, tok := range TokenizeInline(content) {
		switch tok.Kind {
		case TokenText:
			b.WriteString(tok.Raw)
		case TokenCode:
			b.WriteString(tok.Inner)
		}
	}
	return b.String()
}
