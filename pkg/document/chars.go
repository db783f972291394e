package document

// CharKind classifies a single character of raw markdown. The block parser
// never inspects bytes directly; it works on the classified stream.
type CharKind int

const (
	CharText CharKind = iota // coalesced run of non-structural characters
	CharHash
	CharGreater
	CharDash
	CharAsterisk
	CharUnderscore
	CharTilde
	CharBacktick
	CharPipe
	CharBang
	CharBracketOpen
	CharBracketClose
	CharParenOpen
	CharParenClose
	CharAngleOpen
	CharSlash
	CharDigit
	CharDot
	CharPlus
	CharColon
	CharNewline
	CharSpace
	CharTab
	CharEOF
)

// CharToken is one classified span of the input: a single structural
// character, or a maximal run of plain text.
type CharToken struct {
	Kind  CharKind
	Pos   int
	Value string
}

var charKinds = map[byte]CharKind{
	'#':  CharHash,
	'>':  CharGreater,
	'-':  CharDash,
	'*':  CharAsterisk,
	'_':  CharUnderscore,
	'~':  CharTilde,
	'`':  CharBacktick,
	'|':  CharPipe,
	'!':  CharBang,
	'[':  CharBracketOpen,
	']':  CharBracketClose,
	'(':  CharParenOpen,
	')':  CharParenClose,
	'<':  CharAngleOpen,
	'/':  CharSlash,
	'.':  CharDot,
	'+':  CharPlus,
	':':  CharColon,
	'\n': CharNewline,
	' ':  CharSpace,
	'\t': CharTab,
}

func classifyByte(b byte) (CharKind, bool) {
	if b >= '0' && b <= '9' {
		return CharDigit, true
	}
	k, ok := charKinds[b]
	return k, ok
}

// ClassifyChars scans s into a flat token stream. Consecutive characters
// with no structural meaning coalesce into a single CharText token. The
// stream always ends with a CharEOF marker.
func ClassifyChars(s string) []CharToken {
	var tokens []CharToken
	textStart := -1

	flush := func(end int) {
		if textStart >= 0 {
			tokens = append(tokens, CharToken{Kind: CharText, Pos: textStart, Value: s[textStart:end]})
			textStart = -1
		}
	}

	for i := 0; i < len(s); i++ {
		kind, ok := classifyByte(s[i])
		if !ok {
			if textStart < 0 {
				textStart = i
			}
			continue
		}
		flush(i)
		tokens = append(tokens, CharToken{Kind: kind, Pos: i, Value: s[i : i+1]})
	}
	flush(len(s))

	return append(tokens, CharToken{Kind: CharEOF, Pos: len(s)})
}
