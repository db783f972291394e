package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func matchedFor(content string) map[int]bool {
	return MatchedTokenIndices(TokenizeInline(content))
}

func TestMatchedTokenIndices_SimplePair(t *testing.T) {
	// text, bold-open, text, bold-close, text
	matched := matchedFor("a **b** c")
	assert.Equal(t, map[int]bool{1: true, 3: true}, matched)
}

func TestMatchedTokenIndices_NestedPairs(t *testing.T) {
	// bold-open, italic-open, text, italic-close, bold-close
	matched := matchedFor("***word***")
	assert.Equal(t, map[int]bool{0: true, 1: true, 3: true, 4: true}, matched)
}

func TestMatchedTokenIndices_TrailingOpenIsUnmatched(t *testing.T) {
	// italic-open, text, italic-close, italic-open
	matched := matchedFor("*a**")
	assert.Equal(t, map[int]bool{0: true, 2: true}, matched)
}

func TestMatchedTokenIndices_ImproperNestingDropsInnerOpen(t *testing.T) {
	// bold-open, text, strike-open, text, bold-close, text, strike-close:
	// closing bold pops through the strike open, which never matches.
	matched := matchedFor("**a ~~b** c~~")
	assert.Equal(t, map[int]bool{0: true, 4: true}, matched)
}

func TestMatchedTokenIndices_UnderscoreAndAsteriskDoNotPair(t *testing.T) {
	// italic-open(_), text, ... the asterisk run closes nothing of its own
	// kind and the underscore stays open.
	tokens := TokenizeInline("_mixed* words")
	matched := MatchedTokenIndices(tokens)
	assert.Empty(t, matched)
}

func TestMatchedTokenIndices_HTMLTagsPairByName(t *testing.T) {
	tokens := TokenizeInline("<em>a</strong>b</em>")
	matched := MatchedTokenIndices(tokens)
	// <em> ... </em> match; the stray </strong> is skipped without
	// disturbing the stack.
	open, close := -1, -1
	for i, tok := range tokens {
		if tok.Kind == TokenHTMLOpen {
			open = i
		}
		if tok.Kind == TokenHTMLClose && tok.Tag == "em" {
			close = i
		}
	}
	assert.True(t, matched[open])
	assert.True(t, matched[close])
	assert.Len(t, matched, 2)
}

func TestMatchedTokenIndices_NoTokens(t *testing.T) {
	assert.Empty(t, matchedFor("plain text"))
	assert.Empty(t, matchedFor(""))
}
