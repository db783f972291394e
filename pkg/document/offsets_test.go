package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderedText(t *testing.T) {
	cases := map[string]string{
		"plain words":       "plain words",
		"a **b** c":         "a b c",
		"*i* and _j_":       "i and j",
		"run `go build` ok": "run go build ok",
		"~~x~~":             "x",
		"[text](href)":      "text",
		"":                  "",
	}
	for content, want := range cases {
		assert.Equal(t, want, RenderedText(content), content)
	}
}

func TestRawToRenderedOffset(t *testing.T) {
	// raw:      a   * * b * *   c
	// rendered: a   b   c
	content := "a **b** c"
	assert.Equal(t, 0, RawToRenderedOffset(content, 0))
	assert.Equal(t, 1, RawToRenderedOffset(content, 1))
	assert.Equal(t, 2, RawToRenderedOffset(content, 2)) // opening delimiter
	assert.Equal(t, 2, RawToRenderedOffset(content, 4)) // the b itself
	assert.Equal(t, 3, RawToRenderedOffset(content, 5)) // closing delimiter
	assert.Equal(t, 3, RawToRenderedOffset(content, 7)) // the space
	assert.Equal(t, 4, RawToRenderedOffset(content, 8)) // the c
}

func TestRenderedToRawOffset(t *testing.T) {
	content := "a **b** c"
	assert.Equal(t, 0, RenderedToRawOffset(content, 0))
	assert.Equal(t, 1, RenderedToRawOffset(content, 1))
	assert.Equal(t, 4, RenderedToRawOffset(content, 2)) // lands on b
	assert.Equal(t, 7, RenderedToRawOffset(content, 3)) // lands on the space
	assert.Equal(t, 8, RenderedToRawOffset(content, 4))
}

func TestOffsetMapping_RoundTripLandsOnSameCharacter(t *testing.T) {
	content := "a **b** c"
	rendered := RenderedText(content)
	for r := 0; r < len(rendered); r++ {
		raw := RenderedToRawOffset(content, r)
		assert.Equal(t, rendered[r], content[raw], "rendered offset %d", r)
		assert.Equal(t, r, RawToRenderedOffset(content, raw), "rendered offset %d", r)
	}
}

func TestOffsetMapping_CodeSpan(t *testing.T) {
	content := "`x`"
	assert.Equal(t, "x", RenderedText(content))
	assert.Equal(t, 0, RawToRenderedOffset(content, 0))
	assert.Equal(t, 0, RawToRenderedOffset(content, 1))
	// The closing backtick maps past the inner content, never into the
	// delimiter.
	assert.Equal(t, 1, RawToRenderedOffset(content, 2))
	assert.Equal(t, 1, RenderedToRawOffset(content, 0))
}

func TestOffsetMapping_Clamps(t *testing.T) {
	content := "abc"
	assert.Equal(t, 0, RawToRenderedOffset(content, -5))
	assert.Equal(t, 3, RawToRenderedOffset(content, 99))
	assert.Equal(t, 0, RenderedToRawOffset(content, -5))
	assert.Equal(t, 3, RenderedToRawOffset(content, 99))
}

func TestOffsetMapping_InvisibleLinkDestination(t *testing.T) {
	content := "go [here](https://example.com) now"
	rendered := RenderedText(content)
	assert.Equal(t, "go here now", rendered)

	// An offset inside the destination resolves to the rendered position
	// at the end of the link text.
	inside := RawToRenderedOffset(content, 15)
	assert.Equal(t, 7, inside)
}

func TestOffsetMapping_EmptyContent(t *testing.T) {
	assert.Equal(t, 0, RawToRenderedOffset("", 3))
	assert.Equal(t, 0, RenderedToRawOffset("", 3))
}
