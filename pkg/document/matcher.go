package document

// MatchedTokenIndices pairs open and close tokens with an explicit stack
// and returns the set of token indices that belong to a genuinely matched
// pair. The inline tree builder and the offset mapper both rely on this
// classification agreeing with theirs: an index absent from the set is
// literal text in the built tree.
func MatchedTokenIndices(tokens []InlineToken) map[int]bool {
	matched := make(map[int]bool)

	type frame struct {
		key   string
		index int
	}
	var stack []frame

	for i, tok := range tokens {
		switch {
		case tok.IsOpen():
			stack = append(stack, frame{key: tok.closeKey(), index: i})
		case tok.IsClose():
			key := tok.closeKey()
			found := -1
			for j := len(stack) - 1; j >= 0; j-- {
				if stack[j].key == key {
					found = j
					break
				}
			}
			if found < 0 {
				continue
			}
			// Opens above the found frame are improperly nested and stay
			// unmatched, exactly as the tree builder collapses them.
			matched[stack[found].index] = true
			matched[i] = true
			stack = stack[:found]
		}
	}

	return matched
}
