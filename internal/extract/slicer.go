package extract

// MatchingBracket returns the offset of the ']' that closes a group whose '['
// was consumed just before start. Nested groups are skipped. If the group is
// never closed the end-of-text offset is returned.
func MatchingBracket(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return len(text)
}
