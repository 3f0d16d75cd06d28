package lexer

func isIdentStartByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// tryN consumes s when the input continues with it.
func (lx *Lexer) tryN(s string) bool {
	for i := 0; i < len(s); i++ {
		if lx.cursor.PeekAt(uint32(i)) != s[i] {
			return false
		}
	}
	lx.cursor.Off += uint32(len(s))
	return true
}
