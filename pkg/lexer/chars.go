package lexer

// Character predicates shared by language analyzers.
// All of them take an int so that 0 can stand for "no character"
// (before the start or past the end of the document).

// IsSpaceChar reports whether ch is a space or one of \t \n \v \f \r.
func IsSpaceChar(ch int) bool {
	return ch == ' ' || (ch >= 0x09 && ch <= 0x0d)
}

// IsEOLChar reports whether ch is \r or \n.
func IsEOLChar(ch int) bool {
	return ch == '\r' || ch == '\n'
}

// IsADigit reports whether ch is an ASCII decimal digit.
func IsADigit(ch int) bool {
	return ch >= '0' && ch <= '9'
}

// IsAlpha reports whether ch is an ASCII letter.
func IsAlpha(ch int) bool {
	return (ch|0x20) >= 'a' && (ch|0x20) <= 'z'
}

// IsAlphaNumeric reports whether ch is an ASCII letter or digit.
func IsAlphaNumeric(ch int) bool {
	return IsADigit(ch) || IsAlpha(ch)
}

// IsIdentifierChar reports whether ch may appear inside an identifier.
func IsIdentifierChar(ch int) bool {
	return IsAlphaNumeric(ch) || ch == '_'
}

// IsHexDigit reports whether ch is an ASCII hexadecimal digit.
func IsHexDigit(ch int) bool {
	return IsADigit(ch) || ((ch|0x20) >= 'a' && (ch|0x20) <= 'f')
}

// IsGraphic reports whether ch is a printable ASCII character other than space.
func IsGraphic(ch int) bool {
	return ch > ' ' && ch < 0x7f
}

// IsExponent reports whether ch introduces a decimal exponent.
func IsExponent(ch int) bool {
	return ch == 'e' || ch == 'E'
}

// IsNumberContinue reports whether a non-identifier character keeps a
// number literal going: a sign after an exponent, or a single dot.
func IsNumberContinue(chPrev, ch, chNext int) bool {
	return ((ch == '+' || ch == '-') && IsExponent(chPrev)) ||
		(ch == '.' && chNext != '.')
}

// IsDecimalNumber reports whether ch continues a decimal number literal.
func IsDecimalNumber(chPrev, ch, chNext int) bool {
	return IsIdentifierChar(ch) || IsNumberContinue(chPrev, ch, chNext)
}

// NextNonSpace returns the first byte in [pos, end) that is not a space
// character, or 0 when there is none.
func NextNonSpace(doc Document, pos, end int) int {
	for ; pos < end; pos++ {
		ch := int(doc.ByteAt(pos))
		if !IsSpaceChar(ch) {
			return ch
		}
	}
	return 0
}
