package yaml

import "github.com/yaklabco/yamllex/pkg/lexer"

// IsFlowIndicator reports whether ch is one of , [ ] { }.
func IsFlowIndicator(ch int) bool {
	return ch == ',' || ch == '[' || ch == ']' || ch == '{' || ch == '}'
}

// IsOperatorChar reports whether ch is a flow indicator, @ or `.
func IsOperatorChar(ch int) bool {
	return IsFlowIndicator(ch) || ch == '@' || ch == '`'
}

// IsAnchorChar reports whether ch may appear in an anchor or alias name:
// any non-ASCII byte, or printable ASCII other than a flow indicator.
func IsAnchorChar(ch int) bool {
	return ch > 0x7f || (lexer.IsGraphic(ch) && !IsFlowIndicator(ch))
}

// IsDateTimePunct reports whether ch keeps a date/time literal going:
// - : or . before a digit, or a space before - or a digit, as in
// "2001-12-14 21:59:43.10 -5".
func IsDateTimePunct(ch, chNext int) bool {
	return ((ch == '-' || ch == ':' || ch == '.') && lexer.IsADigit(chNext)) ||
		(ch == ' ' && (chNext == '-' || lexer.IsADigit(chNext)))
}

// uriChars is the ns-uri-char set allowed in tags.
//
//nolint:gochecknoglobals // Read-only lookup table.
var uriChars = func() (set [128]bool) {
	for ch := range 128 {
		set[ch] = lexer.IsAlphaNumeric(ch)
	}
	for _, ch := range "%-#;/?:@&=+$,_.!~*'()[]" {
		set[ch] = true
	}
	return set
}()

// IsURIChar reports whether ch may appear in a tag.
func IsURIChar(ch int) bool {
	return ch >= 0 && ch < len(uriChars) && uriChars[ch]
}
