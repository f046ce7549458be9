package yaml

import "github.com/yaklabco/yamllex/pkg/lexer"

// escapeSequence tracks the digits still expected by an escape inside a
// quoted scalar. Counts include the step that consumes the character
// after the backslash.
type escapeSequence struct {
	digitsLeft int
}

// reset starts a new escape whose first character is next.
func (e *escapeSequence) reset(next int) {
	switch next {
	case 'x':
		e.digitsLeft = 3
	case 'u':
		e.digitsLeft = 5
	case 'U':
		e.digitsLeft = 9
	default:
		e.digitsLeft = 1
	}
}

// atEnd consumes ch and reports whether the escape is finished.
func (e *escapeSequence) atEnd(ch int) bool {
	e.digitsLeft--
	return e.digitsLeft <= 0 || !lexer.IsHexDigit(ch)
}
