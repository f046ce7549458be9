package document

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned for edits outside the buffer.
var ErrOutOfRange = errors.New("edit out of range")

// Replace replaces the oldLen bytes at start with text and invalidates
// the analysis from the edited line onward.
func (b *Buffer) Replace(start, oldLen int, text []byte) error {
	if start < 0 || oldLen < 0 || start+oldLen > len(b.content) {
		return fmt.Errorf("replace %d bytes at %d in %d: %w", oldLen, start, len(b.content), ErrOutOfRange)
	}

	content := make([]byte, 0, len(b.content)-oldLen+len(text))
	content = append(content, b.content[:start]...)
	content = append(content, text...)
	content = append(content, b.content[start+oldLen:]...)

	b.content = content
	b.lines = buildLines(content)
	b.Invalidate(start)
	return nil
}

// Invalidate drops styles, line states and fold levels from the line
// holding start onward. Everything before that line stays valid.
func (b *Buffer) Invalidate(start int) {
	line := b.LineFromPosition(start)
	lineStart := b.LineStart(line)

	b.styles = resize(b.styles, len(b.content), lineStart)
	b.lineStates = resize(b.lineStates, len(b.lines), line)
	b.foldLevels = resize(b.foldLevels, len(b.lines), line)
	b.endStyled = min(b.endStyled, lineStart)
}

// resize returns s with length n, keeping the first keep entries and
// zeroing the rest.
func resize[T any](s []T, n, keep int) []T {
	keep = min(keep, n, len(s))
	if cap(s) < n {
		grown := make([]T, n)
		copy(grown, s[:keep])
		return grown
	}
	s = s[:n]
	clear(s[keep:])
	return s
}
