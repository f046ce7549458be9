package document

import "sort"

// LineInfo locates one line of the buffer.
type LineInfo struct {
	// StartOffset is the byte index of the first byte of the line.
	StartOffset int

	// NewlineStart is the byte index where the line terminator begins
	// (\r\n or \n), or EndOffset when the line has none.
	NewlineStart int

	// EndOffset is the byte index just past the line terminator.
	EndOffset int
}

// buildLines indexes content by line. It handles both LF and CRLF line
// endings. There is always at least one line, and text ending in a
// newline has an empty last line.
func buildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, 1+len(content)/32)
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	return append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})
}

// LineCount returns the number of lines. It is at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineStart returns the offset of the first byte of line. Lines before
// the first clamp to 0 and lines past the last return Length().
func (b *Buffer) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(b.lines) {
		return len(b.content)
	}
	return b.lines[line].StartOffset
}

// LineFromPosition returns the 0-based line holding pos. Offsets past the
// end map to the last line.
func (b *Buffer) LineFromPosition(pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(b.content) {
		return len(b.lines) - 1
	}
	return sort.Search(len(b.lines), func(i int) bool {
		return b.lines[i].EndOffset > pos
	})
}

// Line returns the text of line without its terminator, or nil when the
// line is out of range.
func (b *Buffer) Line(line int) []byte {
	if line < 0 || line >= len(b.lines) {
		return nil
	}
	info := b.lines[line]
	return b.content[info.StartOffset:info.NewlineStart]
}

// LineInfo returns the location of line.
func (b *Buffer) LineInfo(line int) (LineInfo, bool) {
	if line < 0 || line >= len(b.lines) {
		return LineInfo{}, false
	}
	return b.lines[line], true
}
