package yaml

import "github.com/yaklabco/yamllex/pkg/lexer"

// Fold assigns fold levels to the lines of [start, start+length) from the
// line states stored by Colourise. A line's level is its indent; a
// non-empty line is a header when the next non-empty line is indented
// deeper. Blank and comment-only lines take the level of the line after
// them, so trailing comments fold with the block that follows.
func Fold(acc lexer.Accessor, start, length int) {
	docLength := acc.Length()
	maxPos := min(start+length, docLength)
	docLines := acc.LineFromPosition(docLength)
	maxLines := docLines
	if maxPos != docLength {
		maxLines = acc.LineFromPosition(maxPos - 1)
	}

	// Restart from the last structural line so the blank run the range
	// starts in is recomputed as a whole.
	lineCurrent := acc.LineFromPosition(start)
	current := storedState(acc, lineCurrent)
	for lineCurrent > 0 {
		lineCurrent--
		current = storedState(acc, lineCurrent)
		if !current.Kind.Empty() {
			break
		}
	}

	for lineCurrent <= maxLines {
		lineNext := lineCurrent + 1
		next := current
		if lineNext <= docLines {
			next = storedState(acc, lineNext)
		}
		if next.Kind.Empty() {
			next.Indent = current.Indent
		}
		for lineNext < docLines && next.Kind.Empty() {
			lineNext++
			next = storedState(acc, lineNext)
		}

		levelAfterBlank := next.Indent
		levelBeforeBlank := max(current.Indent, levelAfterBlank)

		skipLevel := levelAfterBlank
		for skip := lineNext - 1; skip > lineCurrent; skip-- {
			st := storedState(acc, skip)
			if st.Indent > levelAfterBlank && !st.Kind.Empty() {
				skipLevel = levelBeforeBlank
			}
			acc.SetFoldLevel(skip, lexer.NewFoldLevel(skipLevel, whiteFlag(st)))
		}

		flags := whiteFlag(current)
		if !current.Kind.Empty() && current.Indent < next.Indent {
			flags |= lexer.FoldHeaderFlag
		}
		acc.SetFoldLevel(lineCurrent, lexer.NewFoldLevel(current.Indent, flags))

		current = next
		lineCurrent = lineNext
	}
}

func storedState(acc lexer.Accessor, line int) LineState {
	return DecodeLineState(acc.LineState(line))
}

func whiteFlag(st LineState) lexer.FoldLevel {
	if st.Kind == LineBlank {
		return lexer.FoldWhiteFlag
	}
	return 0
}
