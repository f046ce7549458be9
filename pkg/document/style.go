package document

import "github.com/yaklabco/yamllex/pkg/lexer"

// Rescan describes the work done by one EnsureStyled call.
type Rescan struct {
	// FromLine is the first line scanned.
	FromLine int

	// Lines is the number of lines scanned. Zero when styling was
	// already valid.
	Lines int
}

// EnsureStyled brings styling up to date through the end of the line
// holding pos. The analyzer resumes at the first unstyled line from the
// style of the byte before it and the state of the line before it; fold
// levels of the rescanned lines are recomputed afterwards.
func (b *Buffer) EnsureStyled(pos int) Rescan {
	pos = max(0, min(pos, len(b.content)))
	if b.endStyled > pos || (b.endStyled == len(b.content) && b.endStyled > 0) {
		return Rescan{FromLine: b.LineFromPosition(b.endStyled)}
	}

	fromLine := b.LineFromPosition(b.endStyled)
	start := b.LineStart(fromLine)
	lastLine := b.LineFromPosition(pos)
	end := b.LineStart(lastLine + 1)

	var initStyle lexer.Style
	if start > 0 {
		initStyle = b.styles[start-1]
	}

	b.module.Lex(b, start, end-start, initStyle, b.keywords)
	b.endStyled = end

	if b.module.Fold != nil {
		b.module.Fold(b, start, end-start)
	}

	return Rescan{FromLine: fromLine, Lines: lastLine - fromLine + 1}
}

// Restyle discards all analysis and rescans the whole document.
func (b *Buffer) Restyle() Rescan {
	b.Invalidate(0)
	return b.EnsureStyled(len(b.content))
}

// Spans returns the styled part of the buffer as contiguous spans.
func (b *Buffer) Spans() []lexer.Span {
	var sink lexer.SpanSink
	for pos := 0; pos < b.endStyled; pos++ {
		sink.ColourTo(pos, pos+1, b.styles[pos])
	}
	return sink.Spans()
}

// LineSpans returns the spans of line, clipped to the line including its
// terminator.
func (b *Buffer) LineSpans(line int) []lexer.Span {
	info, ok := b.LineInfo(line)
	if !ok {
		return nil
	}
	end := min(info.EndOffset, b.endStyled)

	var sink lexer.SpanSink
	for pos := info.StartOffset; pos < end; pos++ {
		sink.ColourTo(pos, pos+1, b.styles[pos])
	}
	return sink.Spans()
}
