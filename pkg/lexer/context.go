package lexer

// Cursor is the position part of a scan: the current byte with one byte
// of lookbehind and lookahead, line boundary flags and the per-line
// counters analyzers use for indentation. It is a plain value; Next
// returns the cursor one byte further on.
type Cursor struct {
	// Pos is the offset of Ch.
	Pos int

	// Line is the 0-based line holding Pos.
	Line int

	Ch     int
	ChNext int
	ChPrev int

	// AtLineStart is set on the first byte of a line.
	AtLineStart bool

	// AtLineEnd is set on the last byte of a line (the \n, or the final
	// byte of an unterminated last line).
	AtLineEnd bool

	// VisibleChars counts non-space bytes seen on this line before Pos,
	// saturating at 1.
	VisibleChars int

	// IndentCount counts the leading spaces of this line seen before Pos.
	IndentCount int

	lineStartNext int
}

// Next returns the cursor advanced by one byte. At or past end the
// cursor stays put and reports blank characters at a line end.
func (c Cursor) Next(doc Document, end int) Cursor {
	if c.Pos >= end {
		c.AtLineStart = false
		c.ChPrev, c.Ch, c.ChNext = ' ', ' ', ' '
		c.AtLineEnd = true
		return c
	}

	c.count(c.Ch)

	c.AtLineStart = c.AtLineEnd
	if c.AtLineStart {
		c.Line++
		c.lineStartNext = doc.LineStart(c.Line + 1)
		c.VisibleChars = 0
		c.IndentCount = 0
	}

	c.ChPrev = c.Ch
	c.Pos++
	c.Ch = c.ChNext
	c.ChNext = int(doc.ByteAt(c.Pos + 1))
	c.AtLineEnd = c.Pos >= c.lineStartNext-1
	return c
}

// LineCounts returns VisibleChars and IndentCount including the current byte.
func (c Cursor) LineCounts() (visible, indent int) {
	c.count(c.Ch)
	return c.VisibleChars, c.IndentCount
}

func (c *Cursor) count(ch int) {
	if c.VisibleChars != 0 {
		return
	}
	if ch == ' ' {
		c.IndentCount++
	} else if !IsEOLChar(ch) {
		c.VisibleChars++
	}
}

// StyleContext drives one scan over [start, end) of a document. It owns
// the cursor, the style in effect and the start of the pending span, and
// reports finished spans to a SpanSink.
type StyleContext struct {
	Cursor

	// State is the style of the pending span.
	State Style

	doc        Document
	sink       *SpanSink
	endPos     int
	styleStart int
}

// NewStyleContext prepares a scan of [start, start+length) beginning in
// initStyle. Finished spans are written to sink.
func NewStyleContext(doc Document, start, length int, initStyle Style, sink *SpanSink) *StyleContext {
	end := min(start+length, doc.Length())
	start = max(0, min(start, end))

	line := doc.LineFromPosition(start)
	lineStart := doc.LineStart(line)

	sc := &StyleContext{
		State:      initStyle,
		doc:        doc,
		sink:       sink,
		endPos:     end,
		styleStart: start,
	}
	sc.Pos = start
	sc.Line = line
	sc.lineStartNext = doc.LineStart(line + 1)
	sc.AtLineStart = lineStart == start
	sc.AtLineEnd = start >= sc.lineStartNext-1
	sc.Ch = int(doc.ByteAt(start))
	sc.ChNext = int(doc.ByteAt(start + 1))
	if start > 0 {
		sc.ChPrev = int(doc.ByteAt(start - 1))
	}

	// Resuming mid-line: rebuild the counters from the line prefix.
	for pos := lineStart; pos < start; pos++ {
		sc.count(int(doc.ByteAt(pos)))
	}

	return sc
}

// Doc returns the scanned document.
func (sc *StyleContext) Doc() Document {
	return sc.doc
}

// More reports whether the cursor is still inside the scan range.
func (sc *StyleContext) More() bool {
	return sc.Pos < sc.endPos
}

// EndPos returns the end of the scan range.
func (sc *StyleContext) EndPos() int {
	return sc.endPos
}

// LineStartNext returns the offset of the line after the current one.
func (sc *StyleContext) LineStartNext() int {
	return sc.lineStartNext
}

// StyleStart returns the start of the pending span.
func (sc *StyleContext) StyleStart() int {
	return sc.styleStart
}

// Forward advances one byte.
func (sc *StyleContext) Forward() {
	sc.Cursor = sc.Next(sc.doc, sc.endPos)
}

// ForwardN advances n bytes.
func (sc *StyleContext) ForwardN(n int) {
	for ; n > 0; n-- {
		sc.Forward()
	}
}

// SetState finishes the pending span before the current byte and starts
// a new one in state.
func (sc *StyleContext) SetState(state Style) {
	end := min(sc.Pos, sc.endPos)
	sc.sink.ColourTo(sc.styleStart, end, sc.State)
	sc.styleStart = end
	sc.State = state
}

// ChangeState changes the style of the pending span without ending it.
func (sc *StyleContext) ChangeState(state Style) {
	sc.State = state
}

// ForwardSetState advances one byte, then calls SetState.
func (sc *StyleContext) ForwardSetState(state Style) {
	sc.Forward()
	sc.SetState(state)
}

// Complete finishes the pending span at the current position.
func (sc *StyleContext) Complete() {
	sc.SetState(sc.State)
}

// Match reports whether the document at the cursor starts with s.
func (sc *StyleContext) Match(s string) bool {
	for i := range len(s) {
		if int(sc.doc.ByteAt(sc.Pos+i)) != int(s[i]) {
			return false
		}
	}
	return true
}

// NextNonSpaceOnLine returns the first non-space byte from the cursor to
// the end of the current line, or 0.
func (sc *StyleContext) NextNonSpaceOnLine() int {
	return NextNonSpace(sc.doc, sc.Pos, sc.lineStartNext)
}

// CurrentLowered returns the pending span lowercased. It reports false
// when the span is longer than MaxKeywordLen.
func (sc *StyleContext) CurrentLowered() (string, bool) {
	n := sc.Pos - sc.styleStart
	if n <= 0 || n > MaxKeywordLen {
		return "", false
	}

	var buf [MaxKeywordLen]byte
	for i := range n {
		ch := sc.doc.ByteAt(sc.styleStart + i)
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		buf[i] = ch
	}
	return string(buf[:n]), true
}
