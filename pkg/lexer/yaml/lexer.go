// Package yaml implements the incremental YAML analyzer: a tokenizer that
// assigns a style to every byte of a range and records a LineState per
// line, and a folding engine that turns those records into fold levels.
//
// Scans can start at any line boundary. The style in effect before the
// first byte and the record of the previous line are all the state a
// scan needs; scanning a document in several line-aligned pieces gives
// the same result as one scan of the whole document.
package yaml

import "github.com/yaklabco/yamllex/pkg/lexer"

// DefaultKeywords is the word list used when the host supplies none.
const DefaultKeywords = "true false yes no on off y n null ~ .inf .nan"

// Options configures a Lexer.
type Options struct {
	// Keywords classifies plain identifiers that stand alone as values.
	// Nil disables keyword detection.
	Keywords lexer.KeywordSet
}

// Lexer scans YAML text. It holds no per-document state and may be shared.
type Lexer struct {
	keywords lexer.KeywordSet
}

// New creates a Lexer.
func New(opts Options) *Lexer {
	return &Lexer{keywords: opts.Keywords}
}

// Resume is where a scan picks up: the style in effect before the first
// byte and the record of the line before the first line.
type Resume struct {
	Style lexer.Style
	Prev  LineState
}

// LineRecord is the state produced for one completed line.
type LineRecord struct {
	Line  int
	State LineState
}

// Result is the outcome of Scan.
type Result struct {
	// Spans cover the scanned range contiguously.
	Spans []lexer.Span

	// Lines holds one record per line whose end was reached.
	Lines []LineRecord

	// End resumes a scan at the end of the range.
	End Resume
}

// Scan styles [start, start+length) of doc. Ranges should start at a line
// start; the end may fall anywhere.
func (l *Lexer) Scan(doc lexer.Document, start, length int, resume Resume) Result {
	var sink lexer.SpanSink

	s := &scanner{
		sc:          lexer.NewStyleContext(doc, start, length, resume.Style, &sink),
		keywords:    l.keywords,
		escOwner:    StyleDoubleQuoted,
		depth:       clamp(resume.Prev.Depth, MaxDepth),
		blockIndent: clamp(resume.Prev.BlockIndent, MaxBlockIndent),
	}
	s.run()

	res := Result{
		Spans: sink.Spans(),
		Lines: s.lines,
		End:   Resume{Style: s.sc.State, Prev: resume.Prev},
	}
	if n := len(s.lines); n > 0 {
		res.End.Prev = s.lines[n-1].State
	}
	return res
}

// Colourise is the host-driven form of Scan: the previous line's record
// is read from acc, and spans and line states are written back.
func (l *Lexer) Colourise(acc lexer.Accessor, start, length int, initStyle lexer.Style) {
	var prev LineState
	if line := acc.LineFromPosition(start); line > 0 {
		prev = DecodeLineState(acc.LineState(line - 1))
	}

	res := l.Scan(acc, start, length, Resume{Style: initStyle, Prev: prev})

	acc.ApplySpans(res.Spans)
	for _, rec := range res.Lines {
		acc.SetLineState(rec.Line, rec.State.Encode())
	}
}

type scanner struct {
	sc       *lexer.StyleContext
	keywords lexer.KeywordSet

	esc      escapeSequence
	escOwner lexer.Style

	depth       int
	blockIndent int
	blockHeader bool
	lineKind    LineKind

	lines []LineRecord
}

func (s *scanner) run() {
	sc := s.sc

	for sc.More() {
		if sc.AtLineStart && sc.State == StyleTextBlock {
			s.blockScalarLine()
			if !sc.More() {
				break
			}
		}

		if s.continueToken() {
			// The token ended before the current byte without a new
			// state; look at the byte again.
			continue
		}
		if sc.State == StyleDefault {
			s.startToken()
		}
		if !sc.More() {
			break
		}

		if sc.AtLineEnd {
			s.endLine()
		}
		sc.Forward()
	}

	// A scalar on an unterminated last line is resolved at the end of
	// the document.
	if sc.Pos >= sc.Doc().Length() {
		switch sc.State {
		case StyleNumber, StyleDateTime:
			s.resolveScalar(false)
		case StyleIdentifier:
			s.resolveScalar(true)
		}
	}

	sc.Complete()
}

// blockScalarLine handles the start of a line inside a block scalar: a
// non-blank line indented no deeper than the header line ends the scalar.
// The leading spaces are skipped either way.
func (s *scanner) blockScalarLine() {
	sc := s.sc
	doc := sc.Doc()
	end := sc.LineStartNext()

	pos := sc.Pos
	for pos < end && doc.ByteAt(pos) == ' ' {
		pos++
	}
	indent := pos - sc.Pos
	blank := pos >= end || lexer.IsEOLChar(int(doc.ByteAt(pos)))

	if indent <= s.blockIndent && !blank {
		s.blockIndent = 0
		sc.SetState(StyleDefault)
	}

	// Keep the last byte of an unterminated line as the current one so
	// the line still gets its record.
	if pos >= end && indent > 0 {
		indent--
	}
	sc.ForwardN(indent)
}

// continueToken advances the state machine for the token in progress.
// It returns true when the current byte must be examined again.
//
//nolint:gocyclo,cyclop // One case per style.
func (s *scanner) continueToken() bool {
	sc := s.sc

	switch sc.State {
	case StyleOperator:
		sc.SetState(StyleDefault)

	case StyleNumber:
		if !lexer.IsDecimalNumber(sc.ChPrev, sc.Ch, sc.ChNext) {
			if IsDateTimePunct(sc.Ch, sc.ChNext) {
				sc.ChangeState(StyleDateTime)
			} else if s.resolveScalar(false) {
				return true
			}
		}

	case StyleDateTime:
		if !lexer.IsIdentifierChar(sc.Ch) && !IsDateTimePunct(sc.Ch, sc.ChNext) {
			return s.resolveScalar(false)
		}

	case StyleIdentifier:
		if !lexer.IsAlpha(sc.Ch) {
			return s.resolveScalar(true)
		}

	case StylePlainText:
		s.continuePlainText()

	case StyleReference:
		if !IsAnchorChar(sc.Ch) {
			sc.SetState(StyleDefault)
		}

	case StyleTag:
		if !IsURIChar(sc.Ch) {
			sc.SetState(StyleDefault)
		}

	case StyleVerbatimTag:
		if sc.Ch == '>' {
			if !sc.AtLineEnd {
				sc.ForwardSetState(StyleDefault)
			}
		} else if !IsURIChar(sc.Ch) {
			sc.SetState(StyleDefault)
		}

	case StyleSingleQuoted:
		if sc.Ch == '\'' {
			if sc.ChNext == '\'' {
				s.startEscape(StyleSingleQuoted, '\'')
			} else {
				s.closeQuote()
			}
		}

	case StyleDoubleQuoted:
		switch sc.Ch {
		case '\\':
			s.startEscape(StyleDoubleQuoted, sc.ChNext)
		case '"':
			s.closeQuote()
		}

	case StyleEscape:
		if s.esc.atEnd(sc.Ch) {
			if sc.Ch == '\\' && s.escOwner == StyleDoubleQuoted {
				s.esc.reset(sc.ChNext)
				s.forwardInLine()
			} else {
				sc.SetState(s.escOwner)
				return true
			}
		}

	case StyleComment, StyleDocumentMarker, StyleDirective:
		if sc.AtLineStart {
			sc.SetState(StyleDefault)
		}
	}

	return false
}

func (s *scanner) continuePlainText() {
	sc := s.sc

	switch {
	case sc.AtLineStart && s.depth == 0:
		sc.SetState(StyleDefault)
	case sc.Ch == ':':
		if isBlankOrEnd(sc.ChNext) {
			sc.ChangeState(StyleKey)
			sc.SetState(StyleOperator)
		}
	case s.depth > 0 && IsFlowIndicator(sc.Ch):
		sc.SetState(StyleOperator)
		s.nest(sc.Ch)
	case sc.Ch == '#' && lexer.IsSpaceChar(sc.ChPrev):
		sc.SetState(StyleComment)
	}
}

// resolveScalar decides what a number, date/time or identifier span that
// just ended really is. If the scalar continues as text it becomes plain
// text and true is returned. A scalar that stands alone keeps its style
// (an identifier only when it is a keyword) and the state returns to
// default.
func (s *scanner) resolveScalar(identifier bool) bool {
	sc := s.sc
	state := sc.State

	end := sc.LineStartNext()
	if s.depth > 0 {
		end = sc.Doc().Length()
	}
	next := lexer.NextNonSpace(sc.Doc(), sc.Pos, end)

	if next == ':' {
		sc.ChangeState(StylePlainText)
		return true
	}

	standalone := next == 0 ||
		(next == '#' && lexer.IsSpaceChar(sc.Ch)) ||
		(s.depth > 0 && (next == ',' || next == '}' || next == ']'))
	if standalone {
		if !identifier {
			sc.SetState(StyleDefault)
		} else if s.isKeyword() {
			sc.ChangeState(StyleKeyword)
			sc.SetState(StyleDefault)
		}
	}

	if sc.State == state {
		sc.ChangeState(StylePlainText)
		return true
	}
	return false
}

func (s *scanner) isKeyword() bool {
	if s.keywords == nil {
		return false
	}
	word, ok := s.sc.CurrentLowered()
	return ok && s.keywords.IsKeyword(word)
}

// startEscape switches to the escape style at a backslash (or the first
// quote of '') and consumes the character after it.
func (s *scanner) startEscape(owner lexer.Style, next int) {
	s.escOwner = owner
	s.esc.reset(next)
	s.sc.SetState(StyleEscape)
	s.forwardInLine()
}

// closeQuote ends a quoted scalar after the current quote. The scalar is
// a key when the next thing on the line is a colon.
func (s *scanner) closeQuote() {
	sc := s.sc
	if sc.AtLineEnd {
		return
	}
	sc.Forward()
	if sc.NextNonSpaceOnLine() == ':' {
		sc.ChangeState(StyleKey)
	}
	sc.SetState(StyleDefault)
}

// forwardInLine steps over one byte unless that would leave the line,
// which only happens on the last byte of an unterminated document.
func (s *scanner) forwardInLine() {
	if !s.sc.AtLineEnd {
		s.sc.Forward()
	}
}

// startToken picks the style for a token starting at the current byte.
//
//nolint:gocyclo,cyclop,funlen // Dispatch table.
func (s *scanner) startToken() {
	sc := s.sc
	ch, chNext := sc.Ch, sc.ChNext
	lineStart := sc.VisibleChars == 0

	switch {
	case ch == '%' && lineStart:
		sc.SetState(StyleDirective)

	case ch == '#' && (lineStart || lexer.IsSpaceChar(sc.ChPrev)):
		sc.SetState(StyleComment)
		if lineStart {
			s.lineKind = LineComment
		}

	case lineStart && s.documentMarker():

	case ch == '\'':
		sc.SetState(StyleSingleQuoted)

	case ch == '"':
		sc.SetState(StyleDoubleQuoted)

	case (ch == '&' || ch == '*') && IsAnchorChar(chNext):
		sc.SetState(StyleReference)

	case ch == '!':
		if chNext == '<' {
			sc.SetState(StyleVerbatimTag)
			s.forwardInLine()
		} else {
			sc.SetState(StyleTag)
		}

	case ch == '|' || ch == '>':
		s.blockIndent = min(sc.IndentCount, MaxBlockIndent)
		s.blockHeader = true
		sc.SetState(StyleTextBlock)

	case lexer.IsADigit(ch) || (ch == '.' && lexer.IsADigit(chNext)):
		sc.SetState(StyleNumber)

	case lexer.IsAlpha(ch) || (ch == '.' && lexer.IsAlpha(chNext)):
		sc.SetState(StyleIdentifier)

	case IsOperatorChar(ch) || (ch == '?' && sc.ChPrev == ' '):
		sc.SetState(StyleOperator)
		s.nest(ch)

	case ch == ':' && isBlankOrEnd(chNext):
		sc.SetState(StyleOperator)

	case ch == '+' || ch == '-' || ch == '.':
		if (ch == '-' && lexer.IsSpaceChar(chNext)) ||
			lexer.IsADigit(chNext) ||
			(ch != '.' && chNext == '.') {
			sc.SetState(StyleOperator)
		} else {
			sc.SetState(StylePlainText)
		}

	case !lexer.IsSpaceChar(ch):
		sc.SetState(StylePlainText)
	}
}

// documentMarker recognizes "---" and "..." as the only text on a line.
// On success the marker is consumed up to its last byte.
func (s *scanner) documentMarker() bool {
	sc := s.sc

	var kind LineKind
	switch {
	case sc.Match("---"):
		kind = LineDocumentStart
	case sc.Match("..."):
		kind = LineDocumentEnd
	default:
		return false
	}

	if lexer.NextNonSpace(sc.Doc(), sc.Pos+3, sc.LineStartNext()) != 0 {
		return false
	}

	s.depth = 0
	s.lineKind = kind
	sc.SetState(StyleDocumentMarker)
	sc.ForwardN(2)
	return true
}

func (s *scanner) nest(ch int) {
	switch ch {
	case '{', '[':
		s.depth = min(s.depth+1, MaxDepth)
	case '}', ']':
		s.depth = max(s.depth-1, 0)
	}
}

// endLine records the state of the line ending at the current byte.
func (s *scanner) endLine() {
	sc := s.sc
	visible, indent := sc.LineCounts()
	kind := s.lineKind

	if sc.State == StyleTextBlock {
		// Content lines, blank ones included, sit one level below the
		// header line.
		if !s.blockHeader {
			indent = s.blockIndent + 1
		}
	} else if visible == 0 {
		indent = 0
		kind = LineBlank
	}

	s.lines = append(s.lines, LineRecord{
		Line: sc.Line,
		State: LineState{
			Depth:       s.depth,
			BlockIndent: s.blockIndent,
			Indent:      min(indent, MaxIndent),
			Kind:        kind,
		},
	})
	s.lineKind = LineNone
	s.blockHeader = false
}

func isBlankOrEnd(ch int) bool {
	return ch == 0 || lexer.IsSpaceChar(ch)
}
