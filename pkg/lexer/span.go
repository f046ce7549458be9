package lexer

// Span is a contiguous byte range assigned exactly one style.
type Span struct {
	// Start is the byte index where the span begins (inclusive).
	Start int

	// End is the byte index where the span ends (exclusive).
	End int

	// Style is the category of every byte in the span.
	Style Style
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if the given offset is within this span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// SpanSink accumulates spans in document order.
// Adjacent spans sharing a style are merged into one.
type SpanSink struct {
	spans []Span
}

// ColourTo assigns style to every byte from the end of the previous
// span up to end (exclusive). Empty ranges are ignored.
func (s *SpanSink) ColourTo(start, end int, style Style) {
	if end <= start {
		return
	}
	if n := len(s.spans); n > 0 {
		last := &s.spans[n-1]
		if last.End == start && last.Style == style {
			last.End = end
			return
		}
	}
	s.spans = append(s.spans, Span{Start: start, End: end, Style: style})
}

// Spans returns the accumulated spans.
func (s *SpanSink) Spans() []Span {
	return s.spans
}

// ValidateSpans checks that spans are contiguous and non-overlapping and
// cover exactly [start, end).
func ValidateSpans(spans []Span, start, end int) bool {
	if len(spans) == 0 {
		return start == end
	}
	if spans[0].Start != start || spans[len(spans)-1].End != end {
		return false
	}
	for i := range spans {
		if spans[i].IsEmpty() {
			return false
		}
		if i > 0 && spans[i].Start != spans[i-1].End {
			return false
		}
	}
	return true
}
