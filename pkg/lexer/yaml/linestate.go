package yaml

import "fmt"

// LineKind classifies a whole line for folding.
type LineKind uint8

const (
	LineNone LineKind = iota
	LineBlank
	LineComment
	LineDocumentStart
	LineDocumentEnd

	lineKindCount
)

// String returns the lowercase name of the kind.
func (k LineKind) String() string {
	switch k {
	case LineNone:
		return "none"
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineDocumentStart:
		return "document-start"
	case LineDocumentEnd:
		return "document-end"
	default:
		return fmt.Sprintf("LineKind(%d)", uint8(k))
	}
}

// Empty reports whether the line carries no structure: blank or
// comment only. Folding skips over empty lines.
func (k LineKind) Empty() bool {
	return k == LineBlank || k == LineComment
}

// Bit layout of a packed line state, low bits first:
//
//	 0..6   flow depth          7 bits
//	 7..15  block indent        9 bits
//	16..27  line indent        12 bits
//	28..31  line kind           4 bits
const (
	depthBits       = 7
	blockIndentBits = 9
	indentBits      = 12
	kindBits        = 4

	blockIndentShift = depthBits
	indentShift      = blockIndentShift + blockIndentBits
	kindShift        = indentShift + indentBits

	// MaxDepth is the deepest flow nesting a line state records.
	MaxDepth = 1<<depthBits - 1

	// MaxBlockIndent is the largest block scalar threshold recorded.
	MaxBlockIndent = 1<<blockIndentBits - 1

	// MaxIndent is the largest line indent recorded.
	MaxIndent = 1<<indentBits - 1

	maxKind = 1<<kindBits - 1
)

// LineState is the record persisted for every scanned line. It is all
// a scan needs to resume at the start of the following line.
type LineState struct {
	// Depth is the flow collection nesting depth at the end of the line.
	Depth int

	// BlockIndent is the indent of the line that opened the pending
	// block scalar. Zero when no block scalar is open at indent > 0.
	BlockIndent int

	// Indent is the line's leading space count, as used by folding.
	Indent int

	// Kind classifies the line.
	Kind LineKind
}

// Encode packs the state. Fields beyond their width are clamped.
func (s LineState) Encode() uint32 {
	depth := clamp(s.Depth, MaxDepth)
	block := clamp(s.BlockIndent, MaxBlockIndent)
	indent := clamp(s.Indent, MaxIndent)
	kind := clamp(int(s.Kind), maxKind)

	return uint32(depth) |
		uint32(block)<<blockIndentShift |
		uint32(indent)<<indentShift |
		uint32(kind)<<kindShift
}

// DecodeLineState unpacks a state produced by Encode.
func DecodeLineState(packed uint32) LineState {
	return LineState{
		Depth:       int(packed & MaxDepth),
		BlockIndent: int(packed >> blockIndentShift & MaxBlockIndent),
		Indent:      int(packed >> indentShift & MaxIndent),
		Kind:        LineKind(packed >> kindShift & maxKind),
	}
}

// String formats the state for debugging output.
func (s LineState) String() string {
	return fmt.Sprintf("depth=%d block=%d indent=%d kind=%s", s.Depth, s.BlockIndent, s.Indent, s.Kind)
}

func clamp(v, hi int) int {
	return max(0, min(v, hi))
}
