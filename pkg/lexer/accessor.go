// Package lexer provides the engine shared by the incremental language
// analyzers: the document and host interfaces, the scan cursor, spans,
// fold levels, keyword sets and the analyzer registry.
//
// Analyzers never fail. Every byte of the scanned range is assigned a
// style, and the per-line state they persist lets a later call resume at
// any line boundary without rescanning from the start of the document.
package lexer

// Style is a token category. Each analyzer defines its own values;
// 0 is always the default (unclassified) category.
type Style uint8

// Document is the read-only view of the text an analyzer scans.
// It must not change for the duration of one scan call.
type Document interface {
	// Length returns the document size in bytes.
	Length() int

	// ByteAt returns the byte at pos, or 0 when pos is out of range.
	ByteAt(pos int) byte

	// LineStart returns the offset of the first byte of line.
	// Lines past the end return Length().
	LineStart(line int) int

	// LineFromPosition returns the 0-based line holding pos.
	LineFromPosition(pos int) int
}

// Accessor is the host side of a scan: the document plus the per-line
// state, styling and fold storage the analyzer reads and writes.
type Accessor interface {
	Document

	// LineState returns the packed state stored for line, or 0.
	LineState(line int) uint32

	// SetLineState stores the packed state for line.
	SetLineState(line int, state uint32)

	// StyleAt returns the style stored for the byte at pos.
	StyleAt(pos int) Style

	// ApplySpans stores the styles of the given spans.
	ApplySpans(spans []Span)

	// FoldLevel returns the fold record of line.
	FoldLevel(line int) FoldLevel

	// SetFoldLevel stores the fold record of line.
	SetFoldLevel(line int, level FoldLevel)
}
