package watch

import (
	"bytes"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Edit is a single replacement turning one content into another.
type Edit struct {
	// Start is the byte offset of the first changed byte.
	Start int

	// OldLen is the number of bytes replaced.
	OldLen int

	// Text is the replacement.
	Text []byte
}

// IsEmpty reports whether the edit changes nothing.
func (e Edit) IsEmpty() bool {
	return e.OldLen == 0 && len(e.Text) == 0
}

// ComputeEdit returns the smallest single Edit covering every change
// between older and newer: the bytes between the first and last
// differing diff operations.
func ComputeEdit(older, newer []byte) Edit {
	if bytes.Equal(older, newer) {
		return Edit{Start: len(older)}
	}

	// The diff works on runes; invalid UTF-8 would not map back to bytes.
	if !utf8.Valid(older) || !utf8.Valid(newer) {
		return byteEdit(older, newer)
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(older), string(newer), false)

	prefix := 0
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			break
		}
		prefix += len(d.Text)
	}

	suffix := 0
	for i := len(diffs) - 1; i >= 0; i-- {
		if diffs[i].Type != diffmatchpatch.DiffEqual {
			break
		}
		suffix += len(diffs[i].Text)
	}

	return Edit{
		Start:  prefix,
		OldLen: len(older) - prefix - suffix,
		Text:   newer[prefix : len(newer)-suffix],
	}
}

// byteEdit trims the common prefix and suffix bytewise.
func byteEdit(older, newer []byte) Edit {
	prefix := 0
	for prefix < len(older) && prefix < len(newer) && older[prefix] == newer[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(older)-prefix && suffix < len(newer)-prefix &&
		older[len(older)-1-suffix] == newer[len(newer)-1-suffix] {
		suffix++
	}

	return Edit{
		Start:  prefix,
		OldLen: len(older) - prefix - suffix,
		Text:   newer[prefix : len(newer)-suffix],
	}
}
