package document

// Region is one collapsible range of lines.
type Region struct {
	// StartLine is the header line (0-based).
	StartLine int

	// EndLine is the last line folded under the header.
	EndLine int

	// Level is the fold level of the header.
	Level int
}

// Outline styles the whole buffer and returns a Region for every fold
// header, in line order. A region runs over the following lines with a
// deeper level, ignoring trailing blank lines.
func (b *Buffer) Outline() []Region {
	b.EnsureStyled(len(b.content))

	var regions []Region
	for line := range len(b.lines) {
		level := b.foldLevels[line]
		if !level.IsHeader() {
			continue
		}

		end := line + 1
		for end < len(b.lines) && (b.foldLevels[end].Level() > level.Level() || b.foldLevels[end].IsWhite()) {
			end++
		}
		end--
		for end > line && b.foldLevels[end].IsWhite() {
			end--
		}

		if end > line {
			regions = append(regions, Region{StartLine: line, EndLine: end, Level: level.Level()})
		}
	}
	return regions
}
