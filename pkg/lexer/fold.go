package lexer

// FoldLevel is the fold record of one line: a base-offset level in the
// low bits plus flag bits.
type FoldLevel uint32

const (
	// FoldLevelBase is added to every level so that a level of 0 is
	// distinguishable from an unset record.
	FoldLevelBase FoldLevel = 0x400

	// FoldWhiteFlag marks a blank line.
	FoldWhiteFlag FoldLevel = 0x1000

	// FoldHeaderFlag marks the first line of a collapsible region.
	FoldHeaderFlag FoldLevel = 0x2000

	foldNumberMask FoldLevel = 0x0fff

	// MaxFoldLevel is the deepest level a record can hold.
	MaxFoldLevel = int(foldNumberMask - FoldLevelBase)
)

// NewFoldLevel returns the record for an indent level with the given flags.
func NewFoldLevel(level int, flags FoldLevel) FoldLevel {
	level = max(0, min(level, MaxFoldLevel))
	return FoldLevel(level) + FoldLevelBase | flags
}

// Level returns the level without the base offset and flags.
func (f FoldLevel) Level() int {
	n := int(f&foldNumberMask) - int(FoldLevelBase)
	if n < 0 {
		return 0
	}
	return n
}

// IsHeader reports whether the line starts a fold region.
func (f FoldLevel) IsHeader() bool {
	return f&FoldHeaderFlag != 0
}

// IsWhite reports whether the line is blank.
func (f FoldLevel) IsWhite() bool {
	return f&FoldWhiteFlag != 0
}
