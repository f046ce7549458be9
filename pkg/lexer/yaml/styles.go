package yaml

import "github.com/yaklabco/yamllex/pkg/lexer"

// Token categories emitted by the YAML analyzer. The same values drive
// the scanner's state machine: the style in effect is the state.
const (
	StyleDefault lexer.Style = iota
	StyleOperator
	StyleNumber
	StyleDateTime
	StyleIdentifier
	StylePlainText
	StyleKey
	StyleKeyword
	StyleReference
	StyleTag
	StyleVerbatimTag
	StyleSingleQuoted
	StyleDoubleQuoted
	StyleEscape
	StyleComment
	StyleDocumentMarker
	StyleDirective
	StyleTextBlock

	styleCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var styleNames = [styleCount]string{
	StyleDefault:        "Default",
	StyleOperator:       "Operator",
	StyleNumber:         "Number",
	StyleDateTime:       "DateTime",
	StyleIdentifier:     "Identifier",
	StylePlainText:      "PlainText",
	StyleKey:            "Key",
	StyleKeyword:        "Keyword",
	StyleReference:      "Reference",
	StyleTag:            "Tag",
	StyleVerbatimTag:    "VerbatimTag",
	StyleSingleQuoted:   "SingleQuoted",
	StyleDoubleQuoted:   "DoubleQuoted",
	StyleEscape:         "Escape",
	StyleComment:        "Comment",
	StyleDocumentMarker: "DocumentMarker",
	StyleDirective:      "Directive",
	StyleTextBlock:      "TextBlock",
}

// StyleName returns the name of a YAML style.
func StyleName(style lexer.Style) string {
	if style < styleCount {
		return styleNames[style]
	}
	return "Unknown"
}

// Styles lists every YAML style in declaration order.
func Styles() []lexer.StyleInfo {
	infos := make([]lexer.StyleInfo, 0, styleCount)
	for style := range styleCount {
		infos = append(infos, lexer.StyleInfo{Style: style, Name: styleNames[style]})
	}
	return infos
}
