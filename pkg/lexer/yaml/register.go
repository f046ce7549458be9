package yaml

import "github.com/yaklabco/yamllex/pkg/lexer"

// Name is the registry name of the YAML analyzer.
const Name = "yaml"

// Module returns the registry entry for the YAML analyzer.
func Module() *lexer.Module {
	return &lexer.Module{
		Name:            Name,
		Extensions:      []string{".yaml", ".yml"},
		Styles:          Styles(),
		DefaultKeywords: DefaultKeywords,
		Lex: func(acc lexer.Accessor, start, length int, initStyle lexer.Style, keywords lexer.KeywordSet) {
			New(Options{Keywords: keywords}).Colourise(acc, start, length, initStyle)
		},
		Fold: Fold,
	}
}

//nolint:gochecknoinits // Analyzers register themselves on import.
func init() {
	lexer.Register(Module())
}
