package lexer

import "strings"

// MaxKeywordLen is the longest span an analyzer will look up in a
// KeywordSet. Longer spans are never keywords.
const MaxKeywordLen = 15

// KeywordSet answers whether a lowercased span is a keyword.
// Word lists are supplied by the host, not owned by the analyzers.
type KeywordSet interface {
	IsKeyword(lowered string) bool
}

// WordList is a KeywordSet backed by a set of lowercased words.
type WordList map[string]struct{}

// NewWordList builds a WordList from words. Each entry may itself hold
// several whitespace separated words.
func NewWordList(words ...string) WordList {
	list := make(WordList)
	for _, entry := range words {
		for _, word := range strings.Fields(entry) {
			list[strings.ToLower(word)] = struct{}{}
		}
	}
	return list
}

// IsKeyword implements KeywordSet.
func (w WordList) IsKeyword(lowered string) bool {
	_, ok := w[lowered]
	return ok
}

// Len returns the number of words in the list.
func (w WordList) Len() int {
	return len(w)
}
