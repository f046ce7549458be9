// Package langdetect decides whether content is YAML. It backs the
// discovery of extension-less YAML files and the classification of
// untagged Markdown code blocks, using go-enry's filename, extension,
// shebang and classifier strategies plus a few cheap pattern checks.
package langdetect

import (
	"bytes"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names returned by Detect.
const (
	LangYAML       = "yaml"
	LangJSON       = "json"
	LangHTML       = "html"
	LangGo         = "go"
	LangSQL        = "sql"
	LangDockerfile = "dockerfile"
	LangBash       = "bash"
	LangText       = "text"
)

// enryYAML is go-enry's name for YAML.
const enryYAML = "YAML"

// minYAMLSignals is how many YAML-looking lines content needs before the
// pattern check calls it YAML.
const minYAMLSignals = 2

// classifierCandidates are the languages the classifier chooses between.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"YAML", "JSON", "Shell", "Python", "Go", "JavaScript",
	"HTML", "SQL", "Dockerfile", "Markdown", "INI", "TOML",
}

// Detect returns the language of content as a lowercase name.
// Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return LangText
	}

	// Shebang first: a script is never YAML.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// IsYAML reports whether the file at path holds YAML. Known filenames
// and extensions decide first; content detection is used only when the
// name says nothing.
func IsYAML(path string, content []byte) bool {
	if langs := enry.GetLanguagesByFilename(path, content, nil); len(langs) > 0 {
		return slices.Contains(langs, enryYAML)
	}
	if langs := enry.GetLanguagesByExtension(path, content, nil); len(langs) > 0 {
		return slices.Contains(langs, enryYAML)
	}
	return Detect(content) == LangYAML
}

// detectByPattern checks for patterns that are highly indicative.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)

	switch {
	case bytes.HasPrefix(trimmed, []byte("%YAML")) || bytes.HasPrefix(trimmed, []byte("---\n")):
		return LangYAML
	case bytes.HasPrefix(trimmed, []byte("package ")):
		return LangGo
	case isHTML(trimmed):
		return LangHTML
	case isJSON(trimmed):
		return LangJSON
	case isDockerfile(content, trimmed):
		return LangDockerfile
	case isSQL(trimmed):
		return LangSQL
	case countYAMLSignals(content) >= minYAMLSignals:
		return LangYAML
	default:
		return ""
	}
}

func isHTML(trimmed []byte) bool {
	lower := bytes.ToLower(trimmed)
	return bytes.Contains(lower, []byte("<!doctype html")) ||
		bytes.Contains(lower, []byte("<html")) ||
		bytes.Contains(lower, []byte("<body>"))
}

// isJSON matches a flow collection holding quoted strings. Such content
// is also valid YAML, but callers want it reported as JSON.
func isJSON(trimmed []byte) bool {
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`))
}

func isDockerfile(content, trimmed []byte) bool {
	return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN ")))
}

func isSQL(trimmed []byte) bool {
	upper := strings.ToUpper(string(trimmed))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, verb) {
			return true
		}
	}
	return false
}

// countYAMLSignals counts "key: value" lines, "key:" lines and block
// sequence entries, ignoring lines that look like code.
func countYAMLSignals(content []byte) int {
	count := 0

	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.ContainsAny(line, "();") || line[0] == '"' {
			continue
		}

		switch {
		case bytes.HasPrefix(line, []byte("- ")):
			count++
		case bytes.Contains(line, []byte(": ")), bytes.HasSuffix(line, []byte(":")):
			count++
		}
	}

	return count
}

// normalize converts go-enry language names to lowercase fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return LangBash
	}
	return strings.ToLower(lang)
}
