package lexer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// StyleInfo names one style of an analyzer.
type StyleInfo struct {
	Style Style
	Name  string
}

// LexFunc styles [start, start+length) of the accessor's document,
// resuming from initStyle and the stored state of the previous line.
type LexFunc func(acc Accessor, start, length int, initStyle Style, keywords KeywordSet)

// FoldFunc computes fold levels for the lines of [start, start+length).
type FoldFunc func(acc Accessor, start, length int)

// Module describes a language analyzer.
type Module struct {
	// Name is the lowercase language identifier, e.g. "yaml".
	Name string

	// Extensions lists file extensions handled by the analyzer, with dot.
	Extensions []string

	// Styles lists every style the analyzer emits.
	Styles []StyleInfo

	// DefaultKeywords is used when the host supplies no word list.
	DefaultKeywords string

	Lex  LexFunc
	Fold FoldFunc
}

// StyleName returns the name of style, or "Style<n>" when unknown.
func (m *Module) StyleName(style Style) string {
	for _, info := range m.Styles {
		if info.Style == style {
			return info.Name
		}
	}
	return fmt.Sprintf("Style%d", style)
}

// StyleByName looks up a style by case-insensitive name.
func (m *Module) StyleByName(name string) (Style, bool) {
	for _, info := range m.Styles {
		if strings.EqualFold(info.Name, name) {
			return info.Style, true
		}
	}
	return 0, false
}

//nolint:gochecknoglobals // Registry populated by analyzer init functions.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Module)
)

// Register adds an analyzer to the registry.
// It panics if the module is incomplete or the name is already taken.
func Register(m *Module) {
	if m == nil || m.Name == "" || m.Lex == nil {
		panic("lexer: Register called with an incomplete module")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := registry[m.Name]; dup {
		panic("lexer: Register called twice for " + m.Name)
	}
	registry[m.Name] = m
}

// Lookup returns the analyzer registered under name.
func Lookup(name string) (*Module, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	m, ok := registry[strings.ToLower(name)]
	return m, ok
}

// ForFile returns the analyzer handling the extension of path.
func ForFile(path string) (*Module, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}

	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, m := range registry {
		for _, e := range m.Extensions {
			if e == ext {
				return m, true
			}
		}
	}
	return nil, false
}

// Modules returns every registered analyzer sorted by name.
func Modules() []*Module {
	registryMu.RLock()
	defer registryMu.RUnlock()

	modules := make([]*Module, 0, len(registry))
	for _, m := range registry {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool {
		return modules[i].Name < modules[j].Name
	})
	return modules
}
