// Package runner provides multi-file analysis orchestration.
package runner

import (
	"slices"

	"github.com/yaklabco/yamllex/pkg/config"
)

// Options controls multi-file analysis.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// picked up while walking directories. Defaults to DefaultExtensions,
	// plus MarkdownExtensions when the config enables Markdown.
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the YAML file extensions.
func DefaultExtensions() []string {
	return []string{".yaml", ".yml"}
}

// MarkdownExtensions returns the Markdown file extensions searched for
// embedded YAML.
func MarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	if o.Config.MarkdownEnabled() {
		return slices.Concat(DefaultExtensions(), MarkdownExtensions())
	}
	return DefaultExtensions()
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// excludeGlobs merges config ignore patterns with ExcludeGlobs.
func (o Options) excludeGlobs() []string {
	if o.Config == nil {
		return o.ExcludeGlobs
	}
	return slices.Concat(o.Config.Ignore, o.ExcludeGlobs)
}
