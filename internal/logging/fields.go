// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration.
	FieldConfig   = "config"
	FieldFormat   = "format"
	FieldJobs     = "jobs"
	FieldMarkdown = "markdown"
	FieldKeywords = "keywords"

	// Analysis.
	FieldLanguage  = "language"
	FieldSection   = "section"
	FieldSections  = "sections"
	FieldLines     = "lines"
	FieldFromLine  = "from_line"
	FieldSpans     = "spans"
	FieldFolds     = "folds"
	FieldEditStart = "edit_start"
	FieldEditOld   = "edit_old"
	FieldEditNew   = "edit_new"

	// Statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesFailed     = "files_failed"
	FieldBytes           = "bytes"
	FieldDuration        = "duration"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
