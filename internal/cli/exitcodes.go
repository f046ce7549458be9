package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/yamllex/pkg/fsutil"
	"github.com/yaklabco/yamllex/pkg/runner"
)

// ErrFilesFailed is returned when some files could not be analyzed.
// The failures themselves have already been reported.
var ErrFilesFailed = errors.New("some files could not be analyzed")

// Exit codes for yamllex.
const (
	// ExitSuccess indicates every file was analyzed.
	ExitSuccess = 0

	// ExitFilesFailed indicates the run completed but some files could
	// not be read.
	ExitFilesFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code of an analysis run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasErrors() {
		return ExitFilesFailed
	}
	return ExitSuccess
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	var usageErr *UsageError
	var cfgErr *ConfigError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitFilesFailed
	case errors.As(err, &usageErr):
		return ExitInvalidUsage
	case errors.As(err, &cfgErr):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// UsageError reports an invalid flag value or argument.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ConfigError reports a configuration that could not be loaded.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "load configuration: " + e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }
