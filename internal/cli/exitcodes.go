package cli

import (
	"errors"

	"github.com/yaklabco/zim2obsidian/pkg/convert"
	"github.com/yaklabco/zim2obsidian/pkg/fsutil"
)

// Exit codes for zim2obsidian.
const (
	// ExitSuccess indicates successful execution with no page failures.
	ExitSuccess = 0

	// ExitPagesFailed indicates the run completed but some pages failed.
	ExitPagesFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for a completed run.
func ExitCodeFromResult(result *convert.Result) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Stats.PagesFailed > 0 {
		return ExitPagesFailed
	}

	return ExitSuccess
}

// ExitCodeFromError maps a command error to an exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, convert.ErrPagesFailed):
		return ExitPagesFailed
	case errors.Is(err, ErrConfigLoad):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
