package cli

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aidanlsb/project-cli/internal/filelock"
	"github.com/aidanlsb/project-cli/internal/store"
	"github.com/aidanlsb/project-cli/internal/ui"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	ErrNotFound        = store.CodeNotFound
	ErrAlreadyExists   = store.CodeAlreadyExists
	ErrNoActiveProject = store.CodeNoActiveProject
	ErrCorruptStore    = store.CodeCorruptStore
	ErrResolution      = store.CodeResolution
	ErrInvalidInput    = store.CodeInvalidInput
	ErrInternal        = store.CodeInternal

	ErrConfigInvalid        = "CONFIG_INVALID"
	ErrFileWriteError       = "FILE_WRITE_ERROR"
	ErrLockTimeout          = "LOCK_TIMEOUT"
	ErrConfirmationRequired = "CONFIRMATION_REQUIRED"
	ErrCloneFailed          = "CLONE_FAILED"
)

// Warning codes for non-fatal issues.
const (
	WarnOpenFailed    = "OPEN_FAILED"
	WarnImportSkipped = "IMPORT_SKIPPED"
)

// Exit codes.
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitNoActiveProject = 2
)

// usageError marks bad arguments or flags.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// configError marks an unreadable or invalid config file.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

// writeError marks a failure to persist the store.
type writeError struct{ err error }

func (e writeError) Error() string { return e.err.Error() }
func (e writeError) Unwrap() error { return e.err }

// codedError carries an explicit code and suggestion.
type codedError struct {
	code       string
	err        error
	suggestion string
}

func (e codedError) Error() string { return e.err.Error() }
func (e codedError) Unwrap() error { return e.err }

func newCodedError(code, suggestion, format string, args ...interface{}) error {
	return codedError{code: code, err: fmt.Errorf(format, args...), suggestion: suggestion}
}

// ExitCode maps an error to the process exit code: 0 for nil, 2 when no
// project is active, 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, store.ErrNoActiveProject):
		return ExitNoActiveProject
	default:
		return ExitFailure
	}
}

// errorCode returns the stable code reported for err.
func errorCode(err error) string {
	var coded codedError
	var usage usageError
	var cfgErr configError
	var write writeError
	switch {
	case errors.As(err, &coded):
		return coded.code
	case errors.Is(err, filelock.ErrTimeout):
		return ErrLockTimeout
	case errors.As(err, &usage):
		return ErrInvalidInput
	case errors.As(err, &cfgErr):
		return ErrConfigInvalid
	case errors.As(err, &write):
		return ErrFileWriteError
	default:
		return store.Code(err)
	}
}

// errorHint returns the recovery suggestion for err, if any.
func errorHint(err error) string {
	var coded codedError
	if errors.As(err, &coded) && coded.suggestion != "" {
		return coded.suggestion
	}
	if errors.Is(err, filelock.ErrTimeout) {
		return "Another project command is running; try again"
	}
	var usage usageError
	if errors.As(err, &usage) {
		return "Run with --help for usage"
	}
	return store.Hint(err)
}

// reportError prints err once, as a JSON envelope or as an "error:" line
// with an optional hint on stderr.
func (a *app) reportError(err error) {
	code := errorCode(err)
	hint := errorHint(err)
	a.log.Debug("command failed", zap.String("code", code), zap.Error(err))

	if a.jsonOutput {
		a.outputError(code, err.Error(), nil, hint)
		return
	}
	fmt.Fprintf(a.errOut, "error: %s\n", err)
	if hint != "" {
		fmt.Fprintln(a.errOut, ui.Hint(hint))
	}
}
