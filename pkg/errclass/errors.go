package errclass

import (
	"errors"
	"fmt"
)

// Class separates errors that must abort the whole process from errors
// the outer traversal loop may log and skip.
type Class string

const (
	ClassFatal       Class = "fatal"
	ClassRecoverable Class = "recoverable"
)

// TrajlogError is a stable, machine-readable error class.
type TrajlogError struct {
	Code    string
	Class   Class
	Message string
}

func (e *TrajlogError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *TrajlogError) Is(target error) bool {
	t, ok := target.(*TrajlogError)
	return ok && e.Code == t.Code
}

// WithMessage returns a new TrajlogError with the same Code but a specific message.
func (e *TrajlogError) WithMessage(msg string) *TrajlogError {
	return &TrajlogError{Code: e.Code, Class: e.Class, Message: msg}
}

// WithMessagef returns a new TrajlogError with a formatted message.
func (e *TrajlogError) WithMessagef(format string, args ...any) *TrajlogError {
	return &TrajlogError{Code: e.Code, Class: e.Class, Message: fmt.Sprintf(format, args...)}
}

// IsFatal reports whether err (or anything it wraps) requires aborting the
// process. Errors outside the classified set are treated as fatal.
func IsFatal(err error) bool {
	var te *TrajlogError
	if errors.As(err, &te) {
		return te.Class == ClassFatal
	}
	return true
}

// IsRecoverable reports whether err is a classified skip-and-continue error.
func IsRecoverable(err error) bool {
	return err != nil && !IsFatal(err)
}

// All stable error classes.
var (
	// Fatal: abort the process, leave already-written output intact.
	ErrProjectIDMissing  = &TrajlogError{Code: "E_PROJECT_ID_MISSING", Class: ClassFatal}
	ErrProjectUnreadable = &TrajlogError{Code: "E_PROJECT_UNREADABLE", Class: ClassFatal}
	ErrOutputUnwritable  = &TrajlogError{Code: "E_OUTPUT_UNWRITABLE", Class: ClassFatal}
	ErrListingUnreadable = &TrajlogError{Code: "E_LISTING_UNREADABLE", Class: ClassFatal}
	ErrLogfileUnreadable = &TrajlogError{Code: "E_LOGFILE_UNREADABLE", Class: ClassFatal}
	ErrReportUnwritable  = &TrajlogError{Code: "E_REPORT_UNWRITABLE", Class: ClassFatal}
	ErrConfigInvalid     = &TrajlogError{Code: "E_CONFIG_INVALID", Class: ClassFatal}
	ErrConverterMissing  = &TrajlogError{Code: "E_CONVERTER_MISSING", Class: ClassFatal}

	// Recoverable: log, skip the current run or clone, continue.
	ErrTrajectoryMissing = &TrajlogError{Code: "E_TRAJECTORY_MISSING", Class: ClassRecoverable}
	ErrTopologyMissing   = &TrajlogError{Code: "E_TOPOLOGY_MISSING", Class: ClassRecoverable}
	ErrConverterFailed   = &TrajlogError{Code: "E_CONVERTER_FAILED", Class: ClassRecoverable}
	ErrNoRuns            = &TrajlogError{Code: "E_NO_RUNS", Class: ClassRecoverable}
	ErrNoClones          = &TrajlogError{Code: "E_NO_CLONES", Class: ClassRecoverable}
)
