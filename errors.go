package logroll

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	errInvalidEmptyFile      = errors.New("file must not be empty")
	errRemoveOtherNeedsCount = errors.New("limit.RemoveOtherLogFiles requires limit.Count > 0")
	errLoggerClosed          = errors.New("logroll: write to a closed Logger")
)

// ConfigError reports an invalid option supplied to New. It is always
// returned synchronously from New, never from a running Logger.
type ConfigError struct {
	Option string
	Value  interface{}
	cause  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("logroll: invalid option %s=%v: %v", e.Option, e.Value, e.cause)
}

func (e *ConfigError) Unwrap() error { return e.cause }

func newConfigError(option string, value interface{}, cause error) *ConfigError {
	return &ConfigError{Option: option, Value: value, cause: errors.WithStack(cause)}
}

// IoOpenError reports that the initial log file could not be created,
// e.g. because its parent directory is missing and Mkdir was not set.
type IoOpenError struct {
	Path  string
	cause error
}

func (e *IoOpenError) Error() string {
	return fmt.Sprintf("logroll: cannot open %s: %v", e.Path, e.cause)
}

func (e *IoOpenError) Unwrap() error { return e.cause }

func newIoOpenError(path string, cause error) *IoOpenError {
	return &IoOpenError{Path: path, cause: errors.Wrapf(cause, "open %s", path)}
}

// IoFlushError reports that flushing the active file before a rotation
// failed. The engine does not reopen the file; it keeps writing to the
// current one and retries rotation at the next boundary.
type IoFlushError struct {
	Path  string
	cause error
}

func (e *IoFlushError) Error() string {
	return fmt.Sprintf("logroll: flush %s failed: %v", e.Path, e.cause)
}

func (e *IoFlushError) Unwrap() error { return e.cause }

func newIoFlushError(path string, cause error) *IoFlushError {
	return &IoFlushError{Path: path, cause: errors.Wrapf(cause, "flush %s", path)}
}

// IoReopenError reports that opening the newly computed rotation target
// failed. The engine keeps the previous file open and continues.
type IoReopenError struct {
	Path  string
	cause error
}

func (e *IoReopenError) Error() string {
	return fmt.Sprintf("logroll: reopen %s failed: %v", e.Path, e.cause)
}

func (e *IoReopenError) Unwrap() error { return e.cause }

func newIoReopenError(path string, cause error) *IoReopenError {
	return &IoReopenError{Path: path, cause: errors.Wrapf(cause, "reopen %s", path)}
}

// UnlinkError reports that a retention deletion failed after exhausting
// all retries. Rotation itself is still considered successful.
type UnlinkError struct {
	Path  string
	cause error
}

func (e *UnlinkError) Error() string {
	return fmt.Sprintf("logroll: unlink %s failed after retries: %v", e.Path, e.cause)
}

func (e *UnlinkError) Unwrap() error { return e.cause }

func newUnlinkError(path string, cause error) *UnlinkError {
	return &UnlinkError{Path: path, cause: errors.Wrapf(cause, "unlink %s", path)}
}

// ScanError reports a directory listing failure encountered while
// enforcing retention with RemoveOtherLogFiles. (Scan failures during
// startup resumption are deliberately swallowed; see detectLastNumber.)
type ScanError struct {
	Dir   string
	cause error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("logroll: scan %s failed: %v", e.Dir, e.cause)
}

func (e *ScanError) Unwrap() error { return e.cause }

func newScanError(dir string, cause error) *ScanError {
	return &ScanError{Dir: dir, cause: errors.Wrapf(cause, "readdir %s", dir)}
}
