//go:build windows

package logroll

import (
	"errors"

	"golang.org/x/sys/windows"
)

// isRetryableUnlinkErr reports whether err looks like a transient
// Windows sharing violation: another handle — commonly an AV scanner,
// or the sink's own just-closed handle — still dropping its lock
// while this unlink races it.
func isRetryableUnlinkErr(err error) bool {
	var errno windows.Errno
	if errors.As(err, &errno) {
		switch errno {
		case windows.ERROR_SHARING_VIOLATION, windows.ERROR_ACCESS_DENIED, windows.ERROR_LOCK_VIOLATION:
			return true
		default:
			return false
		}
	}
	// Unknown error shape (e.g. wrapped os.PathError without a syscall
	// errno): retry anyway, bounded by maxAttempts.
	return true
}
