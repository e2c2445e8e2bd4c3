//go:build !windows

package logroll

// isRetryableUnlinkErr on POSIX systems: unlink(2) failures outside of
// ENOENT (handled by the caller as success) are not generally
// transient, but we still bound retries instead of assuming success or
// giving up after one attempt, keeping the retry policy uniform
// across platforms.
func isRetryableUnlinkErr(err error) bool {
	return true
}
