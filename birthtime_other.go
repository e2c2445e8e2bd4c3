//go:build !linux && !windows

package logroll

import (
	"os"
	"time"
)

// birthTime falls back to modification time on platforms where this
// module does not special-case a native birth-time syscall (darwin and
// the BSDs expose Birthtimespec through golang.org/x/sys/unix but with
// a field layout that differs enough across them to be worth a
// dedicated follow-up rather than guessed at here).
func birthTime(fi os.FileInfo) time.Time {
	return fi.ModTime()
}
