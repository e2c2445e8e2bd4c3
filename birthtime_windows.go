//go:build windows

package logroll

import (
	"os"
	"syscall"
	"time"
)

// birthTime reads the NTFS creation time, which Windows exposes
// natively (unlike POSIX stat). Using stdlib syscall here instead of
// golang.org/x/sys/windows is deliberate: the Win32FileAttributeData
// creation-time field is already available without the extra
// dependency (x/sys/windows is used only by unlinkretry_windows.go, for
// its named error constants) — see DESIGN.md.
func birthTime(fi os.FileInfo) time.Time {
	d, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return fi.ModTime()
	}
	return time.Unix(0, d.CreationTime.Nanoseconds())
}
