//go:build linux

package logroll

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime returns a best-effort creation time for fi. Linux's stat(2)
// does not expose a true birth time without statx(2); we fall back to
// ctime (metadata-change time) via unix.Stat_t, which is the closest
// portable proxy. ctime is updated by every append, so for a file that
// has been written to since it was created it reflects the last write,
// not the creation. See DESIGN.md for the platform-coverage discussion.
func birthTime(fi os.FileInfo) time.Time {
	st, ok := fi.Sys().(*unix.Stat_t)
	if !ok {
		return fi.ModTime()
	}
	return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
}
