package logroll

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const symlinkName = "current.log"

// ensureSymlink keeps dirname(activeFile)/current.log pointing (via a
// relative, basename-only target) at activeFile, doing nothing if it
// already does.
func ensureSymlink(activeFile string) error {
	dir := filepath.Dir(activeFile)
	link := filepath.Join(dir, symlinkName)
	wantTarget := filepath.Base(activeFile)

	if fi, err := os.Lstat(link); err == nil {
		if fi.Mode()&os.ModeSymlink != 0 {
			if cur, err := os.Readlink(link); err == nil && cur == wantTarget {
				return nil
			}
		}
		if err := os.Remove(link); err != nil {
			return errors.Wrapf(err, "removing stale symlink %s", link)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "lstat %s", link)
	}

	if err := os.Symlink(wantTarget, link); err != nil {
		return errors.Wrapf(err, "symlink %s -> %s", link, wantTarget)
	}
	return nil
}
