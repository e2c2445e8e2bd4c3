package logroll

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureSymlink_CreatesAndIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "log.1.log")
	writeTestFile(t, target)

	require.NoError(t, ensureSymlink(target))

	link := filepath.Join(dir, symlinkName)
	fi, err := os.Lstat(link)
	require.NoError(t, err)
	require.True(t, fi.Mode()&os.ModeSymlink != 0)

	dest, err := os.Readlink(link)
	require.NoError(t, err)
	require.Equal(t, "log.1.log", dest)

	// Second call must be a no-op: no error, same target.
	require.NoError(t, ensureSymlink(target))
	dest2, err := os.Readlink(link)
	require.NoError(t, err)
	require.Equal(t, dest, dest2)
}

func TestEnsureSymlink_RepointsOnRotation(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "log.1.log")
	second := filepath.Join(dir, "log.2.log")
	writeTestFile(t, first)
	writeTestFile(t, second)

	require.NoError(t, ensureSymlink(first))
	require.NoError(t, ensureSymlink(second))

	link := filepath.Join(dir, symlinkName)
	dest, err := os.Readlink(link)
	require.NoError(t, err)
	require.Equal(t, "log.2.log", dest)
}
