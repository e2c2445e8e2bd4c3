package logroll

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

const testBaseDir = "_testlogs"

func TestMain(m *testing.M) {
	os.RemoveAll(testBaseDir)
	code := m.Run()
	os.RemoveAll(testBaseDir)
	os.Exit(code)
}

func newTestDir(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(testBaseDir, name)
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// Time-based rotation.
func TestLogger_TimeBasedRotation(t *testing.T) {
	dir := newTestDir(t, "time-based")
	clock := clockwork.NewFakeClock()

	l, err := New(
		WithFile(filepath.Join(dir, "log")),
		WithFrequency("100"),
		WithMkdir(true),
		WithClock(clock),
	)
	require.NoError(t, err)
	defer l.Close()

	_, err = l.Write([]byte("#1\n#2\n"))
	require.NoError(t, err)

	clock.Advance(110 * time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, err = l.Write([]byte("#3\n#4\n"))
	require.NoError(t, err)

	clock.Advance(110 * time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, l.Close())

	f1 := filepath.Join(dir, "log.1.log")
	f2 := filepath.Join(dir, "log.2.log")
	f3 := filepath.Join(dir, "log.3.log")
	f4 := filepath.Join(dir, "log.4.log")

	require.FileExists(t, f1)
	require.FileExists(t, f2)
	require.FileExists(t, f3)
	require.NoFileExists(t, f4)

	require.Contains(t, readFile(t, f1), "#1\n#2\n")
	require.NotContains(t, readFile(t, f1), "#3")
	require.Contains(t, readFile(t, f2), "#3\n#4\n")
}

// Size-based rotation.
func TestLogger_SizeBasedRotation(t *testing.T) {
	dir := newTestDir(t, "size-based")
	l, err := New(
		WithFile(filepath.Join(dir, "log")),
		WithSize("20b"),
		WithMkdir(true),
	)
	require.NoError(t, err)
	defer l.Close()

	record := []byte("0123456789012345678") // 19 bytes

	for i := 0; i < 3; i++ {
		_, err := l.Write(record)
		require.NoError(t, err)
	}
	require.NoError(t, l.Close())

	f1 := filepath.Join(dir, "log.1.log")
	f2 := filepath.Join(dir, "log.2.log")
	f3 := filepath.Join(dir, "log.3.log")

	require.FileExists(t, f1)
	require.FileExists(t, f2)
	require.NoFileExists(t, f3)

	info1, err := os.Stat(f1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, info1.Size(), int64(20))
	require.Less(t, info1.Size(), int64(40))

	info2, err := os.Stat(f2)
	require.NoError(t, err)
	require.LessOrEqual(t, info2.Size(), int64(20))
}

// Resume-in-place into an existing numbered file below the size limit.
func TestLogger_ResumeInPlace(t *testing.T) {
	dir := newTestDir(t, "resume")
	pre := filepath.Join(dir, "log.6.log")
	writeTestFile(t, pre)
	require.NoError(t, os.WriteFile(pre, []byte("--previous--\n"), 0o644))

	l, err := New(
		WithFile(filepath.Join(dir, "log")),
		WithSize("20b"),
		WithMkdir(true),
	)
	require.NoError(t, err)

	_, err = l.Write([]byte("x\n"))
	require.NoError(t, err)
	require.NoError(t, l.Close())

	require.NoFileExists(t, filepath.Join(dir, "log.1.log"))
	content := readFile(t, pre)
	require.Equal(t, "--previous--\nx\n", content)
}

// Retention on files this process created.
func TestLogger_RetentionOwnFiles(t *testing.T) {
	dir := newTestDir(t, "retention-own")
	l, err := New(
		WithFile(filepath.Join(dir, "log")),
		WithSize("20b"),
		WithMkdir(true),
		WithLimit(Limit{Count: 1}),
		WithUnlinkRetry(3, 1),
	)
	require.NoError(t, err)

	record := make([]byte, 19)
	for i := range record {
		record[i] = 'a'
	}
	for i := 0; i < 5; i++ {
		_, err := l.Write(record)
		require.NoError(t, err)
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, l.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2, "active file + 1 retained")
}

// Symlink target follows rotation.
func TestLogger_SymlinkRotates(t *testing.T) {
	dir := newTestDir(t, "symlink")
	clock := clockwork.NewFakeClock()

	l, err := New(
		WithFile(filepath.Join(dir, "log")),
		WithFrequency("100"),
		WithSymlink(true),
		WithMkdir(true),
		WithClock(clock),
	)
	require.NoError(t, err)
	defer l.Close()

	link := filepath.Join(dir, "current.log")
	dest, err := os.Readlink(link)
	require.NoError(t, err)
	require.Equal(t, "log.1.log", dest)

	clock.Advance(110 * time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	dest, err = os.Readlink(link)
	require.NoError(t, err)
	require.Equal(t, "log.2.log", dest)
}

func TestLogger_InvalidConfig(t *testing.T) {
	_, err := New(WithFile(""))
	require.Error(t, err)

	_, err = New(WithFile("logs/app"), WithSize("not-a-size"))
	require.Error(t, err)

	_, err = New(WithFile("logs/app"), WithFrequency("weekly"))
	require.Error(t, err)

	_, err = New(WithFile("logs/app"), WithDateFormat("yyyy/MM/dd"))
	require.Error(t, err)
}
