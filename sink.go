package logroll

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Sink is the buffered-file-writer abstraction the engine rotates:
// write, flush, reopen(path), close. Go's synchronous call semantics
// make a separate write-completion event redundant — the engine
// already learns n from Write's own return value — so Sink has no
// event surface; error and completion notifications are realized
// instead through the Options.OnError / OnRotate / OnCleanupComplete
// callbacks the engine invokes directly.
//
// Logger's default Sink (fileSink) is intentionally unbuffered: it
// appends straight to the *os.File, since the engine, not the sink,
// owns durability at rotation boundaries (flush = fsync before
// reopen). A caller that wants real buffering can supply its own Sink
// via WithSink and put a bufio.Writer (or any io.Writer-backed buffer)
// in front of the same *os.File.
type Sink interface {
	io.Writer
	// Flush persists any buffered bytes before a rotation proceeds.
	Flush() error
	// Reopen closes the current destination (if any) and opens path,
	// creating parent directories first when mkdir is enabled.
	Reopen(path string) error
	// Close releases the sink's resources. After Close, Write must
	// return an error.
	Close() error
}

// fileSink is the default Sink: a thin, unbuffered wrapper around
// *os.File.
type fileSink struct {
	mkdir bool
	file  *os.File
}

func (s *fileSink) Write(p []byte) (int, error) {
	if s.file == nil {
		return 0, errors.New("logroll: write to closed sink")
	}
	return s.file.Write(p)
}

func (s *fileSink) Flush() error {
	if s.file == nil {
		return nil
	}
	return s.file.Sync()
}

func (s *fileSink) Reopen(path string) error {
	if s.mkdir {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return errors.Wrapf(err, "mkdir %s", filepath.Dir(path))
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if s.file != nil {
		_ = s.file.Close()
	}
	s.file = f
	return nil
}

func (s *fileSink) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
