package logroll

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
)

// tracef is the engine's own best-effort diagnostic trace. reportError
// uses it to write a tolerated error (flush, reopen, symlink, unlink,
// scan) to stderr when the caller hasn't registered an OnError
// callback. Conditions the engine swallows outright (ENOENT during
// unlink, readdir failure during resumption) are not traced.
// Structured logging of the host process's own diagnostics is out of
// scope here; this is a lightweight trace for the library's own
// internal conditions, not a logging library to log about the thing
// that logs.
func tracef(w io.Writer, format string, args ...any) (int, error) {
	pc := make([]uintptr, 15)
	n := runtime.Callers(2, pc)
	frames := runtime.CallersFrames(pc[:n])
	frame, _ := frames.Next()

	traceArgs := []any{
		filepath.Base(frame.File),
		frame.Line,
		filepath.Base(frame.Function),
	}
	args = append(traceArgs, args...)
	return fmt.Fprintf(w, "%s:%d %s "+format+"\n", args...)
}
