// Package logroll is a rotating file sink for structured logs. It
// accepts a stream of already-formatted records and appends them to a
// current log file that is transparently rotated — closed and replaced
// with a fresh file named by the configured naming convention —
// whenever a time boundary or a size threshold is crossed. It also
// maintains retention, an optional "current.log" symlink, and resumes
// an existing numbering series across process restarts.
package logroll

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ensure we always implement io.WriteCloser.
var _ io.WriteCloser = (*Logger)(nil)

// Logger is an io.WriteCloser that writes to the currently active
// rotation file, plus the mutex and background-cleanup machinery
// needed to run it concurrently.
type Logger struct {
	opts *Options

	// Read-only after New.
	base       string
	ext        string
	dateFormat string
	sizeMax    uint64
	sizeOn     bool
	freq       *FrequencySpec

	mu               sync.Mutex // guards everything below
	number           uint32
	date             *string
	fileName         string
	currentSize      uint64
	createdFileNames []string
	sink             Sink
	rollTimer        clockwork.Timer
	isClosing        bool
	isRolling        bool

	cleanupWG sync.WaitGroup
}

// New creates a Logger with the provided options. file (WithFile) is
// required; everything else has the default spelled out on its
// With* option.
func New(options ...Option) (*Logger, error) {
	opts := parseOptions(options...)

	if opts.file == "" {
		return nil, newConfigError("file", opts.file, errInvalidEmptyFile)
	}

	sizeMax, sizeOn, err := parseSize(opts.size)
	if err != nil {
		return nil, newConfigError("size", opts.size, err)
	}

	freq, err := parseFrequency(opts.frequency, opts.clock)
	if err != nil {
		return nil, newConfigError("frequency", opts.frequency, err)
	}

	if opts.dateFormat != "" {
		if err := validateDateFormat(opts.dateFormat); err != nil {
			return nil, newConfigError("dateFormat", opts.dateFormat, err)
		}
	}

	if opts.limit.Count == 0 && opts.limit.RemoveOtherLogFiles {
		return nil, newConfigError("limit", opts.limit, errRemoveOtherNeedsCount)
	}

	base, ext, err := sanitizeFile(opts.file, opts.extension)
	if err != nil {
		return nil, newConfigError("file", opts.file, err)
	}
	if err := validateFileName(base); err != nil {
		return nil, newConfigError("file", opts.file, err)
	}

	var date *string
	var sinceMs *int64
	if freq != nil {
		start := freq.Start
		sinceMs = &start
		if opts.dateFormat != "" {
			d := formatDate(time.UnixMilli(freq.Start), opts.dateFormat)
			date = &d
		}
	}

	number := detectLastNumber(base, sinceMs, ext)
	fileName := buildFileName(base, date, number, ext)

	var currentSize uint64
	if info, err := os.Stat(fileName); err == nil {
		currentSize = uint64(info.Size())
	}

	sink := opts.sink
	if sink == nil {
		sink = &fileSink{mkdir: opts.mkdir}
	}
	if err := sink.Reopen(fileName); err != nil {
		return nil, newIoOpenError(fileName, err)
	}

	l := &Logger{
		opts:        opts,
		base:        base,
		ext:         ext,
		dateFormat:  opts.dateFormat,
		sizeMax:     sizeMax,
		sizeOn:      sizeOn,
		freq:        freq,
		number:      number,
		date:        date,
		fileName:    fileName,
		currentSize: currentSize,
		sink:        sink,
	}
	if number > 0 {
		l.createdFileNames = []string{fileName}
	}

	if opts.symlink {
		if err := ensureSymlink(fileName); err != nil {
			l.reportError(err)
		}
	}

	if freq != nil {
		l.scheduleRoll()
	}

	return l, nil
}

// Write implements io.Writer. A write that crosses the size threshold
// (when configured) triggers a rotation, but the triggering write
// itself always lands in the file active at the moment Write was
// called; only the next write observes the rotation.
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.write(p)
}

// write performs the actual append, then evaluates the size trigger
// against the sink's own write completion: size counting fires after
// bytes are accepted, so a write that crosses the threshold still
// lands entirely in the file that was active when Write was called;
// the rotation it triggers only affects where the *next* write goes.
func (l *Logger) write(p []byte) (int, error) {
	if l.isClosing {
		return 0, errLoggerClosed
	}

	n, err := l.sink.Write(p)
	l.currentSize += uint64(n)

	if l.sizeOn && !l.isRolling && l.currentSize >= l.sizeMax {
		l.isRolling = true
		oldFileName := l.fileName
		l.number++
		l.fileName = buildFileName(l.base, l.date, l.number, l.ext)
		l.currentSize = 0
		l.rollLocked(oldFileName)
		l.isRolling = false
	}

	return n, err
}

// Rotate forcibly rotates the log file outside the normal rotation
// triggers (e.g. in response to an external signal), then runs the
// same retention pass a regular rotation would.
func (l *Logger) Rotate() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.isClosing {
		return nil
	}
	oldFileName := l.fileName
	l.number++
	l.fileName = buildFileName(l.base, l.date, l.number, l.ext)
	l.currentSize = 0
	return l.rollLocked(oldFileName)
}

// Close implements io.Closer. It cancels any pending rotation timer,
// flushes and closes the sink, and blocks until any in-flight
// asynchronous retention completes.
func (l *Logger) Close() error {
	l.mu.Lock()
	l.isClosing = true
	if l.rollTimer != nil {
		l.rollTimer.Stop()
	}
	flushErr := l.sink.Flush()
	closeErr := l.sink.Close()
	l.mu.Unlock()

	l.cleanupWG.Wait()

	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// currentFilename returns the path the Logger is currently writing to.
func (l *Logger) currentFilename() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fileName
}

// rollLocked is the rotation critical section: flush, reopen, symlink,
// then retention. l.mu must be held by the caller, and
// l.fileName/l.number/l.date/l.currentSize must already reflect the
// *new* target; oldFileName is only used for error messages and the
// OnRotate callback.
func (l *Logger) rollLocked(oldFileName string) error {
	if l.isClosing {
		return nil
	}

	if err := l.sink.Flush(); err != nil {
		e := newIoFlushError(oldFileName, err)
		l.reportError(e)
		return e
	}

	if l.isClosing {
		return nil
	}

	rotated := true
	if err := l.sink.Reopen(l.fileName); err != nil {
		rotated = false
		l.reportError(newIoReopenError(l.fileName, err))
	}

	if rotated {
		if l.opts.symlink {
			if err := ensureSymlink(l.fileName); err != nil {
				l.reportError(err)
			}
		}
		if l.opts.onRotate != nil {
			l.opts.onRotate(oldFileName, l.fileName)
		}
	}

	if l.opts.limit.Count > 0 {
		l.launchRetention()
	}

	return nil
}

// launchRetention starts the asynchronous retention pass that follows
// every rotation. Mode A's bookkeeping (which files this process
// created) touches shared engine state and so runs synchronously,
// right here, before the goroutine is spawned; only the unlink I/O
// itself (and, for Mode B, the directory scan) happens in the
// background.
func (l *Logger) launchRetention() {
	limit := l.opts.limit
	tries := l.opts.unlinkMaxAttempts
	delay := time.Duration(l.opts.unlinkRetryDelayMs) * time.Millisecond

	l.cleanupWG.Add(1)
	if limit.RemoveOtherLogFiles {
		base, dateFormat, ext := l.base, l.dateFormat, l.ext
		go func() {
			defer l.cleanupWG.Done()
			lp := limitPolicy{Count: limit.Count, RemoveOther: true, unlinkTries: tries, unlinkDelay: delay}
			if err := removeOldFilesModeB(lp, base, dateFormat, ext); err != nil {
				l.reportError(err)
			}
			l.completeCleanup()
		}()
		return
	}

	victims := victimsModeA(limit.Count, &l.createdFileNames, l.fileName)
	go func() {
		defer l.cleanupWG.Done()
		if err := unlinkVictims(victims, tries, delay); err != nil {
			l.reportError(err)
		}
		l.completeCleanup()
	}()
}

func (l *Logger) completeCleanup() {
	if l.opts.onCleanupComplete != nil {
		l.opts.onCleanupComplete()
	}
}

func (l *Logger) reportError(err error) {
	if l.opts.onError != nil {
		l.opts.onError(err)
		return
	}
	_, _ = tracef(os.Stderr, "%v", err)
}

// scheduleRoll arms (or re-arms) the one-shot rotation timer for the
// next frequency boundary. The timer handle comes from the configured
// clockwork.Clock so tests can drive it deterministically with a
// FakeClock instead of sleeping.
func (l *Logger) scheduleRoll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scheduleRollLocked()
}

func (l *Logger) scheduleRollLocked() {
	if l.freq == nil || l.isClosing {
		return
	}
	if l.rollTimer != nil {
		l.rollTimer.Stop()
	}
	delay := time.Duration(l.freq.Next-l.opts.clock.Now().UnixMilli()) * time.Millisecond
	if delay < 0 {
		delay = 0
	}
	l.rollTimer = l.opts.clock.AfterFunc(delay, l.onTimerFire)
}

// onTimerFire is the time trigger: it advances date/number, rolls,
// then reschedules for the next boundary.
func (l *Logger) onTimerFire() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.isClosing {
		return
	}

	prevDate := l.date
	var newDate *string
	if l.dateFormat != "" {
		d := formatDate(time.UnixMilli(l.freq.Next), l.dateFormat)
		newDate = &d
	}
	dateChanged := !samePtrString(prevDate, newDate)

	if l.dateFormat != "" && dateChanged {
		// New period starts a fresh sequence; the date segment
		// disambiguates it from the previous period's files.
		l.number = 0
	}
	l.date = newDate
	l.number++

	oldFileName := l.fileName
	l.fileName = buildFileName(l.base, l.date, l.number, l.ext)
	l.currentSize = 0

	l.rollLocked(oldFileName)

	l.freq.Next = getNext(l.freq, l.opts.clock)
	l.scheduleRollLocked()
}

func samePtrString(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return *a == *b
}
