package logroll

import (
	"github.com/jonboulle/clockwork"
)

// Limit is the retention policy, exposed as an options sub-struct.
type Limit struct {
	// Count is the number of retained files in addition to the active
	// one. With RemoveOtherLogFiles set, Count is instead the number of
	// matching files kept in all, the active one included. 0 disables
	// retention.
	Count uint32
	// RemoveOtherLogFiles, when true, makes retention eligible to
	// delete any file in the directory matching the base pattern, not
	// only files this process created.
	RemoveOtherLogFiles bool
}

// Options is supplied as the optional arguments for New.
type Options struct {
	file string

	size       string
	frequency  string
	extension  string
	symlink    bool
	limit      Limit
	dateFormat string
	mkdir      bool

	clock clockwork.Clock
	sink  Sink

	onError           func(error)
	onRotate          func(oldPath, newPath string)
	onCleanupComplete func()

	unlinkMaxAttempts  int
	unlinkRetryDelayMs int64
}

// Option is the functional option type.
type Option func(*Options)

func newDefaultOptions() *Options {
	return &Options{
		clock:             clockwork.NewRealClock(),
		unlinkMaxAttempts: defaultUnlinkMaxAttempts,
	}
}

func parseOptions(setters ...Option) *Options {
	opts := newDefaultOptions()
	for _, setter := range setters {
		setter(opts)
	}
	return opts
}

// WithFile sets the base path (directory + stem) to rotate. Required.
func WithFile(file string) Option {
	return func(o *Options) { o.file = file }
}

// WithSize sets the size threshold string, e.g. "20b", "10m", "1g", or
// a bare number interpreted as megabytes. Empty disables size-based
// rotation.
//
// Default: disabled.
func WithSize(size string) Option {
	return func(o *Options) { o.size = size }
}

// WithFrequency sets the time-based rotation policy: "daily", "hourly",
// or a positive integer millisecond count as a string. Empty disables
// time-based rotation.
//
// Default: disabled.
func WithFrequency(frequency string) Option {
	return func(o *Options) { o.frequency = frequency }
}

// WithExtension overrides the extension sanitizeFile would otherwise
// infer.
//
// Default: inferred by sanitizeFile.
func WithExtension(ext string) Option {
	return func(o *Options) { o.extension = ext }
}

// WithSymlink enables maintaining a "current.log" sibling symlink that
// points at the active file.
//
// Default: false.
func WithSymlink(enabled bool) Option {
	return func(o *Options) { o.symlink = enabled }
}

// WithLimit sets the retention policy.
//
// Default: disabled (retain everything).
func WithLimit(limit Limit) Option {
	return func(o *Options) { o.limit = limit }
}

// WithDateFormat sets a date-fns-compatible pattern inserted between
// the base and the sequence number. Forbidden characters:
// / \ ? % * : | " < >.
//
// Default: disabled (no date segment).
func WithDateFormat(pattern string) Option {
	return func(o *Options) { o.dateFormat = pattern }
}

// WithMkdir enables creating missing parent directories on open and
// reopen.
//
// Default: false.
func WithMkdir(enabled bool) Option {
	return func(o *Options) { o.mkdir = enabled }
}

// WithClock specifies the clock used by Logger to determine the
// current time and to schedule rotation timers. Tests use
// clockwork.NewFakeClock() in place of the default real clock.
//
// Default: clockwork.NewRealClock().
func WithClock(clock clockwork.Clock) Option {
	return func(o *Options) { o.clock = clock }
}

// WithSink overrides the default unbuffered *os.File-backed Sink, e.g.
// to add application-level buffering in front of the same file.
//
// Default: the built-in fileSink.
func WithSink(sink Sink) Option {
	return func(o *Options) { o.sink = sink }
}

// WithOnError registers a callback invoked whenever a rotation-related
// operation fails in a way the engine tolerates (flush, reopen,
// unlink, scan).
func WithOnError(fn func(error)) Option {
	return func(o *Options) { o.onError = fn }
}

// WithOnRotate registers a callback invoked after every successful
// roll, with the previous and new active file paths.
func WithOnRotate(fn func(oldPath, newPath string)) Option {
	return func(o *Options) { o.onRotate = fn }
}

// WithOnCleanupComplete registers a callback invoked when an
// asynchronous retention pass finishes.
func WithOnCleanupComplete(fn func()) Option {
	return func(o *Options) { o.onCleanupComplete = fn }
}

// WithUnlinkRetry overrides the retry bound and delay used by
// unlink retry during retention. Intended for tests; production
// defaults are 50 attempts x 100ms.
func WithUnlinkRetry(maxAttempts int, delayMs int64) Option {
	return func(o *Options) {
		o.unlinkMaxAttempts = maxAttempts
		o.unlinkRetryDelayMs = delayMs
	}
}
