package logroll

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultUnlinkMaxAttempts = 50
	defaultUnlinkRetryDelay  = 100 * time.Millisecond
)

// limitPolicy is the retention configuration used internally by the
// retention pass.
type limitPolicy struct {
	Count       uint32
	RemoveOther bool
	unlinkDelay time.Duration // overridable by tests
	unlinkTries int
}

// victimsModeA implements Mode A's bookkeeping (retain only files this
// process created): it is pure/cheap (no I/O) and mutates created in
// place, so the engine runs it synchronously under its lock; the
// returned paths are then unlinked asynchronously by unlinkVictims.
func victimsModeA(count uint32, created *[]string, newFile string) []string {
	*created = append(*created, newFile)

	var victims []string
	for uint32(len(*created)) > count+1 {
		victims = append(victims, (*created)[0])
		*created = (*created)[1:]
	}
	return victims
}

// unlinkVictims unlinks every path in victims, using unlinkWithRetry
// for each, and returns the first error encountered (if any) after
// attempting all of them.
func unlinkVictims(victims []string, maxAttempts int, delay time.Duration) error {
	var firstErr error
	for _, path := range victims {
		if err := unlinkWithRetry(path, maxAttempts, delay); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// removeOldFilesModeB implements Mode B end to end (retain only the N
// newest matching files in the directory, regardless of which process
// created them): directory scan, sort, unlink. It touches no shared
// engine state, so the engine runs it entirely in a background
// goroutine.
func removeOldFilesModeB(limit limitPolicy, base, dateFormat, extension string) error {
	matches, err := listMatchingFiles(base, dateFormat, extension)
	if err != nil {
		return newScanError(filepath.Dir(base), err)
	}

	type candidate struct {
		path string
		id   identifiedFile
	}
	candidates := make([]candidate, 0, len(matches))
	for _, m := range matches {
		id, ok := identifyLogFile(m, base, dateFormat, extension)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{path: m, id: id})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].id.FileTime != candidates[j].id.FileTime {
			return candidates[i].id.FileTime < candidates[j].id.FileTime
		}
		return candidates[i].id.FileNumber < candidates[j].id.FileNumber
	})

	if uint32(len(candidates)) <= limit.Count {
		return nil
	}
	toRemove := candidates[:uint32(len(candidates))-limit.Count]

	var firstErr error
	for _, c := range toRemove {
		if err := unlinkWithRetry(c.path, limit.unlinkTries, limit.unlinkDelay); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// unlinkWithRetry removes path, retrying on transient failures up to
// maxAttempts. ENOENT is treated as success throughout, since the file
// already being gone
// satisfies the caller's intent.
func unlinkWithRetry(path string, maxAttempts int, delay time.Duration) error {
	if maxAttempts <= 0 {
		maxAttempts = defaultUnlinkMaxAttempts
	}
	if delay <= 0 {
		delay = defaultUnlinkRetryDelay
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := os.Remove(path)
		if err == nil || os.IsNotExist(err) {
			return nil
		}
		lastErr = err
		if !isRetryableUnlinkErr(err) {
			break
		}
		time.Sleep(delay)
	}
	return newUnlinkError(path, errors.WithStack(lastErr))
}
