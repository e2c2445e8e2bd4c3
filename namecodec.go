package logroll

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// forbiddenDateFormatChars: the formatted date becomes part of the file
// name, so none of these path-unsafe characters may appear in a
// dateFormat pattern.
const forbiddenDateFormatChars = `/\?%*:|"<>`

// forbiddenFileNameChars is checked against a path after stripping an
// optional leading Windows drive letter.
const forbiddenFileNameChars = `<>"|?*`

// buildFileName composes "{base}[.{date}].{number}[.{ext}]". number
// defaults to 1 when 0 is passed.
func buildFileName(base string, date *string, number uint32, ext string) string {
	if number == 0 {
		number = 1
	}
	var b strings.Builder
	b.WriteString(base)
	if date != nil && *date != "" {
		b.WriteByte('.')
		b.WriteString(*date)
	}
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(uint64(number), 10))
	if ext != "" {
		b.WriteByte('.')
		b.WriteString(strings.TrimPrefix(ext, "."))
	}
	return b.String()
}

// identifiedFile is the result of a successful identifyLogFile call.
type identifiedFile struct {
	FileTime   int64 // epoch-ms, 0 if no dateFormat configured
	FileNumber uint32
}

// identifyLogFile reverse-parses a candidate filename produced (or
// claimed to be produced) by buildFileName. It returns ok=false for
// anything that does not match the configured shape; it has no error
// return, so the reason for a mismatch is not reported.
func identifyLogFile(candidateName, base string, dateFormat, extension string) (identifiedFile, bool) {
	if !strings.HasPrefix(candidateName, base) {
		return identifiedFile{}, false
	}
	rawTail := candidateName[len(base):]
	tail := strings.TrimPrefix(rawTail, ".")
	if tail == rawTail {
		// base wasn't followed by the expected separator
		return identifiedFile{}, false
	}

	segments := strings.Split(tail, ".")
	wantSegments := 1
	if dateFormat != "" {
		wantSegments++
	}
	if extension != "" {
		wantSegments++
	}
	if len(segments) != wantSegments {
		return identifiedFile{}, false
	}

	idx := 0
	var fileTime int64
	if dateFormat != "" {
		t, err := parseDate(segments[idx], dateFormat)
		if err != nil {
			return identifiedFile{}, false
		}
		fileTime = t.UnixMilli()
		idx++
	}

	numStr := segments[idx]
	idx++
	n, err := strconv.ParseUint(numStr, 10, 32)
	if err != nil {
		return identifiedFile{}, false
	}

	if extension != "" {
		gotExt := strings.TrimPrefix(segments[idx], ".")
		if gotExt != strings.TrimPrefix(extension, ".") {
			return identifiedFile{}, false
		}
	}

	return identifiedFile{FileTime: fileTime, FileNumber: uint32(n)}, true
}

// sanitizeFile resolves a caller-supplied file path into a (base,
// extension) pair. Only a literal path string is accepted; there is no
// callable form that computes the path.
func sanitizeFile(file string, explicitExt string) (base, ext string, err error) {
	if file == "" {
		return "", "", errors.New("file must not be empty")
	}

	dir, stem := filepath.Split(file)
	if stem == "" {
		stem = "app"
	}

	peeled := ""
	if dot := strings.LastIndex(stem, "."); dot > 0 {
		peeled = stem[dot+1:]
		stem = stem[:dot]
	}

	switch {
	case explicitExt != "":
		ext = strings.TrimPrefix(explicitExt, ".")
	case len(peeled) >= 2:
		ext = peeled
	default:
		ext = "log"
	}

	// Concatenate rather than filepath.Join/Clean: the latter would
	// silently eat a caller's leading "./", changing the on-disk
	// pattern the caller asked for.
	base = dir + stem
	return base, ext, nil
}

// stripWindowsDrive removes a leading "C:" style drive prefix, if any.
func stripWindowsDrive(path string) string {
	if len(path) >= 2 && path[1] == ':' {
		c := path[0]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			return path[2:]
		}
	}
	return path
}

// validateFileName rejects path characters that are invalid or
// unsafe across target platforms.
func validateFileName(path string) error {
	rest := stripWindowsDrive(path)
	if strings.ContainsAny(rest, forbiddenFileNameChars) {
		return errors.Errorf("path %q contains a forbidden character", path)
	}
	if strings.Contains(rest, ":") {
		return errors.Errorf("path %q contains a forbidden ':'", path)
	}
	if strings.ContainsRune(rest, 0) {
		return errors.Errorf("path %q contains a NUL byte", path)
	}
	return nil
}

// validateDateFormat rejects a dateFormat pattern containing one of
// forbiddenDateFormatChars. A '.' is not rejected, although
// identifyLogFile treats every dot as a segment boundary.
func validateDateFormat(pattern string) error {
	if strings.ContainsAny(pattern, forbiddenDateFormatChars) {
		return errors.Errorf("dateFormat %q contains a forbidden character (one of %s)", pattern, forbiddenDateFormatChars)
	}
	return nil
}

// dateFnsTokens is a small, practical subset of date-fns-compatible
// tokens mapped to their Go reference-time layout equivalents.
// Unsupported multi-char runs are left as literals by
// dateFnsToGoLayout, since a dot is always treated as a segment
// boundary and nothing finer is promised.
//
// No available library formats date-fns-style (non-'%') tokens —
// lestrrat-go/strftime is '%'-token based and '%' is itself a
// forbidden dateFormat character — so this translation table plus the
// standard library's time.Format is the only viable implementation.
// See DESIGN.md for the full reasoning.
var dateFnsTokens = []struct {
	token  string
	layout string
}{
	{"yyyy", "2006"},
	{"yy", "06"},
	{"MM", "01"},
	{"dd", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
	{"SSS", "000"},
}

func dateFnsToGoLayout(pattern string) string {
	var b strings.Builder
	i := 0
	for i < len(pattern) {
		matched := false
		for _, tok := range dateFnsTokens {
			if strings.HasPrefix(pattern[i:], tok.token) {
				b.WriteString(tok.layout)
				i += len(tok.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}

// formatDate renders t under dateFormat (a date-fns-compatible
// pattern). It is the inverse of parseDate.
func formatDate(t time.Time, dateFormat string) string {
	return t.Format(dateFnsToGoLayout(dateFormat))
}

// parseDate parses s under dateFormat. Used by identifyLogFile to
// recover fileTime from an on-disk filename.
func parseDate(s, dateFormat string) (time.Time, error) {
	return time.ParseInLocation(dateFnsToGoLayout(dateFormat), s, time.Local)
}
