package logroll

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	sizeUnitB = 1
	sizeUnitK = 1024
	sizeUnitM = 1024 * 1024
	sizeUnitG = 1024 * 1024 * 1024
)

var sizePattern = regexp.MustCompile(`^([\d.]+)(\w?)$`)

// parseSize parses a size threshold string. An empty input disables
// size-based rotation (ok=false). A bare number is interpreted as
// megabytes.
func parseSize(input string) (bytes uint64, ok bool, err error) {
	if input == "" {
		return 0, false, nil
	}

	m := sizePattern.FindStringSubmatch(input)
	if m == nil {
		return 0, false, errors.Errorf("size %q is not of the form <n>[b|k|m|g]", input)
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false, errors.Wrapf(err, "size %q has an unparseable numeric part", input)
	}

	unit := strings.ToLower(m[2])
	var mult float64
	switch unit {
	case "b":
		mult = sizeUnitB
	case "k":
		mult = sizeUnitK
	case "m", "":
		mult = sizeUnitM
	case "g":
		mult = sizeUnitG
	default:
		return 0, false, errors.Errorf("size %q has an unknown unit %q", input, unit)
	}

	return uint64(n * mult), true, nil
}
