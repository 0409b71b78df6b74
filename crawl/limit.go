package crawl

import (
	"math"
	"strconv"
	"strings"
)

// Page limits for a single crawl.
const (
	// DefaultPageLimit applies when the requested limit is missing or not a number.
	DefaultPageLimit = 20
	// MaxPageLimit bounds resource use on very large sites.
	MaxPageLimit = 75
)

// PageLimit floors n and clamps it into [1, MaxPageLimit].
// Non-finite values and values that floor to zero yield DefaultPageLimit.
func PageLimit(n float64) int {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return DefaultPageLimit
	}
	f := math.Floor(n)
	switch {
	case f == 0:
		return DefaultPageLimit
	case f < 1:
		return 1
	case f > MaxPageLimit:
		return MaxPageLimit
	}
	return int(f)
}

// ParsePageLimit is PageLimit for user input. Surrounding whitespace is
// ignored. Accepted forms are decimal numbers with an optional sign,
// fraction and exponent ("12", "7.9", "1e2"), and unsigned integers with a
// 0x, 0o or 0b prefix ("0x10" is 16). Anything else, including the empty
// string, yields DefaultPageLimit.
func ParsePageLimit(s string) int {
	s = strings.TrimSpace(s)
	if hasRadixPrefix(s) {
		n, err := strconv.ParseUint(s[2:], radix(s[1]), 64)
		if err != nil {
			return DefaultPageLimit
		}
		return PageLimit(float64(n))
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return DefaultPageLimit
	}
	return PageLimit(n)
}

func hasRadixPrefix(s string) bool {
	return len(s) > 2 && s[0] == '0' && radix(s[1]) != 0
}

func radix(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}
