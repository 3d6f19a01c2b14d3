package ingest

import (
	"math"
	"strconv"
	"strings"
)

const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// IsValidLatitude reports whether v is a non-empty value that coerces to a
// number in [-90, 90].
func IsValidLatitude(v any) bool {
	n, ok := toNumber(v)
	return ok && n >= minLatitude && n <= maxLatitude
}

// IsValidLongitude reports whether v is a non-empty value that coerces to a
// number in [-180, 180].
func IsValidLongitude(v any) bool {
	n, ok := toNumber(v)
	return ok && n >= minLongitude && n <= maxLongitude
}

// isEmpty reports nil, absent and whitespace-only values.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

// toNumber strictly coerces a scalar to a float64. Empty values, booleans
// and anything not wholly numeric yield false, as does NaN.
func toNumber(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case nil:
		return 0, false
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		n = f
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int8:
		n = float64(t)
	case int16:
		n = float64(t)
	case int32:
		n = float64(t)
	case int64:
		n = float64(t)
	case uint:
		n = float64(t)
	case uint8:
		n = float64(t)
	case uint16:
		n = float64(t)
	case uint32:
		n = float64(t)
	case uint64:
		n = float64(t)
	default:
		return 0, false
	}
	if math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// parseLeadingFloat parses the longest numeric prefix of v, so "40.7 N"
// yields 40.7. Non-string numerics pass through toNumber.
func parseLeadingFloat(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok {
		return toNumber(v)
	}
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	end := numericPrefix(s)
	if end == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// out-of-range exponents still give ±Inf with a range error
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// numericPrefix returns the length of the decimal literal at the start of s:
// optional sign, digits with an optional fraction, optional exponent.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
