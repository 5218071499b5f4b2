package searchutil

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseTime parses a timestamp written either in RFC 3339 format (with
// optional fractional seconds) or as decimal Unix seconds (with an optional
// fractional part).  The result is in UTC.
func ParseTime(str string) (time.Time, error) {
	s := strings.TrimSpace(str)
	if s == "" {
		return time.Time{}, TimeError{Input: str, Err: ErrExpectNonEmpty}
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, TimeError{Input: str, Err: ErrExpectTimestamp}
	}
	return UnixFloat(f), nil
}

// UnixFloat converts fractional Unix seconds to a time.Time in UTC.
func UnixFloat(f float64) time.Time {
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC()
}
