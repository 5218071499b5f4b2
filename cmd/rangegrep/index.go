package main

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/chronos-tachyon/rangesearch/lib/rangesearch"
	"github.com/chronos-tachyon/rangesearch/lib/searchutil"
)

// LineFormat selects how the timestamp of a log line is found.
type LineFormat uint8

const (
	// FormatJSON reads a field of a JSON object, holding either Unix
	// seconds or an RFC 3339 string.  This matches zerolog output.
	FormatJSON LineFormat = iota

	// FormatRFC3339 reads an RFC 3339 timestamp from the first
	// whitespace-separated word of the line.
	FormatRFC3339

	// FormatUnix reads Unix seconds from the first whitespace-separated
	// word of the line.
	FormatUnix
)

var formatNames = []string{"json", "rfc3339", "unix"}

// String returns the flag spelling of this LineFormat.
func (format LineFormat) String() string {
	if uint(format) < uint(len(formatNames)) {
		return formatNames[format]
	}
	return "LineFormat(" + strconv.FormatUint(uint64(format), 10) + ")"
}

// ParseLineFormat parses the value of the --format flag.
func ParseLineFormat(str string) (LineFormat, error) {
	for index, name := range formatNames {
		if strings.EqualFold(str, name) {
			return LineFormat(index), nil
		}
	}
	return 0, searchutil.ErrExpectKnownFormat
}

// Line is the byte range of one line of the input, without its newline.
type Line struct {
	Start uint
	End   uint
}

// LogIndex is a line-oriented view of a log file whose lines are in time
// order.  Timestamps are parsed on demand, so a range search touches only
// O(log N) lines.
type LogIndex struct {
	Data   []byte
	Lines  []Line
	Format LineFormat
	Field  string
}

// NewLogIndex splits data into non-blank lines.
func NewLogIndex(data []byte, format LineFormat, field string) *LogIndex {
	idx := &LogIndex{
		Data:   data,
		Lines:  make([]Line, 0, bytes.Count(data, []byte{'\n'})+1),
		Format: format,
		Field:  field,
	}

	var start uint
	length := uint(len(data))
	for start < length {
		end := length
		if i := bytes.IndexByte(data[start:], '\n'); i >= 0 {
			end = start + uint(i)
		}
		line := Line{Start: start, End: end}
		if line.End > line.Start && data[line.End-1] == '\r' {
			line.End--
		}
		if len(bytes.TrimSpace(data[line.Start:line.End])) != 0 {
			idx.Lines = append(idx.Lines, line)
		}
		start = end + 1
	}
	return idx
}

// Bytes returns the contents of line.
func (idx *LogIndex) Bytes(line Line) []byte {
	return idx.Data[line.Start:line.End]
}

// Timestamp extracts the timestamp of line.
func (idx *LogIndex) Timestamp(line Line) (time.Time, error) {
	raw := idx.Bytes(line)

	if idx.Format == FormatJSON {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return time.Time{}, err
		}
		value, found := obj[idx.Field]
		if !found {
			return time.Time{}, searchutil.ErrNotExist
		}
		var str string
		if err := json.Unmarshal(value, &str); err == nil {
			return searchutil.ParseTime(str)
		}
		var num json.Number
		if err := json.Unmarshal(value, &num); err != nil {
			return time.Time{}, searchutil.ErrExpectTimeAsString
		}
		f, err := num.Float64()
		if err != nil {
			return time.Time{}, err
		}
		return searchutil.UnixFloat(f), nil
	}

	word := raw
	if fields := bytes.Fields(raw); len(fields) != 0 {
		word = fields[0]
	}

	if idx.Format == FormatUnix {
		f, err := strconv.ParseFloat(string(word), 64)
		if err != nil {
			return time.Time{}, searchutil.TimeError{Input: string(word), Err: searchutil.ErrExpectTimestamp}
		}
		return searchutil.UnixFloat(f), nil
	}

	t, err := time.Parse(time.RFC3339Nano, string(word))
	if err != nil {
		return time.Time{}, searchutil.TimeError{Input: string(word), Err: err}
	}
	return t.UTC(), nil
}

// Before is a rangesearch.LessFunc over lines.  A line without a parseable
// timestamp is treated as earlier than every key.
func (idx *LogIndex) Before(line Line, key time.Time) bool {
	t, err := idx.Timestamp(line)
	if err != nil {
		return true
	}
	return t.Before(key)
}

// Bounds returns the indices [lo, hi) of the lines whose timestamp lies in r.
func (idx *LogIndex) Bounds(r rangesearch.Range[time.Time]) (uint, uint) {
	return rangesearch.BoundsBy(idx.Lines, r, idx.Before)
}

// BoundsFrom returns the indices [lo, len(idx.Lines)) of the lines whose
// timestamp is at or after from.
func (idx *LogIndex) BoundsFrom(from time.Time) (uint, uint) {
	return rangesearch.PartitionPoint(idx.Lines, from, idx.Before), uint(len(idx.Lines))
}

// Verify checks at up to samples lines that the index is sorted with respect
// to both ends of r.
func (idx *LogIndex) Verify(r rangesearch.Range[time.Time], samples uint) error {
	return rangesearch.VerifyBy(idx.Lines, r, idx.Before, samples)
}
