// Command "rangegrep" prints the lines of a time-sorted log file whose
// timestamps fall within a half-open time range.  The lines are located by
// binary search, so only a logarithmic number of timestamps are parsed.
//
// Usage:
//
//	rangegrep [<flags>] [<logfile>]
//
// Flags:
//
//	-f, --from=time      include lines at or after this time
//	-t, --to=time        include lines strictly before this time
//	-F, --format=fmt     one of "json", "rfc3339", "unix" [default: json]
//	-k, --field=name     JSON field holding the timestamp [default: time]
//	-c, --count          print the number of matching lines instead
//	    --verify=N       check sortedness at N sampled lines first
//	-V, --version        print version and exit
//	-J, --log-journald   log to journald
//	-l, --log-file=path  log JSON to file
//	-S, --log-stderr     log JSON to stderr
//	-v, --verbose        enable debug logging
//	-d, --debug          enable debug and trace logging
//
// Times are RFC 3339 timestamps or Unix seconds.  A missing --from or --to
// leaves that side of the range unbounded.  The logfile "-" (the default)
// means stdin.
//
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	getopt "github.com/pborman/getopt/v2"
	"github.com/rs/zerolog/log"

	"github.com/chronos-tachyon/rangesearch/internal/misc"
	"github.com/chronos-tachyon/rangesearch/lib/mainutil"
	"github.com/chronos-tachyon/rangesearch/lib/rangesearch"
	"github.com/chronos-tachyon/rangesearch/lib/searchutil"
)

var (
	flagFrom   string
	flagTo     string
	flagFormat string = "json"
	flagField  string = "time"
	flagCount  bool
	flagVerify uint
)

func init() {
	getopt.SetParameters("[<logfile>]")

	mainutil.SetAppVersion(mainutil.LibVersion())
	mainutil.RegisterVersionFlag()
	mainutil.RegisterLoggingFlags()

	getopt.FlagLong(&flagFrom, "from", 'f', "include lines at or after this time")
	getopt.FlagLong(&flagTo, "to", 't', "include lines strictly before this time")
	getopt.FlagLong(&flagFormat, "format", 'F', "log line format: json, rfc3339, unix")
	getopt.FlagLong(&flagField, "field", 'k', "JSON field holding the timestamp")
	getopt.FlagLong(&flagCount, "count", 'c', "print the number of matching lines")
	getopt.FlagLong(&flagVerify, "verify", 0, "check sortedness at N sampled lines first (0 = off)")
}

// Options holds the parsed command line.
type Options struct {
	Range rangesearch.Range[time.Time]

	// OpenEnd is set when --to was not given.  Range.Hi is ignored.
	OpenEnd bool

	Format LineFormat
	Field  string
}

// Locate returns the indices [lo, hi) of the lines of idx selected by opts.
func (opts Options) Locate(idx *LogIndex) (uint, uint) {
	if opts.OpenEnd {
		return idx.BoundsFrom(opts.Range.Lo)
	}
	return idx.Bounds(opts.Range)
}

// Verify checks at up to samples lines that idx is sorted with respect to
// each bound in opts.
func (opts Options) Verify(idx *LogIndex, samples uint) error {
	r := opts.Range
	if opts.OpenEnd {
		r.Hi = r.Lo
	}
	return idx.Verify(r, samples)
}

// ParseOptions validates the flag values, reporting every bad flag at once.
func ParseOptions(from string, to string, format string, field string) (Options, error) {
	var errs multierror.Error

	opts := Options{
		OpenEnd: to == "",
		Field:   field,
	}

	if from != "" {
		t, err := searchutil.ParseTime(from)
		if err != nil {
			errs.Errors = append(errs.Errors, searchutil.FlagError{Flag: "from", Value: from, Err: err})
		}
		opts.Range.Lo = t
	}

	if to != "" {
		t, err := searchutil.ParseTime(to)
		if err != nil {
			errs.Errors = append(errs.Errors, searchutil.FlagError{Flag: "to", Value: to, Err: err})
		}
		opts.Range.Hi = t
	}

	f, err := ParseLineFormat(format)
	if err != nil {
		errs.Errors = append(errs.Errors, searchutil.FlagError{Flag: "format", Value: format, Err: err})
	}
	opts.Format = f

	if f == FormatJSON && field == "" {
		errs.Errors = append(errs.Errors, searchutil.FlagError{Flag: "field", Value: field, Err: searchutil.ErrExpectNonEmpty})
	}

	return opts, misc.ErrorOrNil(errs)
}

func main() {
	getopt.Parse()

	mainutil.InitVersion()

	mainutil.InitLogging()
	code := run()
	mainutil.DoneLogging()

	os.Exit(code)
}

func run() int {
	opts, err := ParseOptions(flagFrom, flagTo, flagFormat, flagField)
	if err != nil {
		log.Logger.Error().
			Err(err).
			Msg("invalid flags")
		return 2
	}

	if getopt.NArgs() > 1 {
		log.Logger.Error().
			Int("expected", 1).
			Int("actual", getopt.NArgs()).
			Msg("too many positional arguments")
		return 2
	}

	inputFile := "-"
	if getopt.NArgs() == 1 {
		inputFile = getopt.Arg(0)
	}

	data, err := readInput(inputFile)
	if err != nil {
		log.Logger.Error().
			Str("inputFile", inputFile).
			Err(err).
			Msg("failed to read input file")
		return 1
	}

	idx := NewLogIndex(data, opts.Format, opts.Field)

	if flagVerify != 0 {
		if err := opts.Verify(idx, flagVerify); err != nil {
			log.Logger.Warn().
				Str("inputFile", inputFile).
				Uint("samples", flagVerify).
				Err(err).
				Msg("input does not look sorted; results may be incomplete")
		}
	}

	lo, hi := opts.Locate(idx)

	log.Logger.Debug().
		Int("lines", len(idx.Lines)).
		Str("range", opts.Range.String()).
		Bool("openEnd", opts.OpenEnd).
		Uint("lo", lo).
		Uint("hi", hi).
		Msg("located range")

	out := bufio.NewWriter(os.Stdout)
	err = writeResult(out, idx, lo, hi, flagCount)
	if err == nil {
		err = out.Flush()
	}
	if err != nil {
		log.Logger.Error().
			Err(err).
			Msg("failed to write output")
		return 1
	}
	return 0
}

func readInput(inputFile string) ([]byte, error) {
	if inputFile == "-" {
		return io.ReadAll(os.Stdin)
	}

	path, err := searchutil.ExpandPath(inputFile)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func writeResult(w io.Writer, idx *LogIndex, lo uint, hi uint, countOnly bool) error {
	if countOnly {
		_, err := fmt.Fprintln(w, hi-lo)
		return err
	}

	for _, line := range idx.Lines[lo:hi] {
		if _, err := w.Write(idx.Bytes(line)); err != nil {
			return err
		}
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}
