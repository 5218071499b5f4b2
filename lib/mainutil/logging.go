package mainutil

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"sync"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	getopt "github.com/pborman/getopt/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/journald"
	"github.com/rs/zerolog/log"

	"github.com/chronos-tachyon/rangesearch/internal/misc"
	"github.com/chronos-tachyon/rangesearch/lib/searchutil"
)

var gLogFile *LogFileWriter

var (
	flagVersion     bool
	flagDebug       bool
	flagTrace       bool
	flagLogStderr   bool
	flagLogJournald bool
	flagLogFile     string
)

// RegisterVersionFlag registers the -V/--version flag.
func RegisterVersionFlag() {
	getopt.FlagLong(&flagVersion, "version", 'V', "print version and exit")
}

// RegisterLoggingFlags registers the flags for controlling log output.
func RegisterLoggingFlags() {
	getopt.FlagLong(&flagDebug, "verbose", 'v', "enable debug logging")
	getopt.FlagLong(&flagTrace, "debug", 'd', "enable debug and trace logging")
	getopt.FlagLong(&flagLogStderr, "log-stderr", 'S', "log JSON to stderr")
	getopt.FlagLong(&flagLogJournald, "log-journald", 'J', "log to journald")
	getopt.FlagLong(&flagLogFile, "log-file", 'l', "log JSON to file")
}

// InitVersion processes the -V/--version flag.
func InitVersion() {
	if flagVersion {
		fmt.Println(AppVersion())
		os.Exit(0)
	}
}

// InitLogging processes the logging flags and sets up log.Logger.
//
// The caller must ensure that DoneLogging gets called by the end of the
// program's lifecycle.
func InitLogging() {
	if err := checkLoggingFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	if flagLogFile != "" {
		abs, err := searchutil.ExpandPath(flagLogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
		flagLogFile = abs
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.DurationFieldUnit = time.Second
	zerolog.DurationFieldInteger = false
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if flagDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if flagTrace {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	switch {
	case flagLogStderr:
		// do nothing

	case flagLogJournald:
		log.Logger = log.Output(journald.NewJournalDWriter())

	case flagLogFile != "":
		var err error
		gLogFile, err = NewLogFileWriter(flagLogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fatal: failed to open log file for append: %q: %v\n", flagLogFile, err)
			os.Exit(1)
		}
		log.Logger = log.Output(gLogFile)

	default:
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)
}

// DoneLogging does end-of-program cleanup on the logging subsystem.
func DoneLogging() {
	if gLogFile != nil {
		_ = gLogFile.Close()
	}
}

func checkLoggingFlags() error {
	var errs multierror.Error
	if flagLogStderr && flagLogJournald {
		errs.Errors = append(errs.Errors, fmt.Errorf("flags '--log-stderr' and '--log-journald' are mutually exclusive"))
	}
	if flagLogStderr && flagLogFile != "" {
		errs.Errors = append(errs.Errors, fmt.Errorf("flags '--log-stderr' and '--log-file' are mutually exclusive"))
	}
	if flagLogJournald && flagLogFile != "" {
		errs.Errors = append(errs.Errors, fmt.Errorf("flags '--log-journald' and '--log-file' are mutually exclusive"))
	}
	return misc.ErrorOrNil(errs)
}

// type LogFileWriter {{{

// LogFileWriter is an io.WriteCloser that appends to a log file.  Close waits
// for in-flight writes to finish.
type LogFileWriter struct {
	mu         sync.Mutex
	cv         *sync.Cond
	file       *os.File
	numWriters int
}

// NewLogFileWriter opens fileName for append, creating it if necessary.
func NewLogFileWriter(fileName string) (*LogFileWriter, error) {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	w := &LogFileWriter{file: file}
	w.cv = sync.NewCond(&w.mu)
	return w, nil
}

// Write writes a block of data to the logfile.
//
// The input should generally be a single line of JSON data.
func (w *LogFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	file := w.file
	w.numWriters++
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.numWriters--
		if w.numWriters <= 0 {
			w.cv.Signal()
		}
		w.mu.Unlock()
	}()

	return file.Write(p)
}

// Close syncs and closes the logfile.
func (w *LogFileWriter) Close() error {
	w.mu.Lock()
	defer func() {
		w.cv.Signal()
		w.mu.Unlock()
	}()

	for w.numWriters > 0 {
		w.cv.Wait()
	}

	var errs multierror.Error
	if err := w.file.Sync(); err != nil {
		errs.Errors = append(errs.Errors, err)
	}
	if err := w.file.Close(); err != nil {
		errs.Errors = append(errs.Errors, err)
	}
	return misc.ErrorOrNil(errs)
}

var _ io.WriteCloser = (*LogFileWriter)(nil)

// }}}
