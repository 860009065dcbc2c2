// Contains various utility functions related to logging.

package cli

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"golang.org/x/term"
	"gopkg.in/op/go-logging.v1"
)

var log = logging.MustGetLogger("cli")

// StdErrIsATerminal is true if the process' stderr is an interactive TTY.
var StdErrIsATerminal = term.IsTerminal(int(os.Stderr.Fd()))

// StdOutIsATerminal is true if the process' stdout is an interactive TTY.
var StdOutIsATerminal = term.IsTerminal(int(os.Stdout.Fd()))

var logLevel = logging.WARNING
var fileLogLevel = logging.WARNING
var fileBackend logging.Backend

// A Verbosity is used as a flag to define logging verbosity. It accepts
// either a level name (error, warning, notice, info, debug), a "v"-count
// shorthand (v, vv, vvv), or a plain integer following the same scale as
// the historic -v0..-v4 flags.
type Verbosity logging.Level

// UnmarshalFlag implements the flags.Unmarshaler interface.
func (v *Verbosity) UnmarshalFlag(in string) error {
	if n, err := strconv.Atoi(in); err == nil {
		*v = Verbosity(translateLogLevel(n))
		return nil
	}
	switch strings.ToLower(in) {
	case "critical":
		*v = Verbosity(logging.CRITICAL)
	case "error":
		*v = Verbosity(logging.ERROR)
	case "warning", "warn":
		*v = Verbosity(logging.WARNING)
	case "notice", "v":
		*v = Verbosity(logging.NOTICE)
	case "info", "vv":
		*v = Verbosity(logging.INFO)
	case "debug", "vvv":
		*v = Verbosity(logging.DEBUG)
	default:
		return fmt.Errorf("cli: unrecognised verbosity %q", in)
	}
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (v *Verbosity) UnmarshalText(text []byte) error {
	return v.UnmarshalFlag(string(text))
}

func translateLogLevel(verbosity int) logging.Level {
	switch {
	case verbosity <= 0:
		return logging.ERROR
	case verbosity == 1:
		return logging.WARNING
	case verbosity == 2:
		return logging.NOTICE
	case verbosity == 3:
		return logging.INFO
	default:
		return logging.DEBUG
	}
}

// InitLogging initialises logging to stderr at the given verbosity.
func InitLogging(verbosity Verbosity) {
	logLevel = logging.Level(verbosity)
	setLogBackend(logging.NewLogBackend(os.Stderr, "", 0))
}

// InitFileLogging additionally echoes logging output to logFile at
// logFileLevel, independent of the stderr verbosity.
func InitFileLogging(logFile string, logFileLevel Verbosity) error {
	fileLogLevel = logging.Level(logFileLevel)
	if err := os.MkdirAll(path.Dir(logFile), 0o775); err != nil {
		return fmt.Errorf("cli: creating log file directory: %w", err)
	}
	file, err := os.Create(logFile)
	if err != nil {
		return fmt.Errorf("cli: opening log file: %w", err)
	}
	fileBackend = logging.NewBackendFormatter(logging.NewLogBackend(file, "", 0), logFormatter(false))
	setLogBackend(logging.NewLogBackend(os.Stderr, "", 0))
	return nil
}

func logFormatter(coloured bool) logging.Formatter {
	formatStr := "%{time:15:04:05.000} %{level:7s}: %{message}"
	if coloured {
		formatStr = "%{color}" + formatStr + "%{color:reset}"
	}
	return logging.MustStringFormatter(formatStr)
}

func setLogBackend(backend logging.Backend) {
	backend = logging.NewBackendFormatter(backend, logFormatter(StdErrIsATerminal))
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(logLevel, "")
	if fileBackend == nil {
		logging.SetBackend(leveled)
		return
	}
	fileLeveled := logging.AddModuleLevel(fileBackend)
	fileLeveled.SetLevel(fileLogLevel, "")
	logging.SetBackend(leveled, fileLeveled)
}
