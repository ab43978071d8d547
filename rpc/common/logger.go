package common

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lni/dragonboat/v4/logger"
)

// TimestampLayout is the layout of the timestamp in front of every log line (dd.MM.yy HH:mm:ss)
const TimestampLayout = "02.01.06 15:04:05"

// --------------------------------------------------------------------------
// Log Sink
// --------------------------------------------------------------------------

// logSink is the shared output of all loggers.
// One write per line, the mutex only keeps lines from tearing.
type logSink struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

func (s *logSink) writeLine(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.out, "%s : %s\n", s.now().Format(TimestampLayout), message)
}

var defaultSink = &logSink{out: os.Stdout, now: time.Now}

// SetLogOutput redirects all loggers to w
func SetLogOutput(w io.Writer) {
	defaultSink.mu.Lock()
	defer defaultSink.mu.Unlock()
	defaultSink.out = w
}

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// RoadsLogger implements the ILogger interface with the "<timestamp> : <message>" format
type RoadsLogger struct {
	name  string
	level logger.LogLevel
	sink  *logSink
}

// NewLogger creates a logger for pkgName that writes to out
func NewLogger(pkgName string, out io.Writer) *RoadsLogger {
	return &RoadsLogger{
		name:  pkgName,
		level: logger.INFO,
		sink:  &logSink{out: out, now: time.Now},
	}
}

// NewLog appends "<timestamp> : <message>" to the sink, regardless of the level
func (l *RoadsLogger) NewLog(message string) {
	l.sink.writeLine(message)
}

func (l *RoadsLogger) SetLevel(level logger.LogLevel) {
	l.level = level
}

func (l *RoadsLogger) Debugf(format string, args ...interface{}) {
	if l.level >= logger.DEBUG {
		l.log("DEBUG", format, args...)
	}
}

func (l *RoadsLogger) Infof(format string, args ...interface{}) {
	if l.level >= logger.INFO {
		l.log("", format, args...)
	}
}

func (l *RoadsLogger) Warningf(format string, args ...interface{}) {
	if l.level >= logger.WARNING {
		l.log("WARN", format, args...)
	}
}

func (l *RoadsLogger) Errorf(format string, args ...interface{}) {
	if l.level >= logger.ERROR {
		l.log("ERROR", format, args...)
	}
}

func (l *RoadsLogger) Panicf(format string, args ...interface{}) {
	if l.level >= logger.CRITICAL {
		panic(fmt.Sprintf(format, args...))
	}
}

// log formats a message and hands it to NewLog. info messages carry no level prefix
func (l *RoadsLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if levelStr != "" {
		message = levelStr + " " + message
	}
	l.NewLog(message)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// CreateLogger implements dragonboats logger.Factory, all loggers share the default sink
func CreateLogger(pkgName string) logger.ILogger {
	return &RoadsLogger{
		name:  pkgName,
		level: logger.INFO,
		sink:  defaultSink,
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG, nil
	case "info":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return logger.INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// loggerNames are the names of all loggers used in this module
var loggerNames = []string{"store", "dispatcher", "transport", "server", "client"}

// InitLoggers installs the custom logger factory and sets the level of all loggers
func InitLoggers(logLevel string) error {
	level, err := ParseLogLevel(logLevel)
	if err != nil {
		return err
	}

	// Set as the global logger factory
	logger.SetLoggerFactory(CreateLogger)

	for _, name := range loggerNames {
		logger.GetLogger(name).SetLevel(level)
	}
	return nil
}
