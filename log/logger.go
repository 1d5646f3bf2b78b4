// Package log provides named, leveled loggers shared by every package of the module.
package log

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int8

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Warning
	Error
)

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	root  *zap.Logger
)

// namedLogger resolves the shared core on every call so that SetSink applies to
// loggers created before it.
type namedLogger struct {
	name string
}

// New creates a new named logger.
func New(name string) Logger {
	return &namedLogger{name: name}
}

func (l *namedLogger) sugar() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(l.name).Sugar()
}

func (l *namedLogger) Debug(v ...interface{}) {
	l.sugar().Debug(v...)
}

func (l *namedLogger) Debugf(format string, v ...interface{}) {
	l.sugar().Debugf(format, v...)
}

func (l *namedLogger) Info(v ...interface{}) {
	l.sugar().Info(v...)
}

func (l *namedLogger) Infof(format string, v ...interface{}) {
	l.sugar().Infof(format, v...)
}

func (l *namedLogger) Warning(v ...interface{}) {
	l.sugar().Warn(v...)
}

func (l *namedLogger) Warningf(format string, v ...interface{}) {
	l.sugar().Warnf(format, v...)
}

func (l *namedLogger) Error(v ...interface{}) {
	l.sugar().Error(v...)
}

func (l *namedLogger) Errorf(format string, v ...interface{}) {
	l.sugar().Errorf(format, v...)
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05.000"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
}

// SetSink overrides the output sink.
func SetSink(sink io.Writer) {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.AddSync(sink),
		level,
	)

	mu.Lock()
	root = zap.New(core)
	mu.Unlock()
}

// SetLevel sets the logger verbosity.
func SetLevel(l Level) {
	switch l {
	case Debug:
		level.SetLevel(zapcore.DebugLevel)
	case Info:
		level.SetLevel(zapcore.InfoLevel)
	case Warning:
		level.SetLevel(zapcore.WarnLevel)
	case Error:
		level.SetLevel(zapcore.ErrorLevel)
	}
}

// ParseLevel maps "debug", "info", "warning" and "error" to a Level.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "debug":
		return Debug, true
	case "info":
		return Info, true
	case "warn", "warning":
		return Warning, true
	case "error":
		return Error, true
	}
	return Info, false
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Info)
}
