package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	base  *logrus.Logger
	mu    sync.Mutex
}

var (
	instance *Logger
	once     sync.Once
)

// GetLogger returns a singleton logger instance writing to stderr
func GetLogger() *Logger {
	once.Do(func() {
		instance = New(os.Stderr)
	})
	return instance
}

// New creates a logger writing text entries to w. Debug is disabled.
func New(w io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "02-01-06:15:04:05",
	})
	return &Logger{base: l}
}

func (l *Logger) withCaller(props map[string]interface{}) *logrus.Entry {
	fields := logrus.Fields{}

	// Caller of Info/Error/Debug
	if pc, file, line, ok := runtime.Caller(2); ok {
		fields["location"] = fmt.Sprintf("%s:%d", filepath.Base(file), line)
		fields["package"] = filepath.Base(filepath.Dir(file))
		if fn := runtime.FuncForPC(pc); fn != nil {
			fields["function"] = filepath.Base(fn.Name())
		}
	}

	for k, v := range props {
		fields[k] = v
	}
	return l.base.WithFields(fields)
}

func (l *Logger) Info(msg string, props ...map[string]interface{}) {
	var properties map[string]interface{}
	if len(props) > 0 {
		properties = props[0]
	}
	l.withCaller(properties).Info(msg)
}

func (l *Logger) Error(msg string, props ...map[string]interface{}) {
	var properties map[string]interface{}
	if len(props) > 0 {
		properties = props[0]
	}
	l.withCaller(properties).Error(msg)
}

func (l *Logger) Debug(msg string, props ...map[string]interface{}) {
	if !l.base.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	var properties map[string]interface{}
	if len(props) > 0 {
		properties = props[0]
	}
	l.withCaller(properties).Debug(msg)
}

// EnableDebug enables debug logging
func (l *Logger) EnableDebug() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.base.SetLevel(logrus.DebugLevel)
}

// DisableDebug disables debug logging
func (l *Logger) DisableDebug() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.base.SetLevel(logrus.InfoLevel)
}
