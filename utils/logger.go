package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	isVerbose bool
	logger    = newLogger(os.Stderr)
)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05.000000",
	})
	return l
}

func SetVerbose(verbose bool) {
	isVerbose = verbose
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

func IsVerbose() bool {
	return isVerbose
}

// SetOutput redirects all log output, e.g. into a test buffer.
func SetOutput(out io.Writer) {
	logger.SetOutput(out)
}

// WithField returns an entry for structured logging, e.g. per session.
func WithField(key string, value interface{}) *logrus.Entry {
	return logger.WithField(key, value)
}

func Verbose(format string, args ...interface{}) {
	if isVerbose {
		logger.Debugf(format, args...)
	}
}

func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}
