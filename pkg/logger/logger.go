package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var log = newLogger(os.Stderr, os.Getenv("ENVIRONMENT"))

func newLogger(out io.Writer, environment string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	if environment == "production" {
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Init rebuilds the logger for the given environment. Output goes to stderr so
// that command output on stdout stays machine readable.
func Init(environment string) {
	log = newLogger(os.Stderr, environment)
}

// SetOutput redirects log output, e.g. to io.Discard in tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetLevel parses and applies a level name; unknown names are ignored.
func SetLevel(level string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	}
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}

func Info(args ...interface{}) {
	log.Info(args...)
}

func Error(args ...interface{}) {
	log.Error(args...)
}

func Debug(args ...interface{}) {
	log.Debug(args...)
}

func Warn(args ...interface{}) {
	log.Warn(args...)
}

func Fatal(args ...interface{}) {
	log.Fatal(args...)
}
