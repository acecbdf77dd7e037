package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func InitLogger(level string) {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	InfoLogger.SetLevel(lvl)
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}

func ensureLoggers() {
	if InfoLogger == nil || ErrorLogger == nil {
		InitLogger("info")
	}
}

// WithFields returns an info entry tagged with the component name.
func WithFields(component string, fields logrus.Fields) *logrus.Entry {
	ensureLoggers()
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["component"] = component
	return InfoLogger.WithFields(fields)
}

// WithError returns an error entry tagged with the component name.
func WithError(err error, component string) *logrus.Entry {
	ensureLoggers()
	return ErrorLogger.WithFields(logrus.Fields{
		"error":     err.Error(),
		"component": component,
	})
}
