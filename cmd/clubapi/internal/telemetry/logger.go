package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. JSON output is used for production;
// debug mode switches to human readable text at debug level.
func NewLogger(debug bool) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stdout

	if debug {
		log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
		log.SetLevel(logrus.DebugLevel)
		return log
	}

	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.SetLevel(logrus.InfoLevel)
	return log
}

// NewNopLogger returns a logger that discards everything, for tests.
func NewNopLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}
