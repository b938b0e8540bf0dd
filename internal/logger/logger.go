// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It is usable before Init with logrus defaults.
var Log = logrus.New()

// Init configures the global logger.
// level is a logrus level name ("debug", "info", ...); unknown names mean info.
// format "json" selects the JSON formatter, anything else the text formatter.
func Init(level, format string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(out)
}

// WithRun returns an entry tagged with the run identifier
func WithRun(runID string) *logrus.Entry {
	return Log.WithField("run", runID)
}

// Discard silences the global logger. Used by tests.
func Discard() {
	Log.SetOutput(io.Discard)
}
