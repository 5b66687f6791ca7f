package ejob

import(
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the logger for a run; verbosity above zero turns on
// debug output with full timestamps.
func NewLogger(verbosity int) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: verbosity > 0})
	l.SetLevel(logrus.InfoLevel)
	if verbosity > 0 {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}
