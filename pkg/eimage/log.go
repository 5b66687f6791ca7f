package eimage

import "github.com/sirupsen/logrus"

// Log is where this package reports progress. Jobs point it at their
// own logger.
var Log logrus.FieldLogger = logrus.StandardLogger()
