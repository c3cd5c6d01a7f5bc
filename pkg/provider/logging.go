package provider

import "github.com/sirupsen/logrus"

var log = logrus.StandardLogger()

// SetLogger routes this package's log lines to l.
func SetLogger(l *logrus.Logger) {
	log = l
}
