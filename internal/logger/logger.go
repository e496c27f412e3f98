// Package logger configures the process-wide logrus logger.
//
// Other packages import logrus as `log` and call log.Printf / log.Warnf /
// log.WithField, the same call sites the standard library logger would
// use, but with levels and an optional JSON format.
package logger

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Setup applies the configured level and format to the standard logrus logger.
// Unknown levels fall back to info.
func Setup(level, format string) {
	log.SetOutput(os.Stdout)

	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}
