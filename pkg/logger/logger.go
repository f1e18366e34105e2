package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the shared application logger. Level falls back to info when
// the configured value cannot be parsed.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
