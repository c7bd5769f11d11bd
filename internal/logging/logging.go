// Package logging sets up a single shared go-logging logger for the
// module, with a leveled, colorized backend format similar to what most
// engine/CLI tools in this space configure once at startup and then pull
// a *logging.Logger from per package.
package logging

import (
	"os"

	"github.com/op/go-logging"
)

var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:.4s} %{module}%{color:reset} %{message}`,
)

func init() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.NOTICE, "")
	logging.SetBackend(leveled)
}

// Get returns the module logger for name, matching go-logging's usual
// one-per-package construction (e.g. `var log = logging.Get("board")`).
func Get(name string) *logging.Logger {
	return logging.MustGetLogger(name)
}

// SetLevel adjusts the global verbosity; cmd/fencheck calls this with the
// log_level of its -config file rather than leaving it fixed at NOTICE.
func SetLevel(level logging.Level) {
	logging.SetLevel(level, "")
}

// ParseLevel parses a level name (e.g. "DEBUG", "INFO", "NOTICE") as
// read from a config file or flag.
func ParseLevel(name string) (logging.Level, error) {
	return logging.LogLevel(name)
}
