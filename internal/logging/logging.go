package logging

import (
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
)

// Log level constants
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Init sends log output to w in the apex cli format and sets the level
func Init(w io.Writer, level string) {
	log.SetHandler(cli.New(w))
	SetLevel(level)
}

// SetLevel sets the global logging level. Unknown names fall back to info.
func SetLevel(level string) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
