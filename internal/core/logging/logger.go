// Package logging derives per-component loggers from the process logger.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns the global logger tagged with cmp=name.
func Component(name string) zerolog.Logger {
	return ComponentOf(log.Logger, name)
}

// ComponentOf tags base with cmp=name. Tests use it to capture output from a
// single component without touching the global logger.
func ComponentOf(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("cmp", name).Logger()
}
