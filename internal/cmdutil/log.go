// internal/cmdutil/log.go
package cmdutil

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger writes plain console lines to dst. Info by default; verbose
// enables debug; quiet keeps errors only and wins over verbose.
func NewLogger(dst io.Writer, quiet, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.ErrorLevel
	case verbose:
		level = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{Out: dst, NoColor: true, TimeFormat: "15:04:05"}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

// Warnf logs a formatted warning.
func Warnf(log zerolog.Logger, format string, a ...any) {
	log.Warn().Msgf(format, a...)
}
