// Where: cli/internal/logger/logger.go
// What: zerolog setup for diagnostic output.
// Why: Keep debug traces on stderr, separate from the operator-facing console.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup returns a logger writing to out. Without debug only warnings and
// errors are emitted as JSON; with debug a console writer at debug level is used.
func Setup(out io.Writer, debug bool) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()

	if debug {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out, FormatTimestamp: func(i any) string {
			return time.Now().Format(time.RFC3339)
		}}).Level(level).With().Caller().Logger()
	}

	return logger
}
