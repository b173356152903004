package thread

import (
	"os"

	"github.com/rs/zerolog"
)

// log is the package-wide structured logger: a console writer at the
// default level, replaceable via SetLogger for callers that fold this
// library's events into their own pipeline.
var log zerolog.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
	With().Timestamp().Str("component", "thread").Logger()

// SetLogger replaces the package's logger. Lifecycle events (thread
// created/started/exited, library init, all-threads-done, deadlock) flow
// through it.
func SetLogger(l zerolog.Logger) {
	log = l
}
