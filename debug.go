package amqp091

import (
	"log/slog"

	"github.com/amqp091-core/amqp091/internal/debug"
)

// RegisterLogger configures the library's debug logger with the input
// slog.Handler h.
//
// By default, the debug logger uses a no-op handler and doesn't produce
// any log events.
func RegisterLogger(h slog.Handler) {
	debug.RegisterLogger(h)
}
