package amqp091

import (
	"context"
	"time"
)

// Config carries the tuning parameters the core loop needs once a byte
// stream is already established — connection establishment, TLS, and
// SASL negotiation are external collaborators, so Config holds only
// what's left after that handshake has already produced negotiated
// values (or, for a from-scratch dial helper built on top of this core,
// the values to propose during that handshake).
type Config struct {
	// FrameMax bounds both outbound and inbound frame payload size.
	// Negotiated values are >= 4096; 0 defaults to 4096.
	FrameMax uint32

	// ChannelMax bounds the number of concurrently open channels. 0 means
	// 2047.
	ChannelMax uint16

	// Heartbeat is the negotiated heartbeat interval. 0 disables
	// heartbeats entirely.
	Heartbeat time.Duration

	// CallTimeout bounds how long a channel RPC (Channel.Call and every
	// method built on it) waits for a reply when the caller's own context
	// carries no deadline. On expiry the waiter is retired and the
	// channel is marked Closed(ErrCallTimeout), since the loop can no
	// longer tell whether the peer will still reply to a call nothing is
	// listening for. Zero means no timeout beyond the caller's context.
	CallTimeout time.Duration

	// CloseTimeout bounds how long a locally initiated Connection.Close
	// waits for the peer's close-ok before giving up, when the caller's
	// own context carries no deadline. On expiry the whole connection is
	// abandoned with ErrCallTimeout rather than left half-closed. Zero
	// means no timeout beyond the caller's context.
	CloseTimeout time.Duration

	// ConsumerBufferSize is the channel capacity of a consumer's delivery
	// stream (and the segment size of the queue behind it), approximating
	// application-configured prefetch. 0 defaults to 16. Deliveries the
	// application has not received yet wait in an unbounded queue in front
	// of that channel, so the loop never blocks on a slow consumer; this
	// setting does not cap that backlog.
	ConsumerBufferSize int

	// HandleQueueSize bounds the loop's inbound command/RPC queue,
	// exerting backpressure on handles once it fills. 0 defaults to 16.
	HandleQueueSize int
}

// withTimeout derives a context bounded by d, unless ctx already carries
// its own deadline or d is non-positive, in which case ctx is returned
// unchanged. Callers that configure neither CallTimeout nor CloseTimeout
// fall back entirely to whatever deadline (if any) their own context
// carries.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// normalize fills in default values for zero-valued fields.
func (c Config) normalize() Config {
	if c.ChannelMax == 0 {
		c.ChannelMax = 2047
	}
	if c.FrameMax == 0 {
		c.FrameMax = 4096
	}
	if c.ConsumerBufferSize == 0 {
		c.ConsumerBufferSize = 16
	}
	if c.HandleQueueSize == 0 {
		c.HandleQueueSize = 16
	}
	return c
}
