package amqp091

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds surfaced at the library boundary: exported sentinels via
// errors.New plus structured types for errors that carry server-supplied
// detail.

// ProtocolError is a malformed or unexpected frame; fatal to the
// connection.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return "amqp091: protocol error: " + e.Reason }

// FrameUnexpected is a valid frame arriving in the wrong state (e.g. a
// body frame before its header); fatal to the channel it occurred on, not
// the connection.
type FrameUnexpected struct {
	Channel uint16
	Reason  string
}

func (e *FrameUnexpected) Error() string {
	return fmt.Sprintf("amqp091: channel %d: unexpected frame: %s", e.Channel, e.Reason)
}

// ServerClosedChannel is a server-initiated channel close, surfaced on
// every waiter of that channel; the channel becomes unusable afterward.
type ServerClosedChannel struct {
	Code uint16
	Text string
}

func (e *ServerClosedChannel) Error() string {
	return fmt.Sprintf("amqp091: channel closed by server: code=%d text=%q", e.Code, e.Text)
}

// ServerClosedConnection is a server-initiated connection close; every
// channel on the connection becomes unusable.
type ServerClosedConnection struct {
	Code uint16
	Text string
}

func (e *ServerClosedConnection) Error() string {
	return fmt.Sprintf("amqp091: connection closed by server: code=%d text=%q", e.Code, e.Text)
}

// MissedHeartbeat means no inbound traffic arrived within 2*heartbeat;
// fatal to the connection.
var ErrMissedHeartbeat = errors.New("amqp091: missed heartbeat, connection presumed dead")

// FrameTooLarge means an outbound or inbound frame exceeds frame_max.
type FrameTooLarge struct {
	Size     uint32
	FrameMax uint32
}

func (e *FrameTooLarge) Error() string {
	return fmt.Sprintf("amqp091: frame size %d exceeds frame_max %d", e.Size, e.FrameMax)
}

// ChannelDropped means the application tried to use a handle after its
// slot disappeared from the loop's table.
type ChannelDropped struct {
	ID uint16
}

func (e *ChannelDropped) Error() string {
	return fmt.Sprintf("amqp091: channel %d: no longer tracked by the connection", e.ID)
}

// ErrEventLoopDropped means the I/O thread has terminated. It is returned
// when a request is submitted after the loop has stopped but before the
// connection's terminal reason is visible to the handle; once that reason
// is set, handle operations fail with it instead.
var ErrEventLoopDropped = errors.New("amqp091: connection event loop is no longer running")

// ErrChannelClosed is returned by handle operations after Channel.Close
// has completed successfully (a clean, locally initiated close).
var ErrChannelClosed = errors.New("amqp091: channel closed")

// ErrConnectionClosed is returned by handle operations after
// Connection.Close has completed successfully.
var ErrConnectionClosed = errors.New("amqp091: connection closed")

// ErrCallTimeout is returned when a channel RPC or a connection close
// gives up waiting after Config.CallTimeout/CloseTimeout elapses. The
// channel (or, for a connection close, the whole connection) is marked
// closed with this error, since the loop can no longer tell whether the
// peer will still reply to a call nothing is listening for any more.
var ErrCallTimeout = errors.New("amqp091: call timed out")

// IoError wraps an underlying stream failure (read/write error on the
// byte stream supplied to the loop); fatal to the connection. Uses
// github.com/pkg/errors.Wrap so Cause()/Unwrap() reach the original I/O
// error.
type IoError struct {
	cause error
}

func newIoError(cause error) *IoError {
	return &IoError{cause: errors.Wrap(cause, "amqp091: i/o error")}
}

func (e *IoError) Error() string { return e.cause.Error() }
func (e *IoError) Unwrap() error { return errors.Cause(e.cause) }

// ErrConsumeFailed is returned by Channel.Consume when the reply to
// basic.consume is not a basic.consume-ok, so no delivery stream was
// registered for it.
var ErrConsumeFailed = errors.New("amqp091: consume failed")
