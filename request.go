package amqp091

import (
	"github.com/amqp091-core/amqp091/internal/collector"
	"github.com/amqp091-core/amqp091/internal/wire"
)

// request is one message from an application-thread handle to the I/O
// loop, queued on the loop's bounded inbound queue. It covers every
// per-channel message kind a handle can send — a method call, a
// fire-and-forget method, a publish sequence, or a consumer teardown —
// collapsed into one struct since Go's typed nils already make "which
// fields are set" self-describing without a separate tagged-union type
// for message shapes this small.
type request struct {
	channel uint16

	// openNewSlot asks the loop to create a fresh channelSlot for
	// `channel` before processing `method` — used only by
	// Connection.OpenChannel, since channel.open is the one method that
	// must find its slot already registered the moment it's issued.
	openNewSlot bool

	// method and reply together implement both call and call_nowait:
	// method is always sent; if reply is non-nil the slot's pending RPC
	// waiter is armed and fulfilled once the matching reply (or a close
	// error) arrives.
	method wire.Method
	reply  chan *rpcOutcome

	// contentMethod/contentProps/contentBody implement basic.publish: a
	// method + header + body sequence staged and written as one atomic
	// unit so the loop never interleaves another handle's frames into
	// the middle of it.
	contentMethod wire.ContentBearing
	contentProps  wire.Properties
	contentBody   []byte

	// closeConsumer asks the loop to tear down one consumer's delivery
	// stream without a full channel close or a basic.cancel round trip.
	// handleRequest honours it when set; no Channel method sets it.
	closeConsumer string

	// timedOut asks the loop to terminate `channel` with ErrCallTimeout —
	// sent by Channel.doCall once its own wait gives up locally, so the
	// slot doesn't keep carrying a pending RPC nothing is listening for
	// any more.
	timedOut bool

	// forceClose, when non-nil, is returned directly from handleRequest
	// so run()'s generic error path tears down every slot and stops the
	// loop — sent by connLoop.closeConnection once CloseTimeout expires
	// and cooperative shutdown can no longer finish.
	forceClose error
}

// rpcOutcome is the one-shot reply to a request carrying a non-nil reply
// channel.
type rpcOutcome struct {
	// method is the peer's reply method. For basic.get it is nil when
	// content is set instead (a basic.get-ok's content was fully
	// assembled by the collector rather than arriving as a bare method).
	method wire.Method

	// content is set instead of method for a basic.get that found a
	// message (collector.TriggerGetOk).
	content *collector.Content

	// deliveries is set only for a successful basic.consume.
	deliveries <-chan *Delivery

	// slotReturns/slotConfirms/slotClosed are set only for a successful
	// channel.open, letting the handle pick up the slot's long-lived
	// streams and shared closed-state cell without a second round-trip.
	slotReturns  <-chan *Return
	slotConfirms <-chan *Confirmation
	slotClosed   *closedState

	// err is set when the call failed: a server close, a connection
	// close, a timeout, or a protocol violation on this channel.
	err error
}
