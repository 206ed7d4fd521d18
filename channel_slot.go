package amqp091

import (
	"fmt"

	"github.com/amqp091-core/amqp091/internal/collector"
	"github.com/amqp091-core/amqp091/internal/wire"
)

type channelState int

const (
	channelOpen channelState = iota
	channelClosing
	channelClosed
)

// channelSlot is the loop-owned state for one channel. It is touched only
// from the I/O loop goroutine; the application-facing Channel reaches it
// exclusively through requests and the shared closedState cell.
type channelSlot struct {
	id    uint16
	state channelState

	pending *pendingCall // at most one outstanding RPC at a time

	consumers map[string]*consumerEntry
	collector collector.Collector

	flowActive  bool
	confirmMode bool

	returns  chan *Return
	confirms chan *Confirmation

	closed *closedState
}

type pendingCall struct {
	sentMethod wire.Method
	reply      chan *rpcOutcome
}

func newChannelSlot(id uint16) *channelSlot {
	return &channelSlot{
		id:         id,
		state:      channelOpen,
		consumers:  make(map[string]*consumerEntry),
		flowActive: true,
		returns:    make(chan *Return, 8),
		confirms:   make(chan *Confirmation, 64),
		closed:     newClosedState(),
	}
}

// failPending fulfils any outstanding RPC waiter with err instead of a
// reply, used when a close arrives mid-call.
func (s *channelSlot) failPending(err error) {
	if s.pending == nil {
		return
	}
	s.pending.reply <- &rpcOutcome{err: err}
	s.pending = nil
}

// teardownConsumers closes every registered consumer's delivery stream.
func (s *channelSlot) teardownConsumers() {
	for tag, entry := range s.consumers {
		entry.close()
		delete(s.consumers, tag)
	}
}

// terminate marks the slot permanently closed with reason err (never
// nil), failing any pending RPC and tearing down every consumer stream.
// Idempotent: only the first call has any effect.
func (s *channelSlot) terminate(err error) {
	if s.state == channelClosed {
		return
	}
	s.state = channelClosed
	s.failPending(err)
	s.teardownConsumers()
	s.closed.set(err)
}

func (s *channelSlot) consumerBufferSize(cfg Config) int {
	if cfg.ConsumerBufferSize <= 0 {
		return 16
	}
	return cfg.ConsumerBufferSize
}

// frameUnexpectedToChannelError adapts a collector state-machine fault
// into the channel-level error type handles observe.
func frameUnexpectedToChannelError(channel uint16, err error) error {
	if fu, ok := err.(*collector.FrameUnexpectedError); ok {
		return &FrameUnexpected{Channel: channel, Reason: fmt.Sprintf("%s while in state %s", fu.Frame, fu.State)}
	}
	return &FrameUnexpected{Channel: channel, Reason: err.Error()}
}
