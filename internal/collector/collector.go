// Package collector implements the per-channel content-assembly state
// machine: a content-bearing method followed by exactly one
// content-header then zero or more body fragments, reassembled into one
// complete Content value.
package collector

import (
	"fmt"

	"github.com/amqp091-core/amqp091/internal/wire"
)

// Trigger identifies which content-bearing method started the sequence
// currently being assembled.
type Trigger int

const (
	// TriggerDeliver routes the assembled content to a channel's consumer
	// map by tag.
	TriggerDeliver Trigger = iota
	// TriggerGetOk satisfies a pending basic.get RPC.
	TriggerGetOk
	// TriggerReturn surfaces the content on the returned-message stream.
	TriggerReturn
)

func (t Trigger) String() string {
	switch t {
	case TriggerDeliver:
		return "deliver"
	case TriggerGetOk:
		return "get-ok"
	case TriggerReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Content is one fully assembled method+header+body sequence.
type Content struct {
	Trigger    Trigger
	Method     wire.Method // *wire.BasicDeliver, *wire.BasicGetOk, or *wire.BasicReturn
	ClassID    uint16
	Properties wire.Properties
	Body       []byte
}

type state int

const (
	stateIdle state = iota
	stateAwaitHeader
	stateAwaitBody
)

// FrameUnexpectedError is returned for any frame that arrives in a state
// that doesn't expect it — a body frame with no preceding header, a
// header with no preceding content-bearing method, and so on. It is
// fatal to the channel it occurred on, not the connection.
type FrameUnexpectedError struct {
	State string
	Frame string
}

func (e *FrameUnexpectedError) Error() string {
	return fmt.Sprintf("collector: unexpected %s frame while %s", e.Frame, e.State)
}

func unexpected(s state, frame string) error {
	return &FrameUnexpectedError{State: s.String(), Frame: frame}
}

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAwaitHeader:
		return "awaiting header"
	case stateAwaitBody:
		return "awaiting body"
	default:
		return "unknown"
	}
}

// TriggerFor reports the Trigger for a content-bearing method, and false
// for any method that isn't content-bearing. A non-content-bearing
// method arriving while the collector is Idle is passed through by the
// caller rather than collected.
func TriggerFor(m wire.Method) (Trigger, bool) {
	switch m.(type) {
	case *wire.BasicDeliver:
		return TriggerDeliver, true
	case *wire.BasicGetOk:
		return TriggerGetOk, true
	case *wire.BasicReturn:
		return TriggerReturn, true
	default:
		return 0, false
	}
}

// Collector is the per-channel content-assembly state machine. The zero
// value is a Collector in the Idle state.
type Collector struct {
	state   state
	trigger Trigger
	method  wire.Method
	classID uint16
	want    uint64
	props   wire.Properties
	accum   []byte
}

// IsIdle reports whether the collector has no content in flight — checked
// by the I/O loop when a channel closes, so a close landing mid-assembly
// shows up as a logged assertion failure rather than passing silently.
func (c *Collector) IsIdle() bool { return c.state == stateIdle }

// StartMethod begins collecting a content-bearing method. It returns a
// FrameUnexpectedError, leaving the collector unchanged, if the collector
// is not Idle or if m is not content-bearing (per TriggerFor).
func (c *Collector) StartMethod(m wire.Method) error {
	if c.state != stateIdle {
		return unexpected(c.state, "method")
	}
	trig, ok := TriggerFor(m)
	if !ok {
		return unexpected(c.state, "non-content-bearing method")
	}
	c.trigger = trig
	c.method = m
	c.state = stateAwaitHeader
	return nil
}

// Header processes a content-header frame. If the declared body size is
// zero the content is complete immediately and returned; otherwise the
// collector moves to AwaitBody and returns (nil, nil).
func (c *Collector) Header(classID uint16, bodySize uint64, propsPayload []byte) (*Content, error) {
	if c.state != stateAwaitHeader {
		return nil, unexpected(c.state, "header")
	}
	props, err := wire.DecodeProperties(propsPayload)
	if err != nil {
		c.reset()
		return nil, err
	}

	c.classID = classID
	c.want = bodySize

	if bodySize == 0 {
		content := &Content{Trigger: c.trigger, Method: c.method, ClassID: classID, Properties: props, Body: nil}
		c.reset()
		return content, nil
	}

	c.accum = make([]byte, 0, bodySize)
	c.props = props
	c.state = stateAwaitBody
	return nil, nil
}

// Body processes one content-body fragment. Returns the assembled Content
// once accumulated bytes reach the header's declared body_size; an
// overflow (more bytes than declared) is a FrameUnexpectedError.
func (c *Collector) Body(chunk []byte) (*Content, error) {
	if c.state != stateAwaitBody {
		return nil, unexpected(c.state, "body")
	}

	c.accum = append(c.accum, chunk...)
	switch {
	case uint64(len(c.accum)) == c.want:
		content := &Content{Trigger: c.trigger, Method: c.method, ClassID: c.classID, Properties: c.props, Body: c.accum}
		c.reset()
		return content, nil
	case uint64(len(c.accum)) < c.want:
		return nil, nil
	default:
		err := unexpected(c.state, "body (overflow)")
		c.reset()
		return nil, err
	}
}

func (c *Collector) reset() {
	c.state = stateIdle
	c.trigger = 0
	c.method = nil
	c.classID = 0
	c.want = 0
	c.accum = nil
	c.props = wire.Properties{}
}
