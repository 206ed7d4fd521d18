// Package buffer implements the output buffer: an append-only staging
// area that the I/O loop encodes outgoing frames into before writing them
// to the stream. The loop owns the one Buffer in use and fills it on its
// own goroutine; application-thread handles do not encode frames, they
// pass methods to the loop. It exposes only the three frame append
// operations a channel needs rather than a general byte-buffer type.
package buffer

import (
	"github.com/amqp091-core/amqp091/internal/frame"
	"github.com/amqp091-core/amqp091/internal/wire"
)

// frameOverhead is the fixed {type, channel, size, end} envelope around
// every frame's payload (7 bytes header + 1 byte end marker).
const frameOverhead = 8

// Buffer stages encoded frame bytes for the I/O loop. It never
// splits a method frame; content bodies are split into chunks of at most
// frameMax-frameOverhead bytes.
type Buffer struct {
	bytes []byte
}

// New returns an empty Buffer.
func New() *Buffer { return &Buffer{} }

// Reset empties the buffer for reuse without releasing its backing array.
func (b *Buffer) Reset() { b.bytes = b.bytes[:0] }

// Len reports the number of staged bytes.
func (b *Buffer) Len() int { return len(b.bytes) }

// PushMethod appends one complete method frame.
func (b *Buffer) PushMethod(channel uint16, m wire.Method) error {
	payload, err := wire.Encode(m)
	if err != nil {
		return err
	}
	b.bytes = append(b.bytes, frame.WriteMethod(channel, payload)...)
	return nil
}

// PushContentHeader appends one content-header frame.
func (b *Buffer) PushContentHeader(channel uint16, classID uint16, bodyLen uint64, props wire.Properties) {
	propsPayload := wire.EncodeProperties(props)
	b.bytes = append(b.bytes, frame.WriteHeader(channel, classID, bodyLen, propsPayload)...)
}

// PushContentBody appends the content body, split into chunks no larger
// than frameMax-frameOverhead bytes each. A zero-length body (e.g. an
// empty basic.get-ok) pushes no body frames at all.
func (b *Buffer) PushContentBody(channel uint16, body []byte, frameMax uint32) {
	maxChunk := int(frameMax) - frameOverhead
	if maxChunk <= 0 {
		maxChunk = len(body)
		if maxChunk == 0 {
			maxChunk = 1
		}
	}
	for len(body) > 0 {
		n := maxChunk
		if n > len(body) {
			n = len(body)
		}
		b.bytes = append(b.bytes, frame.WriteBody(channel, body[:n])...)
		body = body[n:]
	}
}

// DrainIntoNewBuf atomically takes the buffer's current contents,
// leaving it empty. The I/O loop calls this once per handle message it
// processes so a later PushX can never land inside bytes already claimed
// for the wire.
func (b *Buffer) DrainIntoNewBuf() []byte {
	drained := b.bytes
	b.bytes = nil
	return drained
}
