// Package mocks provides a scripted in-memory peer for exercising the I/O
// loop without a real broker: a back-to-back net.Pipe whose "server" side
// is driven step-by-step by test code instead of talking to anything real.
package mocks

import (
	"net"
	"testing"

	"github.com/amqp091-core/amqp091/internal/frame"
	"github.com/amqp091-core/amqp091/internal/wire"
)

// Broker is the server half of an in-memory AMQP conversation. Tests hand
// the client half (a net.Conn) to the loop under test and drive the
// broker half directly to assert what the loop sent and script what it
// receives next.
type Broker struct {
	t      testing.TB
	server net.Conn
}

// NewBroker returns a Broker and the client-side net.Conn meant to be
// passed to the loop under test.
func NewBroker(t testing.TB) (*Broker, net.Conn) {
	client, server := net.Pipe()
	return &Broker{t: t, server: server}, client
}

// ExpectMethod reads the next frame and asserts it is a method frame on
// channel, returning the decoded method for field-level assertions.
func (b *Broker) ExpectMethod(channel uint16) wire.Method {
	b.t.Helper()
	fr := b.readFrame()
	if fr.Type != frame.TypeMethod {
		b.t.Fatalf("broker: expected method frame on channel %d, got type %d", channel, fr.Type)
	}
	if fr.Channel != channel {
		b.t.Fatalf("broker: expected method on channel %d, got channel %d", channel, fr.Channel)
	}
	m, err := wire.Decode(fr.MethodPayload)
	if err != nil {
		b.t.Fatalf("broker: decoding method: %v", err)
	}
	return m
}

// ExpectHeader reads the next frame and asserts it is a content-header
// frame on channel.
func (b *Broker) ExpectHeader(channel uint16) (classID uint16, bodySize uint64, props wire.Properties) {
	b.t.Helper()
	fr := b.readFrame()
	if fr.Type != frame.TypeHeader {
		b.t.Fatalf("broker: expected header frame on channel %d, got type %d", channel, fr.Type)
	}
	if fr.Channel != channel {
		b.t.Fatalf("broker: expected header on channel %d, got channel %d", channel, fr.Channel)
	}
	p, err := wire.DecodeProperties(fr.HeaderProps)
	if err != nil {
		b.t.Fatalf("broker: decoding properties: %v", err)
	}
	return fr.HeaderClassID, fr.HeaderBodySize, p
}

// ExpectBody reads the next frame and asserts it is a content-body frame
// on channel, returning its chunk.
func (b *Broker) ExpectBody(channel uint16) []byte {
	b.t.Helper()
	fr := b.readFrame()
	if fr.Type != frame.TypeBody {
		b.t.Fatalf("broker: expected body frame on channel %d, got type %d", channel, fr.Type)
	}
	if fr.Channel != channel {
		b.t.Fatalf("broker: expected body on channel %d, got channel %d", channel, fr.Channel)
	}
	return fr.BodyChunk
}

// ExpectHeartbeat reads the next frame and asserts it is a heartbeat.
func (b *Broker) ExpectHeartbeat() {
	b.t.Helper()
	fr := b.readFrame()
	if fr.Type != frame.TypeHeartbeat {
		b.t.Fatalf("broker: expected heartbeat frame, got type %d", fr.Type)
	}
}

func (b *Broker) readFrame() *frame.Frame {
	b.t.Helper()
	fr, err := frame.Read(b.server, 0)
	if err != nil {
		b.t.Fatalf("broker: reading frame: %v", err)
	}
	return fr
}

// SendMethod writes a method frame to the client.
func (b *Broker) SendMethod(channel uint16, m wire.Method) {
	b.t.Helper()
	payload, err := wire.Encode(m)
	if err != nil {
		b.t.Fatalf("broker: encoding method: %v", err)
	}
	if _, err := b.server.Write(frame.WriteMethod(channel, payload)); err != nil {
		b.t.Fatalf("broker: writing method: %v", err)
	}
}

// SendContent writes a complete method+header+body sequence.
func (b *Broker) SendContent(channel uint16, m wire.ContentBearing, props wire.Properties, body []byte) {
	b.t.Helper()
	b.SendMethod(channel, m)
	propsPayload := wire.EncodeProperties(props)
	if _, err := b.server.Write(frame.WriteHeader(channel, m.ClassID(), uint64(len(body)), propsPayload)); err != nil {
		b.t.Fatalf("broker: writing header: %v", err)
	}
	if len(body) > 0 {
		if _, err := b.server.Write(frame.WriteBody(channel, body)); err != nil {
			b.t.Fatalf("broker: writing body: %v", err)
		}
	}
}

// SendHeartbeat writes a heartbeat frame.
func (b *Broker) SendHeartbeat() {
	b.t.Helper()
	if _, err := b.server.Write(frame.WriteHeartbeat()); err != nil {
		b.t.Fatalf("broker: writing heartbeat: %v", err)
	}
}

// Close closes the server side of the pipe.
func (b *Broker) Close() { b.server.Close() }
