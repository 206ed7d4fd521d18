// Package frame implements the AMQP 0.9.1 wire envelope: the
// {type, channel, size, payload, end} octet layout. It knows nothing
// about what a method's arguments mean — that's internal/wire's job —
// only how to find the boundaries of one frame in a byte stream and how
// to lay a frame back out for the wire.
package frame

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Frame types, per the AMQP 0.9.1 frame header.
const (
	TypeMethod    uint8 = 1
	TypeHeader    uint8 = 2
	TypeBody      uint8 = 3
	TypeHeartbeat uint8 = 8
)

// End is the fixed frame terminator octet.
const End uint8 = 0xCE

// ConnectionChannel is the reserved channel id for connection-level
// methods and heartbeats.
const ConnectionChannel uint16 = 0

// ProtocolHeader is sent once by the client immediately after the TCP (or
// TLS) connection is established.
var ProtocolHeader = [8]byte{'A', 'M', 'Q', 'P', 0, 0, 9, 1}

// headerSize is the fixed portion preceding a frame's payload: 1 byte
// type, 2 bytes channel, 4 bytes payload size.
const headerSize = 7

// Frame is the decoded representation of one AMQP frame: exactly one of
// Method, Header, or Body is populated depending on Type, or none of
// them for a heartbeat.
type Frame struct {
	Type    uint8
	Channel uint16

	// Method payload, present when Type == TypeMethod. Left as raw bytes;
	// internal/wire.Decode turns it into a typed Method.
	MethodPayload []byte

	// Header fields, present when Type == TypeHeader.
	HeaderClassID  uint16
	HeaderBodySize uint64
	HeaderProps    []byte // raw properties payload, see internal/wire.DecodeProperties

	// Body fields, present when Type == TypeBody.
	BodyChunk []byte
}

// ProtocolError is returned for a structurally invalid frame: a bad end
// marker, or a content-header payload too short for its own class id.
// It is fatal to the connection.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return "frame: protocol error: " + e.Reason }

// FrameTooLarge is returned when an inbound (or to-be-written) frame's
// payload would exceed the negotiated frame_max.
type FrameTooLarge struct {
	Size     uint32
	FrameMax uint32
}

func (e *FrameTooLarge) Error() string {
	return fmt.Sprintf("frame: size %d exceeds frame_max %d", e.Size, e.FrameMax)
}

// Read parses exactly one frame from r. frameMax bounds the accepted
// payload size; pass 0 to skip that check (used while still negotiating
// frame_max during the handshake's Start/Tune exchange).
func Read(r io.Reader, frameMax uint32) (*Frame, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}

	typ := hdr[0]
	channel := binary.BigEndian.Uint16(hdr[1:3])
	size := binary.BigEndian.Uint32(hdr[3:7])

	if frameMax != 0 && size > frameMax {
		return nil, &FrameTooLarge{Size: size, FrameMax: frameMax}
	}

	payload := make([]byte, size)
	if size > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
	}

	var end [1]byte
	if _, err := io.ReadFull(r, end[:]); err != nil {
		return nil, err
	}
	if end[0] != End {
		return nil, &ProtocolError{Reason: fmt.Sprintf("frame end marker was 0x%02x, want 0x%02x", end[0], End)}
	}

	return decodeBody(typ, channel, payload)
}

func decodeBody(typ uint8, channel uint16, payload []byte) (*Frame, error) {
	switch typ {
	case TypeMethod:
		return &Frame{Type: typ, Channel: channel, MethodPayload: payload}, nil
	case TypeHeader:
		if len(payload) < 12 {
			return nil, &ProtocolError{Reason: "content-header frame shorter than fixed fields"}
		}
		classID := binary.BigEndian.Uint16(payload[0:2])
		// payload[2:4] is "weight", reserved and always 0.
		bodySize := binary.BigEndian.Uint64(payload[4:12])
		return &Frame{
			Type:           typ,
			Channel:        channel,
			HeaderClassID:  classID,
			HeaderBodySize: bodySize,
			HeaderProps:    payload[12:],
		}, nil
	case TypeBody:
		return &Frame{Type: typ, Channel: channel, BodyChunk: payload}, nil
	case TypeHeartbeat:
		return &Frame{Type: typ, Channel: channel}, nil
	default:
		return nil, &ProtocolError{Reason: fmt.Sprintf("unknown frame type %d", typ)}
	}
}

// WriteMethod serializes a method frame: channel id plus an already
// wire.Encode'd method payload.
func WriteMethod(channel uint16, methodPayload []byte) []byte {
	return encodeFrame(TypeMethod, channel, methodPayload)
}

// WriteHeader serializes a content-header frame for a content-bearing
// method's reply/delivery: class id, a zero'd weight field, the total
// body size, then the properties payload.
func WriteHeader(channel uint16, classID uint16, bodySize uint64, propsPayload []byte) []byte {
	body := make([]byte, 12+len(propsPayload))
	binary.BigEndian.PutUint16(body[0:2], classID)
	// body[2:4] weight stays 0.
	binary.BigEndian.PutUint64(body[4:12], bodySize)
	copy(body[12:], propsPayload)
	return encodeFrame(TypeHeader, channel, body)
}

// WriteBody serializes one content-body fragment.
func WriteBody(channel uint16, chunk []byte) []byte {
	return encodeFrame(TypeBody, channel, chunk)
}

// WriteHeartbeat serializes a zero-payload heartbeat frame.
func WriteHeartbeat() []byte {
	return encodeFrame(TypeHeartbeat, ConnectionChannel, nil)
}

func encodeFrame(typ uint8, channel uint16, payload []byte) []byte {
	out := make([]byte, headerSize, headerSize+len(payload)+1)
	out[0] = typ
	binary.BigEndian.PutUint16(out[1:3], channel)
	binary.BigEndian.PutUint32(out[3:7], uint32(len(payload)))
	out = append(out, payload...)
	out = append(out, End)
	return out
}
