// Package wire implements the AMQP 0.9.1 class/method argument codec: the
// typed payload carried inside a method frame's body, plus the field-table
// and basic-properties encodings shared across classes.
//
// Frame transport (the {type, channel, size, payload, end} envelope) lives
// in internal/frame; this package only concerns itself with what goes
// inside a method frame's payload and a content-header frame's properties.
package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Writer accumulates the typed fields of a method argument list or a
// properties payload in wire order. It never returns an error: all
// failures (value too large for its wire type) are deferred to the first
// call to Err, matching an append-only builder that can't fail mid-write.
type Writer struct {
	buf  []byte
	bits []bitSlot
	err  error
}

type bitSlot struct {
	idx int // index into buf of the byte holding this run of bits
	pos uint
}

// NewWriter returns a Writer ready to accept fields.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated payload. Must be called after any pending
// bit run is closed by a non-bool field or by Bytes itself.
func (w *Writer) Bytes() []byte {
	w.bits = nil
	return w.buf
}

// Err returns the first encoding error encountered, if any.
func (w *Writer) Err() error { return w.err }

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// Bool writes a single bit. Consecutive Bool calls are packed into the
// same octet, per AMQP 0.9.1's bit-field packing rule; any other field
// type closes the run and starts a fresh octet on the next Bool.
func (w *Writer) Bool(v bool) *Writer {
	if len(w.bits) == 0 || w.bits[len(w.bits)-1].pos == 8 {
		w.buf = append(w.buf, 0)
		w.bits = append(w.bits, bitSlot{idx: len(w.buf) - 1, pos: 0})
	}
	slot := &w.bits[len(w.bits)-1]
	if v {
		w.buf[slot.idx] |= 1 << slot.pos
	}
	slot.pos++
	return w
}

func (w *Writer) closeBits() { w.bits = nil }

func (w *Writer) Octet(v uint8) *Writer {
	w.closeBits()
	w.buf = append(w.buf, v)
	return w
}

func (w *Writer) Short(v uint16) *Writer {
	w.closeBits()
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return w
}

func (w *Writer) Long(v uint32) *Writer {
	w.closeBits()
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return w
}

func (w *Writer) Longlong(v uint64) *Writer {
	w.closeBits()
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return w
}

func (w *Writer) Timestamp(t time.Time) *Writer {
	return w.Longlong(uint64(t.Unix()))
}

// Shortstr writes a length-prefixed (1 byte) string; len(v) must fit a byte.
func (w *Writer) Shortstr(v string) *Writer {
	w.closeBits()
	if len(v) > math.MaxUint8 {
		w.fail(fmt.Errorf("wire: shortstr %q exceeds 255 bytes", v))
		return w
	}
	w.buf = append(w.buf, byte(len(v)))
	w.buf = append(w.buf, v...)
	return w
}

// Longstr writes a length-prefixed (4 bytes) byte string.
func (w *Writer) Longstr(v []byte) *Writer {
	w.closeBits()
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(len(v)))
	w.buf = append(w.buf, b[:]...)
	w.buf = append(w.buf, v...)
	return w
}

// Table writes a field table.
func (w *Writer) Table(t Table) *Writer {
	w.closeBits()
	encoded, err := EncodeTable(t)
	if err != nil {
		w.fail(err)
		return w
	}
	w.buf = append(w.buf, encoded...)
	return w
}

// Reader decodes the typed fields of a method argument list or properties
// payload, in the same order they were written.
type Reader struct {
	buf     []byte
	off     int
	bitPos  uint
	bitByte byte
	inBits  bool
	err     error
}

func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

func (r *Reader) Err() error { return r.err }

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.off+n > len(r.buf) {
		r.fail(fmt.Errorf("wire: short buffer: need %d bytes, have %d", n, len(r.buf)-r.off))
		return false
	}
	return true
}

func (r *Reader) Bool() bool {
	if !r.inBits || r.bitPos == 8 {
		if !r.need(1) {
			return false
		}
		r.bitByte = r.buf[r.off]
		r.off++
		r.bitPos = 0
		r.inBits = true
	}
	v := r.bitByte&(1<<r.bitPos) != 0
	r.bitPos++
	return v
}

func (r *Reader) closeBits() { r.inBits = false }

func (r *Reader) Octet() uint8 {
	r.closeBits()
	if !r.need(1) {
		return 0
	}
	v := r.buf[r.off]
	r.off++
	return v
}

func (r *Reader) Short() uint16 {
	r.closeBits()
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v
}

func (r *Reader) Long() uint32 {
	r.closeBits()
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *Reader) Longlong() uint64 {
	r.closeBits()
	if !r.need(8) {
		return 0
	}
	v := binary.BigEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

func (r *Reader) Timestamp() time.Time {
	return time.Unix(int64(r.Longlong()), 0).UTC()
}

func (r *Reader) Shortstr() string {
	r.closeBits()
	n := int(r.Octet())
	if !r.need(n) {
		return ""
	}
	v := string(r.buf[r.off : r.off+n])
	r.off += n
	return v
}

func (r *Reader) Longstr() []byte {
	r.closeBits()
	n := int(r.Long())
	if !r.need(n) {
		return nil
	}
	v := append([]byte(nil), r.buf[r.off:r.off+n]...)
	r.off += n
	return v
}

func (r *Reader) Table() Table {
	r.closeBits()
	n := int(r.Long())
	if !r.need(n) {
		return nil
	}
	t, err := DecodeTable(r.buf[r.off : r.off+n])
	if err != nil {
		r.fail(err)
		return nil
	}
	r.off += n
	return t
}

// Rest returns whatever bytes remain unconsumed, used by content bodies
// which aren't part of the typed argument list.
func (r *Reader) Rest() []byte {
	r.closeBits()
	return r.buf[r.off:]
}
