package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"
)

// Table is an AMQP 0.9.1 field table: a string-keyed map of typed values.
// Supported Go value types are bool, int8, uint8, int16, uint16, int32,
// uint32, int64, uint64, float32, float64, Decimal, string, []byte,
// time.Time, Table, []interface{}, and nil.
type Table map[string]interface{}

// Decimal is a scaled decimal value: value * 10^-scale.
type Decimal struct {
	Scale uint8
	Value int32
}

const (
	tagBool      = 't'
	tagInt8      = 'b'
	tagUint8     = 'B'
	tagInt16     = 'U'
	tagUint16    = 'u'
	tagInt32     = 'I'
	tagUint32    = 'i'
	tagInt64     = 'L'
	tagUint64    = 'l'
	tagFloat32   = 'f'
	tagFloat64   = 'd'
	tagDecimal   = 'D'
	tagShortstr  = 's'
	tagLongstr   = 'S'
	tagArray     = 'A'
	tagTimestamp = 'T'
	tagTable     = 'F'
	tagVoid      = 'V'
	tagByteArray = 'x'
)

// EncodeTable serializes t into its wire representation, including the
// leading 4-byte length prefix, so callers that embed a table inline (such
// as Writer.Table) append the result as is. DecodeTable takes the body
// without that prefix.
func EncodeTable(t Table) ([]byte, error) {
	// deterministic key order keeps encodings (and therefore tests) stable;
	// the wire format itself does not mandate an order.
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf []byte
	for _, k := range keys {
		if len(k) > math.MaxUint8 {
			return nil, fmt.Errorf("wire: table key %q exceeds 255 bytes", k)
		}
		buf = append(buf, byte(len(k)))
		buf = append(buf, k...)
		encoded, err := encodeValue(t[k])
		if err != nil {
			return nil, fmt.Errorf("wire: table key %q: %w", k, err)
		}
		buf = append(buf, encoded...)
	}

	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(buf)))
	return append(length, buf...), nil
}

// DecodeTable parses a table's body (no length prefix, exactly len(b) bytes
// of field entries).
func DecodeTable(b []byte) (Table, error) {
	t := make(Table)
	off := 0
	for off < len(b) {
		if off+1 > len(b) {
			return nil, fmt.Errorf("wire: truncated table key length")
		}
		klen := int(b[off])
		off++
		if off+klen > len(b) {
			return nil, fmt.Errorf("wire: truncated table key")
		}
		key := string(b[off : off+klen])
		off += klen

		v, n, err := decodeValue(b[off:])
		if err != nil {
			return nil, fmt.Errorf("wire: table key %q: %w", key, err)
		}
		t[key] = v
		off += n
	}
	return t, nil
}

func encodeValue(v interface{}) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte{tagVoid}, nil
	case bool:
		b := byte(0)
		if val {
			b = 1
		}
		return []byte{tagBool, b}, nil
	case int8:
		return []byte{tagInt8, byte(val)}, nil
	case uint8:
		return []byte{tagUint8, val}, nil
	case int16:
		b := make([]byte, 3)
		b[0] = tagInt16
		binary.BigEndian.PutUint16(b[1:], uint16(val))
		return b, nil
	case uint16:
		b := make([]byte, 3)
		b[0] = tagUint16
		binary.BigEndian.PutUint16(b[1:], val)
		return b, nil
	case int32:
		b := make([]byte, 5)
		b[0] = tagInt32
		binary.BigEndian.PutUint32(b[1:], uint32(val))
		return b, nil
	case uint32:
		b := make([]byte, 5)
		b[0] = tagUint32
		binary.BigEndian.PutUint32(b[1:], val)
		return b, nil
	case int64:
		b := make([]byte, 9)
		b[0] = tagInt64
		binary.BigEndian.PutUint64(b[1:], uint64(val))
		return b, nil
	case uint64:
		b := make([]byte, 9)
		b[0] = tagUint64
		binary.BigEndian.PutUint64(b[1:], val)
		return b, nil
	case float32:
		b := make([]byte, 5)
		b[0] = tagFloat32
		binary.BigEndian.PutUint32(b[1:], math.Float32bits(val))
		return b, nil
	case float64:
		b := make([]byte, 9)
		b[0] = tagFloat64
		binary.BigEndian.PutUint64(b[1:], math.Float64bits(val))
		return b, nil
	case Decimal:
		b := make([]byte, 6)
		b[0] = tagDecimal
		b[1] = val.Scale
		binary.BigEndian.PutUint32(b[2:], uint32(val.Value))
		return b, nil
	case string:
		if len(val) > math.MaxUint8 {
			b := make([]byte, 5+len(val))
			b[0] = tagLongstr
			binary.BigEndian.PutUint32(b[1:], uint32(len(val)))
			copy(b[5:], val)
			return b, nil
		}
		b := make([]byte, 2+len(val))
		b[0] = tagShortstr
		b[1] = byte(len(val))
		copy(b[2:], val)
		return b, nil
	case []byte:
		b := make([]byte, 5+len(val))
		b[0] = tagByteArray
		binary.BigEndian.PutUint32(b[1:], uint32(len(val)))
		copy(b[5:], val)
		return b, nil
	case time.Time:
		b := make([]byte, 9)
		b[0] = tagTimestamp
		binary.BigEndian.PutUint64(b[1:], uint64(val.Unix()))
		return b, nil
	case Table:
		inner, err := EncodeTable(val)
		if err != nil {
			return nil, err
		}
		return append([]byte{tagTable}, inner...), nil
	case []interface{}:
		var body []byte
		for i, elem := range val {
			ev, err := encodeValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array element %d: %w", i, err)
			}
			body = append(body, ev...)
		}
		length := make([]byte, 4)
		binary.BigEndian.PutUint32(length, uint32(len(body)))
		return append(append([]byte{tagArray}, length...), body...), nil
	default:
		return nil, fmt.Errorf("wire: unsupported table value type %T", v)
	}
}

// decodeValue reads one tagged value from b and returns it plus the number
// of bytes consumed (tag included).
func decodeValue(b []byte) (interface{}, int, error) {
	if len(b) < 1 {
		return nil, 0, fmt.Errorf("wire: truncated value tag")
	}
	tag := b[0]
	switch tag {
	case tagVoid:
		return nil, 1, nil
	case tagBool:
		if len(b) < 2 {
			return nil, 0, fmt.Errorf("wire: truncated bool")
		}
		return b[1] != 0, 2, nil
	case tagInt8:
		if len(b) < 2 {
			return nil, 0, fmt.Errorf("wire: truncated int8")
		}
		return int8(b[1]), 2, nil
	case tagUint8:
		if len(b) < 2 {
			return nil, 0, fmt.Errorf("wire: truncated uint8")
		}
		return b[1], 2, nil
	case tagInt16:
		if len(b) < 3 {
			return nil, 0, fmt.Errorf("wire: truncated int16")
		}
		return int16(binary.BigEndian.Uint16(b[1:])), 3, nil
	case tagUint16:
		if len(b) < 3 {
			return nil, 0, fmt.Errorf("wire: truncated uint16")
		}
		return binary.BigEndian.Uint16(b[1:]), 3, nil
	case tagInt32:
		if len(b) < 5 {
			return nil, 0, fmt.Errorf("wire: truncated int32")
		}
		return int32(binary.BigEndian.Uint32(b[1:])), 5, nil
	case tagUint32:
		if len(b) < 5 {
			return nil, 0, fmt.Errorf("wire: truncated uint32")
		}
		return binary.BigEndian.Uint32(b[1:]), 5, nil
	case tagInt64:
		if len(b) < 9 {
			return nil, 0, fmt.Errorf("wire: truncated int64")
		}
		return int64(binary.BigEndian.Uint64(b[1:])), 9, nil
	case tagUint64:
		if len(b) < 9 {
			return nil, 0, fmt.Errorf("wire: truncated uint64")
		}
		return binary.BigEndian.Uint64(b[1:]), 9, nil
	case tagFloat32:
		if len(b) < 5 {
			return nil, 0, fmt.Errorf("wire: truncated float32")
		}
		return math.Float32frombits(binary.BigEndian.Uint32(b[1:])), 5, nil
	case tagFloat64:
		if len(b) < 9 {
			return nil, 0, fmt.Errorf("wire: truncated float64")
		}
		return math.Float64frombits(binary.BigEndian.Uint64(b[1:])), 9, nil
	case tagDecimal:
		if len(b) < 6 {
			return nil, 0, fmt.Errorf("wire: truncated decimal")
		}
		return Decimal{Scale: b[1], Value: int32(binary.BigEndian.Uint32(b[2:]))}, 6, nil
	case tagShortstr:
		if len(b) < 2 {
			return nil, 0, fmt.Errorf("wire: truncated shortstr length")
		}
		n := int(b[1])
		if len(b) < 2+n {
			return nil, 0, fmt.Errorf("wire: truncated shortstr")
		}
		return string(b[2 : 2+n]), 2 + n, nil
	case tagLongstr:
		if len(b) < 5 {
			return nil, 0, fmt.Errorf("wire: truncated longstr length")
		}
		n := int(binary.BigEndian.Uint32(b[1:]))
		if len(b) < 5+n {
			return nil, 0, fmt.Errorf("wire: truncated longstr")
		}
		return string(b[5 : 5+n]), 5 + n, nil
	case tagByteArray:
		if len(b) < 5 {
			return nil, 0, fmt.Errorf("wire: truncated byte array length")
		}
		n := int(binary.BigEndian.Uint32(b[1:]))
		if len(b) < 5+n {
			return nil, 0, fmt.Errorf("wire: truncated byte array")
		}
		return append([]byte(nil), b[5:5+n]...), 5 + n, nil
	case tagTimestamp:
		if len(b) < 9 {
			return nil, 0, fmt.Errorf("wire: truncated timestamp")
		}
		return time.Unix(int64(binary.BigEndian.Uint64(b[1:])), 0).UTC(), 9, nil
	case tagTable:
		if len(b) < 5 {
			return nil, 0, fmt.Errorf("wire: truncated table length")
		}
		n := int(binary.BigEndian.Uint32(b[1:]))
		if len(b) < 5+n {
			return nil, 0, fmt.Errorf("wire: truncated table body")
		}
		inner, err := DecodeTable(b[5 : 5+n])
		if err != nil {
			return nil, 0, err
		}
		return inner, 5 + n, nil
	case tagArray:
		if len(b) < 5 {
			return nil, 0, fmt.Errorf("wire: truncated array length")
		}
		n := int(binary.BigEndian.Uint32(b[1:]))
		if len(b) < 5+n {
			return nil, 0, fmt.Errorf("wire: truncated array body")
		}
		body := b[5 : 5+n]
		var elems []interface{}
		off := 0
		for off < len(body) {
			v, consumed, err := decodeValue(body[off:])
			if err != nil {
				return nil, 0, err
			}
			elems = append(elems, v)
			off += consumed
		}
		return elems, 5 + n, nil
	default:
		return nil, 0, fmt.Errorf("wire: unknown table value tag %q", tag)
	}
}
