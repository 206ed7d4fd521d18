package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, m Method) Method {
	t.Helper()
	payload, err := Encode(m)
	require.NoError(t, err)

	decoded, err := Decode(payload)
	require.NoError(t, err)
	require.Equal(t, m.ClassID(), decoded.ClassID())
	require.Equal(t, m.MethodID(), decoded.MethodID())
	return decoded
}

func TestMethodRoundTrip(t *testing.T) {
	cases := []Method{
		&ConnectionStart{VersionMajor: 0, VersionMinor: 9, ServerProperties: Table{"product": "test"}, Mechanisms: []byte("PLAIN"), Locales: []byte("en_US")},
		&ConnectionTune{ChannelMax: 2047, FrameMax: 131072, Heartbeat: 60},
		&ConnectionOpen{VirtualHost: "/"},
		&ConnectionClose{ReplyCode: 200, ReplyText: "OK"},
		&ChannelOpen{},
		&ChannelClose{ReplyCode: 406, ReplyText: "PRECONDITION_FAILED", ClassID_: 50, MethodID_: 10},
		&QueueDeclare{Queue: "q", Durable: true, Arguments: Table{"x-max-length": int32(10)}},
		&QueueDeclareOk{Queue: "q", MessageCount: 3, ConsumerCount: 1},
		&BasicPublish{Exchange: "", RoutingKey: "q"},
		&BasicConsume{Queue: "q", ConsumerTag: "ctag-1", NoAck: true},
		&BasicConsumeOk{ConsumerTag: "ctag-1"},
		&BasicDeliver{ConsumerTag: "ctag-1", DeliveryTag: 7, Exchange: "", RoutingKey: "q"},
		&BasicGetOk{DeliveryTag: 1, Exchange: "", RoutingKey: "q", MessageCount: 0},
		&BasicGetEmpty{},
		&BasicAck{DeliveryTag: 5, Multiple: true},
		&BasicNack{DeliveryTag: 6, Requeue: true},
		&ExchangeDeclare{Exchange: "ex", Type: "direct", Durable: true},
		&TxSelect{},
		&ConfirmSelect{},
		&ConnectionBlocked{Reason: "low on memory"},
	}

	for _, m := range cases {
		roundTrip(t, m)
	}
}

func TestMethodRoundTripValues(t *testing.T) {
	orig := &BasicDeliver{
		ConsumerTag: "ctag-1",
		DeliveryTag: 7,
		Redelivered: true,
		Exchange:    "amq.direct",
		RoutingKey:  "q",
	}
	decoded := roundTrip(t, orig).(*BasicDeliver)
	require.Equal(t, orig, decoded)
}

func TestDecodeUnknownMethod(t *testing.T) {
	w := NewWriter()
	w.Short(9999).Short(1)
	_, err := Decode(w.Bytes())
	require.Error(t, err)
	var unknown *ErrUnknownMethod
	require.ErrorAs(t, err, &unknown)
	require.EqualValues(t, 9999, unknown.ClassID)
}

func TestTableRoundTrip(t *testing.T) {
	now := time.Unix(time.Now().Unix(), 0).UTC()
	in := Table{
		"a-bool":   true,
		"a-int32":  int32(-42),
		"a-uint64": uint64(9999999999),
		"a-string": "hello",
		"a-float":  float64(3.5),
		"a-nested": Table{"inner": "value"},
		"a-array":  []interface{}{int32(1), "two", true},
		"a-null":   nil,
		"a-time":   now,
	}

	encoded, err := EncodeTable(in)
	require.NoError(t, err)

	// strip the leading 4-byte length prefix EncodeTable adds for inline use.
	out, err := DecodeTable(encoded[4:])
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestPropertiesRoundTrip(t *testing.T) {
	ct := "text/plain"
	dm := uint8(2)
	corr := "req-1"
	p := Properties{
		ContentType:   &ct,
		DeliveryMode:  &dm,
		CorrelationID: &corr,
		Headers:       Table{"x-retry": int32(1)},
	}

	encoded := EncodeProperties(p)
	decoded, err := DecodeProperties(encoded)
	require.NoError(t, err)
	require.Equal(t, p, decoded)
}

func TestPropertiesEmptyRoundTrip(t *testing.T) {
	encoded := EncodeProperties(Properties{})
	decoded, err := DecodeProperties(encoded)
	require.NoError(t, err)
	require.Equal(t, Properties{}, decoded)
}
