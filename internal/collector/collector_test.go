package collector

import (
	"testing"

	"github.com/amqp091-core/amqp091/internal/wire"
	"github.com/stretchr/testify/require"
)

func deliverMethod() *wire.BasicDeliver {
	return &wire.BasicDeliver{ConsumerTag: "ctag-1", DeliveryTag: 7, Exchange: "", RoutingKey: "q"}
}

// TestFullSequenceEmitsOnceAndReturnsIdle asserts that for any scripted
// broker transcript containing one method+header+body*n, the collector
// yields exactly one complete content whose body bytes concatenate to
// the input, and is Idle afterward.
func TestFullSequenceEmitsOnceAndReturnsIdle(t *testing.T) {
	var c Collector
	require.True(t, c.IsIdle())

	require.NoError(t, c.StartMethod(deliverMethod()))
	require.False(t, c.IsIdle())

	content, err := c.Header(wire.ClassBasic, 5, wire.EncodeProperties(wire.Properties{}))
	require.NoError(t, err)
	require.Nil(t, content)
	require.False(t, c.IsIdle())

	content, err = c.Body([]byte("hel"))
	require.NoError(t, err)
	require.Nil(t, content)

	content, err = c.Body([]byte("lo"))
	require.NoError(t, err)
	require.NotNil(t, content)
	require.True(t, c.IsIdle())

	require.Equal(t, TriggerDeliver, content.Trigger)
	require.Equal(t, []byte("hello"), content.Body)
}

// TestPrefixYieldsNoEmission covers "Feeding the collector any prefix
// shorter than the full content yields no emission and leaves it
// not-Idle."
func TestPrefixYieldsNoEmission(t *testing.T) {
	var c Collector
	require.NoError(t, c.StartMethod(deliverMethod()))
	_, err := c.Header(wire.ClassBasic, 5, wire.EncodeProperties(wire.Properties{}))
	require.NoError(t, err)

	content, err := c.Body([]byte("he"))
	require.NoError(t, err)
	require.Nil(t, content)
	require.False(t, c.IsIdle())
}

func TestBodyBeforeHeaderIsUnexpected(t *testing.T) {
	var c Collector
	require.NoError(t, c.StartMethod(deliverMethod()))
	_, err := c.Body([]byte("oops"))
	require.Error(t, err)
	var ue *FrameUnexpectedError
	require.ErrorAs(t, err, &ue)
}

func TestHeaderBeforeMethodIsUnexpected(t *testing.T) {
	var c Collector
	_, err := c.Header(wire.ClassBasic, 0, wire.EncodeProperties(wire.Properties{}))
	require.Error(t, err)
	var ue *FrameUnexpectedError
	require.ErrorAs(t, err, &ue)
}

func TestMethodWhileAwaitingBodyIsUnexpected(t *testing.T) {
	var c Collector
	require.NoError(t, c.StartMethod(deliverMethod()))
	_, err := c.Header(wire.ClassBasic, 5, wire.EncodeProperties(wire.Properties{}))
	require.NoError(t, err)

	err = c.StartMethod(deliverMethod())
	require.Error(t, err)
	var ue *FrameUnexpectedError
	require.ErrorAs(t, err, &ue)
}

func TestOverflowBodyIsUnexpectedAndResets(t *testing.T) {
	var c Collector
	require.NoError(t, c.StartMethod(deliverMethod()))
	_, err := c.Header(wire.ClassBasic, 5, wire.EncodeProperties(wire.Properties{}))
	require.NoError(t, err)

	_, err = c.Body([]byte("abcdef")) // 6 > declared 5
	require.Error(t, err)
	var ue *FrameUnexpectedError
	require.ErrorAs(t, err, &ue)
	// overflow resets the collector so the channel (which is about to be
	// marked closed by the I/O loop) doesn't wedge in AwaitBody forever.
	require.True(t, c.IsIdle())
}

func TestZeroLengthBodyEmitsImmediatelyFromHeader(t *testing.T) {
	var c Collector
	getOk := &wire.BasicGetOk{DeliveryTag: 1, Exchange: "", RoutingKey: "q"}
	require.NoError(t, c.StartMethod(getOk))

	content, err := c.Header(wire.ClassBasic, 0, wire.EncodeProperties(wire.Properties{}))
	require.NoError(t, err)
	require.NotNil(t, content)
	require.True(t, c.IsIdle())
	require.Equal(t, TriggerGetOk, content.Trigger)
	require.Empty(t, content.Body)
}

func TestNonContentBearingMethodIsNotCollected(t *testing.T) {
	var c Collector
	_, ok := TriggerFor(&wire.BasicConsumeOk{ConsumerTag: "ctag-1"})
	require.False(t, ok)

	err := c.StartMethod(&wire.BasicConsumeOk{ConsumerTag: "ctag-1"})
	require.Error(t, err)
	require.True(t, c.IsIdle())
}

func TestReturnTrigger(t *testing.T) {
	var c Collector
	ret := &wire.BasicReturn{ReplyCode: 312, ReplyText: "NO_ROUTE", Exchange: "ex", RoutingKey: "q"}
	require.NoError(t, c.StartMethod(ret))
	content, err := c.Header(wire.ClassBasic, 0, wire.EncodeProperties(wire.Properties{}))
	require.NoError(t, err)
	require.Equal(t, TriggerReturn, content.Trigger)
}
