package amqp091

import "github.com/amqp091-core/amqp091/internal/wire"

// Delivery is one fully assembled, immutable inbound message, built from
// a basic.deliver or basic.get-ok trigger in internal/collector.
type Delivery struct {
	ConsumerTag string
	DeliveryTag uint64
	Redelivered bool
	Exchange    string
	RoutingKey  string
	Body        []byte
	Properties  wire.Properties

	// MessageCount is only meaningful for a Channel.Get result
	// (basic.get-ok's reserved "message-count" field): the number of
	// messages remaining ready on the queue, not counting this one.
	MessageCount uint32
}

// Return is an unroutable mandatory/immediate publish bounced back by the
// broker as basic.return.
type Return struct {
	ReplyCode  uint16
	ReplyText  string
	Exchange   string
	RoutingKey string
	Body       []byte
	Properties wire.Properties
}

// Confirmation is a publisher-confirm acknowledgement: a basic.ack or
// basic.nack received on a channel that has called confirm.select.
type Confirmation struct {
	DeliveryTag uint64
	Ack         bool
	Multiple    bool
}

// Blocked is delivered on the connection's blocked-notification stream
// when the broker pauses publishers for a reason (e.g. low on disk).
type Blocked struct {
	// Active is true for connection.blocked, false for
	// connection.unblocked.
	Active bool
	Reason string
}
