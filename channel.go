package amqp091

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/amqp091-core/amqp091/internal/wire"
)

// Channel is the application-thread handle onto one loop-owned channel
// slot: every call crosses into the loop only through requests, and every
// terminal state crosses back only through the shared closedState cell,
// so a handle never needs to lock against the loop.
type Channel struct {
	id   uint16
	conn *Connection

	closed   *closedState
	returns  <-chan *Return
	confirms <-chan *Confirmation
}

func newChannel(id uint16, conn *Connection, closed *closedState, returns <-chan *Return, confirms <-chan *Confirmation) *Channel {
	return &Channel{id: id, conn: conn, closed: closed, returns: returns, confirms: confirms}
}

// ID returns the channel's wire id.
func (ch *Channel) ID() uint16 { return ch.id }

// Call sends method and blocks until its matching reply arrives, the
// channel or connection closes, or ctx is done.
func (ch *Channel) Call(ctx context.Context, method wire.Method) (wire.Method, error) {
	outcome, err := ch.doCall(ctx, method)
	if err != nil {
		return nil, err
	}
	return outcome.method, nil
}

// CallNowait sends method without waiting for a reply.
func (ch *Channel) CallNowait(ctx context.Context, method wire.Method) error {
	if err := ch.fastFailIfClosed(); err != nil {
		return err
	}
	return ch.conn.loop.submit(ctx, &request{channel: ch.id, method: method})
}

// doCall performs the request/reply round trip for method. If ctx carries
// no deadline of its own, Config.CallTimeout bounds the wait; giving up
// at that point also tells the loop to mark this channel closed, since a
// reply may still be on its way to a waiter nothing is listening for any
// more.
func (ch *Channel) doCall(ctx context.Context, method wire.Method) (*rpcOutcome, error) {
	if err := ch.fastFailIfClosed(); err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, ch.conn.cfg.CallTimeout)
	defer cancel()

	reply := make(chan *rpcOutcome, 1)
	req := &request{channel: ch.id, method: method, reply: reply}
	if err := ch.conn.loop.submit(ctx, req); err != nil {
		return nil, err
	}
	select {
	case outcome := <-reply:
		if outcome.err != nil {
			return nil, outcome.err
		}
		return outcome, nil
	case <-ch.closed.Done():
		return nil, ch.closed.Err()
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			ch.conn.loop.notifyCallTimeout(ch.id)
			return nil, ErrCallTimeout
		}
		return nil, ctx.Err()
	}
}

// Publish sends a basic.publish method, header, and body as one atomic
// unit at the loop boundary — no other handle's frames can land between
// them.
func (ch *Channel) Publish(ctx context.Context, exchange, routingKey string, mandatory, immediate bool, props wire.Properties, body []byte) error {
	if err := ch.fastFailIfClosed(); err != nil {
		return err
	}
	req := &request{
		channel:       ch.id,
		contentMethod: &wire.BasicPublish{Exchange: exchange, RoutingKey: routingKey, Mandatory: mandatory, Immediate: immediate},
		contentProps:  props,
		contentBody:   body,
	}
	return ch.conn.loop.submit(ctx, req)
}

// Consume issues basic.consume and returns the broker-confirmed consumer
// tag plus a channel that yields each delivery in arrival order. The
// channel is closed once the consumer is cancelled, by either side, or
// the channel/connection closes.
func (ch *Channel) Consume(ctx context.Context, queue, consumerTag string, autoAck, exclusive, noLocal, noWait bool, args wire.Table) (string, <-chan *Delivery, error) {
	if consumerTag == "" {
		consumerTag = "ctag-" + uuid.NewString()
	}
	outcome, err := ch.doCall(ctx, &wire.BasicConsume{
		Queue: queue, ConsumerTag: consumerTag, NoLocal: noLocal, NoAck: autoAck,
		Exclusive: exclusive, NoWait: noWait, Arguments: args,
	})
	if err != nil {
		return "", nil, err
	}
	consumeOk, ok := outcome.method.(*wire.BasicConsumeOk)
	if !ok || outcome.deliveries == nil {
		return "", nil, ErrConsumeFailed
	}
	return consumeOk.ConsumerTag, outcome.deliveries, nil
}

// Cancel stops a consumer and waits for the broker to confirm; its
// delivery stream is closed once that confirmation arrives.
func (ch *Channel) Cancel(ctx context.Context, consumerTag string) error {
	_, err := ch.doCall(ctx, &wire.BasicCancel{ConsumerTag: consumerTag})
	return err
}

// Get performs a one-shot basic.get. found is false when the queue was
// empty (basic.get-empty).
func (ch *Channel) Get(ctx context.Context, queue string, autoAck bool) (delivery *Delivery, found bool, err error) {
	outcome, err := ch.doCall(ctx, &wire.BasicGet{Queue: queue, NoAck: autoAck})
	if err != nil {
		return nil, false, err
	}
	if outcome.content == nil {
		return nil, false, nil
	}
	m := outcome.content.Method.(*wire.BasicGetOk)
	d := &Delivery{
		DeliveryTag:  m.DeliveryTag,
		Redelivered:  m.Redelivered,
		Exchange:     m.Exchange,
		RoutingKey:   m.RoutingKey,
		Body:         outcome.content.Body,
		Properties:   outcome.content.Properties,
		MessageCount: m.MessageCount,
	}
	return d, true, nil
}

// Ack, Nack, and Reject acknowledge or dispose of deliveries; none of
// them expects a reply.
func (ch *Channel) Ack(ctx context.Context, deliveryTag uint64, multiple bool) error {
	return ch.CallNowait(ctx, &wire.BasicAck{DeliveryTag: deliveryTag, Multiple: multiple})
}

func (ch *Channel) Nack(ctx context.Context, deliveryTag uint64, multiple, requeue bool) error {
	return ch.CallNowait(ctx, &wire.BasicNack{DeliveryTag: deliveryTag, Multiple: multiple, Requeue: requeue})
}

func (ch *Channel) Reject(ctx context.Context, deliveryTag uint64, requeue bool) error {
	return ch.CallNowait(ctx, &wire.BasicReject{DeliveryTag: deliveryTag, Requeue: requeue})
}

// Qos sends basic.qos.
func (ch *Channel) Qos(ctx context.Context, prefetchCount uint16, prefetchSize uint32, global bool) error {
	_, err := ch.doCall(ctx, &wire.BasicQos{PrefetchCount: prefetchCount, PrefetchSize: prefetchSize, Global: global})
	return err
}

// Confirm puts the channel into publisher-confirm mode; Confirmations()
// starts yielding basic.ack/basic.nack afterward.
func (ch *Channel) Confirm(ctx context.Context) error {
	_, err := ch.doCall(ctx, &wire.ConfirmSelect{})
	return err
}

// Confirmations yields one Confirmation per basic.ack/basic.nack once
// Confirm has been called.
func (ch *Channel) Confirmations() <-chan *Confirmation { return ch.confirms }

// Returns yields one Return per unroutable mandatory/immediate publish
// bounced back by the broker.
func (ch *Channel) Returns() <-chan *Return { return ch.returns }

// Close sends channel.close, awaits close-ok, and is idempotent once that
// completes — calling it again returns nil, and any other operation on
// the channel afterward returns ErrChannelClosed rather than blocking.
func (ch *Channel) Close(ctx context.Context) error {
	select {
	case <-ch.closed.Done():
		return nil
	default:
	}
	_, err := ch.doCall(ctx, &wire.ChannelClose{ReplyCode: 200, ReplyText: "OK"})
	if err != nil {
		select {
		case <-ch.closed.Done():
			return nil
		default:
		}
		return err
	}
	return nil
}

func (ch *Channel) fastFailIfClosed() error {
	select {
	case <-ch.closed.Done():
		return ch.closed.Err()
	default:
	}
	select {
	case <-ch.conn.closed.Done():
		return ch.conn.closed.Err()
	default:
	}
	return nil
}
