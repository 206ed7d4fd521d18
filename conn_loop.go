package amqp091

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/amqp091-core/amqp091/internal/buffer"
	"github.com/amqp091-core/amqp091/internal/collector"
	"github.com/amqp091-core/amqp091/internal/debug"
	"github.com/amqp091-core/amqp091/internal/frame"
	"github.com/amqp091-core/amqp091/internal/wire"
)

// closeInitiator distinguishes a locally requested connection shutdown
// from one the peer started, matching the three-state field a channel or
// connection close carries through its lifecycle.
type closeInitiator int

const (
	closeNone closeInitiator = iota
	closeLocal
	closeRemote
)

// connLoop is the single-threaded multiplexer owning the byte stream: one
// goroutine reads frames off the wire (since net.Conn.Read blocks and
// can't be interleaved with anything else), everything else — dispatch,
// writes, heartbeats, and draining application requests — runs on the
// loop's own goroutine so per-channel state never needs a lock.
type connLoop struct {
	stream io.ReadWriteCloser
	cfg    Config
	conn   *Connection

	requests chan *request
	buf      *buffer.Buffer

	slots map[uint16]*channelSlot

	closeInitiator closeInitiator

	lastSend time.Time

	done    chan struct{}
	doneErr error
}

func newConnLoop(stream io.ReadWriteCloser, cfg Config, conn *Connection) *connLoop {
	return &connLoop{
		stream:   stream,
		cfg:      cfg,
		conn:     conn,
		requests: make(chan *request, cfg.HandleQueueSize),
		buf:      buffer.New(),
		slots:    map[uint16]*channelSlot{0: newChannelSlot(0)},
		done:     make(chan struct{}),
	}
}

// submit hands a request to the loop, respecting ctx and failing fast if
// the loop has already terminated. Once the requests channel's bounded
// buffer fills, callers block here rather than piling up unbounded work
// on the loop goroutine.
func (l *connLoop) submit(ctx context.Context, req *request) error {
	select {
	case l.requests <- req:
		return nil
	case <-l.done:
		return ErrEventLoopDropped
	case <-ctx.Done():
		return ctx.Err()
	}
}

type inboundFrame struct {
	fr  *frame.Frame
	err error
}

// run is the loop's main cycle: read frames off the wire on a dedicated
// goroutine, drain requests from application handles, and fire heartbeats
// on a timer, all funneled through one select so every mutation of
// l.slots happens on this one goroutine.
func (l *connLoop) run() {
	inbound := make(chan inboundFrame, 1)
	go l.readLoop(inbound)

	var heartbeatTick <-chan time.Time
	if l.cfg.Heartbeat > 0 {
		ticker := time.NewTicker(l.cfg.Heartbeat)
		defer ticker.Stop()
		heartbeatTick = ticker.C
	}

	var finalErr error
	for {
		select {
		case in := <-inbound:
			if in.err != nil {
				finalErr = l.classifyReadErr(in.err)
				l.shutdown(finalErr)
				l.doneErr = finalErr
				close(l.done)
				l.stream.Close()
				return
			}
			if err := l.processFrame(in.fr); err != nil {
				finalErr = err
				l.shutdown(finalErr)
				l.doneErr = finalErr
				close(l.done)
				l.stream.Close()
				return
			}
			if l.closeInitiator != closeNone && len(l.slots) == 0 {
				l.doneErr = ErrConnectionClosed
				close(l.done)
				l.stream.Close()
				return
			}

		case req := <-l.requests:
			if err := l.handleRequest(req); err != nil {
				finalErr = err
				l.shutdown(finalErr)
				l.doneErr = finalErr
				close(l.done)
				l.stream.Close()
				return
			}

		case <-heartbeatTick:
			if time.Since(l.lastSend) >= l.cfg.Heartbeat {
				l.write(frame.WriteHeartbeat())
			}
		}
	}
}

// readLoop owns the only blocking Read call on the stream, since net.Conn
// reads can't be interleaved with anything else; every send to inbound
// races against l.done so a loop that has already exited never leaves
// this goroutine stuck trying to hand off one more frame.
func (l *connLoop) readLoop(inbound chan<- inboundFrame) {
	for {
		if l.cfg.Heartbeat > 0 {
			if conn, ok := l.stream.(net.Conn); ok {
				conn.SetReadDeadline(time.Now().Add(2 * l.cfg.Heartbeat))
			}
		}
		fr, err := frame.Read(l.stream, l.cfg.FrameMax)
		if err != nil {
			select {
			case inbound <- inboundFrame{err: err}:
			case <-l.done:
			}
			return
		}
		select {
		case inbound <- inboundFrame{fr: fr}:
		case <-l.done:
			return
		}
	}
}

func (l *connLoop) classifyReadErr(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() && l.cfg.Heartbeat > 0 {
		return ErrMissedHeartbeat
	}
	var protoErr *frame.ProtocolError
	if errors.As(err, &protoErr) {
		return &ProtocolError{Reason: protoErr.Reason}
	}
	var tooLarge *frame.FrameTooLarge
	if errors.As(err, &tooLarge) {
		return &FrameTooLarge{Size: tooLarge.Size, FrameMax: tooLarge.FrameMax}
	}
	return newIoError(err)
}

// shutdown tears down every live slot with err, used whenever the loop is
// about to exit for a reason other than a clean, fully negotiated
// connection.close.
func (l *connLoop) shutdown(err error) {
	for id, slot := range l.slots {
		slot.terminate(err)
		delete(l.slots, id)
	}
}

func (l *connLoop) write(b []byte) {
	l.lastSend = time.Now()
	l.stream.Write(b)
}

// handleRequest processes one application-thread request: it never blocks
// on anything but the write itself.
func (l *connLoop) handleRequest(req *request) error {
	if req.forceClose != nil {
		return req.forceClose
	}

	if req.openNewSlot {
		l.slots[req.channel] = newChannelSlot(req.channel)
	}

	slot, ok := l.slots[req.channel]
	if req.timedOut {
		if ok {
			return l.failChannel(slot, ErrCallTimeout)
		}
		return nil
	}
	if !ok {
		if req.reply != nil {
			req.reply <- &rpcOutcome{err: &ChannelDropped{ID: req.channel}}
		}
		return nil
	}

	if req.closeConsumer != "" {
		if entry, exists := slot.consumers[req.closeConsumer]; exists {
			entry.close()
			delete(slot.consumers, req.closeConsumer)
		}
		return nil
	}

	if req.contentMethod != nil {
		return l.sendContent(slot, req.contentMethod, req.contentProps, req.contentBody)
	}

	return l.sendCall(slot, req.method, req.reply)
}

func (l *connLoop) sendCall(slot *channelSlot, m wire.Method, reply chan *rpcOutcome) error {
	l.buf.Reset()
	if err := l.buf.PushMethod(slot.id, m); err != nil {
		if reply != nil {
			reply <- &rpcOutcome{err: err}
		}
		return nil
	}
	if reply != nil {
		slot.pending = &pendingCall{sentMethod: m, reply: reply}
	}
	l.write(l.buf.DrainIntoNewBuf())
	return nil
}

func (l *connLoop) sendContent(slot *channelSlot, m wire.ContentBearing, props wire.Properties, body []byte) error {
	l.buf.Reset()
	if err := l.buf.PushMethod(slot.id, m); err != nil {
		return nil
	}
	l.buf.PushContentHeader(slot.id, m.ClassID(), uint64(len(body)), props)
	l.buf.PushContentBody(slot.id, body, l.cfg.FrameMax)
	l.write(l.buf.DrainIntoNewBuf())
	return nil
}

// processFrame dispatches one inbound frame to connection- or
// channel-level handling.
func (l *connLoop) processFrame(fr *frame.Frame) error {
	switch fr.Type {
	case frame.TypeHeartbeat:
		return nil
	case frame.TypeMethod:
		return l.dispatchMethod(fr.Channel, fr.MethodPayload)
	case frame.TypeHeader:
		return l.dispatchHeader(fr.Channel, fr.HeaderClassID, fr.HeaderBodySize, fr.HeaderProps)
	case frame.TypeBody:
		return l.dispatchBody(fr.Channel, fr.BodyChunk)
	}
	return nil
}

func (l *connLoop) dispatchMethod(channelID uint16, payload []byte) error {
	m, err := wire.Decode(payload)
	if err != nil {
		return &ProtocolError{Reason: err.Error()}
	}

	if channelID == frame.ConnectionChannel {
		return l.handleConnectionMethod(m)
	}

	slot, ok := l.slots[channelID]
	if !ok || slot.state == channelClosed {
		if _, sync := m.(wire.Synchronous); sync {
			return &ProtocolError{Reason: fmt.Sprintf("method on unknown or closed channel %d expects a reply", channelID)}
		}
		debug.Log(context.Background(), slog.LevelDebug, "dropping frame for defunct channel", "channel", channelID)
		return nil
	}

	switch mm := m.(type) {
	case *wire.ChannelClose:
		l.handleServerChannelClose(slot, mm)
		return nil
	case *wire.BasicCancel:
		l.handleServerCancel(slot, mm)
		return nil
	case *wire.BasicAck:
		l.routeConfirm(slot, mm.DeliveryTag, true, mm.Multiple)
		return nil
	case *wire.BasicNack:
		l.routeConfirm(slot, mm.DeliveryTag, false, mm.Multiple)
		return nil
	case *wire.ChannelFlow:
		slot.flowActive = mm.Active
		l.sendCall(slot, &wire.ChannelFlowOk{Active: mm.Active}, nil)
		return nil
	}

	if _, contentBearing := collector.TriggerFor(m); contentBearing {
		if err := slot.collector.StartMethod(m); err != nil {
			return l.failChannel(slot, frameUnexpectedToChannelError(slot.id, err))
		}
		return nil
	}

	return l.completeRPC(slot, m, nil)
}

func (l *connLoop) dispatchHeader(channelID uint16, classID uint16, bodySize uint64, propsPayload []byte) error {
	slot, ok := l.slots[channelID]
	if !ok {
		return &ProtocolError{Reason: fmt.Sprintf("content header on unknown channel %d", channelID)}
	}
	content, err := slot.collector.Header(classID, bodySize, propsPayload)
	if err != nil {
		return l.failChannel(slot, frameUnexpectedToChannelError(slot.id, err))
	}
	if content != nil {
		return l.dispatchContent(slot, content)
	}
	return nil
}

func (l *connLoop) dispatchBody(channelID uint16, chunk []byte) error {
	slot, ok := l.slots[channelID]
	if !ok {
		return &ProtocolError{Reason: fmt.Sprintf("content body on unknown channel %d", channelID)}
	}
	content, err := slot.collector.Body(chunk)
	if err != nil {
		return l.failChannel(slot, frameUnexpectedToChannelError(slot.id, err))
	}
	if content != nil {
		return l.dispatchContent(slot, content)
	}
	return nil
}

func (l *connLoop) dispatchContent(slot *channelSlot, content *collector.Content) error {
	switch content.Trigger {
	case collector.TriggerDeliver:
		m := content.Method.(*wire.BasicDeliver)
		entry, ok := slot.consumers[m.ConsumerTag]
		if !ok {
			debug.Log(context.Background(), slog.LevelWarn, "delivery for unknown consumer tag, dropping",
				"channel", slot.id, "tag", m.ConsumerTag)
			return nil
		}
		entry.push(Delivery{
			ConsumerTag: m.ConsumerTag,
			DeliveryTag: m.DeliveryTag,
			Redelivered: m.Redelivered,
			Exchange:    m.Exchange,
			RoutingKey:  m.RoutingKey,
			Body:        content.Body,
			Properties:  content.Properties,
		})
		return nil

	case collector.TriggerGetOk:
		return l.completeRPC(slot, nil, content)

	case collector.TriggerReturn:
		m := content.Method.(*wire.BasicReturn)
		ret := &Return{
			ReplyCode:  m.ReplyCode,
			ReplyText:  m.ReplyText,
			Exchange:   m.Exchange,
			RoutingKey: m.RoutingKey,
			Body:       content.Body,
			Properties: content.Properties,
		}
		select {
		case slot.returns <- ret:
		default:
			debug.Log(context.Background(), slog.LevelWarn, "returned-message stream full, dropping", "channel", slot.id)
		}
		return nil
	}
	return nil
}

// completeRPC fulfils a slot's single outstanding RPC waiter, either with
// a bare reply method or with assembled content (basic.get-ok).
func (l *connLoop) completeRPC(slot *channelSlot, method wire.Method, content *collector.Content) error {
	if slot.pending == nil {
		if method != nil {
			return &ProtocolError{Reason: fmt.Sprintf("channel %d: unsolicited reply %T", slot.id, method)}
		}
		return &ProtocolError{Reason: fmt.Sprintf("channel %d: unsolicited get-ok", slot.id)}
	}
	pending := slot.pending
	slot.pending = nil

	outcome := &rpcOutcome{method: method, content: content}

	switch mm := method.(type) {
	case *wire.ChannelOpenOk:
		outcome.slotReturns = slot.returns
		outcome.slotConfirms = slot.confirms
		outcome.slotClosed = slot.closed
	case *wire.BasicConsumeOk:
		entry := newConsumerEntry(slot.consumerBufferSize(l.cfg))
		slot.consumers[mm.ConsumerTag] = entry
		outcome.deliveries = entry.out
	case *wire.BasicCancelOk:
		if entry, exists := slot.consumers[mm.ConsumerTag]; exists {
			entry.close()
			delete(slot.consumers, mm.ConsumerTag)
		}
	case *wire.ConfirmSelectOk:
		slot.confirmMode = true
	case *wire.ChannelCloseOk:
		debug.Assert(context.Background(), slot.collector.IsIdle(), "channel", slot.id, "reason", "close-ok while collector mid-assembly")
		slot.terminate(ErrChannelClosed)
		delete(l.slots, slot.id)
	case *wire.ConnectionCloseOk:
		l.closeInitiator = closeLocal
		slot.terminate(ErrConnectionClosed)
		delete(l.slots, slot.id)
	}

	pending.reply <- outcome
	return nil
}

func (l *connLoop) routeConfirm(slot *channelSlot, deliveryTag uint64, ack, multiple bool) {
	select {
	case slot.confirms <- &Confirmation{DeliveryTag: deliveryTag, Ack: ack, Multiple: multiple}:
	default:
		debug.Log(context.Background(), slog.LevelWarn, "confirm stream full, dropping", "channel", slot.id)
	}
}

// failChannel terminates slot with err and drops it from the loop's
// table, without tearing down the rest of the connection — a
// FrameUnexpected is fatal to the one channel it occurred on, not the
// whole connection.
func (l *connLoop) failChannel(slot *channelSlot, err error) error {
	slot.terminate(err)
	delete(l.slots, slot.id)
	return nil
}

// handleServerChannelClose processes a server-initiated channel.close: ack
// it immediately, fail any pending RPC, and tear the slot down.
func (l *connLoop) handleServerChannelClose(slot *channelSlot, m *wire.ChannelClose) {
	debug.Assert(context.Background(), slot.collector.IsIdle(), "channel", slot.id, "reason", "server close while collector mid-assembly")
	l.sendCall(slot, &wire.ChannelCloseOk{}, nil)
	slot.terminate(&ServerClosedChannel{Code: m.ReplyCode, Text: m.ReplyText})
	delete(l.slots, slot.id)
}

// handleServerCancel processes a server-initiated basic.cancel (e.g. the
// consumer's queue was deleted): tear down just that consumer's stream.
func (l *connLoop) handleServerCancel(slot *channelSlot, m *wire.BasicCancel) {
	if entry, ok := slot.consumers[m.ConsumerTag]; ok {
		entry.close()
		delete(slot.consumers, m.ConsumerTag)
	}
	if !m.NoWait {
		l.sendCall(slot, &wire.BasicCancelOk{ConsumerTag: m.ConsumerTag}, nil)
	}
}

// handleConnectionMethod dispatches a method frame received on channel 0.
func (l *connLoop) handleConnectionMethod(m wire.Method) error {
	slot := l.slots[frame.ConnectionChannel]

	switch mm := m.(type) {
	case *wire.ConnectionClose:
		l.sendCall(slot, &wire.ConnectionCloseOk{}, nil)
		l.closeInitiator = closeRemote
		return &ServerClosedConnection{Code: mm.ReplyCode, Text: mm.ReplyText}

	case *wire.ConnectionBlocked:
		l.conn.notifyBlocked(Blocked{Active: true, Reason: mm.Reason})
		return nil

	case *wire.ConnectionUnblocked:
		l.conn.notifyBlocked(Blocked{Active: false})
		return nil

	default:
		return l.completeRPC(slot, m, nil)
	}
}

// closeConnection performs the connection.close/close-ok RPC on channel 0
// and waits for the loop to fully exit once that round trip completes.
// If ctx carries no deadline of its own, Config.CloseTimeout bounds the
// whole wait; giving up at that point abandons the connection outright
// via forceClose rather than leaving it half-closed.
func (l *connLoop) closeConnection(ctx context.Context) error {
	select {
	case <-l.done:
		return ErrConnectionClosed
	default:
	}

	ctx, cancel := withTimeout(ctx, l.cfg.CloseTimeout)
	defer cancel()

	reply := make(chan *rpcOutcome, 1)
	req := &request{
		channel: frame.ConnectionChannel,
		method:  &wire.ConnectionClose{ReplyCode: 200, ReplyText: "OK"},
		reply:   reply,
	}
	if err := l.submit(ctx, req); err != nil {
		return err
	}

	select {
	case outcome := <-reply:
		if outcome.err != nil {
			return outcome.err
		}
	case <-l.done:
		return nil
	case <-ctx.Done():
		return l.abandonOnTimeout(ctx)
	}

	select {
	case <-l.done:
	case <-ctx.Done():
		return l.abandonOnTimeout(ctx)
	}
	return nil
}

// abandonOnTimeout distinguishes CloseTimeout/the caller's own deadline
// elapsing (which forces the loop down via forceClose, since cooperative
// shutdown can no longer finish) from an explicit ctx cancellation
// (which just reports ctx.Err(), leaving the loop running).
func (l *connLoop) abandonOnTimeout(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		l.abandon(ErrCallTimeout)
		return ErrCallTimeout
	}
	return ctx.Err()
}

// abandon best-effort forces the loop to exit with err, used once a
// locally initiated close has given up waiting and the connection is in
// an indeterminate state that cooperative shutdown can no longer
// resolve.
func (l *connLoop) abandon(err error) {
	select {
	case l.requests <- &request{forceClose: err}:
	case <-l.done:
	}
}

// notifyCallTimeout best-effort tells the loop that channel's pending
// call gave up waiting locally — the slot is now in an indeterminate
// state (the peer might still reply to a call nothing is listening for
// any more), so it's marked closed instead of left with a stale pending
// waiter.
func (l *connLoop) notifyCallTimeout(channel uint16) {
	select {
	case l.requests <- &request{channel: channel, timedOut: true}:
	case <-l.done:
	}
}
