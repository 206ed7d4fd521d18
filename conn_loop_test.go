package amqp091

import (
	"context"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/require"

	"github.com/amqp091-core/amqp091/internal/mocks"
	"github.com/amqp091-core/amqp091/internal/wire"
)

func testConfig() Config {
	return Config{FrameMax: 4096, ChannelMax: 8, CallTimeout: 2 * time.Second, CloseTimeout: 2 * time.Second}
}

func openChannel(t *testing.T, conn *Connection, broker *mocks.Broker, id uint16) *Channel {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan struct{})
	var ch *Channel
	var err error
	go func() {
		ch, err = conn.OpenChannel(ctx)
		close(done)
	}()

	broker.ExpectMethod(id)
	broker.SendMethod(id, &wire.ChannelOpenOk{})

	<-done
	require.NoError(t, err)
	return ch
}

func TestPublishSendsAtomicContentSequence(t *testing.T) {
	defer leaktest.Check(t)()

	broker, client := mocks.NewBroker(t)
	defer broker.Close()
	conn := Open(client, testConfig())

	ch := openChannel(t, conn, broker, 1)

	body := []byte("hello world")
	errCh := make(chan error, 1)
	go func() {
		errCh <- ch.Publish(context.Background(), "ex", "rk", false, false, wire.Properties{}, body)
	}()

	m := broker.ExpectMethod(1)
	publish, ok := m.(*wire.BasicPublish)
	require.True(t, ok)
	require.Equal(t, "ex", publish.Exchange)
	require.Equal(t, "rk", publish.RoutingKey)

	classID, bodySize, _ := broker.ExpectHeader(1)
	require.Equal(t, uint16(wire.ClassBasic), classID)
	require.Equal(t, uint64(len(body)), bodySize)

	got := broker.ExpectBody(1)
	require.Equal(t, body, got)

	require.NoError(t, <-errCh)

	closeConnection(t, conn, broker, 1)
}

func TestConsumeAndDeliver(t *testing.T) {
	defer leaktest.Check(t)()

	broker, client := mocks.NewBroker(t)
	defer broker.Close()
	conn := Open(client, testConfig())

	ch := openChannel(t, conn, broker, 1)

	type consumeResult struct {
		tag        string
		deliveries <-chan *Delivery
		err        error
	}
	resultCh := make(chan consumeResult, 1)
	go func() {
		tag, deliveries, err := ch.Consume(context.Background(), "q", "", true, false, false, false, nil)
		resultCh <- consumeResult{tag, deliveries, err}
	}()

	consume := broker.ExpectMethod(1).(*wire.BasicConsume)
	require.Equal(t, "q", consume.Queue)
	broker.SendMethod(1, &wire.BasicConsumeOk{ConsumerTag: "server-tag"})

	res := <-resultCh
	require.NoError(t, res.err)
	require.Equal(t, "server-tag", res.tag)

	broker.SendContent(1, &wire.BasicDeliver{
		ConsumerTag: "server-tag",
		DeliveryTag: 1,
		Exchange:    "ex",
		RoutingKey:  "rk",
	}, wire.Properties{}, []byte("payload"))

	select {
	case d := <-res.deliveries:
		require.Equal(t, "payload", string(d.Body))
		require.Equal(t, uint64(1), d.DeliveryTag)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
	}

	closeConnection(t, conn, broker, 1)
}

func TestServerClosedChannelFailsPendingCall(t *testing.T) {
	defer leaktest.Check(t)()

	broker, client := mocks.NewBroker(t)
	defer broker.Close()
	conn := Open(client, testConfig())

	ch := openChannel(t, conn, broker, 1)

	errCh := make(chan error, 1)
	go func() {
		_, err := ch.Call(context.Background(), &wire.QueueDeclare{Queue: "q"})
		errCh <- err
	}()

	broker.ExpectMethod(1)
	broker.SendMethod(1, &wire.ChannelClose{ReplyCode: 404, ReplyText: "NOT_FOUND"})
	broker.ExpectMethod(1) // the loop's automatic channel.close-ok

	err := <-errCh
	require.Error(t, err)
	var sc *ServerClosedChannel
	require.ErrorAs(t, err, &sc)
	require.Equal(t, uint16(404), sc.Code)

	closeConnection(t, conn, broker)
}

func TestZeroLengthBodyDeliversImmediately(t *testing.T) {
	defer leaktest.Check(t)()

	broker, client := mocks.NewBroker(t)
	defer broker.Close()
	conn := Open(client, testConfig())

	ch := openChannel(t, conn, broker, 1)

	getResult := make(chan struct {
		d   *Delivery
		ok  bool
		err error
	}, 1)
	go func() {
		d, ok, err := ch.Get(context.Background(), "q", true)
		getResult <- struct {
			d   *Delivery
			ok  bool
			err error
		}{d, ok, err}
	}()

	broker.ExpectMethod(1)
	broker.SendContent(1, &wire.BasicGetOk{DeliveryTag: 7, Exchange: "ex", RoutingKey: "rk"}, wire.Properties{}, nil)

	res := <-getResult
	require.NoError(t, res.err)
	require.True(t, res.ok)
	require.Equal(t, uint64(7), res.d.DeliveryTag)
	require.Empty(t, res.d.Body)

	closeConnection(t, conn, broker, 1)
}

func TestGetEmptyReturnsNoMessage(t *testing.T) {
	defer leaktest.Check(t)()

	broker, client := mocks.NewBroker(t)
	defer broker.Close()
	conn := Open(client, testConfig())

	ch := openChannel(t, conn, broker, 1)

	getResult := make(chan error, 1)
	var found bool
	go func() {
		_, ok, err := ch.Get(context.Background(), "q", true)
		found = ok
		getResult <- err
	}()

	broker.ExpectMethod(1)
	broker.SendMethod(1, &wire.BasicGetEmpty{})

	require.NoError(t, <-getResult)
	require.False(t, found)

	closeConnection(t, conn, broker, 1)
}

func TestMissedHeartbeatClosesConnection(t *testing.T) {
	defer leaktest.Check(t)()

	broker, client := mocks.NewBroker(t)
	defer broker.Close()

	cfg := testConfig()
	cfg.Heartbeat = 30 * time.Millisecond
	conn := Open(client, cfg)

	select {
	case <-conn.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("connection never closed on missed heartbeat")
	}
	require.ErrorIs(t, conn.Err(), ErrMissedHeartbeat)
}

// closeConnection runs the cooperative shutdown handshake against broker
// and waits for the loop to stop. openChannels lists the ids of every
// channel the test opened, since Connection.Close closes each of them
// before the connection-level close.
func closeConnection(t *testing.T, conn *Connection, broker *mocks.Broker, openChannels ...uint16) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- conn.Close(ctx) }()

	for _, id := range openChannels {
		_, ok := broker.ExpectMethod(id).(*wire.ChannelClose)
		require.True(t, ok)
		broker.SendMethod(id, &wire.ChannelCloseOk{})
	}

	_, ok := broker.ExpectMethod(0).(*wire.ConnectionClose)
	require.True(t, ok)
	broker.SendMethod(0, &wire.ConnectionCloseOk{})

	require.NoError(t, <-errCh)
}
