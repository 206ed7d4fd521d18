package amqp091

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/amqp091-core/amqp091/internal/wire"
)

// Connection is the application-thread handle onto a running I/O loop. It
// owns channel-id allocation and reuse, and fans out blocked/unblocked
// notifications; everything else is delegated to the loop through the
// same request/reply plumbing a Channel uses.
type Connection struct {
	cfg  Config
	loop *connLoop

	closed *closedState

	mu       sync.Mutex
	nextID   uint16
	channels map[uint16]*Channel

	blocked chan Blocked
}

// Open starts the I/O loop over an already AMQP-negotiated byte stream —
// the connection.start/tune/open handshake, and whatever TCP/TLS dial
// produced the stream in the first place, are external collaborators —
// and returns a Connection handle. cfg should reflect the values that
// handshake settled on.
func Open(stream io.ReadWriteCloser, cfg Config) *Connection {
	cfg = cfg.normalize()
	c := &Connection{
		cfg:      cfg,
		closed:   newClosedState(),
		channels: make(map[uint16]*Channel),
		blocked:  make(chan Blocked, 4),
	}
	c.loop = newConnLoop(stream, cfg, c)
	go func() {
		c.loop.run()
		c.closed.set(c.loop.doneErr)
	}()
	return c
}

// FrameMax, ChannelMax, and Heartbeat report the negotiated values this
// Connection was opened with.
func (c *Connection) FrameMax() uint32        { return c.cfg.FrameMax }
func (c *Connection) ChannelMax() uint16      { return c.cfg.ChannelMax }
func (c *Connection) Heartbeat() time.Duration { return c.cfg.Heartbeat }

// BlockedNotifications yields a Blocked value each time the broker pauses
// or resumes publishers on this connection (connection.blocked/unblocked).
func (c *Connection) BlockedNotifications() <-chan Blocked { return c.blocked }

// Done reports when the connection's I/O loop has terminated.
func (c *Connection) Done() <-chan struct{} { return c.closed.Done() }

// Err returns the reason the connection terminated, or nil while it's
// still running.
func (c *Connection) Err() error { return c.closed.Err() }

func (c *Connection) notifyBlocked(b Blocked) {
	select {
	case c.blocked <- b:
	default:
	}
}

// OpenChannel allocates a channel id — reused only after a prior slot with
// that id has been fully torn down — and performs the channel.open RPC.
func (c *Connection) OpenChannel(ctx context.Context) (*Channel, error) {
	select {
	case <-c.closed.Done():
		return nil, c.closed.Err()
	default:
	}

	c.mu.Lock()
	id, err := c.allocateIDLocked()
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	reply := make(chan *rpcOutcome, 1)
	req := &request{
		channel:     id,
		openNewSlot: true,
		method:      &wire.ChannelOpen{},
		reply:       reply,
	}
	if err := c.loop.submit(ctx, req); err != nil {
		return nil, err
	}

	var outcome *rpcOutcome
	select {
	case outcome = <-reply:
	case <-c.closed.Done():
		return nil, c.closed.Err()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if outcome.err != nil {
		return nil, outcome.err
	}

	ch := newChannel(id, c, outcome.slotClosed, outcome.slotReturns, outcome.slotConfirms)

	c.mu.Lock()
	c.channels[id] = ch
	c.mu.Unlock()
	go c.reapOnClose(ch)

	return ch, nil
}

// reapOnClose removes ch from the connection's live-channel table once it
// goes terminal, freeing its id for reuse.
func (c *Connection) reapOnClose(ch *Channel) {
	<-ch.closed.Done()
	c.mu.Lock()
	if c.channels[ch.id] == ch {
		delete(c.channels, ch.id)
	}
	c.mu.Unlock()
}

func (c *Connection) allocateIDLocked() (uint16, error) {
	max := c.cfg.ChannelMax
	for i := uint16(0); i < max; i++ {
		id := c.nextID + 1
		if id == 0 || id > max {
			id = 1
		}
		c.nextID = id
		if _, used := c.channels[id]; !used {
			return id, nil
		}
	}
	return 0, errors.New("amqp091: no free channel ids")
}

// Close cooperatively closes every live channel, then sends
// connection.close and awaits close-ok, aggregating any errors
// encountered along the way.
func (c *Connection) Close(ctx context.Context) error {
	c.mu.Lock()
	chans := make([]*Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		chans = append(chans, ch)
	}
	c.mu.Unlock()

	var result *multierror.Error
	for _, ch := range chans {
		if err := ch.Close(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := c.loop.closeConnection(ctx); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}
