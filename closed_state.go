package amqp091

import "sync/atomic"

// closedState is a one-shot, write-once-read-many cell shared between the
// loop (the only writer) and however many application goroutines hold the
// handle it belongs to (the readers). It lets Close()/Call() fail fast
// without round-tripping through the loop once a channel or connection has
// gone terminal.
type closedState struct {
	done chan struct{}
	err  atomic.Pointer[error]
}

func newClosedState() *closedState {
	return &closedState{done: make(chan struct{})}
}

// set records the terminal error and closes done. Only ever called from
// the loop goroutine, and only once per slot; a second call is a no-op so
// the first reason always wins.
func (c *closedState) set(err error) {
	select {
	case <-c.done:
		return
	default:
	}
	c.err.Store(&err)
	close(c.done)
}

// Done reports when the cell has gone terminal.
func (c *closedState) Done() <-chan struct{} { return c.done }

// Err returns the terminal reason, or nil before Done() has fired.
func (c *closedState) Err() error {
	if p := c.err.Load(); p != nil {
		return *p
	}
	return nil
}
