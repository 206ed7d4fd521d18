package amqp091

import "github.com/amqp091-core/amqp091/internal/queue"

// consumerEntry fans a consumer's deliveries out of the loop without ever
// letting the loop block on a slow application reader. The loop's push is
// an Enqueue plus a best-effort wakeup, both O(1); a dedicated forwarder
// goroutine owns the only operation that can legitimately block (the send
// on out), decoupling the application's pace from the loop's.
type consumerEntry struct {
	mu     chan struct{} // 1-buffered binary mutex guarding q
	q      *queue.Queue[Delivery]
	wake   chan struct{} // 1-buffered wakeup
	out    chan *Delivery
	stop   chan struct{}
	closed chan struct{}
}

func newConsumerEntry(bufferSize int) *consumerEntry {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	e := &consumerEntry{
		mu:     make(chan struct{}, 1),
		q:      queue.New[Delivery](bufferSize),
		wake:   make(chan struct{}, 1),
		out:    make(chan *Delivery, bufferSize),
		stop:   make(chan struct{}),
		closed: make(chan struct{}),
	}
	e.mu <- struct{}{}
	go e.run()
	return e
}

// push enqueues d and wakes the forwarder. Safe to call only from the
// loop goroutine; never blocks.
func (e *consumerEntry) push(d Delivery) {
	<-e.mu
	e.q.Enqueue(d)
	e.mu <- struct{}{}
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *consumerEntry) dequeue() *Delivery {
	<-e.mu
	item := e.q.Dequeue()
	e.mu <- struct{}{}
	return item
}

// close stops accepting new wakeups once the already-queued deliveries
// drain, then closes out — the consumer's final "cancelled" signal.
func (e *consumerEntry) close() {
	select {
	case <-e.closed:
		return
	default:
		close(e.stop)
	}
}

func (e *consumerEntry) run() {
	defer close(e.out)
	defer close(e.closed)
	for {
		for {
			item := e.dequeue()
			if item == nil {
				break
			}
			e.out <- item
		}
		select {
		case <-e.wake:
		case <-e.stop:
			for item := e.dequeue(); item != nil; item = e.dequeue() {
				e.out <- item
			}
			return
		}
	}
}
