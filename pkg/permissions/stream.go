package permissions

import (
	"context"
	"sync"
)

// ChangeStream fans registry changes out to channel-based subscribers.
// It drops changes for slow consumers rather than blocking the mutating
// operation that produced them. All methods are safe for concurrent use.
//
// Attach connects a stream to a registry's notification hooks; the
// synchronous handlers only enqueue, so mutation latency stays bounded.
type ChangeStream[T comparable] struct {
	mu          sync.RWMutex
	subscribers map[*streamSubscriber[T]]struct{}
	bufferSize  int
	closed      bool
	cleanupWg   sync.WaitGroup
}

type streamSubscriber[T comparable] struct {
	ch     chan Change[T]
	closed bool
	mu     sync.RWMutex
}

func newStreamSubscriber[T comparable](bufferSize int) *streamSubscriber[T] {
	return &streamSubscriber[T]{
		ch: make(chan Change[T], bufferSize),
	}
}

// send enqueues without blocking. Returns false when the subscriber is
// closed or its buffer is full.
func (s *streamSubscriber[T]) send(change Change[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- change:
		return true
	default:
		return false
	}
}

func (s *streamSubscriber[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

// NewChangeStream creates a change stream. bufferSize is each
// subscriber's channel capacity; a minimum of 1 is enforced so sends
// stay non-blocking.
func NewChangeStream[T comparable](bufferSize int) *ChangeStream[T] {
	return &ChangeStream[T]{
		subscribers: make(map[*streamSubscriber[T]]struct{}),
		bufferSize:  max(bufferSize, 1),
	}
}

// Attach registers the stream with every mutation kind of the registry.
// Call it before the registry is shared; handler registration itself is
// not synchronized by the registry.
func (c *ChangeStream[T]) Attach(reg *Registry[T]) {
	reg.OnPermissionAssigned(c.publish)
	reg.OnPermissionRevoked(c.publish)
	reg.OnGroupAssigned(c.publish)
	reg.OnGroupRevoked(c.publish)
	reg.OnCleared(c.publish)
}

// Subscribe returns a channel receiving subsequent changes. The
// subscription is removed when the context is cancelled; the channel is
// closed on removal and when the stream is closed. A subscriber whose
// buffer overflows is dropped.
func (c *ChangeStream[T]) Subscribe(ctx context.Context) <-chan Change[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	sub := newStreamSubscriber[T](c.bufferSize)
	if c.closed {
		sub.close()
		return sub.ch
	}
	c.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		c.cleanupWg.Add(1)
		go func() {
			defer c.cleanupWg.Done()
			<-ctx.Done()
			c.unsubscribe(sub)
		}()
	}

	return sub.ch
}

// publish delivers the change to every subscriber without blocking.
func (c *ChangeStream[T]) publish(change Change[T]) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return
	}

	for sub := range c.subscribers {
		if !sub.send(change) {
			// Drop slow or cancelled subscribers out of band so the
			// mutating operation is never held up.
			go c.unsubscribe(sub)
		}
	}
}

// Close shuts the stream down and closes all subscriber channels. Safe
// to call more than once. Subsequent publishes are discarded.
func (c *ChangeStream[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for sub := range c.subscribers {
		sub.close()
	}
	clear(c.subscribers)
	c.mu.Unlock()

	c.cleanupWg.Wait()
}

func (c *ChangeStream[T]) unsubscribe(sub *streamSubscriber[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.subscribers[sub]; !ok {
		return
	}
	delete(c.subscribers, sub)
	sub.close()
}
