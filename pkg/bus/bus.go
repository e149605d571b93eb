package bus

import (
	"sync"
	"sync/atomic"

	"github.com/cuemby/cmfanout/pkg/metrics"
)

// DefaultCapacity is the per-consumer queue depth used when a caller does
// not override it.
const DefaultCapacity = 16

// Bus fans a stream of T out to any number of independent Consumers. The
// zero value is not usable; construct with New.
type Bus[T any] struct {
	mu        sync.RWMutex
	consumers map[*Consumer[T]]struct{}
	capacity  int
	name      string
	published atomic.Uint64
}

// New creates a Bus whose consumers each queue up to capacity events before
// the oldest is evicted to make room for a new one. name labels the bus in
// the cmfanout_bus_* Prometheus metrics (e.g. "token", "message").
func New[T any](capacity int, name string) *Bus[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bus[T]{
		consumers: make(map[*Consumer[T]]struct{}),
		capacity:  capacity,
		name:      name,
	}
}

// Subscribe registers a new Consumer. The caller must eventually call
// Unsubscribe to release it, or call Close on the whole Bus at shutdown.
func (b *Bus[T]) Subscribe() *Consumer[T] {
	c := newConsumer[T](b.capacity)

	b.mu.Lock()
	b.consumers[c] = struct{}{}
	count := len(b.consumers)
	b.mu.Unlock()

	metrics.BusSubscribers.WithLabelValues(b.name).Set(float64(count))

	return c
}

// Unsubscribe removes c from the bus and marks it closed; a pending or
// future Recv on c returns ResultClosed rather than blocking forever.
func (b *Bus[T]) Unsubscribe(c *Consumer[T]) {
	b.mu.Lock()
	delete(b.consumers, c)
	count := len(b.consumers)
	b.mu.Unlock()

	metrics.BusSubscribers.WithLabelValues(b.name).Set(float64(count))
	metrics.BusConsumerLagTotal.WithLabelValues(b.name).Add(float64(c.Lag()))

	c.close()
}

// Publish enqueues event onto every currently-subscribed consumer. A
// consumer whose queue is full has its oldest entry dropped to make room;
// Publish itself never blocks on a slow consumer.
func (b *Bus[T]) Publish(event T) {
	b.published.Add(1)
	metrics.BusEventsPublishedTotal.WithLabelValues(b.name).Inc()

	b.mu.RLock()
	defer b.mu.RUnlock()
	for c := range b.consumers {
		c.enqueue(event)
	}
}

// Close unsubscribes and closes every current consumer. Intended for server
// shutdown; the Bus remains usable afterward (new Subscribe calls work, they
// just start from an empty consumer set).
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.consumers {
		c.close()
	}
	b.consumers = make(map[*Consumer[T]]struct{})
	metrics.BusSubscribers.WithLabelValues(b.name).Set(0)
}

// SubscriberCount reports the number of currently-registered consumers.
func (b *Bus[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.consumers)
}

// PublishedTotal reports the lifetime count of Publish calls made on this
// bus, for the events-published-total metric.
func (b *Bus[T]) PublishedTotal() uint64 {
	return b.published.Load()
}
