package subscription

import (
	"context"

	"github.com/google/uuid"

	"github.com/cuemby/cmfanout/pkg/bus"
	"github.com/cuemby/cmfanout/pkg/log"
)

// ClientQueueCapacity is the bounded outbound queue size every subscription
// task allocates for its client write side.
const ClientQueueCapacity = 4

// Match decides whether event should be forwarded to this subscription's
// client. Callers build this from a predicate.Predicate plus the event's
// key-extraction rule, which differs between token and message broadcasts.
type Match[T any] func(event T) bool

// Task is a running Subscription Task: a goroutine pumping events from one
// bus.Consumer through a Match filter into a bounded client-facing channel.
type Task[T any] struct {
	id  string
	out chan T
}

// ID returns the task's correlation ID, minted once at Start and stable for
// the task's lifetime, for tying together the "lagged" log lines a long
// running stream produces.
func (t *Task[T]) ID() string {
	return t.id
}

// Start takes ownership of consumer and begins pumping matching events into
// a bounded channel sized ClientQueueCapacity. The task exits, closing its
// output channel, when consumer reports closed or ctx is done; a lagged
// result is logged and otherwise ignored, per the no-delivery-continuity
// rule across lag. Start does not call bus.Bus.Unsubscribe; the caller
// remains responsible for releasing consumer when the stream ends.
func Start[T any](ctx context.Context, consumer *bus.Consumer[T], match Match[T]) *Task[T] {
	t := &Task[T]{id: uuid.New().String(), out: make(chan T, ClientQueueCapacity)}
	go t.run(ctx, consumer, match)
	return t
}

func (t *Task[T]) run(ctx context.Context, consumer *bus.Consumer[T], match Match[T]) {
	defer close(t.out)

	for {
		res, err := consumer.Recv(ctx)
		if err != nil {
			return
		}

		switch res.Kind {
		case bus.ResultClosed:
			return
		case bus.ResultLagged:
			log.Warn("subscription task " + t.id + " lagged, delivery continuity not guaranteed")
			continue
		case bus.ResultEvent:
			if !match(res.Event) {
				continue
			}
			select {
			case t.out <- res.Event:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Out returns the client-facing read end. The caller drains it and writes
// each event to the RPC stream; the channel closes when the task exits.
func (t *Task[T]) Out() <-chan T {
	return t.out
}
