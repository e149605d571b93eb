package messageservice

import (
	"context"

	"github.com/cuemby/cmfanout/pkg/apierr"
	"github.com/cuemby/cmfanout/pkg/bus"
	"github.com/cuemby/cmfanout/pkg/log"
	"github.com/cuemby/cmfanout/pkg/message"
	"github.com/cuemby/cmfanout/pkg/metrics"
	"github.com/cuemby/cmfanout/pkg/predicate"
	"github.com/cuemby/cmfanout/pkg/pushsink"
	"github.com/cuemby/cmfanout/pkg/subscription"
)

// Service implements MessageService: it owns the MessageBroadcast bus and
// forwards every sent message to a pushsink.Sink.
type Service struct {
	bus  *bus.Bus[message.Broadcast]
	sink pushsink.Sink

	// allowSendWithNoSubscribers controls Send's behavior when no
	// subscribers are live: false preserves the default
	// Internal("no subscribers") behavior.
	allowSendWithNoSubscribers bool
}

// New builds a Service whose bus gives each subscriber a queue of
// busCapacity events, forwarding sent messages to sink.
func New(busCapacity int, sink pushsink.Sink, allowSendWithNoSubscribers bool) *Service {
	if sink == nil {
		sink = pushsink.NopSink{}
	}
	return &Service{
		bus:                        bus.New[message.Broadcast](busCapacity, "message"),
		sink:                       sink,
		allowSendWithNoSubscribers: allowSendWithNoSubscribers,
	}
}

// Send applies the no-subscriber policy, publishes a Send broadcast, and
// forwards msg to the Push Sink with its whole codomain in one call.
func (s *Service) Send(ctx context.Context, msg message.Message) (message.Message, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.MessageSendDuration)

	if s.bus.SubscriberCount() == 0 && !s.allowSendWithNoSubscribers {
		metrics.MessageSendTotal.WithLabelValues("no_subscribers").Inc()
		return message.Message{}, &apierr.BusError{Reason: "no subscribers"}
	}

	s.bus.Publish(message.SendBroadcast(msg))

	if err := s.pushToSink(ctx, msg); err != nil {
		metrics.MessageSendTotal.WithLabelValues("sink_error").Inc()
		return message.Message{}, &apierr.SinkError{Err: err}
	}

	metrics.MessageSendTotal.WithLabelValues("ok").Inc()
	return msg, nil
}

func (s *Service) pushToSink(ctx context.Context, msg message.Message) error {
	sinkTimer := metrics.NewTimer()
	defer sinkTimer.ObserveDuration(metrics.PushSinkDuration)

	err := s.sink.Push(ctx, msg, msg.Codomain)
	if err != nil {
		metrics.PushSinkErrorsTotal.Inc()
	}
	return err
}

// Subscribe opens a filtered view of the MessageBroadcast stream, matching
// via matches_many against each message's codomain (spec §4.F).
func (s *Service) Subscribe(ctx context.Context, p predicate.Predicate) *subscription.Task[message.Broadcast] {
	metrics.SubscriptionsActive.WithLabelValues("message").Inc()

	consumer := s.bus.Subscribe()
	match := func(b message.Broadcast) bool {
		return predicate.MatchesMany(p, b.Keys())
	}

	task := subscription.Start(ctx, consumer, match)

	go func() {
		<-ctx.Done()
		s.bus.Unsubscribe(consumer)
		metrics.SubscriptionsActive.WithLabelValues("message").Dec()
		log.Debug("message subscription closed")
	}()

	return task
}
