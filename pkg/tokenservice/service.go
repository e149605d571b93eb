package tokenservice

import (
	"context"

	"github.com/cuemby/cmfanout/pkg/apierr"
	"github.com/cuemby/cmfanout/pkg/bus"
	"github.com/cuemby/cmfanout/pkg/log"
	"github.com/cuemby/cmfanout/pkg/metrics"
	"github.com/cuemby/cmfanout/pkg/predicate"
	"github.com/cuemby/cmfanout/pkg/subscription"
	"github.com/cuemby/cmfanout/pkg/token"
)

// Service implements TokenService: it owns the Token Store and the
// TokenBroadcast bus every subscription pulls from.
type Service struct {
	store *token.Store
	bus   *bus.Bus[token.Broadcast]
}

// New builds a Service whose bus gives each subscriber a queue of
// busCapacity events.
func New(busCapacity int) *Service {
	return &Service{
		store: token.NewStore(),
		bus:   bus.New[token.Broadcast](busCapacity, "token"),
	}
}

// Register creates a Token for key and publishes an Addition broadcast.
// Publish is attempted unconditionally; per spec §4.D a broadcast with no
// live subscribers is not an error for the caller.
func (s *Service) Register(_ context.Context, key token.Key) (token.Token, error) {
	if key == "" {
		return token.Token{}, &apierr.ValidationError{Field: "token"}
	}

	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.TokenOperationDuration, "Register")

	t := s.store.Insert(key)
	s.bus.Publish(token.AdditionBroadcast(t))

	metrics.TokenRegisterTotal.Inc()
	metrics.TokenStoreSize.Set(float64(s.store.Len()))

	return t, nil
}

// Update replaces the Token for key with a freshly minted one and publishes
// an Update broadcast. Returns *token.NotPresentError (mapped by apierr to
// InvalidArgument) if key has no current entry.
func (s *Service) Update(_ context.Context, key token.Key) (token.Update, error) {
	if key == "" {
		return token.Update{}, &apierr.ValidationError{Field: "key"}
	}

	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.TokenOperationDuration, "Update")

	u, err := s.store.Update(key)
	if err != nil {
		return token.Update{}, err
	}
	s.bus.Publish(token.UpdateBroadcast(u))

	metrics.TokenUpdateTotal.Inc()

	return u, nil
}

// Invalidate removes key from the store. If key was present, an
// Invalidation broadcast carrying the Token it held is published; an
// invalidate of an already-absent key is a no-op, per spec §4.A, and
// publishes nothing since there is no Token to report.
func (s *Service) Invalidate(_ context.Context, key token.Key) error {
	if key == "" {
		return &apierr.ValidationError{Field: "key"}
	}

	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.TokenOperationDuration, "Invalidate")

	t, existed := s.store.Get(key)
	s.store.Invalidate(key)

	if existed {
		s.bus.Publish(token.InvalidationBroadcast(t))
	}

	metrics.TokenInvalidateTotal.Inc()
	metrics.TokenStoreSize.Set(float64(s.store.Len()))

	return nil
}

// Subscribe opens a filtered view of the TokenBroadcast stream. The
// returned Task's Out channel closes when ctx is done or the bus is
// closed; Subscribe itself releases the underlying bus consumer when ctx
// is done, so callers need not call anything else to clean up.
func (s *Service) Subscribe(ctx context.Context, p predicate.Predicate) *subscription.Task[token.Broadcast] {
	metrics.SubscriptionsActive.WithLabelValues("token").Inc()

	consumer := s.bus.Subscribe()
	match := func(b token.Broadcast) bool {
		key, ok := b.SubjectKey()
		if !ok {
			return false
		}
		return predicate.MatchesOne(p, key)
	}

	task := subscription.Start(ctx, consumer, match)

	go func() {
		<-ctx.Done()
		s.bus.Unsubscribe(consumer)
		metrics.SubscriptionsActive.WithLabelValues("token").Dec()
		log.Debug("token subscription closed")
	}()

	return task
}
