package tokenservice

import (
	"context"
	"testing"
	"time"

	"github.com/cuemby/cmfanout/pkg/apierr"
	"github.com/cuemby/cmfanout/pkg/predicate"
	"github.com/cuemby/cmfanout/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvBroadcast(t *testing.T, ch <-chan token.Broadcast, timeout time.Duration) (token.Broadcast, bool) {
	t.Helper()
	select {
	case b, ok := <-ch:
		return b, ok
	case <-time.After(timeout):
		t.Fatal("timed out waiting for a broadcast")
		return token.Broadcast{}, false
	}
}

func assertNoBroadcast(t *testing.T, ch <-chan token.Broadcast, wait time.Duration) {
	t.Helper()
	select {
	case b, ok := <-ch:
		t.Fatalf("expected no broadcast, got %+v (ok=%v)", b, ok)
	case <-time.After(wait):
	}
}

// TestRegisterSubscribeVisibility is spec property 1.
func TestRegisterSubscribeVisibility(t *testing.T) {
	s := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	task := s.Subscribe(ctx, predicate.Union())
	time.Sleep(10 * time.Millisecond) // let Subscribe register its consumer

	tok, err := s.Register(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, token.Key("k"), tok.Key)

	b, ok := recvBroadcast(t, task.Out(), time.Second)
	require.True(t, ok)
	require.Equal(t, token.KindAddition, b.Kind)
	assert.Equal(t, token.Key("k"), b.Addition.Key)
}

// TestUpdateAtomicity is spec property 2.
func TestUpdateAtomicity(t *testing.T) {
	s := New(16)
	ctx := context.Background()

	original, err := s.Register(ctx, "x")
	require.NoError(t, err)

	update, err := s.Update(ctx, "x")
	require.NoError(t, err)

	assert.Equal(t, original, update.Original)
	assert.Equal(t, token.Key("x"), update.Delta.Key)
	assert.False(t, update.Delta.Timestamp.Before(update.Original.Timestamp))
}

// TestS1Complement is scenario S1.
func TestS1Complement(t *testing.T) {
	s := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	task := s.Subscribe(ctx, predicate.Complement([]token.Key{"a", "b"}))
	time.Sleep(10 * time.Millisecond)

	for _, k := range []token.Key{"a", "b", "c", "d"} {
		_, err := s.Register(ctx, k)
		require.NoError(t, err)
	}

	b, ok := recvBroadcast(t, task.Out(), time.Second)
	require.True(t, ok)
	assert.Equal(t, token.Key("c"), b.Addition.Key)

	b, ok = recvBroadcast(t, task.Out(), time.Second)
	require.True(t, ok)
	assert.Equal(t, token.Key("d"), b.Addition.Key)

	assertNoBroadcast(t, task.Out(), 100*time.Millisecond)
}

// TestS2Intersection is scenario S2.
func TestS2Intersection(t *testing.T) {
	s := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	task := s.Subscribe(ctx, predicate.Intersection([]token.Key{"a", "b"}))
	time.Sleep(10 * time.Millisecond)

	for _, k := range []token.Key{"a", "b", "c"} {
		_, err := s.Register(ctx, k)
		require.NoError(t, err)
	}

	seen := map[token.Key]bool{}
	for i := 0; i < 2; i++ {
		b, ok := recvBroadcast(t, task.Out(), time.Second)
		require.True(t, ok)
		seen[b.Addition.Key] = true
	}
	assert.Equal(t, map[token.Key]bool{"a": true, "b": true}, seen)

	assertNoBroadcast(t, task.Out(), 100*time.Millisecond)
}

// TestS3RegisterThenUpdates is scenario S3.
func TestS3RegisterThenUpdates(t *testing.T) {
	s := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	task := s.Subscribe(ctx, predicate.Union())
	time.Sleep(10 * time.Millisecond)

	_, err := s.Register(ctx, "x")
	require.NoError(t, err)

	_, err = s.Update(ctx, "x")
	require.NoError(t, err)

	_, err = s.Update(ctx, "y")
	require.Error(t, err)
	var npe *token.NotPresentError
	require.ErrorAs(t, err, &npe)

	b, ok := recvBroadcast(t, task.Out(), time.Second)
	require.True(t, ok)
	assert.Equal(t, token.KindAddition, b.Kind)

	b, ok = recvBroadcast(t, task.Out(), time.Second)
	require.True(t, ok)
	assert.Equal(t, token.KindUpdate, b.Kind)
	assert.Equal(t, token.Key("x"), b.Update.Original.Key)
}

// TestNoFilterSilence is spec property 7.
func TestNoFilterSilence(t *testing.T) {
	s := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	task := s.Subscribe(ctx, predicate.None())
	time.Sleep(10 * time.Millisecond)

	_, err := s.Register(ctx, "k")
	require.NoError(t, err)

	assertNoBroadcast(t, task.Out(), 100*time.Millisecond)
}

// TestOnlyFutureDelivery is spec property 8.
func TestOnlyFutureDelivery(t *testing.T) {
	s := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := s.Register(ctx, "before")
	require.NoError(t, err)

	task := s.Subscribe(ctx, predicate.Union())
	time.Sleep(10 * time.Millisecond)

	_, err = s.Register(ctx, "after")
	require.NoError(t, err)

	b, ok := recvBroadcast(t, task.Out(), time.Second)
	require.True(t, ok)
	assert.Equal(t, token.Key("after"), b.Addition.Key)
}

func TestInvalidateWiresInvalidationBroadcast(t *testing.T) {
	s := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := s.Register(ctx, "k")
	require.NoError(t, err)

	task := s.Subscribe(ctx, predicate.Union())
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, s.Invalidate(ctx, "k"))

	b, ok := recvBroadcast(t, task.Out(), time.Second)
	require.True(t, ok)
	assert.Equal(t, token.KindInvalidation, b.Kind)
	assert.Equal(t, token.Key("k"), b.Invalidation.Key)
}

func TestInvalidateAbsentKeyIsNoop(t *testing.T) {
	s := New(16)
	ctx := context.Background()
	assert.NoError(t, s.Invalidate(ctx, "nope"))
}

func TestRegisterRejectsEmptyKey(t *testing.T) {
	s := New(16)
	_, err := s.Register(context.Background(), "")
	var ve *apierr.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestUpdateRejectsEmptyKey(t *testing.T) {
	s := New(16)
	_, err := s.Update(context.Background(), "")
	var ve *apierr.ValidationError
	require.ErrorAs(t, err, &ve)
}
