package token

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreInsert(t *testing.T) {
	s := NewStore()

	tok := s.Insert("abc")
	assert.Equal(t, Key("abc"), tok.Key)
	assert.False(t, tok.Timestamp.IsZero())

	got, ok := s.Get("abc")
	require.True(t, ok)
	assert.Equal(t, tok, got)
}

func TestStoreInsertOverwrites(t *testing.T) {
	s := NewStore()

	first := s.Insert("abc")
	second := s.Insert("abc")

	got, ok := s.Get("abc")
	require.True(t, ok)
	assert.Equal(t, second, got)
	assert.False(t, second.Timestamp.Before(first.Timestamp))
}

func TestStoreUpdateAtomicity(t *testing.T) {
	s := NewStore()
	original := s.Insert("x")

	update, err := s.Update("x")
	require.NoError(t, err)

	assert.Equal(t, original, update.Original)
	assert.Equal(t, Key("x"), update.Delta.Key)
	assert.True(t, !update.Delta.Timestamp.Before(update.Original.Timestamp))

	current, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, update.Delta, current)
}

func TestStoreUpdateNotPresent(t *testing.T) {
	s := NewStore()

	_, err := s.Update("missing")
	require.Error(t, err)

	var npe *NotPresentError
	require.ErrorAs(t, err, &npe)
	assert.Equal(t, Key("missing"), npe.Key)
}

func TestStoreInvalidateIsNoopOnAbsent(t *testing.T) {
	s := NewStore()
	assert.NotPanics(t, func() { s.Invalidate("nope") })
	assert.Equal(t, 0, s.Len())
}

func TestStoreInvalidateRemoves(t *testing.T) {
	s := NewStore()
	s.Insert("a")
	s.Invalidate("a")

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

// TestStoreUpdateIsLinearizable exercises many concurrent updates against
// the same key; each successful update must see a prior committed token as
// Original, and the final state must match the last Delta written.
func TestStoreUpdateIsLinearizable(t *testing.T) {
	s := NewStore()
	s.Insert("x")

	const n = 200
	var wg sync.WaitGroup
	updates := make([]Update, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			updates[i], errs[i] = s.Update("x")
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
	}

	// The store's final state must equal exactly one of the Deltas written,
	// and every update must have moved the clock forward or held steady.
	final, ok := s.Get("x")
	require.True(t, ok)

	matched := false
	for _, u := range updates {
		assert.False(t, u.Delta.Timestamp.Before(u.Original.Timestamp))
		if u.Delta == final {
			matched = true
		}
	}
	assert.True(t, matched, "final store state must be some update's Delta")
}
