// Package predicate evaluates a subscriber's filter against token keys
// emitted by the token and message broadcast streams. Every function here
// is pure: evaluation has no side effects and depends only on its
// arguments.
package predicate

import "github.com/cuemby/cmfanout/pkg/token"

// Kind discriminates the variant of a Predicate. The zero value, KindNone,
// represents a subscribe request with no filter at all, which matches
// nothing (spec §4.C).
type Kind int

const (
	// KindNone means no predicate was supplied; matches nothing.
	KindNone Kind = iota
	// KindIntersection matches when the key(s) under test are contained in Keys.
	KindIntersection
	// KindComplement matches when the key(s) under test are disjoint from Keys.
	KindComplement
	// KindUnion matches everything; Keys is ignored.
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindIntersection:
		return "intersection"
	case KindComplement:
		return "complement"
	case KindUnion:
		return "union"
	default:
		return "none"
	}
}

// Predicate is a tagged union over a TokenKeySet: Intersection(S),
// Complement(S), or Union (the set argument is ignored for Union).
type Predicate struct {
	Kind Kind
	Keys map[token.Key]struct{}
}

// Intersection builds a Predicate matching keys contained in keys.
func Intersection(keys []token.Key) Predicate {
	return Predicate{Kind: KindIntersection, Keys: toSet(keys)}
}

// Complement builds a Predicate matching keys disjoint from keys.
func Complement(keys []token.Key) Predicate {
	return Predicate{Kind: KindComplement, Keys: toSet(keys)}
}

// Union builds a Predicate matching everything.
func Union() Predicate {
	return Predicate{Kind: KindUnion}
}

// None builds the zero Predicate: matches nothing.
func None() Predicate {
	return Predicate{Kind: KindNone}
}

func toSet(keys []token.Key) map[token.Key]struct{} {
	set := make(map[token.Key]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// MatchesOne evaluates P against a single token key — the shape of every
// TokenBroadcast event (Addition, Update, Invalidation all carry one key).
func MatchesOne(p Predicate, k token.Key) bool {
	switch p.Kind {
	case KindIntersection:
		_, ok := p.Keys[k]
		return ok
	case KindComplement:
		_, ok := p.Keys[k]
		return !ok
	case KindUnion:
		return true
	default:
		return false
	}
}

// MatchesMany evaluates P against the codomain of a message — a *set* of
// keys — under the reduction spec §4.C calls out explicitly: the predicate
// is still a predicate over one key, so a set-level match asks whether the
// predicate would accept *every* key in the set. Union matches any codomain,
// including an empty one; under every other kind an empty codomain never
// matches.
func MatchesMany(p Predicate, keys []token.Key) bool {
	if p.Kind == KindUnion {
		return true
	}
	if p.Kind == KindNone || len(keys) == 0 {
		return false
	}
	for _, k := range keys {
		if !MatchesOne(p, k) {
			return false
		}
	}
	return true
}
