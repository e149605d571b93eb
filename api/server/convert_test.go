package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cuemby/cmfanout/api/proto"
	"github.com/cuemby/cmfanout/pkg/message"
	"github.com/cuemby/cmfanout/pkg/predicate"
	"github.com/cuemby/cmfanout/pkg/token"
)

func TestTokenToProto(t *testing.T) {
	tok := token.New("device-1")
	wire := tokenToProto(tok)
	assert.Equal(t, string(tok.Key), wire.Key)
	assert.Equal(t, tok.Timestamp.Unix(), wire.Timestamp.Seconds)
}

func TestMessageToProtoAndBack(t *testing.T) {
	m := message.New(map[string]string{"title": "hi"}, []token.Key{"a", "b"})
	wire := messageToProto(m)
	assert.Equal(t, []string{"a", "b"}, wire.Codomain)

	back := protoToMessage(&wire)
	assert.Equal(t, m.Codomain, back.Codomain)
	assert.Equal(t, m.Content, back.Content)
	assert.WithinDuration(t, m.Timestamp, back.Timestamp, time.Second)
}

func TestProtoToPredicate(t *testing.T) {
	cases := []struct {
		name string
		in   *proto.SubscribeFilter
		want predicate.Predicate
	}{
		{"nil filter is none", nil, predicate.None()},
		{"zero value is none", &proto.SubscribeFilter{}, predicate.None()},
		{"intersection", &proto.SubscribeFilter{Kind: proto.FilterKindIntersection, Keys: []string{"a"}}, predicate.Intersection([]token.Key{"a"})},
		{"complement", &proto.SubscribeFilter{Kind: proto.FilterKindComplement, Keys: []string{"a"}}, predicate.Complement([]token.Key{"a"})},
		{"union", &proto.SubscribeFilter{Kind: proto.FilterKindUnion}, predicate.Union()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, protoToPredicate(tc.in))
		})
	}
}

func TestTokenBroadcastToProto(t *testing.T) {
	tok := token.New("x")

	addition := token.AdditionBroadcast(tok)
	wire := tokenBroadcastToProto(addition)
	assert.Equal(t, proto.TokenBroadcastAddition, wire.Kind)
	assert.Equal(t, string(tok.Key), wire.Addition.Key)

	invalidation := token.InvalidationBroadcast(tok)
	wire = tokenBroadcastToProto(invalidation)
	assert.Equal(t, proto.TokenBroadcastInvalidation, wire.Kind)
	assert.Equal(t, string(tok.Key), wire.Invalidation.Key)
}

func TestMessageBroadcastToProto(t *testing.T) {
	m := message.New(map[string]string{"k": "v"}, []token.Key{"a"})
	wire := messageBroadcastToProto(message.SendBroadcast(m))
	assert.Equal(t, proto.MessageBroadcastSend, wire.Kind)
	assert.Equal(t, []string{"a"}, wire.Send.Codomain)
}
