package server

import (
	"github.com/cuemby/cmfanout/api/proto"
	"github.com/cuemby/cmfanout/pkg/message"
	"github.com/cuemby/cmfanout/pkg/predicate"
	"github.com/cuemby/cmfanout/pkg/token"
)

func tokenToProto(t token.Token) proto.Token {
	return proto.Token{Key: string(t.Key), Timestamp: proto.NewTimestamp(t.Timestamp)}
}

func tokenUpdateToProto(u token.Update) proto.TokenUpdate {
	return proto.TokenUpdate{Original: tokenToProto(u.Original), Delta: tokenToProto(u.Delta)}
}

func messageToProto(m message.Message) proto.Message {
	codomain := make([]string, len(m.Codomain))
	for i, k := range m.Codomain {
		codomain[i] = string(k)
	}
	return proto.Message{Content: m.Content, Codomain: codomain, Timestamp: proto.NewTimestamp(m.Timestamp)}
}

func protoToMessage(m *proto.Message) message.Message {
	codomain := make([]token.Key, len(m.Codomain))
	for i, k := range m.Codomain {
		codomain[i] = token.Key(k)
	}
	return message.Message{Content: m.Content, Codomain: codomain, Timestamp: m.Timestamp.Time()}
}

func protoToPredicate(f *proto.SubscribeFilter) predicate.Predicate {
	if f == nil {
		return predicate.None()
	}

	keys := make([]token.Key, len(f.Keys))
	for i, k := range f.Keys {
		keys[i] = token.Key(k)
	}

	switch f.Kind {
	case proto.FilterKindIntersection:
		return predicate.Intersection(keys)
	case proto.FilterKindComplement:
		return predicate.Complement(keys)
	case proto.FilterKindUnion:
		return predicate.Union()
	default:
		return predicate.None()
	}
}

func tokenBroadcastToProto(b token.Broadcast) *proto.TokenBroadcast {
	switch b.Kind {
	case token.KindAddition:
		t := tokenToProto(*b.Addition)
		return &proto.TokenBroadcast{Kind: proto.TokenBroadcastAddition, Addition: &t}
	case token.KindUpdate:
		u := tokenUpdateToProto(*b.Update)
		return &proto.TokenBroadcast{Kind: proto.TokenBroadcastUpdate, Update: &u}
	case token.KindInvalidation:
		t := tokenToProto(*b.Invalidation)
		return &proto.TokenBroadcast{Kind: proto.TokenBroadcastInvalidation, Invalidation: &t}
	default:
		return &proto.TokenBroadcast{}
	}
}

func messageBroadcastToProto(b message.Broadcast) *proto.MessageBroadcast {
	if b.Kind != message.KindSend || b.Send == nil {
		return &proto.MessageBroadcast{}
	}
	m := messageToProto(*b.Send)
	return &proto.MessageBroadcast{Kind: proto.MessageBroadcastSend, Send: &m}
}
