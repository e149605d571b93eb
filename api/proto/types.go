// Package proto defines cmfanout's wire messages and gRPC service
// descriptors by hand, in place of protoc-generated code: a faithful
// .pb.go rendering needs a raw file-descriptor blob that only protoc
// itself can produce. codec.go instead registers a plain JSON codec under
// gRPC's pluggable encoding.Codec mechanism, so these are ordinary Go
// structs carried over a real grpc.Server and grpc.ClientConn. See
// cmfanout.proto alongside this package for the service definition this
// code implements, kept as documentation.
package proto

import "time"

// Timestamp mirrors the wire Timestamp{seconds, nanos} shape; Nanos is
// always 0 since every Token and Message timestamp is second-precision.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

// NewTimestamp truncates t to second precision and converts it to the wire
// shape.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Seconds: t.Unix(), Nanos: 0}
}

// Time converts a wire Timestamp back to a time.Time.
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanos))
}

// TokenKey is the wire form of a device-push token identifier.
type TokenKey struct {
	Key string `json:"key"`
}

// Token is the wire form of a registry record.
type Token struct {
	Key       string    `json:"key"`
	Timestamp Timestamp `json:"timestamp"`
}

// TokenUpdate is the wire form of an {original, delta} pair.
type TokenUpdate struct {
	Original Token `json:"original"`
	Delta    Token `json:"delta"`
}

// Message is the wire form of a producer-submitted payload.
type Message struct {
	Content   map[string]string `json:"content"`
	Codomain  []string          `json:"codomain"`
	Timestamp Timestamp         `json:"timestamp"`
}

// FilterKind discriminates the variant of a SubscribeFilter.
type FilterKind int32

const (
	FilterKindNone FilterKind = iota
	FilterKindIntersection
	FilterKindComplement
	FilterKindUnion
)

// SubscribeFilter is the wire form of a subscriber's predicate. A
// FilterKindNone value (the JSON zero value) represents an absent filter.
type SubscribeFilter struct {
	Kind FilterKind `json:"kind"`
	Keys []string   `json:"keys,omitempty"`
}

// TokenBroadcastKind discriminates the variant of a TokenBroadcast.
type TokenBroadcastKind int32

const (
	TokenBroadcastAddition TokenBroadcastKind = iota
	TokenBroadcastUpdate
	TokenBroadcastInvalidation
)

// TokenBroadcast is the wire form of a TokenService.Subscribe stream
// element.
type TokenBroadcast struct {
	Kind         TokenBroadcastKind `json:"kind"`
	Addition     *Token             `json:"addition,omitempty"`
	Update       *TokenUpdate       `json:"update,omitempty"`
	Invalidation *Token             `json:"invalidation,omitempty"`
}

// MessageBroadcastKind discriminates the variant of a MessageBroadcast.
// Only Send exists today; kept open for future extension.
type MessageBroadcastKind int32

const (
	MessageBroadcastSend MessageBroadcastKind = iota
)

// MessageBroadcast is the wire form of a MessageService.Subscribe stream
// element.
type MessageBroadcast struct {
	Kind MessageBroadcastKind `json:"kind"`
	Send *Message             `json:"send,omitempty"`
}

// Request/response envelopes, one per RPC.

type TokenRegisterRequest struct {
	Token *TokenKey `json:"token,omitempty"`
}

type TokenRegisterResponse struct {
	Token Token `json:"token"`
}

type TokenUpdateRequest struct {
	Key *TokenKey `json:"key,omitempty"`
}

type TokenUpdateResponse struct {
	Token     Token     `json:"token"`
	Timestamp Timestamp `json:"timestamp"`
}

type TokenInvalidateRequest struct {
	Key *TokenKey `json:"key,omitempty"`
}

type TokenInvalidateResponse struct{}

type TokenSubscribeRequest struct {
	Filter *SubscribeFilter `json:"filter,omitempty"`
}

type MessageSendRequest struct {
	Inner *Message `json:"inner,omitempty"`
}

type MessageSendResponse struct {
	Sent Message `json:"sent"`
}

type MessageSubscribeRequest struct {
	Filter *SubscribeFilter `json:"filter,omitempty"`
}
