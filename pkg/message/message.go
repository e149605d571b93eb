// Package message defines the producer-submitted Message payload and the
// broadcast event it is wrapped in before fan-out.
package message

import (
	"time"

	"github.com/cuemby/cmfanout/pkg/token"
)

// Message is a producer-submitted payload: free-form content keyed by
// string, a Codomain naming its intended recipients, and a creation
// timestamp.
type Message struct {
	Content   map[string]string
	Codomain  []token.Key
	Timestamp time.Time
}

// New builds a Message stamped with the current time (second precision).
func New(content map[string]string, codomain []token.Key) Message {
	return Message{
		Content:   content,
		Codomain:  codomain,
		Timestamp: time.Now().Truncate(time.Second),
	}
}

// Kind discriminates the variant of a Broadcast. Only Send exists today;
// the type is kept open for future extension.
type Kind int

const (
	// KindSend marks a message broadcast via MessageService.Send.
	KindSend Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindSend:
		return "send"
	default:
		return "unknown"
	}
}

// Broadcast is the tagged union published for every message send.
type Broadcast struct {
	Kind Kind
	Send *Message
}

// SendBroadcast builds the broadcast published by MessageService.Send.
func SendBroadcast(m Message) Broadcast {
	return Broadcast{Kind: KindSend, Send: &m}
}

// Keys returns the recipient key set this broadcast should be filtered
// against, or nil if the broadcast carries no codomain.
func (b Broadcast) Keys() []token.Key {
	if b.Kind != KindSend || b.Send == nil {
		return nil
	}
	return b.Send.Codomain
}
