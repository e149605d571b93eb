package pushsink

import (
	"context"

	"github.com/cuemby/cmfanout/pkg/message"
	"github.com/cuemby/cmfanout/pkg/token"
)

// Sink forwards a sent message to every key in target. It is invoked once
// per MessageService.Send call, with the full recipient set, rather than
// once per recipient, so a real provider backend can batch the request.
// Any returned error is surfaced to the caller as Internal, wrapped in a
// SinkError.
type Sink interface {
	Push(ctx context.Context, msg message.Message, target []token.Key) error
}

// NopSink accepts every push and reports success. Used when no sink is
// configured and the deployment only needs the bus fan-out, not an actual
// external delivery hop.
type NopSink struct{}

func (NopSink) Push(context.Context, message.Message, []token.Key) error {
	return nil
}
