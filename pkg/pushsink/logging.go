package pushsink

import (
	"context"

	"github.com/cuemby/cmfanout/pkg/log"
	"github.com/cuemby/cmfanout/pkg/message"
	"github.com/cuemby/cmfanout/pkg/token"
)

// LoggingSink records each push as a structured log line instead of
// contacting a provider. It is the sink config.Default selects for local
// runs: cheap, deterministic, and enough to confirm the send path was
// exercised.
type LoggingSink struct{}

// NewLoggingSink constructs a LoggingSink.
func NewLoggingSink() *LoggingSink {
	return &LoggingSink{}
}

func (s *LoggingSink) Push(_ context.Context, msg message.Message, target []token.Key) error {
	for _, key := range target {
		log.WithTokenKey(string(key)).
			Info().
			Int("content_fields", len(msg.Content)).
			Msg("push sink delivery")
	}
	return nil
}
