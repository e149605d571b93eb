package pushsink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cuemby/cmfanout/pkg/message"
	"github.com/cuemby/cmfanout/pkg/token"
)

// HTTPSink forwards a push to a single HTTP endpoint as a JSON POST: one
// request per Push call carrying the whole recipient batch. It is the seam
// for a real provider (FCM, APNs, or any push gateway fronted by HTTP) —
// an api key plus an HTTP client, without committing to one provider's
// wire format.
type HTTPSink struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

// NewHTTPSink builds an HTTPSink posting to endpoint, authenticated with
// apiKey via a bearer Authorization header. A nil client defaults to
// http.DefaultClient.
func NewHTTPSink(endpoint, apiKey string, client *http.Client) *HTTPSink {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSink{Endpoint: endpoint, APIKey: apiKey, Client: client}
}

type httpSinkPayload struct {
	Content    map[string]string `json:"content"`
	Recipients []string          `json:"recipients"`
}

func (s *HTTPSink) Push(ctx context.Context, msg message.Message, target []token.Key) error {
	recipients := make([]string, len(target))
	for i, k := range target {
		recipients[i] = string(k)
	}

	body, err := json.Marshal(httpSinkPayload{Content: msg.Content, Recipients: recipients})
	if err != nil {
		return fmt.Errorf("pushsink: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("pushsink: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("pushsink: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("pushsink: provider returned status %d", resp.StatusCode)
	}
	return nil
}
