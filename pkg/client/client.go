// Package client wraps the hand-written api/proto gRPC clients for
// TokenService and MessageService behind a small Go API, for use by
// cmfanoutctl.
package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/cuemby/cmfanout/api/proto"
)

// Client wraps a connection to a cmfanout server. Authentication is out of
// scope, so the connection is always plaintext; there is no mTLS handshake.
type Client struct {
	conn     *grpc.ClientConn
	tokens   proto.TokenServiceClient
	messages proto.MessageServiceClient
}

// New dials addr and returns a ready Client. The dial is non-blocking;
// connection errors surface on the first RPC.
func New(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", addr, err)
	}
	return &Client{
		conn:     conn,
		tokens:   proto.NewTokenServiceClient(conn),
		messages: proto.NewMessageServiceClient(conn),
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// RegisterToken calls TokenService.Register.
func (c *Client) RegisterToken(ctx context.Context, key string) (*proto.Token, error) {
	resp, err := c.tokens.Register(ctx, &proto.TokenRegisterRequest{Token: &proto.TokenKey{Key: key}})
	if err != nil {
		return nil, err
	}
	return &resp.Token, nil
}

// UpdateToken calls TokenService.Update.
func (c *Client) UpdateToken(ctx context.Context, key string) (*proto.TokenUpdateResponse, error) {
	return c.tokens.Update(ctx, &proto.TokenUpdateRequest{Key: &proto.TokenKey{Key: key}})
}

// InvalidateToken calls TokenService.Invalidate.
func (c *Client) InvalidateToken(ctx context.Context, key string) error {
	_, err := c.tokens.Invalidate(ctx, &proto.TokenInvalidateRequest{Key: &proto.TokenKey{Key: key}})
	return err
}

// SubscribeTokens opens a TokenService.Subscribe stream filtered by filter.
func (c *Client) SubscribeTokens(ctx context.Context, filter *proto.SubscribeFilter) (proto.TokenService_SubscribeClient, error) {
	return c.tokens.Subscribe(ctx, &proto.TokenSubscribeRequest{Filter: filter})
}

// SendMessage calls MessageService.Send.
func (c *Client) SendMessage(ctx context.Context, msg *proto.Message) (*proto.Message, error) {
	resp, err := c.messages.Send(ctx, &proto.MessageSendRequest{Inner: msg})
	if err != nil {
		return nil, err
	}
	return &resp.Sent, nil
}

// SubscribeMessages opens a MessageService.Subscribe stream filtered by filter.
func (c *Client) SubscribeMessages(ctx context.Context, filter *proto.SubscribeFilter) (proto.MessageService_SubscribeClient, error) {
	return c.messages.Subscribe(ctx, &proto.MessageSubscribeRequest{Filter: filter})
}

// ParseFilter builds a SubscribeFilter from a kind name ("intersection",
// "complement", "union", "none") and a set of keys, for CLI flag parsing.
func ParseFilter(kind string, keys []string) (*proto.SubscribeFilter, error) {
	switch kind {
	case "", "none":
		return nil, nil
	case "intersection":
		return &proto.SubscribeFilter{Kind: proto.FilterKindIntersection, Keys: keys}, nil
	case "complement":
		return &proto.SubscribeFilter{Kind: proto.FilterKindComplement, Keys: keys}, nil
	case "union":
		return &proto.SubscribeFilter{Kind: proto.FilterKindUnion}, nil
	default:
		return nil, fmt.Errorf("client: unknown filter kind %q (want intersection, complement, union, or none)", kind)
	}
}
