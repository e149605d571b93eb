// Package server adapts tokenservice.Service and messageservice.Service to
// the api/proto gRPC service descriptors: it rejects requests whose required
// sub-message is nil, translates proto wire types to domain types and back
// (the remaining validation lives in the service layer), and pumps each
// subscription.Task's Out channel onto its gRPC stream.
package server

import (
	"context"

	"github.com/cuemby/cmfanout/api/proto"
	"github.com/cuemby/cmfanout/pkg/apierr"
	"github.com/cuemby/cmfanout/pkg/log"
	"github.com/cuemby/cmfanout/pkg/messageservice"
	"github.com/cuemby/cmfanout/pkg/token"
	"github.com/cuemby/cmfanout/pkg/tokenservice"
)

// TokenServer adapts a tokenservice.Service to proto.TokenServiceServer.
type TokenServer struct {
	svc *tokenservice.Service
}

// NewTokenServer builds a TokenServer backed by svc.
func NewTokenServer(svc *tokenservice.Service) *TokenServer {
	return &TokenServer{svc: svc}
}

// Register implements proto.TokenServiceServer.
func (s *TokenServer) Register(ctx context.Context, req *proto.TokenRegisterRequest) (*proto.TokenRegisterResponse, error) {
	if req.Token == nil {
		return nil, apierr.ToStatus(&apierr.ValidationError{Field: "token"})
	}

	t, err := s.svc.Register(ctx, token.Key(req.Token.Key))
	if err != nil {
		return nil, apierr.ToStatus(err)
	}
	return &proto.TokenRegisterResponse{Token: tokenToProto(t)}, nil
}

// Update implements proto.TokenServiceServer.
func (s *TokenServer) Update(ctx context.Context, req *proto.TokenUpdateRequest) (*proto.TokenUpdateResponse, error) {
	if req.Key == nil {
		return nil, apierr.ToStatus(&apierr.ValidationError{Field: "key"})
	}

	u, err := s.svc.Update(ctx, token.Key(req.Key.Key))
	if err != nil {
		return nil, apierr.ToStatus(err)
	}
	return &proto.TokenUpdateResponse{
		Token:     tokenToProto(u.Delta),
		Timestamp: proto.NewTimestamp(u.Delta.Timestamp),
	}, nil
}

// Invalidate implements proto.TokenServiceServer.
func (s *TokenServer) Invalidate(ctx context.Context, req *proto.TokenInvalidateRequest) (*proto.TokenInvalidateResponse, error) {
	if req.Key == nil {
		return nil, apierr.ToStatus(&apierr.ValidationError{Field: "key"})
	}

	if err := s.svc.Invalidate(ctx, token.Key(req.Key.Key)); err != nil {
		return nil, apierr.ToStatus(err)
	}
	return &proto.TokenInvalidateResponse{}, nil
}

// Subscribe implements proto.TokenServiceServer, pumping matching
// TokenBroadcast events onto stream until the client disconnects or the
// server shuts the bus down.
func (s *TokenServer) Subscribe(req *proto.TokenSubscribeRequest, stream proto.TokenService_SubscribeServer) error {
	ctx := stream.Context()
	task := s.svc.Subscribe(ctx, protoToPredicate(req.Filter))

	for b := range task.Out() {
		if err := stream.Send(tokenBroadcastToProto(b)); err != nil {
			log.Debug("token subscribe stream send failed, client likely disconnected")
			return err
		}
	}
	return ctx.Err()
}

// MessageServer adapts a messageservice.Service to proto.MessageServiceServer.
type MessageServer struct {
	svc *messageservice.Service
}

// NewMessageServer builds a MessageServer backed by svc.
func NewMessageServer(svc *messageservice.Service) *MessageServer {
	return &MessageServer{svc: svc}
}

// Send implements proto.MessageServiceServer.
func (s *MessageServer) Send(ctx context.Context, req *proto.MessageSendRequest) (*proto.MessageSendResponse, error) {
	if req.Inner == nil {
		return nil, apierr.ToStatus(&apierr.ValidationError{Field: "inner"})
	}

	sent, err := s.svc.Send(ctx, protoToMessage(req.Inner))
	if err != nil {
		return nil, apierr.ToStatus(err)
	}
	return &proto.MessageSendResponse{Sent: messageToProto(sent)}, nil
}

// Subscribe implements proto.MessageServiceServer.
func (s *MessageServer) Subscribe(req *proto.MessageSubscribeRequest, stream proto.MessageService_SubscribeServer) error {
	ctx := stream.Context()
	task := s.svc.Subscribe(ctx, protoToPredicate(req.Filter))

	for b := range task.Out() {
		if err := stream.Send(messageBroadcastToProto(b)); err != nil {
			log.Debug("message subscribe stream send failed, client likely disconnected")
			return err
		}
	}
	return ctx.Err()
}
