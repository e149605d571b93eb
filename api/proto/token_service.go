package proto

import (
	"context"

	"google.golang.org/grpc"
)

// TokenServiceServer is the server API for TokenService.
type TokenServiceServer interface {
	Register(context.Context, *TokenRegisterRequest) (*TokenRegisterResponse, error)
	Update(context.Context, *TokenUpdateRequest) (*TokenUpdateResponse, error)
	Invalidate(context.Context, *TokenInvalidateRequest) (*TokenInvalidateResponse, error)
	Subscribe(*TokenSubscribeRequest, TokenService_SubscribeServer) error
}

// TokenServiceClient is the client API for TokenService.
type TokenServiceClient interface {
	Register(ctx context.Context, in *TokenRegisterRequest, opts ...grpc.CallOption) (*TokenRegisterResponse, error)
	Update(ctx context.Context, in *TokenUpdateRequest, opts ...grpc.CallOption) (*TokenUpdateResponse, error)
	Invalidate(ctx context.Context, in *TokenInvalidateRequest, opts ...grpc.CallOption) (*TokenInvalidateResponse, error)
	Subscribe(ctx context.Context, in *TokenSubscribeRequest, opts ...grpc.CallOption) (TokenService_SubscribeClient, error)
}

// TokenService_SubscribeServer is the server-side stream handle for
// TokenService.Subscribe.
type TokenService_SubscribeServer interface {
	Send(*TokenBroadcast) error
	grpc.ServerStream
}

// TokenService_SubscribeClient is the client-side stream handle for
// TokenService.Subscribe.
type TokenService_SubscribeClient interface {
	Recv() (*TokenBroadcast, error)
	grpc.ClientStream
}

type tokenServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTokenServiceClient builds a TokenServiceClient over cc, negotiating
// the JSON codec on every call.
func NewTokenServiceClient(cc grpc.ClientConnInterface) TokenServiceClient {
	return &tokenServiceClient{cc: cc}
}

func withJSONSubtype(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
}

func (c *tokenServiceClient) Register(ctx context.Context, in *TokenRegisterRequest, opts ...grpc.CallOption) (*TokenRegisterResponse, error) {
	out := new(TokenRegisterResponse)
	if err := c.cc.Invoke(ctx, "/cmfanout.TokenService/Register", in, out, withJSONSubtype(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tokenServiceClient) Update(ctx context.Context, in *TokenUpdateRequest, opts ...grpc.CallOption) (*TokenUpdateResponse, error) {
	out := new(TokenUpdateResponse)
	if err := c.cc.Invoke(ctx, "/cmfanout.TokenService/Update", in, out, withJSONSubtype(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tokenServiceClient) Invalidate(ctx context.Context, in *TokenInvalidateRequest, opts ...grpc.CallOption) (*TokenInvalidateResponse, error) {
	out := new(TokenInvalidateResponse)
	if err := c.cc.Invoke(ctx, "/cmfanout.TokenService/Invalidate", in, out, withJSONSubtype(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tokenServiceClient) Subscribe(ctx context.Context, in *TokenSubscribeRequest, opts ...grpc.CallOption) (TokenService_SubscribeClient, error) {
	stream, err := c.cc.NewStream(ctx, &TokenService_ServiceDesc.Streams[0], "/cmfanout.TokenService/Subscribe", withJSONSubtype(opts)...)
	if err != nil {
		return nil, err
	}
	x := &tokenServiceSubscribeClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type tokenServiceSubscribeClient struct {
	grpc.ClientStream
}

func (x *tokenServiceSubscribeClient) Recv() (*TokenBroadcast, error) {
	m := new(TokenBroadcast)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type tokenServiceSubscribeServer struct {
	grpc.ServerStream
}

func (x *tokenServiceSubscribeServer) Send(m *TokenBroadcast) error {
	return x.ServerStream.SendMsg(m)
}

func _TokenService_Register_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(TokenRegisterRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TokenServiceServer).Register(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/cmfanout.TokenService/Register"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TokenServiceServer).Register(ctx, req.(*TokenRegisterRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TokenService_Update_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(TokenUpdateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TokenServiceServer).Update(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/cmfanout.TokenService/Update"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TokenServiceServer).Update(ctx, req.(*TokenUpdateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TokenService_Invalidate_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(TokenInvalidateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TokenServiceServer).Invalidate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/cmfanout.TokenService/Invalidate"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TokenServiceServer).Invalidate(ctx, req.(*TokenInvalidateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TokenService_Subscribe_Handler(srv any, stream grpc.ServerStream) error {
	m := new(TokenSubscribeRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(TokenServiceServer).Subscribe(m, &tokenServiceSubscribeServer{stream})
}

// TokenService_ServiceDesc is the grpc.ServiceDesc for TokenService.
var TokenService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "cmfanout.TokenService",
	HandlerType: (*TokenServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: _TokenService_Register_Handler},
		{MethodName: "Update", Handler: _TokenService_Update_Handler},
		{MethodName: "Invalidate", Handler: _TokenService_Invalidate_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Subscribe", Handler: _TokenService_Subscribe_Handler, ServerStreams: true},
	},
	Metadata: "cmfanout.proto",
}

// RegisterTokenServiceServer registers srv on s.
func RegisterTokenServiceServer(s grpc.ServiceRegistrar, srv TokenServiceServer) {
	s.RegisterService(&TokenService_ServiceDesc, srv)
}
