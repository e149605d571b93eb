package proto

import (
	"context"

	"google.golang.org/grpc"
)

// MessageServiceServer is the server API for MessageService.
type MessageServiceServer interface {
	Send(context.Context, *MessageSendRequest) (*MessageSendResponse, error)
	Subscribe(*MessageSubscribeRequest, MessageService_SubscribeServer) error
}

// MessageServiceClient is the client API for MessageService.
type MessageServiceClient interface {
	Send(ctx context.Context, in *MessageSendRequest, opts ...grpc.CallOption) (*MessageSendResponse, error)
	Subscribe(ctx context.Context, in *MessageSubscribeRequest, opts ...grpc.CallOption) (MessageService_SubscribeClient, error)
}

// MessageService_SubscribeServer is the server-side stream handle for
// MessageService.Subscribe.
type MessageService_SubscribeServer interface {
	Send(*MessageBroadcast) error
	grpc.ServerStream
}

// MessageService_SubscribeClient is the client-side stream handle for
// MessageService.Subscribe.
type MessageService_SubscribeClient interface {
	Recv() (*MessageBroadcast, error)
	grpc.ClientStream
}

type messageServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMessageServiceClient builds a MessageServiceClient over cc.
func NewMessageServiceClient(cc grpc.ClientConnInterface) MessageServiceClient {
	return &messageServiceClient{cc: cc}
}

func (c *messageServiceClient) Send(ctx context.Context, in *MessageSendRequest, opts ...grpc.CallOption) (*MessageSendResponse, error) {
	out := new(MessageSendResponse)
	if err := c.cc.Invoke(ctx, "/cmfanout.MessageService/Send", in, out, withJSONSubtype(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *messageServiceClient) Subscribe(ctx context.Context, in *MessageSubscribeRequest, opts ...grpc.CallOption) (MessageService_SubscribeClient, error) {
	stream, err := c.cc.NewStream(ctx, &MessageService_ServiceDesc.Streams[0], "/cmfanout.MessageService/Subscribe", withJSONSubtype(opts)...)
	if err != nil {
		return nil, err
	}
	x := &messageServiceSubscribeClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type messageServiceSubscribeClient struct {
	grpc.ClientStream
}

func (x *messageServiceSubscribeClient) Recv() (*MessageBroadcast, error) {
	m := new(MessageBroadcast)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type messageServiceSubscribeServer struct {
	grpc.ServerStream
}

func (x *messageServiceSubscribeServer) Send(m *MessageBroadcast) error {
	return x.ServerStream.SendMsg(m)
}

func _MessageService_Send_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(MessageSendRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MessageServiceServer).Send(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/cmfanout.MessageService/Send"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MessageServiceServer).Send(ctx, req.(*MessageSendRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MessageService_Subscribe_Handler(srv any, stream grpc.ServerStream) error {
	m := new(MessageSubscribeRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(MessageServiceServer).Subscribe(m, &messageServiceSubscribeServer{stream})
}

// MessageService_ServiceDesc is the grpc.ServiceDesc for MessageService.
var MessageService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "cmfanout.MessageService",
	HandlerType: (*MessageServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Send", Handler: _MessageService_Send_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Subscribe", Handler: _MessageService_Subscribe_Handler, ServerStreams: true},
	},
	Metadata: "cmfanout.proto",
}

// RegisterMessageServiceServer registers srv on s.
func RegisterMessageServiceServer(s grpc.ServiceRegistrar, srv MessageServiceServer) {
	s.RegisterService(&MessageService_ServiceDesc, srv)
}
