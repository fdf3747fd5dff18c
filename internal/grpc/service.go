package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "draft.v1.DraftService"

// DraftServiceServer is the server API for draft.v1.DraftService.
type DraftServiceServer interface {
	GetState(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Dispatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DraftNext(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRankings(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ClearCache(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	StreamEvents(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error
}

// ServiceDesc describes draft.v1.DraftService. Messages are well-known
// types, so no generated code is needed.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*DraftServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetState", newEmpty, DraftServiceServer.GetState),
		unary("Dispatch", newStruct, DraftServiceServer.Dispatch),
		unary("DraftNext", newStruct, DraftServiceServer.DraftNext),
		unary("GetRankings", newEmpty, DraftServiceServer.GetRankings),
		unary("ClearCache", newEmpty, DraftServiceServer.ClearCache),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamEvents",
			Handler:       streamEventsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "draft/v1/draft.proto",
}

func newEmpty() *emptypb.Empty    { return new(emptypb.Empty) }
func newStruct() *structpb.Struct { return new(structpb.Struct) }

func fullMethod(name string) string { return "/" + serviceName + "/" + name }

func unary[In proto.Message, Out any](name string, newIn func() In, call func(DraftServiceServer, context.Context, In) (Out, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newIn()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DraftServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DraftServiceServer), ctx, req.(In))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func streamEventsHandler(srv any, stream grpc.ServerStream) error {
	in := new(emptypb.Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(DraftServiceServer).StreamEvents(in, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
}

// Client is a thin client for draft.v1.DraftService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) GetState(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, fullMethod("GetState"), &emptypb.Empty{}, out, opts...)
}

func (c *Client) Dispatch(ctx context.Context, envelope *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, fullMethod("Dispatch"), envelope, out, opts...)
}

func (c *Client) DraftNext(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, fullMethod("DraftNext"), req, out, opts...)
}

func (c *Client) GetRankings(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, fullMethod("GetRankings"), &emptypb.Empty{}, out, opts...)
}

func (c *Client) ClearCache(ctx context.Context, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, fullMethod("ClearCache"), &emptypb.Empty{}, new(emptypb.Empty), opts...)
}

func (c *Client) StreamEvents(ctx context.Context, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], fullMethod("StreamEvents"), opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[emptypb.Empty, structpb.Struct]{ClientStream: stream}
	if err := x.SendMsg(&emptypb.Empty{}); err != nil {
		return nil, err
	}
	if err := x.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
