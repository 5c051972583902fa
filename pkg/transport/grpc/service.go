package grpc

// Hand-written in the shape protoc-gen-go-grpc produces, modeled on a
// one-RPC service: Submit carries a gob-encoded requestEnvelope inside a
// well-known wrapperspb.BytesValue message and returns a gob-encoded
// responseEnvelope the same way, so the service needs no .proto file or
// generated message types of its own.

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
	wrapperspb "google.golang.org/protobuf/types/known/wrapperspb"
)

const _ = grpc.SupportPackageIsVersion7

// GroupTransportClient is the client API for the GroupTransport service.
type GroupTransportClient interface {
	Submit(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type groupTransportClient struct {
	cc grpc.ClientConnInterface
}

func NewGroupTransportClient(cc grpc.ClientConnInterface) GroupTransportClient {
	return &groupTransportClient{cc}
}

func (c *groupTransportClient) Submit(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/groupsm.GroupTransport/Submit", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GroupTransportServer is the server API for the GroupTransport service.
// All implementations must embed UnimplementedGroupTransportServer for
// forward compatibility.
type GroupTransportServer interface {
	Submit(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	mustEmbedUnimplementedGroupTransportServer()
}

type UnimplementedGroupTransportServer struct{}

func (UnimplementedGroupTransportServer) Submit(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Submit not implemented")
}
func (UnimplementedGroupTransportServer) mustEmbedUnimplementedGroupTransportServer() {}

type UnsafeGroupTransportServer interface {
	mustEmbedUnimplementedGroupTransportServer()
}

func RegisterGroupTransportServer(s grpc.ServiceRegistrar, srv GroupTransportServer) {
	s.RegisterService(&GroupTransport_ServiceDesc, srv)
}

func _GroupTransport_Submit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GroupTransportServer).Submit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/groupsm.GroupTransport/Submit",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GroupTransportServer).Submit(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// GroupTransport_ServiceDesc is the grpc.ServiceDesc for the GroupTransport
// service. Only intended for direct use with grpc.RegisterService.
var GroupTransport_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "groupsm.GroupTransport",
	HandlerType: (*GroupTransportServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Submit",
			Handler:    _GroupTransport_Submit_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "transport.proto",
}
