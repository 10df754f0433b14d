package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const distributionServiceName = "distribution.DistributionService"

// DistributionServiceServer exchanges well known protobuf types so no
// generated package is needed.
type DistributionServiceServer interface {
	GetSnapshot(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	PreviewAllocation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExpireDueLeads(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

var DistributionServiceDesc = grpc.ServiceDesc{
	ServiceName: distributionServiceName,
	HandlerType: (*DistributionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetSnapshot", Handler: getSnapshotHandler},
		{MethodName: "PreviewAllocation", Handler: previewAllocationHandler},
		{MethodName: "ExpireDueLeads", Handler: expireDueLeadsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "distribution.proto",
}

func RegisterDistributionServiceServer(s grpc.ServiceRegistrar, srv DistributionServiceServer) {
	s.RegisterService(&DistributionServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + distributionServiceName + "/" + name
}

func getSnapshotHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DistributionServiceServer).GetSnapshot(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("GetSnapshot")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DistributionServiceServer).GetSnapshot(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func previewAllocationHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DistributionServiceServer).PreviewAllocation(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("PreviewAllocation")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DistributionServiceServer).PreviewAllocation(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func expireDueLeadsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DistributionServiceServer).ExpireDueLeads(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("ExpireDueLeads")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DistributionServiceServer).ExpireDueLeads(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

type DistributionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDistributionServiceClient(cc grpc.ClientConnInterface) *DistributionServiceClient {
	return &DistributionServiceClient{cc: cc}
}

func (c *DistributionServiceClient) GetSnapshot(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("GetSnapshot"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DistributionServiceClient) PreviewAllocation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("PreviewAllocation"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DistributionServiceClient) ExpireDueLeads(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("ExpireDueLeads"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
