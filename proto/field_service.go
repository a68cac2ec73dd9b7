// Package proto defines the antcolony.FieldService gRPC service. Requests and replies travel
// as google.protobuf.Struct messages holding the JSON form of the shared types, so the
// service descriptor below is maintained by hand rather than generated.
package proto

import (
	"context"
	"encoding/json"
	"fmt"

	"antcolony/shared"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	FieldService_GetGridState_FullMethodName   = "/antcolony.FieldService/GetGridState"
	FieldService_SignalGradient_FullMethodName = "/antcolony.FieldService/SignalGradient"
	FieldService_Deposit_FullMethodName        = "/antcolony.FieldService/Deposit"
	FieldService_PlaceFood_FullMethodName      = "/antcolony.FieldService/PlaceFood"
	FieldService_GrabFood_FullMethodName       = "/antcolony.FieldService/GrabFood"
	FieldService_PlaceAnt_FullMethodName       = "/antcolony.FieldService/PlaceAnt"
	FieldService_RemoveAnt_FullMethodName      = "/antcolony.FieldService/RemoveAnt"
)

// FieldServiceServer is the server API for FieldService.
// All implementations must embed UnimplementedFieldServiceServer.
type FieldServiceServer interface {
	GetGridState(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SignalGradient(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Deposit(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	PlaceFood(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GrabFood(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PlaceAnt(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveAnt(context.Context, *structpb.Struct) (*structpb.Struct, error)
	mustEmbedUnimplementedFieldServiceServer()
}

// UnimplementedFieldServiceServer must be embedded to have forward compatible implementations
type UnimplementedFieldServiceServer struct{}

func (UnimplementedFieldServiceServer) GetGridState(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetGridState not implemented")
}
func (UnimplementedFieldServiceServer) SignalGradient(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SignalGradient not implemented")
}
func (UnimplementedFieldServiceServer) Deposit(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Deposit not implemented")
}
func (UnimplementedFieldServiceServer) PlaceFood(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PlaceFood not implemented")
}
func (UnimplementedFieldServiceServer) GrabFood(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GrabFood not implemented")
}
func (UnimplementedFieldServiceServer) PlaceAnt(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PlaceAnt not implemented")
}
func (UnimplementedFieldServiceServer) RemoveAnt(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RemoveAnt not implemented")
}
func (UnimplementedFieldServiceServer) mustEmbedUnimplementedFieldServiceServer() {}

// RegisterFieldServiceServer registers srv with s
func RegisterFieldServiceServer(s grpc.ServiceRegistrar, srv FieldServiceServer) {
	s.RegisterService(&FieldService_ServiceDesc, srv)
}

func _FieldService_GetGridState_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FieldServiceServer).GetGridState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FieldService_GetGridState_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FieldServiceServer).GetGridState(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// structHandler builds the handler for a method taking a Struct request
func structHandler(fullMethod string, call func(FieldServiceServer, context.Context, *structpb.Struct) (interface{}, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FieldServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(FieldServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FieldService_ServiceDesc is the grpc.ServiceDesc for FieldService
var FieldService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "antcolony.FieldService",
	HandlerType: (*FieldServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetGridState",
			Handler:    _FieldService_GetGridState_Handler,
		},
		{
			MethodName: "SignalGradient",
			Handler: structHandler(FieldService_SignalGradient_FullMethodName,
				func(s FieldServiceServer, ctx context.Context, in *structpb.Struct) (interface{}, error) {
					return s.SignalGradient(ctx, in)
				}),
		},
		{
			MethodName: "Deposit",
			Handler: structHandler(FieldService_Deposit_FullMethodName,
				func(s FieldServiceServer, ctx context.Context, in *structpb.Struct) (interface{}, error) {
					return s.Deposit(ctx, in)
				}),
		},
		{
			MethodName: "PlaceFood",
			Handler: structHandler(FieldService_PlaceFood_FullMethodName,
				func(s FieldServiceServer, ctx context.Context, in *structpb.Struct) (interface{}, error) {
					return s.PlaceFood(ctx, in)
				}),
		},
		{
			MethodName: "GrabFood",
			Handler: structHandler(FieldService_GrabFood_FullMethodName,
				func(s FieldServiceServer, ctx context.Context, in *structpb.Struct) (interface{}, error) {
					return s.GrabFood(ctx, in)
				}),
		},
		{
			MethodName: "PlaceAnt",
			Handler: structHandler(FieldService_PlaceAnt_FullMethodName,
				func(s FieldServiceServer, ctx context.Context, in *structpb.Struct) (interface{}, error) {
					return s.PlaceAnt(ctx, in)
				}),
		},
		{
			MethodName: "RemoveAnt",
			Handler: structHandler(FieldService_RemoveAnt_FullMethodName,
				func(s FieldServiceServer, ctx context.Context, in *structpb.Struct) (interface{}, error) {
					return s.RemoveAnt(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "antcolony/field_service",
}

// FieldServiceClient is a typed client for FieldService
type FieldServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewFieldServiceClient wraps a client connection
func NewFieldServiceClient(cc grpc.ClientConnInterface) *FieldServiceClient {
	return &FieldServiceClient{cc: cc}
}

// GetGridState fetches the current field snapshot
func (c *FieldServiceClient) GetGridState(ctx context.Context, opts ...grpc.CallOption) (shared.GridState, error) {
	var state shared.GridState
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FieldService_GetGridState_FullMethodName, &emptypb.Empty{}, out, opts...); err != nil {
		return state, err
	}
	err := FromStruct(out, &state)
	return state, err
}

// SignalGradient senses the gradient around a position
func (c *FieldServiceClient) SignalGradient(ctx context.Context, req shared.GradientRequest, opts ...grpc.CallOption) (shared.Vector, error) {
	var resp shared.GradientResponse
	err := c.call(ctx, FieldService_SignalGradient_FullMethodName, req, &resp, opts...)
	return resp.Gradient, err
}

// Deposit lays a signal down on the field
func (c *FieldServiceClient) Deposit(ctx context.Context, req shared.DepositRequest, opts ...grpc.CallOption) error {
	in, err := ToStruct(req)
	if err != nil {
		return err
	}
	return c.cc.Invoke(ctx, FieldService_Deposit_FullMethodName, in, &emptypb.Empty{}, opts...)
}

// PlaceFood adds food to a cell
func (c *FieldServiceClient) PlaceFood(ctx context.Context, req shared.FoodRequest, opts ...grpc.CallOption) (shared.FoodResponse, error) {
	var resp shared.FoodResponse
	err := c.call(ctx, FieldService_PlaceFood_FullMethodName, req, &resp, opts...)
	return resp, err
}

// GrabFood takes food from a cell
func (c *FieldServiceClient) GrabFood(ctx context.Context, req shared.FoodRequest, opts ...grpc.CallOption) (shared.FoodResponse, error) {
	var resp shared.FoodResponse
	err := c.call(ctx, FieldService_GrabFood_FullMethodName, req, &resp, opts...)
	return resp, err
}

// PlaceAnt puts an ant on the grid, or moves it there if it is already placed
func (c *FieldServiceClient) PlaceAnt(ctx context.Context, req shared.AntRequest, opts ...grpc.CallOption) (shared.AntRequest, error) {
	var resp shared.AntRequest
	err := c.call(ctx, FieldService_PlaceAnt_FullMethodName, req, &resp, opts...)
	return resp, err
}

// RemoveAnt takes an ant off the grid and returns where it was
func (c *FieldServiceClient) RemoveAnt(ctx context.Context, id int, opts ...grpc.CallOption) (shared.AntRequest, error) {
	var resp shared.AntRequest
	err := c.call(ctx, FieldService_RemoveAnt_FullMethodName, shared.AntRequest{ID: id}, &resp, opts...)
	return resp, err
}

func (c *FieldServiceClient) call(ctx context.Context, method string, req, resp interface{}, opts ...grpc.CallOption) error {
	in, err := ToStruct(req)
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return err
	}
	return FromStruct(out, resp)
}

// ToStruct converts a JSON-tagged value into a Struct message
func ToStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}
	return structpb.NewStruct(fields)
}

// FromStruct decodes a Struct message into a JSON-tagged value
func FromStruct(s *structpb.Struct, v interface{}) error {
	raw, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decoding %T: %w", v, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding %T: %w", v, err)
	}
	return nil
}
