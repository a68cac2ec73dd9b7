package main

import (
	"context"
	"errors"
	"log"

	pb "antcolony/proto"
	"antcolony/shared"
	"antcolony/world"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// GRPCServer implements the FieldServiceServer interface on top of the simulation core
type GRPCServer struct {
	pb.UnimplementedFieldServiceServer
	core *SimulationCore
}

var _ pb.FieldServiceServer = (*GRPCServer)(nil)

// NewGRPCServer creates a new gRPC field server
func NewGRPCServer(core *SimulationCore) *GRPCServer {
	return &GRPCServer{core: core}
}

// toStatus maps core errors onto gRPC status codes
func toStatus(err error) error {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrUnknownAnt):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, world.ErrCellOccupied):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func decode(in *structpb.Struct, v interface{}) error {
	if err := pb.FromStruct(in, v); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

func encode(v interface{}) (*structpb.Struct, error) {
	out, err := pb.ToStruct(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// GetGridState implements the GetGridState RPC
func (s *GRPCServer) GetGridState(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return encode(s.core.GetGridState())
}

// SignalGradient implements the SignalGradient RPC
func (s *GRPCServer) SignalGradient(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req shared.GradientRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	gradient, err := s.core.SignalGradient(req)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(shared.GradientResponse{Gradient: gradient})
}

// Deposit implements the Deposit RPC
func (s *GRPCServer) Deposit(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	var req shared.DepositRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if _, err := s.core.Deposit(req); err != nil {
		log.Printf("[grpc] Deposit failed: %v", err)
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// PlaceFood implements the PlaceFood RPC
func (s *GRPCServer) PlaceFood(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req shared.FoodRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	resp, err := s.core.PlaceFood(req)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(resp)
}

// GrabFood implements the GrabFood RPC
func (s *GRPCServer) GrabFood(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req shared.FoodRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	resp, err := s.core.GrabFood(req)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(resp)
}

// PlaceAnt implements the PlaceAnt RPC
func (s *GRPCServer) PlaceAnt(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req shared.AntRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	resp, err := s.core.PlaceAnt(req)
	if err != nil {
		log.Printf("[grpc] PlaceAnt failed: %v", err)
		return nil, toStatus(err)
	}
	return encode(resp)
}

// RemoveAnt implements the RemoveAnt RPC
func (s *GRPCServer) RemoveAnt(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req shared.AntRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	resp, err := s.core.RemoveAnt(req)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(resp)
}
