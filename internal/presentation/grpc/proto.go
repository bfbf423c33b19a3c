package grpc

// proto.go defines the gRPC server interface derived from eis/risk/v1/risk.proto.
// This file serves as a stand-in for buf-generated code. Once `buf generate` is
// run, replace this file with the import from the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RiskServiceServer is the server API for RiskService.
type RiskServiceServer interface {
	ScoreStudent(context.Context, *ScoreStudentRequest) (*ScoreStudentResponse, error)
	GetStudentRisk(context.Context, *GetStudentRiskRequest) (*GetStudentRiskResponse, error)
	ListHighRisk(context.Context, *ListHighRiskRequest) (*ListHighRiskResponse, error)
	mustEmbedUnimplementedRiskServiceServer()
}

// UnimplementedRiskServiceServer provides forward-compatible default implementations.
type UnimplementedRiskServiceServer struct{}

func (UnimplementedRiskServiceServer) ScoreStudent(context.Context, *ScoreStudentRequest) (*ScoreStudentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreStudent not implemented")
}
func (UnimplementedRiskServiceServer) GetStudentRisk(context.Context, *GetStudentRiskRequest) (*GetStudentRiskResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetStudentRisk not implemented")
}
func (UnimplementedRiskServiceServer) ListHighRisk(context.Context, *ListHighRiskRequest) (*ListHighRiskResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListHighRisk not implemented")
}
func (UnimplementedRiskServiceServer) mustEmbedUnimplementedRiskServiceServer() {}

// RegisterRiskServiceServer registers the RiskServiceServer with the gRPC server.
func RegisterRiskServiceServer(s *grpclib.Server, srv RiskServiceServer) {
	s.RegisterService(&_RiskService_serviceDesc, srv)
}

var _RiskService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "eis.risk.v1.RiskService",
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ScoreStudent", Handler: _RiskService_ScoreStudent_Handler},
		{MethodName: "GetStudentRisk", Handler: _RiskService_GetStudentRisk_Handler},
		{MethodName: "ListHighRisk", Handler: _RiskService_ListHighRisk_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _RiskService_ScoreStudent_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScoreStudentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).ScoreStudent(ctx, req)
}

func _RiskService_GetStudentRisk_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetStudentRiskRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).GetStudentRisk(ctx, req)
}

func _RiskService_ListHighRisk_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListHighRiskRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).ListHighRisk(ctx, req)
}
