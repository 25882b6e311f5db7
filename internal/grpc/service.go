package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "finpol.v1.ComplianceService"

const (
	methodCreateTransaction         = "/" + serviceName + "/CreateTransaction"
	methodGetTransaction            = "/" + serviceName + "/GetTransaction"
	methodAnalyzeTransaction        = "/" + serviceName + "/AnalyzeTransaction"
	methodGenerateComplianceReport  = "/" + serviceName + "/GenerateComplianceReport"
	methodSearchRegulations         = "/" + serviceName + "/SearchRegulations"
	methodGenerateRandomTransaction = "/" + serviceName + "/GenerateRandomTransaction"
)

// ComplianceServiceServer - серверная часть finpol.v1.ComplianceService.
// Сообщения передаются как google.protobuf.Struct с теми же полями, что и JSON в REST.
type ComplianceServiceServer interface {
	CreateTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AnalyzeTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GenerateComplianceReport(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SearchRegulations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GenerateRandomTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterComplianceServiceServer регистрирует реализацию на gRPC сервере
func RegisterComplianceServiceServer(s grpc.ServiceRegistrar, srv ComplianceServiceServer) {
	s.RegisterService(&ComplianceServiceDesc, srv)
}

type unaryCall func(ComplianceServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler собирает обработчик метода так же, как это делает protoc-gen-go-grpc
func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ComplianceServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ComplianceServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ComplianceServiceDesc - описание сервиса finpol.v1.ComplianceService
var ComplianceServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ComplianceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateTransaction",
			Handler:    unaryHandler(methodCreateTransaction, ComplianceServiceServer.CreateTransaction),
		},
		{
			MethodName: "GetTransaction",
			Handler:    unaryHandler(methodGetTransaction, ComplianceServiceServer.GetTransaction),
		},
		{
			MethodName: "AnalyzeTransaction",
			Handler:    unaryHandler(methodAnalyzeTransaction, ComplianceServiceServer.AnalyzeTransaction),
		},
		{
			MethodName: "GenerateComplianceReport",
			Handler:    unaryHandler(methodGenerateComplianceReport, ComplianceServiceServer.GenerateComplianceReport),
		},
		{
			MethodName: "SearchRegulations",
			Handler:    unaryHandler(methodSearchRegulations, ComplianceServiceServer.SearchRegulations),
		},
		{
			MethodName: "GenerateRandomTransaction",
			Handler:    unaryHandler(methodGenerateRandomTransaction, ComplianceServiceServer.GenerateRandomTransaction),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "finpol/v1/compliance.proto",
}
