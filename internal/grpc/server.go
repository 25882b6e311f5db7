package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"finpol-compliance/internal/apperrors"
	"finpol-compliance/internal/generator"
	"finpol-compliance/internal/models"
	"finpol-compliance/internal/services"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ComplianceGRPCServer реализует ComplianceServiceServer поверх сервисного слоя
type ComplianceGRPCServer struct {
	transactions services.TransactionService
	regulations  services.RegulationService
	generator    *generator.TransactionGenerator
}

func NewComplianceGRPCServer(
	transactions services.TransactionService,
	regulations services.RegulationService,
) *ComplianceGRPCServer {
	return &ComplianceGRPCServer{
		transactions: transactions,
		regulations:  regulations,
		generator:    generator.NewTransactionGenerator(),
	}
}

type getTransactionRequest struct {
	ID string `json:"id"`
}

type reportRequest struct {
	TransactionID string           `json:"transaction_id"`
	RiskScore     int              `json:"risk_score"`
	RiskLevel     models.RiskLevel `json:"risk_level"`
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type searchResponse struct {
	Query   string                   `json:"query"`
	Results []models.RegulationMatch `json:"results"`
	Count   int                      `json:"count"`
}

type generateRequest struct {
	Profile string `json:"profile"`
}

// CreateTransaction создает и оценивает транзакцию.
// Если оценщик недоступен, транзакция уже сохранена, а ее id передается в тексте ошибки.
func (s *ComplianceGRPCServer) CreateTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in models.TransactionInput
	if err := fromStruct(req, &in); err != nil {
		return nil, err
	}

	tx, err := s.transactions.Create(ctx, &in)
	if err != nil {
		if tx != nil && errors.Is(err, apperrors.ErrEvaluatorUnavailable) {
			return nil, status.Errorf(codes.Unavailable, "%v (transaction %s stored without risk)", err, tx.ID)
		}
		return nil, toStatus(err)
	}
	return toStruct(tx)
}

// GetTransaction возвращает транзакцию по id
func (s *ComplianceGRPCServer) GetTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in getTransactionRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	tx, err := s.transactions.Get(ctx, in.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(tx)
}

// AnalyzeTransaction оценивает сохраненную транзакцию или переданные атрибуты
func (s *ComplianceGRPCServer) AnalyzeTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in models.AnalyzeRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, err
	}

	outcome, err := s.transactions.Analyze(ctx, &in)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(outcome)
}

// GenerateComplianceReport формирует отчет о соответствии для транзакции
func (s *ComplianceGRPCServer) GenerateComplianceReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in reportRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, err
	}

	report, err := s.transactions.GenerateReport(ctx, in.TransactionID, in.RiskScore, in.RiskLevel)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(report)
}

// SearchRegulations ищет регуляции по ключевым словам
func (s *ComplianceGRPCServer) SearchRegulations(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in searchRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, err
	}

	matches, err := s.regulations.Search(ctx, in.Query, in.TopK)
	if err != nil {
		return nil, toStatus(err)
	}
	if matches == nil {
		matches = []models.RegulationMatch{}
	}
	return toStruct(searchResponse{Query: in.Query, Results: matches, Count: len(matches)})
}

// GenerateRandomTransaction генерирует случайные входные данные транзакции
func (s *ComplianceGRPCServer) GenerateRandomTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in generateRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, err
	}
	return toStruct(s.generator.Generate(in.Profile))
}

// toStatus переводит ошибку сервиса в gRPC статус
func toStatus(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, apperrors.ErrInvalidFile):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, apperrors.ErrEvaluatorUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, apperrors.ErrReportGenerationFailed):
		return status.Error(codes.Internal, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		log.Printf("gRPC request failed: %v", err)
		return status.Error(codes.Internal, "internal server error")
	}
}

// toStruct переводит значение в Struct через его JSON-представление
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// fromStruct разбирает Struct в out; ошибка формата - InvalidArgument
func fromStruct(s *structpb.Struct, out interface{}) error {
	raw, err := json.Marshal(s.AsMap())
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	return nil
}

// loggingInterceptor пишет метод, код ответа и длительность вызова
func loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	log.Printf("gRPC %s %s %v", info.FullMethod, status.Code(err), time.Since(start))
	return resp, err
}

// NewServer создает gRPC сервер с зарегистрированным ComplianceService
func NewServer(server ComplianceServiceServer) *grpc.Server {
	s := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor))
	RegisterComplianceServiceServer(s, server)

	// Включаем reflection API для grpcurl и других инструментов
	reflection.Register(s)
	return s
}

// StartGRPCServer слушает порт и обслуживает запросы до остановки сервера
func StartGRPCServer(s *grpc.Server, port int) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen: %v", err)
	}

	log.Printf("gRPC server listening on port %d", port)
	if err := s.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %v", err)
	}

	return nil
}
