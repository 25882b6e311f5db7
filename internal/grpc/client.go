package grpc

import (
	"context"
	"fmt"

	"finpol-compliance/internal/models"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client - публичный типизированный клиент finpol.v1.ComplianceService
// для соседних сервисов и утилит. Сообщения передаются как
// google.protobuf.Struct, так что сгенерированные заглушки не нужны.
//
//	conn, err := grpc.NewClient("localhost:9090",
//		grpc.WithTransportCredentials(insecure.NewCredentials()))
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//	outcome, err := finpolgrpc.NewClient(conn).AnalyzeTransaction(ctx, req)
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient оборачивает готовое соединение; управление им остается у вызывающего
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) CreateTransaction(ctx context.Context, in *models.TransactionInput, opts ...grpc.CallOption) (*models.Transaction, error) {
	out := new(models.Transaction)
	if err := c.invoke(ctx, methodCreateTransaction, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string, opts ...grpc.CallOption) (*models.Transaction, error) {
	out := new(models.Transaction)
	if err := c.invoke(ctx, methodGetTransaction, getTransactionRequest{ID: id}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AnalyzeTransaction(ctx context.Context, req *models.AnalyzeRequest, opts ...grpc.CallOption) (*models.RiskOutcome, error) {
	out := new(models.RiskOutcome)
	if err := c.invoke(ctx, methodAnalyzeTransaction, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GenerateComplianceReport(ctx context.Context, id string, riskScore int, riskLevel models.RiskLevel, opts ...grpc.CallOption) (*models.ComplianceReport, error) {
	req := reportRequest{TransactionID: id, RiskScore: riskScore, RiskLevel: riskLevel}
	out := new(models.ComplianceReport)
	if err := c.invoke(ctx, methodGenerateComplianceReport, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchRegulations(ctx context.Context, query string, topK int, opts ...grpc.CallOption) ([]models.RegulationMatch, error) {
	var out searchResponse
	if err := c.invoke(ctx, methodSearchRegulations, searchRequest{Query: query, TopK: topK}, &out, opts...); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) GenerateRandomTransaction(ctx context.Context, profile string, opts ...grpc.CallOption) (*models.TransactionInput, error) {
	out := new(models.TransactionInput)
	if err := c.invoke(ctx, methodGenerateRandomTransaction, generateRequest{Profile: profile}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) invoke(ctx context.Context, method string, req, out interface{}, opts ...grpc.CallOption) error {
	in, err := toStruct(req)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, resp, opts...); err != nil {
		return err
	}
	if err := fromStruct(resp, out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}
