package mocks

import (
	"context"

	"finpol-compliance/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockTransactionService является моком для services.TransactionService интерфейса
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Create(ctx context.Context, in *models.TransactionInput) (*models.Transaction, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionService) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.RiskOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskOutcome), args.Error(1)
}

func (m *MockTransactionService) GenerateReport(ctx context.Context, id string, riskScore int, riskLevel models.RiskLevel) (*models.ComplianceReport, error) {
	args := m.Called(ctx, id, riskScore, riskLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComplianceReport), args.Error(1)
}

func (m *MockTransactionService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionService) List(ctx context.Context, limit, offset int) ([]*models.Transaction, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *MockTransactionService) Get(ctx context.Context, id string) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

// MockBulkService является моком для services.BulkService интерфейса
type MockBulkService struct {
	mock.Mock
}

func (m *MockBulkService) Ingest(ctx context.Context, req *models.BulkUploadRequest) (*models.BulkUploadSummary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BulkUploadSummary), args.Error(1)
}

func (m *MockBulkService) IngestAndReport(ctx context.Context, req *models.BulkUploadRequest) ([]byte, *models.BulkUploadSummary, error) {
	args := m.Called(ctx, req)
	var pdf []byte
	if args.Get(0) != nil {
		pdf = args.Get(0).([]byte)
	}
	var summary *models.BulkUploadSummary
	if args.Get(1) != nil {
		summary = args.Get(1).(*models.BulkUploadSummary)
	}
	return pdf, summary, args.Error(2)
}

// MockRiskEvaluator является моком для services.RiskEvaluator интерфейса
type MockRiskEvaluator struct {
	mock.Mock
}

func (m *MockRiskEvaluator) Evaluate(ctx context.Context, in *models.TransactionInput) (*models.RiskAnalysis, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskAnalysis), args.Error(1)
}

// MockRegulationService является моком для services.RegulationService интерфейса
type MockRegulationService struct {
	mock.Mock
}

func (m *MockRegulationService) Search(ctx context.Context, query string, topK int) ([]models.RegulationMatch, error) {
	args := m.Called(ctx, query, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RegulationMatch), args.Error(1)
}

func (m *MockRegulationService) List(ctx context.Context) ([]models.Regulation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Regulation), args.Error(1)
}

// MockComplianceReporter является моком для services.ComplianceReporter интерфейса
type MockComplianceReporter struct {
	mock.Mock
}

func (m *MockComplianceReporter) Explain(ctx context.Context, transactionID string, in *models.TransactionInput, analysis *models.RiskAnalysis, regs []models.RegulationMatch) (string, error) {
	args := m.Called(ctx, transactionID, in, analysis, regs)
	return args.String(0), args.Error(1)
}

func (m *MockComplianceReporter) Report(ctx context.Context, req *models.ReportRequest) (*models.ComplianceReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComplianceReport), args.Error(1)
}
