package mocks

import (
	"context"
	"time"

	"finpol-compliance/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository является моком для storage.TransactionRepository интерфейса
type MockTransactionRepository struct {
	mock.Mock
}

// SaveTransaction мок для SaveTransaction
func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// UpdateTransactionRisk мок для UpdateTransactionRisk
func (m *MockTransactionRepository) UpdateTransactionRisk(ctx context.Context, id string, riskScore int, riskLevel models.RiskLevel, analyzedAt time.Time) error {
	args := m.Called(ctx, id, riskScore, riskLevel, analyzedAt)
	return args.Error(0)
}

// GetTransaction мок для GetTransaction
func (m *MockTransactionRepository) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

// ListTransactions мок для ListTransactions
func (m *MockTransactionRepository) ListTransactions(ctx context.Context, limit, offset int) ([]*models.Transaction, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

// DeleteTransaction мок для DeleteTransaction
func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Ping мок для Ping
func (m *MockTransactionRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockRegulationRepository является моком для storage.RegulationRepository интерфейса
type MockRegulationRepository struct {
	mock.Mock
}

// UpsertRegulations мок для UpsertRegulations
func (m *MockRegulationRepository) UpsertRegulations(ctx context.Context, regs []models.Regulation) error {
	args := m.Called(ctx, regs)
	return args.Error(0)
}

// ListRegulations мок для ListRegulations
func (m *MockRegulationRepository) ListRegulations(ctx context.Context) ([]models.Regulation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Regulation), args.Error(1)
}
