package mocks

import (
	"context"

	"finpol-compliance/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockClientInterface является моком для redis.ClientInterface интерфейса
type MockClientInterface struct {
	mock.Mock
}

// SaveOutcome мок для SaveOutcome
func (m *MockClientInterface) SaveOutcome(ctx context.Context, outcome *models.RiskOutcome) error {
	args := m.Called(ctx, outcome)
	return args.Error(0)
}

// GetOutcome мок для GetOutcome
func (m *MockClientInterface) GetOutcome(ctx context.Context, transactionID string) (*models.RiskOutcome, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskOutcome), args.Error(1)
}

// DeleteOutcome мок для DeleteOutcome
func (m *MockClientInterface) DeleteOutcome(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// IncrementRiskStats мок для IncrementRiskStats
func (m *MockClientInterface) IncrementRiskStats(ctx context.Context, level models.RiskLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

// AddRiskStats мок для AddRiskStats
func (m *MockClientInterface) AddRiskStats(ctx context.Context, level models.RiskLevel, n int64) error {
	args := m.Called(ctx, level, n)
	return args.Error(0)
}

// GetRiskStats мок для GetRiskStats
func (m *MockClientInterface) GetRiskStats(ctx context.Context) (map[models.RiskLevel]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.RiskLevel]int64), args.Error(1)
}

// SaveSearchResults мок для SaveSearchResults
func (m *MockClientInterface) SaveSearchResults(ctx context.Context, query string, topK int, matches []models.RegulationMatch) error {
	args := m.Called(ctx, query, topK, matches)
	return args.Error(0)
}

// GetSearchResults мок для GetSearchResults
func (m *MockClientInterface) GetSearchResults(ctx context.Context, query string, topK int) ([]models.RegulationMatch, bool, error) {
	args := m.Called(ctx, query, topK)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]models.RegulationMatch), args.Bool(1), args.Error(2)
}

// IsAccountBlacklisted мок для IsAccountBlacklisted
func (m *MockClientInterface) IsAccountBlacklisted(ctx context.Context, accountNumber string) (bool, error) {
	args := m.Called(ctx, accountNumber)
	return args.Bool(0), args.Error(1)
}

// IsHighRiskCountry мок для IsHighRiskCountry
func (m *MockClientInterface) IsHighRiskCountry(ctx context.Context, country string) (bool, error) {
	args := m.Called(ctx, country)
	return args.Bool(0), args.Error(1)
}

// InitializeWatchlists мок для InitializeWatchlists
func (m *MockClientInterface) InitializeWatchlists(ctx context.Context, highRiskCountries []string) error {
	args := m.Called(ctx, highRiskCountries)
	return args.Error(0)
}

// AddToBlacklist мок для AddToBlacklist
func (m *MockClientInterface) AddToBlacklist(ctx context.Context, accountNumber string) error {
	args := m.Called(ctx, accountNumber)
	return args.Error(0)
}

// ClearTransactionData мок для ClearTransactionData
func (m *MockClientInterface) ClearTransactionData(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Ping мок для Ping
func (m *MockClientInterface) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close мок для Close
func (m *MockClientInterface) Close() error {
	args := m.Called()
	return args.Error(0)
}
