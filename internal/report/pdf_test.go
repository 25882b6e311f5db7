package report

import (
	"bytes"
	"testing"
	"time"

	"finpol-compliance/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(id string, amount int64, level models.RiskLevel, merchant, country string, factors ...string) models.BulkRecordResult {
	return models.BulkRecordResult{
		Transaction: &models.Transaction{
			ID:              id,
			Amount:          decimal.NewFromInt(amount),
			TransactionType: models.TransactionTransfer,
			MerchantType:    merchant,
			Country:         country,
		},
		Analysis: &models.RiskAnalysis{RiskLevel: level, Factors: factors},
	}
}

func sampleSummary() *models.BulkUploadSummary {
	results := []models.BulkRecordResult{
		result("TXN-1", 100, models.RiskLow, "retail", "India"),
		result("TXN-2", 2000000, models.RiskCritical, "crypto_exchange", "USA", "Transaction amount exceeds 1,000,000"),
		result("TXN-3", 1500000, models.RiskHigh, "retail", "India", "Transaction amount exceeds 1,000,000"),
		{Row: 4, Error: "invalid amount"},
	}
	return &models.BulkUploadSummary{
		Filename:          "statement.csv",
		TotalTransactions: 3,
		TotalAmount:       decimal.NewFromInt(3500100),
		RiskDistribution:  models.RiskCounts{Low: 1, High: 1, Critical: 1},
		ComplianceRate:    33.3,
		LowRiskCount:      1,
		HighRiskCount:     1,
		CriticalCount:     1,
		ErrorCount:        1,
		Regulations: []models.Regulation{
			{Code: "AML-PMLA-STR", Title: "Suspicious Transaction Reporting to FIU", Content: "Suspicious transactions must be reported."},
		},
		ProcessedAt: time.Now(),
		Results:     results,
	}
}

func TestRender(t *testing.T) {
	pdf, err := NewRenderer().Render(sampleSummary())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Greater(t, len(pdf), 1000)
}

func TestRender_Empty(t *testing.T) {
	pdf, err := NewRenderer().Render(&models.BulkUploadSummary{ComplianceRate: 100})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	_, err = NewRenderer().Render(nil)
	assert.Error(t, err)
}

func TestRecommendations(t *testing.T) {
	s := sampleSummary()
	recs := Recommendations(s, evaluatedResults(s.Results))

	require.NotEmpty(t, recs)
	assert.Contains(t, recs[0], "1. IMMEDIATE ACTION: 1 critical transaction(s)")
	assert.Contains(t, recs[len(recs)-2], "CRYPTOCURRENCY: 1 transaction(s)")
	assert.Contains(t, recs[len(recs)-1], "CROSS-BORDER")
}

func TestRecommendations_NoConcerns(t *testing.T) {
	s := &models.BulkUploadSummary{
		TotalTransactions: 1,
		TotalAmount:       decimal.NewFromInt(100),
		LowRiskCount:      1,
	}
	recs := Recommendations(s, []models.BulkRecordResult{result("TXN-1", 100, models.RiskLow, "retail", "India")})
	assert.Equal(t, []string{"1. No significant concerns detected. Continue routine monitoring and compliance procedures."}, recs)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", formatMoney(decimal.Zero))
	assert.Equal(t, "$999.50", formatMoney(decimal.RequireFromString("999.5")))
	assert.Equal(t, "$1,234,567.89", formatMoney(decimal.RequireFromString("1234567.89")))
	assert.Equal(t, "-$1,000.00", formatMoney(decimal.NewFromInt(-1000)))
}
