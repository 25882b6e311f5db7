package models

import "time"

// RiskAnalysis представляет результат работы оценщика рисков
type RiskAnalysis struct {
	RiskScore       int       `json:"risk_score"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Factors         []string  `json:"factors"`
	Recommendations []string  `json:"recommendations"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
}

// AnalyzeRequest - запрос на (повторный) анализ транзакции
type AnalyzeRequest struct {
	TransactionID string `json:"transaction_id,omitempty"`
	TransactionInput
}

// RiskOutcome - ответ на запрос анализа
type RiskOutcome struct {
	TransactionID         string    `json:"transaction_id"`
	RiskScore             int       `json:"risk_score"`
	RiskLevel             RiskLevel `json:"risk_level"`
	ShouldApprove         bool      `json:"should_approve"`
	RequiresReview        bool      `json:"requires_review"`
	ComplianceExplanation *string   `json:"compliance_explanation"`
	Factors               []string  `json:"factors"`
	Recommendations       []string  `json:"recommendations"`
	AnalyzedAt            time.Time `json:"analyzed_at"`
}
