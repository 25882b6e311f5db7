package models

import "time"

// ComplianceStatus - итог проверки соответствия
type ComplianceStatus string

const (
	ComplianceApproved       ComplianceStatus = "approved"
	ComplianceReviewRequired ComplianceStatus = "review_required"
)

// ReportRequest - входные данные для формирования отчета.
// Оценка и уровень передаются явно и не перечитываются из транзакции.
type ReportRequest struct {
	Transaction *Transaction
	RiskScore   int
	RiskLevel   RiskLevel
	Factors     []string
}

// ReportParams - тело запроса POST /compliance/report/:id
type ReportParams struct {
	RiskScore int       `json:"risk_score" binding:"gte=0,lte=100"`
	RiskLevel RiskLevel `json:"risk_level" binding:"required"`
}

// ComplianceReport представляет отчет о соответствии требованиям
type ComplianceReport struct {
	TransactionID      string           `json:"transaction_id"`
	ComplianceStatus   ComplianceStatus `json:"compliance_status"`
	RegulationsApplied []string         `json:"regulations_applied"`
	Violations         []string         `json:"violations"`
	Recommendations    []string         `json:"recommendations"`
	LLMAnalysis        string           `json:"llm_analysis"`
	Timestamp          time.Time        `json:"timestamp"`
}
