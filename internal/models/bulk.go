package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BulkFormat - поддерживаемый формат загружаемого файла
type BulkFormat string

const (
	FormatCSV  BulkFormat = "csv"
	FormatXLSX BulkFormat = "xlsx"
	FormatPDF  BulkFormat = "pdf"
)

// BulkUploadRequest - загруженный файл и контекст загрузки
type BulkUploadRequest struct {
	Filename string
	Format   BulkFormat // если пусто, определяется по расширению
	UserID   string
	Content  []byte
}

// BulkRecordResult - итог оценки одной строки файла
type BulkRecordResult struct {
	Row         int           `json:"row"`
	Transaction *Transaction  `json:"transaction"`
	Analysis    *RiskAnalysis `json:"analysis,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// RiskCounts - распределение по уровням риска
type RiskCounts struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// Add увеличивает счетчик уровня
func (c *RiskCounts) Add(level RiskLevel) {
	switch level {
	case RiskLow:
		c.Low++
	case RiskMedium:
		c.Medium++
	case RiskHigh:
		c.High++
	case RiskCritical:
		c.Critical++
	}
}

// RiskAmounts - суммы по уровням риска
type RiskAmounts struct {
	Low      decimal.Decimal `json:"low"`
	Medium   decimal.Decimal `json:"medium"`
	High     decimal.Decimal `json:"high"`
	Critical decimal.Decimal `json:"critical"`
}

// Add прибавляет сумму к уровню
func (a *RiskAmounts) Add(level RiskLevel, amount decimal.Decimal) {
	switch level {
	case RiskLow:
		a.Low = a.Low.Add(amount)
	case RiskMedium:
		a.Medium = a.Medium.Add(amount)
	case RiskHigh:
		a.High = a.High.Add(amount)
	case RiskCritical:
		a.Critical = a.Critical.Add(amount)
	}
}

// BulkUploadSummary - сводка по загруженному файлу, не сохраняется
type BulkUploadSummary struct {
	Filename          string          `json:"filename"`
	Format            BulkFormat      `json:"format"`
	UserID            string          `json:"user_id"`
	TotalTransactions int             `json:"total_transactions"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	RiskDistribution  RiskCounts      `json:"risk_distribution"`
	AmountByRisk      RiskAmounts     `json:"amount_by_risk"`
	ComplianceRate    float64         `json:"compliance_rate"`
	HighRiskCount     int             `json:"high_risk_count"`
	CriticalCount     int             `json:"critical_count"`
	MediumRiskCount   int             `json:"medium_risk_count"`
	LowRiskCount      int             `json:"low_risk_count"`
	ErrorCount        int             `json:"error_count"`
	Regulations       []Regulation    `json:"regulations"`
	ProcessedAt       time.Time       `json:"processed_at"`

	// Results нужны для рендеринга отчета и не отдаются в JSON
	Results []BulkRecordResult `json:"-"`
}
