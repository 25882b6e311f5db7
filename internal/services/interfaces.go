package services

import (
	"context"

	"finpol-compliance/internal/models"
	"finpol-compliance/internal/parser"
	"finpol-compliance/internal/redis"
)

// TransactionService - сценарии жизненного цикла транзакции
type TransactionService interface {
	// Create валидирует, оценивает и сохраняет транзакцию.
	// При недоступном оценщике транзакция сохраняется без риска и возвращается вместе с ошибкой.
	Create(ctx context.Context, in *models.TransactionInput) (*models.Transaction, error)

	// Analyze оценивает переданные атрибуты или атрибуты сохраненной транзакции
	Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.RiskOutcome, error)

	// GenerateReport формирует отчет о соответствии, не сохраняя его
	GenerateReport(ctx context.Context, id string, riskScore int, riskLevel models.RiskLevel) (*models.ComplianceReport, error)

	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*models.Transaction, error)
	Get(ctx context.Context, id string) (*models.Transaction, error)
}

// BulkService - пакетная проверка выписок
type BulkService interface {
	Ingest(ctx context.Context, req *models.BulkUploadRequest) (*models.BulkUploadSummary, error)

	// IngestAndReport дополнительно рендерит сводный PDF-отчет
	IngestAndReport(ctx context.Context, req *models.BulkUploadRequest) ([]byte, *models.BulkUploadSummary, error)
}

// RiskEvaluator - оценщик рисков, реализуется risk.Engine
type RiskEvaluator interface {
	Evaluate(ctx context.Context, in *models.TransactionInput) (*models.RiskAnalysis, error)
}

// RegulationService - поиск и просмотр базы регуляций
type RegulationService interface {
	Search(ctx context.Context, query string, topK int) ([]models.RegulationMatch, error)
	List(ctx context.Context) ([]models.Regulation, error)
}

// ComplianceReporter строит пояснения и отчеты о соответствии
type ComplianceReporter interface {
	Explain(ctx context.Context, transactionID string, in *models.TransactionInput, analysis *models.RiskAnalysis, regs []models.RegulationMatch) (string, error)
	Report(ctx context.Context, req *models.ReportRequest) (*models.ComplianceReport, error)
}

// RiskCache - кэш результатов оценки и счетчики по уровням
type RiskCache interface {
	redis.OutcomeCache
	redis.StatsStore
}

// StatementParser разбирает загруженный файл в записи
type StatementParser interface {
	Parse(format models.BulkFormat, content []byte, userID string) ([]parser.Record, error)
}

// SummaryRenderer рендерит сводку пакетной загрузки в PDF
type SummaryRenderer interface {
	Render(summary *models.BulkUploadSummary) ([]byte, error)
}
