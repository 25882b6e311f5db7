package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"finpol-compliance/internal/apperrors"
	"finpol-compliance/internal/kafka"
	"finpol-compliance/internal/logger"
	"finpol-compliance/internal/metrics"
	"finpol-compliance/internal/models"
	"finpol-compliance/internal/parser"
	"finpol-compliance/internal/risk"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Запросы к базе регуляций для пакета
const (
	amlRegulationQuery    = "anti-money laundering suspicious transactions reporting"
	cryptoRegulationQuery = "cryptocurrency virtual assets FATF travel rule"
	bulkRegulationTopK    = 3
)

const (
	DefaultMaxFileBytes = 10 << 20
	DefaultBulkWorkers  = 4
)

// BulkDeps - зависимости пакетной обработки. Regulations, Producer и Metrics необязательны.
type BulkDeps struct {
	Parser           StatementParser
	Evaluator        RiskEvaluator
	Regulations      RegulationService
	Renderer         SummaryRenderer
	Producer         kafka.Producer
	Metrics          *metrics.Metrics
	Bands            risk.Bands
	EvaluatorTimeout time.Duration
	MaxFileBytes     int64
	Workers          int
}

// BulkServiceImpl реализует интерфейс BulkService
type BulkServiceImpl struct {
	parser       StatementParser
	scorer       *scorer
	regulations  RegulationService
	renderer     SummaryRenderer
	producer     kafka.Producer
	metrics      *metrics.Metrics
	maxFileBytes int64
	workers      int
	now          func() time.Time
}

// NewBulkService создает сервис пакетной проверки выписок
func NewBulkService(deps BulkDeps) BulkService {
	bands := deps.Bands
	if bands == (risk.Bands{}) {
		bands = risk.DefaultBands
	}
	producer := deps.Producer
	if producer == nil {
		producer = kafka.NoopProducer{}
	}
	maxBytes := deps.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}
	workers := deps.Workers
	if workers <= 0 {
		workers = DefaultBulkWorkers
	}

	return &BulkServiceImpl{
		parser: deps.Parser,
		scorer: &scorer{
			evaluator: deps.Evaluator,
			bands:     bands,
			timeout:   deps.EvaluatorTimeout,
			metrics:   deps.Metrics,
		},
		regulations:  deps.Regulations,
		renderer:     deps.Renderer,
		producer:     producer,
		metrics:      deps.Metrics,
		maxFileBytes: maxBytes,
		workers:      workers,
		now:          time.Now,
	}
}

// Ingest проверяет файл, разбирает его и оценивает каждую запись
func (s *BulkServiceImpl) Ingest(ctx context.Context, req *models.BulkUploadRequest) (*models.BulkUploadSummary, error) {
	format, err := s.gate(req)
	if err != nil {
		s.reject(req, format, err)
		return nil, err
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = parser.DefaultUserID
	}

	records, err := s.parser.Parse(format, req.Content, userID)
	if err != nil {
		s.reject(req, format, err)
		return nil, err
	}

	results, err := s.evaluate(ctx, records)
	if err != nil {
		return nil, err
	}

	summary := summarize(results)
	summary.Filename = req.Filename
	summary.Format = format
	summary.UserID = userID
	summary.ProcessedAt = s.now().UTC()
	summary.Regulations = s.relevantRegulations(ctx, results)

	s.metrics.IncrementBulkFile(string(format), "processed")
	s.metrics.AddBulkRows("evaluated", summary.TotalTransactions)
	s.metrics.AddBulkRows("failed", summary.ErrorCount)

	log.Printf("Bulk file %s processed: %d evaluated, %d failed", req.Filename, summary.TotalTransactions, summary.ErrorCount)
	logger.LogEvent(logger.EventBulkProcessed, logger.ServiceAPI, "bulk", map[string]interface{}{
		"filename":           req.Filename,
		"format":             format,
		"total_transactions": summary.TotalTransactions,
		"error_count":        summary.ErrorCount,
		"compliance_rate":    summary.ComplianceRate,
	})

	distribution := summary.RiskDistribution
	publishEvent(s.producer, models.EventTypeBulkProcessed, models.KafkaTransactionData{
		UserID:            userID,
		Filename:          req.Filename,
		TotalTransactions: summary.TotalTransactions,
		ErrorCount:        summary.ErrorCount,
		RiskDistribution:  &distribution,
	})
	return summary, nil
}

// IngestAndReport обрабатывает файл и рендерит сводный PDF
func (s *BulkServiceImpl) IngestAndReport(ctx context.Context, req *models.BulkUploadRequest) ([]byte, *models.BulkUploadSummary, error) {
	summary, err := s.Ingest(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if s.renderer == nil {
		return nil, summary, fmt.Errorf("%w: renderer is not configured", apperrors.ErrReportGenerationFailed)
	}

	pdf, err := s.renderer.Render(summary)
	if err != nil {
		s.metrics.IncrementReport("bulk_pdf", "failure")
		return nil, summary, fmt.Errorf("%w: %v", apperrors.ErrReportGenerationFailed, err)
	}

	s.metrics.IncrementReport("bulk_pdf", "success")
	return pdf, summary, nil
}

// gate проверяет размер и формат до разбора содержимого
func (s *BulkServiceImpl) gate(req *models.BulkUploadRequest) (models.BulkFormat, error) {
	if req == nil {
		return "", fmt.Errorf("%w: no file uploaded", apperrors.ErrInvalidFile)
	}
	if size := int64(len(req.Content)); size > s.maxFileBytes {
		return "", fmt.Errorf("%w: %d bytes, limit is %d", apperrors.ErrFileTooLarge, size, s.maxFileBytes)
	}
	return parser.DetectFormat(req.Format, req.Filename)
}

func (s *BulkServiceImpl) reject(req *models.BulkUploadRequest, format models.BulkFormat, err error) {
	s.metrics.IncrementBulkFile(string(format), "rejected")

	filename := ""
	if req != nil {
		filename = req.Filename
	}
	log.Printf("Bulk file %q rejected: %v", filename, err)
	logger.LogEvent(logger.EventBulkRejected, logger.ServiceAPI, "bulk", map[string]interface{}{
		"filename": filename,
		"error":    err.Error(),
	})
}

// evaluate оценивает записи параллельно, результаты лежат в порядке строк
func (s *BulkServiceImpl) evaluate(ctx context.Context, records []parser.Record) ([]models.BulkRecordResult, error) {
	now := s.now().UTC()
	results := make([]models.BulkRecordResult, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, rec := range records {
		results[i].Row = rec.Row
		results[i].Transaction = models.NewTransaction(rec.ID, &rec.Input, now)

		if rec.Err != nil {
			results[i].Error = rec.Err.Error()
			continue
		}

		g.Go(func() error {
			analysis, err := s.scorer.score(gctx, &rec.Input, "bulk")
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Analysis = analysis
			results[i].Transaction.SetRisk(analysis.RiskScore, analysis.RiskLevel, analysis.AnalyzedAt)
			return nil
		})
	}

	// Горутины не возвращают ошибок, отказ оценщика остается в строке
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// summarize агрегирует результаты в порядке строк
func summarize(results []models.BulkRecordResult) *models.BulkUploadSummary {
	summary := &models.BulkUploadSummary{
		TotalAmount: decimal.Zero,
		AmountByRisk: models.RiskAmounts{
			Low:      decimal.Zero,
			Medium:   decimal.Zero,
			High:     decimal.Zero,
			Critical: decimal.Zero,
		},
		Regulations: []models.Regulation{},
		Results:     results,
	}

	for _, res := range results {
		if res.Analysis == nil {
			summary.ErrorCount++
			continue
		}
		level := res.Analysis.RiskLevel
		amount := res.Transaction.Amount

		summary.TotalTransactions++
		summary.TotalAmount = summary.TotalAmount.Add(amount)
		summary.RiskDistribution.Add(level)
		summary.AmountByRisk.Add(level, amount)
	}

	summary.LowRiskCount = summary.RiskDistribution.Low
	summary.MediumRiskCount = summary.RiskDistribution.Medium
	summary.HighRiskCount = summary.RiskDistribution.High
	summary.CriticalCount = summary.RiskDistribution.Critical

	summary.ComplianceRate = 100
	if summary.TotalTransactions > 0 {
		rate := float64(summary.LowRiskCount) / float64(summary.TotalTransactions) * 100
		summary.ComplianceRate = math.Round(rate*10) / 10
	}
	return summary
}

// relevantRegulations подбирает регуляции по рискам пакета без повторов
func (s *BulkServiceImpl) relevantRegulations(ctx context.Context, results []models.BulkRecordResult) []models.Regulation {
	regs := []models.Regulation{}
	if s.regulations == nil {
		return regs
	}

	highRisk, crypto := false, false
	for _, res := range results {
		if res.Analysis == nil {
			continue
		}
		if res.Analysis.RiskLevel.Severity() >= models.RiskHigh.Severity() {
			highRisk = true
		}
		for _, factor := range res.Analysis.Factors {
			if strings.Contains(strings.ToLower(factor), "crypto") {
				crypto = true
			}
		}
	}

	var queries []string
	if highRisk {
		queries = append(queries, amlRegulationQuery)
	}
	if crypto {
		queries = append(queries, cryptoRegulationQuery)
	}

	seen := make(map[string]bool)
	for _, q := range queries {
		matches, err := s.regulations.Search(ctx, q, bulkRegulationTopK)
		if err != nil {
			log.Printf("Regulation search %q failed: %v", q, err)
			continue
		}
		for _, m := range matches {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			regs = append(regs, m.Regulation)
		}
	}
	return regs
}
