package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"finpol-compliance/internal/apperrors"
	"finpol-compliance/internal/compliance"
	"finpol-compliance/internal/kafka"
	"finpol-compliance/internal/logger"
	"finpol-compliance/internal/metrics"
	"finpol-compliance/internal/models"
	"finpol-compliance/internal/risk"
	"finpol-compliance/internal/storage"
	"finpol-compliance/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500

	// explanationTopK - сколько регуляций цитируется в пояснении
	explanationTopK = 3
)

// TransactionDeps - зависимости сервиса транзакций. Cache, Producer и Metrics необязательны.
type TransactionDeps struct {
	Repo             storage.TransactionRepository
	Evaluator        RiskEvaluator
	Regulations      RegulationService
	Reporter         ComplianceReporter
	Cache            RiskCache
	Producer         kafka.Producer
	Metrics          *metrics.Metrics
	Bands            risk.Bands
	EvaluatorTimeout time.Duration
	ReporterTimeout  time.Duration
}

// TransactionServiceImpl реализует интерфейс TransactionService
type TransactionServiceImpl struct {
	repo            storage.TransactionRepository
	scorer          *scorer
	regulations     RegulationService
	reporter        ComplianceReporter
	cache           RiskCache
	producer        kafka.Producer
	metrics         *metrics.Metrics
	validate        *validator.Validate
	reporterTimeout time.Duration
	now             func() time.Time
}

// NewTransactionService создает новый сервис транзакций
func NewTransactionService(deps TransactionDeps) TransactionService {
	bands := deps.Bands
	if bands == (risk.Bands{}) {
		bands = risk.DefaultBands
	}
	producer := deps.Producer
	if producer == nil {
		producer = kafka.NoopProducer{}
	}

	return &TransactionServiceImpl{
		repo: deps.Repo,
		scorer: &scorer{
			evaluator: deps.Evaluator,
			bands:     bands,
			timeout:   deps.EvaluatorTimeout,
			metrics:   deps.Metrics,
		},
		regulations:     deps.Regulations,
		reporter:        deps.Reporter,
		cache:           deps.Cache,
		producer:        producer,
		metrics:         deps.Metrics,
		validate:        validation.New(),
		reporterTimeout: deps.ReporterTimeout,
		now:             time.Now,
	}
}

// Create валидирует, оценивает и сохраняет транзакцию
func (s *TransactionServiceImpl) Create(ctx context.Context, in *models.TransactionInput) (*models.Transaction, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	tx := models.NewTransaction(newTransactionID(), in, s.now().UTC())

	analysis, evalErr := s.scorer.score(ctx, in, "api")
	if evalErr == nil {
		tx.SetRisk(analysis.RiskScore, analysis.RiskLevel, analysis.AnalyzedAt)
	}

	if err := s.repo.SaveTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	if evalErr != nil {
		log.Printf("Transaction %s saved without risk assessment: %v", tx.ID, evalErr)
		logger.LogEvent(logger.EventTransactionDegraded, logger.ServiceAPI, "sqlite", map[string]interface{}{
			"transaction_id": tx.ID,
			"error":          evalErr.Error(),
		})
		return tx, evalErr
	}

	logger.LogEvent(logger.EventTransactionCreated, logger.ServiceAPI, "sqlite", map[string]interface{}{
		"transaction_id": tx.ID,
		"risk_score":     analysis.RiskScore,
		"risk_level":     analysis.RiskLevel,
	})

	s.cacheOutcome(ctx, outcomeFor(tx.ID, analysis, nil))
	if s.cache != nil {
		if err := s.cache.IncrementRiskStats(ctx, analysis.RiskLevel); err != nil {
			log.Printf("Failed to increment risk stats: %v", err)
		}
	}

	s.publish(models.EventTypeTransactionCreated, eventData(tx))
	return tx, nil
}

// Analyze оценивает транзакцию. Для сохраненной транзакции берутся ее атрибуты,
// а новая оценка перезаписывает поля риска.
func (s *TransactionServiceImpl) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.RiskOutcome, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}

	var existing *models.Transaction
	if req.TransactionID != "" {
		tx, err := s.repo.GetTransaction(ctx, req.TransactionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load transaction: %w", err)
		}
		existing = tx
	}

	in := &req.TransactionInput
	if existing != nil {
		in = existing.Input()
	} else if err := s.validateInput(in); err != nil {
		return nil, err
	}

	analysis, err := s.scorer.score(ctx, in, "api")
	if err != nil {
		return nil, err
	}

	// Для непереданного id оценка получает собственный идентификатор
	id := req.TransactionID
	if id == "" {
		id = newTransactionID()
	}

	var explanation *string
	if risk.RequiresReview(analysis.RiskLevel) {
		text := s.explain(ctx, id, in, analysis)
		explanation = &text
	}
	outcome := outcomeFor(id, analysis, explanation)

	if existing != nil {
		if err := s.repo.UpdateTransactionRisk(ctx, existing.ID, analysis.RiskScore, analysis.RiskLevel, analysis.AnalyzedAt); err != nil {
			return nil, fmt.Errorf("failed to update transaction risk: %w", err)
		}
		existing.SetRisk(analysis.RiskScore, analysis.RiskLevel, analysis.AnalyzedAt)

		s.cacheOutcome(ctx, outcome)
		s.publish(models.EventTypeTransactionAnalyzed, eventData(existing))
	}

	logger.LogEvent(logger.EventTransactionAnalyzed, logger.ServiceAPI, "risk", map[string]interface{}{
		"transaction_id": id,
		"risk_score":     analysis.RiskScore,
		"risk_level":     analysis.RiskLevel,
		"stored":         existing != nil,
	})
	return outcome, nil
}

func newTransactionID() string {
	return "txn_" + uuid.New().String()
}

// explain строит пояснение; при любой ошибке возвращается резервный текст
func (s *TransactionServiceImpl) explain(ctx context.Context, id string, in *models.TransactionInput, analysis *models.RiskAnalysis) string {
	if s.regulations == nil || s.reporter == nil {
		return compliance.FallbackExplanation
	}

	ctx, cancel := s.withReporterTimeout(ctx)
	defer cancel()

	regs, err := s.regulations.Search(ctx, compliance.RegulationQuery(in), explanationTopK)
	if err != nil {
		log.Printf("Regulation search for %s failed: %v", id, err)
		return compliance.FallbackExplanation
	}

	text, err := s.reporter.Explain(ctx, id, in, analysis, regs)
	if err != nil || text == "" {
		log.Printf("Compliance explanation for %s failed: %v", id, err)
		return compliance.FallbackExplanation
	}
	return text
}

// GenerateReport формирует отчет по переданным оценке и уровню
func (s *TransactionServiceImpl) GenerateReport(ctx context.Context, id string, riskScore int, riskLevel models.RiskLevel) (*models.ComplianceReport, error) {
	if riskScore < 0 || riskScore > 100 {
		return nil, apperrors.Validation("risk_score must be between 0 and 100, got %d", riskScore)
	}
	if !riskLevel.Valid() {
		return nil, apperrors.Validation("unknown risk_level %q", riskLevel)
	}

	tx, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Факторы берем из последней оценки, если она есть в кэше
	var factors []string
	if s.cache != nil {
		if cached, err := s.cache.GetOutcome(ctx, id); err == nil && cached != nil {
			factors = cached.Factors
		}
	}

	if s.reporter == nil {
		return nil, fmt.Errorf("%w: reporter is not configured", apperrors.ErrReportGenerationFailed)
	}

	rctx, cancel := s.withReporterTimeout(ctx)
	defer cancel()

	report, err := s.reporter.Report(rctx, &models.ReportRequest{
		Transaction: tx,
		RiskScore:   riskScore,
		RiskLevel:   riskLevel,
		Factors:     factors,
	})
	if err == nil && report == nil {
		err = errors.New("reporter returned no report")
	}
	if err != nil {
		s.metrics.IncrementReport("transaction", "failure")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrReportGenerationFailed, err)
	}

	s.metrics.IncrementReport("transaction", "success")
	logger.LogEvent(logger.EventReportGenerated, logger.ServiceAPI, "compliance", map[string]interface{}{
		"transaction_id":    id,
		"compliance_status": report.ComplianceStatus,
	})
	return report, nil
}

// Delete удаляет транзакцию и ее закэшированную оценку
func (s *TransactionServiceImpl) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, id)
	}

	if s.cache != nil {
		if err := s.cache.DeleteOutcome(ctx, id); err != nil {
			log.Printf("Failed to evict cached outcome for %s: %v", id, err)
		}
	}

	logger.LogEvent(logger.EventTransactionDeleted, logger.ServiceAPI, "sqlite", map[string]interface{}{
		"transaction_id": id,
	})
	s.publish(models.EventTypeTransactionDeleted, models.KafkaTransactionData{TransactionID: id})
	return nil
}

// List возвращает транзакции, новые первыми
func (s *TransactionServiceImpl) List(ctx context.Context, limit, offset int) ([]*models.Transaction, error) {
	if offset < 0 {
		return nil, apperrors.Validation("offset must be >= 0, got %d", offset)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	txs, err := s.repo.ListTransactions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txs == nil {
		txs = []*models.Transaction{}
	}
	return txs, nil
}

// Get возвращает транзакцию или ErrNotFound
func (s *TransactionServiceImpl) Get(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, id)
	}
	return tx, nil
}

func (s *TransactionServiceImpl) validateInput(in *models.TransactionInput) error {
	if in == nil {
		return apperrors.Validation("transaction is required")
	}
	if err := s.validate.Struct(in); err != nil {
		return apperrors.Validation("%s", validation.Describe(err))
	}
	return nil
}

func (s *TransactionServiceImpl) withReporterTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.reporterTimeout > 0 {
		return context.WithTimeout(ctx, s.reporterTimeout)
	}
	return context.WithCancel(ctx)
}

func (s *TransactionServiceImpl) cacheOutcome(ctx context.Context, outcome *models.RiskOutcome) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveOutcome(ctx, outcome); err != nil {
		log.Printf("Failed to cache outcome for %s: %v", outcome.TransactionID, err)
		return
	}
	logger.LogEvent(logger.EventRedisSaved, logger.ServiceAPI, "redis", map[string]interface{}{
		"transaction_id": outcome.TransactionID,
	})
}

// publish отправляет событие в Kafka; ошибка отправки не отменяет операцию
func (s *TransactionServiceImpl) publish(eventType string, data models.KafkaTransactionData) {
	publishEvent(s.producer, eventType, data)
}

func publishEvent(producer kafka.Producer, eventType string, data models.KafkaTransactionData) {
	event := &models.KafkaTransactionEvent{
		EventID:   "evt_" + uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	if err := producer.SendTransactionEvent(event); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
		return
	}

	logger.LogEvent(logger.EventKafkaSent, logger.ServiceAPI, "kafka", map[string]interface{}{
		"event_id":       event.EventID,
		"event_type":     eventType,
		"transaction_id": data.TransactionID,
	})
}

func eventData(tx *models.Transaction) models.KafkaTransactionData {
	amount := tx.Amount
	return models.KafkaTransactionData{
		TransactionID: tx.ID,
		UserID:        tx.UserID,
		Amount:        &amount,
		Currency:      tx.Currency,
		Country:       tx.Country,
		MerchantType:  tx.MerchantType,
		RiskScore:     tx.RiskScore,
		RiskLevel:     tx.RiskLevel,
	}
}
