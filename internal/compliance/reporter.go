package compliance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finpol-compliance/internal/models"
	"finpol-compliance/internal/risk"
)

// RegulationSearcher - поиск регуляций, нужный для отчета
type RegulationSearcher interface {
	Search(ctx context.Context, query string, topK int) ([]models.RegulationMatch, error)
}

// FallbackExplanation возвращается, когда подробный анализ построить не удалось
const FallbackExplanation = "Compliance review required but detailed analysis unavailable."

// regulationsPerReport - сколько регуляций цитируется в отчете
const regulationsPerReport = 5

// Reporter формирует отчеты о соответствии и пояснения к оценке
type Reporter struct {
	regulations RegulationSearcher
	now         func() time.Time
}

func NewReporter(regulations RegulationSearcher) *Reporter {
	return &Reporter{regulations: regulations, now: time.Now}
}

// RegulationQuery - запрос для поиска регуляций по атрибутам транзакции
func RegulationQuery(in *models.TransactionInput) string {
	return fmt.Sprintf("transaction risk %s %s", in.Country, in.MerchantType)
}

// Explain строит текстовое пояснение к результату оценки
func (r *Reporter) Explain(
	ctx context.Context,
	transactionID string,
	in *models.TransactionInput,
	analysis *models.RiskAnalysis,
	regs []models.RegulationMatch,
) (string, error) {
	if in == nil || analysis == nil {
		return "", errors.New("transaction and analysis are required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data := narrativeData{
		TransactionID:   transactionID,
		UserID:          in.UserID,
		Amount:          in.Amount.StringFixed(2),
		Currency:        in.Currency,
		TransactionType: string(in.TransactionType),
		Country:         in.Country,
		MerchantType:    in.MerchantType,
		DeviceRiskScore: in.DeviceRiskScore,
		RiskLevel:       string(analysis.RiskLevel),
		RiskScore:       analysis.RiskScore,
		Factors:         analysis.Factors,
		Determination:   determination(analysis.RiskLevel),
	}
	for _, m := range regs {
		data.Regulations = append(data.Regulations, narrativeRegulation{Code: m.Code, Authority: m.Authority, Title: m.Title})
	}

	return renderNarrative(data)
}

// Report формирует отчет о соответствии по переданным оценке и уровню
func (r *Reporter) Report(ctx context.Context, req *models.ReportRequest) (*models.ComplianceReport, error) {
	if req == nil || req.Transaction == nil {
		return nil, errors.New("transaction is required")
	}

	in := req.Transaction.Input()
	regs, err := r.regulations.Search(ctx, RegulationQuery(in)+" "+string(req.RiskLevel), regulationsPerReport)
	if err != nil {
		return nil, fmt.Errorf("regulation lookup failed: %w", err)
	}

	analysis := &models.RiskAnalysis{
		RiskScore: req.RiskScore,
		RiskLevel: req.RiskLevel,
		Factors:   req.Factors,
	}
	narrative, err := r.Explain(ctx, req.Transaction.ID, in, analysis, regs)
	if err != nil {
		return nil, fmt.Errorf("narrative rendering failed: %w", err)
	}

	applied := make([]string, 0, len(regs))
	for _, m := range regs {
		applied = append(applied, m.Code)
	}

	return &models.ComplianceReport{
		TransactionID:      req.Transaction.ID,
		ComplianceStatus:   statusFor(req.RiskLevel),
		RegulationsApplied: applied,
		Violations:         violations(req.RiskLevel, req.Factors),
		Recommendations:    risk.Recommendations(req.RiskLevel, req.Factors),
		LLMAnalysis:        narrative,
		Timestamp:          r.now().UTC(),
	}, nil
}

func statusFor(level models.RiskLevel) models.ComplianceStatus {
	if level == models.RiskLow {
		return models.ComplianceApproved
	}
	return models.ComplianceReviewRequired
}

// violations: для Low нарушений нет, иначе каждый фактор считается нарушением
func violations(level models.RiskLevel, factors []string) []string {
	if level == models.RiskLow {
		return []string{}
	}
	if len(factors) == 0 {
		return []string{fmt.Sprintf("Risk level %s exceeds the automatic approval threshold", level)}
	}
	out := make([]string, len(factors))
	copy(out, factors)
	return out
}

func determination(level models.RiskLevel) string {
	switch level {
	case models.RiskLow:
		return "APPROVED. The transaction can proceed with standard processing."
	case models.RiskMedium:
		return "REVIEW REQUIRED. The transaction must be reviewed by a compliance officer before processing."
	case models.RiskHigh:
		return "REVIEW REQUIRED. Enhanced due diligence and manual approval are mandatory before processing."
	default:
		return "REVIEW REQUIRED. The transaction must be held and assessed for a suspicious transaction report."
	}
}
