package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finpol-compliance/internal/apperrors"
	"finpol-compliance/internal/metrics"
	"finpol-compliance/internal/models"
	"finpol-compliance/internal/risk"
)

// scorer вызывает оценщик с таймаутом и выводит уровень из оценки по границам
type scorer struct {
	evaluator RiskEvaluator
	bands     risk.Bands
	timeout   time.Duration
	metrics   *metrics.Metrics
}

func (s *scorer) score(ctx context.Context, in *models.TransactionInput, source string) (*models.RiskAnalysis, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	analysis, err := s.evaluator.Evaluate(ctx, in)
	s.metrics.ObserveEvaluationLatency(time.Since(start))

	if err == nil && analysis == nil {
		err = errors.New("evaluator returned no result")
	}
	if err != nil {
		s.metrics.IncrementEvaluatorFailure()
		if !errors.Is(err, apperrors.ErrEvaluatorUnavailable) {
			err = fmt.Errorf("%w: %v", apperrors.ErrEvaluatorUnavailable, err)
		}
		return nil, err
	}

	score := analysis.RiskScore
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	level := s.bands.LevelFor(score)

	out := *analysis
	out.RiskScore = score
	out.RiskLevel = level
	if out.Factors == nil {
		out.Factors = []string{}
	}
	if level != analysis.RiskLevel || len(out.Recommendations) == 0 {
		out.Recommendations = risk.Recommendations(level, out.Factors)
	}
	if out.AnalyzedAt.IsZero() {
		out.AnalyzedAt = time.Now().UTC()
	}

	s.metrics.IncrementEvaluation(string(level), source)
	return &out, nil
}

// outcomeFor собирает ответ анализа
func outcomeFor(transactionID string, analysis *models.RiskAnalysis, explanation *string) *models.RiskOutcome {
	return &models.RiskOutcome{
		TransactionID:         transactionID,
		RiskScore:             analysis.RiskScore,
		RiskLevel:             analysis.RiskLevel,
		ShouldApprove:         risk.ShouldApprove(analysis.RiskLevel),
		RequiresReview:        risk.RequiresReview(analysis.RiskLevel),
		ComplianceExplanation: explanation,
		Factors:               analysis.Factors,
		Recommendations:       analysis.Recommendations,
		AnalyzedAt:            analysis.AnalyzedAt,
	}
}
