package risk

import (
	"context"
	"fmt"
	"time"

	"finpol-compliance/internal/apperrors"
	"finpol-compliance/internal/models"
	"finpol-compliance/internal/redis"
)

// Engine - оценщик рисков на правилах. Побеждает наибольшая серьезность,
// два и более правил уровня High повышают итог до Critical.
type Engine struct {
	rules []Rule
	now   func() time.Time
}

// NewEngine создает оценщик со встроенными правилами.
// watchlist может быть nil, тогда используется только встроенный список стран.
func NewEngine(watchlist redis.Watchlist) *Engine {
	return &Engine{
		rules: []Rule{
			highAmountRule{},
			cryptoExchangeRule{},
			foreignHighValueRule{},
			highDeviceRiskRule{},
			highRiskCountryRule{watchlist: watchlist},
			blacklistRule{watchlist: watchlist},
		},
		now: time.Now,
	}
}

// AddRule добавляет пользовательское правило
func (e *Engine) AddRule(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Evaluate оценивает транзакцию. Ошибка обращения к спискам возвращается
// как ErrEvaluatorUnavailable.
func (e *Engine) Evaluate(ctx context.Context, in *models.TransactionInput) (*models.RiskAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEvaluatorUnavailable, err)
	}

	level := models.RiskLow
	reasons := []string{}
	highCount := 0

	for _, rule := range e.rules {
		finding, err := rule.Evaluate(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %s: %v", apperrors.ErrEvaluatorUnavailable, rule.Name(), err)
		}
		if finding == nil {
			continue
		}
		reasons = append(reasons, finding.Reason)
		if finding.Level == models.RiskHigh {
			highCount++
		}
		if finding.Level.Severity() > level.Severity() {
			level = finding.Level
		}
	}

	if highCount >= 2 && level.Severity() < models.RiskCritical.Severity() {
		level = models.RiskCritical
		reasons = append(reasons, fmt.Sprintf("Multiple high-risk indicators (%d)", highCount))
	}

	return &models.RiskAnalysis{
		RiskScore:       ScoreFor(level),
		RiskLevel:       level,
		Factors:         reasons,
		Recommendations: Recommendations(level, reasons),
		AnalyzedAt:      e.now().UTC(),
	}, nil
}
