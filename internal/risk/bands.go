package risk

import (
	"finpol-compliance/internal/config"
	"finpol-compliance/internal/models"
)

// Bands - нижние границы уровней Medium, High и Critical.
// Оценка ниже Medium считается Low.
type Bands struct {
	Medium   int
	High     int
	Critical int
}

// DefaultBands: Low < 50, Medium 50-79, High 80-89, Critical >= 90
var DefaultBands = Bands{Medium: 50, High: 80, Critical: 90}

// NewBands читает границы из конфигурации, некорректные значения заменяются умолчаниями
func NewBands(cfg config.RiskConfig) Bands {
	b := Bands{Medium: cfg.MediumThreshold, High: cfg.HighThreshold, Critical: cfg.CriticalThreshold}
	if b.Medium <= 0 || b.Medium >= b.High || b.High >= b.Critical || b.Critical > 100 {
		return DefaultBands
	}
	return b
}

// LevelFor определяет уровень риска по оценке
func (b Bands) LevelFor(score int) models.RiskLevel {
	switch {
	case score >= b.Critical:
		return models.RiskCritical
	case score >= b.High:
		return models.RiskHigh
	case score >= b.Medium:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// ScoreFor переводит уровень в числовую оценку
func ScoreFor(level models.RiskLevel) int {
	switch level {
	case models.RiskLow:
		return 25
	case models.RiskMedium:
		return 60
	case models.RiskHigh:
		return 85
	case models.RiskCritical:
		return 95
	}
	return 0
}

// ShouldApprove - автоматическое одобрение возможно только для Low
func ShouldApprove(level models.RiskLevel) bool {
	return level == models.RiskLow
}

// RequiresReview - ручная проверка нужна для Medium и выше
func RequiresReview(level models.RiskLevel) bool {
	return level.Severity() >= models.RiskMedium.Severity()
}
