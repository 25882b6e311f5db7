package redis

import (
	"context"

	"finpol-compliance/internal/models"
)

// Watchlist - проверки по спискам, которые использует оценщик рисков
type Watchlist interface {
	IsAccountBlacklisted(ctx context.Context, accountNumber string) (bool, error)
	IsHighRiskCountry(ctx context.Context, country string) (bool, error)
}

// OutcomeCache хранит последние результаты оценки транзакций
type OutcomeCache interface {
	SaveOutcome(ctx context.Context, outcome *models.RiskOutcome) error
	GetOutcome(ctx context.Context, transactionID string) (*models.RiskOutcome, error)
	DeleteOutcome(ctx context.Context, transactionID string) error
}

// StatsStore ведет счетчики оценок по уровням риска
type StatsStore interface {
	IncrementRiskStats(ctx context.Context, level models.RiskLevel) error
	AddRiskStats(ctx context.Context, level models.RiskLevel, n int64) error
	GetRiskStats(ctx context.Context) (map[models.RiskLevel]int64, error)
}

// SearchCache кэширует результаты поиска по регуляциям
type SearchCache interface {
	SaveSearchResults(ctx context.Context, query string, topK int, matches []models.RegulationMatch) error
	GetSearchResults(ctx context.Context, query string, topK int) ([]models.RegulationMatch, bool, error)
}

// ClientInterface определяет интерфейс для работы с Redis
// Это позволяет легко создавать моки для тестирования
// Реализуется типом Client
type ClientInterface interface {
	Watchlist
	OutcomeCache
	StatsStore
	SearchCache

	// InitializeWatchlists заполняет список высокорисковых юрисдикций
	InitializeWatchlists(ctx context.Context, highRiskCountries []string) error

	// AddToBlacklist добавляет счет в черный список
	AddToBlacklist(ctx context.Context, accountNumber string) error

	// ClearTransactionData очищает кэш и статистику
	ClearTransactionData(ctx context.Context) error

	// Ping проверяет соединение с Redis
	Ping(ctx context.Context) error

	// Close закрывает соединение с Redis
	Close() error
}

// Убеждаемся, что Client реализует ClientInterface
var _ ClientInterface = (*Client)(nil)
