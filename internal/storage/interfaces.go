package storage

import (
	"context"
	"time"

	"finpol-compliance/internal/models"
)

// TransactionRepository определяет интерфейс для работы с транзакциями в хранилище.
// Отсутствующая запись возвращается как (nil, nil).
type TransactionRepository interface {
	// SaveTransaction сохраняет новую транзакцию (с полями риска или без них)
	SaveTransaction(ctx context.Context, tx *models.Transaction) error

	// UpdateTransactionRisk перезаписывает оценку и уровень риска
	UpdateTransactionRisk(ctx context.Context, id string, riskScore int, riskLevel models.RiskLevel, analyzedAt time.Time) error

	// GetTransaction получает транзакцию по id
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)

	// ListTransactions возвращает транзакции, новые первыми
	ListTransactions(ctx context.Context, limit, offset int) ([]*models.Transaction, error)

	// DeleteTransaction удаляет транзакцию, false если ее не было
	DeleteTransaction(ctx context.Context, id string) (bool, error)

	// Ping проверяет доступность хранилища
	Ping(ctx context.Context) error
}

// RegulationRepository хранит базу нормативных документов
type RegulationRepository interface {
	// UpsertRegulations добавляет или обновляет документы
	UpsertRegulations(ctx context.Context, regs []models.Regulation) error

	// ListRegulations возвращает все документы, упорядоченные по коду
	ListRegulations(ctx context.Context) ([]models.Regulation, error)
}
