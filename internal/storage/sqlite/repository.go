package sqlite

import (
	"context"
	"time"

	"finpol-compliance/internal/models"
	"finpol-compliance/internal/storage"
)

// Repository реализует интерфейсы хранилища поверх SQLite
type Repository struct {
	storage *SQLiteStorage
}

var (
	_ storage.TransactionRepository = (*Repository)(nil)
	_ storage.RegulationRepository  = (*Repository)(nil)
)

// NewRepository создает новый репозиторий SQLite
func NewRepository(storage *SQLiteStorage) *Repository {
	return &Repository{storage: storage}
}

// SaveTransaction сохраняет транзакцию в БД
func (r *Repository) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	return r.storage.SaveTransaction(ctx, tx)
}

// UpdateTransactionRisk обновляет результаты анализа транзакции
func (r *Repository) UpdateTransactionRisk(ctx context.Context, id string, riskScore int, riskLevel models.RiskLevel, analyzedAt time.Time) error {
	return r.storage.UpdateTransactionRisk(ctx, id, riskScore, riskLevel, analyzedAt)
}

// GetTransaction получает транзакцию по id
func (r *Repository) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	return r.storage.GetTransaction(ctx, id)
}

// ListTransactions получает страницу транзакций
func (r *Repository) ListTransactions(ctx context.Context, limit, offset int) ([]*models.Transaction, error) {
	return r.storage.ListTransactions(ctx, limit, offset)
}

// DeleteTransaction удаляет транзакцию
func (r *Repository) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	return r.storage.DeleteTransaction(ctx, id)
}

// Ping проверяет доступность БД
func (r *Repository) Ping(ctx context.Context) error {
	return r.storage.Ping(ctx)
}

// UpsertRegulations сохраняет нормативные документы
func (r *Repository) UpsertRegulations(ctx context.Context, regs []models.Regulation) error {
	return r.storage.UpsertRegulations(ctx, regs)
}

// ListRegulations возвращает все нормативные документы
func (r *Repository) ListRegulations(ctx context.Context) ([]models.Regulation, error) {
	return r.storage.ListRegulations(ctx)
}
