package sqlite

import (
	"context"
	"database/sql"
	"time"

	"finpol-compliance/internal/models"
)

// SaveTransaction сохраняет транзакцию в БД
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, user_id, amount, currency, transaction_type, description,
			sender_account, recipient_account, country, merchant_type,
			device_risk_score, timestamp, risk_score, risk_level, analyzed_at,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var riskScore sql.NullInt64
	var riskLevel sql.NullString
	var analyzedAt sql.NullTime
	if tx.HasRisk() {
		riskScore = sql.NullInt64{Int64: int64(*tx.RiskScore), Valid: true}
		riskLevel = sql.NullString{String: string(*tx.RiskLevel), Valid: true}
		if tx.AnalyzedAt != nil {
			analyzedAt = sql.NullTime{Time: tx.AnalyzedAt.UTC(), Valid: true}
		}
	}

	return retryOperation(func() error {
		_, err := s.DB.ExecContext(
			ctx, query,
			tx.ID, tx.UserID, tx.Amount.String(), tx.Currency, string(tx.TransactionType), tx.Description,
			tx.SenderAccount, tx.RecipientAccount, tx.Country, tx.MerchantType,
			tx.DeviceRiskScore, tx.Timestamp.UTC(), riskScore, riskLevel, analyzedAt,
			tx.CreatedAt.UTC(), tx.UpdatedAt.UTC(),
		)
		return err
	}, 3, 50*time.Millisecond)
}
