package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finpol-compliance/internal/models"

	"github.com/shopspring/decimal"
)

const transactionColumns = `
	id, user_id, amount, currency, transaction_type, description,
	sender_account, recipient_account, country, merchant_type,
	device_risk_score, timestamp, risk_score, risk_level, analyzed_at,
	created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		tx          models.Transaction
		amount      string
		txType      string
		description sql.NullString
		sender      sql.NullString
		recipient   sql.NullString
		riskScore   sql.NullInt64
		riskLevel   sql.NullString
		analyzedAt  sql.NullTime
	)

	err := row.Scan(
		&tx.ID, &tx.UserID, &amount, &tx.Currency, &txType, &description,
		&sender, &recipient, &tx.Country, &tx.MerchantType,
		&tx.DeviceRiskScore, &tx.Timestamp, &riskScore, &riskLevel, &analyzedAt,
		&tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q for transaction %s: %w", amount, tx.ID, err)
	}
	tx.TransactionType = models.TransactionType(txType)
	tx.Description = description.String
	tx.SenderAccount = sender.String
	tx.RecipientAccount = recipient.String

	if riskScore.Valid && riskLevel.Valid {
		score := int(riskScore.Int64)
		level := models.RiskLevel(riskLevel.String)
		tx.RiskScore = &score
		tx.RiskLevel = &level
		if analyzedAt.Valid {
			at := analyzedAt.Time
			tx.AnalyzedAt = &at
		}
	}

	return &tx, nil
}

// GetTransaction получает транзакцию по id
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`

	tx, err := scanTransaction(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return tx, nil
}

// ListTransactions получает страницу транзакций, новые первыми
func (s *SQLiteStorage) ListTransactions(ctx context.Context, limit, offset int) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY created_at DESC, seq DESC
		LIMIT ? OFFSET ?
	`

	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*models.Transaction, 0, limit)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}
