package sqlite

import (
	"context"
	"time"

	"finpol-compliance/internal/models"
)

// UpdateTransactionRisk перезаписывает результаты оценки риска
func (s *SQLiteStorage) UpdateTransactionRisk(
	ctx context.Context,
	id string,
	riskScore int,
	riskLevel models.RiskLevel,
	analyzedAt time.Time,
) error {
	query := `
		UPDATE transactions
		SET risk_score = ?,
		    risk_level = ?,
		    analyzed_at = ?,
		    updated_at = ?
		WHERE id = ?
	`

	return retryOperation(func() error {
		_, err := s.DB.ExecContext(ctx, query, riskScore, string(riskLevel), analyzedAt.UTC(), time.Now().UTC(), id)
		return err
	}, 3, 50*time.Millisecond)
}
