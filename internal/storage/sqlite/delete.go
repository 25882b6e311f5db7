package sqlite

import (
	"context"
	"time"
)

// DeleteTransaction удаляет транзакцию из БД
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := retryOperation(func() error {
		res, err := s.DB.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	}, 3, 50*time.Millisecond)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
