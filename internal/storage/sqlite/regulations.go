package sqlite

import (
	"context"
	"fmt"
	"strings"

	"finpol-compliance/internal/models"
)

// UpsertRegulations добавляет или обновляет нормативные документы
func (s *SQLiteStorage) UpsertRegulations(ctx context.Context, regs []models.Regulation) error {
	dbtx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbtx.Rollback()

	stmt, err := dbtx.PrepareContext(ctx, `
		INSERT INTO regulations (id, code, title, authority, category, content, keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			code = excluded.code,
			title = excluded.title,
			authority = excluded.authority,
			category = excluded.category,
			content = excluded.content,
			keywords = excluded.keywords
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range regs {
		if _, err := stmt.ExecContext(ctx, r.ID, r.Code, r.Title, r.Authority, r.Category, r.Content, strings.Join(r.Keywords, ",")); err != nil {
			return fmt.Errorf("failed to upsert regulation %s: %w", r.Code, err)
		}
	}

	return dbtx.Commit()
}

// ListRegulations возвращает все нормативные документы
func (s *SQLiteStorage) ListRegulations(ctx context.Context) ([]models.Regulation, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, code, title, authority, category, content, keywords
		FROM regulations
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []models.Regulation
	for rows.Next() {
		var r models.Regulation
		var keywords string
		if err := rows.Scan(&r.ID, &r.Code, &r.Title, &r.Authority, &r.Category, &r.Content, &keywords); err != nil {
			return nil, err
		}
		if keywords != "" {
			r.Keywords = strings.Split(keywords, ",")
		}
		regs = append(regs, r)
	}

	return regs, rows.Err()
}
