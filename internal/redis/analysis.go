package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"finpol-compliance/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
)

func outcomeKey(transactionID string) string {
	return fmt.Sprintf("transaction:%s:risk", transactionID)
}

// SaveOutcome кэширует результат оценки транзакции
func (c *Client) SaveOutcome(ctx context.Context, outcome *models.RiskOutcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}

	return c.rdb.Set(ctx, outcomeKey(outcome.TransactionID), data, c.outcomeTTL).Err()
}

// GetOutcome получает закэшированный результат, nil если его нет
func (c *Client) GetOutcome(ctx context.Context, transactionID string) (*models.RiskOutcome, error) {
	data, err := c.rdb.Get(ctx, outcomeKey(transactionID)).Result()
	if err == redisv9.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get outcome: %w", err)
	}

	var outcome models.RiskOutcome
	if err := json.Unmarshal([]byte(data), &outcome); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outcome: %w", err)
	}

	return &outcome, nil
}

// DeleteOutcome удаляет результат из кэша
func (c *Client) DeleteOutcome(ctx context.Context, transactionID string) error {
	return c.rdb.Del(ctx, outcomeKey(transactionID)).Err()
}
