package redis

import (
	"context"
	"fmt"
)

// ClearTransactionData очищает кэш и статистику (черные списки сохраняются)
func (c *Client) ClearTransactionData(ctx context.Context) error {
	patterns := []string{
		"transaction:*",
		"risk_stats:*",
		"regulations:search:*",
	}

	for _, pattern := range patterns {
		iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			c.rdb.Del(ctx, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to clear pattern %s: %w", pattern, err)
		}
	}

	return nil
}
