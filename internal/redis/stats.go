package redis

import (
	"context"
	"fmt"

	"finpol-compliance/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
)

func statsKey(level models.RiskLevel) string {
	return fmt.Sprintf("risk_stats:%s", level)
}

// IncrementRiskStats увеличивает счетчик статистики рисков
func (c *Client) IncrementRiskStats(ctx context.Context, level models.RiskLevel) error {
	return c.rdb.Incr(ctx, statsKey(level)).Err()
}

// AddRiskStats увеличивает счетчик уровня на n, n <= 0 игнорируется
func (c *Client) AddRiskStats(ctx context.Context, level models.RiskLevel, n int64) error {
	if n <= 0 {
		return nil
	}
	return c.rdb.IncrBy(ctx, statsKey(level), n).Err()
}

// GetRiskStats возвращает счетчики по всем уровням, отсутствующие равны 0
func (c *Client) GetRiskStats(ctx context.Context) (map[models.RiskLevel]int64, error) {
	pipe := c.rdb.Pipeline()
	cmds := make(map[models.RiskLevel]*redisv9.StringCmd, len(models.RiskLevels))
	for _, level := range models.RiskLevels {
		cmds[level] = pipe.Get(ctx, statsKey(level))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redisv9.Nil {
		return nil, fmt.Errorf("failed to read risk stats: %w", err)
	}

	stats := make(map[models.RiskLevel]int64, len(cmds))
	for level, cmd := range cmds {
		n, err := cmd.Int64()
		if err == redisv9.Nil {
			n = 0
		} else if err != nil {
			return nil, fmt.Errorf("failed to parse risk stats %s: %w", level, err)
		}
		stats[level] = n
	}
	return stats, nil
}
