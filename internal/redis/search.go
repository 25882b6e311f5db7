package redis

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"finpol-compliance/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
)

func searchKey(query string, topK int) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(query))))
	return fmt.Sprintf("regulations:search:%s:%d", hex.EncodeToString(sum[:]), topK)
}

// SaveSearchResults кэширует результаты поиска по регуляциям
func (c *Client) SaveSearchResults(ctx context.Context, query string, topK int, matches []models.RegulationMatch) error {
	data, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}
	return c.rdb.Set(ctx, searchKey(query, topK), data, c.searchTTL).Err()
}

// GetSearchResults возвращает закэшированные результаты, ok=false при промахе
func (c *Client) GetSearchResults(ctx context.Context, query string, topK int) ([]models.RegulationMatch, bool, error) {
	data, err := c.rdb.Get(ctx, searchKey(query, topK)).Bytes()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get search results: %w", err)
	}

	var matches []models.RegulationMatch
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal search results: %w", err)
	}
	return matches, true, nil
}
