package redis

import (
	"context"
	"strings"
)

const (
	blacklistKey         = "blacklist:accounts"
	highRiskCountriesKey = "high_risk_countries"
)

// IsAccountBlacklisted проверяет, находится ли счет в черном списке
func (c *Client) IsAccountBlacklisted(ctx context.Context, accountNumber string) (bool, error) {
	return c.rdb.SIsMember(ctx, blacklistKey, accountNumber).Result()
}

// IsHighRiskCountry проверяет, является ли страна высокорисковой.
// Страны хранятся в верхнем регистре.
func (c *Client) IsHighRiskCountry(ctx context.Context, country string) (bool, error) {
	return c.rdb.SIsMember(ctx, highRiskCountriesKey, strings.ToUpper(strings.TrimSpace(country))).Result()
}

// InitializeWatchlists заполняет список высокорисковых юрисдикций
func (c *Client) InitializeWatchlists(ctx context.Context, highRiskCountries []string) error {
	if len(highRiskCountries) == 0 {
		return nil
	}
	members := make([]interface{}, 0, len(highRiskCountries))
	for _, country := range highRiskCountries {
		members = append(members, strings.ToUpper(country))
	}
	return c.rdb.SAdd(ctx, highRiskCountriesKey, members...).Err()
}

// AddToBlacklist добавляет счет в черный список (используется для тестирования и администрирования)
func (c *Client) AddToBlacklist(ctx context.Context, accountNumber string) error {
	return c.rdb.SAdd(ctx, blacklistKey, accountNumber).Err()
}
