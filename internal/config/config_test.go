package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "./data/finpol.db", cfg.DB.DBPath)
	assert.Equal(t, 50, cfg.Risk.MediumThreshold)
	assert.Equal(t, 80, cfg.Risk.HighThreshold)
	assert.Equal(t, 90, cfg.Risk.CriticalThreshold)
	assert.Equal(t, int64(10<<20), cfg.Bulk.MaxFileBytes)
	assert.Equal(t, "60-M", cfg.RateLimit.Rate)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Hour, cfg.Redis.OutcomeTTL)
	assert.Empty(t, cfg.Risk.BlacklistedAccounts)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/finpol-test.db")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("RISK_THRESHOLD_CRITICAL", "95")
	t.Setenv("BULK_WORKERS", "8")
	t.Setenv("RISK_EVALUATOR_TIMEOUT", "750ms")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,https://finpol.example")

	cfg := Load()

	assert.Equal(t, "/tmp/finpol-test.db", cfg.DB.DBPath)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 95, cfg.Risk.CriticalThreshold)
	assert.Equal(t, 8, cfg.Bulk.Workers)
	assert.Equal(t, 750*time.Millisecond, cfg.Risk.EvaluatorTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://finpol.example"}, cfg.CORS.AllowedOrigins)
}

func TestSplitList(t *testing.T) {
	assert.Empty(t, splitList(""))
	assert.Equal(t, []string{"a"}, splitList(" a "))
	assert.Equal(t, []string{"a", "b"}, splitList("a,,b"))
}
