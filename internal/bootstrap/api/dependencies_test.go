package api

import (
	"context"
	"path/filepath"
	"testing"

	"finpol-compliance/internal/config"
	"finpol-compliance/internal/kafka"
	"finpol-compliance/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Метрики регистрируются в DefaultRegisterer, поэтому зависимости создаются один раз
func TestInitializeDependencies_WithoutRedisAndKafka(t *testing.T) {
	cfg := &config.Config{
		DB:    config.DBConfig{DBPath: filepath.Join(t.TempDir(), "finpol.db")},
		Redis: config.RedisConfig{Enabled: false},
		Kafka: config.KafkaConfig{Enabled: false},
		Risk:  config.RiskConfig{MediumThreshold: 50, HighThreshold: 80, CriticalThreshold: 90},
	}

	deps, err := InitializeDependencies(cfg)
	require.NoError(t, err)
	defer deps.Close()

	assert.Nil(t, deps.RedisClient)
	assert.IsType(t, kafka.NoopProducer{}, deps.KafkaProducer)
	assert.Contains(t, deps.Checks, "sqlite")
	assert.NotContains(t, deps.Checks, "redis")
	require.NoError(t, deps.Checks["sqlite"](context.Background()))

	ctx := context.Background()
	regs, err := deps.Regulations.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, regs)

	tx, err := deps.TransactionService.Create(ctx, &models.TransactionInput{
		UserID:          "user_1",
		Amount:          decimal.NewFromInt(2000000),
		Currency:        "USD",
		TransactionType: models.TransactionTransfer,
		Country:         "KY",
		MerchantType:    "retail",
	})
	require.NoError(t, err)
	require.NotNil(t, tx.RiskLevel)
	assert.Equal(t, models.RiskCritical, *tx.RiskLevel)
}
