package worker

import (
	"context"
	"fmt"
	"log"

	"finpol-compliance/internal/logger"
	"finpol-compliance/internal/models"
	"finpol-compliance/internal/redis"
)

// Processor обрабатывает события жизненного цикла из Kafka.
// Созданные транзакции уже учтены API, поэтому счетчики растут только
// по повторным анализам и пакетным загрузкам.
type Processor struct {
	stats redis.StatsStore
}

func NewProcessor(stats redis.StatsStore) *Processor {
	return &Processor{stats: stats}
}

// Handle реализует kafka.EventHandler
func (p *Processor) Handle(ctx context.Context, event *models.KafkaTransactionEvent) error {
	logger.LogEvent(logger.EventKafkaReceived, logger.ServiceWorker, "kafka", map[string]interface{}{
		"event_id":       event.EventID,
		"event_type":     event.EventType,
		"transaction_id": event.Data.TransactionID,
	})

	switch event.EventType {
	case models.EventTypeTransactionCreated, models.EventTypeTransactionDeleted:
		return nil

	case models.EventTypeTransactionAnalyzed:
		if event.Data.RiskLevel == nil {
			log.Printf("Analyzed event %s has no risk level, skipping", event.EventID)
			return nil
		}
		level := *event.Data.RiskLevel
		if err := p.stats.IncrementRiskStats(ctx, level); err != nil {
			return fmt.Errorf("increment %s stats: %w", level, err)
		}
		p.logStats(event, map[models.RiskLevel]int64{level: 1})
		return nil

	case models.EventTypeBulkProcessed:
		if event.Data.RiskDistribution == nil {
			return nil
		}
		dist := event.Data.RiskDistribution
		added := map[models.RiskLevel]int64{
			models.RiskLow:      int64(dist.Low),
			models.RiskMedium:   int64(dist.Medium),
			models.RiskHigh:     int64(dist.High),
			models.RiskCritical: int64(dist.Critical),
		}
		for _, level := range models.RiskLevels {
			if err := p.stats.AddRiskStats(ctx, level, added[level]); err != nil {
				return fmt.Errorf("add %s stats: %w", level, err)
			}
		}
		p.logStats(event, added)
		return nil

	default:
		log.Printf("Unknown event type %q in event %s", event.EventType, event.EventID)
		return nil
	}
}

func (p *Processor) logStats(event *models.KafkaTransactionEvent, added map[models.RiskLevel]int64) {
	data := map[string]interface{}{
		"event_id":   event.EventID,
		"event_type": event.EventType,
	}
	for level, n := range added {
		data[string(level)] = n
	}
	logger.LogEvent(logger.EventStatsUpdated, logger.ServiceWorker, "redis", data)
}
