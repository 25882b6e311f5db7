package kafka

import (
	"context"

	"finpol-compliance/internal/models"
)

// Producer определяет интерфейс для отправки сообщений в Kafka
type Producer interface {
	SendTransactionEvent(event *models.KafkaTransactionEvent) error

	Close() error
}

// Consumer читает события из топика до отмены контекста
type Consumer interface {
	Start(ctx context.Context) error

	Close() error
}

// EventHandler обрабатывает одно событие из топика
type EventHandler func(ctx context.Context, event *models.KafkaTransactionEvent) error
