package worker

import (
	"log"

	"finpol-compliance/internal/config"
	"finpol-compliance/internal/kafka"
	"finpol-compliance/internal/redis"
)

// Dependencies содержит все зависимости воркера
type Dependencies struct {
	RedisClient   *redis.Client
	Processor     *Processor
	KafkaConsumer kafka.Consumer
}

// InitializeDependencies инициализирует зависимости воркера
func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	log.Println("Connecting to Redis...")
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Redis connection established")

	processor := NewProcessor(redisClient)

	log.Println("Connecting to Kafka...")
	consumer, err := kafka.NewConsumer(cfg, processor.Handle)
	if err != nil {
		redisClient.Close()
		return nil, err
	}
	log.Println("Kafka consumer connected successfully")

	return &Dependencies{
		RedisClient:   redisClient,
		Processor:     processor,
		KafkaConsumer: consumer,
	}, nil
}

// Close закрывает все соединения
func (d *Dependencies) Close() error {
	if d.KafkaConsumer != nil {
		if err := d.KafkaConsumer.Close(); err != nil {
			return err
		}
	}
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			return err
		}
	}
	return nil
}
