package kafka

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"finpol-compliance/internal/config"
	"finpol-compliance/internal/models"

	"github.com/IBM/sarama"
)

type ProducerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg *config.Config) (Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Println("Kafka producer created successfully")
	return newProducer(producer, cfg.Kafka.EventsTopic), nil
}

func newProducer(producer sarama.SyncProducer, topic string) *ProducerImpl {
	return &ProducerImpl{producer: producer, topic: topic}
}

// SendTransactionEvent публикует событие, ключом сообщения служит id транзакции
func (p *ProducerImpl) SendTransactionEvent(event *models.KafkaTransactionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Value:     sarama.StringEncoder(data),
		Timestamp: time.Now(),
	}
	if event.Data.TransactionID != "" {
		msg.Key = sarama.StringEncoder(event.Data.TransactionID)
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	log.Printf("Event %s sent to topic %s, partition %d, offset %d", event.EventType, p.topic, partition, offset)
	return nil
}

func (p *ProducerImpl) Close() error {
	return p.producer.Close()
}

// NoopProducer используется, когда Kafka отключена или недоступна
type NoopProducer struct{}

func (NoopProducer) SendTransactionEvent(*models.KafkaTransactionEvent) error { return nil }

func (NoopProducer) Close() error { return nil }
