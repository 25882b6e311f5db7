package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"finpol-compliance/internal/models"

	"github.com/IBM/sarama"
	saramamocks "github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() *models.KafkaTransactionEvent {
	score := 95
	level := models.RiskCritical
	return &models.KafkaTransactionEvent{
		EventID:   "evt_1",
		EventType: models.EventTypeTransactionCreated,
		Timestamp: time.Now().UTC(),
		Data: models.KafkaTransactionData{
			TransactionID: "txn_1",
			RiskScore:     &score,
			RiskLevel:     &level,
		},
	}
}

func TestProducer_SendTransactionEvent(t *testing.T) {
	sp := saramamocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event models.KafkaTransactionEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.Data.TransactionID != "txn_1" {
			return errors.New("unexpected transaction id")
		}
		return nil
	})

	p := newProducer(sp, "finpol.transactions.events")
	require.NoError(t, p.SendTransactionEvent(sampleEvent()))
	require.NoError(t, p.Close())
}

func TestProducer_SendTransactionEvent_Error(t *testing.T) {
	sp := saramamocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newProducer(sp, "finpol.transactions.events")
	err := p.SendTransactionEvent(sampleEvent())
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestNoopProducer(t *testing.T) {
	var p Producer = NoopProducer{}
	assert.NoError(t, p.SendTransactionEvent(sampleEvent()))
	assert.NoError(t, p.Close())
}

func TestConsumerGroupHandler_HandleMessage(t *testing.T) {
	var received []*models.KafkaTransactionEvent
	h := &consumerGroupHandler{handler: func(ctx context.Context, event *models.KafkaTransactionEvent) error {
		received = append(received, event)
		return errors.New("handler failure is only logged")
	}}

	data, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	h.handleMessage(context.Background(), data)
	h.handleMessage(context.Background(), []byte("not json"))

	require.Len(t, received, 1)
	assert.Equal(t, "txn_1", received[0].Data.TransactionID)
	assert.Equal(t, models.RiskCritical, *received[0].Data.RiskLevel)
}
