package logger

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventLogger(t *testing.T) {
	logger := NewEventLogger(100)
	require.NotNil(t, logger)
	assert.Equal(t, 100, logger.maxSize)
	assert.Empty(t, logger.events)

	assert.Equal(t, 1, NewEventLogger(0).maxSize)
}

func TestEventLogger_LogEvent(t *testing.T) {
	logger := NewEventLogger(100)

	data := map[string]interface{}{
		"transaction_id": "txn_001",
		"risk_level":     "High",
	}
	logger.LogEvent(EventTransactionCreated, ServiceAPI, "sqlite", data)

	require.Len(t, logger.events, 1)
	event := logger.events[0]
	assert.Equal(t, EventTransactionCreated, event.Type)
	assert.Equal(t, ServiceAPI, event.Service)
	assert.Equal(t, "sqlite", event.Component)
	assert.Equal(t, data, event.Data)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEventLogger_LogEvent_MaxSize(t *testing.T) {
	logger := NewEventLogger(3)

	for i := 0; i < 5; i++ {
		logger.LogEvent(EventBulkProcessed, "test-service", "bulk", map[string]interface{}{"index": i})
	}

	// Остаются только последние 3 события
	require.Len(t, logger.events, 3)
	assert.Equal(t, 2, logger.events[0].Data["index"])
	assert.Equal(t, 3, logger.events[1].Data["index"])
	assert.Equal(t, 4, logger.events[2].Data["index"])
}

func TestEventLogger_GetEvents(t *testing.T) {
	logger := NewEventLogger(100)
	for i := 0; i < 10; i++ {
		logger.LogEvent(EventKafkaSent, "test-service", "kafka", map[string]interface{}{"index": i})
	}

	events := logger.GetEvents(5)
	require.Len(t, events, 5)
	assert.Equal(t, 5, events[0].Data["index"])
	assert.Equal(t, 9, events[4].Data["index"])

	assert.Len(t, logger.GetEvents(0), 10)
	assert.Len(t, logger.GetEvents(50), 10)
}

func TestEventLogger_GetEvents_Copy(t *testing.T) {
	logger := NewEventLogger(10)
	logger.LogEvent(EventKafkaSent, "svc", "kafka", nil)

	events := logger.GetEvents(1)
	events[0].Service = "changed"

	assert.Equal(t, "svc", logger.GetEvents(1)[0].Service)
}

func TestEventLogger_GetStats(t *testing.T) {
	logger := NewEventLogger(100)
	logger.LogEvent(EventTransactionCreated, ServiceAPI, "sqlite", nil)
	logger.LogEvent(EventKafkaSent, ServiceAPI, "kafka", nil)
	logger.LogEvent(EventKafkaReceived, ServiceWorker, "kafka", nil)
	logger.LogEvent(EventStatsUpdated, ServiceWorker, "redis", nil)

	stats := logger.GetStats()

	assert.Equal(t, 4, stats["total_events"])
	assert.Equal(t, map[string]int{"sqlite": 1, "kafka": 2, "redis": 1}, stats["components"])
	assert.Equal(t, map[string]int{ServiceAPI: 2, ServiceWorker: 2}, stats["services"])
	types := stats["event_types"].(map[string]int)
	assert.Equal(t, 1, types[string(EventKafkaReceived)])
}

func TestGlobalLogger(t *testing.T) {
	before := len(GetEvents(0))
	LogEvent(EventReportGenerated, ServiceAPI, "compliance", map[string]interface{}{"transaction_id": "txn_global"})

	events := GetEvents(0)
	require.Len(t, events, before+1)
	assert.Equal(t, "txn_global", events[len(events)-1].Data["transaction_id"])
	assert.GreaterOrEqual(t, GetStats()["total_events"], 1)
}

func TestEvent_MarshalJSON(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	event := Event{ID: "id-1", Type: EventBulkProcessed, Service: ServiceAPI, Component: "bulk", Timestamp: ts}

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "2026-03-01T12:30:00Z", decoded["timestamp"])
	assert.Equal(t, "bulk_processed", decoded["type"])
	assert.Equal(t, "bulk", decoded["component"])
}

func TestEventLogger_ConcurrentAccess(t *testing.T) {
	logger := NewEventLogger(50)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				logger.LogEvent(EventKafkaReceived, fmt.Sprintf("svc-%d", n), "kafka", nil)
				logger.GetEvents(5)
				logger.GetStats()
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, logger.GetEvents(0), 50)
}
