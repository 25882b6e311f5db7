package logger

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTransactionCreated  EventType = "transaction_created"
	EventTransactionDegraded EventType = "transaction_degraded"
	EventTransactionAnalyzed EventType = "transaction_analyzed"
	EventTransactionDeleted  EventType = "transaction_deleted"
	EventReportGenerated     EventType = "report_generated"
	EventBulkProcessed       EventType = "bulk_processed"
	EventBulkRejected        EventType = "bulk_rejected"
	EventKafkaSent           EventType = "kafka_sent"
	EventKafkaReceived       EventType = "kafka_received"
	EventRedisSaved          EventType = "redis_saved"
	EventStatsUpdated        EventType = "stats_updated"
)

// Названия сервисов в журнале
const (
	ServiceAPI    = "compliance-api"
	ServiceWorker = "risk-events-worker"
)

type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Service   string                 `json:"service"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Component string                 `json:"component"` // kafka, redis, sqlite, bulk...
}

// EventLogger - кольцевой журнал последних бизнес-событий процесса
type EventLogger struct {
	mu      sync.RWMutex
	events  []Event
	maxSize int
}

var globalLogger = NewEventLogger(1000)

func NewEventLogger(maxSize int) *EventLogger {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &EventLogger{
		events:  make([]Event, 0, maxSize),
		maxSize: maxSize,
	}
}

func LogEvent(eventType EventType, service string, component string, data map[string]interface{}) {
	globalLogger.LogEvent(eventType, service, component, data)
}

func (el *EventLogger) LogEvent(eventType EventType, service string, component string, data map[string]interface{}) {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Service:   service,
		Component: component,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	el.mu.Lock()
	defer el.mu.Unlock()

	el.events = append(el.events, event)
	if len(el.events) > el.maxSize {
		// копируем хвост, чтобы не держать старый массив
		tail := make([]Event, el.maxSize)
		copy(tail, el.events[len(el.events)-el.maxSize:])
		el.events = tail
	}
}

func GetEvents(limit int) []Event {
	return globalLogger.GetEvents(limit)
}

// GetEvents возвращает последние limit событий в порядке записи; limit <= 0 - все
func (el *EventLogger) GetEvents(limit int) []Event {
	el.mu.RLock()
	defer el.mu.RUnlock()

	if limit <= 0 || limit > len(el.events) {
		limit = len(el.events)
	}

	result := make([]Event, limit)
	copy(result, el.events[len(el.events)-limit:])
	return result
}

func GetStats() map[string]interface{} {
	return globalLogger.GetStats()
}

func (el *EventLogger) GetStats() map[string]interface{} {
	el.mu.RLock()
	defer el.mu.RUnlock()

	components := make(map[string]int)
	services := make(map[string]int)
	types := make(map[string]int)

	for _, event := range el.events {
		components[event.Component]++
		services[event.Service]++
		types[string(event.Type)]++
	}

	return map[string]interface{}{
		"total_events": len(el.events),
		"components":   components,
		"services":     services,
		"event_types":  types,
	}
}

func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	return json.Marshal(&struct {
		Timestamp string `json:"timestamp"`
		*Alias
	}{
		Timestamp: e.Timestamp.Format(time.RFC3339),
		Alias:     (*Alias)(&e),
	})
}
