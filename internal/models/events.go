package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Типы событий жизненного цикла
const (
	EventTypeTransactionCreated  = "transaction.created"
	EventTypeTransactionAnalyzed = "transaction.analyzed"
	EventTypeTransactionDeleted  = "transaction.deleted"
	EventTypeBulkProcessed       = "bulk.processed"
)

// KafkaTransactionEvent представляет событие транзакции в Kafka
type KafkaTransactionEvent struct {
	EventID   string               `json:"event_id"`
	EventType string               `json:"event_type"`
	Timestamp time.Time            `json:"timestamp"`
	Data      KafkaTransactionData `json:"data"`
}

// KafkaTransactionData представляет данные события
type KafkaTransactionData struct {
	TransactionID string           `json:"transaction_id,omitempty"`
	UserID        string           `json:"user_id,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	Country       string           `json:"country,omitempty"`
	MerchantType  string           `json:"merchant_type,omitempty"`
	RiskScore     *int             `json:"risk_score,omitempty"`
	RiskLevel     *RiskLevel       `json:"risk_level,omitempty"`

	// Поля пакетной загрузки
	Filename          string      `json:"filename,omitempty"`
	TotalTransactions int         `json:"total_transactions,omitempty"`
	ErrorCount        int         `json:"error_count,omitempty"`
	RiskDistribution  *RiskCounts `json:"risk_distribution,omitempty"`
}
