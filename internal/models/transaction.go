package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Суммы в JSON отдаются числом, а не строкой
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionType - тип операции
type TransactionType string

const (
	TransactionTransfer   TransactionType = "transfer"
	TransactionPayment    TransactionType = "payment"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionDeposit    TransactionType = "deposit"
)

// TransactionTypes перечисляет допустимые типы операций
var TransactionTypes = []TransactionType{
	TransactionTransfer, TransactionPayment, TransactionWithdrawal, TransactionDeposit,
}

// RiskLevel - категория риска
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// RiskLevels упорядочены по возрастанию серьезности
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}

// Severity возвращает порядковый номер уровня, -1 для неизвестного
func (l RiskLevel) Severity() int {
	for i, lvl := range RiskLevels {
		if lvl == l {
			return i
		}
	}
	return -1
}

// Valid проверяет, что уровень входит в перечень
func (l RiskLevel) Valid() bool { return l.Severity() >= 0 }

// TransactionInput представляет данные для создания транзакции
type TransactionInput struct {
	UserID           string          `json:"user_id" binding:"required,notblank"`
	Amount           decimal.Decimal `json:"amount" binding:"gte=0"`
	Currency         string          `json:"currency" binding:"required,notblank"`
	TransactionType  TransactionType `json:"transaction_type" binding:"required,oneof=transfer payment withdrawal deposit"`
	Description      string          `json:"description,omitempty"`
	SenderAccount    string          `json:"sender_account"`
	RecipientAccount string          `json:"recipient_account"`
	Country          string          `json:"country" binding:"required,notblank"`
	MerchantType     string          `json:"merchant_type" binding:"required,notblank"`
	DeviceRiskScore  float64         `json:"device_risk_score" binding:"gte=0,lte=1"`
	Timestamp        *time.Time      `json:"timestamp,omitempty"`
}

// Transaction представляет сохраненную транзакцию
type Transaction struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	TransactionType  TransactionType `json:"transaction_type"`
	Description      string          `json:"description,omitempty"`
	SenderAccount    string          `json:"sender_account"`
	RecipientAccount string          `json:"recipient_account"`
	Country          string          `json:"country"`
	MerchantType     string          `json:"merchant_type"`
	DeviceRiskScore  float64         `json:"device_risk_score"`
	Timestamp        time.Time       `json:"timestamp"`
	RiskScore        *int            `json:"risk_score,omitempty"`
	RiskLevel        *RiskLevel      `json:"risk_level,omitempty"`
	AnalyzedAt       *time.Time      `json:"analyzed_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewTransaction строит транзакцию из входных данных без полей риска
func NewTransaction(id string, in *TransactionInput, now time.Time) *Transaction {
	ts := now
	if in.Timestamp != nil && !in.Timestamp.IsZero() {
		ts = *in.Timestamp
	}
	return &Transaction{
		ID:               id,
		UserID:           in.UserID,
		Amount:           in.Amount,
		Currency:         in.Currency,
		TransactionType:  in.TransactionType,
		Description:      in.Description,
		SenderAccount:    in.SenderAccount,
		RecipientAccount: in.RecipientAccount,
		Country:          in.Country,
		MerchantType:     in.MerchantType,
		DeviceRiskScore:  in.DeviceRiskScore,
		Timestamp:        ts,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Input возвращает атрибуты транзакции в виде входных данных
func (t *Transaction) Input() *TransactionInput {
	ts := t.Timestamp
	return &TransactionInput{
		UserID:           t.UserID,
		Amount:           t.Amount,
		Currency:         t.Currency,
		TransactionType:  t.TransactionType,
		Description:      t.Description,
		SenderAccount:    t.SenderAccount,
		RecipientAccount: t.RecipientAccount,
		Country:          t.Country,
		MerchantType:     t.MerchantType,
		DeviceRiskScore:  t.DeviceRiskScore,
		Timestamp:        &ts,
	}
}

// SetRisk записывает оценку и уровень вместе
func (t *Transaction) SetRisk(score int, level RiskLevel, at time.Time) {
	t.RiskScore = &score
	t.RiskLevel = &level
	t.AnalyzedAt = &at
}

// HasRisk сообщает, была ли транзакция оценена
func (t *Transaction) HasRisk() bool {
	return t.RiskScore != nil && t.RiskLevel != nil
}
