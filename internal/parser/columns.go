package parser

import (
	"strings"
	"time"

	"finpol-compliance/internal/models"

	"github.com/shopspring/decimal"
)

// Значения по умолчанию для полей, отсутствующих в файле
const (
	DefaultCurrency     = "USD"
	DefaultCountry      = "India"
	DefaultMerchantType = "retail"
	DefaultUserID       = "bulk_upload"
)

// columnAliases сопоставляет поле транзакции с возможными заголовками колонок
var columnAliases = map[string][]string{
	"amount":            {"amount", "amt", "value", "transaction_amount", "debit", "credit", "transaction_value"},
	"user_id":           {"user_id", "userid", "customer_id", "customerid", "account_holder", "user"},
	"currency":          {"currency", "curr", "currency_code"},
	"transaction_type":  {"type", "transaction_type", "txn_type", "transaction_category"},
	"description":       {"description", "desc", "memo", "narration", "details", "particulars"},
	"recipient_account": {"recipient", "recipient_account", "beneficiary", "to_account", "receiver", "destination_account"},
	"sender_account":    {"sender", "sender_account", "from_account", "source_account", "payer"},
	"country":           {"country", "country_code", "nation"},
	"merchant_type":     {"merchant", "merchant_type", "category", "merchant_category", "mcc"},
	"device_risk_score": {"device_risk_score", "device_risk", "device_score"},
	"timestamp":         {"date", "timestamp", "transaction_date", "date_time", "txn_date", "value_date"},
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"01-02-2006",
	"02.01.2006",
}

// Record - транзакция, извлеченная из файла
type Record struct {
	Row   int // номер строки данных, с 1
	ID    string
	Input models.TransactionInput
	Err   error // строку не удалось разобрать
}

// headerIndex строит индекс поле -> номер колонки по заголовку
func headerIndex(header []string) map[string]int {
	normalized := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := normalized[key]; !dup {
			normalized[key] = i
		}
	}

	index := make(map[string]int, len(columnAliases))
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := normalized[alias]; ok {
				index[field] = i
				break
			}
		}
	}
	return index
}

// rowValues достает непустые значения полей из строки
func rowValues(index map[string]int, row []string) map[string]string {
	values := make(map[string]string, len(index))
	for field, i := range index {
		if i < len(row) {
			if v := strings.TrimSpace(row[i]); v != "" {
				values[field] = v
			}
		}
	}
	return values
}

// buildInput применяет значения по умолчанию. ok=false, если в строке нет суммы.
func buildInput(values map[string]string, userID string, now time.Time) (models.TransactionInput, bool, error) {
	raw, ok := values["amount"]
	if !ok {
		return models.TransactionInput{}, false, nil
	}

	in := models.TransactionInput{
		UserID:           firstNonEmpty(values["user_id"], userID, DefaultUserID),
		Currency:         strings.ToUpper(firstNonEmpty(values["currency"], DefaultCurrency)),
		TransactionType:  parseType(values["transaction_type"]),
		Description:      values["description"],
		SenderAccount:    values["sender_account"],
		RecipientAccount: values["recipient_account"],
		Country:          firstNonEmpty(values["country"], DefaultCountry),
		MerchantType:     firstNonEmpty(values["merchant_type"], DefaultMerchantType),
	}

	ts := parseTimestamp(values["timestamp"], now)
	in.Timestamp = &ts

	amount, err := parseAmount(raw)
	if err != nil {
		return in, true, err
	}
	in.Amount = amount

	if score, ok := values["device_risk_score"]; ok {
		d, err := decimal.NewFromString(score)
		if err != nil {
			return in, true, &rowError{field: "device_risk_score", value: score}
		}
		in.DeviceRiskScore = d.InexactFloat64()
	}

	return in, true, nil
}

// parseAmount принимает суммы вида "1,234.56", "$1234" и "(12.50)"
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer(",", "", "$", "", "€", "", "£", "", "₹", "", " ", "").Replace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &rowError{field: "amount", value: raw}
	}
	// Знак определяется типом операции, сумма хранится по модулю
	return d.Abs(), nil
}

func parseType(raw string) models.TransactionType {
	t := models.TransactionType(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range models.TransactionTypes {
		if t == known {
			return t
		}
	}
	return models.TransactionTransfer
}

func parseTimestamp(raw string, now time.Time) time.Time {
	if raw == "" {
		return now
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC()
		}
	}
	return now
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
