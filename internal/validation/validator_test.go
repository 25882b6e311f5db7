package validation

import (
	"testing"

	"finpol-compliance/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *models.TransactionInput {
	return &models.TransactionInput{
		UserID:          "user_1",
		Amount:          decimal.NewFromInt(100),
		Currency:        "USD",
		TransactionType: models.TransactionPayment,
		Country:         "US",
		MerchantType:    "retail",
		DeviceRiskScore: 0.1,
	}
}

func TestValidate_ValidInput(t *testing.T) {
	err := New().Struct(validInput())
	assert.NoError(t, err)
}

func TestValidate_NegativeAmount(t *testing.T) {
	in := validInput()
	in.Amount = decimal.NewFromFloat(-0.01)

	err := New().Struct(in)
	require.Error(t, err)
	assert.Contains(t, Describe(err), "amount must be >= 0")
}

func TestValidate_DeviceRiskOutOfRange(t *testing.T) {
	in := validInput()
	in.DeviceRiskScore = 1.5

	err := New().Struct(in)
	require.Error(t, err)
	assert.Contains(t, Describe(err), "device_risk_score must be <= 1")
}

func TestValidate_UnknownTransactionType(t *testing.T) {
	in := validInput()
	in.TransactionType = "investment"

	err := New().Struct(in)
	require.Error(t, err)
	assert.Contains(t, Describe(err), "transaction_type must be one of")
}

func TestValidate_MissingRequired(t *testing.T) {
	in := validInput()
	in.Country = ""
	in.MerchantType = ""

	err := New().Struct(in)
	require.Error(t, err)
	msg := Describe(err)
	assert.Contains(t, msg, "country is required")
	assert.Contains(t, msg, "merchant_type is required")
}

func TestValidate_BlankStrings(t *testing.T) {
	in := validInput()
	in.Currency = "   "
	in.Country = "\t"
	in.MerchantType = " \n"

	err := New().Struct(in)
	require.Error(t, err)
	msg := Describe(err)
	assert.Contains(t, msg, "currency must not be blank")
	assert.Contains(t, msg, "country must not be blank")
	assert.Contains(t, msg, "merchant_type must not be blank")
}
