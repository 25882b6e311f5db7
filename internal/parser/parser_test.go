package parser

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"finpol-compliance/internal/apperrors"
	"finpol-compliance/internal/models"

	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestParser() *Parser {
	return &Parser{now: func() time.Time { return fixedNow }}
}

func TestDetectFormat(t *testing.T) {
	f, err := DetectFormat("", "statement.CSV")
	require.NoError(t, err)
	assert.Equal(t, models.FormatCSV, f)

	f, err = DetectFormat("xlsx", "upload.bin")
	require.NoError(t, err)
	assert.Equal(t, models.FormatXLSX, f)

	_, err = DetectFormat("", "notes.txt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFile)

	_, err = DetectFormat("", "noextension")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFile)
}

func TestParseCSV_AliasesAndDefaults(t *testing.T) {
	content := []byte("Date,Amt,Narration,Beneficiary,Merchant,Country,Type,Curr\n" +
		"2024-03-01,\"1,500.50\",Rent,ACC-9,real_estate,India,payment,inr\n" +
		"03/02/2024,250,Coffee,,,,,\n" +
		",,no amount row,,,,,\n")

	records, err := newTestParser().Parse(models.FormatCSV, content, "user-42")
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, 1, first.Row)
	assert.Equal(t, "TXN-20240315-0001", first.ID)
	assert.NoError(t, first.Err)
	assert.True(t, decimal.RequireFromString("1500.50").Equal(first.Input.Amount))
	assert.Equal(t, "INR", first.Input.Currency)
	assert.Equal(t, models.TransactionPayment, first.Input.TransactionType)
	assert.Equal(t, "ACC-9", first.Input.RecipientAccount)
	assert.Equal(t, "real_estate", first.Input.MerchantType)
	assert.Equal(t, "user-42", first.Input.UserID)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *first.Input.Timestamp)

	second := records[1]
	assert.Equal(t, 2, second.Row)
	assert.Equal(t, "TXN-20240315-0002", second.ID)
	assert.Equal(t, DefaultCurrency, second.Input.Currency)
	assert.Equal(t, DefaultCountry, second.Input.Country)
	assert.Equal(t, DefaultMerchantType, second.Input.MerchantType)
	assert.Equal(t, models.TransactionTransfer, second.Input.TransactionType)
	assert.Equal(t, 0.0, second.Input.DeviceRiskScore)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), *second.Input.Timestamp)
}

func TestParseCSV_InvalidAmountIsRowError(t *testing.T) {
	content := []byte("amount,user_id,device_risk_score\nabc,u1,\n100,u2,0.9\n100,u3,high\n")

	records, err := newTestParser().Parse(models.FormatCSV, content, "")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Error(t, records[0].Err)
	assert.NoError(t, records[1].Err)
	assert.Equal(t, "u2", records[1].Input.UserID)
	assert.Equal(t, 0.9, records[1].Input.DeviceRiskScore)
	assert.Error(t, records[2].Err)
}

func TestParseCSV_Empty(t *testing.T) {
	records, err := newTestParser().Parse(models.FormatCSV, []byte{}, "u1")
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = newTestParser().Parse(models.FormatCSV, []byte("amount,currency\n"), "u1")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseCSV_Malformed(t *testing.T) {
	_, err := newTestParser().Parse(models.FormatCSV, []byte("amount\n\"unterminated"), "u1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFile)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"transaction_amount", "customer_id", "country", "mcc"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"2000000", "cust-1", "USA", "crypto_exchange"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"75.25", "cust-2", "India", "grocery"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	records, err := newTestParser().Parse(models.FormatXLSX, buf.Bytes(), "fallback")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, decimal.NewFromInt(2000000).Equal(records[0].Input.Amount))
	assert.Equal(t, "cust-1", records[0].Input.UserID)
	assert.Equal(t, "crypto_exchange", records[0].Input.MerchantType)
	assert.Equal(t, "USA", records[0].Input.Country)
	assert.Equal(t, "cust-2", records[1].Input.UserID)
}

func TestParseXLSX_NotAWorkbook(t *testing.T) {
	_, err := newTestParser().Parse(models.FormatXLSX, []byte("plain text"), "u1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFile)
}

func TestParsePDF(t *testing.T) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		"Account Statement",
		"03/01/2024 ATM Debit $1,234.56",
		"03/05/2024 Salary credit 50,000.00",
		"Page 1 of 1",
	} {
		doc.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))

	records, err := newTestParser().Parse(models.FormatPDF, buf.Bytes(), "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, decimal.RequireFromString("1234.56").Equal(records[0].Input.Amount))
	assert.Equal(t, models.TransactionWithdrawal, records[0].Input.TransactionType)
	assert.True(t, decimal.NewFromInt(50000).Equal(records[1].Input.Amount))
	assert.Equal(t, models.TransactionDeposit, records[1].Input.TransactionType)
}

func TestTextLines_GroupsGlyphsByRow(t *testing.T) {
	glyph := func(s string, x, y float64) pdf.Text {
		return pdf.Text{S: s, X: x, Y: y, W: 5, FontSize: 11}
	}
	// порядок глифов в потоке не совпадает с порядком на странице
	texts := []pdf.Text{
		glyph("$", 40, 775.2), glyph("9", 45, 775.2),
		glyph("A", 10, 798.9), glyph("B", 15, 799.4),
		glyph("D", 30, 798.9), glyph("r", 60, 775.2),
		glyph(" ", 20, 798.9), glyph("C", 25, 798.9),
	}

	assert.Equal(t, []string{"AB CD", "$9 r"}, textLines(texts))
	assert.Empty(t, textLines(nil))
}

func TestTruncate_RuneBoundary(t *testing.T) {
	s := strings.Repeat("a", maxDescriptionLen-1) + "€uro"

	got := truncate(s, maxDescriptionLen)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxDescriptionLen)
	assert.Equal(t, strings.Repeat("a", maxDescriptionLen-1), got)

	assert.Equal(t, "short", truncate("short", maxDescriptionLen))
}

func TestRecordFromLine_LongDescriptionStaysValidUTF8(t *testing.T) {
	line := "03/01/2024 $12.00 " + strings.Repeat("Перевод ", 40)

	rec, ok := recordFromLine(line, "u1", fixedNow)
	require.True(t, ok)
	assert.True(t, utf8.ValidString(rec.Input.Description))
	assert.LessOrEqual(t, len(rec.Input.Description), maxDescriptionLen)
}

func TestParsePDF_NotAPDF(t *testing.T) {
	_, err := newTestParser().Parse(models.FormatPDF, []byte("not a pdf"), "u1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFile)
}

func TestRecordFromLine(t *testing.T) {
	rec, ok := recordFromLine("15/03/2024 POS DR €99.90 grocery", "u1", fixedNow)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("99.90").Equal(rec.Input.Amount))
	assert.Equal(t, models.TransactionWithdrawal, rec.Input.TransactionType)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *rec.Input.Timestamp)

	_, ok = recordFromLine("Statement period 03/01/2024 - 03/31/2024", "u1", fixedNow)
	assert.False(t, ok)

	_, ok = recordFromLine("   ", "u1", fixedNow)
	assert.False(t, ok)
}

func TestParseAmount(t *testing.T) {
	for raw, want := range map[string]string{
		"1,234.56": "1234.56",
		"$10":      "10",
		"(12.50)":  "12.5",
		"-40":      "40",
	} {
		got, err := parseAmount(raw)
		require.NoError(t, err, raw)
		assert.True(t, decimal.RequireFromString(want).Equal(got), raw)
	}

	_, err := parseAmount("12abc")
	assert.Error(t, err)
}
