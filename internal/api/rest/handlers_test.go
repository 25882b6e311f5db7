package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finpol-compliance/internal/apperrors"
	"finpol-compliance/internal/config"
	"finpol-compliance/internal/models"
	servicemocks "finpol-compliance/internal/services/mocks"
	"finpol-compliance/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type restFixture struct {
	transactions *servicemocks.MockTransactionService
	bulk         *servicemocks.MockBulkService
	regulations  *servicemocks.MockRegulationService
	router       *gin.Engine
}

func newRestFixture(maxUpload int64) *restFixture {
	gin.SetMode(gin.TestMode)
	validation.RegisterGin()

	f := &restFixture{
		transactions: new(servicemocks.MockTransactionService),
		bulk:         new(servicemocks.MockBulkService),
		regulations:  new(servicemocks.MockRegulationService),
	}
	handlers := NewHandlers(f.transactions, f.bulk, f.regulations, maxUpload)

	router := gin.New()
	router.Use(gin.Recovery())
	RegisterRoutes(router.Group("/api/v1"), handlers)
	f.router = router
	return f
}

func (f *restFixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func sampleInput() map[string]interface{} {
	return map[string]interface{}{
		"user_id":           "user_1",
		"amount":            2500000,
		"currency":          "INR",
		"transaction_type":  "transfer",
		"sender_account":    "ACC1",
		"recipient_account": "ACC2",
		"country":           "India",
		"merchant_type":     "retail",
		"device_risk_score": 0.1,
	}
}

func sampleTransaction() *models.Transaction {
	tx := &models.Transaction{
		ID:              "txn_1",
		UserID:          "user_1",
		Amount:          decimal.NewFromInt(2500000),
		Currency:        "INR",
		TransactionType: models.TransactionTransfer,
		Country:         "India",
		MerchantType:    "retail",
		CreatedAt:       time.Now(),
	}
	tx.SetRisk(85, models.RiskHigh, time.Now())
	return tx
}

func TestHandlers_CreateTransaction_Success(t *testing.T) {
	f := newRestFixture(0)
	f.transactions.On("Create", mock.Anything, mock.MatchedBy(func(in *models.TransactionInput) bool {
		return in.Amount.Equal(decimal.NewFromInt(2500000)) && in.UserID == "user_1"
	})).Return(sampleTransaction(), nil)

	w := f.do(http.MethodPost, "/api/v1/transactions", sampleInput())

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "txn_1", body["id"])
	assert.Equal(t, "High", body["risk_level"])
	assert.Equal(t, 2500000.0, body["amount"])
	f.transactions.AssertExpectations(t)
}

func TestHandlers_CreateTransaction_Degraded(t *testing.T) {
	f := newRestFixture(0)
	degraded := &models.Transaction{ID: "txn_2", UserID: "user_1"}
	f.transactions.On("Create", mock.Anything, mock.Anything).
		Return(degraded, fmt.Errorf("%w: timeout", apperrors.ErrEvaluatorUnavailable))

	w := f.do(http.MethodPost, "/api/v1/transactions", sampleInput())

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "risk evaluator unavailable")
	tx, ok := body["transaction"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "txn_2", tx["id"])
	assert.NotContains(t, tx, "risk_score")
}

func TestHandlers_CreateTransaction_BadRequest(t *testing.T) {
	f := newRestFixture(0)

	in := sampleInput()
	delete(in, "currency")
	in["transaction_type"] = "swap"

	w := f.do(http.MethodPost, "/api/v1/transactions", in)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg := decodeBody(t, w)["error"].(string)
	assert.Contains(t, msg, "currency is required")
	assert.Contains(t, msg, "transaction_type must be one of")
	f.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandlers_CreateTransaction_NegativeAmount(t *testing.T) {
	f := newRestFixture(0)

	in := sampleInput()
	in["amount"] = -5

	w := f.do(http.MethodPost, "/api/v1/transactions", in)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "amount must be >= 0")
}

func TestHandlers_CreateTransaction_BlankCurrency(t *testing.T) {
	f := newRestFixture(0)

	in := sampleInput()
	in["currency"] = "   "

	w := f.do(http.MethodPost, "/api/v1/transactions", in)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "currency must not be blank")
	f.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandlers_GetTransaction(t *testing.T) {
	f := newRestFixture(0)
	f.transactions.On("Get", mock.Anything, "txn_1").Return(sampleTransaction(), nil)
	f.transactions.On("Get", mock.Anything, "txn_missing").
		Return(nil, fmt.Errorf("%w: transaction txn_missing", apperrors.ErrNotFound))

	w := f.do(http.MethodGet, "/api/v1/transactions/txn_1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/v1/transactions/txn_missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "not found")
}

func TestHandlers_ListTransactions(t *testing.T) {
	f := newRestFixture(0)
	f.transactions.On("List", mock.Anything, 20, 40).Return([]*models.Transaction{sampleTransaction()}, nil)

	w := f.do(http.MethodGet, "/api/v1/transactions?limit=20&offset=40", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, 1.0, body["count"])
	assert.Len(t, body["transactions"], 1)

	w = f.do(http.MethodGet, "/api/v1/transactions?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlers_DeleteTransaction(t *testing.T) {
	f := newRestFixture(0)
	f.transactions.On("Delete", mock.Anything, "txn_1").Return(nil)
	f.transactions.On("Delete", mock.Anything, "txn_missing").Return(apperrors.ErrNotFound)

	w := f.do(http.MethodDelete, "/api/v1/transactions/txn_1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"message": "Transaction deleted", "id": "txn_1"}, decodeBody(t, w))

	w = f.do(http.MethodDelete, "/api/v1/transactions/txn_missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlers_AnalyzeTransaction(t *testing.T) {
	f := newRestFixture(0)
	explanation := "COMPLIANCE ASSESSMENT: txn_1"
	f.transactions.On("Analyze", mock.Anything, mock.MatchedBy(func(req *models.AnalyzeRequest) bool {
		return req.TransactionID == "txn_1"
	})).Return(&models.RiskOutcome{
		TransactionID:         "txn_1",
		RiskScore:             85,
		RiskLevel:             models.RiskHigh,
		RequiresReview:        true,
		ComplianceExplanation: &explanation,
	}, nil)
	f.transactions.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: down", apperrors.ErrEvaluatorUnavailable))

	w := f.do(http.MethodPost, "/api/v1/transactions/analyze", map[string]string{"transaction_id": "txn_1"})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["requires_review"])
	assert.Equal(t, explanation, body["compliance_explanation"])

	w = f.do(http.MethodPost, "/api/v1/transactions/analyze", sampleInput())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/analyze", bytes.NewBufferString("{broken"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlers_GenerateRandomTransaction(t *testing.T) {
	f := newRestFixture(0)

	w := f.do(http.MethodGet, "/api/v1/transactions/generate?profile=critical", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["user_id"])
	assert.NotEqual(t, "India", body["country"])
}

func TestHandlers_GenerateComplianceReport(t *testing.T) {
	f := newRestFixture(0)
	f.transactions.On("GenerateReport", mock.Anything, "txn_1", 85, models.RiskHigh).
		Return(&models.ComplianceReport{TransactionID: "txn_1", ComplianceStatus: models.ComplianceReviewRequired}, nil)
	f.transactions.On("GenerateReport", mock.Anything, "txn_2", 85, models.RiskHigh).
		Return(nil, fmt.Errorf("%w: template", apperrors.ErrReportGenerationFailed))

	params := map[string]interface{}{"risk_score": 85, "risk_level": "High"}

	w := f.do(http.MethodPost, "/api/v1/compliance/report/txn_1", params)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "review_required", decodeBody(t, w)["compliance_status"])

	w = f.do(http.MethodPost, "/api/v1/compliance/report/txn_2", params)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = f.do(http.MethodPost, "/api/v1/compliance/report/txn_1", map[string]interface{}{"risk_score": 150, "risk_level": "High"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlers_Regulations(t *testing.T) {
	f := newRestFixture(0)
	f.regulations.On("List", mock.Anything).Return([]models.Regulation{{ID: "reg-1", Code: "AML-PMLA-STR"}}, nil)
	f.regulations.On("Search", mock.Anything, "crypto travel rule", 2).
		Return([]models.RegulationMatch{{Regulation: models.Regulation{ID: "reg-2", Code: "FATF-R16"}, Score: 5}}, nil)
	f.regulations.On("Search", mock.Anything, "", 0).Return(nil, apperrors.Validation("query must not be empty"))

	w := f.do(http.MethodGet, "/api/v1/compliance/regulations", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, decodeBody(t, w)["count"])

	w = f.do(http.MethodPost, "/api/v1/compliance/regulations/search?query=crypto+travel+rule&top_k=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "crypto travel rule", decodeBody(t, w)["query"])

	w = f.do(http.MethodPost, "/api/v1/compliance/regulations/search", map[string]interface{}{"query": "crypto travel rule", "top_k": 2})
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, "/api/v1/compliance/regulations/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartUpload(t *testing.T, path, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("user_id", "officer_1"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandlers_UploadStatement(t *testing.T) {
	f := newRestFixture(1024)
	summary := &models.BulkUploadSummary{Filename: "statement.csv", TotalTransactions: 2, ComplianceRate: 50}
	f.bulk.On("Ingest", mock.Anything, mock.MatchedBy(func(req *models.BulkUploadRequest) bool {
		return req.Filename == "statement.csv" && req.UserID == "officer_1" && string(req.Content) == "amount\n1\n2\n"
	})).Return(summary, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, multipartUpload(t, "/api/v1/bulk/upload", "statement.csv", []byte("amount\n1\n2\n")))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.0, decodeBody(t, w)["total_transactions"])
	f.bulk.AssertExpectations(t)
}

func TestHandlers_UploadStatement_Rejected(t *testing.T) {
	f := newRestFixture(16)
	f.bulk.On("Ingest", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: unsupported format \"txt\"", apperrors.ErrInvalidFile))

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, multipartUpload(t, "/api/v1/bulk/upload", "big.csv", bytes.Repeat([]byte("1"), 17)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	f.bulk.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)

	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, multipartUpload(t, "/api/v1/bulk/upload", "", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, multipartUpload(t, "/api/v1/bulk/upload", "notes.txt", []byte("x")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlers_UploadStatementReport(t *testing.T) {
	f := newRestFixture(1024)
	pdf := []byte("%PDF-1.3 test")
	f.bulk.On("IngestAndReport", mock.Anything, mock.Anything).
		Return(pdf, &models.BulkUploadSummary{TotalTransactions: 3, ComplianceRate: 66.7}, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, multipartUpload(t, "/api/v1/bulk/upload/report", "march.csv", []byte("amount\n1\n")))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="compliance_report_march.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "66.7", w.Header().Get("X-Compliance-Rate"))
	assert.Equal(t, pdf, w.Body.Bytes())
}

func TestSetupRouter_HealthReadyAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handlers := NewHandlers(new(servicemocks.MockTransactionService), new(servicemocks.MockBulkService), new(servicemocks.MockRegulationService), 0)
	router := SetupRouter(handlers, RouterOptions{
		Checks: map[string]Check{
			"sqlite": func(context.Context) error { return nil },
			"redis":  func(context.Context) error { return errors.New("connection refused") },
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"status": "healthy", "service": "FinPol API"}, decodeBody(t, w))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["ready"])
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["sqlite"])
	assert.Contains(t, checks["redis"], "connection refused")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events?limit=5", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w), "events")
}

func TestSetupRouter_RateLimitAndCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	regs := new(servicemocks.MockRegulationService)
	regs.On("List", mock.Anything).Return([]models.Regulation{}, nil)

	l, err := NewRateLimiter(config.RateLimitConfig{Enabled: true, Rate: "2-M"})
	require.NoError(t, err)

	handlers := NewHandlers(new(servicemocks.MockTransactionService), new(servicemocks.MockBulkService), regs, 0)
	router := SetupRouter(handlers, RouterOptions{
		CORS:        config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimiter: l,
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/compliance/regulations", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	_, err = NewRateLimiter(config.RateLimitConfig{Rate: "sixty"})
	assert.Error(t, err)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.Validation("bad"), http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{apperrors.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{apperrors.ErrInvalidFile, http.StatusBadRequest},
		{apperrors.ErrEvaluatorUnavailable, http.StatusServiceUnavailable},
		{apperrors.ErrReportGenerationFailed, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
