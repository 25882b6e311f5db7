package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"finpol-compliance/internal/apperrors"
	"finpol-compliance/internal/generator"
	"finpol-compliance/internal/models"
	"finpol-compliance/internal/services"
	"finpol-compliance/internal/validation"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	transactionService services.TransactionService
	bulkService        services.BulkService
	regulationService  services.RegulationService
	generator          *generator.TransactionGenerator
	maxUploadBytes     int64
}

// NewHandlers создает обработчики REST API
func NewHandlers(
	transactionService services.TransactionService,
	bulkService services.BulkService,
	regulationService services.RegulationService,
	maxUploadBytes int64,
) *Handlers {
	if maxUploadBytes <= 0 {
		maxUploadBytes = services.DefaultMaxFileBytes
	}
	return &Handlers{
		transactionService: transactionService,
		bulkService:        bulkService,
		regulationService:  regulationService,
		generator:          generator.NewTransactionGenerator(),
		maxUploadBytes:     maxUploadBytes,
	}
}

// CreateTransaction создает и оценивает транзакцию
// @Summary Создать транзакцию
// @Description Валидирует транзакцию, оценивает риск и сохраняет ее. Если оценщик недоступен, транзакция сохраняется без оценки и возвращается с кодом 503.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body models.TransactionInput true "Данные транзакции"
// @Success 201 {object} models.Transaction "Транзакция создана"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]interface{} "Оценщик недоступен, транзакция сохранена без оценки"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /transactions [post]
func (h *Handlers) CreateTransaction(c *gin.Context) {
	var in models.TransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Describe(err)})
		return
	}

	tx, err := h.transactionService.Create(c.Request.Context(), &in)
	if err != nil {
		if tx != nil && errors.Is(err, apperrors.ErrEvaluatorUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "transaction": tx})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

// ListTransactions возвращает страницу транзакций
// @Summary Получить список транзакций
// @Description Транзакции упорядочены от новых к старым
// @Tags transactions
// @Produce json
// @Param limit query int false "Лимит результатов (максимум 500)" default(100)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]interface{} "Список транзакций"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /transactions [get]
func (h *Handlers) ListTransactions(c *gin.Context) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		writeError(c, err)
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		writeError(c, err)
		return
	}

	txs, err := h.transactionService.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": txs,
		"count":        len(txs),
		"offset":       offset,
	})
}

// GetTransaction возвращает транзакцию по id
// @Summary Получить транзакцию
// @Tags transactions
// @Produce json
// @Param id path string true "ID транзакции"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /transactions/{id} [get]
func (h *Handlers) GetTransaction(c *gin.Context) {
	tx, err := h.transactionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// DeleteTransaction удаляет транзакцию
// @Summary Удалить транзакцию
// @Tags transactions
// @Produce json
// @Param id path string true "ID транзакции"
// @Success 200 {object} map[string]string "Транзакция удалена"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /transactions/{id} [delete]
func (h *Handlers) DeleteTransaction(c *gin.Context) {
	id := c.Param("id")
	if err := h.transactionService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted", "id": id})
}

// AnalyzeTransaction оценивает риск транзакции
// @Summary Проанализировать транзакцию
// @Description Если transaction_id ссылается на сохраненную транзакцию, оцениваются ее атрибуты и результат записывается. Иначе оцениваются переданные атрибуты.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body models.AnalyzeRequest true "Атрибуты транзакции"
// @Success 200 {object} models.RiskOutcome
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "Оценщик недоступен"
// @Router /transactions/analyze [post]
func (h *Handlers) AnalyzeTransaction(c *gin.Context) {
	// Валидация в сервисе: для сохраненной транзакции атрибуты в теле не нужны
	var req models.AnalyzeRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	outcome, err := h.transactionService.Analyze(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// GenerateRandomTransaction генерирует случайную транзакцию
// @Summary Сгенерировать случайную транзакцию
// @Description Генерирует корректные входные данные для тестирования. Профиль: low, medium, high, critical.
// @Tags transactions
// @Produce json
// @Param profile query string false "Профиль риска"
// @Success 200 {object} models.TransactionInput "Сгенерированная транзакция"
// @Router /transactions/generate [get]
func (h *Handlers) GenerateRandomTransaction(c *gin.Context) {
	c.JSON(http.StatusOK, h.generator.Generate(c.Query("profile")))
}

// GenerateComplianceReport формирует отчет о соответствии
// @Summary Сформировать отчет о соответствии
// @Tags compliance
// @Accept json
// @Produce json
// @Param id path string true "ID транзакции"
// @Param params body models.ReportParams true "Оценка и уровень риска"
// @Success 200 {object} models.ComplianceReport
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 502 {object} map[string]string "Не удалось сформировать отчет"
// @Router /compliance/report/{id} [post]
func (h *Handlers) GenerateComplianceReport(c *gin.Context) {
	var params models.ReportParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Describe(err)})
		return
	}

	report, err := h.transactionService.GenerateReport(c.Request.Context(), c.Param("id"), params.RiskScore, params.RiskLevel)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ListRegulations возвращает базу регуляций
// @Summary Список регуляций
// @Tags compliance
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /compliance/regulations [get]
func (h *Handlers) ListRegulations(c *gin.Context) {
	regs, err := h.regulationService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"regulations": regs, "count": len(regs)})
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// SearchRegulations ищет регуляции по ключевым словам
// @Summary Поиск по регуляциям
// @Description Параметры передаются в query или в JSON-теле
// @Tags compliance
// @Accept json
// @Produce json
// @Param query query string false "Поисковый запрос"
// @Param top_k query int false "Количество результатов" default(3)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Пустой запрос"
// @Router /compliance/regulations/search [post]
func (h *Handlers) SearchRegulations(c *gin.Context) {
	req := searchRequest{Query: c.Query("query")}
	topK, err := queryInt(c, "top_k", 0)
	if err != nil {
		writeError(c, err)
		return
	}
	req.TopK = topK

	if req.Query == "" && c.Request.ContentLength != 0 {
		if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
			return
		}
	}

	matches, err := h.regulationService.Search(c.Request.Context(), req.Query, req.TopK)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": req.Query, "results": matches, "count": len(matches)})
}

// queryInt читает целый query-параметр; некорректное значение - ошибка валидации
func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Validation("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}
