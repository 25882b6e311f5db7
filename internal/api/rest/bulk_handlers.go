package rest

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"finpol-compliance/internal/apperrors"
	"finpol-compliance/internal/models"

	"github.com/gin-gonic/gin"
)

// UploadStatement проверяет выписку и возвращает сводку
// @Summary Пакетная проверка выписки
// @Description Принимает CSV, XLSX или PDF до 10 MiB и оценивает каждую транзакцию
// @Tags bulk
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл выписки"
// @Param user_id formData string false "Пользователь"
// @Param format formData string false "Формат: csv, xlsx, pdf"
// @Success 200 {object} models.BulkUploadSummary
// @Failure 400 {object} map[string]string "Некорректный файл"
// @Failure 413 {object} map[string]string "Файл слишком большой"
// @Router /bulk/upload [post]
func (h *Handlers) UploadStatement(c *gin.Context) {
	req, err := h.readUpload(c)
	if err != nil {
		writeError(c, err)
		return
	}

	summary, err := h.bulkService.Ingest(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UploadStatementReport проверяет выписку и возвращает PDF-отчет
// @Summary Пакетная проверка с PDF-отчетом
// @Tags bulk
// @Accept multipart/form-data
// @Produce application/pdf
// @Param file formData file true "Файл выписки"
// @Param user_id formData string false "Пользователь"
// @Success 200 {file} file "PDF-отчет"
// @Failure 400 {object} map[string]string "Некорректный файл"
// @Failure 413 {object} map[string]string "Файл слишком большой"
// @Failure 502 {object} map[string]string "Не удалось сформировать отчет"
// @Router /bulk/upload/report [post]
func (h *Handlers) UploadStatementReport(c *gin.Context) {
	req, err := h.readUpload(c)
	if err != nil {
		writeError(c, err)
		return
	}

	pdf, summary, err := h.bulkService.IngestAndReport(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	stem := strings.TrimSuffix(filepath.Base(req.Filename), filepath.Ext(req.Filename))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="compliance_report_%s.pdf"`, stem))
	c.Header("X-Total-Transactions", fmt.Sprintf("%d", summary.TotalTransactions))
	c.Header("X-Compliance-Rate", fmt.Sprintf("%.1f", summary.ComplianceRate))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// readUpload читает файл из multipart-формы, не больше лимита плюс один байт
func (h *Handlers) readUpload(c *gin.Context) (*models.BulkUploadRequest, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: file field is required", apperrors.ErrInvalidFile)
	}
	if fh.Size > h.maxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", apperrors.ErrFileTooLarge, fh.Size, h.maxUploadBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidFile, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidFile, err)
	}

	return &models.BulkUploadRequest{
		Filename: fh.Filename,
		Format:   models.BulkFormat(c.PostForm("format")),
		UserID:   c.PostForm("user_id"),
		Content:  content,
	}, nil
}
