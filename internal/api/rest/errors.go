package rest

import (
	"errors"
	"log"
	"net/http"

	"finpol-compliance/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// statusFor переводит ошибку сервиса в HTTP-статус
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, apperrors.ErrInvalidFile):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrEvaluatorUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrReportGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError отвечает {"error": msg}; текст внутренних ошибок наружу не отдается
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		msg = "Internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}
