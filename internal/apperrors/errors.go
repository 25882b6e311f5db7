package apperrors

import (
	"errors"
	"fmt"
)

// ErrValidation - входные данные не прошли проверку, ничего не сохранено
var ErrValidation = errors.New("validation error")

// ErrNotFound - транзакция или другой ресурс не найден
var ErrNotFound = errors.New("resource not found")

// ErrEvaluatorUnavailable - оценщик рисков недоступен или вернул ошибку
var ErrEvaluatorUnavailable = errors.New("risk evaluator unavailable")

// ErrReportGenerationFailed - не удалось сформировать отчет о соответствии
var ErrReportGenerationFailed = errors.New("compliance report generation failed")

// ErrInvalidFile - загруженный файл не прошел проверку формата или размера
var ErrInvalidFile = errors.New("invalid file")

// ErrFileTooLarge уточняет ErrInvalidFile для файлов сверх лимита
var ErrFileTooLarge = fmt.Errorf("%w: file exceeds size limit", ErrInvalidFile)

// Validation оборачивает ErrValidation с описанием поля
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
