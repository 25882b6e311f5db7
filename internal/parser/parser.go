package parser

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"finpol-compliance/internal/apperrors"
	"finpol-compliance/internal/models"
)

type rowError struct {
	field string
	value string
}

func (e *rowError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.field, e.value)
}

// DetectFormat определяет формат по объявленному значению или расширению файла
func DetectFormat(declared models.BulkFormat, filename string) (models.BulkFormat, error) {
	format := models.BulkFormat(strings.ToLower(strings.TrimSpace(string(declared))))
	if format == "" {
		format = models.BulkFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."))
	}
	switch format {
	case models.FormatCSV, models.FormatXLSX, models.FormatPDF:
		return format, nil
	case "":
		return "", fmt.Errorf("%w: cannot determine format of %q", apperrors.ErrInvalidFile, filename)
	default:
		return "", fmt.Errorf("%w: unsupported format %q", apperrors.ErrInvalidFile, format)
	}
}

// Parser разбирает выписки в записи транзакций
type Parser struct {
	now func() time.Time
}

func New() *Parser {
	return &Parser{now: time.Now}
}

// Parse разбирает содержимое файла. Ошибка формата возвращается как ErrInvalidFile,
// ошибки отдельных строк попадают в Record.Err.
func (p *Parser) Parse(format models.BulkFormat, content []byte, userID string) ([]Record, error) {
	now := p.now().UTC()

	var (
		records []Record
		err     error
	)
	switch format {
	case models.FormatCSV:
		records, err = parseCSV(content, userID, now)
	case models.FormatXLSX:
		records, err = parseXLSX(content, userID, now)
	case models.FormatPDF:
		records, err = parsePDF(content, userID, now)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", apperrors.ErrInvalidFile, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidFile, err)
	}

	assignIDs(records, now)
	log.Printf("Parsed %d records from %s file", len(records), format)
	return records, nil
}

// parseTable превращает таблицу с заголовком в записи
func parseTable(rows [][]string, userID string, now time.Time) []Record {
	if len(rows) == 0 {
		return nil
	}

	index := headerIndex(rows[0])
	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		in, ok, err := buildInput(rowValues(index, row), userID, now)
		if !ok {
			continue
		}
		records = append(records, Record{Row: i + 1, Input: in, Err: err})
	}
	return records
}

// assignIDs назначает идентификаторы вида TXN-YYYYMMDD-NNNN
func assignIDs(records []Record, now time.Time) {
	day := now.Format("20060102")
	for i := range records {
		records[i].ID = fmt.Sprintf("TXN-%s-%04d", day, i+1)
	}
}
