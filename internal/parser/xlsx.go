package parser

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// parseXLSX читает первый лист книги
func parseXLSX(content []byte, userID string, now time.Time) ([]Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return parseTable(rows, userID, now), nil
}
