package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

func parseCSV(content []byte, userID string, now time.Time) ([]Record, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	return parseTable(rows, userID, now), nil
}
