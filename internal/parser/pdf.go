package parser

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"finpol-compliance/internal/models"

	"github.com/ledongthuc/pdf"
)

var (
	// Сумма с символом валюты или с копейками: $1,234.56, 1234.56
	amountPattern = regexp.MustCompile(`([$€£]?)(\d{1,3}(?:,\d{3})+|\d+)(\.\d{2})?`)
	datePattern   = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	debitPattern  = regexp.MustCompile(`(?i)\b(debit|dr)\b`)
)

const (
	maxDescriptionLen = 200
	// Глифы одной строки могут расходиться по Y на доли пункта
	rowTolerance = 2.0
)

// parsePDF извлекает строки выписки, похожие на операции
func parsePDF(content []byte, userID string, now time.Time) ([]Record, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF file: %w", err)
	}

	var records []Record
	line := 0
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		texts, err := pageText(page)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		for _, text := range textLines(texts) {
			line++
			if rec, ok := recordFromLine(text, userID, now); ok {
				rec.Row = line
				records = append(records, rec)
			}
		}
	}
	return records, nil
}

// recordFromLine разбирает строку текста. Строка без суммы пропускается.
func recordFromLine(text, userID string, now time.Time) (Record, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Record{}, false
	}

	amount, ok := findAmount(text)
	if !ok {
		return Record{}, false
	}

	txType := models.TransactionDeposit
	if debitPattern.MatchString(text) {
		txType = models.TransactionWithdrawal
	}

	ts := now
	if d := datePattern.FindString(text); d != "" {
		ts = parseTimestamp(strings.ReplaceAll(d, "-", "/"), now)
	}

	desc := truncate(text, maxDescriptionLen)

	in := models.TransactionInput{
		UserID:          firstNonEmpty(userID, DefaultUserID),
		Currency:        DefaultCurrency,
		TransactionType: txType,
		Description:     desc,
		Country:         DefaultCountry,
		MerchantType:    DefaultMerchantType,
		Timestamp:       &ts,
	}
	var err error
	in.Amount, err = parseAmount(amount)
	return Record{Input: in, Err: err}, true
}

// findAmount ищет первую сумму с символом валюты или с дробной частью,
// чтобы не принимать за сумму даты и номера страниц
func findAmount(text string) (string, bool) {
	withoutDates := datePattern.ReplaceAllString(text, " ")
	for _, m := range amountPattern.FindAllStringSubmatch(withoutDates, -1) {
		if m[1] != "" || m[3] != "" {
			return m[2] + m[3], true
		}
	}
	return "", false
}

// pageText читает глифы страницы; разбор битого потока паникует внутри pdf
func pageText(page pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()
	return page.Content().Text, nil
}

// textLines собирает глифы страницы в строки сверху вниз.
// Y в PDF растет снизу вверх, поэтому верхняя строка имеет наибольший Y.
func textLines(texts []pdf.Text) []string {
	glyphs := make([]pdf.Text, len(texts))
	copy(glyphs, texts)
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].Y > glyphs[j].Y })

	var lines []string
	for start := 0; start < len(glyphs); {
		end := start + 1
		for end < len(glyphs) && math.Abs(glyphs[start].Y-glyphs[end].Y) <= rowTolerance {
			end++
		}
		if line := joinRow(glyphs[start:end]); line != "" {
			lines = append(lines, line)
		}
		start = end
	}
	return lines
}

func joinRow(row []pdf.Text) string {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

	var b strings.Builder
	for i, g := range row {
		if i > 0 {
			prev := row[i-1]
			// разрыв шире трети кегля считаем пробелом
			if g.X-(prev.X+prev.W) > g.FontSize/3 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// truncate обрезает строку до limit байт, не разрывая многобайтовые символы
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
