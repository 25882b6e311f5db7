package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"finpol-compliance/internal/models"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	maxHighRiskRows  = 20
	maxRegulations   = 10
	maxReasonLen     = 40
	maxRegContentLen = 150
)

var levelDescriptions = map[models.RiskLevel]string{
	models.RiskLow:      "Transactions within normal parameters",
	models.RiskMedium:   "Requires additional verification",
	models.RiskHigh:     "Requires manual review and approval",
	models.RiskCritical: "Requires immediate investigation",
}

// Renderer строит сводный PDF-отчет по пакетной загрузке
type Renderer struct {
	now func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Render формирует PDF с разделами: сводка, распределение рисков,
// критические и высокорисковые операции, регуляции и рекомендации
func (r *Renderer) Render(summary *models.BulkUploadSummary) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("summary is required")
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("FinPol Compliance Report", false)
	doc.SetAuthor("FinPol", false)
	doc.SetMargins(18, 18, 18)
	doc.SetAutoPageBreak(true, 18)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(30, 64, 175)
	doc.CellFormat(0, 12, "FinPol Compliance Report", "", 1, "C", false, 0, "")
	doc.SetTextColor(0, 0, 0)

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, "Generated: "+r.now().Format("January 02, 2006 at 03:04 PM"), "", 1, "L", false, 0, "")
	if summary.Filename != "" {
		doc.CellFormat(0, 6, "Source file: "+summary.Filename, "", 1, "L", false, 0, "")
	}
	doc.CellFormat(0, 6, fmt.Sprintf("Total Transactions Analyzed: %d", summary.TotalTransactions), "", 1, "L", false, 0, "")
	if summary.ErrorCount > 0 {
		doc.CellFormat(0, 6, fmt.Sprintf("Records that could not be analyzed: %d", summary.ErrorCount), "", 1, "L", false, 0, "")
	}
	doc.Ln(6)

	executiveSummary(doc, summary)
	riskDistribution(doc, summary)

	evaluated := evaluatedResults(summary.Results)
	criticalSection(doc, evaluated)
	highRiskSection(doc, evaluated)
	if len(summary.Regulations) > 0 {
		regulationsSection(doc, summary.Regulations)
	}
	recommendationsSection(doc, summary, evaluated)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionHeader(doc *fpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "B", 14)
	doc.SetTextColor(30, 64, 175)
	doc.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 10)
}

func executiveSummary(doc *fpdf.Fpdf, s *models.BulkUploadSummary) {
	sectionHeader(doc, "Executive Summary")
	if s.TotalTransactions == 0 {
		doc.CellFormat(0, 6, "No transactions to report.", "", 1, "L", false, 0, "")
		doc.Ln(6)
		return
	}

	rows := [][2]string{
		{"Total Transactions", fmt.Sprintf("%d", s.TotalTransactions)},
		{"Total Transaction Value", formatMoney(s.TotalAmount)},
		{"Compliance Rate", fmt.Sprintf("%.1f%%", s.ComplianceRate)},
		{"Low Risk", fmt.Sprintf("%d", s.LowRiskCount)},
		{"Medium Risk", fmt.Sprintf("%d", s.MediumRiskCount)},
		{"High Risk", fmt.Sprintf("%d", s.HighRiskCount)},
		{"Critical Risk", fmt.Sprintf("%d", s.CriticalCount)},
	}

	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(30, 64, 175)
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(80, 8, "Metric", "1", 0, "C", true, 0, "")
	doc.CellFormat(60, 8, "Value", "1", 1, "C", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetFillColor(248, 250, 252)
	doc.SetTextColor(0, 0, 0)
	for _, row := range rows {
		doc.CellFormat(80, 7, row[0], "1", 0, "C", true, 0, "")
		doc.CellFormat(60, 7, row[1], "1", 1, "C", true, 0, "")
	}
	doc.Ln(6)
}

func riskDistribution(doc *fpdf.Fpdf, s *models.BulkUploadSummary) {
	sectionHeader(doc, "Risk Distribution Analysis")
	if s.TotalTransactions == 0 {
		doc.CellFormat(0, 6, "No data available.", "", 1, "L", false, 0, "")
		doc.Ln(6)
		return
	}

	counts := map[models.RiskLevel]int{
		models.RiskLow:      s.RiskDistribution.Low,
		models.RiskMedium:   s.RiskDistribution.Medium,
		models.RiskHigh:     s.RiskDistribution.High,
		models.RiskCritical: s.RiskDistribution.Critical,
	}
	amounts := map[models.RiskLevel]decimal.Decimal{
		models.RiskLow:      s.AmountByRisk.Low,
		models.RiskMedium:   s.AmountByRisk.Medium,
		models.RiskHigh:     s.AmountByRisk.High,
		models.RiskCritical: s.AmountByRisk.Critical,
	}

	for _, level := range models.RiskLevels {
		pct := float64(counts[level]) / float64(s.TotalTransactions) * 100
		line := fmt.Sprintf("%s: %d transactions (%.1f%%), %s - %s",
			level, counts[level], pct, formatMoney(amounts[level]), levelDescriptions[level])
		doc.MultiCell(0, 6, line, "", "L", false)
	}
	doc.Ln(6)
}

func criticalSection(doc *fpdf.Fpdf, results []models.BulkRecordResult) {
	var critical []models.BulkRecordResult
	for _, res := range results {
		if res.Analysis.RiskLevel == models.RiskCritical {
			critical = append(critical, res)
		}
	}
	if len(critical) == 0 {
		return
	}

	sectionHeader(doc, "Critical Transactions - Immediate Action Required")
	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(220, 38, 38)
	doc.MultiCell(0, 6, fmt.Sprintf("URGENT: The following %d transaction(s) require immediate investigation:", len(critical)), "", "L", false)
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 10)

	for _, res := range critical {
		doc.MultiCell(0, 6, fmt.Sprintf("%s - %s - %s",
			res.Transaction.ID, formatMoney(res.Transaction.Amount), reasonOf(res, 0)), "", "L", false)
	}
	doc.Ln(6)
}

func highRiskSection(doc *fpdf.Fpdf, results []models.BulkRecordResult) {
	var high []models.BulkRecordResult
	for _, res := range results {
		if res.Analysis.RiskLevel == models.RiskHigh || res.Analysis.RiskLevel == models.RiskCritical {
			high = append(high, res)
		}
	}
	if len(high) == 0 {
		return
	}

	sectionHeader(doc, "High Risk Transactions Requiring Attention")
	doc.MultiCell(0, 6, fmt.Sprintf("The following %d transaction(s) require immediate review:", len(high)), "", "L", false)
	doc.Ln(2)

	widths := []float64{38, 28, 22, 22, 64}
	headers := []string{"Transaction ID", "Amount", "Type", "Risk Level", "Reason"}

	doc.SetFont("Helvetica", "B", 8)
	doc.SetFillColor(220, 38, 38)
	doc.SetTextColor(255, 255, 255)
	for i, h := range headers {
		doc.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 8)
	doc.SetFillColor(254, 242, 242)
	doc.SetTextColor(0, 0, 0)
	for i, res := range high {
		if i == maxHighRiskRows {
			break
		}
		cells := []string{
			res.Transaction.ID,
			formatMoney(res.Transaction.Amount),
			string(res.Transaction.TransactionType),
			string(res.Analysis.RiskLevel),
			reasonOf(res, maxReasonLen),
		}
		for j, c := range cells {
			doc.CellFormat(widths[j], 6, c, "1", 0, "C", true, 0, "")
		}
		doc.Ln(-1)
	}

	if len(high) > maxHighRiskRows {
		doc.MultiCell(0, 6, fmt.Sprintf("... and %d more high risk transactions", len(high)-maxHighRiskRows), "", "L", false)
	}
	doc.Ln(6)
}

func regulationsSection(doc *fpdf.Fpdf, regs []models.Regulation) {
	sectionHeader(doc, "Regulations Applied")

	for i, reg := range regs {
		if i == maxRegulations {
			doc.MultiCell(0, 6, fmt.Sprintf("... and %d more regulations", len(regs)-maxRegulations), "", "L", false)
			break
		}
		doc.SetFont("Helvetica", "B", 10)
		doc.MultiCell(0, 6, fmt.Sprintf("%s: %s", reg.Code, reg.Title), "", "L", false)
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 5, truncate(reg.Content, maxRegContentLen)+"...", "", "L", false)
		doc.Ln(2)
	}
	doc.SetFont("Helvetica", "", 10)
	doc.Ln(4)
}

func recommendationsSection(doc *fpdf.Fpdf, s *models.BulkUploadSummary, results []models.BulkRecordResult) {
	sectionHeader(doc, "Compliance Recommendations")

	for _, rec := range Recommendations(s, results) {
		doc.MultiCell(0, 6, rec, "", "J", false)
		doc.Ln(2)
	}

	doc.Ln(8)
	doc.SetFont("Helvetica", "I", 9)
	doc.CellFormat(0, 5, "---", "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, "This report was generated by FinPol Financial Compliance System", "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, "For questions or concerns, contact your compliance officer.", "", 1, "L", false, 0, "")
}

// Recommendations строит рекомендации по распределению рисков в пакете
func Recommendations(s *models.BulkUploadSummary, results []models.BulkRecordResult) []string {
	var recs []string

	if s.CriticalCount > 0 {
		recs = append(recs, fmt.Sprintf(
			"IMMEDIATE ACTION: %d critical transaction(s) require immediate investigation for potential money laundering or fraud indicators.",
			s.CriticalCount))
	}
	if s.HighRiskCount > 5 {
		recs = append(recs, fmt.Sprintf(
			"ENHANCED DUE DILIGENCE: Review %d high-risk transactions and consider filing Suspicious Activity Reports (SARs) where appropriate.",
			s.HighRiskCount))
	}

	if n := len(results); n > 0 {
		avg := s.TotalAmount.Div(decimal.NewFromInt(int64(n)))
		limit := avg.Mul(decimal.NewFromInt(5))
		outliers := 0
		for _, res := range results {
			if res.Transaction.Amount.GreaterThan(limit) {
				outliers++
			}
		}
		if float64(outliers) > float64(n)*0.1 {
			recs = append(recs, fmt.Sprintf(
				"MONITORING: Consider implementing additional controls for transactions exceeding 5x the average amount (%s).",
				formatMoney(limit)))
		}
	}

	crypto, foreign := 0, 0
	for _, res := range results {
		if res.Transaction.MerchantType == "crypto_exchange" {
			crypto++
		}
		if res.Transaction.Country != "" && res.Transaction.Country != "India" {
			foreign++
		}
	}
	if crypto > 0 {
		recs = append(recs, fmt.Sprintf(
			"CRYPTOCURRENCY: %d transaction(s) involve cryptocurrency exchanges. Ensure enhanced monitoring per FATF Travel Rule requirements.",
			crypto))
	}
	if len(results) > 0 && float64(foreign) > float64(len(results))*0.2 {
		recs = append(recs, "CROSS-BORDER: Significant volume of foreign transactions detected. Ensure compliance with international sanctions and wire transfer rules.")
	}

	if len(recs) == 0 {
		recs = append(recs, "No significant concerns detected. Continue routine monitoring and compliance procedures.")
	}
	for i := range recs {
		recs[i] = fmt.Sprintf("%d. %s", i+1, recs[i])
	}
	return recs
}

func evaluatedResults(results []models.BulkRecordResult) []models.BulkRecordResult {
	out := make([]models.BulkRecordResult, 0, len(results))
	for _, res := range results {
		if res.Analysis != nil && res.Transaction != nil {
			out = append(out, res)
		}
	}
	return out
}

func reasonOf(res models.BulkRecordResult, max int) string {
	if len(res.Analysis.Factors) == 0 {
		return "No reason provided"
	}
	reason := strings.Join(res.Analysis.Factors, "; ")
	if max > 0 {
		reason = truncate(reason, max)
	}
	return reason
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// formatMoney форматирует сумму с разделителями тысяч: 1,234,567.89
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var sb strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(ch)
	}

	out := "$" + sb.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
