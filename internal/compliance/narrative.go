package compliance

import (
	"strings"
	"text/template"
)

const narrativeText = `COMPLIANCE ASSESSMENT: {{.TransactionID}}

1. Risk summary
Transaction of {{.Amount}} {{.Currency}} ({{.TransactionType}}) by user {{.UserID}}, country {{.Country}}, merchant type {{.MerchantType}}, device risk score {{printf "%.2f" .DeviceRiskScore}}.
Assessed risk level: {{.RiskLevel}} (score {{.RiskScore}}/100).

2. Factor evaluation
{{- if .Factors}}
{{- range .Factors}}
- {{.}}
{{- end}}
{{- else}}
- No rule-based risk indicators were triggered.
{{- end}}

3. Regulatory references
{{- if .Regulations}}
{{- range .Regulations}}
- {{.Code}} ({{.Authority}}): {{.Title}}
{{- end}}
{{- else}}
- No specific regulations found.
{{- end}}

4. Determination
{{.Determination}}
`

var narrativeTemplate = template.Must(template.New("narrative").Parse(narrativeText))

type narrativeRegulation struct {
	Code      string
	Authority string
	Title     string
}

type narrativeData struct {
	TransactionID   string
	UserID          string
	Amount          string
	Currency        string
	TransactionType string
	Country         string
	MerchantType    string
	DeviceRiskScore float64
	RiskLevel       string
	RiskScore       int
	Factors         []string
	Regulations     []narrativeRegulation
	Determination   string
}

func renderNarrative(data narrativeData) (string, error) {
	var sb strings.Builder
	if err := narrativeTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}
