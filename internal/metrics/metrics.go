package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - счетчики и гистограммы конвейера оценки рисков.
// Методы безопасны для nil-получателя.
type Metrics struct {
	// Итоги оценки по уровню риска и источнику (api, bulk)
	EvaluationOutcome *prometheus.CounterVec

	// Длительность вызова оценщика
	EvaluationLatency prometheus.Histogram

	// Отказы оценщика
	EvaluatorFailures prometheus.Counter

	// Загруженные файлы по формату и результату
	BulkFiles *prometheus.CounterVec

	// Обработанные строки файлов по результату
	BulkRows *prometheus.CounterVec

	// Отчеты о соответствии по результату
	ReportOutcome *prometheus.CounterVec
}

// New регистрирует метрики в reg. nil означает DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		EvaluationOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "finpol_risk_evaluations_total",
			Help: "Total risk evaluations by level and source",
		}, []string{"level", "source"}),

		EvaluationLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "finpol_risk_evaluation_duration_seconds",
			Help:    "Duration of a single risk evaluation",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),

		EvaluatorFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "finpol_risk_evaluator_failures_total",
			Help: "Total failed or timed out risk evaluations",
		}),

		BulkFiles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "finpol_bulk_files_total",
			Help: "Total uploaded statement files by format and outcome",
		}, []string{"format", "outcome"}), // outcome: processed, rejected

		BulkRows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "finpol_bulk_rows_total",
			Help: "Total statement rows by outcome",
		}, []string{"outcome"}), // outcome: evaluated, failed

		ReportOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "finpol_compliance_reports_total",
			Help: "Total compliance reports by outcome",
		}, []string{"kind", "outcome"}), // kind: transaction, bulk_pdf
	}
}

func (m *Metrics) IncrementEvaluation(level, source string) {
	if m != nil {
		m.EvaluationOutcome.WithLabelValues(level, source).Inc()
	}
}

func (m *Metrics) ObserveEvaluationLatency(d time.Duration) {
	if m != nil {
		m.EvaluationLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementEvaluatorFailure() {
	if m != nil {
		m.EvaluatorFailures.Inc()
	}
}

// IncrementBulkFile учитывает загруженный файл; format может быть пустым для отклоненных
func (m *Metrics) IncrementBulkFile(format, outcome string) {
	if m != nil {
		if format == "" {
			format = "unknown"
		}
		m.BulkFiles.WithLabelValues(format, outcome).Inc()
	}
}

func (m *Metrics) AddBulkRows(outcome string, n int) {
	if m != nil && n > 0 {
		m.BulkRows.WithLabelValues(outcome).Add(float64(n))
	}
}

func (m *Metrics) IncrementReport(kind, outcome string) {
	if m != nil {
		m.ReportOutcome.WithLabelValues(kind, outcome).Inc()
	}
}
