package generator

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"finpol-compliance/internal/models"

	"github.com/shopspring/decimal"
)

// Профили генерируемых транзакций
const (
	ProfileLow      = "low"
	ProfileMedium   = "medium"
	ProfileHigh     = "high"
	ProfileCritical = "critical"
)

var (
	safeCountries     = []string{"India", "USA", "United Kingdom", "Germany", "Singapore", "Japan"}
	offshoreCountries = []string{"KY", "VG", "BS", "PA", "SC", "MU"}
	merchants         = []string{"retail", "grocery", "utilities", "travel", "restaurant", "electronics"}
)

// TransactionGenerator строит случайные корректные входные данные транзакции
type TransactionGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewTransactionGenerator() *TransactionGenerator {
	return &TransactionGenerator{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate генерирует входные данные для профиля риска; неизвестный профиль - случайный
func (g *TransactionGenerator) Generate(profile string) *models.TransactionInput {
	g.mu.Lock()
	defer g.mu.Unlock()

	profile = strings.ToLower(strings.TrimSpace(profile))
	switch profile {
	case ProfileLow, ProfileMedium, ProfileHigh, ProfileCritical:
	default:
		profiles := []string{ProfileLow, ProfileLow, ProfileMedium, ProfileHigh, ProfileCritical}
		profile = profiles[g.rand.Intn(len(profiles))]
	}

	ts := time.Now().UTC().Add(-time.Duration(g.rand.Intn(3600)) * time.Second)
	in := &models.TransactionInput{
		UserID:           fmt.Sprintf("user_%05d", g.rand.Intn(100000)),
		Currency:         "INR",
		TransactionType:  models.TransactionTypes[g.rand.Intn(len(models.TransactionTypes))],
		SenderAccount:    g.account(),
		RecipientAccount: g.account(),
		Country:          "India",
		MerchantType:     g.pick(merchants),
		DeviceRiskScore:  g.round(g.rand.Float64()*0.5, 2),
		Timestamp:        &ts,
	}

	switch profile {
	case ProfileLow:
		g.generateLowRisk(in)
	case ProfileMedium:
		g.generateMediumRisk(in)
	case ProfileHigh:
		g.generateHighRisk(in)
	case ProfileCritical:
		g.generateCriticalRisk(in)
	}

	if in.Country != "India" {
		in.Currency = "USD"
	}
	in.Description = fmt.Sprintf("Generated %s risk %s", profile, in.TransactionType)
	return in
}

// generateLowRisk - ни одно правило не срабатывает
func (g *TransactionGenerator) generateLowRisk(in *models.TransactionInput) {
	in.Amount = g.amount(100, 400_000)
	in.Country = g.pick(safeCountries)
}

// generateMediumRisk - одно правило уровня Medium: криптобиржа или рискованное устройство
func (g *TransactionGenerator) generateMediumRisk(in *models.TransactionInput) {
	in.Amount = g.amount(1_000, 400_000)
	if g.rand.Intn(2) == 0 {
		in.MerchantType = "crypto_exchange"
		return
	}
	in.DeviceRiskScore = g.round(0.75+g.rand.Float64()*0.24, 2)
}

// generateHighRisk - одно правило уровня High: крупная сумма или офшорная юрисдикция
func (g *TransactionGenerator) generateHighRisk(in *models.TransactionInput) {
	if g.rand.Intn(2) == 0 {
		in.Amount = g.amount(1_000_001, 3_000_000)
		return
	}
	in.Amount = g.amount(1_000, 400_000)
	in.Country = g.pick(offshoreCountries)
}

// generateCriticalRisk - крупная сумма из офшора, несколько правил уровня High
func (g *TransactionGenerator) generateCriticalRisk(in *models.TransactionInput) {
	in.Amount = g.amount(1_500_000, 5_000_000)
	in.Country = g.pick(offshoreCountries)
	in.TransactionType = models.TransactionTransfer
}

func (g *TransactionGenerator) amount(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(g.round(min+g.rand.Float64()*(max-min), 2))
}

func (g *TransactionGenerator) account() string {
	return fmt.Sprintf("ACC%010d", g.rand.Int63n(10_000_000_000))
}

func (g *TransactionGenerator) pick(values []string) string {
	return values[g.rand.Intn(len(values))]
}

// round округляет до places знаков после запятой
func (g *TransactionGenerator) round(value float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(value*p) / p
}
