package risk

import (
	"context"
	"fmt"
	"strings"

	"finpol-compliance/internal/models"
	"finpol-compliance/internal/redis"

	"github.com/shopspring/decimal"
)

var (
	LargeAmountThreshold       = decimal.NewFromInt(1_000_000)
	ForeignHighValueThreshold  = decimal.NewFromInt(500_000)
	DeviceRiskThreshold        = 0.7
	HomeCountry                = "India"
	CryptoExchangeMerchantType = "crypto_exchange"
)

// Finding - сработавшее правило
type Finding struct {
	Reason string
	Level  models.RiskLevel
}

// Rule - одно правило оценки. nil означает, что правило не сработало.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, in *models.TransactionInput) (*Finding, error)
}

type highAmountRule struct{}

func (highAmountRule) Name() string { return "HighAmountRule" }

func (highAmountRule) Evaluate(_ context.Context, in *models.TransactionInput) (*Finding, error) {
	if in.Amount.GreaterThan(LargeAmountThreshold) {
		return &Finding{Reason: "Transaction amount exceeds 1,000,000", Level: models.RiskHigh}, nil
	}
	return nil, nil
}

type cryptoExchangeRule struct{}

func (cryptoExchangeRule) Name() string { return "CryptoExchangeRule" }

func (cryptoExchangeRule) Evaluate(_ context.Context, in *models.TransactionInput) (*Finding, error) {
	if in.MerchantType == CryptoExchangeMerchantType {
		return &Finding{Reason: "Crypto exchange merchant type", Level: models.RiskMedium}, nil
	}
	return nil, nil
}

type foreignHighValueRule struct{}

func (foreignHighValueRule) Name() string { return "ForeignHighValueRule" }

func (foreignHighValueRule) Evaluate(_ context.Context, in *models.TransactionInput) (*Finding, error) {
	if in.Country != HomeCountry && in.Amount.GreaterThan(ForeignHighValueThreshold) {
		return &Finding{
			Reason: fmt.Sprintf("High-value transaction (%s) from non-India country", in.Amount.String()),
			Level:  models.RiskHigh,
		}, nil
	}
	return nil, nil
}

type highDeviceRiskRule struct{}

func (highDeviceRiskRule) Name() string { return "HighDeviceRiskRule" }

func (highDeviceRiskRule) Evaluate(_ context.Context, in *models.TransactionInput) (*Finding, error) {
	if in.DeviceRiskScore > DeviceRiskThreshold {
		return &Finding{
			Reason: fmt.Sprintf("High device risk score (%g)", in.DeviceRiskScore),
			Level:  models.RiskMedium,
		}, nil
	}
	return nil, nil
}

// highRiskCountryRule проверяет страну по списку в Redis, без Redis - по встроенному
type highRiskCountryRule struct {
	watchlist redis.Watchlist
}

func (highRiskCountryRule) Name() string { return "HighRiskCountryRule" }

func (r highRiskCountryRule) Evaluate(ctx context.Context, in *models.TransactionInput) (*Finding, error) {
	if strings.TrimSpace(in.Country) == "" {
		return nil, nil
	}

	isHighRisk := isOffshoreCountry(in.Country)
	if !isHighRisk && r.watchlist != nil {
		var err error
		isHighRisk, err = r.watchlist.IsHighRiskCountry(ctx, in.Country)
		if err != nil {
			return nil, err
		}
	}

	if isHighRisk {
		return &Finding{
			Reason: fmt.Sprintf("Counterparty country %s is a high-risk jurisdiction", in.Country),
			Level:  models.RiskHigh,
		}, nil
	}
	return nil, nil
}

// blacklistRule проверяет счета отправителя и получателя
type blacklistRule struct {
	watchlist redis.Watchlist
}

func (blacklistRule) Name() string { return "BlacklistRule" }

func (r blacklistRule) Evaluate(ctx context.Context, in *models.TransactionInput) (*Finding, error) {
	if r.watchlist == nil {
		return nil, nil
	}

	for _, account := range []string{in.SenderAccount, in.RecipientAccount} {
		if account == "" {
			continue
		}
		isBlacklisted, err := r.watchlist.IsAccountBlacklisted(ctx, account)
		if err != nil {
			return nil, err
		}
		if isBlacklisted {
			return &Finding{
				Reason: fmt.Sprintf("Account %s is on the sanctions blacklist", account),
				Level:  models.RiskCritical,
			}, nil
		}
	}
	return nil, nil
}

// Recommendations формирует рекомендации по уровню и причинам
func Recommendations(level models.RiskLevel, reasons []string) []string {
	var recs []string

	if level == models.RiskHigh || level == models.RiskCritical {
		recs = append(recs,
			"Transaction requires manual review",
			"Verify customer identity before processing",
		)
	}

	if anyContains(reasons, "amount") {
		recs = append(recs, "Confirm source of funds")
	}
	if anyContains(reasons, "crypto") {
		recs = append(recs, "Ensure compliance with crypto regulations")
	}
	if anyContains(reasons, "foreign", "country") {
		recs = append(recs, "Verify cross-border compliance requirements")
	}
	if anyContains(reasons, "device") {
		recs = append(recs, "Request additional device verification")
	}

	if len(recs) == 0 {
		if level == models.RiskLow {
			recs = append(recs, "Transaction can proceed with standard processing")
		} else {
			recs = append(recs, "Transaction requires compliance officer review")
		}
	}
	return recs
}

func anyContains(reasons []string, words ...string) bool {
	for _, r := range reasons {
		lower := strings.ToLower(r)
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
	}
	return false
}
