package generator

import (
	"context"
	"testing"

	"finpol-compliance/internal/models"
	"finpol-compliance/internal/risk"
	"finpol-compliance/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionGenerator(t *testing.T) {
	gen := NewTransactionGenerator()
	require.NotNil(t, gen)
	assert.NotNil(t, gen.rand)
}

func TestGenerate_ValidInput(t *testing.T) {
	gen := NewTransactionGenerator()
	v := validation.New()

	for _, profile := range []string{ProfileLow, ProfileMedium, ProfileHigh, ProfileCritical, "", "unknown"} {
		for i := 0; i < 20; i++ {
			in := gen.Generate(profile)
			require.NotNil(t, in)
			assert.NoError(t, v.Struct(in), "profile %q", profile)
			assert.True(t, in.Amount.IsPositive())
			assert.NotEmpty(t, in.SenderAccount)
			assert.NotNil(t, in.Timestamp)
		}
	}
}

func TestGenerate_ProfilesMatchEvaluator(t *testing.T) {
	gen := NewTransactionGenerator()
	engine := risk.NewEngine(nil)

	tests := []struct {
		profile string
		want    models.RiskLevel
	}{
		{ProfileLow, models.RiskLow},
		{ProfileMedium, models.RiskMedium},
		{ProfileHigh, models.RiskHigh},
		{ProfileCritical, models.RiskCritical},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				in := gen.Generate(tt.profile)
				analysis, err := engine.Evaluate(context.Background(), in)
				require.NoError(t, err)
				assert.Equal(t, tt.want, analysis.RiskLevel, "input %+v", in)
			}
		})
	}
}

func TestGenerate_CurrencyFollowsCountry(t *testing.T) {
	gen := NewTransactionGenerator()

	for i := 0; i < 50; i++ {
		in := gen.Generate(ProfileCritical)
		assert.NotEqual(t, "India", in.Country)
		assert.Equal(t, "USD", in.Currency)
	}
}

func TestRound(t *testing.T) {
	gen := NewTransactionGenerator()
	assert.Equal(t, 1.23, gen.round(1.2345, 2))
	assert.Equal(t, 0.8, gen.round(0.799, 2))
}
