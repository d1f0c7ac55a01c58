package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestEffectiveHourlyRate(t *testing.T) {
	policy := DefaultRatePolicy()

	cases := []struct {
		name  string
		rates Rates
		want  string
	}{
		{"hourly wins over daily", Rates{Hourly: dec("50"), Daily: dec("100")}, "50"},
		{"daily over eight hours", Rates{Daily: dec("160")}, "20"},
		{"monthly over 26 days of 8 hours", Rates{Monthly: dec("10400")}, "50"},
		{"zero hourly falls through to daily", Rates{Hourly: dec("0"), Daily: dec("80")}, "10"},
		{"negative daily falls through to monthly", Rates{Daily: dec("-5"), Monthly: dec("2080")}, "10"},
		{"no rates", Rates{}, "0"},
		{"only zero rates", Rates{Hourly: dec("0"), Daily: dec("0"), Monthly: dec("0")}, "0"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := EffectiveHourlyRate(c.rates, policy)
			assert.True(t, decimal.RequireFromString(c.want).Equal(got), "got %s", got)
		})
	}
}

func TestEffectiveHourlyRate_MonthlyDivisorIsPolicy(t *testing.T) {
	policy := DefaultRatePolicy()
	policy.MonthlyWorkingDays = 22

	got := EffectiveHourlyRate(Rates{Monthly: dec("8800")}, policy)
	assert.True(t, decimal.NewFromInt(50).Equal(got), "got %s", got)
}

func TestEffectiveHourlyRate_ZeroPolicyUsesDefaults(t *testing.T) {
	got := EffectiveHourlyRate(Rates{Daily: dec("160")}, RatePolicy{})
	assert.True(t, decimal.NewFromInt(20).Equal(got), "got %s", got)
}
