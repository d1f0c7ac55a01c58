package payroll

import "github.com/shopspring/decimal"

// Rates are the pay fields configured on an employee. Normally only one is set.
type Rates struct {
	Hourly  *decimal.Decimal
	Daily   *decimal.Decimal
	Monthly *decimal.Decimal
}

// RatePolicy holds the constants used to turn daily and monthly rates into an
// hourly one.
type RatePolicy struct {
	HoursPerDay        int
	MonthlyWorkingDays int
	OvertimeMultiplier decimal.Decimal
}

const (
	DefaultHoursPerDay        = 8
	DefaultMonthlyWorkingDays = 26
)

func DefaultRatePolicy() RatePolicy {
	return RatePolicy{
		HoursPerDay:        DefaultHoursPerDay,
		MonthlyWorkingDays: DefaultMonthlyWorkingDays,
		OvertimeMultiplier: decimal.NewFromInt(1),
	}
}

func (p RatePolicy) hoursPerDay() decimal.Decimal {
	if p.HoursPerDay <= 0 {
		return decimal.NewFromInt(DefaultHoursPerDay)
	}
	return decimal.NewFromInt(int64(p.HoursPerDay))
}

func (p RatePolicy) monthlyWorkingDays() decimal.Decimal {
	if p.MonthlyWorkingDays <= 0 {
		return decimal.NewFromInt(DefaultMonthlyWorkingDays)
	}
	return decimal.NewFromInt(int64(p.MonthlyWorkingDays))
}

func (p RatePolicy) overtimeMultiplier() decimal.Decimal {
	if !p.OvertimeMultiplier.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return p.OvertimeMultiplier
}

// EffectiveHourlyRate resolves the hourly rate with first-match precedence:
// hourly, then daily / hours-per-day, then monthly / (working days x
// hours-per-day). Non-positive rates are skipped. Zero means unpaid.
func EffectiveHourlyRate(r Rates, p RatePolicy) decimal.Decimal {
	switch {
	case positive(r.Hourly):
		return *r.Hourly
	case positive(r.Daily):
		return r.Daily.Div(p.hoursPerDay())
	case positive(r.Monthly):
		return r.Monthly.Div(p.hoursPerDay().Mul(p.monthlyWorkingDays()))
	default:
		return decimal.Zero
	}
}

func positive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}
