package config

import (
	"fmt"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
)

// Rules builds the calculator rules from the payroll settings.
func (p PayrollConfig) Rules() (payroll.Rules, error) {
	morning, err := payroll.ParseShift(p.MorningShift)
	if err != nil {
		return payroll.Rules{}, fmt.Errorf("invalid PAYROLL_MORNING_SHIFT: %w", err)
	}
	afternoon, err := payroll.ParseShift(p.AfternoonShift)
	if err != nil {
		return payroll.Rules{}, fmt.Errorf("invalid PAYROLL_AFTERNOON_SHIFT: %w", err)
	}
	if afternoon.Start < morning.End {
		return payroll.Rules{}, fmt.Errorf("PAYROLL_AFTERNOON_SHIFT must start after the morning shift ends")
	}

	return payroll.Rules{
		Shifts: payroll.Shifts{Morning: morning, Afternoon: afternoon},
		Rate: payroll.RatePolicy{
			HoursPerDay:        p.HoursPerDay,
			MonthlyWorkingDays: p.MonthlyWorkingDays,
			OvertimeMultiplier: p.OvertimeMultiplier,
		},
	}, nil
}

// Location loads the shop's time zone.
func (p PayrollConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_TIMEZONE: %w", err)
	}
	return loc, nil
}

func (p PayrollConfig) Weekday() (time.Weekday, error) {
	d, err := payroll.ParseWeekday(p.WeekStart)
	if err != nil {
		return time.Monday, fmt.Errorf("invalid PAYROLL_WEEK_START: %w", err)
	}
	return d, nil
}
