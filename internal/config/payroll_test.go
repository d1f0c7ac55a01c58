package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayrollConfig_Rules(t *testing.T) {
	p := PayrollConfig{
		HoursPerDay:        8,
		MonthlyWorkingDays: 22,
		OvertimeMultiplier: decimal.RequireFromString("1.25"),
		MorningShift:       "08:00-12:30",
		AfternoonShift:     "13:30-17:00",
	}

	rules, err := p.Rules()
	require.NoError(t, err)
	assert.Equal(t, "12:30", rules.Shifts.Morning.End.String())
	assert.Equal(t, "13:30", rules.Shifts.Afternoon.Start.String())
	assert.Equal(t, 22, rules.Rate.MonthlyWorkingDays)

	p.AfternoonShift = "12:00-17:00"
	_, err = p.Rules()
	assert.Error(t, err)

	p.AfternoonShift = "1pm-5pm"
	_, err = p.Rules()
	assert.Error(t, err)
}

func TestPayrollConfig_Weekday(t *testing.T) {
	d, err := PayrollConfig{WeekStart: "sunday"}.Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	_, err = PayrollConfig{WeekStart: "someday"}.Weekday()
	assert.Error(t, err)
}
