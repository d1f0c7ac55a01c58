package payroll

import (
	"fmt"
	"strings"
	"time"
)

// ClockTime is a time of day in minutes since midnight.
type ClockTime int

const clockLayout = "15:04"

// ParseClock parses a 24-hour "HH:MM" clock-in value.
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// MustParseClock is ParseClock for package-level defaults.
func MustParseClock(s string) ClockTime {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Shift is a daily window against which a clock-in earns credit.
type Shift struct {
	Start ClockTime
	End   ClockTime
}

// ParseShift parses "HH:MM-HH:MM".
func ParseShift(s string) (Shift, error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return Shift{}, fmt.Errorf("%w: shift %q must be HH:MM-HH:MM", ErrInvalidClockTime, s)
	}
	start, err := ParseClock(from)
	if err != nil {
		return Shift{}, err
	}
	end, err := ParseClock(to)
	if err != nil {
		return Shift{}, err
	}
	if end <= start {
		return Shift{}, fmt.Errorf("%w: shift %q ends before it starts", ErrInvalidClockTime, s)
	}
	return Shift{Start: start, End: end}, nil
}

// credit returns the minutes earned by clocking in at in. Arriving early
// earns nothing extra; arriving at or after the end earns nothing.
func (s Shift) credit(in ClockTime) int {
	if in >= s.End {
		return 0
	}
	return int(s.End - max(s.Start, in))
}

// Shifts are the two daily windows a working day is credited against.
type Shifts struct {
	Morning   Shift
	Afternoon Shift
}

// DefaultShifts credits the morning from 08:00 to 12:30 and the afternoon from
// 13:00 to 17:00.
func DefaultShifts() Shifts {
	return Shifts{
		Morning:   Shift{Start: MustParseClock("08:00"), End: MustParseClock("12:30")},
		Afternoon: Shift{Start: MustParseClock("13:00"), End: MustParseClock("17:00")},
	}
}

// WorkMinutes returns the minutes credited for one day given the morning and
// afternoon clock-ins. A day without both clock-ins earns nothing. Present
// values are always parsed so malformed input never passes silently.
func WorkMinutes(morning, afternoon *string, shifts Shifts) (int, error) {
	m, hasMorning, err := parseOptionalClock(morning)
	if err != nil {
		return 0, fmt.Errorf("morning: %w", err)
	}
	a, hasAfternoon, err := parseOptionalClock(afternoon)
	if err != nil {
		return 0, fmt.Errorf("afternoon: %w", err)
	}
	if !hasMorning || !hasAfternoon {
		return 0, nil
	}

	total := shifts.Morning.credit(m) + shifts.Afternoon.credit(a)
	return max(total, 0), nil
}

// WorkHours is WorkMinutes expressed in hours.
func WorkHours(morning, afternoon *string, shifts Shifts) (float64, error) {
	minutes, err := WorkMinutes(morning, afternoon, shifts)
	if err != nil {
		return 0, err
	}
	return float64(minutes) / 60, nil
}

func parseOptionalClock(s *string) (ClockTime, bool, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return 0, false, nil
	}
	c, err := ParseClock(*s)
	if err != nil {
		return 0, false, err
	}
	return c, true, nil
}
