package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/furnishop/shop-backend-go/internal/pkg/ethiocal"
	"github.com/teambition/rrule-go"
)

type PaymentMethod string

const (
	PaymentMethodWeekly  PaymentMethod = "Weekly"
	PaymentMethodMonthly PaymentMethod = "Monthly"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodWeekly || m == PaymentMethodMonthly
}

// ParsePaymentMethod accepts "weekly" or "monthly" in any case.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly":
		return PaymentMethodWeekly, nil
	case "monthly":
		return PaymentMethodMonthly, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
}

const labelLayout = "02 Jan 2006"

// Period is a closed interval of calendar dates. Start and End are midnights
// in the shop's location and both days are included.
type Period struct {
	Method PaymentMethod
	Start  time.Time
	End    time.Time
}

// Contains reports whether the calendar date of t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	d := DateOf(t, p.Start.Location())
	return !d.Before(p.Start) && !d.After(p.End)
}

// Days returns the number of calendar days in the period.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24+0.5) + 1
}

// Label renders the interval, e.g. "06 May 2024 - 12 May 2024".
func (p Period) Label() string {
	return p.Start.Format(labelLayout) + " - " + p.End.Format(labelLayout)
}

// EthiopianLabel renders the interval in the Ethiopian calendar.
func (p Period) EthiopianLabel() string {
	return ethiocal.FromTime(p.Start).String() + " - " + ethiocal.FromTime(p.End).String()
}

// DateOf truncates t to midnight of its calendar date in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// PeriodContaining returns the week or month that contains reference.
func PeriodContaining(method PaymentMethod, reference time.Time, weekStart time.Weekday, loc *time.Location) (Period, error) {
	day := DateOf(reference, loc)

	switch method {
	case PaymentMethodWeekly:
		start, err := weekStartOnOrBefore(day, weekStart)
		if err != nil {
			return Period{}, err
		}
		return Period{Method: method, Start: start, End: start.AddDate(0, 0, 6)}, nil
	case PaymentMethodMonthly:
		return MonthPeriod(day.Year(), day.Month(), day.Location()), nil
	}
	return Period{}, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, method)
}

// PreviousPeriod returns the last full week or month before the one that
// contains reference.
func PreviousPeriod(method PaymentMethod, reference time.Time, weekStart time.Weekday, loc *time.Location) (Period, error) {
	current, err := PeriodContaining(method, reference, weekStart, loc)
	if err != nil {
		return Period{}, err
	}
	return PeriodContaining(method, current.Start.AddDate(0, 0, -1), weekStart, loc)
}

// MonthPeriod returns the full calendar month.
func MonthPeriod(year int, month time.Month, loc *time.Location) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Period{
		Method: PaymentMethodMonthly,
		Start:  start,
		End:    start.AddDate(0, 1, -1),
	}
}

// weekStartOnOrBefore finds the latest occurrence of weekStart at or before
// day using FREQ=WEEKLY;WKST=<weekStart>;BYDAY=<weekStart>.
func weekStartOnOrBefore(day time.Time, weekStart time.Weekday) (time.Time, error) {
	wd := rruleWeekday(weekStart)
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Wkst:      wd,
		Byweekday: []rrule.Weekday{wd},
		Dtstart:   day.AddDate(0, 0, -7),
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to build week rule: %w", err)
	}

	start := rule.Before(day, true)
	if start.IsZero() {
		return time.Time{}, fmt.Errorf("%w: no week start before %s", ErrInvalidPeriod, day.Format(time.DateOnly))
	}
	return DateOf(start, day.Location()), nil
}

func rruleWeekday(d time.Weekday) rrule.Weekday {
	switch d {
	case time.Sunday:
		return rrule.SU
	case time.Tuesday:
		return rrule.TU
	case time.Wednesday:
		return rrule.WE
	case time.Thursday:
		return rrule.TH
	case time.Friday:
		return rrule.FR
	case time.Saturday:
		return rrule.SA
	default:
		return rrule.MO
	}
}

// ParseWeekday accepts English weekday names ("monday", "Mon").
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("invalid weekday %q", s)
}
