package payroll

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Attendance statuses understood by the calculator.
const (
	AttendancePresent = "Present"
	AttendanceLate    = "Late"
	AttendanceAbsent  = "Absent"
)

type PayStatus string

const (
	PayStatusUnpaid PayStatus = "Unpaid"
	PayStatusPaid   PayStatus = "Paid"
)

// EmployeePay is the slice of an employee the calculator needs.
type EmployeePay struct {
	EmployeeID   string
	EmployeeName string
	Method       PaymentMethod
	Rates        Rates
}

// AttendanceEntry is one attendance record with its date already normalized.
type AttendanceEntry struct {
	EmployeeID    string
	Date          time.Time
	Morning       *string
	Afternoon     *string
	Status        string
	OvertimeHours float64
}

func (a AttendanceEntry) qualifies() bool {
	return a.Status == AttendancePresent || a.Status == AttendanceLate
}

// Rules bundles the shift windows and rate constants of one calculation.
type Rules struct {
	Shifts Shifts
	Rate   RatePolicy
}

func DefaultRules() Rules {
	return Rules{Shifts: DefaultShifts(), Rate: DefaultRatePolicy()}
}

// Entry is the payroll of one employee for one period. It is rebuilt from
// scratch on every calculation.
type Entry struct {
	EmployeeID           string
	EmployeeName         string
	PaymentMethod        PaymentMethod
	Period               Period
	PeriodLabel          string
	PeriodLabelEthiopian string
	WorkingDays          int
	TotalHours           float64
	OvertimeHours        float64
	HourlyRate           decimal.Decimal
	BaseAmount           decimal.Decimal
	OvertimeAmount       decimal.Decimal
	Amount               decimal.Decimal
	Status               PayStatus
	DuplicateDates       []string
}

type CalculationInput struct {
	Employee EmployeePay
	Records  []AttendanceEntry
	Period   Period
	Rules    Rules
}

// Calculate folds one employee's attendance inside the period into an entry.
// The boolean is false when the employee earns nothing for the period: no
// rate configured or no credited time.
//
// Records of other employees are ignored. Records sharing a date are all
// counted and the date is reported in DuplicateDates.
func Calculate(in CalculationInput) (Entry, bool, error) {
	rate := EffectiveHourlyRate(in.Employee.Rates, in.Rules.Rate)
	if !rate.IsPositive() {
		return Entry{}, false, nil
	}

	var (
		minutes       int64
		overtimeHours float64
		perDate       = make(map[string]int)
	)

	for _, rec := range in.Records {
		if rec.EmployeeID != in.Employee.EmployeeID || !rec.qualifies() || !in.Period.Contains(rec.Date) {
			continue
		}

		worked, err := WorkMinutes(rec.Morning, rec.Afternoon, in.Rules.Shifts)
		if err != nil {
			return Entry{}, false, fmt.Errorf("employee %s on %s: %w",
				in.Employee.EmployeeID, rec.Date.Format(time.DateOnly), err)
		}
		minutes += int64(worked)
		if rec.OvertimeHours > 0 {
			overtimeHours += rec.OvertimeHours
		}
		perDate[DateOf(rec.Date, in.Period.Start.Location()).Format(time.DateOnly)]++
	}

	base := rate.Mul(decimal.NewFromInt(minutes)).Div(decimal.NewFromInt(60)).Round(2)
	overtime := rate.Mul(decimal.NewFromFloat(overtimeHours)).Mul(in.Rules.Rate.overtimeMultiplier()).Round(2)
	amount := base.Add(overtime)
	if !amount.IsPositive() {
		return Entry{}, false, nil
	}

	var duplicates []string
	for date, n := range perDate {
		if n > 1 {
			duplicates = append(duplicates, date)
		}
	}
	sort.Strings(duplicates)

	return Entry{
		EmployeeID:           in.Employee.EmployeeID,
		EmployeeName:         in.Employee.EmployeeName,
		PaymentMethod:        in.Employee.Method,
		Period:               in.Period,
		PeriodLabel:          in.Period.Label(),
		PeriodLabelEthiopian: in.Period.EthiopianLabel(),
		WorkingDays:          len(perDate),
		TotalHours:           float64(minutes) / 60,
		OvertimeHours:        overtimeHours,
		HourlyRate:           rate,
		BaseAmount:           base,
		OvertimeAmount:       overtime,
		Amount:               amount,
		Status:               PayStatusUnpaid,
		DuplicateDates:       duplicates,
	}, true, nil
}

// CalculateAll runs Calculate for every employee and returns the entries
// ordered by employee name, then id.
func CalculateAll(employees []EmployeePay, records []AttendanceEntry, period Period, rules Rules) ([]Entry, error) {
	byEmployee := make(map[string][]AttendanceEntry, len(employees))
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = append(byEmployee[rec.EmployeeID], rec)
	}

	entries := make([]Entry, 0, len(employees))
	for _, emp := range employees {
		entry, ok, err := Calculate(CalculationInput{
			Employee: emp,
			Records:  byEmployee[emp.EmployeeID],
			Period:   period,
			Rules:    rules,
		})
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].EmployeeName != entries[j].EmployeeName {
			return entries[i].EmployeeName < entries[j].EmployeeName
		}
		return entries[i].EmployeeID < entries[j].EmployeeID
	})
	return entries, nil
}

// Total sums the amounts of entries.
func Total(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}
