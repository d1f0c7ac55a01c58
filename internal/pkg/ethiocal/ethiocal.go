// Package ethiocal converts Gregorian dates to the Ethiopian (Amete Mihret)
// calendar for display labels.
package ethiocal

import (
	"fmt"
	"time"
)

const (
	// julian day number of 1970-01-01
	unixEpochJDN = 2440588
	// julian day number offset of the Amete Mihret era
	ameteMihretEpoch = 1723856
)

var monthNames = [13]string{
	"Meskerem", "Tikimt", "Hidar", "Tahsas", "Tir", "Yekatit",
	"Megabit", "Miazia", "Genbot", "Sene", "Hamle", "Nehase", "Pagume",
}

// Date is a day in the Ethiopian calendar. Months 1-12 have 30 days, month 13
// (Pagume) has 5 or 6.
type Date struct {
	Year  int
	Month int
	Day   int
}

// FromTime converts the calendar date of t (in t's location) to Ethiopian.
func FromTime(t time.Time) Date {
	return FromGregorian(t.Year(), t.Month(), t.Day())
}

// FromGregorian converts a Gregorian calendar date to Ethiopian.
func FromGregorian(year int, month time.Month, day int) Date {
	return fromJDN(gregorianToJDN(year, month, day))
}

// Time returns the Gregorian midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	jdn := ameteMihretEpoch + 365 + 365*(d.Year-1) + d.Year/4 + 30*d.Month + d.Day - 31
	utc := time.Unix(int64(jdn-unixEpochJDN)*86400, 0).UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, loc)
}

// MonthName returns the transliterated month name, or "" if out of range.
func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > len(monthNames) {
		return ""
	}
	return monthNames[d.Month-1]
}

// String renders the date as "1 Meskerem 2016".
func (d Date) String() string {
	return fmt.Sprintf("%d %s %d", d.Day, d.MonthName(), d.Year)
}

func gregorianToJDN(year int, month time.Month, day int) int {
	days := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / 86400
	return unixEpochJDN + int(days)
}

func fromJDN(jdn int) Date {
	x := jdn - ameteMihretEpoch
	r := x % 1461
	n := r%365 + 365*(r/1460)

	return Date{
		Year:  4*(x/1461) + r/365 - r/1460,
		Month: n/30 + 1,
		Day:   n%30 + 1,
	}
}
