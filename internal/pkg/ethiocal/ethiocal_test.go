package ethiocal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromGregorian(t *testing.T) {
	cases := []struct {
		name  string
		year  int
		month time.Month
		day   int
		want  Date
	}{
		{"new year 2016", 2023, time.September, 12, Date{2016, 1, 1}},
		{"last day of pagume in leap year", 2023, time.September, 11, Date{2015, 13, 6}},
		{"mid genbot", 2024, time.May, 10, Date{2016, 9, 2}},
		{"new year 2017", 2024, time.September, 11, Date{2017, 1, 1}},
		{"pagume 5 in common year", 2024, time.September, 10, Date{2016, 13, 5}},
		{"genna after a leap year", 2024, time.January, 7, Date{2016, 4, 28}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, FromGregorian(c.year, c.month, c.day))
		})
	}
}

func TestDate_TimeRoundTrip(t *testing.T) {
	loc := time.UTC
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, loc)
	for i := 0; i < 800; i++ {
		day := start.AddDate(0, 0, i)
		assert.Equal(t, day, FromTime(day).Time(loc), "day %s", day.Format("2006-01-02"))
	}
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "1 Meskerem 2016", Date{2016, 1, 1}.String())
	assert.Equal(t, "6 Pagume 2015", Date{2015, 13, 6}.String())
	assert.Equal(t, "", Date{2015, 14, 1}.MonthName())
}
