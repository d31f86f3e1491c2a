package calendar

import (
	"testing"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/stretchr/testify/assert"
)

func d(y int, m time.Month, day int) time.Time { return domain.Date(y, m, day) }

func TestIsWorkingDay(t *testing.T) {
	cal := New([]string{"2024-01-01"})

	assert.False(t, cal.IsWorkingDay(d(2024, 1, 1)), "Monday holiday")
	assert.True(t, cal.IsWorkingDay(d(2024, 1, 2)))
	assert.False(t, cal.IsWorkingDay(d(2024, 1, 6)), "Saturday")
	assert.False(t, cal.IsWorkingDay(d(2024, 1, 7)), "Sunday")

	withWeekendHoliday := New([]string{"2024-01-06"})
	assert.False(t, withWeekendHoliday.IsWorkingDay(d(2024, 1, 6)), "Saturday regardless of holiday membership")
}

func TestIsWorkingDay_IgnoresTimeOfDay(t *testing.T) {
	cal := New([]string{"2024-01-03"})
	late := time.Date(2024, 1, 3, 23, 59, 0, 0, time.UTC)
	assert.False(t, cal.IsWorkingDay(late))
}

func TestIsWorkingDay_ZeroCalendar(t *testing.T) {
	var cal Calendar
	assert.True(t, cal.IsWorkingDay(d(2024, 1, 1)))
}

func TestAddWorkingDays(t *testing.T) {
	cal := New(nil)
	cases := []struct {
		name string
		from time.Time
		n    int
		want time.Time
	}{
		{"zero keeps date", d(2024, 1, 6), 0, d(2024, 1, 6)},
		{"within week", d(2024, 1, 8), 4, d(2024, 1, 12)},
		{"over weekend", d(2024, 1, 12), 1, d(2024, 1, 15)},
		{"from saturday", d(2024, 1, 6), 1, d(2024, 1, 8)},
		{"two weeks", d(2024, 1, 8), 10, d(2024, 1, 22)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cal.AddWorkingDays(tc.from, tc.n))
		})
	}
}

func TestAddWorkingDays_SkipsHolidays(t *testing.T) {
	cal := New([]string{"2024-01-09", "2024-01-10"})
	assert.Equal(t, d(2024, 1, 11), cal.AddWorkingDays(d(2024, 1, 8), 1))
}

func TestSubWorkingDays(t *testing.T) {
	cal := New([]string{"2024-01-05"})
	assert.Equal(t, d(2024, 1, 8), cal.SubWorkingDays(d(2024, 1, 8), 0))
	assert.Equal(t, d(2024, 1, 4), cal.SubWorkingDays(d(2024, 1, 8), 1), "skips weekend and Friday holiday")
	assert.Equal(t, d(2024, 1, 8), cal.SubWorkingDays(d(2024, 1, 12), 4))
}

func TestSnap(t *testing.T) {
	cal := New([]string{"2024-01-08"})

	assert.Equal(t, d(2024, 1, 9), cal.SnapForward(d(2024, 1, 6)), "Sat -> Tue past Monday holiday")
	assert.Equal(t, d(2024, 1, 5), cal.SnapBackward(d(2024, 1, 8)), "Monday holiday -> Friday")
	assert.Equal(t, d(2024, 1, 10), cal.SnapForward(d(2024, 1, 10)), "working day unchanged")
	assert.Equal(t, d(2024, 1, 10), cal.SnapBackward(d(2024, 1, 10)), "working day unchanged")
}

func TestArithmetic_RoundTrip(t *testing.T) {
	cal := New(nil)
	start := d(2024, 1, 1)
	for day := 0; day < 21; day++ {
		from := start.AddDate(0, 0, day)
		if !cal.IsWorkingDay(from) {
			continue
		}
		for n := 0; n <= 15; n++ {
			to := cal.AddWorkingDays(from, n)
			assert.Equal(t, from, cal.SubWorkingDays(to, n), "from=%s n=%d", domain.FormatDate(from), n)
			if n > 0 {
				assert.Equal(t, n-1, cal.WorkingDaysBetween(from, to), "strictly between excludes the target")
			}
		}
	}
}

func TestArithmetic_RoundTripWithHolidays(t *testing.T) {
	cal := New([]string{"2024-01-03", "2024-01-15", "2024-01-16"})
	from := d(2024, 1, 2)
	for n := 1; n <= 12; n++ {
		to := cal.AddWorkingDays(from, n)
		assert.True(t, cal.IsWorkingDay(to))
		assert.Equal(t, n-1, cal.WorkingDaysBetween(from, to))
		assert.Equal(t, from, cal.SubWorkingDays(to, n))
	}
}

func TestWorkingDaysIn(t *testing.T) {
	cal := New([]string{"2024-01-10"})
	assert.Equal(t, 4, cal.WorkingDaysIn(d(2024, 1, 8), d(2024, 1, 12)))
	assert.Equal(t, 0, cal.WorkingDaysIn(d(2024, 1, 12), d(2024, 1, 8)))
	assert.Equal(t, 0, cal.WorkingDaysIn(d(2024, 1, 6), d(2024, 1, 7)))
}
