package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-12")
	require.NoError(t, err)
	assert.Equal(t, Date(2024, time.January, 12), d)
	assert.Equal(t, "2024-01-12", FormatDate(d))
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "2024-1-12", "12/01/2024", "2024-02-30"} {
		_, err := ParseDate(s)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", s)
	}
}

func TestTruncate_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("X", 5*3600)
	in := time.Date(2024, 3, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, Date(2024, time.March, 10), Truncate(in))
}

func TestInclusiveDays(t *testing.T) {
	cases := []struct {
		start, end time.Time
		want       int
	}{
		{Date(2024, 1, 1), Date(2024, 1, 1), 1},
		{Date(2024, 1, 1), Date(2024, 1, 5), 5},
		{Date(2024, 2, 28), Date(2024, 3, 1), 3},
		{Date(2024, 3, 30), Date(2024, 4, 2), 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, InclusiveDays(tc.start, tc.end), "%s..%s", FormatDate(tc.start), FormatDate(tc.end))
	}
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, Date(2024, 1, 3), AddDays(Date(2024, 12, 31).AddDate(-1, 0, 0), 3))
	assert.Equal(t, Date(2023, 12, 29), AddDays(Date(2024, 1, 1), -3))
}
