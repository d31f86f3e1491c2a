package calendar

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/gantry/internal/domain"
)

var holidayToken = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseHolidayList reads one YYYY-MM-DD token per line. Lines that are not a
// valid date are dropped without error. Duplicates keep their first position.
func ParseHolidayList(text string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		tok := strings.TrimSpace(line)
		if !holidayToken.MatchString(tok) {
			continue
		}
		if _, err := domain.ParseDate(tok); err != nil {
			continue
		}
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// FormatHolidayList is the inverse of ParseHolidayList.
func FormatHolidayList(holidays []string) string {
	return strings.Join(holidays, "\n")
}
