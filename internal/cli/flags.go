package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value holding a civil date. It accepts YYYY-MM-DD and
// the words "today" and "tomorrow".
type dateValue struct {
	t   *time.Time
	now func() time.Time
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(p *time.Time, now func() time.Time) *dateValue {
	return &dateValue{t: p, now: now}
}

func (d *dateValue) Set(s string) error {
	v, err := parseDate(s, d.now())
	if err != nil {
		return err
	}
	*d.t = v
	return nil
}

func (d *dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return domain.FormatDate(*d.t)
}

func (d *dateValue) Type() string {
	return "date"
}

func parseDate(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return domain.Today(now), nil
	case "tomorrow":
		return domain.AddDays(domain.Today(now), 1), nil
	}
	return domain.ParseDate(strings.TrimSpace(s))
}

// parseInt parses a signed integer argument, naming it in the error.
func parseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number, got %q", name, s)
	}
	return v, nil
}

// parseSwitch accepts on/off style arguments.
func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected on or off, got %q", domain.ErrInvalidOption, s)
}
