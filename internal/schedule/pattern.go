// Package schedule matches recurring-entry date patterns against calendar
// dates. A pattern is a comma-separated list of terms; a date matches the
// pattern when it matches any term.
//
// Recognized terms:
//
//	"" / "*" / "every day"   every date
//	monday…sunday, mon…sun   that weekday (case-insensitive)
//	DD                       that day of every month
//	MMDD                     that month+day of every year
//	YYYYMMDD                 that exact date
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrBadPattern indicates a pattern term that matches no recognized form.
var ErrBadPattern = errors.New("schedule: unrecognized pattern term")

var (
	exactRe    = regexp.MustCompile(`^\d{8}$`)
	monthDayRe = regexp.MustCompile(`^\d{4}$`)
	dayRe      = regexp.MustCompile(`^\d{2}$`)
)

var weekdays = map[string]time.Weekday{
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
	"sun": time.Sunday, "sunday": time.Sunday,
}

// Window returns days consecutive dates starting at start. Dates are
// normalized to midnight UTC so they compare cleanly.
func Window(start time.Time, days int) []time.Time {
	if days <= 0 {
		return nil
	}
	first := Day(start)
	out := make([]time.Time, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, first.AddDate(0, 0, i))
	}
	return out
}

// Day truncates a timestamp to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsEveryDay reports whether the pattern is one of the every-day forms.
func IsEveryDay(pattern string) bool {
	switch strings.ToLower(strings.TrimSpace(pattern)) {
	case "", "*", "every day":
		return true
	}
	return false
}

// Matches reports whether date matches the comma-separated pattern.
func Matches(pattern string, date time.Time) (bool, error) {
	if IsEveryDay(pattern) {
		return true, nil
	}
	for _, term := range strings.Split(pattern, ",") {
		ok, err := termMatches(term, date)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Validate checks every term of the pattern without matching it against a
// date, so config loading can reject bad patterns up front.
func Validate(pattern string) error {
	if IsEveryDay(pattern) {
		return nil
	}
	for _, term := range strings.Split(pattern, ",") {
		if _, err := termMatches(term, time.Time{}); err != nil {
			return err
		}
	}
	return nil
}

func termMatches(term string, date time.Time) (bool, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	switch {
	case IsEveryDay(term):
		return true, nil
	case exactRe.MatchString(term):
		y, _ := strconv.Atoi(term[:4])
		m, _ := strconv.Atoi(term[4:6])
		d, _ := strconv.Atoi(term[6:])
		yy, mm, dd := date.Date()
		return yy == y && int(mm) == m && dd == d, nil
	case monthDayRe.MatchString(term):
		m, _ := strconv.Atoi(term[:2])
		d, _ := strconv.Atoi(term[2:])
		_, mm, dd := date.Date()
		return int(mm) == m && dd == d, nil
	case dayRe.MatchString(term):
		d, _ := strconv.Atoi(term)
		return date.Day() == d, nil
	default:
		if wd, ok := weekdays[term]; ok {
			return date.Weekday() == wd, nil
		}
		return false, fmt.Errorf("%w: %q", ErrBadPattern, term)
	}
}
