package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	// DateTimeLayout is the Go layout for d/M/yyyy HHmm, the only accepted
	// input form and the persisted form.
	DateTimeLayout = "2/1/2006 1504"
	DisplayLayout  = "Jan 02 2006 15:04"
	DateTimeHint   = "d/M/yyyy HHmm"
	DateTimeSample = "28/8/2025 1800"
)

var ErrInvalidDateTime = errors.New("model: invalid date/time")

var dateTimePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4}) (\d{2})(\d{2})$`)

// ParseDateTime accepts exactly d/M/yyyy HHmm and rejects values that do not
// exist on the calendar. It never falls back to another layout.
func ParseDateTime(raw string) (time.Time, error) {
	m := dateTimePattern.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %s", ErrInvalidDateTime, raw, DateTimeHint)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	if year < 1 || month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: %q is out of range", ErrInvalidDateTime, raw)
	}
	out := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	// time.Date normalizes overflow (31/4 becomes 1/5); reject instead.
	if out.Day() != day || int(out.Month()) != month || out.Year() != year {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidDateTime, raw)
	}
	return out, nil
}

func FormatDateTime(v time.Time) string {
	return v.Format(DateTimeLayout)
}

func FormatDisplay(v time.Time) string {
	return v.Format(DisplayLayout)
}
