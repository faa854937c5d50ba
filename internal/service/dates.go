package service

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Today returns the current calendar date in the local timezone. Date strings
// are always built from local year/month/day fields, never from a UTC instant,
// so the day never shifts across the UTC offset.
func Today() string {
	return time.Now().Local().Format(dateLayout)
}

func Yesterday() string {
	return time.Now().Local().AddDate(0, 0, -1).Format(dateLayout)
}

// AddDays shifts a YYYY-MM-DD date string by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := parseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(dateLayout), nil
}

func parseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return t, nil
}

func validateDate(date string) (string, error) {
	t, err := parseDate(date)
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}

func dateOrToday(date string) (string, error) {
	if strings.TrimSpace(date) == "" {
		return Today(), nil
	}
	return validateDate(date)
}
