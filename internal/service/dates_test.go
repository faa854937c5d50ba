package service_test

import (
	"testing"

	"daytrack/internal/service"
)

func TestAddDays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date string
		n    int
		want string
	}{
		{"2026-01-10", 1, "2026-01-11"},
		{"2026-01-10", -1, "2026-01-09"},
		{"2026-01-31", 1, "2026-02-01"},
		{"2026-03-01", -1, "2026-02-28"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2026-12-31", 1, "2027-01-01"},
	}
	for _, tc := range cases {
		got, err := service.AddDays(tc.date, tc.n)
		if err != nil {
			t.Fatalf("AddDays(%s, %d): %v", tc.date, tc.n, err)
		}
		if got != tc.want {
			t.Errorf("AddDays(%s, %d) = %s, want %s", tc.date, tc.n, got, tc.want)
		}
	}
}

func TestAddDaysRejectsBadDate(t *testing.T) {
	t.Parallel()

	for _, date := range []string{"", "2026-13-01", "01/10/2026", "not-a-date"} {
		if _, err := service.AddDays(date, 1); err == nil {
			t.Errorf("AddDays(%q, 1) accepted an invalid date", date)
		}
	}
}
