package competency

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	c, err := Parse("02/2024")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Month != time.February || c.Year != 2024 {
		t.Errorf("got %v/%d, want February/2024", c.Month, c.Year)
	}
	if c.String() != "02/2024" {
		t.Errorf("String() = %q, want 02/2024", c.String())
	}

	for _, bad := range []string{"13/2024", "00/2024", "05/0", "garbage", "2/2024", "02/2024junk", " 02/2024", "02/0000"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q): expected error", bad)
		}
	}
}

func TestMonthEndRespectsLeapYears(t *testing.T) {
	feb24, _ := Parse("02/2024")
	if got := feb24.MonthEnd().Day(); got != 29 {
		t.Errorf("02/2024 ends on day %d, want 29", got)
	}
	feb23, _ := Parse("02/2023")
	if got := feb23.MonthEnd().Day(); got != 28 {
		t.Errorf("02/2023 ends on day %d, want 28", got)
	}
}

func TestFromDate(t *testing.T) {
	d := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	if got := FromDate(d).String(); got != "07/2024" {
		t.Errorf("FromDate = %q, want 07/2024", got)
	}
}

func TestAddMonthsClampsDay(t *testing.T) {
	jan31 := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		months int
		want   string
	}{
		{0, "2024-01-31"},
		{1, "2024-02-29"},
		{2, "2024-03-31"},
		{3, "2024-04-30"},
		{13, "2025-02-28"},
	}
	for _, tc := range cases {
		got := AddMonths(jan31, tc.months).Format("2006-01-02")
		if got != tc.want {
			t.Errorf("AddMonths(+%d) = %s, want %s", tc.months, got, tc.want)
		}
	}
}
