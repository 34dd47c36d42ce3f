package calendar

import (
	"testing"
	"time"
)

func TestDayOfWeek(t *testing.T) {
	tests := []struct {
		y, m, d int
		want    int
	}{
		{2000, 1, 1, Saturday},
		{2000, 2, 29, Tuesday},
		{1900, 3, 1, Thursday},
		{2024, 2, 29, Thursday},
		{2025, 1, 1, Wednesday},
		{2025, 12, 25, Thursday},
		{2026, 10, 16, Friday},
	}
	for _, tt := range tests {
		if got := DayOfWeek(tt.y, tt.m, tt.d); got != tt.want {
			t.Errorf("DayOfWeek(%d, %d, %d) = %d, want %d", tt.y, tt.m, tt.d, got, tt.want)
		}
	}
}

func TestDayOfWeekMatchesTimePackage(t *testing.T) {
	day := time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2035, 1, 1, 0, 0, 0, 0, time.UTC)
	for ; day.Before(end); day = day.AddDate(0, 0, 1) {
		got := DayOfWeek(day.Year(), int(day.Month()), day.Day())
		if got != int(day.Weekday()) {
			t.Fatalf("DayOfWeek(%s) = %d, want %d", day.Format("2006-01-02"), got, day.Weekday())
		}
	}
}

func TestISOWeekMatchesTimePackage(t *testing.T) {
	day := time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2035, 1, 1, 0, 0, 0, 0, time.UTC)
	for ; day.Before(end); day = day.AddDate(0, 0, 1) {
		wantYear, wantWeek := day.ISOWeek()
		got := ISOWeek(day.Year(), int(day.Month()), day.Day())
		if got.Year != wantYear || got.Week != wantWeek {
			t.Fatalf("ISOWeek(%s) = %d-W%02d, want %d-W%02d",
				day.Format("2006-01-02"), got.Year, got.Week, wantYear, wantWeek)
		}
	}
}

func TestISOWeekYearBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		want    Week
	}{
		{"Dec 31 on a Tuesday belongs to next year", 2024, 12, 31, Week{2025, 1}},
		{"Dec 29 on a Monday belongs to next year", 2025, 12, 29, Week{2026, 1}},
		{"Dec 31 on a Wednesday belongs to next year", 2025, 12, 31, Week{2026, 1}},
		{"Dec 31 on a Thursday stays in week 53", 2026, 12, 31, Week{2026, 53}},
		{"Jan 1 on a Friday is week 53 of previous year", 2021, 1, 1, Week{2020, 53}},
		{"Jan 3 on a Sunday is week 53 of previous year", 2021, 1, 3, Week{2020, 53}},
		{"Jan 1 on a Sunday is week 52 of previous year", 2023, 1, 1, Week{2022, 52}},
		{"Jan 1 on a Thursday is week 1", 2026, 1, 1, Week{2026, 1}},
		{"Jan 1 on a Tuesday is week 1", 2019, 1, 1, Week{2019, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ISOWeek(tt.y, tt.m, tt.d); got != tt.want {
				t.Errorf("ISOWeek(%d, %d, %d) = %+v, want %+v", tt.y, tt.m, tt.d, got, tt.want)
			}
		})
	}
}

func TestWeeksInISOYear(t *testing.T) {
	tests := map[int]int{2015: 53, 2020: 53, 2021: 52, 2024: 52, 2026: 53, 2032: 53, 2100: 52}
	for y, want := range tests {
		if got := WeeksInISOYear(y); got != want {
			t.Errorf("WeeksInISOYear(%d) = %d, want %d", y, got, want)
		}
	}
}

func TestHoursInYear(t *testing.T) {
	tests := []struct {
		year int
		leap bool
		want int
	}{
		{2024, true, 8784},
		{2025, false, 8760},
		{1900, false, 8760},
		{2000, true, 8784},
	}
	for _, tt := range tests {
		if got := IsLeapYear(tt.year); got != tt.leap {
			t.Errorf("IsLeapYear(%d) = %v, want %v", tt.year, got, tt.leap)
		}
		if got := HoursInYear(tt.year); got != tt.want {
			t.Errorf("HoursInYear(%d) = %d, want %d", tt.year, got, tt.want)
		}
	}
}

func TestWeekNext(t *testing.T) {
	tests := []struct {
		in, want Week
	}{
		{Week{2025, 10}, Week{2025, 11}},
		{Week{2024, 52}, Week{2025, 1}},
		{Week{2020, 52}, Week{2020, 53}},
		{Week{2020, 53}, Week{2021, 1}},
	}
	for _, tt := range tests {
		if got := tt.in.Next(); got != tt.want {
			t.Errorf("%+v.Next() = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
