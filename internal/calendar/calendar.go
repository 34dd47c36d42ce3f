// Package calendar implements Gregorian and ISO-8601 week arithmetic on plain
// integers, without allocating time.Time values.
package calendar

// Weekday numbers returned by DayOfWeek (Sunday=0).
const (
	Sunday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// cumulative day counts before each month in a common year
var daysBeforeMonth = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// IsLeapYear reports whether y is a Gregorian leap year.
func IsLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// HoursInYear returns 8784 for leap years and 8760 otherwise.
func HoursInYear(y int) int {
	if IsLeapYear(y) {
		return 366 * 24
	}
	return 365 * 24
}

// DayOfWeek returns the weekday of a Gregorian date, Sunday=0 .. Saturday=6,
// using Zeller's congruence.
func DayOfWeek(y, m, d int) int {
	if m < 3 {
		m += 12
		y--
	}
	k := y % 100
	j := y / 100
	// h: 0=Saturday, 1=Sunday, ..., 6=Friday
	h := (d + 13*(m+1)/5 + k + k/4 + j/4 + 5*j) % 7
	return (h + 6) % 7
}

// ISODayOfWeek returns the ISO weekday, Monday=1 .. Sunday=7.
func ISODayOfWeek(y, m, d int) int {
	dow := DayOfWeek(y, m, d)
	if dow == Sunday {
		return 7
	}
	return dow
}

// DayOfYear returns the ordinal day, 1-based.
func DayOfYear(y, m, d int) int {
	doy := daysBeforeMonth[m-1] + d
	if m > 2 && IsLeapYear(y) {
		doy++
	}
	return doy
}

// WeeksInISOYear returns 53 when the ISO year y has a week 53, else 52.
// A year has 53 weeks when it starts on a Thursday, or is a leap year
// starting on a Wednesday.
func WeeksInISOYear(y int) int {
	jan1 := DayOfWeek(y, 1, 1)
	if jan1 == Thursday || (jan1 == Wednesday && IsLeapYear(y)) {
		return 53
	}
	return 52
}

// Week is an ISO-8601 (week-year, week) pair.
type Week struct {
	Year int
	Week int
}

// Less orders weeks chronologically.
func (w Week) Less(o Week) bool {
	if w.Year != o.Year {
		return w.Year < o.Year
	}
	return w.Week < o.Week
}

// Next returns the week that follows w.
func (w Week) Next() Week {
	if w.Week >= WeeksInISOYear(w.Year) {
		return Week{Year: w.Year + 1, Week: 1}
	}
	return Week{Year: w.Year, Week: w.Week + 1}
}

// ISOWeek returns the ISO-8601 week of a date. Dates in the first days of
// January may belong to the last week of the previous ISO year, and dates at
// the end of December may belong to week 1 of the next one.
func ISOWeek(y, m, d int) Week {
	week := (DayOfYear(y, m, d) - ISODayOfWeek(y, m, d) + 10) / 7
	switch {
	case week < 1:
		return Week{Year: y - 1, Week: WeeksInISOYear(y - 1)}
	case week > WeeksInISOYear(y):
		return Week{Year: y + 1, Week: 1}
	default:
		return Week{Year: y, Week: week}
	}
}
