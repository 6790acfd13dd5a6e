package festival

import (
	"fmt"
	"time"
)

// Today returns the calendar date of now as an ISO string, in now's location.
func Today(now time.Time) string {
	return now.Format(ISOLayout)
}

// parseISO parses an ISO calendar date. Returns time.Time{} (zero value) if parsing fails.
func parseISO(date string) time.Time {
	t, err := time.Parse(ISOLayout, date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsActiveOrUpcoming reports whether a festival ending on endDate has not finished
// before today. The festival's last day counts as active.
func IsActiveOrUpcoming(endDate, today string) bool {
	return endDate != "" && endDate >= today
}

// IsOngoing reports whether today falls within [startDate, endDate], both inclusive.
func IsOngoing(startDate, endDate, today string) bool {
	if startDate == "" || endDate == "" {
		return false
	}
	return startDate <= today && today <= endDate
}

// DaysUntil returns the number of calendar days from today until date.
// A date today yields 0, a date already passed a negative number.
// Returns 0 if either date cannot be parsed.
func DaysUntil(date, today string) int {
	target := parseISO(date)
	base := parseISO(today)
	if target.IsZero() || base.IsZero() {
		return 0
	}
	return int(target.Sub(base).Hours() / 24)
}

// FormatDate renders an ISO date as "2026년 1월 9일".
// Unparseable input is returned unchanged.
func FormatDate(date string) string {
	t := parseISO(date)
	if t.IsZero() {
		return date
	}
	return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
}

// StatusText returns the badge text shown for a festival relative to today:
// "진행중", "오늘 시작!", "내일 시작" or "N일 후 시작".
func StatusText(r *Record, today string) string {
	if IsOngoing(r.StartDate, r.EndDate, today) {
		return "진행중"
	}
	switch days := DaysUntil(r.StartDate, today); days {
	case 0:
		return "오늘 시작!"
	case 1:
		return "내일 시작"
	default:
		return fmt.Sprintf("%d일 후 시작", days)
	}
}
