package festival

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISOLayout is the calendar date layout used in the dataset (zero-padded yyyy-mm-dd).
const ISOLayout = "2006-01-02"

// Pattern for "2026. 1. 9. ~ 1. 25." and "2025. 12. 19. ~ 2026. 2. 1.",
// optionally followed by " | 10:00~17:00".
var periodPattern = regexp.MustCompile(`(\d{4})\.\s*(\d{1,2})\.\s*(\d{1,2})\.?\s*~\s*(?:(\d{4})\.\s*)?(\d{1,2})\.\s*(\d{1,2})\.?`)

// Period is a parsed festival period
type Period struct {
	StartDate string
	EndDate   string
	Raw       string
}

// ParsePeriod extracts start and end dates from a Korean period string.
// Returns false if the text does not follow the period grammar.
//
// Day values are not checked against the month length: time.Date normalizes
// them, so "2026. 4. 31." becomes 2026-05-01.
func ParsePeriod(text string) (Period, bool) {
	raw := strings.TrimSpace(text)
	m := periodPattern.FindStringSubmatch(raw)
	if m == nil {
		return Period{Raw: raw}, false
	}

	startYear := atoi(m[1])
	endYear := startYear
	if m[4] != "" {
		endYear = atoi(m[4])
	}

	start := calendarDate(startYear, atoi(m[2]), atoi(m[3]))
	end := calendarDate(endYear, atoi(m[5]), atoi(m[6]))

	return Period{
		StartDate: start.Format(ISOLayout),
		EndDate:   end.Format(ISOLayout),
		Raw:       raw,
	}, true
}

func calendarDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}

// atoi is only called on regexp digit groups
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
