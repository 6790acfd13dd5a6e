package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/festivalmap/festivals/internal/festival"
	"github.com/festivalmap/festivals/internal/logger"
)

const (
	prodID = "-//festivalmap//festivals//KO"
	// maxLineOctets is the folding limit for content lines
	maxLineOctets = 75
)

// GenerateICS renders one festival as a calendar with a single all-day event.
// Festivals without both dates cannot be placed on a calendar.
func GenerateICS(r *festival.Record, now time.Time) (string, error) {
	if !r.Dated() {
		return "", fmt.Errorf("festival %q has no dates", r.Name)
	}

	var ics strings.Builder
	writeHeader(&ics, "")
	if err := writeEvent(&ics, r, now); err != nil {
		return "", err
	}
	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String(), nil
}

// GenerateBulkICS renders every dated festival into one calendar.
// Festivals with malformed dates are logged and left out.
// It returns an empty string when no festival can be placed.
func GenerateBulkICS(records []*festival.Record, calendarName string, now time.Time) string {
	var body strings.Builder
	for _, r := range records {
		if !r.Dated() {
			continue
		}
		if err := writeEvent(&body, r, now); err != nil {
			logger.IncrCounter("calendar.skipped")
			logger.Default().WarnErr("skipping festival in calendar", logger.Fields{
				"id":   r.ID,
				"name": r.Name,
			}, err)
		}
	}
	if body.Len() == 0 {
		return ""
	}

	var ics strings.Builder
	writeHeader(&ics, calendarName)
	ics.WriteString(body.String())
	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeHeader(ics *strings.Builder, calendarName string) {
	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:" + prodID + "\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if calendarName != "" {
		writeLine(ics, "X-WR-CALNAME:"+escapeICS(calendarName))
	}
}

func writeEvent(ics *strings.Builder, r *festival.Record, now time.Time) error {
	start, err := time.Parse(festival.ISOLayout, r.StartDate)
	if err != nil {
		return fmt.Errorf("parsing start date: %w", err)
	}
	end, err := time.Parse(festival.ISOLayout, r.EndDate)
	if err != nil {
		return fmt.Errorf("parsing end date: %w", err)
	}

	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString("UID:" + eventUID(r) + "\r\n")
	ics.WriteString("DTSTAMP:" + formatICSTime(now) + "\r\n")
	// all-day events end on the day after the last festival day
	ics.WriteString("DTSTART;VALUE=DATE:" + formatICSDate(start) + "\r\n")
	ics.WriteString("DTEND;VALUE=DATE:" + formatICSDate(end.AddDate(0, 0, 1)) + "\r\n")
	writeLine(ics, "SUMMARY:"+escapeICS(r.Name))

	if desc := eventDescription(r); desc != "" {
		writeLine(ics, "DESCRIPTION:"+escapeICS(desc))
	}
	if r.Address != "" {
		writeLine(ics, "LOCATION:"+escapeICS(r.Address))
	}
	if r.McstURL != "" {
		writeLine(ics, "URL:"+r.McstURL)
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
	return nil
}

func eventDescription(r *festival.Record) string {
	parts := make([]string, 0, 4)
	if r.PeriodText != "" {
		parts = append(parts, "기간: "+r.PeriodText)
	}
	if fee := festival.FormatFee(r.FeeText); fee != "" {
		parts = append(parts, "요금: "+strings.ReplaceAll(fee, "\n", ", "))
	}
	if r.HomepageURL != "" {
		parts = append(parts, "홈페이지: "+r.HomepageURL)
	}
	if r.Description != "" {
		parts = append(parts, "", r.Description)
	}
	return strings.Join(parts, "\n")
}

// eventUID uses the MCST sequence number so the UID survives re-numbering between runs.
func eventUID(r *festival.Record) string {
	if u, err := url.Parse(r.McstURL); err == nil {
		if seq := u.Query().Get("pSeq"); seq != "" {
			return "festival-" + seq + "@mcst.go.kr"
		}
	}
	return fmt.Sprintf("festival-id-%d@festivals", r.ID)
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// escapeICS escapes special characters for iCalendar text values
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// writeLine writes a content line, folding it at 75 octets without splitting
// a UTF-8 sequence. Continuation lines start with a single space.
func writeLine(ics *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		ics.WriteString(line[:cut])
		ics.WriteString("\r\n ")
		line = line[cut:]
		// the leading space counts toward the next line's length
		limit = maxLineOctets - 1
	}
	ics.WriteString(line)
	ics.WriteString("\r\n")
}
