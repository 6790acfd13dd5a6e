// Package calendar renders festivals as iCalendar (RFC 5545) documents so a
// visitor can add one festival, or a whole region's listing, to their calendar.
// Festivals are all-day events spanning their start and end dates.
package calendar
