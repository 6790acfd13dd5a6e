package festival

import (
	"testing"
	"time"
)

func TestToday(t *testing.T) {
	now := time.Date(2026, time.March, 5, 23, 59, 0, 0, time.Local)
	if got := Today(now); got != "2026-03-05" {
		t.Errorf("Today() = %q, want 2026-03-05", got)
	}
}

func TestIsActiveOrUpcoming(t *testing.T) {
	today := "2026-03-05"
	tests := []struct {
		name    string
		endDate string
		want    bool
	}{
		{"Ends today", "2026-03-05", true},
		{"Ends tomorrow", "2026-03-06", true},
		{"Ended yesterday", "2026-03-04", false},
		{"Ended last year", "2025-12-31", false},
		{"No end date", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsActiveOrUpcoming(tt.endDate, today); got != tt.want {
				t.Errorf("IsActiveOrUpcoming(%q, %q) = %v, want %v", tt.endDate, today, got, tt.want)
			}
		})
	}
}

func TestIsOngoing(t *testing.T) {
	today := "2026-03-05"
	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"Started earlier", "2026-03-01", "2026-03-10", true},
		{"Starts today", "2026-03-05", "2026-03-10", true},
		{"Ends today", "2026-02-01", "2026-03-05", true},
		{"Starts tomorrow", "2026-03-06", "2026-03-10", false},
		{"Already over", "2026-02-01", "2026-03-04", false},
		{"Missing dates", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOngoing(tt.start, tt.end, today); got != tt.want {
				t.Errorf("IsOngoing(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	today := "2026-03-05"
	tests := []struct {
		date string
		want int
	}{
		{"2026-03-05", 0},
		{"2026-03-06", 1},
		{"2026-04-05", 31},
		{"2026-03-01", -4},
		{"2027-03-05", 365},
		{"invalid", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := DaysUntil(tt.date, today); got != tt.want {
				t.Errorf("DaysUntil(%q, %q) = %d, want %d", tt.date, today, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-01-09", "2026년 1월 9일"},
		{"2025-12-19", "2025년 12월 19일"},
		{"not a date", "not a date"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := FormatDate(tt.date); got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestStatusText(t *testing.T) {
	today := "2026-03-05"
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"Ongoing", "2026-03-01", "2026-03-10", "진행중"},
		{"Starts today", "2026-03-05", "2026-03-07", "진행중"},
		{"Starts tomorrow", "2026-03-06", "2026-03-07", "내일 시작"},
		{"Starts in ten days", "2026-03-15", "2026-03-20", "10일 후 시작"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{StartDate: tt.start, EndDate: tt.end}
			if got := StatusText(r, today); got != tt.want {
				t.Errorf("StatusText() = %q, want %q", got, tt.want)
			}
		})
	}
}
