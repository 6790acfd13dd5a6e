package festival

import (
	"strings"
	"unicode/utf8"
)

// DescriptionLimit is the maximum description length in characters.
const DescriptionLimit = 800

// ListItemRef is the minimal reference to a festival collected from a list page.
// It lives only for the duration of one pipeline run.
type ListItemRef struct {
	Name       string `json:"name"`
	PeriodText string `json:"periodText"`
	PlaceText  string `json:"placeText"`
	Href       string `json:"href"`
}

// Key returns the deduplication key of the reference (name and link).
func (r ListItemRef) Key() string {
	return r.Name + "|" + r.Href
}

// Record is one normalized festival as written to the dataset
type Record struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Address     string `json:"address"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	PeriodText  string `json:"periodText"`
	Description string `json:"description"`
	McstURL     string `json:"mcstUrl"`
	HomepageURL string `json:"homepageUrl"`
	ImageURL    string `json:"imageUrl"`
	FeeText     string `json:"feeText"`
}

// Dated reports whether both ends of the festival period are known.
func (r *Record) Dated() bool {
	return r.StartDate != "" && r.EndDate != ""
}

// TimeText returns the time-of-day part of the period text ("10:00~17:00"),
// or an empty string if the period carries none.
func (r *Record) TimeText() string {
	_, after, found := strings.Cut(r.PeriodText, "|")
	if !found {
		return ""
	}
	return strings.TrimSpace(after)
}

// JoinAddress joins region and place with a space, omitting empty parts.
func JoinAddress(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// TruncateDescription cuts s to at most DescriptionLimit characters.
func TruncateDescription(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= DescriptionLimit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:DescriptionLimit]))
}
