package festival

import (
	"regexp"
	"strings"
)

var (
	feePrefixAdmission = regexp.MustCompile(`^입장료\s*유료\s*[-:]\s*`)
	feePrefixPiped     = regexp.MustCompile(`^유료\s*\|\s*`)
	feePrefixPaid      = regexp.MustCompile(`^유료\s*`)
)

// FormatFee turns the raw fee text of a detail page into display text.
// Free festivals collapse to "무료"; paid ones lose the "유료" prefix and
// have their "|" separated parts put on separate lines.
func FormatFee(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	if strings.Contains(text, "무료") && !strings.Contains(text, "유료") {
		return "무료"
	}

	cleaned := feePrefixAdmission.ReplaceAllString(text, "")
	cleaned = feePrefixPiped.ReplaceAllString(cleaned, "")
	cleaned = feePrefixPaid.ReplaceAllString(cleaned, "")

	lines := make([]string, 0)
	for _, part := range strings.Split(cleaned, "|") {
		if part = strings.TrimSpace(part); part != "" {
			lines = append(lines, part)
		}
	}
	return strings.Join(lines, "\n")
}
