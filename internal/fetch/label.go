package fetch

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// labelCandidates are the elements detail pages use to caption a value.
const labelCandidates = "dt, th, strong, b, em, span, label, p, div, li"

// CleanText NFC-normalizes s and collapses every whitespace run to a single space.
func CleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

func normalizeLabel(s string) string {
	s = strings.Join(strings.Fields(norm.NFC.String(s)), "")
	return strings.TrimRight(s, ":：")
}

// LabelValue finds the element captioned by label and returns the node(s) that hold its value.
//
// A dt yields its dd, a th yields its td, and any other caption yields the nodes that
// follow it inside the same parent. If the caption has no following siblings, the
// parent's next element is used. The second return is false when no caption matches.
func LabelValue(doc *goquery.Document, label string) (*goquery.Selection, bool) {
	want := normalizeLabel(label)
	if want == "" {
		return nil, false
	}

	var found *goquery.Selection
	doc.Find(labelCandidates).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if normalizeLabel(s.Text()) != want {
			return true
		}
		// Prefer the innermost caption; a wrapper with the same text is visited first
		inner := s.Children().FilterFunction(func(_ int, c *goquery.Selection) bool {
			return normalizeLabel(c.Text()) == want
		})
		if inner.Length() > 0 {
			return true
		}
		if v := valueFor(s); v != nil {
			found = v
			return false
		}
		return true
	})

	if found == nil {
		return nil, false
	}
	return found, true
}

func valueFor(s *goquery.Selection) *goquery.Selection {
	switch goquery.NodeName(s) {
	case "dt":
		if dd := s.NextAllFiltered("dd").First(); dd.Length() > 0 {
			return dd
		}
	case "th":
		if td := s.NextAllFiltered("td").First(); td.Length() > 0 {
			return td
		}
	}

	contents := s.Parent().Contents()
	if idx := contents.IndexOfNode(s.Nodes[0]); idx >= 0 && idx+1 < contents.Length() {
		rest := contents.Slice(idx+1, goquery.ToEnd)
		if valueText(rest) != "" {
			return rest
		}
	}

	if next := s.Parent().Next(); next.Length() > 0 {
		return next
	}
	return nil
}

func valueText(s *goquery.Selection) string {
	return strings.TrimSpace(strings.TrimLeft(CleanText(s.Text()), ":： "))
}

// LabelText returns the cleaned text of the value captioned by label, or "".
// A leading colon separating caption from value is dropped.
func LabelText(doc *goquery.Document, label string) string {
	v, ok := LabelValue(doc, label)
	if !ok {
		return ""
	}
	return valueText(v)
}

// LabelLink returns the href of the first link in the value captioned by label.
// If the value holds no link, its text is returned when it looks like a URL.
func LabelLink(doc *goquery.Document, label string) string {
	v, ok := LabelValue(doc, label)
	if !ok {
		return ""
	}
	link := v.Find("a[href]").AddSelection(v.Filter("a[href]")).First()
	if href, exists := link.Attr("href"); exists {
		if href = strings.TrimSpace(href); href != "" && !strings.HasPrefix(href, "javascript:") && href != "#" {
			return href
		}
	}
	text := valueText(v)
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") || strings.HasPrefix(text, "www.") {
		return strings.Fields(text)[0]
	}
	return ""
}

// ResolveURL resolves href against base. It returns href unchanged when either fails to parse.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return ref.String()
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

// EnsureScheme makes an external link absolute.
// Protocol-relative links get "https:" and bare host links get "https://".
func EnsureScheme(href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	default:
		return "https://" + href
	}
}
