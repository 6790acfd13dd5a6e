package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// BaseURL is the origin of the MCST site; image URLs are resolved against it.
	BaseURL = "https://www.mcst.go.kr"
	// ListPath is the festival list page.
	ListPath = "/site/s_culture/festival/festivalList.jsp"
	// DetailPage is the festival detail page, relative to ListPath.
	DetailPage = "festivalView.jsp"

	DefaultPageDelay   = 1 * time.Second
	DefaultDetailDelay = 300 * time.Millisecond

	// NoDelay disables pacing. A zero delay selects the default instead.
	NoDelay time.Duration = -1
)

// Pattern for list links that open the detail page through the site's script call,
// e.g. "javascript:fn_view('12345');"
var scriptLinkPattern = regexp.MustCompile(`^javascript:\s*fn_view\(\s*['"]?(\d+)['"]?`)

// ListURL returns the URL of the given 1-based list page on base.
func ListURL(base string, page int) string {
	return fmt.Sprintf("%s%s?pCurrentPage=%d", strings.TrimRight(base, "/"), ListPath, page)
}

// DetailURL turns a list item href into an absolute detail page URL.
// Relative links are resolved against the list page; script links carrying
// a sequence number are rewritten to the detail page.
func DetailURL(base, href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", fmt.Errorf("empty detail link")
	}

	if m := scriptLinkPattern.FindStringSubmatch(href); m != nil {
		href = DetailPage + "?pSeq=" + m[1]
	} else if strings.HasPrefix(href, "javascript:") {
		return "", fmt.Errorf("unsupported detail link %q", href)
	}

	listURL, err := url.Parse(strings.TrimRight(base, "/") + ListPath)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parsing detail link %q: %w", href, err)
	}
	return listURL.ResolveReference(ref).String(), nil
}

// Pause waits for d or until ctx is done, returning ctx.Err() in the latter case.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
