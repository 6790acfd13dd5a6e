package scraper

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/festivalmap/festivals/internal/fetch"
	"github.com/festivalmap/festivals/internal/logger"
)

const testBase = "https://mcst.test"

// fakeNavigator serves canned HTML by URL and records every navigation
type fakeNavigator struct {
	pages map[string]string
	errs  map[string]error
	calls []string
	times []time.Time
}

func (f *fakeNavigator) Navigate(_ context.Context, url string) (*goquery.Document, error) {
	f.calls = append(f.calls, url)
	f.times = append(f.times, time.Now())
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	html, ok := f.pages[url]
	if !ok {
		return nil, &fetch.Error{URL: url, Message: "HTTP status 404", StatusCode: 404}
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func mustDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return doc
}

func quietLogger() *logger.Logger {
	return logger.New(logger.LevelError, io.Discard)
}

func TestListURL(t *testing.T) {
	tests := []struct {
		base string
		page int
		want string
	}{
		{BaseURL, 1, "https://www.mcst.go.kr/site/s_culture/festival/festivalList.jsp?pCurrentPage=1"},
		{"https://mcst.test/", 12, "https://mcst.test/site/s_culture/festival/festivalList.jsp?pCurrentPage=12"},
	}

	for _, tt := range tests {
		if got := ListURL(tt.base, tt.page); got != tt.want {
			t.Errorf("ListURL(%q, %d) = %q, want %q", tt.base, tt.page, got, tt.want)
		}
	}
}

func TestDetailURL(t *testing.T) {
	tests := []struct {
		name    string
		href    string
		want    string
		wantErr bool
	}{
		{
			name: "relative to list page",
			href: "festivalView.jsp?pSeq=101",
			want: "https://www.mcst.go.kr/site/s_culture/festival/festivalView.jsp?pSeq=101",
		},
		{
			name: "root relative",
			href: "/site/s_culture/festival/festivalView.jsp?pSeq=7",
			want: "https://www.mcst.go.kr/site/s_culture/festival/festivalView.jsp?pSeq=7",
		},
		{
			name: "absolute",
			href: "https://www.mcst.go.kr/site/s_culture/festival/festivalView.jsp?pSeq=8",
			want: "https://www.mcst.go.kr/site/s_culture/festival/festivalView.jsp?pSeq=8",
		},
		{
			name: "script link",
			href: "javascript:fn_view('103');",
			want: "https://www.mcst.go.kr/site/s_culture/festival/festivalView.jsp?pSeq=103",
		},
		{name: "script link without id", href: "javascript:void(0)", wantErr: true},
		{name: "void link with semicolon", href: "javascript:void(0);", wantErr: true},
		{name: "other script call", href: "javascript:openPopup('55');", wantErr: true},
		{
			name: "script link with spaces",
			href: "javascript: fn_view( \"104\" )",
			want: "https://www.mcst.go.kr/site/s_culture/festival/festivalView.jsp?pSeq=104",
		},
		{name: "empty", href: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetailURL(BaseURL, tt.href)
			if tt.wantErr {
				if err == nil {
					t.Errorf("DetailURL(%q) expected error, got %q", tt.href, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetailURL(%q) unexpected error: %v", tt.href, err)
			}
			if got != tt.want {
				t.Errorf("DetailURL(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

func TestPause_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Pause(ctx, 0); err != context.Canceled {
		t.Errorf("Pause() = %v, want context.Canceled", err)
	}
	if err := Pause(ctx, DefaultPageDelay); err != context.Canceled {
		t.Errorf("Pause() = %v, want context.Canceled", err)
	}
}
