package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Navigate(t *testing.T) {
	var gotUA, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><h1 class="title">봄꽃 축제</h1></body></html>`))
	}))
	defer server.Close()

	client := NewClient(&Options{Headers: map[string]string{"Accept-Language": "ko-KR"}})
	doc, err := client.Navigate(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Navigate() error = %v", err)
	}

	if got := doc.Find("h1.title").Text(); got != "봄꽃 축제" {
		t.Errorf("title = %q, want %q", got, "봄꽃 축제")
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, DefaultUserAgent)
	}
	if gotLang != "ko-KR" {
		t.Errorf("Accept-Language = %q, want %q", gotLang, "ko-KR")
	}
	if doc.Url == nil || doc.Url.String() != server.URL {
		t.Errorf("doc.Url = %v, want %s", doc.Url, server.URL)
	}
}

func TestClient_NavigateErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(nil)

	tests := []struct {
		name       string
		url        string
		wantStatus int
	}{
		{name: "non-200 status", url: server.URL, wantStatus: http.StatusNotFound},
		{name: "missing scheme", url: "www.mcst.go.kr/festival"},
		{name: "empty url", url: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Navigate(context.Background(), tt.url)
			if err == nil {
				t.Fatal("Navigate() expected error, got nil")
			}
			var fetchErr *Error
			if !errors.As(err, &fetchErr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if fetchErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, tt.wantStatus)
			}
			if fetchErr.URL != tt.url {
				t.Errorf("URL = %q, want %q", fetchErr.URL, tt.url)
			}
		})
	}
}

func TestClient_NavigateCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(nil).Navigate(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Navigate() error = %v, want context.Canceled", err)
	}
}

func TestError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &Error{URL: "https://example.com", Message: "HTTP request failed", Cause: cause}

	if want := "fetch error for https://example.com: HTTP request failed: connection reset"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}

	plain := &Error{URL: "https://example.com", Message: "HTTP status 500"}
	if want := "fetch error for https://example.com: HTTP status 500"; plain.Error() != want {
		t.Errorf("Error() = %q, want %q", plain.Error(), want)
	}
}

func TestDefaultBrowserOptions(t *testing.T) {
	opts := DefaultBrowserOptions()
	if !opts.Headless {
		t.Error("browser should default to headless")
	}
	if opts.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", opts.Timeout, DefaultTimeout)
	}
	if opts.WaitSelector != "body" {
		t.Errorf("WaitSelector = %q, want body", opts.WaitSelector)
	}
}
