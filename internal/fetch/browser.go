package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// DefaultSettle is how long a rendered page is given to finish client-side updates
// after the document is ready.
const DefaultSettle = 500 * time.Millisecond

// BrowserOptions configures the headless browser.
type BrowserOptions struct {
	Timeout      time.Duration // per navigation
	UserAgent    string
	ExecPath     string // empty uses chromedp's lookup
	Headless     bool
	WaitSelector string        // element that must be ready before the DOM is read
	Settle       time.Duration // extra wait after WaitSelector is ready
}

// DefaultBrowserOptions returns the options used for list page rendering.
func DefaultBrowserOptions() *BrowserOptions {
	return &BrowserOptions{
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		Headless:     true,
		WaitSelector: "body",
		Settle:       DefaultSettle,
	}
}

// Browser renders pages in one headless Chrome instance.
// Close must be called to shut the browser down.
type Browser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	options     *BrowserOptions
}

// NewBrowser launches Chrome and returns a Browser bound to it.
// The browser lives until Close is called or ctx is cancelled.
func NewBrowser(ctx context.Context, opts *BrowserOptions) (*Browser, error) {
	if opts == nil {
		opts = DefaultBrowserOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.WaitSelector == "" {
		opts.WaitSelector = "body"
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Run with no actions starts the browser process
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	return &Browser{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		options:     opts,
	}, nil
}

// Navigate loads url, waits for the page to render and returns the rendered DOM.
func (b *Browser) Navigate(ctx context.Context, url string) (*goquery.Document, error) {
	navCtx, cancel := context.WithTimeout(b.ctx, b.options.Timeout)
	defer cancel()

	// Tie the navigation to the caller's context as well as the browser's
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(b.options.WaitSelector, chromedp.ByQuery),
		chromedp.Sleep(b.options.Settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{URL: url, Message: "parsing rendered HTML", Cause: err}
	}
	return doc, nil
}

// Close shuts the browser down. It is safe to call more than once.
func (b *Browser) Close() error {
	var err error
	if b.cancel != nil {
		// Cancel closes the tab and the browser gracefully before the allocator is torn down
		err = chromedp.Cancel(b.ctx)
		b.cancel()
		b.cancel = nil
	}
	if b.allocCancel != nil {
		b.allocCancel()
		b.allocCancel = nil
	}
	return err
}
