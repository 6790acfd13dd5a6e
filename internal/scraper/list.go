package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/festivalmap/festivals/internal/fetch"
	"github.com/festivalmap/festivals/internal/festival"
	"github.com/festivalmap/festivals/internal/logger"
	"golang.org/x/net/html"
)

const (
	// Links that open a festival detail page
	itemLinkSelector = `a[href*="festivalView"], a[href*="pSeq"], a[href^="javascript:fn_view"]`
	// Pagination link containers
	pagingSelector = ".paging a, .pagination a, .page_num a, .pageNavi a, [class*=paging] a"
)

// Elements that hold an item's name inside its container, most specific first
var itemNameSelectors = []string{".tit", ".title", ".subject", "h3", "h4", "strong"}

var (
	// "[1 / 12 쪽]"
	pageCountPattern = regexp.MustCompile(`\[\s*\d+\s*/\s*(\d+)\s*쪽\s*\]`)
	pageParamPattern = regexp.MustCompile(`pCurrentPage=(\d+)`)
)

// ListOptions configures a ListCrawler.
type ListOptions struct {
	BaseURL   string
	PageDelay time.Duration
	Logger    *logger.Logger
}

// ListCrawler collects item references from every list page.
type ListCrawler struct {
	nav       fetch.Navigator
	baseURL   string
	pageDelay time.Duration
	log       *logger.Logger
}

// NewListCrawler creates a crawler that renders pages through nav.
func NewListCrawler(nav fetch.Navigator, opts ListOptions) *ListCrawler {
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURL
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.PageDelay == 0 {
		opts.PageDelay = DefaultPageDelay
	}
	return &ListCrawler{
		nav:       nav,
		baseURL:   opts.BaseURL,
		pageDelay: opts.PageDelay,
		log:       opts.Logger,
	}
}

// Crawl reads the page count from page 1, then loads pages 1..N in order and
// returns their items in display order. Any page failure aborts the crawl.
func (c *ListCrawler) Crawl(ctx context.Context) ([]festival.ListItemRef, error) {
	first, err := c.nav.Navigate(ctx, ListURL(c.baseURL, 1))
	if err != nil {
		return nil, fmt.Errorf("loading list page 1: %w", err)
	}

	total := TotalPages(first)
	logger.SetGauge("list.total_pages", float64(total))
	c.log.Info("list pages discovered", logger.Fields{"total_pages": total})

	refs := make([]festival.ListItemRef, 0)
	for page := 1; page <= total; page++ {
		if err := Pause(ctx, c.pageDelay); err != nil {
			return nil, err
		}

		start := time.Now()
		doc, err := c.nav.Navigate(ctx, ListURL(c.baseURL, page))
		if err != nil {
			return nil, fmt.Errorf("loading list page %d: %w", page, err)
		}
		items := ParseListPage(doc)
		logger.RecordTiming("list.page", time.Since(start))
		logger.IncrCounter("list.pages")
		logger.DefaultMetrics().AddCounter("list.items", int64(len(items)))

		c.log.Info("list page parsed", logger.Fields{"page": page, "items": len(items)})
		refs = append(refs, items...)
	}

	return refs, nil
}

// TotalPages reads the number of list pages from the "[current / total 쪽]" label,
// falling back to the highest page number among the pagination links, then to 1.
func TotalPages(doc *goquery.Document) int {
	text := fetch.CleanText(doc.Find("body").Text())
	if m := pageCountPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}

	highest := 0
	doc.Find(pagingSelector).Each(func(_ int, a *goquery.Selection) {
		if n, err := strconv.Atoi(strings.TrimSpace(a.Text())); err == nil && n > highest {
			highest = n
		}
		if href, ok := a.Attr("href"); ok {
			if m := pageParamPattern.FindStringSubmatch(href); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
					highest = n
				}
			}
		}
	})
	if highest > 0 {
		return highest
	}
	return 1
}

// ParseListPage extracts one reference per list item, in display order.
// Items without a name are skipped.
func ParseListPage(doc *goquery.Document) []festival.ListItemRef {
	refs := make([]festival.ListItemRef, 0)
	visited := make(map[*html.Node]bool)

	doc.Find(itemLinkSelector).Each(func(_ int, a *goquery.Selection) {
		item := a.Closest("li, tr")
		if item.Length() == 0 {
			item = a.Parent()
		}
		// Image and title usually link to the same item
		if visited[item.Nodes[0]] {
			return
		}
		visited[item.Nodes[0]] = true

		href, _ := a.Attr("href")
		name := itemName(item, a)
		if name == "" {
			return
		}

		refs = append(refs, festival.ListItemRef{
			Name:       name,
			PeriodText: subLine(item, "기간"),
			PlaceText:  subLine(item, "장소"),
			Href:       strings.TrimSpace(href),
		})
	})

	return refs
}

func itemName(item, link *goquery.Selection) string {
	for _, sel := range itemNameSelectors {
		if name := fetch.CleanText(item.Find(sel).First().Text()); name != "" {
			return name
		}
	}
	return fetch.CleanText(link.Text())
}

// subLine returns the innermost text line of item that mentions keyword.
func subLine(item *goquery.Selection, keyword string) string {
	var line string
	item.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := fetch.CleanText(s.Text())
		if !strings.Contains(text, keyword) {
			return true
		}
		inner := s.Children().FilterFunction(func(_ int, c *goquery.Selection) bool {
			return strings.Contains(c.Text(), keyword)
		})
		if inner.Length() > 0 {
			return true
		}
		line = text
		return false
	})
	return line
}
