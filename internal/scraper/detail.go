package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/festivalmap/festivals/internal/fetch"
	"github.com/festivalmap/festivals/internal/festival"
)

// Field labels on the detail page
const (
	LabelRegion      = "개최지역"
	LabelPeriod      = "개최기간"
	LabelPlace       = "축제장소"
	LabelFee         = "요금"
	LabelRelatedSite = "관련 누리집"
	LabelHomepage    = "홈페이지"
)

var (
	titleSelectors = []string{
		".view_title", ".view_tit", ".board_view .tit", ".festival_view h3", "h3.tit", "h3", "h2",
	}
	imageSelectors = []string{
		".view_img img", ".img_area img", ".festival_view img", ".board_view img", ".view_cont img",
	}
	descriptionSelectors = []string{
		".view_cont", ".view_txt", ".board_view .txt", ".festival_view .cont", ".cont_txt",
	}
)

// DetailOptions configures a DetailParser.
type DetailOptions struct {
	// Origin resolves relative image links; defaults to BaseURL.
	Origin string
}

// DetailParser turns detail pages into festival records.
type DetailParser struct {
	nav    fetch.Navigator
	origin string
}

// NewDetailParser creates a parser that loads pages through nav.
// Detail pages are static, so nav is normally a *fetch.Client.
func NewDetailParser(nav fetch.Navigator, opts DetailOptions) *DetailParser {
	if opts.Origin == "" {
		opts.Origin = BaseURL
	}
	return &DetailParser{
		nav:    nav,
		origin: strings.TrimRight(opts.Origin, "/"),
	}
}

// Parse fetches one detail page and extracts its record.
// The returned record has no ID; dates are empty when the period could not be parsed.
func (p *DetailParser) Parse(ctx context.Context, detailURL string) (*festival.Record, error) {
	doc, err := p.nav.Navigate(ctx, detailURL)
	if err != nil {
		return nil, fmt.Errorf("fetching detail page: %w", err)
	}
	return p.ParseDocument(doc, detailURL), nil
}

// ParseDocument extracts a record from an already loaded detail page.
func (p *DetailParser) ParseDocument(doc *goquery.Document, detailURL string) *festival.Record {
	region := fetch.LabelText(doc, LabelRegion)
	place := fetch.LabelText(doc, LabelPlace)
	periodText := fetch.LabelText(doc, LabelPeriod)

	locationSource := region
	if locationSource == "" {
		locationSource = place
	}

	record := &festival.Record{
		Name:        firstText(doc, titleSelectors),
		Location:    festival.ExtractRegion(locationSource),
		Address:     festival.JoinAddress(region, place),
		PeriodText:  periodText,
		Description: festival.TruncateDescription(p.description(doc)),
		McstURL:     detailURL,
		HomepageURL: p.homepage(doc),
		ImageURL:    p.image(doc),
		FeeText:     fetch.LabelText(doc, LabelFee),
	}

	if period, ok := festival.ParsePeriod(periodText); ok {
		record.StartDate = period.StartDate
		record.EndDate = period.EndDate
	}

	return record
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := fetch.CleanText(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func (p *DetailParser) description(doc *goquery.Document) string {
	if text := firstText(doc, descriptionSelectors); text != "" {
		return text
	}
	content, _ := doc.Find(`meta[property="og:description"]`).Attr("content")
	return fetch.CleanText(content)
}

func (p *DetailParser) image(doc *goquery.Document) string {
	for _, sel := range imageSelectors {
		if src, ok := doc.Find(sel).First().Attr("src"); ok && strings.TrimSpace(src) != "" {
			return p.absolute(src)
		}
	}
	if content, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && strings.TrimSpace(content) != "" {
		return p.absolute(content)
	}
	return ""
}

func (p *DetailParser) homepage(doc *goquery.Document) string {
	link := fetch.LabelLink(doc, LabelRelatedSite)
	if link == "" {
		link = fetch.LabelLink(doc, LabelHomepage)
	}
	if strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//") {
		return p.absolute(link)
	}
	return fetch.EnsureScheme(link)
}

func (p *DetailParser) absolute(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return fetch.ResolveURL(p.origin+"/", href)
}
