package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/festivalmap/festivals/internal/festival"
	"github.com/festivalmap/festivals/internal/logger"
	"github.com/festivalmap/festivals/internal/scraper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Crawler produces the item references of all list pages.
type Crawler interface {
	Crawl(ctx context.Context) ([]festival.ListItemRef, error)
}

// Parser turns one detail page into a record.
type Parser interface {
	Parse(ctx context.Context, detailURL string) (*festival.Record, error)
}

// Store persists the dataset and returns the previous one for comparison.
type Store interface {
	LoadJSON() ([]*festival.Record, error)
	Save(records []*festival.Record) error
}

// Options configures a Pipeline.
type Options struct {
	BaseURL     string
	DetailDelay time.Duration
	Workers     int              // detail pages in flight; 1 or less is sequential
	Now         func() time.Time // defaults to time.Now
	Logger      *logger.Logger
}

// Result summarizes a run
type Result struct {
	Today    string
	Listed   int
	Unique   int
	Fetched  int
	Failed   int
	Undated  int
	Expired  int
	Emitted  int
	Records  []*festival.Record
	Diff     *festival.DiffResult
	Duration time.Duration
}

// Pipeline wires the scrape stages together.
type Pipeline struct {
	crawler Crawler
	parser  Parser
	store   Store
	opts    Options
	log     *logger.Logger
}

// New creates a Pipeline.
func New(crawler Crawler, parser Parser, store Store, opts Options) *Pipeline {
	if opts.BaseURL == "" {
		opts.BaseURL = scraper.BaseURL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.DetailDelay == 0 {
		opts.DetailDelay = scraper.DefaultDetailDelay
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Pipeline{
		crawler: crawler,
		parser:  parser,
		store:   store,
		opts:    opts,
		log:     log,
	}
}

// Run executes the full scrape and overwrites the dataset.
// A crawl or write failure aborts the run and leaves the previous dataset in place;
// individual detail page failures are logged and skipped.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := p.opts.Now()
	result := &Result{Today: festival.Today(start)}

	refs, err := p.crawler.Crawl(ctx)
	if err != nil {
		return nil, fmt.Errorf("crawling list pages: %w", err)
	}
	result.Listed = len(refs)

	unique := festival.Dedupe(refs)
	result.Unique = len(unique)
	p.log.Info("list crawl complete", logger.Fields{"listed": result.Listed, "unique": result.Unique})

	var (
		records []*festival.Record
		failed  int
	)
	if p.opts.Workers > 1 {
		records, failed, err = p.fetchParallel(ctx, unique)
	} else {
		records, failed, err = p.fetchSequential(ctx, unique)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching detail pages: %w", err)
	}
	result.Fetched = len(records)
	result.Failed = failed

	dated := festival.FilterDated(records)
	result.Undated = len(records) - len(dated)
	logger.DefaultMetrics().AddCounter("detail.undated", int64(result.Undated))

	active := festival.FilterActive(dated, result.Today)
	result.Expired = len(dated) - len(active)

	festival.SortByStartDate(active)
	festival.AssignIDs(active)
	result.Records = active
	result.Emitted = len(active)

	previous, err := p.store.LoadJSON()
	if err != nil {
		p.log.WarnErr("previous dataset unreadable, reporting every festival as new", nil, err)
		previous = nil
	}
	result.Diff = festival.Diff(previous, active)

	if err := p.store.Save(active); err != nil {
		return nil, fmt.Errorf("writing dataset: %w", err)
	}

	result.Duration = p.opts.Now().Sub(start)
	logger.SetGauge("festivals.emitted", float64(result.Emitted))
	logger.RecordTiming("run.total", result.Duration)
	p.log.Info("dataset written", logger.Fields{
		"emitted": result.Emitted,
		"failed":  result.Failed,
		"undated": result.Undated,
		"expired": result.Expired,
		"added":   len(result.Diff.Added),
		"removed": len(result.Diff.Removed),
	})

	return result, nil
}

func (p *Pipeline) fetchSequential(ctx context.Context, refs []festival.ListItemRef) ([]*festival.Record, int, error) {
	records := make([]*festival.Record, 0, len(refs))
	failed := 0

	for i, ref := range refs {
		if i > 0 {
			if err := scraper.Pause(ctx, p.opts.DetailDelay); err != nil {
				return nil, 0, err
			}
		}
		record, err := p.fetchOne(ctx, ref)
		if err != nil {
			if ctx.Err() != nil {
				return nil, 0, ctx.Err()
			}
			failed++
			continue
		}
		records = append(records, record)
	}

	return records, failed, nil
}

// fetchParallel keeps at most Workers fetches in flight and starts at most one
// every DetailDelay. Records keep the order of refs.
func (p *Pipeline) fetchParallel(ctx context.Context, refs []festival.ListItemRef) ([]*festival.Record, int, error) {
	results := make([]*festival.Record, len(refs))
	var failed atomic.Int64

	limit := rate.Inf
	if p.opts.DetailDelay > 0 {
		limit = rate.Every(p.opts.DetailDelay)
	}
	limiter := rate.NewLimiter(limit, 1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}
			record, err := p.fetchOne(gctx, ref)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.Add(1)
				return nil
			}
			results[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	records := make([]*festival.Record, 0, len(refs))
	for _, r := range results {
		if r != nil {
			records = append(records, r)
		}
	}
	return records, int(failed.Load()), nil
}

// fetchOne resolves and parses one detail page, filling gaps from the list item.
func (p *Pipeline) fetchOne(ctx context.Context, ref festival.ListItemRef) (*festival.Record, error) {
	fields := logger.Fields{"name": ref.Name, "href": ref.Href}

	detailURL, err := scraper.DetailURL(p.opts.BaseURL, ref.Href)
	if err != nil {
		logger.IncrCounter("detail.failed")
		p.log.WarnErr("skipping festival with unusable link", fields, err)
		return nil, err
	}
	fields["url"] = detailURL

	start := time.Now()
	record, err := p.parser.Parse(ctx, detailURL)
	logger.RecordTiming("detail.fetch", time.Since(start))
	if err != nil {
		logger.IncrCounter("detail.failed")
		if ctx.Err() == nil {
			p.log.WarnErr("skipping festival", fields, err)
		}
		return nil, err
	}
	logger.IncrCounter("detail.fetched")

	if record.Name == "" {
		record.Name = ref.Name
	}
	if !record.Dated() {
		fillPeriodFromList(record, ref)
	}
	if !record.Dated() {
		p.log.Debug("festival has no parseable period", fields)
	}

	return record, nil
}

// fillPeriodFromList uses the list item's period line when the detail page had none.
func fillPeriodFromList(record *festival.Record, ref festival.ListItemRef) {
	period, ok := festival.ParsePeriod(ref.PeriodText)
	if !ok {
		return
	}
	record.StartDate = period.StartDate
	record.EndDate = period.EndDate
	if record.PeriodText == "" {
		text := strings.TrimSpace(strings.TrimPrefix(period.Raw, "기간"))
		record.PeriodText = strings.TrimSpace(strings.TrimLeft(text, ":："))
	}
}
