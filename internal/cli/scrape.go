package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/festivalmap/festivals/internal/config"
	"github.com/festivalmap/festivals/internal/dataset"
	"github.com/festivalmap/festivals/internal/fetch"
	"github.com/festivalmap/festivals/internal/logger"
	"github.com/festivalmap/festivals/internal/pipeline"
	"github.com/festivalmap/festivals/internal/scraper"
	"github.com/spf13/cobra"
)

// scrapeOptions holds the flags of the scrape run
type scrapeOptions struct {
	workers    int
	chromePath string
	headful    bool
}

func (o *scrapeOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&o.workers, "workers", 1, "Detail pages fetched concurrently (1-8)")
	f.StringVar(&o.chromePath, "chrome-path", "", "Chrome/Chromium executable (default: search PATH)")
	f.BoolVar(&o.headful, "headful", false, "Show the browser window while crawling list pages")
}

func (o *scrapeOptions) apply(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("workers") {
			cfg.Workers = o.workers
		}
		if flags.Changed("chrome-path") {
			cfg.ChromePath = o.chromePath
		}
		if flags.Changed("headful") {
			cfg.Headless = !o.headful
		}
	}
}

// openListNavigator starts the renderer used for the script-driven list pages.
// Tests replace it to crawl static fixtures.
var openListNavigator = func(ctx context.Context, cfg *config.Config) (fetch.Navigator, func() error, error) {
	browser, err := fetch.NewBrowser(ctx, &fetch.BrowserOptions{
		Timeout:      cfg.Timeout,
		UserAgent:    cfg.UserAgent,
		ExecPath:     cfg.ChromePath,
		Headless:     cfg.Headless,
		WaitSelector: "body",
		Settle:       fetch.DefaultSettle,
	})
	if err != nil {
		return nil, nil, err
	}
	return browser, browser.Close, nil
}

func runScrape(cmd *cobra.Command, opts *rootOptions, scrape *scrapeOptions) error {
	start := time.Now()

	format, err := parseFormat(opts.format)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, opts, scrape.apply(cmd))
	if err != nil {
		return err
	}
	runID := setupLogging(cfg, "scrape")
	logger.DefaultMetrics().Reset()
	defer logMetrics(start)

	if opts.verbose {
		fmt.Fprintf(os.Stderr, "Crawling %s\n", scraper.ListURL(cfg.BaseURL, 1))
		fmt.Fprintf(os.Stderr, "Data directory: %s\n", cfg.OutputDir)
	}

	store, err := dataset.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing dataset: %w", err)
	}

	ctx := cmd.Context()
	nav, closeNav, err := openListNavigator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	defer func() {
		if err := closeNav(); err != nil {
			logger.Debug("browser close", logger.Fields{"error": err.Error()})
		}
	}()

	client := fetch.NewClient(&fetch.Options{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
	})

	crawler := scraper.NewListCrawler(nav, scraper.ListOptions{
		BaseURL:   cfg.BaseURL,
		PageDelay: cfg.PageDelay,
		Logger:    logger.Default(),
	})
	parser := scraper.NewDetailParser(client, scraper.DetailOptions{Origin: cfg.BaseURL})

	p := pipeline.New(crawler, parser, store, pipeline.Options{
		BaseURL:     cfg.BaseURL,
		DetailDelay: cfg.DetailDelay,
		Workers:     cfg.Workers,
		Logger:      logger.Default(),
	})

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	summary := NewScrapeSummary(runID, result, store)
	if err := WriteSummary(cmd.OutOrStdout(), summary, format, opts.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
