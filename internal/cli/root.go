package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/festivalmap/festivals/internal/config"
	"github.com/festivalmap/festivals/internal/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// rootOptions holds the flags shared by every command
type rootOptions struct {
	configPath string
	outputDir  string
	logLevel   string
	format     string
	verbose    bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	scrape := &scrapeOptions{}

	cmd := &cobra.Command{
		Use:   "festivals",
		Short: "Collect Korean festival listings from the MCST festival site",
		Long: `Crawls the Ministry of Culture, Sports and Tourism festival listings,
normalizes every festival's period, region, address and links, keeps the
festivals that have not ended yet and rewrites the dataset used by the web UI.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, opts, scrape)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&opts.outputDir, "output-dir", "", "Directory holding festivals.js and festivals.json (default \"data\")")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (default \"info\")")
	pf.StringVar(&opts.format, "format", "text", "Output format: text or json")
	pf.BoolVar(&opts.verbose, "verbose", false, "Print detailed progress and results")

	scrape.register(cmd)

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newListCmd(opts))

	return cmd
}

// loadConfig resolves the configuration for cmd: defaults, config file,
// environment, then any flag the user set explicitly.
func loadConfig(cmd *cobra.Command, opts *rootOptions, apply func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if apply != nil {
		apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging installs the default logger for a run, tagged with a run id.
func setupLogging(cfg *config.Config, command string) string {
	runID := uuid.NewString()
	logger.SetDefault(logger.New(cfg.Level(), os.Stderr).With(logger.Fields{
		"run_id":  runID,
		"command": command,
	}))
	return runID
}

func parseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

func logMetrics(start time.Time) {
	logger.RecordTiming("command.total", time.Since(start))
	logger.Debug("metrics", logger.Fields(logger.GetMetricsSnapshot()))
}

// Execute runs the CLI with a context cancelled on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
