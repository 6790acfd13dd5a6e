package cli

import (
	"fmt"
	"time"

	"github.com/festivalmap/festivals/internal/dataset"
	"github.com/festivalmap/festivals/internal/festival"
	"github.com/spf13/cobra"
)

type listOptions struct {
	region string
	sort   string
	active bool
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the festivals in the current dataset",
		Long: `Reads festivals.json (or festivals.js when the JSON copy is missing)
from the data directory and prints its festivals.`,
		Example: `  festivals list
  festivals list --region 경북 --sort name
  festivals list --active --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.region, "region", "", "Only show festivals in this region (e.g. 서울, 경북)")
	f.StringVar(&opts.sort, "sort", "date", "Sort order: date, region or name")
	f.BoolVar(&opts.active, "active", false, "Only show festivals that have not ended today")

	return cmd
}

func runList(cmd *cobra.Command, root *rootOptions, opts *listOptions) error {
	format, err := parseFormat(root.format)
	if err != nil {
		return err
	}
	order, err := parseSortOrder(opts.sort)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, root, nil)
	if err != nil {
		return err
	}
	setupLogging(cfg, "list")

	store, err := dataset.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing dataset: %w", err)
	}
	records, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	today := festival.Today(time.Now())
	if opts.region != "" {
		records = festival.FilterByLocation(records, opts.region)
	}
	if opts.active {
		records = festival.FilterActive(records, today)
	}
	sortFestivals(records, order)

	return WriteFestivals(cmd.OutOrStdout(), records, format, root.verbose, today)
}
