package cli

import (
	"fmt"
	"os"

	"github.com/festivalmap/festivals/internal/catalog"
	"github.com/festivalmap/festivals/internal/config"
	"github.com/festivalmap/festivals/internal/dataset"
	"github.com/festivalmap/festivals/internal/logger"
	"github.com/festivalmap/festivals/internal/server"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	addr     string
	pageSize int
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the festival dataset over HTTP",
		Long: `Loads the dataset once and serves it to the web UI: paginated festival
listings, the region list, festival details and iCalendar downloads.`,
		Example: `  festivals serve
  festivals serve --addr 0.0.0.0:8080 --page-size 24`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", "", "Listen address (default \"127.0.0.1:8080\")")
	f.IntVar(&opts.pageSize, "page-size", 0, "Festivals per page (default 12)")

	return cmd
}

func runServe(cmd *cobra.Command, root *rootOptions, opts *serveOptions) error {
	cfg, err := loadConfig(cmd, root, func(cfg *config.Config) {
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = opts.addr
		}
		if cmd.Flags().Changed("page-size") {
			cfg.Server.PageSize = opts.pageSize
		}
	})
	if err != nil {
		return err
	}
	setupLogging(cfg, "serve")

	store, err := dataset.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing dataset: %w", err)
	}
	records, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	cat := catalog.New(records)
	logger.Info("dataset loaded", logger.Fields{
		"dir":       store.Dir(),
		"festivals": cat.Len(),
		"regions":   len(cat.Locations()),
	})
	if root.verbose {
		fmt.Fprintf(os.Stderr, "Serving %d festivals on http://%s\n", cat.Len(), cfg.Server.Addr)
	}

	handler := server.NewHandler(cat, server.Options{
		PageSize: cfg.Server.PageSize,
		Logger:   logger.Default(),
	})
	return server.Run(cmd.Context(), cfg.Server.Addr, server.NewServer(handler))
}
