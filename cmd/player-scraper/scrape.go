// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/player-scraper/internal/exchange"
	"github.com/pdiddy/player-scraper/internal/fetch"
	"github.com/pdiddy/player-scraper/internal/pipeline"
	"github.com/pdiddy/player-scraper/pkg/types"
)

const defaultOutput = "data/scraped_player_data.csv"

var scrapeCmd = &cobra.Command{
	Use:   "scrape <urls.csv>",
	Short: "Scrape player pages listed in a CSV file",
	Long: `Scrape fetches every URL in the given file (first column, one per line),
extracts the player record from each football player page, and writes the
records to a ';'-delimited file. Pages that are not about a football player
are skipped. With --reconcile each record is also merged into the database
without overwriting known values with unknown ones.`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	f := scrapeCmd.Flags()
	f.String("output", defaultOutput, "file the scraped records are written to")
	f.Bool("reconcile", false, "also merge each record into the database")
	f.Int("workers", 4, "number of pages processed concurrently")
	f.Duration("timeout", 0, "HTTP request timeout (default 30s)")
	f.String("user-agent", "", "User-Agent header sent with every request")
	f.Int("max-retries", 0, "retries on HTTP 429/503 (default 5)")
	f.Float64("rps", 1, "maximum requests per second across workers (0 for no limit)")

	viper.BindPFlag("scrape.output_path", f.Lookup("output"))
	viper.BindPFlag("scrape.reconcile", f.Lookup("reconcile"))
	viper.BindPFlag("scrape.workers", f.Lookup("workers"))
	viper.BindPFlag("scrape.timeout", f.Lookup("timeout"))
	viper.BindPFlag("scrape.user_agent", f.Lookup("user-agent"))
	viper.BindPFlag("scrape.max_retries", f.Lookup("max-retries"))
	viper.BindPFlag("scrape.requests_per_second", f.Lookup("rps"))

	rootCmd.AddCommand(scrapeCmd)
}

func scrapeConfig() types.ScrapeConfig {
	return types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:           viper.GetDuration("scrape.timeout"),
			UserAgent:         viper.GetString("scrape.user_agent"),
			MaxRetries:        viper.GetInt("scrape.max_retries"),
			RequestsPerSecond: viper.GetFloat64("scrape.requests_per_second"),
		},
		Workers:    viper.GetInt("scrape.workers"),
		OutputPath: viper.GetString("scrape.output_path"),
		Reconcile:  viper.GetBool("scrape.reconcile"),
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	urlsFile := args[0]
	if !strings.EqualFold(filepath.Ext(urlsFile), ".csv") {
		return fmt.Errorf("URL file %s must have a .csv extension", urlsFile)
	}

	cfg := scrapeConfig()
	if cfg.OutputPath == "" {
		cfg.OutputPath = defaultOutput
	}

	in, err := os.Open(urlsFile)
	if err != nil {
		return fmt.Errorf("opening URL file: %w", err)
	}
	urls, err := exchange.ReadURLs(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", urlsFile, err)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs in %s", urlsFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &pipeline.Runner{
		Fetcher: fetch.New(nil, cfg.HTTPConfig),
		Workers: cfg.Workers,
		Log:     logger.With("command", "scrape"),
		Out:     cmd.OutOrStdout(),
	}

	if cfg.Reconcile {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		runner.Store = s
	}

	logger.Info("scrape started", "urls", len(urls), "workers", cfg.Workers, "reconcile", cfg.Reconcile)
	result, runErr := runner.Run(ctx, urls)

	if err := writeScraped(cfg.OutputPath, result.Records()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Scraped data saved to %s\n", cfg.OutputPath)

	if runErr != nil {
		return runErr
	}
	if result.HasFailures() {
		return fmt.Errorf("%d page(s) failed: %w", result.Failed, pipeline.ErrBatchFailures)
	}
	return nil
}

// writeScraped writes recs to path through a temporary file so a failed
// run never leaves a truncated output behind.
func writeScraped(path string, recs []types.PlayerRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".scraped-*.csv")
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := exchange.WriteScraped(tmp, recs); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming output file: %w", err)
	}
	return nil
}
