// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/player-scraper/internal/exchange"
	"github.com/pdiddy/player-scraper/internal/pipeline"
	"github.com/pdiddy/player-scraper/internal/store"
	"github.com/pdiddy/player-scraper/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a record file into the database",
	Long: `Import reconciles every row of a ';'-delimited record file into the
database, keyed by URL. Existing players keep their identifier.`,
}

var importSeedCmd = &cobra.Command{
	Use:   "seed <players.csv>",
	Short: "Import the seed dataset, overwriting stored values",
	Long: `Seed import reads the seed dataset (PlayerID;URL;Name;...) and replaces
every stored field with the file's value, unknown values included.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0], exchange.ReadSeed, store.ModeSeed)
	},
}

var importScrapedCmd = &cobra.Command{
	Use:   "scraped <scraped.csv>",
	Short: "Import a scraped-records file, keeping known values",
	Long: `Scraped import reads a file written by scrape and refreshes the stored
records: a stored value is replaced only by a known, different value. The
scrape timestamp always follows the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0], exchange.ReadScraped, store.ModeRefresh)
	},
}

func init() {
	importCmd.AddCommand(importSeedCmd, importScrapedCmd)
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, path string, read func(io.Reader) ([]types.PlayerRecord, error), mode store.Mode) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	recs, err := read(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.With("command", "import", "mode", mode.String())
	log.Info("import started", "file", path, "records", len(recs))

	result, err := pipeline.Import(ctx, s, recs, mode, cmd.OutOrStdout(), log)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d record(s) failed: %w", result.Failed, pipeline.ErrBatchFailures)
	}
	return nil
}
