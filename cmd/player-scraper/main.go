// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the player-scraper CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/player-scraper/internal/envfile"
	"github.com/pdiddy/player-scraper/internal/logging"
	"github.com/pdiddy/player-scraper/internal/store"
	"github.com/pdiddy/player-scraper/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured from --log-level and --log-format before any
// subcommand runs.
var logger = logging.NewNop()

// rootCmd is the base command for the player-scraper CLI.
var rootCmd = &cobra.Command{
	Use:   "player-scraper",
	Short: "Scrape football player pages into a SQLite player database",
	Long: `player-scraper extracts biographical and career facts from encyclopedia
pages about football players and reconciles them into a SQLite database.

scrape fetches a list of pages and writes the extracted records to a
';'-delimited file, optionally merging them into the database. import loads
the seed dataset or a scraped file into the database. export dumps the
database as YAML or JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		l, err := logging.New(os.Stderr, viper.GetString("log_format"), level)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./player-scraper.yaml or ~/.config/player-scraper/player-scraper.yaml)")
	pf.String("db", "db/database.sqlite", "SQLite database file")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")

	viper.BindPFlag("db", pf.Lookup("db"))
	viper.BindPFlag("log_level", pf.Lookup("log-level"))
	viper.BindPFlag("log_format", pf.Lookup("log-format"))
}

func initConfig() {
	keys, err := envfile.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	} else if len(keys) > 0 {
		fmt.Fprintf(os.Stderr, "Loaded .env: %v\n", keys)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("player-scraper")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "player-scraper"))
		}
	}

	viper.SetEnvPrefix("PLAYER_SCRAPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// openStore opens the database named by --db. The caller closes it.
func openStore() (*store.Store, error) {
	cfg := types.StoreConfig{
		Path:        viper.GetString("db"),
		BusyTimeout: viper.GetDuration("store.busy_timeout"),
	}
	s, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "path", cfg.Path)
	return s, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
