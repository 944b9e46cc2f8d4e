package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"martinotron/internal/components/configutil"
	"martinotron/internal/db"
	"martinotron/internal/scrapers/journal"

	"dario.cat/mergo"
)

type Config struct {
	// the file listing the column urls, one per line
	URLFile  string                `json:"url_file"`
	Database db.Config             `json:"database"`
	Fetch    journal.FetcherConfig `json:"fetch"`
	Scraper  journal.ScraperConfig `json:"scraper"`
	// when set, `scrape` keeps running and scrapes on this cron spec
	Cron string `json:"cron"`
}

func defaultConfig() Config {
	return Config{
		URLFile:  "data/url/jm.txt",
		Database: db.Config{File: "data/db/martinotron.db"},
	}
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "martinotron.json5", "The config file to read.")
}

// readConfig reads path (and its .local override), falling back to the
// defaults for anything left unset.
func readConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config file not found, using defaults", "path", path)
		err = nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	err = mergo.Merge(&cfg, defaultConfig())
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// openStore reads the config and opens its database. The caller closes it.
func openStore() (Config, *sql.DB, error) {
	cfg, err := readConfig(configPath)
	if err != nil {
		return Config{}, nil, err
	}
	sqlite, err := cfg.Database.Open()
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, sqlite, nil
}
