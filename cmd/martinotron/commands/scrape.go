package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"martinotron/internal/components/chrono"
	"martinotron/internal/components/telemetry"
	"martinotron/internal/db"
	"martinotron/internal/scrapers/journal"

	"github.com/spf13/cobra"
)

var scrapeCron string

func init() {
	scrapeCmd.Flags().StringVar(&scrapeCron, "cron", "", "Keeps running and scrapes again on this cron spec (overrides the config).")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--config <martinotron.json5>] [--cron <spec>]",
	Short: "Scrapes the columns listed in the url file that are not stored yet.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, sqlite, err := openStore()
		if err != nil {
			return err
		}
		defer sqlite.Close()

		clock, err := chrono.NewStandardImpl()
		if err != nil {
			return err
		}
		tel := telemetry.SlogAPI{}
		scraper := journal.NewScraper(
			db.New(sqlite),
			db.NewMakeTx(sqlite),
			journal.NewFetcher(cfg.Fetch, tel),
			journal.NewExtractor(),
			clock,
			tel,
			cfg.Scraper,
		)
		source := func() ([]string, error) {
			return journal.ReadURLFile(cfg.URLFile)
		}

		spec := cfg.Cron
		if scrapeCron != "" {
			spec = scrapeCron
		}
		if spec == "" {
			urls, err := source()
			if err != nil {
				return err
			}
			t1 := time.Now()
			stats, err := scraper.Scrape(ctx, urls)
			slog.Info(
				"scrape finished",
				"queued", stats.Queued,
				"skipped", stats.Skipped,
				"stored", stats.Stored,
				"failed", stats.Failed,
				"seconds", time.Since(t1).Seconds(),
			)
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				slog.Info("scrape interrupted, stored articles were kept")
				return nil
			}
			return err
		}

		telemetry.InstrumentPerfStats(ctx, time.Minute)
		cron := chrono.NewStandardCron(clock, tel)
		err = scraper.Schedule(ctx, cron, spec, source)
		if err != nil {
			<-cron.Stop().Done()
			return fmt.Errorf("schedule %q: %w", spec, err)
		}
		slog.Info("scraping on schedule", "cron", spec, "url_file", cfg.URLFile)

		<-ctx.Done()
		slog.Info("waiting for the running scrape to finish")
		<-cron.Stop().Done()
		return nil
	},
}
