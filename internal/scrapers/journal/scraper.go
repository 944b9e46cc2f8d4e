// scraper.go drives fetching, extraction and storage of a list of columns.

package journal

import (
	"context"
	"fmt"
	"sync/atomic"

	"martinotron/internal/components/assert"
	"martinotron/internal/components/chrono"
	"martinotron/internal/components/telemetry"
	"martinotron/internal/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

const (
	report_db_query         = "db.query"
	report_scraper_fetch    = "scraper.fetch"
	report_scraper_extract  = "scraper.extract"
	report_scraper_schedule = "scraper.schedule"
	report_scraper_stored   = "scraper.stored"
	report_scraper_failed   = "scraper.failed"
)

var (
	tracer = otel.Tracer("martinotron/internal/scrapers/journal")
	meter  = otel.Meter("martinotron/internal/scrapers/journal")

	storedCounter, _ = meter.Int64Counter(
		"journal.articles_stored",
		metric.WithDescription("Articles inserted in the store."),
	)
	failedCounter, _ = meter.Int64Counter(
		"journal.articles_failed",
		metric.WithDescription("Urls that could not be fetched or extracted."),
	)
)

// DocumentFetcher downloads and parses a page.
//
// note: fault injection point
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (*html.Node, error)
}

type ScraperConfig struct {
	Workers   int `json:"workers"`
	BatchSize int `json:"batch_size"`
}

func (c ScraperConfig) withDefaults() ScraperConfig {
	if c.Workers <= 0 {
		c.Workers = 5
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 10
	}
	return c
}

// Stats summarizes one Scrape call.
type Stats struct {
	// Queued is the number of urls that were not stored yet.
	Queued int
	// Skipped is the number of urls that were already stored.
	Skipped int
	Stored  int
	Failed  int
}

// Scraper stores the columns it is given that are not stored yet.
type Scraper struct {
	db        *db.Queries
	makeTx    db.MakeTx
	fetcher   DocumentFetcher
	extractor Extractor
	time      chrono.API
	tel       telemetry.API
	config    ScraperConfig
}

func NewScraper(
	qry *db.Queries,
	makeTx db.MakeTx,
	fetcher DocumentFetcher,
	extractor Extractor,
	time chrono.API,
	tel telemetry.API,
	config ScraperConfig,
) Scraper {
	assert.NotNil(qry)
	assert.NotNil(makeTx)
	assert.NotNil(fetcher)
	assert.NotNil(time)
	assert.NotNil(tel)
	config = config.withDefaults()
	assert.Positive("workers", config.Workers)
	assert.Positive("batch size", config.BatchSize)

	return Scraper{
		db:        qry,
		makeTx:    makeTx,
		fetcher:   fetcher,
		extractor: extractor,
		time:      time,
		tel:       telemetry.NewScopedAPI("journal", tel),
		config:    config,
	}
}

// pending returns the urls that still need to be scraped, without duplicates.
func (s Scraper) pending(ctx context.Context, urls []string, stats *Stats) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, url := range urls {
		if seen[url] {
			continue
		}
		seen[url] = true

		exists, err := s.db.ArticleExists(ctx, url)
		if err != nil {
			s.tel.ReportBroken(report_db_query, err, "ArticleExists", url)
			return nil, err
		}
		if exists != 0 {
			stats.Skipped++
			continue
		}
		out = append(out, url)
	}
	stats.Queued = len(out)
	return out, nil
}

func (s Scraper) scrapeOne(ctx context.Context, url string) (Article, error) {
	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		if ctx.Err() == nil {
			s.tel.ReportWarning(report_scraper_fetch, err)
		}
		return Article{}, err
	}
	article, err := s.extractor.Extract(doc, url)
	if err != nil {
		s.tel.ReportBroken(report_scraper_extract, err)
		return Article{}, err
	}
	return article, nil
}

// Scrape fetches and stores every url that is not stored yet. A url that fails
// to be fetched or extracted is counted and skipped. When ctx is cancelled no
// more urls are dispatched, the articles already extracted are still stored
// and ctx's error is returned.
func (s Scraper) Scrape(ctx context.Context, urls []string) (Stats, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	var stats Stats
	pending, err := s.pending(ctx, urls, &stats)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to query stored urls")
		return stats, err
	}
	span.SetAttributes(
		attribute.Int("queued", stats.Queued),
		attribute.Int("skipped", stats.Skipped),
	)

	workCtx, abort := context.WithCancel(ctx)
	defer abort()

	jobs := make(chan string)
	results := make(chan Article)
	var failed atomic.Int64

	group, groupCtx := errgroup.WithContext(workCtx)
	group.Go(func() error {
		defer close(jobs)
		for _, url := range pending {
			if groupCtx.Err() != nil {
				return nil
			}
			select {
			case jobs <- url:
			case <-groupCtx.Done():
				return nil
			}
		}
		return nil
	})
	for i := 0; i < s.config.Workers; i++ {
		group.Go(func() error {
			for url := range jobs {
				if groupCtx.Err() != nil {
					return nil
				}
				article, err := s.scrapeOne(groupCtx, url)
				if err != nil {
					if groupCtx.Err() == nil {
						failed.Add(1)
						failedCounter.Add(ctx, 1)
					}
					continue
				}
				select {
				case results <- article:
				case <-groupCtx.Done():
					return nil
				}
			}
			return nil
		})
	}
	go func() {
		group.Wait()
		close(results)
	}()

	stored, writeErr := s.write(ctx, results, abort)
	stats.Stored = stored
	stats.Failed = int(failed.Load())

	s.tel.ReportCount(report_scraper_stored, int64(stats.Stored))
	s.tel.ReportCount(report_scraper_failed, int64(stats.Failed))
	span.SetAttributes(
		attribute.Int("stored", stats.Stored),
		attribute.Int("failed", stats.Failed),
	)

	if writeErr != nil {
		span.RecordError(writeErr)
		span.SetStatus(codes.Error, "failed to store articles")
		return stats, writeErr
	}
	return stats, ctx.Err()
}

// write is the only goroutine touching the store while workers run. It drains
// results until the channel is closed, committing every batchSize articles.
func (s Scraper) write(ctx context.Context, results <-chan Article, abort func()) (int, error) {
	// batches received before cancellation are still committed
	flushCtx := context.WithoutCancel(ctx)

	var (
		batch    []Article
		stored   int
		writeErr error
	)
	flush := func() {
		defer func() { batch = batch[:0] }()
		if len(batch) == 0 || writeErr != nil {
			return
		}
		n, err := s.insertBatch(flushCtx, batch)
		if err != nil {
			writeErr = err
			abort()
			return
		}
		stored += n
	}

	for article := range results {
		batch = append(batch, article)
		if len(batch) >= s.config.BatchSize {
			flush()
		}
	}
	flush()

	return stored, writeErr
}

func (s Scraper) insertBatch(ctx context.Context, batch []Article) (int, error) {
	tx, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		s.tel.ReportBroken(report_db_query, fmt.Errorf("make tx: %w", err))
		return 0, err
	}
	defer discard()

	now := s.time.Now()
	stored := 0
	for _, article := range batch {
		n, err := tx.InsertArticle(ctx, article.InsertParams(now))
		if err != nil {
			s.tel.ReportBroken(report_db_query, err, "InsertArticle", article.URL)
			return 0, err
		}
		stored += int(n)
	}

	err = commit()
	if err != nil {
		s.tel.ReportBroken(report_db_query, fmt.Errorf("commit tx: %w", err))
		return 0, err
	}
	storedCounter.Add(ctx, int64(stored))
	return stored, nil
}

// Schedule runs Scrape over the urls returned by source on every tick of spec.
// Runs stop being dispatched once ctx is done.
func (s Scraper) Schedule(ctx context.Context, cron chrono.CronAPI, spec string, source func() ([]string, error)) error {
	return cron.Cron(spec, func() {
		if ctx.Err() != nil {
			return
		}
		urls, err := source()
		if err != nil {
			s.tel.ReportBroken(report_scraper_schedule, fmt.Errorf("read urls: %w", err))
			return
		}
		stats, err := s.Scrape(ctx, urls)
		if err != nil && ctx.Err() == nil {
			s.tel.ReportBroken(report_scraper_schedule, err)
			return
		}
		s.tel.ReportDebug(
			"scheduled scrape finished",
			"queued", stats.Queued,
			"skipped", stats.Skipped,
			"stored", stats.Stored,
			"failed", stats.Failed,
		)
	})
}
