// Package analysis computes per-column metrics over stored articles.
package analysis

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"martinotron/internal/db"
	"martinotron/internal/scrapers/journal"

	"github.com/PuerkitoBio/goquery"
)

// Metric counts something in the content of an article.
type Metric func(content string) int

var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// TextContent returns the concatenated text of the content markup, without
// tags or attributes.
func TextContent(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	return doc.Text()
}

func CountWords(content string) int {
	return len(wordRegex.FindAllStringIndex(TextContent(content), -1))
}

func CountExclamationMarks(content string) int {
	return strings.Count(TextContent(content), "!")
}

// Metrics maps the metric names accepted on the command line.
var Metrics = map[string]Metric{
	"words":        CountWords,
	"exclamations": CountExclamationMarks,
}

// MetricNames returns the keys of Metrics, sorted.
func MetricNames() []string {
	names := make([]string, 0, len(Metrics))
	for name := range Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Point struct {
	Date  time.Time
	Title string
	URL   string
	Count int
}

// Analyze applies metric to every article, ordered by date then url.
func Analyze(articles []journal.Article, metric Metric) []Point {
	points := make([]Point, 0, len(articles))
	for _, article := range articles {
		title := ""
		if article.Title != nil {
			title = *article.Title
		}
		points = append(points, Point{
			Date:  article.Date,
			Title: title,
			URL:   article.URL,
			Count: metric(article.Content),
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		if !points[i].Date.Equal(points[j].Date) {
			return points[i].Date.Before(points[j].Date)
		}
		return points[i].URL < points[j].URL
	})
	return points
}

type Summary struct {
	Articles int
	Total    int
	Mean     float64
	Max      int
	// MaxURL is the first article (in point order) reaching Max.
	MaxURL string
}

func Summarize(points []Point) Summary {
	summary := Summary{Articles: len(points)}
	for i, point := range points {
		summary.Total += point.Count
		if i == 0 || point.Count > summary.Max {
			summary.Max = point.Count
			summary.MaxURL = point.URL
		}
	}
	if summary.Articles > 0 {
		summary.Mean = float64(summary.Total) / float64(summary.Articles)
	}
	return summary
}

// LoadArticles reads every stored article.
func LoadArticles(ctx context.Context, qry *db.Queries) ([]journal.Article, error) {
	rows, err := qry.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	articles := make([]journal.Article, 0, len(rows))
	for _, row := range rows {
		article, err := journal.ArticleFromRow(row)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}
