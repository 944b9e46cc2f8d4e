package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueries(t *testing.T) {
	sqlite, err := Config{File: ":memory:"}.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer sqlite.Close()
	qry := New(sqlite)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	url := "http://www.journaldemontreal.com/2014/08/23/le-ice-bucket-challenge"
	exists, err := qry.ArticleExists(ctx, url)
	require.NoError(t, err)
	require.Equal(t, int64(0), exists)

	params := InsertArticleParams{
		Date:      "2014-08-23",
		Title:     sql.NullString{String: "POUR", Valid: true},
		Content:   "<p>Pour le défi.</p>",
		Url:       url,
		ScrapedAt: 1,
	}
	n, err := qry.InsertArticle(ctx, params)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	params.Content = "<p>Autre contenu</p>"
	n, err = qry.InsertArticle(ctx, params)
	require.NoError(t, err)
	require.Equal(t, int64(0), n)

	exists, err = qry.ArticleExists(ctx, url)
	require.NoError(t, err)
	require.Equal(t, int64(1), exists)

	_, err = qry.InsertArticle(ctx, InsertArticleParams{
		Date:      "2014-08-22",
		Content:   "<p>Veille</p>",
		Url:       "http://www.journaldemontreal.com/2014/08/22/veille",
		ScrapedAt: 1,
	})
	require.NoError(t, err)

	articles, err := qry.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	require.Equal(t, "2014-08-22", articles[0].Date)
	require.False(t, articles[0].Title.Valid)
	require.Equal(t, "<p>Pour le défi.</p>", articles[1].Content)

	urls, err := qry.ListArticleUrls(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{
		"http://www.journaldemontreal.com/2014/08/22/veille",
		url,
	}, urls)

	count, err := qry.CountArticles(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestMakeTx(t *testing.T) {
	sqlite, err := Config{File: ":memory:"}.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer sqlite.Close()
	makeTx := NewMakeTx(sqlite)
	ctx := context.Background()

	tx, discard, _, err := makeTx(ctx)
	require.NoError(t, err)
	_, err = tx.InsertArticle(ctx, InsertArticleParams{Date: "2014-01-01", Content: "x", Url: "a", ScrapedAt: 1})
	require.NoError(t, err)
	require.NoError(t, discard())

	tx, _, commit, err := makeTx(ctx)
	require.NoError(t, err)
	_, err = tx.InsertArticle(ctx, InsertArticleParams{Date: "2014-01-02", Content: "y", Url: "b", ScrapedAt: 1})
	require.NoError(t, err)
	require.NoError(t, commit())

	urls, err := New(sqlite).ListArticleUrls(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, urls)
}

func TestOpen(t *testing.T) {
	_, err := Config{}.Open()
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "nested", "articles.db")
	sqlite, err := Config{File: path}.Open()
	require.NoError(t, err)
	require.NoError(t, sqlite.Close())

	// reopening keeps the existing schema
	sqlite, err = Config{File: path}.Open()
	require.NoError(t, err)
	defer sqlite.Close()
	require.FileExists(t, path)
}
