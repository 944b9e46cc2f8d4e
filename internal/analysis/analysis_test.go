package analysis

import (
	"bytes"
	"context"
	"testing"
	"time"

	"martinotron/internal/db"
	"martinotron/internal/scrapers/journal"
	"martinotron/internal/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/require"
)

func TestCounts(t *testing.T) {
	tests := []struct {
		content      string
		words        int
		exclamations int
	}{
		{"", 0, 0},
		{"   ", 0, 0},
		{"<p>Bonjour, l'été!</p>\n\n<p>Deux</p>", 4, 1},
		{"<p>Wow!!</p>\n\n<hr>\n\n<figure><img src=\"a!.jpg\" alt=\"\" /><figcaption>Photo!</figcaption></figure>", 2, 3},
		{"<p>Ça &amp; 2014 mots_liés</p>", 3, 0},
		{"<p><em>Vite</em>, <b>vite</b> !</p>", 2, 1},
	}

	for _, test := range tests {
		require.Equal(t, test.words, CountWords(test.content), test.content)
		require.Equal(t, test.exclamations, CountExclamationMarks(test.content), test.content)
	}
}

func day(d int) time.Time {
	return time.Date(2014, 9, d, 0, 0, 0, 0, time.UTC)
}

func ptr(s string) *string {
	return &s
}

func TestAnalyze(t *testing.T) {
	articles := []journal.Article{
		{Date: day(3), Title: ptr("Trois"), URL: "c", Content: "<p>un deux trois</p>"},
		{Date: day(1), URL: "b", Content: "<p>un!</p>"},
		{Date: day(1), Title: ptr("Un"), URL: "a", Content: ""},
	}

	points := Analyze(articles, CountWords)
	expected := []Point{
		{Date: day(1), Title: "Un", URL: "a", Count: 0},
		{Date: day(1), Title: "", URL: "b", Count: 1},
		{Date: day(3), Title: "Trois", URL: "c", Count: 3},
	}
	if diff := cmp.Diff(expected, points); diff != "" {
		t.Fatal(diff)
	}

	require.Equal(t, Summary{
		Articles: 3,
		Total:    4,
		Mean:     4.0 / 3.0,
		Max:      3,
		MaxURL:   "c",
	}, Summarize(points))
	require.Equal(t, Summary{}, Summarize(nil))

	// ties keep the first point
	require.Equal(t, "a", Summarize([]Point{{URL: "a", Count: 2}, {URL: "b", Count: 2}}).MaxURL)
}

func TestMetricNames(t *testing.T) {
	require.Equal(t, []string{"exclamations", "words"}, MetricNames())
}

func TestWriteCSV(t *testing.T) {
	points := []Point{
		{Date: day(1), Title: "Un, deux", URL: "a", Count: 2},
		{Date: day(2), Title: "Trois", URL: "b", Count: 0},
	}
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, "words", points))
	require.Equal(t, "date,title,url,words\n2014-09-01,\"Un, deux\",a,2\n2014-09-02,Trois,b,0\n", buf.String())
}

func TestFillTable(t *testing.T) {
	tw := table.NewWriter()
	FillTable(tw, "words", []Point{
		{Date: day(1), Title: "Un", URL: "http://www.journaldemontreal.com/2014/09/01/un", Count: 7},
	})
	out := tw.Render()
	require.Contains(t, out, "2014-09-01")
	require.Contains(t, out, "http://www.journaldemontreal.com/2014/09/01/un")
	require.Contains(t, out, "7.00")
}

func TestLoadArticles(t *testing.T) {
	qry := db.New(testutil.SetupDB(t))
	ctx := context.Background()

	for _, article := range []journal.Article{
		{Date: day(2), URL: "b", Content: "<p>deux</p>"},
		{Date: day(1), Title: ptr("Un"), URL: "a", Content: "<p>un</p>"},
	} {
		_, err := qry.InsertArticle(ctx, article.InsertParams(day(10)))
		require.NoError(t, err)
	}

	articles, err := LoadArticles(ctx, qry)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	require.Equal(t, "a", articles[0].URL)
	require.Equal(t, "Un", *articles[0].Title)
	require.Nil(t, articles[1].Title)
}
