package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func ptr(s string) *string {
	return &s
}

func parseDocument(t testing.TB, markup string) *html.Node {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func loadFixture(t testing.TB, name string) *html.Node {
	contents, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return parseDocument(t, string(contents))
}

func articlePage(body string) string {
	return `<html><body><article class="article-container">` +
		`<div class="article-main-txt">` + body + `</div>` +
		`</article></body></html>`
}

const columnURL = "http://www.journaldemontreal.com/2014/09/06/une-chronique"

func TestExtractColumn(t *testing.T) {
	article, err := NewExtractor().Extract(loadFixture(t, "column.html"), columnURL)
	require.NoError(t, err)

	expected := Article{
		Date:      time.Date(2014, 9, 6, 0, 0, 0, 0, time.UTC),
		Strapline: ptr("Chronique"),
		Title:     ptr("Le  titre & la suite"),
		Tagline:   ptr("Une exergue"),
		Content: strings.Join([]string{
			"<p>Premier paragraphe.</p>",
			"<p>Deuxième <em>paragraphe</em>!</p>",
			"<p>Texte <b>libre</b></p>",
			"<hr>",
			`<figure><img src="http://www.journaldemontreal.com/img/inline.jpg" alt="" /><figcaption>Photo Pierre</figcaption></figure>`,
			"<p>Dernier paragraphe.</p>",
		}, "\n\n"),
		URL:    columnURL,
		Image:  ptr("http://www.journaldemontreal.com/img/main.jpg"),
		Credit: ptr("Photo Agence QMI"),
		Legend: ptr("Une légende"),
	}
	if diff := cmp.Diff(expected, article); diff != "" {
		t.Fatal(diff)
	}

	// every flattened block is separated by exactly one blank line
	blocks, err := NewExtractor().Blocks(loadFixture(t, "column.html"), columnURL)
	require.NoError(t, err)
	rendered := 0
	for _, b := range blocks {
		if _, ok := b.Render(); ok {
			rendered++
		}
	}
	require.Len(t, strings.Split(article.Content, "\n\n"), rendered)
}

func TestExtractIceBucketChallenge(t *testing.T) {
	article, err := NewExtractor().Extract(loadFixture(t, "ice-bucket.html"), IceBucketChallengeURL)
	require.NoError(t, err)

	expected := Article{
		Date:      time.Date(2014, 8, 23, 0, 0, 0, 0, time.UTC),
		Strapline: ptr("POUR ou CONTRE: Le « Ice Bucket Challenge » ?"),
		Title:     ptr("POUR"),
		Tagline:   ptr("Exergue"),
		Content:   "<p>Pour le défi.</p>\n\n<p>Un sous-titre</p>\n\n<p>Encore pour.</p>",
		URL:       IceBucketChallengeURL,
	}
	if diff := cmp.Diff(expected, article); diff != "" {
		t.Fatal(diff)
	}

	// the same document under any other url follows the default rules
	other, err := NewExtractor().Extract(loadFixture(t, "ice-bucket.html"), "http://www.journaldemontreal.com/2014/08/23/autre")
	require.NoError(t, err)
	require.Equal(t, ptr("Ne doit pas servir"), other.Strapline)
	require.Equal(t, ptr("Titre par défaut"), other.Title)
}

func TestExtractOverrideTable(t *testing.T) {
	extractor := NewExtractor()
	rules := DefaultRules()
	rules.Title = FromLiteral("Titre fixe")
	extractor.Overrides = map[string]Rules{columnURL: rules}

	article, err := extractor.Extract(loadFixture(t, "column.html"), columnURL)
	require.NoError(t, err)
	require.Equal(t, ptr("Titre fixe"), article.Title)
	require.Equal(t, ptr("Chronique"), article.Strapline)
}

func TestExtractErrors(t *testing.T) {
	table := []struct {
		name     string
		markup   string
		url      string
		expected error
	}{
		{
			name:     "no date in url",
			markup:   articlePage(`<p>Texte</p>`),
			url:      "http://www.journaldemontreal.com/auteur/richard-martineau",
			expected: ErrMalformedURL,
		},
		{
			name:     "impossible date",
			markup:   articlePage(`<p>Texte</p>`),
			url:      "http://www.journaldemontreal.com/2014/02/30/chronique",
			expected: ErrMalformedURL,
		},
		{
			name:     "missing slug",
			markup:   articlePage(`<p>Texte</p>`),
			url:      "http://www.journaldemontreal.com/2014/02/03/",
			expected: ErrMalformedURL,
		},
		{
			name:     "no body root",
			markup:   `<html><body><article class="article-container"><p>Texte</p></article></body></html>`,
			url:      columnURL,
			expected: ErrBodyNotFound,
		},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewExtractor().Extract(parseDocument(t, test.markup), test.url)
			require.ErrorIs(t, err, test.expected)
			require.Contains(t, err.Error(), test.url)
		})
	}
}

func TestExtractMinimal(t *testing.T) {
	article, err := NewExtractor().Extract(
		parseDocument(t, articlePage(`<p>Hello<br><br>World</p>`)),
		columnURL,
	)
	require.NoError(t, err)
	require.Equal(t, "<p>Hello</p>\n\n<p>World</p>", article.Content)
	require.Nil(t, article.Strapline)
	require.Nil(t, article.Title)
	require.Nil(t, article.Tagline)
	require.Nil(t, article.Image)
}

func TestExtractEmptyBody(t *testing.T) {
	article, err := NewExtractor().Extract(parseDocument(t, articlePage(``)), columnURL)
	require.NoError(t, err)
	require.Equal(t, "", article.Content)
}

func TestExtractCreditWithoutImage(t *testing.T) {
	markup := `<html><body><article class="article-container">
		<div class="article-main-image">
			<picture><source srcset="http://x/main@2x.jpg 2x"></picture>
			<div class="image-information"><span class="credit_photo">Photo</span></div>
		</div>
		<div class="article-main-txt"><p>Texte</p></div>
	</article></body></html>`

	article, err := NewExtractor().Extract(parseDocument(t, markup), columnURL)
	require.NoError(t, err)
	require.Nil(t, article.Image)
	require.Nil(t, article.Credit)
	require.Nil(t, article.Legend)
}

func TestExtractFirstMatch(t *testing.T) {
	markup := `<html><body><article class="article-container">
		<div class="title-groupe"><h1>Premier</h1></div>
		<div class="title-groupe"><h1>Second</h1></div>
		<div class="article-main-txt"><p>Un</p></div>
		<div class="article-main-txt"><p>Deux</p></div>
	</article></body></html>`

	article, err := NewExtractor().Extract(parseDocument(t, markup), columnURL)
	require.NoError(t, err)
	require.Equal(t, ptr("Premier"), article.Title)
	require.Equal(t, "<p>Un</p>", article.Content)
}

func TestParseDate(t *testing.T) {
	table := []struct {
		url      string
		expected time.Time
	}{
		{"http://www.journaldemontreal.com/2014/08/23/le-ice-bucket-challenge", time.Date(2014, 8, 23, 0, 0, 0, 0, time.UTC)},
		{"https://www.journaldemontreal.com/2016/02/29/annee-bissextile?utm=x", time.Date(2016, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"/2012/12/31/fin", time.Date(2012, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, test := range table {
		date, err := ParseDate(test.url)
		require.NoError(t, err, test.url)
		require.True(t, test.expected.Equal(date), test.url)
	}

	for _, url := range []string{"", "http://x/2014/8/23/slug", "http://x/2015/02/29/slug", "http://x/2014/13/01/slug"} {
		_, err := ParseDate(url)
		require.ErrorIs(t, err, ErrMalformedURL, url)
	}
}

func TestExtractMultilineParagraph(t *testing.T) {
	doc := parseDocument(t, articlePage("<p>Un\n\n  Deux</p><p>Trois</p>"))
	article, err := NewExtractor().Extract(doc, columnURL)
	require.NoError(t, err)
	require.Equal(t, "<p>Un Deux</p>\n\n<p>Trois</p>", article.Content)

	blocks, err := NewExtractor().Blocks(doc, columnURL)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.Len(t, strings.Split(article.Content, "\n\n"), len(blocks))
}

func TestExtractSkipsSourcesWithoutSrcset(t *testing.T) {
	page := `<html><body><article class="article-container">` +
		`<div class="article-main-image"><picture>` +
		`<source media="(max-width: 600px)">` +
		`<source srcset="http://x/main@2x.jpg 2x,http://x/main.jpg 1x">` +
		`</picture></div>` +
		`<div class="article-main-txt">` +
		`<div class="photo-inline"><div class="espacePhoto"><picture>` +
		`<source media="(max-width: 600px)">` +
		`<source srcset="http://x/inline.jpg">` +
		`</picture></div><div class="credit">Photo</div></div>` +
		`</div></article></body></html>`

	article, err := NewExtractor().Extract(parseDocument(t, page), columnURL)
	require.NoError(t, err)
	require.Equal(t, ptr("http://x/main.jpg"), article.Image)
	require.Equal(t, `<figure><img src="http://x/inline.jpg" alt="" /><figcaption>Photo</figcaption></figure>`, article.Content)
}
