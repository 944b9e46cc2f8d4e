package journal

import (
	"martinotron/pkg/htmlutil"

	"golang.org/x/net/html"
)

// Field resolves one optional text field of an article, either from a query
// or from a fixed literal.
type Field struct {
	Query   htmlutil.Query
	Literal *string
}

func FromQuery(expr string) Field {
	return Field{Query: htmlutil.MustCompile(expr)}
}

func FromLiteral(value string) Field {
	return Field{Literal: &value}
}

// Resolve returns the literal if there is one, otherwise the normalized
// content of the first node selected by the query, or nil when nothing matches.
func (f Field) Resolve(doc *html.Node) *string {
	if f.Literal != nil {
		value := *f.Literal
		return &value
	}
	node := f.Query.First(doc)
	if node == nil {
		return nil
	}
	value := htmlutil.Normalize(node)
	return &value
}

// Rules is the set of structural queries used to extract an article.
// Every query except Body is evaluated against the document, Body is evaluated
// against the node selected by BodyRoot.
type Rules struct {
	Strapline Field
	Title     Field
	Tagline   Field

	BodyRoot htmlutil.Query
	Body     htmlutil.Union

	// Image selects the <source> element carrying the main image's srcset.
	Image       htmlutil.Query
	ImageCredit htmlutil.Query
	ImageLegend htmlutil.Query

	// FigureImage and FigureCredit are evaluated against a photo-inline block.
	FigureImage  htmlutil.Query
	FigureCredit htmlutil.Query
}

const articleContainer = `//article[@class="article-container"]`

// DefaultRules are the queries matching the layout shared by every column.
func DefaultRules() Rules {
	return Rules{
		Strapline: FromQuery(articleContainer + `//div[@class="strapline"]`),
		Title:     FromQuery(articleContainer + `//div[contains(@class, "title-groupe")]/h1`),
		Tagline:   FromQuery(articleContainer + `//div[contains(@class, "title-groupe")]/h3[@class="exergue-inf"]`),

		BodyRoot: htmlutil.MustCompile(articleContainer + `//div[@class="article-main-txt"]`),
		Body: htmlutil.Union{
			htmlutil.MustCompile(`./p`),
			htmlutil.MustCompile(`.//div[not(contains(@class, "wp-comment-body") or contains(@class, "espace_210"))]/p`),
			// text divs whose only children are inline formatting
			htmlutil.MustCompile(`.//div[not(contains(@class, "wp-comment-body")) and not(*[not(name()="em" or name()="i" or name()="b" or name()="br")])]`),
			htmlutil.MustCompile(`.//hr`),
			htmlutil.MustCompile(`./div[@class="photo-inline"]`),
		},

		Image:       htmlutil.MustCompile(articleContainer + `//div[@class="article-main-image"]//picture/source[@srcset]`),
		ImageCredit: htmlutil.MustCompile(articleContainer + `//div[@class="article-main-image"]//div[@class="image-information"]//span[@class="credit_photo"]`),
		ImageLegend: htmlutil.MustCompile(articleContainer + `//div[@class="article-main-image"]//div[@class="image-information"]//span[@class="bas_de_vignette"]`),

		FigureImage:  htmlutil.MustCompile(`.//div[@class="espacePhoto"]//picture/source[@srcset]`),
		FigureCredit: htmlutil.MustCompile(`.//div[@class="credit"]`),
	}
}

const IceBucketChallengeURL = "http://www.journaldemontreal.com/2014/08/23/le-ice-bucket-challenge"

// iceBucketChallengeRules covers a column published with a one-off layout
// that has no strapline element.
func iceBucketChallengeRules() Rules {
	const espaceInfo = articleContainer +
		`//div[@class="article-main-txt"]/div[@class="espace_210"]/div[@class="espace"]/descendant::div[@class="espace_info"][1]`

	rules := DefaultRules()
	rules.Strapline = FromLiteral("POUR ou CONTRE: Le « Ice Bucket Challenge » ?")
	rules.Title = FromQuery(espaceInfo + `/div[@class="titre2"]`)
	rules.BodyRoot = htmlutil.MustCompile(espaceInfo + `/div[@class="texte"]`)
	rules.Body = htmlutil.Union{
		htmlutil.MustCompile(`./p`),
		htmlutil.MustCompile(`./div[@class="sous_titre"]`),
	}
	return rules
}

// DefaultOverrides are the pages that need rules of their own, keyed by exact url.
func DefaultOverrides() map[string]Rules {
	return map[string]Rules{
		IceBucketChallengeURL: iceBucketChallengeRules(),
	}
}
