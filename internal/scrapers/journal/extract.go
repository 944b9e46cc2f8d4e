package journal

import (
	"errors"
	"fmt"

	"martinotron/pkg/htmlutil"

	"golang.org/x/net/html"
)

var (
	ErrMalformedURL = errors.New("url does not contain a /YYYY/MM/DD/ date")
	ErrBodyNotFound = errors.New("article body not found")
)

// Extractor turns the document of a column into an Article. It holds no
// mutable state and is safe for concurrent use.
type Extractor struct {
	Default Rules
	// Overrides replaces Default for the pages whose url matches exactly.
	Overrides map[string]Rules
}

func NewExtractor() Extractor {
	return Extractor{
		Default:   DefaultRules(),
		Overrides: DefaultOverrides(),
	}
}

func (e Extractor) rulesFor(url string) Rules {
	if rules, ok := e.Overrides[url]; ok {
		return rules
	}
	return e.Default
}

// Blocks returns the classified body blocks of doc in document order.
func (e Extractor) Blocks(doc *html.Node, url string) ([]Block, error) {
	rules := e.rulesFor(url)
	root := rules.BodyRoot.First(doc)
	if root == nil {
		return nil, fmt.Errorf("%w: %s", ErrBodyNotFound, url)
	}

	var blocks []Block
	for _, node := range rules.Body.All(root) {
		blocks = append(blocks, rules.blocksOf(node)...)
	}
	return blocks, nil
}

// Extract builds the Article for doc, which was fetched from url.
func (e Extractor) Extract(doc *html.Node, url string) (Article, error) {
	date, err := ParseDate(url)
	if err != nil {
		return Article{}, err
	}

	rules := e.rulesFor(url)
	blocks, err := e.Blocks(doc, url)
	if err != nil {
		return Article{}, err
	}

	article := Article{
		Date:      date,
		Strapline: rules.Strapline.Resolve(doc),
		Title:     rules.Title.Resolve(doc),
		Tagline:   rules.Tagline.Resolve(doc),
		Content:   Assemble(blocks),
		URL:       url,
	}

	srcset, _ := htmlutil.Attr(rules.Image.First(doc), "srcset")
	if image, ok := htmlutil.PickStandard(srcset); ok {
		article.Image = &image
		if credit := rules.ImageCredit.First(doc); credit != nil {
			value := htmlutil.Normalize(credit)
			article.Credit = &value
		}
		if legend := rules.ImageLegend.First(doc); legend != nil {
			value := htmlutil.Normalize(legend)
			article.Legend = &value
		}
	}

	return article, nil
}
