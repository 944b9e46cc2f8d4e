package journal

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"martinotron/pkg/htmlutil"

	nethtml "golang.org/x/net/html"
)

type BlockKind int

const (
	BlockUnrecognized BlockKind = iota
	BlockParagraph
	BlockRule
	BlockFigure
)

func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockRule:
		return "rule"
	case BlockFigure:
		return "figure"
	default:
		return "unrecognized"
	}
}

// Block is one unit of an article body. Markup holds the inner markup of a
// paragraph or of a figure, it is empty for rules.
type Block struct {
	Kind   BlockKind
	Markup string
}

// Classify decides what kind of block a node selected by the body queries is.
func Classify(node *nethtml.Node) BlockKind {
	if node == nil || node.Type != nethtml.ElementNode {
		return BlockUnrecognized
	}
	switch node.Data {
	case "p":
		return BlockParagraph
	case "hr":
		return BlockRule
	case "div":
		_, hasClass := htmlutil.Attr(node, "class")
		switch {
		case !hasClass:
			return BlockParagraph
		case htmlutil.HasClass(node, "sous_titre"):
			return BlockParagraph
		case htmlutil.HasClass(node, "photo-inline"):
			return BlockFigure
		}
	}
	return BlockUnrecognized
}

const figureTemplate = `<img src="%s" alt="" /><figcaption>%s</figcaption>`

// blocksOf converts a body node into zero or more blocks.
func (r Rules) blocksOf(node *nethtml.Node) []Block {
	switch Classify(node) {
	case BlockParagraph:
		var blocks []Block
		for _, p := range htmlutil.SplitParagraphs(node) {
			blocks = append(blocks, Block{Kind: BlockParagraph, Markup: p})
		}
		return blocks
	case BlockRule:
		return []Block{{Kind: BlockRule}}
	case BlockFigure:
		source := r.FigureImage.First(node)
		srcset, _ := htmlutil.Attr(source, "srcset")
		image, ok := htmlutil.PickStandard(srcset)
		if !ok {
			return nil
		}
		credit := htmlutil.Normalize(r.FigureCredit.First(node))
		return []Block{{
			Kind:   BlockFigure,
			Markup: fmt.Sprintf(figureTemplate, html.EscapeString(image), credit),
		}}
	default:
		return nil
	}
}

// whitespace spanning lines inside a block, blank lines separate blocks
var lineBreakRegex = regexp.MustCompile(`\s*\n\s*`)

// Render flattens the block into markup on a single line, ok is false when the
// block carries no text and must be left out of the article.
func (b Block) Render() (markup string, ok bool) {
	switch b.Kind {
	case BlockRule:
		return "<hr>", true
	case BlockParagraph, BlockFigure:
		if htmlutil.FragmentText(b.Markup) == "" {
			return "", false
		}
		tag := "p"
		if b.Kind == BlockFigure {
			tag = "figure"
		}
		return fmt.Sprintf("<%s>%s</%s>", tag, lineBreakRegex.ReplaceAllString(b.Markup, " "), tag), true
	default:
		return "", false
	}
}

// Assemble flattens blocks in order and joins them with a blank line.
func Assemble(blocks []Block) string {
	var parts []string
	for _, b := range blocks {
		markup, ok := b.Render()
		if !ok {
			continue
		}
		parts = append(parts, markup)
	}
	return strings.Join(parts, "\n\n")
}
