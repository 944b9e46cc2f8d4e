package htmlutil

import (
	"html"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
)

// Normalize returns the inner markup of node: its leading text followed by the
// serialization of each child, with entities decoded and the outer whitespace
// trimmed. A nil node normalizes to "".
func Normalize(node *nethtml.Node) string {
	if node == nil {
		return ""
	}
	var inner strings.Builder
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		// text nodes are escaped on render so that the single unescape below
		// applies to leading text and child markup alike
		if err := nethtml.Render(&inner, c); err != nil {
			return ""
		}
	}
	return strings.TrimSpace(html.UnescapeString(inner.String()))
}

// NormalizeString normalizes markup as though it were the contents of an
// element. NormalizeString(NormalizeString(s)) == NormalizeString(s).
func NormalizeString(markup string) string {
	wrapper, err := ParseFragment(markup)
	if err != nil {
		return ""
	}
	return Normalize(wrapper)
}

var lineBreakRun = regexp.MustCompile(`\s*<br\s*/?>(?:\s*<br\s*/?>)+\s*`)

// SplitParagraphs normalizes node and splits the result into paragraphs
// wherever two or more consecutive <br> appear. Every paragraph is normalized
// again and empty paragraphs are dropped.
func SplitParagraphs(node *nethtml.Node) []string {
	clean := Normalize(node)
	if clean == "" {
		return nil
	}

	split := lineBreakRun.ReplaceAllString(clean, "</p>\n\n<p>")
	wrapper, err := ParseFragment("<p>" + split + "</p>")
	if err != nil {
		return nil
	}

	var paragraphs []string
	for c := wrapper.FirstChild; c != nil; c = c.NextSibling {
		if !IsElement(c, "p") {
			continue
		}
		p := Normalize(c)
		if p == "" {
			continue
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs
}
