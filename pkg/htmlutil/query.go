package htmlutil

import (
	"fmt"
	"sort"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// Query is a compiled XPath expression evaluated relative to a node.
// The zero value matches nothing.
type Query struct {
	raw  string
	expr *xpath.Expr
}

// MustCompile compiles expr and panics if it is not valid XPath.
func MustCompile(expr string) Query {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("htmlutil: compile %q: %v", expr, err))
	}
	return Query{raw: expr, expr: compiled}
}

func (q Query) String() string {
	return q.raw
}

// All returns every node selected by the query with top as its root.
func (q Query) All(top *html.Node) []*html.Node {
	if q.expr == nil || top == nil {
		return nil
	}
	return htmlquery.QuerySelectorAll(top, q.expr)
}

// First returns the first node selected by the query, or nil.
func (q Query) First(top *html.Node) *html.Node {
	if q.expr == nil || top == nil {
		return nil
	}
	return htmlquery.QuerySelector(top, q.expr)
}

// Union is a set of queries whose combined results are returned once each, in
// document order.
type Union []Query

func (u Union) All(top *html.Node) []*html.Node {
	seen := map[*html.Node]bool{}
	var out []*html.Node
	for _, q := range u {
		for _, n := range q.All(top) {
			if seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	SortDocumentOrder(out)
	return out
}

// SortDocumentOrder sorts nodes belonging to the same tree by their position
// in a preorder walk of that tree.
func SortDocumentOrder(nodes []*html.Node) {
	if len(nodes) < 2 {
		return
	}

	root := nodes[0]
	for root.Parent != nil {
		root = root.Parent
	}

	index := map[*html.Node]int{}
	position := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		index[n] = position
		position++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	sort.SliceStable(nodes, func(i, j int) bool {
		return index[nodes[i]] < index[nodes[j]]
	})
}
