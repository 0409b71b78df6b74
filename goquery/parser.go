// Package goquery parses HTML into sitepdf.Node trees using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepdf"
	"golang.org/x/net/html"
)

// Ensure Parser implements sitepdf.Parser at compile time.
var _ sitepdf.Parser = (*Parser)(nil)

// Parser parses HTML documents.
type Parser struct{}

// NewParser returns a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses markup into a document tree rooted at the document node.
// Malformed markup is repaired the way browsers do; only read failures are errors.
func (p *Parser) Parse(markup string) (sitepdf.Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EINVALID, "failed to parse HTML: %v", err)
	}
	return &node{sel: doc.Selection}, nil
}

// node adapts a single-node goquery selection to sitepdf.Node.
type node struct {
	sel *goquery.Selection
}

func (n *node) html() *html.Node {
	if len(n.sel.Nodes) == 0 {
		return nil
	}
	return n.sel.Nodes[0]
}

func (n *node) TagName() string {
	h := n.html()
	if h == nil || h.Type != html.ElementNode {
		return ""
	}
	return h.Data
}

func (n *node) Data() string {
	h := n.html()
	if h == nil || h.Type != html.TextNode {
		return ""
	}
	return h.Data
}

func (n *node) Children() []sitepdf.Node {
	contents := n.sel.Contents()
	children := make([]sitepdf.Node, 0, contents.Length())
	contents.Each(func(_ int, s *goquery.Selection) {
		children = append(children, &node{sel: s})
	})
	return children
}

func (n *node) HasAttribute(name string) bool {
	_, ok := n.sel.Attr(name)
	return ok
}

func (n *node) Attribute(name string) string {
	return n.sel.AttrOr(name, "")
}
