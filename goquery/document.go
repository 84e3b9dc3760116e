// Package goquery implements labelmkr's document model over HTML snapshots
// parsed with goquery, using cascadia to compile locators.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/labelmkr"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ labelmkr.Parser   = (*Parser)(nil)
	_ labelmkr.Document = (*Document)(nil)
	_ labelmkr.Node     = (*Node)(nil)
)

// Parser parses HTML into queryable documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses an HTML snapshot.
func (p *Parser) Parse(html string) (labelmkr.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, labelmkr.Errorf(labelmkr.EINVALID, "failed to parse HTML: %v", err)
	}
	return NewDocument(doc), nil
}

// Document is a parsed HTML snapshot. The <body> element is its designated
// root container.
type Document struct {
	doc  *goquery.Document
	body *html.Node
}

// NewDocument wraps a goquery document.
func NewDocument(doc *goquery.Document) *Document {
	return &Document{
		doc:  doc,
		body: doc.Find("body").Get(0),
	}
}

// Query compiles locator with cascadia and returns every matching element
// in document order. Compilation failures are returned as
// *labelmkr.LocatorSyntaxError; goquery's own Find would silently match
// nothing instead.
func (d *Document) Query(locator string) ([]labelmkr.Node, error) {
	if strings.TrimSpace(locator) == "" {
		return nil, &labelmkr.LocatorSyntaxError{Locator: locator}
	}

	matcher, err := cascadia.Compile(locator)
	if err != nil {
		return nil, &labelmkr.LocatorSyntaxError{Locator: locator, Err: err}
	}

	sel := d.doc.FindMatcher(matcher)
	nodes := make([]labelmkr.Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, d.node(s))
	})
	return nodes, nil
}

func (d *Document) node(s *goquery.Selection) *Node {
	return &Node{sel: s, body: d.body}
}

// Node is a single element of a Document.
type Node struct {
	sel  *goquery.Selection
	body *html.Node
}

// Tag returns the lowercased element name, or empty string for non-elements.
func (n *Node) Tag() string {
	hn := n.sel.Get(0)
	if hn == nil || hn.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(hn.Data)
}

// ID returns the id attribute.
func (n *Node) ID() string {
	return n.sel.AttrOr("id", "")
}

// Classes returns the class list in document order.
func (n *Node) Classes() []string {
	return strings.Fields(n.sel.AttrOr("class", ""))
}

// Attr looks up an attribute by name.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// Parent returns the parent element, or nil for the top-level element.
func (n *Node) Parent() labelmkr.Node {
	p := n.sel.Parent()
	if p.Length() == 0 {
		return nil
	}
	return &Node{sel: p, body: n.body}
}

// IsRoot reports whether the node is the document's <body>.
func (n *Node) IsRoot() bool {
	return n.body != nil && n.sel.Get(0) == n.body
}

// SiblingPosition returns the node's rank among same-tag element siblings.
func (n *Node) SiblingPosition() (rank, count int) {
	self := n.sel.Get(0)
	if self == nil || self.Parent == nil {
		return 1, 1
	}
	for c := self.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != self.Data {
			continue
		}
		count++
		if c == self {
			rank = count
		}
	}
	return rank, count
}

// Text returns the combined text of the node and its descendants.
func (n *Node) Text() string {
	return n.sel.Text()
}
