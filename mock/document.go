package mock

import "github.com/fwojciec/labelmkr"

var _ labelmkr.Document = (*Document)(nil)

// Document is a mock implementation of labelmkr.Document.
type Document struct {
	QueryFn func(locator string) ([]labelmkr.Node, error)
}

func (d *Document) Query(locator string) ([]labelmkr.Node, error) {
	return d.QueryFn(locator)
}

var _ labelmkr.Parser = (*Parser)(nil)

// Parser is a mock implementation of labelmkr.Parser.
type Parser struct {
	ParseFn func(html string) (labelmkr.Document, error)
}

func (p *Parser) Parse(html string) (labelmkr.Document, error) {
	return p.ParseFn(html)
}
