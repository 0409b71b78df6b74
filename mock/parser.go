package mock

import "github.com/fwojciec/sitepdf"

var _ sitepdf.Parser = (*Parser)(nil)

// Parser is a mock implementation of sitepdf.Parser.
type Parser struct {
	ParseFn func(html string) (sitepdf.Node, error)
}

func (p *Parser) Parse(html string) (sitepdf.Node, error) {
	return p.ParseFn(html)
}
