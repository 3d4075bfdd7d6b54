package mock

import "github.com/fwojciec/docbot"

var _ docbot.Parser = (*Parser)(nil)

// Parser is a mock implementation of docbot.Parser.
type Parser struct {
	ParseFn func(body string) (*docbot.ParseResult, error)
}

func (p *Parser) Parse(body string) (*docbot.ParseResult, error) {
	return p.ParseFn(body)
}
