// Parses WHOIS responses of RNIDS, the .rs registry (whois.rnids.rs)
package domainwhoisrnids

import (
	"time"

	"github.com/function61/rswhois/pkg/domainwhois"
)

// registry policy. a single response can't tell us the whole set, so it's extensible
var DefaultStatuses = []string{
	"Active",
	"Inactive",
	"ToDelete",
	"Quarantine",
}

// Parser is safe for concurrent use
type Parser struct {
	knownStatuses      map[string]bool
	allowUnknownFields bool
}

type Option func(*Parser)

// WithStatuses extends the set of recognized status codes
func WithStatuses(codes ...string) Option {
	return func(p *Parser) {
		for _, code := range codes {
			p.knownStatuses[code] = true
		}
	}
}

// AllowUnknownFields makes the parser skip fields it doesn't know instead of failing
func AllowUnknownFields() Option {
	return func(p *Parser) {
		p.allowUnknownFields = true
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{
		knownStatuses: map[string]bool{},
	}

	for _, code := range DefaultStatuses {
		p.knownStatuses[code] = true
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

var defaultParser = NewParser()

// Parse with default options
func Parse(body string) (*domainwhois.Record, error) {
	return defaultParser.Parse(body)
}

// Parse is all-or-nothing: either the whole record or a *ParseError
func (p *Parser) Parse(body string) (*domainwhois.Record, error) {
	lines, err := splitLines(body)
	if err != nil {
		return nil, err
	}

	if err := registryError(lines); err != nil {
		return nil, err
	}

	sections, err := splitSections(skipPreamble(lines))
	if err != nil {
		return nil, err
	}

	return p.assemble(sections)
}

// "All timestamps are given in Serbian local time"
const registryTimezone = "Europe/Belgrade"

// RegistryLocation is where the record's civil timestamps are read
func RegistryLocation() (*time.Location, error) {
	return time.LoadLocation(registryTimezone)
}
