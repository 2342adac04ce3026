package domainwhoisrnids

import (
	"context"
	"fmt"
	"strings"

	"github.com/function61/rswhois/pkg/domainwhois"
)

// New composes a fetcher (the network side) with the parser
func New(fetcher domainwhois.Fetcher, parser *Parser) domainwhois.Service {
	if parser == nil {
		parser = defaultParser
	}

	return &Rnids{fetcher, parser}
}

type Rnids struct {
	fetcher domainwhois.Fetcher
	parser  *Parser
}

func (r *Rnids) Whois(ctx context.Context, domain string) (*domainwhois.Record, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))

	body, err := r.fetcher.Fetch(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("Whois: %s: %w", domain, err)
	}

	record, err := r.parser.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("Whois: %s: %w", domain, err)
	}

	if record.Domain != domain {
		return nil, fmt.Errorf("Whois: asked for %s but registry answered for %s", domain, record.Domain)
	}

	return record, nil
}
