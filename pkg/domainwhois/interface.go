package domainwhois

import (
	"context"
)

// Service resolves the current registration record of a domain
type Service interface {
	Whois(ctx context.Context, domain string) (*Record, error)
}

// Fetcher gets the raw WHOIS response body for a domain. Timeouts and cancellation are
// the fetcher's business, not the parser's.
type Fetcher interface {
	Fetch(ctx context.Context, domain string) (string, error)
}
