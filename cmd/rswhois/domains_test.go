package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/function61/gokit/assert"
	"github.com/function61/rswhois/pkg/domainwhois/domainwhoisrnids"
	"github.com/function61/rswhois/pkg/rswhoistypes"
)

func TestDomainsLifecycle(t *testing.T) {
	statefilePath := filepath.Join(t.TempDir(), "rswhois.json")
	fetcher := fooFetcher(t)
	svc := domainwhoisrnids.New(fetcher, nil)

	addedAt := time.Date(2024, 8, 19, 11, 30, 0, 0, time.UTC)

	assert.Assert(t, addDomain(context.Background(), "foo.rs", svc, statefilePath, addedAt) == nil)
	assert.EqualString(t, addDomain(context.Background(), "down.rs", svc, statefilePath, addedAt).Error(), "Whois: down.rs: connection refused")

	sf, err := rswhoistypes.ReadStatefile(statefilePath)
	assert.Assert(t, err == nil)
	assert.Assert(t, len(sf.Domains) == 1)
	assert.EqualString(t, sf.Domains[0].Record.Registrar.String(), "Loopia d.o.o.")

	listing := &bytes.Buffer{}
	assert.Assert(t, listDomains(statefilePath, time.Date(2024, 8, 19, 11, 46, 0, 0, time.UTC), listing) == nil)
	assert.Assert(t, strings.Contains(listing.String(), "Foo Media D.O.O."))
	assert.Assert(t, strings.Contains(listing.String(), "2024-08-26"))
	assert.Assert(t, strings.Contains(listing.String(), "in 7 days"))
	assert.Assert(t, strings.Contains(listing.String(), "Fetched"))
	assert.Assert(t, strings.Contains(listing.String(), "16 minutes ago"))

	// registry moved the expiration and took a new snapshot
	fetcher["foo.rs"] = strings.NewReplacer(
		"Expiration date: 26.08.2024", "Expiration date: 26.08.2025",
		"Whois Timestamp: 19.08.2024", "Whois Timestamp: 20.08.2024",
	).Replace(fetcher["foo.rs"])

	refreshedAt := time.Date(2024, 8, 20, 10, 0, 0, 0, time.UTC)
	report := &bytes.Buffer{}
	assert.Assert(t, refreshDomains(
		context.Background(),
		svc,
		statefilePath,
		func() time.Time { return refreshedAt },
		report) == nil)
	assert.Assert(t, strings.HasPrefix(report.String(), "foo.rs changed:\n"))
	assert.Assert(t, strings.Contains(report.String(), `"expires"`))

	sf, err = rswhoistypes.ReadStatefile(statefilePath)
	assert.Assert(t, err == nil)
	assert.EqualString(t, sf.Domains[0].Record.Expires.String(), "2025-08-26 17:01:07")
	assert.Assert(t, sf.Domains[0].FetchedAt.Equal(refreshedAt))

	// only the snapshot timestamp moves
	fetcher["foo.rs"] = strings.Replace(fetcher["foo.rs"], "Whois Timestamp: 20.08.2024", "Whois Timestamp: 21.08.2024", 1)

	report.Reset()
	assert.Assert(t, refreshDomains(context.Background(), svc, statefilePath, time.Now, report) == nil)
	assert.EqualString(t, report.String(), "foo.rs unchanged\n")

	assert.Assert(t, removeDomain("foo.rs", statefilePath) == nil)
	assert.EqualString(t, removeDomain("foo.rs", statefilePath).Error(), "foo.rs: domain not tracked")

	listing.Reset()
	assert.Assert(t, listDomains(statefilePath, time.Now(), listing) == nil)
	assert.EqualString(t, listing.String(), "")
}
