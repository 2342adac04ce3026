package domainwhoisrnids

import (
	"context"
	"errors"
	"testing"

	"github.com/function61/gokit/assert"
)

type fixtureFetcher map[string]string

func (f fixtureFetcher) Fetch(_ context.Context, domain string) (string, error) {
	body, found := f[domain]
	if !found {
		return "", errors.New("connection refused")
	}

	return body, nil
}

func TestService(t *testing.T) {
	svc := New(fixtureFetcher{
		"foo.rs":   readFixture(t, "foo.rs"),
		"other.rs": readFixture(t, "foo.rs"),
	}, nil)

	record, err := svc.Whois(context.Background(), "FOO.rs")
	assert.Assert(t, err == nil)
	assert.EqualString(t, record.Domain, "foo.rs")

	_, err = svc.Whois(context.Background(), "other.rs")
	assert.EqualString(t, err.Error(), "Whois: asked for other.rs but registry answered for foo.rs")

	_, err = svc.Whois(context.Background(), "down.rs")
	assert.EqualString(t, err.Error(), "Whois: down.rs: connection refused")
}
