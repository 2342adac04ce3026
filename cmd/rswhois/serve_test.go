package main

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/function61/gokit/assert"
	"github.com/function61/rswhois/pkg/domainwhois/domainwhoisrnids"
)

func TestServeHandler(t *testing.T) {
	dir := t.TempDir()
	statefilePath := filepath.Join(dir, "rswhois.json")
	configPath := filepath.Join(dir, "domains.yml")

	svc := domainwhoisrnids.New(fooFetcher(t), nil)
	assert.Assert(t, addDomain(context.Background(), "foo.rs", svc, statefilePath, time.Now()) == nil)

	get := func(handler http.Handler, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	// without config
	handler, err := serveHandler(statefilePath, configPath, discardLogger)
	assert.Assert(t, err == nil)

	domains := get(handler, "/domains")
	assert.Assert(t, domains.Code == http.StatusOK)
	assert.Assert(t, strings.Contains(domains.Body.String(), `"domain": "foo.rs"`))

	single := get(handler, "/domains/foo.rs")
	assert.Assert(t, single.Code == http.StatusOK)
	assert.Assert(t, strings.Contains(single.Body.String(), `"registrar": "Loopia d.o.o."`))

	missing := get(handler, "/domains/bar.rs")
	assert.Assert(t, missing.Code == http.StatusNotFound)
	assert.EqualString(t, missing.Body.String(), "domain not tracked\n")

	assert.Assert(t, strings.Contains(get(handler, "/metrics").Body.String(), `domain_state_desired{domain="foo.rs"} 1`))

	// with config the record doesn't match
	assert.Assert(t, ioutil.WriteFile(configPath, []byte("domains:\n  - domain: foo.rs\n    dnssec: \"yes\"\n"), 0600) == nil)

	handler, err = serveHandler(statefilePath, configPath, discardLogger)
	assert.Assert(t, err == nil)

	metrics := get(handler, "/metrics").Body.String()
	assert.Assert(t, strings.Contains(metrics, `domain_state_desired{domain="foo.rs"} 0`))
	assert.Assert(t, strings.Contains(metrics, `domain_expiration_seconds{domain="foo.rs"} 1.724684467e+09`))
}
