package main

import (
	"context"
	"errors"
	"io/ioutil"
	"log"
	"testing"
)

type fixtureFetcher map[string]string

func (f fixtureFetcher) Fetch(_ context.Context, domain string) (string, error) {
	body, found := f[domain]
	if !found {
		return "", errors.New("connection refused")
	}

	return body, nil
}

func fooFetcher(t *testing.T) fixtureFetcher {
	t.Helper()

	body, err := ioutil.ReadFile("../../pkg/domainwhois/domainwhoisrnids/testdata/foo.rs")
	if err != nil {
		t.Fatal(err)
	}

	return fixtureFetcher{"foo.rs": string(body)}
}

var discardLogger = log.New(ioutil.Discard, "", 0)
