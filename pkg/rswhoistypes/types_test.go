package rswhoistypes

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/function61/gokit/assert"
	"github.com/function61/rswhois/pkg/domainwhois"
)

func TestUpsertAndRemove(t *testing.T) {
	sf := getDummyStatefile()

	sf.Upsert(tracked("bar.rs", "Inactive"))

	assert.Assert(t, len(sf.Domains) == 2)
	assert.EqualString(t, sf.Find("bar.rs").Record.Status.Code, "Inactive")

	sf.Upsert(tracked("baz.rs", "Active"))

	assert.Assert(t, len(sf.Domains) == 3)
	assert.EqualString(t, sf.Domains[2].Record.Domain, "baz.rs")

	assert.Assert(t, sf.Remove("foo.rs") == nil)
	assert.Assert(t, len(sf.Domains) == 2)
	assert.EqualString(t, sf.Domains[0].Record.Domain, "bar.rs")

	assert.Assert(t, sf.Remove("foo.rs") == ErrDomainNotTracked)
	assert.Assert(t, sf.Find("foo.rs") == nil)
}

func TestReadAndWrite(t *testing.T) {
	dir, err := ioutil.TempDir("", "rswhoistypes")
	assert.Assert(t, err == nil)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, DefaultStatefilePath)

	empty, err := ReadStatefile(path)
	assert.Assert(t, err == nil)
	assert.Assert(t, len(empty.Domains) == 0)

	assert.Assert(t, WriteStatefile(path, getDummyStatefile()) == nil)

	sf, err := ReadStatefile(path)
	assert.Assert(t, err == nil)
	assert.Assert(t, len(sf.Domains) == 2)
	assert.EqualString(t, sf.Domains[1].Record.Domain, "bar.rs")
	assert.Assert(t, sf.Domains[1].Record.Registrar.IsEmpty())
	assert.EqualString(t, sf.Domains[1].FetchedAt.Format(time.RFC3339), "2024-08-19T11:46:00Z")
}

func TestWriteReplacesWholeFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "rswhoistypes")
	assert.Assert(t, err == nil)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, DefaultStatefilePath)

	assert.Assert(t, WriteStatefile(path, getDummyStatefile()) == nil)

	shrunk := getDummyStatefile()
	assert.Assert(t, shrunk.Remove("foo.rs") == nil)
	assert.Assert(t, WriteStatefile(path, shrunk) == nil)

	sf, err := ReadStatefile(path)
	assert.Assert(t, err == nil)
	assert.Assert(t, len(sf.Domains) == 1)
	assert.EqualString(t, sf.Domains[0].Record.Domain, "bar.rs")

	// no temp files left behind
	entries, err := ioutil.ReadDir(dir)
	assert.Assert(t, err == nil)
	assert.Assert(t, len(entries) == 1)
	assert.EqualString(t, entries[0].Name(), DefaultStatefilePath)
}

func getDummyStatefile() *Statefile {
	return &Statefile{
		Domains: []TrackedDomain{
			tracked("foo.rs", "Active"),
			tracked("bar.rs", "Active"),
		},
	}
}

func tracked(domain string, status string) TrackedDomain {
	return TrackedDomain{
		Record: domainwhois.Record{
			Domain:      domain,
			Status:      domainwhois.Status{Code: status},
			Registrar:   domainwhois.Present(""),
			NameServers: []domainwhois.NameServer{},
			Contacts:    []domainwhois.Contact{},
		},
		FetchedAt: time.Date(2024, 8, 19, 11, 46, 0, 0, time.UTC),
	}
}
