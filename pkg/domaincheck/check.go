package domaincheck

import (
	"fmt"
	"sort"
	"strings"

	"github.com/function61/rswhois/pkg/domainwhois"
)

type Mismatch struct {
	Field    string
	Expected string
	Actual   string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: expected %s; got %s", m.Field, m.Expected, m.Actual)
}

// Check returns nothing when the record is in the desired state
func Check(expected Expectation, record *domainwhois.Record) []Mismatch {
	mismatches := []Mismatch{}

	mismatch := func(field string, expected string, actual string) {
		mismatches = append(mismatches, Mismatch{field, expected, actual})
	}

	if len(expected.Status) > 0 {
		actual := []string{record.Status.Code}
		if !equalAsSets(expected.Status, actual) {
			mismatch("status", joinSorted(expected.Status), joinSorted(actual))
		}
	}

	if len(expected.Nameservers) > 0 {
		actual := nameServersComparableTo(expected.Nameservers, record)
		if !equalAsSets(expected.Nameservers, actual) {
			mismatch("nameservers", joinSorted(expected.Nameservers), joinSorted(actual))
		}
	}

	if expected.Dnssec != "" && expected.Dnssec != record.Dnssec.String() {
		mismatch("dnssec", expected.Dnssec, record.Dnssec.String())
	}

	if expected.Registrar != "" {
		registrar, present := record.Registrar.Value()
		switch {
		case !present:
			mismatch("registrar", expected.Registrar, "(absent)")
		case registrar != expected.Registrar:
			mismatch("registrar", expected.Registrar, registrar)
		}
	}

	return mismatches
}

// if the expectation pins glue IPs, compare with them. otherwise hostnames only.
func nameServersComparableTo(expected []string, record *domainwhois.Record) []string {
	withGlue := false
	for _, exp := range expected {
		if strings.Contains(exp, " - ") {
			withGlue = true
		}
	}

	if !withGlue {
		return record.NameServerHostnames()
	}

	comparable := []string{}
	for _, ns := range record.NameServers {
		comparable = append(comparable, ns.String())
	}

	return comparable
}

func equalAsSets(a []string, b []string) bool {
	return joinSorted(a) == joinSorted(b)
}

func joinSorted(items []string) string {
	sorted := append([]string{}, items...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
