package domainwhoisrnids

import (
	"strings"

	"github.com/function61/rswhois/pkg/domainwhois"
)

const (
	labelDomainName   = "Domain name"
	labelDomainStatus = "Domain status"
)

type recordBuilder struct {
	parser    *Parser
	record    domainwhois.Record
	seen      map[string]field // single-valued top-level fields by key
	seenRoles map[domainwhois.ContactRole]bool
}

type topLevelFieldFn func(b *recordBuilder, f field) error

var topLevelFields = map[string]topLevelFieldFn{
	"domain name": func(b *recordBuilder, f field) error {
		if f.value == "" {
			return fieldError(ErrMissingRequiredField, f, "empty domain name")
		}

		b.record.Domain = strings.ToLower(f.value)
		return nil
	},
	"domain status": func(b *recordBuilder, f field) error {
		status, err := parseStatus(f, b.parser.knownStatuses)
		b.record.Status = status
		return err
	},
	"registration date": timestampInto(func(r *domainwhois.Record) **domainwhois.Timestamp { return &r.Registered }),
	"modification date": timestampInto(func(r *domainwhois.Record) **domainwhois.Timestamp { return &r.Modified }),
	"expiration date":   timestampInto(func(r *domainwhois.Record) **domainwhois.Timestamp { return &r.Expires }),
	"confirmed":         timestampInto(func(r *domainwhois.Record) **domainwhois.Timestamp { return &r.Confirmed }),
	"whois timestamp":   timestampInto(func(r *domainwhois.Record) **domainwhois.Timestamp { return &r.WhoisTimestamp }),
	"registrar": func(b *recordBuilder, f field) error {
		b.record.Registrar = domainwhois.Present(f.value)
		return nil
	},
	"dnssec signed": func(b *recordBuilder, f field) error {
		dnssec, err := parseDnssec(f)
		b.record.Dnssec = dnssec
		return err
	},
}

type contactFieldFn func(c *domainwhois.Contact, f field)

var contactFields = map[string]contactFieldFn{
	"address": func(c *domainwhois.Contact, f field) {
		if c.Address == "" {
			c.Address = f.value
		} else {
			c.Address += "\n" + f.value
		}
	},
	"postal code": func(c *domainwhois.Contact, f field) { c.PostalCode = domainwhois.Present(f.value) },
	"id number":   func(c *domainwhois.Contact, f field) { c.IdNumber = domainwhois.Present(f.value) },
	"tax id":      func(c *domainwhois.Contact, f field) { c.TaxId = domainwhois.Present(f.value) },
}

// contact fields that may repeat
var contactRepeatable = map[string]bool{
	"address": true,
}

func timestampInto(dest func(r *domainwhois.Record) **domainwhois.Timestamp) topLevelFieldFn {
	return func(b *recordBuilder, f field) error {
		ts, err := parseTimestamp(f)
		if err != nil {
			return err
		}

		*dest(&b.record) = ts
		return nil
	}
}

func (p *Parser) assemble(sections []section) (*domainwhois.Record, error) {
	b := &recordBuilder{
		parser: p,
		record: domainwhois.Record{
			NameServers: []domainwhois.NameServer{},
			Contacts:    []domainwhois.Contact{},
		},
		seen:      map[string]field{},
		seenRoles: map[domainwhois.ContactRole]bool{},
	}

	for _, sect := range sections {
		var err error
		switch sect.kind {
		case sectionGeneral:
			err = b.general(sect)
		case sectionContact:
			err = b.contact(sect)
		case sectionNameServers:
			err = b.nameServers(sect)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := b.validate(); err != nil {
		return nil, err
	}

	record := b.record
	return &record, nil
}

func (b *recordBuilder) general(sect section) error {
	for _, f := range sect.fields {
		if _, isContactField := contactFields[f.key]; isContactField {
			return fieldError(ErrMalformedLine, f, "contact field outside of contact block")
		}

		if err := b.topLevel(f); err != nil {
			return err
		}
	}

	return nil
}

func (b *recordBuilder) topLevel(f field) error {
	fn, known := topLevelFields[f.key]
	if !known {
		if b.parser.allowUnknownFields {
			return nil
		}

		return fieldError(ErrMalformedLine, f, "unknown field")
	}

	if _, duplicate := b.seen[f.key]; duplicate {
		return fieldError(ErrMalformedLine, f, "duplicate field")
	}
	b.seen[f.key] = f

	return fn(b, f)
}

// first field is the contact label, whose value is the name
func (b *recordBuilder) contact(sect section) error {
	header := sect.fields[0]

	if b.seenRoles[sect.role] {
		return fieldError(ErrMalformedLine, header, "duplicate "+sect.role.String()+" contact")
	}
	b.seenRoles[sect.role] = true

	if header.value == "" {
		return fieldError(ErrMissingRequiredField, header, "empty contact name")
	}

	contact := domainwhois.Contact{
		Role: sect.role,
		Name: header.value,
	}

	seenInContact := map[string]bool{}

	for _, f := range sect.fields[1:] {
		fn, isContactField := contactFields[f.key]
		if !isContactField {
			// e.g. "Registrar:" following a contact without a separating blank line
			if err := b.topLevel(f); err != nil {
				return err
			}
			continue
		}

		if seenInContact[f.key] && !contactRepeatable[f.key] {
			return fieldError(ErrMalformedLine, f, "duplicate field")
		}
		seenInContact[f.key] = true

		fn(&contact, f)
	}

	b.record.Contacts = append(b.record.Contacts, contact)

	return nil
}

// all name server sections accumulate into the same list, in order of appearance
func (b *recordBuilder) nameServers(sect section) error {
	for _, f := range sect.fields {
		ns, err := parseNameServer(f)
		if err != nil {
			return err
		}

		b.record.NameServers = append(b.record.NameServers, ns)
	}

	return nil
}

func (b *recordBuilder) validate() error {
	if _, found := b.seen["domain name"]; !found {
		return &ParseError{Kind: ErrMissingRequiredField, Field: labelDomainName}
	}

	if _, found := b.seen["domain status"]; !found {
		return &ParseError{Kind: ErrMissingRequiredField, Field: labelDomainStatus}
	}

	registered, expires := b.record.Registered, b.record.Expires
	if registered != nil && expires != nil && expires.Before(*registered) {
		return fieldError(
			ErrInconsistentDates,
			b.seen["expiration date"],
			"expiration "+expires.String()+" precedes registration "+registered.String())
	}

	return nil
}
