package domainwhoisrnids

import (
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/function61/rswhois/pkg/domainwhois"
)

// "26.08.2013 17:01:07", Serbian local time
var timestampRe = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4}) (\d{2}):(\d{2}):(\d{2})$`)

const nameServerGlueSeparator = " - "

func parseTimestamp(f field) (*domainwhois.Timestamp, error) {
	match := timestampRe.FindStringSubmatch(f.value)
	if match == nil {
		return nil, fieldError(ErrInvalidTimestamp, f, "expecting DD.MM.YYYY HH:MM:SS")
	}

	// regexp guarantees digits
	num := func(idx int) int {
		n, _ := strconv.Atoi(match[idx])
		return n
	}

	ts, err := domainwhois.NewTimestamp(num(3), time.Month(num(2)), num(1), num(4), num(5), num(6))
	if err != nil {
		return nil, fieldError(ErrInvalidTimestamp, f, err.Error())
	}

	return &ts, nil
}

// "Active https://www.rnids.rs/en/domain-name-status-codes#Active"
func parseStatus(f field, knownStatuses map[string]bool) (domainwhois.Status, error) {
	code := f.value
	url := ""
	if idx := strings.IndexFunc(f.value, unicode.IsSpace); idx != -1 {
		code = f.value[:idx]
		url = strings.TrimSpace(f.value[idx:])
	}

	if code == "" {
		return domainwhois.Status{}, fieldError(ErrMissingRequiredField, f, "empty status")
	}

	// an unknown status is never coerced into a known one, consumers gate on liveness
	if !knownStatuses[code] {
		return domainwhois.Status{}, fieldError(ErrUnknownStatus, f, code)
	}

	return domainwhois.Status{
		Code: code,
		Url:  url,
	}, nil
}

// "ns1.foodns.net - 91.185.193.152" or "ns1.foodns.net"
func parseNameServer(f field) (domainwhois.NameServer, error) {
	hostname := f.value
	glueIp := ""
	hasGlue := false
	// value is trimmed, so "DNS:  - 1.2.3.4" arrives as "- 1.2.3.4"
	padded := " " + f.value
	if idx := strings.Index(padded, nameServerGlueSeparator); idx != -1 {
		hostname = strings.TrimSpace(padded[:idx])
		glueIp = strings.TrimSpace(padded[idx+len(nameServerGlueSeparator):])
		hasGlue = true
	}

	if hostname == "" {
		return domainwhois.NameServer{}, fieldError(ErrMalformedLine, f, "empty name server hostname")
	}

	if strings.ContainsAny(hostname, " \t\n") {
		return domainwhois.NameServer{}, fieldError(ErrMalformedLine, f, "whitespace in name server hostname")
	}

	if hasGlue && net.ParseIP(glueIp) == nil {
		return domainwhois.NameServer{}, fieldError(ErrMalformedLine, f, "invalid glue IP: "+glueIp)
	}

	return domainwhois.NameServer{
		Hostname: hostname,
		GlueIp:   glueIp,
	}, nil
}

func parseDnssec(f field) (domainwhois.Dnssec, error) {
	switch f.value {
	case "yes":
		return domainwhois.DnssecSigned, nil
	case "no":
		return domainwhois.DnssecUnsigned, nil
	default:
		return domainwhois.DnssecUnknown, fieldError(ErrInvalidEnumValue, f, "expecting yes|no; got "+strconv.Quote(f.value))
	}
}
