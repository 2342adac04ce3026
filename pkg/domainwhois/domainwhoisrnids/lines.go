package domainwhoisrnids

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const commentMarker = "%"

// "%ERROR:103: Domain is not registered"
var registryErrorRe = regexp.MustCompile(`^%\s*ERROR:(\d+):\s*(.*)$`)

type line struct {
	number int // 1-based
	text   string
}

func (l line) isBlank() bool {
	return strings.TrimSpace(l.text) == ""
}

func (l line) isComment() bool {
	return strings.HasPrefix(l.text, commentMarker)
}

// indented non-blank line, continues the previous field's value
func (l line) isContinuation() bool {
	return !l.isBlank() && (l.text[0] == ' ' || l.text[0] == '\t')
}

func splitLines(body string) ([]line, error) {
	body = strings.TrimPrefix(body, "\ufeff")
	body = strings.TrimSuffix(body, "\n")

	if body == "" {
		return []line{}, nil
	}

	lines := []line{}
	for idx, text := range strings.Split(body, "\n") {
		l := line{
			number: idx + 1,
			text:   strings.TrimSuffix(text, "\r"),
		}

		if !utf8.ValidString(l.text) {
			return nil, lineError(ErrMalformedLine, l, "not valid UTF-8")
		}

		lines = append(lines, l)
	}

	return lines, nil
}

// skipPreamble drops the leading comment block. Input without one is returned as-is.
func skipPreamble(lines []line) []line {
	for idx, l := range lines {
		if !l.isComment() {
			return lines[idx:]
		}
	}

	return []line{}
}

// the registry answers lookups it refuses (unregistered domain, quota) with a comment line
func registryError(lines []line) *ParseError {
	for _, l := range lines {
		if !l.isComment() {
			continue
		}

		if match := registryErrorRe.FindStringSubmatch(l.text); match != nil {
			return lineError(ErrRegistryError, l, "code "+match[1]+": "+strings.TrimSpace(match[2]))
		}
	}

	return nil
}
