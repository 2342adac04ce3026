package domainwhoisrnids

import (
	"regexp"
	"strings"

	"github.com/function61/rswhois/pkg/domainwhois"
)

// "<Label>: <value>". label can't contain ':' so a value with an URL is fine
var fieldLineRe = regexp.MustCompile(`^([\p{L}\p{N}][\p{L}\p{N} /-]*):(.*)$`)

const nameServerKey = "dns"

// these labels open a contact block. the label's value is the contact's name
var contactLabels = map[string]domainwhois.ContactRole{
	"registrant":             domainwhois.ContactRegistrant,
	"administrative contact": domainwhois.ContactAdministrative,
	"technical contact":      domainwhois.ContactTechnical,
}

type sectionKind int

const (
	sectionGeneral sectionKind = iota
	sectionContact
	sectionNameServers
)

type field struct {
	label string // as written
	key   string // normalized label
	value string // trimmed. "" for a present-but-empty field
	line  line
}

type section struct {
	kind   sectionKind
	role   domainwhois.ContactRole // only for sectionContact
	fields []field
}

type splitterState int

const (
	stateIdle splitterState = iota // between sections
	stateGeneral
	stateContact
	stateNameServers
	stateNameServersBlank // one blank seen inside name server list
)

// splitter is the state machine deciding where sections start and end:
//
// - contact label opens a contact block, ended by a blank line or the next contact label
// - "DNS" opens a name server list. one blank inside it is noise, two end it
// - any other field opens a general block if not inside one, ended by a blank line
// - comment lines are ignored wherever they appear
type splitter struct {
	state    splitterState
	current  *section
	sections []section
}

func splitSections(lines []line) ([]section, error) {
	s := &splitter{state: stateIdle}

	for _, l := range lines {
		if err := s.feed(l); err != nil {
			return nil, err
		}
	}

	return s.finish(), nil
}

func (s *splitter) feed(l line) error {
	switch {
	case l.isComment():
		return nil
	case l.isBlank():
		s.blank()
		return nil
	case l.isContinuation():
		return s.continuation(l)
	}

	f, ok := parseFieldLine(l)
	if !ok {
		return lineError(ErrMalformedLine, l, "expecting \"<Label>: <value>\"")
	}

	if role, isContactLabel := contactLabels[f.key]; isContactLabel {
		s.open(sectionContact, role, stateContact)
		s.current.fields = append(s.current.fields, f)
		return nil
	}

	if f.key == nameServerKey {
		if s.state != stateNameServers && s.state != stateNameServersBlank {
			s.open(sectionNameServers, 0, stateNameServers)
		}

		s.state = stateNameServers
		s.current.fields = append(s.current.fields, f)
		return nil
	}

	switch s.state {
	case stateGeneral, stateContact:
		// stays in current block
	default:
		s.open(sectionGeneral, 0, stateGeneral)
	}

	s.current.fields = append(s.current.fields, f)
	return nil
}

func (s *splitter) blank() {
	switch s.state {
	case stateNameServers:
		s.state = stateNameServersBlank
	case stateIdle:
	default:
		s.close()
	}
}

func (s *splitter) continuation(l line) error {
	if s.current == nil || len(s.current.fields) == 0 || s.state == stateNameServersBlank {
		return lineError(ErrMalformedLine, l, "continuation line without a field to continue")
	}

	last := &s.current.fields[len(s.current.fields)-1]
	last.value += "\n" + strings.TrimSpace(l.text)

	return nil
}

func (s *splitter) open(kind sectionKind, role domainwhois.ContactRole, state splitterState) {
	s.close()

	s.current = &section{
		kind:   kind,
		role:   role,
		fields: []field{},
	}
	s.state = state
}

func (s *splitter) close() {
	if s.current != nil {
		s.sections = append(s.sections, *s.current)
		s.current = nil
	}

	s.state = stateIdle
}

func (s *splitter) finish() []section {
	s.close()

	if s.sections == nil {
		return []section{}
	}

	return s.sections
}

func parseFieldLine(l line) (field, bool) {
	match := fieldLineRe.FindStringSubmatch(l.text)
	if match == nil {
		return field{}, false
	}

	label := strings.TrimSpace(match[1])

	return field{
		label: label,
		key:   normalizeKey(label),
		value: strings.TrimSpace(match[2]),
		line:  l,
	}, true
}

func normalizeKey(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}
