package domainwhois

import (
	"encoding/json"
	"fmt"
)

// Record is a domain's registration record as of WhoisTimestamp. Constructed once by a
// parser and not mutated afterwards.
type Record struct {
	Domain         string       `json:"domain"`
	Status         Status       `json:"status"`
	Registered     *Timestamp   `json:"registered"`
	Modified       *Timestamp   `json:"modified"`
	Expires        *Timestamp   `json:"expires"`
	Confirmed      *Timestamp   `json:"confirmed"`
	Registrar      Optional     `json:"registrar"`
	Dnssec         Dnssec       `json:"dnssec"`
	NameServers    []NameServer `json:"nameservers"`
	Contacts       []Contact    `json:"contacts"`
	WhoisTimestamp *Timestamp   `json:"whois_timestamp"`
}

// Contact looks up the contact block for a role
func (r *Record) Contact(role ContactRole) (*Contact, bool) {
	for i := range r.Contacts {
		if r.Contacts[i].Role == role {
			return &r.Contacts[i], true
		}
	}

	return nil, false
}

func (r *Record) NameServerHostnames() []string {
	hostnames := []string{}
	for _, ns := range r.NameServers {
		hostnames = append(hostnames, ns.Hostname)
	}

	return hostnames
}

type Status struct {
	Code string `json:"code"` // "Active", "Inactive" etc.
	Url  string `json:"url"`  // registry's explanation of the code
}

type NameServer struct {
	Hostname string `json:"hostname"`
	GlueIp   string `json:"glue_ip,omitempty"` // empty if no glue
}

func (n NameServer) String() string {
	if n.GlueIp == "" {
		return n.Hostname
	}

	return n.Hostname + " - " + n.GlueIp
}

type Contact struct {
	Role       ContactRole `json:"role"`
	Name       string      `json:"name"`    // organization or person
	Address    string      `json:"address"` // lines separated by \n
	PostalCode Optional    `json:"postal_code"`
	IdNumber   Optional    `json:"id_number"`
	TaxId      Optional    `json:"tax_id"`
}

type ContactRole int

const (
	ContactRegistrant ContactRole = iota
	ContactAdministrative
	ContactTechnical
)

var contactRoleNames = map[ContactRole]string{
	ContactRegistrant:     "registrant",
	ContactAdministrative: "administrative",
	ContactTechnical:      "technical",
}

func (c ContactRole) String() string {
	if name, found := contactRoleNames[c]; found {
		return name
	}

	return fmt.Sprintf("ContactRole(%d)", int(c))
}

func (c ContactRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ContactRole) UnmarshalJSON(input []byte) error {
	var name string
	if err := json.Unmarshal(input, &name); err != nil {
		return err
	}

	for role, roleName := range contactRoleNames {
		if roleName == name {
			*c = role
			return nil
		}
	}

	return fmt.Errorf("unknown contact role: %s", name)
}

// Dnssec is tri-state because the registry may not report it at all
type Dnssec int

const (
	DnssecUnknown Dnssec = iota
	DnssecUnsigned
	DnssecSigned
)

func (d Dnssec) String() string {
	switch d {
	case DnssecUnsigned:
		return "no"
	case DnssecSigned:
		return "yes"
	default:
		return "unknown"
	}
}

// (signed, known)
func (d Dnssec) Bool() (bool, bool) {
	return d == DnssecSigned, d != DnssecUnknown
}

func (d Dnssec) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Dnssec) UnmarshalJSON(input []byte) error {
	var serialized string
	if err := json.Unmarshal(input, &serialized); err != nil {
		return err
	}

	switch serialized {
	case "no":
		*d = DnssecUnsigned
	case "yes":
		*d = DnssecSigned
	case "unknown":
		*d = DnssecUnknown
	default:
		return fmt.Errorf("invalid dnssec: %s", serialized)
	}

	return nil
}
