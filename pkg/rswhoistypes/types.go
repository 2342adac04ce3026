package rswhoistypes

import (
	"errors"
	"os"
	"time"

	"github.com/function61/gokit/jsonfile"
	"github.com/function61/rswhois/pkg/domainwhois"
)

const DefaultStatefilePath = "rswhois.json"

var ErrDomainNotTracked = errors.New("domain not tracked")

type TrackedDomain struct {
	Record    domainwhois.Record `json:"record"`
	FetchedAt time.Time          `json:"fetched_at"`
}

type Statefile struct {
	Domains []TrackedDomain `json:"domains"`
}

func (s *Statefile) Find(domain string) *TrackedDomain {
	for i := range s.Domains {
		if s.Domains[i].Record.Domain == domain {
			return &s.Domains[i]
		}
	}

	return nil
}

// Upsert replaces the domain's previous entry in place, or appends
func (s *Statefile) Upsert(tracked TrackedDomain) {
	if existing := s.Find(tracked.Record.Domain); existing != nil {
		*existing = tracked
		return
	}

	s.Domains = append(s.Domains, tracked)
}

func (s *Statefile) Remove(domain string) error {
	for idx, tracked := range s.Domains {
		if tracked.Record.Domain == domain {
			s.Domains = append(s.Domains[:idx], s.Domains[idx+1:]...)
			return nil
		}
	}

	return ErrDomainNotTracked
}

// ReadStatefile treats a missing file as an empty one
func ReadStatefile(path string) (*Statefile, error) {
	sf := &Statefile{
		Domains: []TrackedDomain{},
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return sf, nil
		}

		return nil, err // an actual error
	}

	if err := jsonfile.Read(path, sf, true); err != nil {
		return nil, err
	}

	return sf, nil
}

// WriteStatefile replaces the file atomically
func WriteStatefile(path string, sf *Statefile) error {
	return jsonfile.Write(path, sf)
}
