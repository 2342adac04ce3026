// Desired state of domains in the registry, and checking records against it
package domaincheck

import (
	"errors"
	"fmt"
	"io/ioutil"

	"github.com/go-yaml/yaml"
)

const DefaultConfigFilename = "domains.yml"

type Config struct {
	Pushgateway string        `yaml:"pushgateway,omitempty"`
	Statuses    []string      `yaml:"statuses,omitempty"` // registry status codes on top of the built-in ones
	Domains     []Expectation `yaml:"domains"`
}

// Expectation of a domain's state. empty field = don't care
type Expectation struct {
	Domain      string   `yaml:"domain"`
	Status      []string `yaml:"status,omitempty"`
	Nameservers []string `yaml:"nameservers,omitempty"` // "ns1.example.net" or "ns1.example.net - 192.0.2.1"
	Dnssec      string   `yaml:"dnssec,omitempty"`      // "yes" | "no"
	Registrar   string   `yaml:"registrar,omitempty"`
}

func ReadConfig(path string) (*Config, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseConfig(content)
}

func ParseConfig(content []byte) (*Config, error) {
	conf := &Config{}
	if err := yaml.UnmarshalStrict(content, conf); err != nil {
		return nil, fmt.Errorf("ParseConfig: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("ParseConfig: %w", err)
	}

	return conf, nil
}

func (c *Config) Validate() error {
	seen := map[string]bool{}

	for _, domain := range c.Domains {
		if domain.Domain == "" {
			return errors.New("domain entry without domain name")
		}

		if seen[domain.Domain] {
			return fmt.Errorf("duplicate domain: %s", domain.Domain)
		}
		seen[domain.Domain] = true

		switch domain.Dnssec {
		case "", "yes", "no":
		default:
			return fmt.Errorf("%s: dnssec must be yes or no; got %s", domain.Domain, domain.Dnssec)
		}
	}

	return nil
}
