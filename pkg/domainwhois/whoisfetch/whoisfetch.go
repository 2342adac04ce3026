// Fetches raw WHOIS responses over the WHOIS protocol (port 43)
package whoisfetch

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/domainr/whois"
	"github.com/function61/rswhois/pkg/domainwhois"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

const DefaultTimeout = 20 * time.Second

// Serbian Latin script. what a registry most likely means when the body isn't UTF-8
var fallbackEncoding encoding.Encoding = charmap.ISO8859_2

func New(timeout time.Duration) domainwhois.Fetcher {
	return &Client{whois.NewClient(timeout)}
}

type Client struct {
	client *whois.Client
}

func (c *Client) Fetch(ctx context.Context, domain string) (string, error) {
	req, err := whois.NewRequest(domain)
	if err != nil {
		return "", fmt.Errorf("Fetch: %w", err)
	}

	res, err := c.client.FetchContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("Fetch: %s: %w", req.Host, err)
	}

	return decodeBody(res.Body, res.Charset)
}

// decodeBody converts the body to UTF-8. charset is what the transport detected, if anything.
func decodeBody(body []byte, charset string) (string, error) {
	charset = strings.ToLower(strings.TrimSpace(charset))

	if charset != "" && charset != "utf-8" && charset != "utf8" {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return "", fmt.Errorf("decodeBody: %w", err)
		}

		return decodeWith(enc, body)
	}

	if utf8.Valid(body) {
		return string(body), nil
	}

	return decodeWith(fallbackEncoding, body)
}

func decodeWith(enc encoding.Encoding, body []byte) (string, error) {
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("decodeBody: %w", err)
	}

	return string(decoded), nil
}
