// Fetches raw registry WHOIS text via whoisxmlapi.com, for when port 43 is firewalled
package domainwhoiswhoisxmlapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/function61/gokit/envvar"
	"github.com/function61/gokit/ezhttp"
	"github.com/function61/rswhois/pkg/domainwhois"
)

const (
	APIKeyEnvName   = "WHOISXMLAPI_KEY"
	defaultEndpoint = "https://www.whoisxmlapi.com/whoisserver/WhoisService"
)

func New(apiKey string) domainwhois.Fetcher {
	return &WhoisXmlApi{apiKey, defaultEndpoint}
}

// NewFromEnv reads the API key from $WHOISXMLAPI_KEY
func NewFromEnv() (domainwhois.Fetcher, error) {
	apiKey, err := envvar.Required(APIKeyEnvName)
	if err != nil {
		return nil, err
	}

	return New(apiKey), nil
}

type WhoisXmlApi struct {
	apiKey   string
	endpoint string
}

// responses routinely last > 10 s, so the caller's ctx should allow for that
func (w *WhoisXmlApi) Fetch(ctx context.Context, domain string) (string, error) {
	endpoint := fmt.Sprintf(
		"%s?apiKey=%s&domainName=%s&outputFormat=JSON",
		w.endpoint,
		url.QueryEscape(w.apiKey),
		url.QueryEscape(domain))

	result := &WhoisXmlApiData{}
	if _, err := ezhttp.Get(
		ctx,
		endpoint,
		ezhttp.RespondsJson(result, true),
	); err != nil {
		return "", fmt.Errorf("whoisxmlapi: %w", err)
	}

	return rawRegistryText(*result)
}

// only the parts we need. the service's own parsing doesn't know .rs well enough.
type WhoisXmlApiData struct {
	ErrorMessage *struct {
		Msg string `json:"msg"`
	} `json:"ErrorMessage"`
	Record struct {
		Domain       string `json:"domainName"`
		RegistryData struct {
			RawText string `json:"rawText"`
		} `json:"registryData"`
	} `json:"WhoisRecord"`
}

func rawRegistryText(w WhoisXmlApiData) (string, error) {
	if w.ErrorMessage != nil {
		return "", fmt.Errorf("whoisxmlapi: %s", w.ErrorMessage.Msg)
	}

	if w.Record.RegistryData.RawText == "" {
		return "", errors.New("whoisxmlapi: response without registry raw text")
	}

	return w.Record.RegistryData.RawText, nil
}
