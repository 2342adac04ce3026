// Prometheus view of checked domains
package domainmetrics

import (
	"net/http"
	"time"

	"github.com/function61/rswhois/pkg/domainwhois"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

const PushJobName = "domain_metrics_pusher"

type Metrics struct {
	registry           *prometheus.Registry
	expiration         *prometheus.GaugeVec
	stateDesired       *prometheus.GaugeVec
	parsedSuccessfully prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		expiration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "domain_expiration_seconds",
			Help: "Epoch timestamp when the WHOIS record states this domain will expire",
		}, []string{"domain"}),
		stateDesired: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "domain_state_desired",
			Help: "That the domain is in the configured desired state in registry",
		}, []string{"domain"}),
		parsedSuccessfully: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "domain_information_last_successfully_parsed",
			Help: "Last epoch time that the desired domain information was looked up successfully",
		}),
	}

	m.registry.MustRegister(m.expiration, m.stateDesired, m.parsedSuccessfully)

	return m
}

// Observe records one domain's state. registryLocation pins the registry's civil timestamps to an instant.
func (m *Metrics) Observe(record *domainwhois.Record, consistent bool, registryLocation *time.Location) {
	if record.Expires != nil {
		m.expiration.WithLabelValues(record.Domain).Set(float64(record.Expires.In(registryLocation).Unix()))
	} else {
		m.expiration.DeleteLabelValues(record.Domain)
	}

	m.stateDesired.WithLabelValues(record.Domain).Set(boolToFloat(consistent))
}

func (m *Metrics) MarkSuccessfullyParsed(now time.Time) {
	m.parsedSuccessfully.Set(float64(now.Unix()))
}

func (m *Metrics) Push(pushgatewayUrl string) error {
	return push.New(pushgatewayUrl, PushJobName).Gatherer(m.registry).Push()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func boolToFloat(input bool) float64 {
	if input {
		return 1
	}
	return 0
}
