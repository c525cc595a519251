package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels of Encoded.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

type Registry struct {
	reg *prometheus.Registry

	// Encoded counts encodings by kind (bankcard, nonbankcard, product, balance),
	// card type and result.
	Encoded *prometheus.CounterVec
	// Failures counts failed encodings by error class.
	Failures          *prometheus.CounterVec
	EncodeLatencySec  prometheus.Histogram
	ReferencesStored  prometheus.Counter
	ReferencesMissing prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	encoded := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "nts_userdata_encoded_total"}, []string{"kind", "card_type", "result"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "nts_userdata_failures_total"}, []string{"class"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nts_userdata_encode_seconds",
		Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
	})
	stored := prometheus.NewCounter(prometheus.CounterOpts{Name: "nts_references_stored_total"})
	missing := prometheus.NewCounter(prometheus.CounterOpts{Name: "nts_references_missing_total"})

	r.MustRegister(encoded, failures, latency, stored, missing)
	return &Registry{
		reg:               r,
		Encoded:           encoded,
		Failures:          failures,
		EncodeLatencySec:  latency,
		ReferencesStored:  stored,
		ReferencesMissing: missing,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
