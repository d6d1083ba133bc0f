package metrics

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github/chapool/go-txsigner/internal/config"
)

const namespace = "txsigner"

// Service owns the prometheus registry exposed at /metrics.
// A nil *Service is valid and records nothing.
type Service struct {
	registry               *prometheus.Registry
	signOperations         *prometheus.CounterVec
	externalSignerDuration *prometheus.HistogramVec
}

func New(cfg config.Server) (*Service, error) {
	registry := prometheus.NewRegistry()

	if cfg.Management.ProcessMetrics {
		if err := registry.Register(collectors.NewGoCollector()); err != nil {
			return nil, errors.Wrap(err, "failed to register go collector")
		}
		if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
			return nil, errors.Wrap(err, "failed to register process collector")
		}
	}

	signOperations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_operations_total",
		Help:      "Number of sign operations by transaction type and outcome.",
	}, []string{"type", "outcome"})

	externalSignerDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "external_signer_duration_seconds",
		Help:      "Time spent waiting for the external signer to return a signature.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"type"})

	for _, c := range []prometheus.Collector{signOperations, externalSignerDuration} {
		if err := registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register collector")
		}
	}

	return &Service{
		registry:               registry,
		signOperations:         signOperations,
		externalSignerDuration: externalSignerDuration,
	}, nil
}

// Registry returns the registry backing the /metrics endpoint
func (s *Service) Registry() *prometheus.Registry {
	if s == nil {
		return nil
	}
	return s.registry
}

// Handler serves the registry in the prometheus exposition format
func (s *Service) Handler() http.Handler {
	if s == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

// ObserveSignOperation counts a finished sign operation
func (s *Service) ObserveSignOperation(txType string, outcome string) {
	if s == nil {
		return
	}
	s.signOperations.WithLabelValues(txType, outcome).Inc()
}

// ObserveExternalSigner records how long the external signer took
func (s *Service) ObserveExternalSigner(txType string, d time.Duration) {
	if s == nil {
		return
	}
	s.externalSignerDuration.WithLabelValues(txType).Observe(d.Seconds())
}
