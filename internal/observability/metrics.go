// Package observability provides metrics for roamvid runs.
//
// roamvid is a short-lived command, so metrics are not served over HTTP.
// Instead they can be written to a file in the Prometheus text format for the
// node_exporter textfile collector.
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tphakala/roamvid/internal/errors"
	"github.com/tphakala/roamvid/internal/observability/metrics"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry    *prometheus.Registry
	DiskManager *metrics.DiskManagerMetrics
}

// NewMetrics creates a new instance of Metrics, initializing all metric collectors.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	diskManagerMetrics, err := metrics.NewDiskManagerMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create DiskManager metrics: %w", err)
	}

	return &Metrics{
		registry:    registry,
		DiskManager: diskManagerMetrics,
	}, nil
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("operation", "write-metrics-textfile").
			Context("path", path).
			Build()
	}
	return nil
}
